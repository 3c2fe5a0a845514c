package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
)

var callPrintOnly bool

// NewCallCommand creates the call command
func NewCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <id>",
		Short: "Call the owner of a listing",
		Long: `Open the system handler for the owner's tel: link and copy the
phone number to the clipboard.

Examples:
  landfinder call b1
  landfinder call b1 --print`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runCall,
	}

	cmd.Flags().BoolVarP(&callPrintOnly, "print", "p", false, "Only print the tel: link")

	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	l, err := findListing(ctx, args[0])
	if err != nil {
		return err
	}

	if callPrintOnly {
		fmt.Fprintln(cmd.OutOrStdout(), l.TelURI())
		return nil
	}

	res, err := cli.NewOpener().Call(l.TelURI(), l.Phone)
	if err != nil {
		return err
	}
	if res.Opened {
		fmt.Fprintf(cmd.OutOrStdout(), "Calling %s at %s\n", l.Owner, l.Phone)
	}
	if res.Copied {
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to clipboard\n", l.Phone)
	}
	return nil
}
