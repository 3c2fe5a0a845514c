package commands

import (
	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a listing",
		Long: `Show everything the detail popup shows for a listing: description,
price, area, owner and phone.

Examples:
  landfinder show b1
  landfinder show u4k2x9 -o yaml`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runShow,
	}
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	l, err := findListing(ctx, args[0])
	if err != nil {
		return err
	}
	s, _ := ctx.Store()
	view := cli.NewListingViews([]models.Listing{l}, s.LoadFavoriteIDs())[0]

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, view)
	}
	cli.WriteListingDetail(cmd.OutOrStdout(), view)
	return nil
}
