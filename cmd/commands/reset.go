package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
)

var resetYes bool

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every saved listing",
		Long: `Remove all user-added listings from storage, leaving only the
built-in sample plots. Favorites are kept.

This action cannot be undone.

Examples:
  landfinder reset
  landfinder reset --yes`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runReset,
	}

	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	count := len(repo.UserAdded())
	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved listings")
		return nil
	}

	if !resetYes {
		ok, err := cli.Confirm(fmt.Sprintf("Clear %d saved listing(s)?", count), false)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := repo.ResetToBuiltins(); err != nil {
		return fmt.Errorf("failed to clear saved listings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved listing(s)\n", count)
	return nil
}
