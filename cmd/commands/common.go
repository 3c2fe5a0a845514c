package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/files"
	"github.com/landfinder/landfinder-terminal/pkg/models"
)

// requireProject is the PreRunE shared by commands that read listings
func requireProject(cmd *cobra.Command, args []string) error {
	if !files.ProjectExists() {
		return fmt.Errorf("no %s directory found. Run 'landfinder init' first", files.LandfinderDir)
	}
	return nil
}

// openContext creates a validated command context honoring --verbose
func openContext(cmd *cobra.Command) (*cli.CommandContext, error) {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return nil, err
	}
	if err := ctx.ValidateProject(); err != nil {
		return nil, err
	}
	ctx.Verbose, _ = cmd.Flags().GetBool("verbose")
	ctx.Ephemeral, _ = cmd.Flags().GetBool("ephemeral")
	return ctx, nil
}

// outputFormat returns the -o flag value, text when the flag is absent
func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("output")
	if err != nil || format == "" {
		return string(cli.FormatText), nil
	}
	if err := cli.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// findListing resolves an id argument against the repository
func findListing(ctx *cli.CommandContext, id string) (models.Listing, error) {
	if err := cli.ValidateListingID(id); err != nil {
		return models.Listing{}, err
	}
	repo, err := ctx.Repository()
	if err != nil {
		return models.Listing{}, err
	}
	l, ok := repo.Find(id)
	if !ok {
		return models.Listing{}, fmt.Errorf("listing not found: %s", id)
	}
	return l, nil
}
