package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/viewer"
)

var addForm viewer.Form

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Geocode an address and save a new listing",
		Long: `Add a listing. The address is resolved to coordinates with the
configured geocoder; the listing is saved only when the lookup succeeds.

Title, address, price, sqft, owner and phone are required.

Examples:
  landfinder add --title "Road-facing plot" --address "Perundurai, Erode" \
    --price 2500000 --sqft 1200 --owner "Mr. Senthil" --phone +919876543210`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runAdd,
	}

	cmd.Flags().StringVar(&addForm.Title, "title", "", "Listing title")
	cmd.Flags().StringVar(&addForm.Address, "address", "", "Free-text address to geocode")
	cmd.Flags().StringVar(&addForm.Price, "price", "", "Price in rupees")
	cmd.Flags().StringVar(&addForm.Sqft, "sqft", "", "Area in sqft")
	cmd.Flags().StringVar(&addForm.Owner, "owner", "", "Owner name")
	cmd.Flags().StringVar(&addForm.Phone, "phone", "", "Owner phone number")
	cmd.Flags().StringVar(&addForm.Desc, "desc", "", "Description (default \""+models.DefaultDescription+"\")")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, err := openContext(cmd)
	if err != nil {
		return err
	}
	defer ctx.Close()

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	geocoder, err := ctx.Geocoder()
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	workflow := viewer.NewAddWorkflow(repo, geocoder, settings.Geocoder.Timeout, ctx.Logger())
	job, err := workflow.Submit(addForm)
	if err != nil {
		var verr *viewer.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w (use --%s)", err, verr.Missing[0])
		}
		return err
	}

	l, err := workflow.Resolve(job.Run(cmd.Context()))
	if errors.Is(err, viewer.ErrAddressNotFound) {
		return fmt.Errorf("%w (try a more specific --address)", err)
	}
	if err != nil {
		return err
	}

	s, _ := ctx.Store()
	view := cli.NewListingViews([]models.Listing{l}, s.LoadFavoriteIDs())[0]
	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, view)
	}

	cli.PrintSuccess("Added listing %s at %s", l.ID, l.Position())
	cli.WriteListingDetail(cmd.OutOrStdout(), view)
	return nil
}
