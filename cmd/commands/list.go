package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/models"
	"github.com/landfinder/landfinder-terminal/pkg/search"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Query search.Fields     `json:"query" yaml:"query"`
	Items []cli.ListingView `json:"items" yaml:"items"`
	Count int               `json:"count" yaml:"count"`
}

var (
	listFields    search.Fields
	listQuery     string
	listFavorites bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and filter listings",
		Long: `List built-in and saved listings, optionally filtered and sorted.

Text matches the title or area, case-insensitively. Price and area
bounds are inclusive; leave a bound out to make it open.

Sort keys: relevance, price_asc, price_desc, psf_asc, psf_desc

Examples:
  # Everything in Erode, cheapest first
  landfinder list --text erode --sort price_asc

  # Plots between 20 and 50 lakh
  landfinder list --min-price 2000000 --max-price 5000000

  # The same filters as a single query
  landfinder list -q 'erode price:2000000-5000000 sort:psf_asc'

  # Saved favorites as JSON
  landfinder list --favorites -o json`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runList,
	}

	cmd.Flags().StringVar(&listFields.Text, "text", "", "Match title or area")
	cmd.Flags().StringVar(&listFields.MinPrice, "min-price", "", "Minimum price")
	cmd.Flags().StringVar(&listFields.MaxPrice, "max-price", "", "Maximum price")
	cmd.Flags().StringVar(&listFields.MinSqft, "min-sqft", "", "Minimum area in sqft")
	cmd.Flags().StringVar(&listFields.MaxSqft, "max-sqft", "", "Maximum area in sqft")
	cmd.Flags().StringVar(&listFields.Sort, "sort", "", "Sort key")
	cmd.Flags().StringVarP(&listQuery, "query", "q", "", "Query in 'text price>=N sqft:A-B sort:key' form")
	cmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only show favorites")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	q, err := buildQuery(listFields, listQuery)
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
	s, _ := ctx.Store()
	favs := s.LoadFavoriteIDs()

	results := search.FilterSort(repo.All(), q)
	if listFavorites {
		results = onlyFavorites(results, favs)
	}
	views := cli.NewListingViews(results, favs)

	switch format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), format, ListResult{
			Query: listFields,
			Items: views,
			Count: len(views),
		})
	default:
		cli.WriteListingTable(cmd.OutOrStdout(), views)
		if len(views) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d listing(s)\n", len(views))
		}
		return nil
	}
}

// buildQuery combines flag fields with an optional one-line query. Flags
// that are set take precedence.
func buildQuery(fields search.Fields, line string) (search.Query, error) {
	if err := cli.ValidateSortKey(fields.Sort); err != nil {
		return search.Query{}, err
	}
	q, err := search.QueryFromFields(fields)
	if err != nil {
		return search.Query{}, err
	}
	if line == "" {
		return q, nil
	}

	parsed, err := search.NewParser().Parse(line)
	if err != nil {
		return search.Query{}, fmt.Errorf("invalid query: %w", err)
	}
	if fields.Text != "" {
		parsed.Text = q.Text
	}
	if fields.MinPrice != "" {
		parsed.MinPrice = q.MinPrice
	}
	if fields.MaxPrice != "" {
		parsed.MaxPrice = q.MaxPrice
	}
	if fields.MinSqft != "" {
		parsed.MinSqft = q.MinSqft
	}
	if fields.MaxSqft != "" {
		parsed.MaxSqft = q.MaxSqft
	}
	if fields.Sort != "" {
		parsed.Sort = q.Sort
	}
	return parsed, nil
}

func onlyFavorites(ls []models.Listing, favs *models.FavoriteSet) []models.Listing {
	var out []models.Listing
	for _, l := range ls {
		if favs.Has(l.ID) {
			out = append(out, l)
		}
	}
	return out
}
