package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landfinder/landfinder-terminal/internal/cli"
)

// FavoriteResult is the output of the favorite command
type FavoriteResult struct {
	ID    string `json:"id" yaml:"id"`
	Saved bool   `json:"saved" yaml:"saved"`
}

// FavoriteEntry is one row of the favorites command
type FavoriteEntry struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Area    string `json:"area,omitempty" yaml:"area,omitempty"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// NewFavoriteCommand creates the favorite command
func NewFavoriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Save or unsave a listing",
		Long: `Toggle a listing in the favorites set, the same as the Save button
in the detail popup.

Examples:
  landfinder favorite b2`,
		Args:    cobra.ExactArgs(1),
		PreRunE: requireProject,
		RunE:    runFavorite,
	}
	return cmd
}

func runFavorite(cmd *cobra.Command, args []string) error {
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
	s, err := ctx.Store()
	if err != nil {
		return err
	}

	favs := s.LoadFavoriteIDs()
	saved := favs.Toggle(l.ID)
	if err := s.SaveFavoriteIDs(favs); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	ctx.Logger().Info("favorite toggled", zap.String("id", l.ID), zap.Bool("saved", saved))

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, FavoriteResult{ID: l.ID, Saved: saved})
	}
	if saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", l.ID, l.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s) from favorites\n", l.ID, l.Title)
	}
	return nil
}

// NewFavoritesCommand creates the favorites command
func NewFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List saved favorites",
		Long: `List the favorite ids in the order they were saved. Favorites that
refer to a listing which no longer exists are marked missing.`,
		Args:    cobra.NoArgs,
		PreRunE: requireProject,
		RunE:    runFavorites,
	}
	return cmd
}

func runFavorites(cmd *cobra.Command, args []string) error {
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
	s, _ := ctx.Store()

	entries := []FavoriteEntry{}
	for _, id := range s.LoadFavoriteIDs().IDs() {
		l, ok := repo.Find(id)
		if !ok {
			entries = append(entries, FavoriteEntry{ID: id, Missing: true})
			continue
		}
		entries = append(entries, FavoriteEntry{ID: id, Title: l.Title, Area: l.Area})
	}

	if format != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), format, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No favorites")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "TITLE", "AREA")
	for _, e := range entries {
		if e.Missing {
			table.Row(e.ID, "(missing)", "")
			continue
		}
		table.Row(e.ID, e.Title, e.Area)
	}
	table.Flush()
	return nil
}
