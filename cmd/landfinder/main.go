package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landfinder/landfinder-terminal/cmd/commands"
	"github.com/landfinder/landfinder-terminal/internal/cli"
	"github.com/landfinder/landfinder-terminal/pkg/files"
	"github.com/landfinder/landfinder-terminal/pkg/geocode"
	"github.com/landfinder/landfinder-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quietFlag   bool
	noColorFlag bool
	yesFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "landfinder",
	Short: "Browse, filter and add land listings on a terminal map",
	Long: `LandFinder shows land plots for sale as a searchable list and a map.
Listings you add are geocoded from their address and kept in the .landfinder
folder of the current directory, together with your favorites.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(quietFlag, noColorFlag, yesFlag)
		if noColorFlag {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !files.ProjectExists() {
			fmt.Fprintf(os.Stderr, "Error: No %s directory found in the current directory.\n", files.LandfinderDir)
			fmt.Fprintf(os.Stderr, "Please run 'landfinder init' first to initialize a new project.\n")
			os.Exit(1)
		}

		if err := runTUI(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

func runTUI(cmd *cobra.Command) error {
	ctx, err := cli.NewCommandContext()
	if err != nil {
		return err
	}
	defer ctx.Close()
	ctx.Verbose, _ = cmd.Flags().GetBool("verbose")
	ctx.Ephemeral, _ = cmd.Flags().GetBool("ephemeral")

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	s, err := ctx.Store()
	if err != nil {
		return err
	}
	geocoder, err := ctx.Geocoder()
	if err != nil {
		// Browsing still works without a geocoder; adding reports the error
		ctx.Logger().Warn("geocoder unavailable", zap.Error(err))
		cli.PrintWarning("Address lookups will fail: %v", err)
		geocoder = geocode.NewStatic(nil)
	}

	app := tui.NewApp(tui.Config{
		Repository: repo,
		Favorites:  s,
		Geocoder:   geocoder,
		Settings:   ctx.LoadSettingsWithDefault(),
		Logger:     ctx.Logger(),
	})
	defer app.Close()

	ctx.Logger().Info("starting tui", zap.Int("listings", repo.Len()))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new LandFinder project",
	Long:  `Creates the .landfinder folder with default settings in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to determine current directory: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing LandFinder project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to initialize project structure: %v\n", err)
			fmt.Fprintf(os.Stderr, "Make sure you have write permissions in the current directory.\n")
			os.Exit(1)
		}

		fmt.Printf("✓ Created %s\n", files.SettingsPath())
		fmt.Printf("✓ Put your Maps API key in %s/%s as LANDFINDER_MAPS_API_KEY\n", files.LandfinderDir, files.EnvFile)
		fmt.Println("\nRun 'landfinder' to start the interactive TUI.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of LandFinder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("LandFinder version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep saved listings and favorites in memory for this run")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colors")
	rootCmd.PersistentFlags().BoolVar(&yesFlag, "assume-yes", false, "Answer yes to every confirmation")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewFavoriteCommand())
	rootCmd.AddCommand(commands.NewFavoritesCommand())
	rootCmd.AddCommand(commands.NewResetCommand())
	rootCmd.AddCommand(commands.NewCallCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Command execution failed: %v\n", err)
		os.Exit(1)
	}
}
