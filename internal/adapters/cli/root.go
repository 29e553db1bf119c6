package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuelrouter",
		Short: "Fuel route planner - catalog management and API server",
		Long: `Fuel route planner CLI manages the station catalog and runs the API server.

Examples:
  fuelrouter import-prices --csv-path fuel-prices.csv --replace
  fuelrouter geocode-stations --limit 50
  fuelrouter geocode-stations --force --sleep-seconds 0.5
  fuelrouter serve`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (defaults to ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewImportPricesCommand())
	rootCmd.AddCommand(NewGeocodeStationsCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
