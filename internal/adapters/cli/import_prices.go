package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fuelrouter-go/internal/domain/station"
)

// NewImportPricesCommand creates the import-prices command
func NewImportPricesCommand() *cobra.Command {
	var (
		csvPath string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import-prices",
		Short: "Import and normalize fuel prices from a CSV price sheet",
		Long: `Import and normalize fuel prices from a CSV price sheet.
Rows are deduplicated on (address, city, state); for duplicates the cheapest
price wins. Re-imports refresh prices without touching geocoded coordinates.

Examples:
  fuelrouter import-prices --csv-path fuel-prices.csv
  fuelrouter import-prices --csv-path fuel-prices.csv --replace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				return fmt.Errorf("--csv-path flag is required")
			}

			file, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("CSV file does not exist: %s", csvPath)
			}
			defer file.Close()

			rows, err := station.ParseCSV(file)
			if err != nil {
				return err
			}
			stations := station.Normalize(rows)

			rt, err := newRuntime()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if replace {
				if err := rt.stations.DeleteAll(ctx); err != nil {
					return err
				}
			}

			created, updated, err := rt.stations.UpsertBatch(ctx, stations)
			if err != nil {
				return err
			}

			fmt.Printf("Imported fuel stations: %d rows normalized, %d created, %d updated\n",
				len(stations), created, updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv-path", "", "Path to the source fuel prices CSV (required)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing stations before importing")

	return cmd
}
