package cmd

import (
	"fmt"

	"olistInsights/app/bootstrap"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Migrate the schema and import the CSV dataset into PostgreSQL",
	Long: `Load reads every Olist CSV file from the data directory, validates it,
applies the database migrations and replaces the stored tables with the
loaded rows in one transaction.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var loadFlags struct {
	dataDir string
}

func init() {
	loadCmd.Flags().StringVarP(&loadFlags.dataDir, "data-dir", "d", "", "Directory holding the Olist CSV files (default DATASET_DIR)")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	counts, err := bootstrap.ImportDataset(cmd.Context(), cfg, loadFlags.dataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"imported %d customers, %d orders, %d items, %d payments, %d reviews, %d products, %d sellers, %d translations, %d geolocations\n",
		counts.Customers, counts.Orders, counts.OrderItems, counts.Payments, counts.Reviews,
		counts.Products, counts.Sellers, counts.Translations, counts.Geolocations)
	return nil
}
