package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/inventory"
)

var (
	seedGeneralPath string
	seedStockPath   string
	seedOutPath     string
)

var seedCmd = &cobra.Command{
	Use:   "seed-mercado",
	Short: "Seed the market-stand inventory from the general inventory",
	Long: `Filters the paletas out of the general inventory CSV, applies the initial
stock counts from an optional YAML file, and writes the market-stand
inventory CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := inventory.Seed(seedGeneralPath, seedStockPath, seedOutPath)
		if err != nil {
			return err
		}

		if len(res.Missing) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: stock file lists SKUs missing from the general inventory: %s\n",
				strings.Join(res.Missing, ", "))
		}
		fmt.Printf("Seeded %d rows (%d paletas) into %s\n", res.Rows, res.Paletas, seedOutPath)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedGeneralPath, "general", "data/inventario_general.csv", "general inventory CSV")
	seedCmd.Flags().StringVar(&seedStockPath, "stock", "", "initial stock YAML (optional, zero stock if omitted)")
	seedCmd.Flags().StringVar(&seedOutPath, "out", "data/inventario_mercado.csv", "market inventory CSV to write")
	rootCmd.AddCommand(seedCmd)
}
