package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/ledger"
	"github.com/casadelapaleta/ventas-site/internal/reports"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Regenerate the aggregate sales reports from the ledger",
	Long: `Rewrites the detail, per-day and per-item CSVs, plus one rebuilt CSV per
sale date, from what the ledger currently holds. Daily append logs written
by process-issue are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		l, err := ledger.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer l.Close()

		if err := reports.Build(cmd.Context(), l, cfg.OutputDir); err != nil {
			return err
		}

		dates, err := l.Dates(cmd.Context(), false)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote sales reports for %d dates to %s\n", len(dates), cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
