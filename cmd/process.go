package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/issues"
	"github.com/casadelapaleta/ventas-site/internal/ledger"
	"github.com/casadelapaleta/ventas-site/internal/reports"
)

var processEventPath string

var processCmd = &cobra.Command{
	Use:   "process-issue",
	Short: "Record a sale issue from a GitHub event payload",
	Long: `Reads the workflow event payload, parses the sale issue, appends the
daily CSV, records the sale in the ledger and regenerates the aggregate
reports. Issues without a date or items are skipped without failing the
workflow.`,
	RunE: runProcessIssue,
}

func init() {
	processCmd.Flags().StringVar(&processEventPath, "event", "", "event payload path (default $GITHUB_EVENT_PATH)")
	rootCmd.AddCommand(processCmd)
}

func runProcessIssue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eventPath := processEventPath
	if eventPath == "" {
		eventPath = os.Getenv("GITHUB_EVENT_PATH")
	}
	if eventPath == "" {
		return fmt.Errorf("no event payload: pass --event or set GITHUB_EVENT_PATH")
	}

	ev, err := issues.ReadEvent(eventPath)
	if err != nil {
		return err
	}

	rep, err := issues.ParseIssue(ev.Issue)
	switch {
	case errors.Is(err, issues.ErrNoIssue),
		errors.Is(err, issues.ErrNoDate),
		errors.Is(err, issues.ErrNoItems):
		fmt.Printf("Skipping: %v\n", err)
		return nil
	case err != nil:
		return err
	}

	catalog := loadCatalog(ctx, cfg)
	rows := ledger.Expand(rep, catalog)

	dailyDir := reports.DailyDir(cfg.OutputDir, rep.Mercado())
	if err := reports.AppendDaily(dailyDir, rep.Fecha, rows); err != nil {
		return fmt.Errorf("appending daily report: %w", err)
	}

	l, err := ledger.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer l.Close()

	if err := l.Record(ctx, rep, catalog); err != nil {
		return fmt.Errorf("recording sale: %w", err)
	}

	if err := reports.Build(ctx, l, cfg.OutputDir); err != nil {
		return fmt.Errorf("rebuilding reports: %w", err)
	}

	kind := "venta"
	if rep.Mercado() {
		kind = "venta de mercado"
	}
	fmt.Printf("Recorded %s #%d (%s) with %d items.\n", kind, rep.Number, rep.Fecha, len(rows))
	return nil
}
