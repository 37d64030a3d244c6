package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/issues"
	"github.com/casadelapaleta/ventas-site/internal/ledger"
	vlog "github.com/casadelapaleta/ventas-site/internal/log"
	"github.com/casadelapaleta/ventas-site/internal/reports"
)

var syncToken string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Backfill the ledger from the repository's sale issues",
	Long: `Fetches every issue of the configured repository through the GitHub API,
records the parseable sales in the ledger (replacing earlier versions of
the same issue) and regenerates the aggregate reports. Daily append logs
are left untouched.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncToken, "token", "", "GitHub token (default $GITHUB_TOKEN, anonymous if empty)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := vlog.WithComponent("sync")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token := syncToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	fetcher := issues.NewFetcher(token, cfg.Org, cfg.Repo)
	all, err := fetcher.All(ctx)
	if err != nil {
		return fmt.Errorf("fetching issues from %s/%s: %w", cfg.Org, cfg.Repo, err)
	}

	catalog := loadCatalog(ctx, cfg)

	l, err := ledger.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer l.Close()

	recorded, skipped := 0, 0
	for i := range all {
		rep, err := issues.ParseIssue(&all[i])
		if err != nil {
			logger.Debug().Err(err).Msg("skipping issue")
			skipped++
			continue
		}
		if err := l.Record(ctx, rep, catalog); err != nil {
			return fmt.Errorf("recording issue #%d: %w", rep.Number, err)
		}
		recorded++
	}

	if err := reports.Build(ctx, l, cfg.OutputDir); err != nil {
		return fmt.Errorf("rebuilding reports: %w", err)
	}

	fmt.Printf("Recorded %d sales from %d issues (%d skipped).\n", recorded, len(all), skipped)
	return nil
}
