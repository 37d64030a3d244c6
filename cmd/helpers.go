package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/casadelapaleta/ventas-site/internal/config"
	"github.com/casadelapaleta/ventas-site/internal/ledger"
	"github.com/casadelapaleta/ventas-site/internal/menu"
	"github.com/casadelapaleta/ventas-site/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ventas init` to create a config file", err)
	}
	return cfg, nil
}

// buildSite assembles the full site for the given config.
func buildSite(cfg *config.Config) (site.Stats, error) {
	b, err := site.NewBuilder(cfg)
	if err != nil {
		return site.Stats{}, err
	}
	return b.Build()
}

// loadCatalog loads the menu catalog, local file first, published fallback
// second. A missing catalog is not fatal (sales can still carry their own
// prices), so the caller gets a nil ledger.Catalog and a printed warning.
func loadCatalog(ctx context.Context, cfg *config.Config) ledger.Catalog {
	cat, source, err := menu.LoadWithFallback(ctx, cfg.MenuLocal, cfg.MenuFallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no menu catalog available: %v\n", err)
		return nil
	}
	if source == menu.SourceFallback {
		fmt.Fprintf(os.Stderr, "Using published catalog %s\n", cfg.MenuFallback)
	}
	return cat
}
