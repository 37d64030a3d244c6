package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the output directory",
	Long: `Renders the content pages, writes style.css and js/config.js (the
VENTAS_CONFIG page global), injects the back-to-menu button on every page
except the menu itself, and copies the menu catalog and static assets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stats, err := buildSite(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Built %d pages and %d assets into %s\n", stats.Pages, stats.Assets, cfg.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
