package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ventas configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and generates a ventas.yml file plus a starter content directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		if err := seedContent(cfg); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
		fmt.Println()
		fmt.Printf("Edit the pages under %s/ and run `ventas build`.\n", cfg.ContentDir)
		return nil
	},
}

// seedContent creates the content directory with a starter menu page.
// Existing files are never overwritten.
func seedContent(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	index := filepath.Join(cfg.ContentDir, "index.md")
	if _, err := os.Stat(index); err == nil {
		return nil
	}

	starter := fmt.Sprintf("# %s\n\nBienvenidos. Aquí va el menú del día.\n", cfg.Title)
	return os.WriteFile(index, []byte(starter), 0o644)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
