package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vlog "github.com/casadelapaleta/ventas-site/internal/log"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ventas",
	Short: "Static-site toolchain for the paleta sales page",
	Long: `Ventas builds and serves the sales site of the paletería: it renders the
content pages, publishes the menu catalog and the VENTAS_CONFIG page
global, processes sale issues from GitHub into a local ledger, and
regenerates the CSV sales reports served next to the site.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		vlog.Configure(vlog.Config{Level: level})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "ventas.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
