package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/casadelapaleta/ventas-site/internal/server"
)

var (
	servePort  int
	serveOpen  bool
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally with live reload",
	Long: `Builds the site, serves it on a local port and watches the content
directory: saved changes rebuild the site and reload open browser tabs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the browser")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "rebuild and reload on content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Serve.Port = servePort
	}
	if serveOpen {
		cfg.Serve.Open = true
	}

	if _, err := buildSite(cfg); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     cfg.Serve.Port,
		SiteDir:  cfg.OutputDir,
		Open:     cfg.Serve.Open,
		AllowAll: true,
	}, func() error {
		_, err := buildSite(cfg)
		return err
	})

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		go func() {
			if err := srv.Watch(ctx, cfg.ContentDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: watcher stopped: %v\n", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		srv.Shutdown(context.Background())
	}()

	fmt.Printf("Serving %s at http://localhost:%d\n", cfg.OutputDir, cfg.Serve.Port)
	fmt.Println("Press Ctrl+C to stop.")

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
