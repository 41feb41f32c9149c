// Package cmd — serve command.
// Runs the HTTP API with audit history persistence and graceful shutdown.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/a11ypipe/config"
	"github.com/gaurav-prasanna/a11ypipe/core"
	"github.com/gaurav-prasanna/a11ypipe/core/analyze"
	"github.com/gaurav-prasanna/a11ypipe/core/enrich"
	"github.com/gaurav-prasanna/a11ypipe/core/fetch"
	"github.com/gaurav-prasanna/a11ypipe/server"
	"github.com/gaurav-prasanna/a11ypipe/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the audit HTTP API",
	Long: `Serve starts the HTTP API:

  POST /audit/url    — audit a live page by URL
  POST /audit/image  — audit an uploaded screenshot
  GET  /health       — liveness probe
  GET  /logs/audits  — recent audit history

Settings come from flags or A11Y_-prefixed environment variables.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8000, "Listen port")
	serveCmd.Flags().String("db", "audits.db", "Path to the audit history database")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("audit_db", serveCmd.Flags().Lookup("db"))
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	logger := slog.Default()

	auditStore, err := store.Open(settings.AuditDB)
	if err != nil {
		return fmt.Errorf("opening audit store: %w", err)
	}
	defer auditStore.Close()

	var enricher core.Enricher
	if settings.NIMAPIKey != "" {
		enricher = enrich.New(enrich.Config{
			APIKey:  settings.NIMAPIKey,
			BaseURL: settings.NIMBaseURL,
			Model:   settings.NIMModel,
			Logger:  logger,
		})
		logger.Info("enrichment enabled")
	}

	srv := server.New(server.Config{
		Port:     settings.Port,
		Fetcher:  fetch.NewWithTimeout(settings.FetchTimeout),
		Analyzer: analyze.New(analyze.Config{Logger: logger}),
		Enricher: enricher,
		Store:    auditStore,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
