// Package cmd implements the CLI commands for a11ypipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/a11ypipe/config"
)

var rootCmd = &cobra.Command{
	Use:   "a11ypipe",
	Short: "a11ypipe — deterministic webpage accessibility audits",
	Long: `a11ypipe fetches a webpage, extracts accessibility signals from its HTML,
and produces a scored audit report (JSON, Markdown, or PDF).

Usage:
  a11ypipe audit <url> [flags]
  a11ypipe serve [flags]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings := config.Load()
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: settings.SlogLevel(),
		})
		slog.SetDefault(slog.New(handler))
	},
}

func init() {
	config.Init()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
