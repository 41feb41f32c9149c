// Package cmd — audit command.
// Orchestrates the pipeline for one URL or a whole site:
// fetch → parse → analyze → (enrich) → render → write.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/a11ypipe/config"
	"github.com/gaurav-prasanna/a11ypipe/core"
	"github.com/gaurav-prasanna/a11ypipe/core/analyze"
	"github.com/gaurav-prasanna/a11ypipe/core/enrich"
	"github.com/gaurav-prasanna/a11ypipe/core/fetch"
	"github.com/gaurav-prasanna/a11ypipe/core/output"
	"github.com/gaurav-prasanna/a11ypipe/core/render"
	"github.com/gaurav-prasanna/a11ypipe/crawl"
)

// Flag variables.
var (
	flagAll       bool
	flagJSON      bool
	flagMarkdown  bool
	flagPDF       bool
	flagEnrich    bool
	flagOutputDir string
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a webpage and write a scored accessibility report",
	Long: `Audit fetches a webpage, extracts accessibility signals from its HTML,
scores ten accessibility dimensions, and writes a report in the chosen format.

Examples:
  a11ypipe audit https://example.com --markdown
  a11ypipe audit https://example.com --json --output_dir ./reports
  a11ypipe audit https://example.com --all --pdf
  a11ypipe audit https://example.com --json --enrich`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Mode flags.
	auditCmd.Flags().BoolVar(&flagAll, "all", false, "Audit all discovered sub-pages")

	// Output format flags (mutually exclusive).
	auditCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON (default)")
	auditCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	auditCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Enrichment.
	auditCmd.Flags().BoolVar(&flagEnrich, "enrich", false, "Add consultant notes via the configured language model")

	// Output directory.
	auditCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	rawURL := fetch.NormalizeTarget(args[0])

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	settings := config.Load()

	fetcher := fetch.NewWithTimeout(settings.FetchTimeout)
	analyzer := analyze.New(analyze.Config{Logger: slog.Default()})
	enricher := newEnricher(settings)

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	if flagAll {
		return runAll(ctx, rawURL, fetcher, analyzer, enricher, renderer, writer)
	}
	return runOnly(ctx, rawURL, fetcher, analyzer, enricher, renderer, writer)
}

// selectRenderer picks the renderer from the format flags. JSON is the default.
func selectRenderer() (core.Renderer, error) {
	count := 0
	for _, set := range []bool{flagJSON, flagMarkdown, flagPDF} {
		if set {
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("choose exactly one of --json, --markdown, --pdf")
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}

// newEnricher builds the enricher when --enrich is set and a key is configured.
func newEnricher(settings config.Settings) core.Enricher {
	if !flagEnrich {
		return nil
	}
	if settings.NIMAPIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: --enrich set but no API key configured (A11Y_NIM_API_KEY); skipping enrichment")
		return nil
	}
	return enrich.New(enrich.Config{
		APIKey:  settings.NIMAPIKey,
		BaseURL: settings.NIMBaseURL,
		Model:   settings.NIMModel,
		Logger:  slog.Default(),
	})
}

// runOnly audits a single URL.
func runOnly(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	analyzer *analyze.Pipeline,
	enricher core.Enricher,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, err := auditURL(ctx, rawURL, fetcher, analyzer, enricher, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteReport(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers all internal pages and audits each one.
func runAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	analyzer *analyze.Pipeline,
	enricher core.Enricher,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering pages from %s...\n", rawURL)

	discoverer := crawl.New(crawl.Config{Fetcher: fetcher, Logger: slog.Default()})
	urls, err := discoverer.Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d pages to audit\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Auditing %s\n", i+1, len(urls), pageURL)

		data, err := auditURL(ctx, pageURL, fetcher, analyzer, enricher, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteSiteReport(pageURL, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// auditURL runs a single URL through the full pipeline and renders the report.
func auditURL(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	analyzer *analyze.Pipeline,
	enricher core.Enricher,
	renderer core.Renderer,
) ([]byte, error) {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc, err := analyze.ParseHTML(strings.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	report, err := analyzer.Analyze(result.URL, doc)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if enricher != nil {
		enrichment, err := enricher.Enrich(ctx, report, result.HTML)
		if err != nil {
			slog.Warn("enrichment failed", "url", rawURL, "error", err)
		} else {
			report.Enrichment = enrichment
		}
	}

	data, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}
