// Package core defines the pipeline interfaces and value types for a11ypipe.
// Each stage of the audit pipeline is a clean, testable interface; the
// analysis stages themselves are pure functions over immutable inputs.
package core

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Analyzer runs the pure audit pipeline over a parsed document:
// signal extraction, dimension scoring, issue synthesis, aggregation.
// It performs no I/O and never mutates the document.
type Analyzer interface {
	Analyze(url string, doc *goquery.Document) (*AuditReport, error)
}

// Enricher augments a completed report with textual elaboration from an
// external model. It must never alter the deterministic scores: it returns
// an Enrichment value that the caller attaches additively.
type Enricher interface {
	Enrich(ctx context.Context, report *AuditReport, pageHTML string) (*Enrichment, error)
}

// Renderer converts an AuditReport into a final output format.
type Renderer interface {
	Render(report *AuditReport) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}
