// Package analyze implements the deterministic audit core: feature
// extraction, dimension scoring, issue synthesis, and report aggregation
// over a parsed document. The whole pipeline is a single-pass stateless
// transformation with no shared state, safe to run concurrently.
package analyze

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// ErrMalformedDocument is returned when the structural model cannot be
// queried at all. Distinct from a merely empty page, which still audits.
var ErrMalformedDocument = errors.New("malformed document: no queryable parse tree")

// Config configures a Pipeline. The zero value is fully usable: the scoring
// core itself takes no configuration by design.
type Config struct {
	// Logger for debug output. Defaults to slog.Default().
	Logger *slog.Logger

	// Now supplies report timestamps; override in tests for reproducible
	// output. Defaults to time.Now.
	Now func() time.Time
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Pipeline runs the full audit over parsed documents.
type Pipeline struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{logger: cfg.Logger, now: cfg.Now}
}

// ParseHTML builds the structural model for the pipeline from raw markup.
func ParseHTML(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Analyze audits a parsed document: extract signals, score dimensions,
// synthesize issues, aggregate. Same document in, bit-identical report out
// (timestamps aside; inject Config.Now for full reproducibility).
func (p *Pipeline) Analyze(url string, doc *goquery.Document) (*core.AuditReport, error) {
	if doc == nil || doc.Selection == nil || len(doc.Nodes) == 0 {
		return nil, ErrMalformedDocument
	}

	signals := ExtractSignals(doc)
	scores := ScoreDimensions(signals)
	issues := SynthesizeIssues(signals)
	report := AggregateReport(url, signals, scores, issues)
	report.AnalyzedAt = p.now().UTC().Format(time.RFC3339)

	p.logger.Debug("audit analyzed",
		"url", url,
		"overall", report.OverallScore,
		"severe", report.SevereCount,
		"moderate", report.ModerateCount,
		"casual", report.CasualCount,
	)
	return report, nil
}
