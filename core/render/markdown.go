// Markdown renderer: the human-readable report format, and the intermediate
// form the PDF renderer consumes.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// MarkdownRenderer writes the report as a Markdown document.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the Markdown report.
func (r *MarkdownRenderer) Render(report *core.AuditReport) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Accessibility Audit: %s\n\n", report.URL)
	fmt.Fprintf(&b, "**Overall score: %d/100 (grade %s)** — %s\n\n", report.OverallScore, report.Grade, report.SiteProfile)
	fmt.Fprintf(&b, "%s\n\n", report.Summary)

	b.WriteString("## Dimension Scores\n\n")
	for _, row := range dimensionRows(report.Scores) {
		fmt.Fprintf(&b, "- %s: %d/100\n", row.name, row.score)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Issues (%d severe, %d moderate, %d casual)\n\n",
		report.SevereCount, report.ModerateCount, report.CasualCount)
	if len(report.Issues) == 0 {
		b.WriteString("No issues detected by the rule set.\n\n")
	}
	for i, issue := range report.Issues {
		fmt.Fprintf(&b, "### %d. %s [%s]\n\n", i+1, issue.Title, issue.Severity)
		fmt.Fprintf(&b, "%s\n\n", issue.Description)
		fmt.Fprintf(&b, "- Recommendation: %s\n", issue.Recommendation)
		fmt.Fprintf(&b, "- Why this matters: %s\n", issue.WhyThisMatters)
		fmt.Fprintf(&b, "- Impact: %s\n\n", issue.ImpactMetric)
	}

	if e := report.Enrichment; e != nil {
		b.WriteString("## Consultant Notes\n\n")
		if e.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", e.Summary)
		}
		for _, rec := range e.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		if len(e.Strengths) > 0 {
			b.WriteString("\nStrengths:\n\n")
			for _, s := range e.Strengths {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
		b.WriteString("\n")
	}

	if report.AnalyzedAt != "" {
		fmt.Fprintf(&b, "_Analyzed at %s_\n", report.AnalyzedAt)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

type dimensionRow struct {
	name  string
	score int
}

// dimensionRows lists the ten dimensions in their canonical order.
func dimensionRows(s core.DimensionScores) []dimensionRow {
	return []dimensionRow{
		{"WCAG Compliance", s.WCAGCompliance},
		{"Visual Clarity", s.VisualClarity},
		{"Cognitive Load", s.CognitiveLoad},
		{"Mobile Usability", s.MobileUsability},
		{"Color Accessibility", s.ColorAccessibility},
		{"Navigation Ease", s.NavigationEase},
		{"Content Hierarchy", s.ContentHierarchy},
		{"Interactive Feedback", s.InteractiveFeedback},
		{"Trust Signals", s.TrustSignals},
		{"Performance Perception", s.PerformancePerception},
	}
}
