package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

func sampleReport() *core.AuditReport {
	return &core.AuditReport{
		URL:          "https://example.com",
		OverallScore: 47,
		Grade:        "F",
		Scores: core.DimensionScores{
			WCAGCompliance: 28, VisualClarity: 57, CognitiveLoad: 58,
			MobileUsability: 62, ColorAccessibility: 59, NavigationEase: 52,
			ContentHierarchy: 57, InteractiveFeedback: 54, TrustSignals: 62,
			PerformancePerception: 64,
		},
		SiteProfile:   "General Website",
		Summary:       "https://example.com has significant room for improvement. Priority focus area: WCAG Compliance (currently 28/100).",
		SevereCount:   1,
		ModerateCount: 1,
		Issues: []core.Issue{
			{
				Title:          "Missing Alternative Text for Images",
				Severity:       core.SeveritySevere,
				Description:    "3 of 8 images lack alt text, making them invisible to screen readers.",
				Recommendation: "Add descriptive alt text to every informative image.",
				WhyThisMatters: "Blind and low-vision users rely on screen readers.",
				ImpactMetric:   "Estimate: restoring alt text covers 37% of the page's visual content for screen-reader users.",
			},
			{
				Title:          "No Skip Navigation Link",
				Severity:       core.SeverityModerate,
				Description:    "No early anchor lets keyboard users jump past the navigation.",
				Recommendation: "Add a skip link as the first focusable element.",
				WhyThisMatters: "Keyboard-only users must otherwise tab through the full navigation.",
				ImpactMetric:   "Estimate: saves keyboard users 15-30 seconds per page.",
			},
		},
		Signals:    core.SignalSet{ImagesTotal: 8, ImagesMissingAlt: 3},
		AnalyzedAt: "2026-03-14T09:26:53Z",
	}
}

func TestJSONRenderer(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded core.AuditReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.OverallScore != 47 || decoded.Scores.WCAGCompliance != 28 {
		t.Errorf("round trip lost values: %+v", decoded)
	}
	if decoded.Enrichment != nil {
		t.Error("enrichment must be omitted when absent")
	}

	// The wire names are part of the API contract.
	for _, key := range []string{`"overall_score"`, `"wcag_compliance"`, `"why_this_matters"`, `"site_profile"`, `"analyzed_at"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("JSON output lacks %s", key)
		}
	}
	if ext := NewJSONRenderer().Extension(); ext != ".json" {
		t.Errorf("Extension = %q, want .json", ext)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# Accessibility Audit: https://example.com",
		"47/100 (grade F)",
		"## Dimension Scores",
		"- WCAG Compliance: 28/100",
		"- Performance Perception: 64/100",
		"## Issues (1 severe, 1 moderate, 0 casual)",
		"### 1. Missing Alternative Text for Images [severe]",
		"### 2. No Skip Navigation Link [moderate]",
		"_Analyzed at 2026-03-14T09:26:53Z_",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown output lacks %q", want)
		}
	}
	if strings.Contains(md, "Consultant Notes") {
		t.Error("consultant notes section must not appear without enrichment")
	}
	if ext := NewMarkdownRenderer().Extension(); ext != ".md" {
		t.Errorf("Extension = %q, want .md", ext)
	}
}

func TestMarkdownRendererWithEnrichment(t *testing.T) {
	report := sampleReport()
	report.Enrichment = &core.Enrichment{
		Summary:         "A busy page with fixable gaps.",
		Recommendations: []string{"Start with alt text."},
		Strengths:       []string{"Stable layout."},
	}

	data, err := NewMarkdownRenderer().Render(report)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(data)
	for _, want := range []string{"## Consultant Notes", "A busy page with fixable gaps.", "Start with alt text.", "Stable layout."} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown output lacks %q", want)
		}
	}
}

func TestMarkdownRendererNoIssues(t *testing.T) {
	report := sampleReport()
	report.Issues = nil
	report.SevereCount, report.ModerateCount, report.CasualCount = 0, 0, 0

	data, err := NewMarkdownRenderer().Render(report)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(data), "No issues detected") {
		t.Error("empty issue list needs an explicit statement")
	}
}

func TestPDFRenderer(t *testing.T) {
	data, err := NewPDFRenderer().Render(sampleReport())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with the PDF magic, got %q", data[:8])
	}
	if ext := NewPDFRenderer().Extension(); ext != ".pdf" {
		t.Errorf("Extension = %q, want .pdf", ext)
	}
}
