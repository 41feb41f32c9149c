package analyze

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func auditHTML(t *testing.T, url, html string) *core.AuditReport {
	t.Helper()
	p := New(Config{Now: fixedClock})
	report, err := p.Analyze(url, mustParse(t, html))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return report
}

// The first concrete scenario: a page failing nearly every structural check
// must land well below the baselines.
func TestAuditBrokenPage(t *testing.T) {
	const page = `<html><head></head><body>
		<img src="logo.png">
		<form><input type="text"></form>
		<div>content in anonymous containers</div>
	</body></html>`

	report := auditHTML(t, "https://example.com", page)

	if report.Signals.HasLangAttr {
		t.Error("expected has_lang_attr=false")
	}
	if report.Signals.H1Count != 0 {
		t.Errorf("H1Count = %d, want 0", report.Signals.H1Count)
	}
	if report.OverallScore < 10 || report.OverallScore > 30 {
		t.Errorf("OverallScore = %d, want within [10,30]", report.OverallScore)
	}
	if len(report.Issues) < 4 {
		t.Errorf("got %d issues, want at least 4", len(report.Issues))
	}
	if report.SevereCount == 0 {
		t.Error("expected at least one severe issue")
	}
	if report.Grade != "F" {
		t.Errorf("Grade = %q, want F", report.Grade)
	}
}

// The second concrete scenario: a structurally sound page lands in the upper
// baseline range with no severe findings.
func TestAuditSoundPage(t *testing.T) {
	const page = `<html lang="en"><head>
		<meta name="viewport" content="width=device-width, initial-scale=1">
	</head><body>
		<nav><a href="/about">About</a></nav>
		<main>
			<h1>Welcome</h1>
			<img src="team.jpg" alt="The team at the 2025 retreat">
			<form><label for="q">Search</label><input id="q" type="text"></form>
		</main>
	</body></html>`

	report := auditHTML(t, "https://example.com", page)

	if report.SevereCount != 0 {
		t.Errorf("SevereCount = %d, want 0; issues: %+v", report.SevereCount, report.Issues)
	}
	if report.OverallScore < 60 || report.OverallScore > 85 {
		t.Errorf("OverallScore = %d, want within [60,85]", report.OverallScore)
	}
	if report.Signals.SemanticElementCount < 2 {
		t.Errorf("SemanticElementCount = %d, want >= 2", report.Signals.SemanticElementCount)
	}
}

func TestAuditIdempotent(t *testing.T) {
	const page = `<html lang="en"><body><h1>T</h1><img src="a.png"><a href="/x"></a></body></html>`

	first := auditHTML(t, "https://example.com", page)
	for i := 0; i < 3; i++ {
		again := auditHTML(t, "https://example.com", page)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
	if first.AnalyzedAt != "2026-03-14T09:26:53Z" {
		t.Errorf("AnalyzedAt = %q, want the injected clock's timestamp", first.AnalyzedAt)
	}
}

func TestAuditEmptyDocument(t *testing.T) {
	// An empty page still audits: baseline-ish report, minimal-content note,
	// no error.
	report := auditHTML(t, "https://example.com", "")

	if report.OverallScore <= 0 || report.OverallScore >= 100 {
		t.Errorf("OverallScore = %d, want a usable interior value", report.OverallScore)
	}
	if !strings.Contains(report.Summary, "little analyzable content") {
		t.Errorf("Summary %q lacks the minimal-content note", report.Summary)
	}
}

func TestAnalyzeNilDocument(t *testing.T) {
	p := New(Config{Now: fixedClock})
	if _, err := p.Analyze("https://example.com", nil); err != ErrMalformedDocument {
		t.Errorf("err = %v, want ErrMalformedDocument", err)
	}
}

func TestSeverityCountConsistency(t *testing.T) {
	pages := map[string]string{
		"broken": `<html><body><img src="a.png"><input type="text"></body></html>`,
		"sound": `<html lang="en"><head><meta name="viewport" content="w"></head>` +
			`<body><a href="#main">Skip</a><nav></nav><main id="main"><h1>T</h1></main></body></html>`,
		"partial": `<html lang="en"><body><h1>A</h1><h1>B</h1><h4>C</h4></body></html>`,
	}

	for name, page := range pages {
		report := auditHTML(t, "https://example.com", page)
		sum := report.SevereCount + report.ModerateCount + report.CasualCount
		if sum != len(report.Issues) {
			t.Errorf("%s: counts sum to %d but issues has %d entries", name, sum, len(report.Issues))
		}
	}
}

func TestOverallScoreMonotonicity(t *testing.T) {
	s := cleanSignals()
	prev := 101
	for missing := 0; missing <= 12; missing += 3 {
		s.ImagesMissingAlt = missing
		scores := ScoreDimensions(s)
		issues := SynthesizeIssues(s)
		report := AggregateReport("https://example.com", s, scores, issues)
		if report.OverallScore > prev {
			t.Errorf("overall rose to %d at images_missing_alt=%d", report.OverallScore, missing)
		}
		prev = report.OverallScore
	}
}

func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "A"}, {90, "A"}, {89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {69, "D"}, {60, "D"},
		{59, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := scoreToGrade(tt.score); got != tt.want {
			t.Errorf("scoreToGrade(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSummaryNamesWorstDimension(t *testing.T) {
	report := auditHTML(t, "https://example.com", `<html><body><img src="a.png"><img src="b.png"><img src="c.png"><input type="text"></body></html>`)

	if !strings.Contains(report.Summary, "Priority focus area:") {
		t.Fatalf("Summary %q lacks the priority note", report.Summary)
	}
	// WCAG Compliance takes the heaviest deductions here and must be named.
	if !strings.Contains(report.Summary, "WCAG Compliance") {
		t.Errorf("Summary %q should name WCAG Compliance as the worst dimension", report.Summary)
	}
}

func TestCompoundAbsencePenalty(t *testing.T) {
	// Identical issue tallies, differing only in how many structural basics
	// are missing: four absences must cost more than two.
	twoMissing := core.SignalSet{
		HasLangAttr: true, HasSkipLink: true,
		ImagesTotal: 1, ImagesMissingAlt: 1,
	}
	fourMissing := core.SignalSet{
		ImagesTotal: 1, ImagesMissingAlt: 1,
	}

	two := AggregateReport("u", twoMissing, ScoreDimensions(twoMissing), SynthesizeIssues(twoMissing))
	four := AggregateReport("u", fourMissing, ScoreDimensions(fourMissing), SynthesizeIssues(fourMissing))

	if four.OverallScore >= two.OverallScore {
		t.Errorf("four absences scored %d, two absences scored %d; compound penalty missing",
			four.OverallScore, two.OverallScore)
	}
}
