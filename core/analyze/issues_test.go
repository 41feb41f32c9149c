package analyze

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

func TestSynthesizeIssuesCleanPage(t *testing.T) {
	issues := SynthesizeIssues(cleanSignals())
	if len(issues) != 0 {
		t.Fatalf("clean page produced %d issues: %+v", len(issues), issues)
	}
}

func TestSynthesizeIssuesTierOrdering(t *testing.T) {
	// A page tripping all three tiers must list severe before moderate
	// before casual, every time.
	issues := SynthesizeIssues(brokenSignals())

	var severe, moderate, casual bool
	prevRank := -1
	for _, issue := range issues {
		rank := issue.Severity.Rank()
		if rank < prevRank {
			t.Fatalf("issue %q (%s) appears after a lower tier", issue.Title, issue.Severity)
		}
		prevRank = rank
		switch issue.Severity {
		case core.SeveritySevere:
			severe = true
		case core.SeverityModerate:
			moderate = true
		case core.SeverityCasual:
			casual = true
		}
	}
	if !severe || !moderate || !casual {
		t.Fatalf("expected all three tiers, got severe=%v moderate=%v casual=%v", severe, moderate, casual)
	}
}

func TestSynthesizeIssuesCountsInterpolated(t *testing.T) {
	s := core.SignalSet{
		ImagesTotal:          8,
		ImagesMissingAlt:     3,
		HasLangAttr:          true,
		H1Count:              1,
		HasSkipLink:          true,
		HasViewportMeta:      true,
		SemanticElementCount: 2,
		AriaLandmarkCount:    1,
	}
	issues := SynthesizeIssues(s)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	issue := issues[0]
	if issue.Title != "Missing Alternative Text for Images" {
		t.Fatalf("unexpected issue %q", issue.Title)
	}
	if !strings.Contains(issue.Description, "3 of 8") {
		t.Errorf("description %q does not carry the counts", issue.Description)
	}
	if issue.Recommendation == "" || issue.WhyThisMatters == "" {
		t.Error("issue missing recommendation or rationale text")
	}
	if !strings.HasPrefix(issue.ImpactMetric, "Estimate:") {
		t.Errorf("impact metric %q must be phrased as an estimate", issue.ImpactMetric)
	}
}

func TestEveryIssueTemplateCompletes(t *testing.T) {
	// Trip every condition and check each built issue is fully populated and
	// phrases its impact as an estimate. The two H1 conditions are mutually
	// exclusive, so it takes two signal sets to cover the whole catalog.
	multiH1 := brokenSignals()
	multiH1.H1Count = 3

	var issues []core.Issue
	issues = append(issues, SynthesizeIssues(brokenSignals())...)
	issues = append(issues, SynthesizeIssues(multiH1)...)

	titles := make(map[string]bool)
	for _, issue := range issues {
		titles[issue.Title] = true
	}
	if len(titles) != len(issueCatalog) {
		t.Fatalf("covered %d distinct templates, want %d", len(titles), len(issueCatalog))
	}
	for _, issue := range issues {
		if issue.Title == "" || issue.Description == "" || issue.Recommendation == "" ||
			issue.WhyThisMatters == "" || issue.ImpactMetric == "" {
			t.Errorf("issue %q has empty fields: %+v", issue.Title, issue)
		}
		if !strings.HasPrefix(issue.ImpactMetric, "Estimate:") {
			t.Errorf("issue %q impact %q is not phrased as an estimate", issue.Title, issue.ImpactMetric)
		}
	}
}

func TestRaisedConditions(t *testing.T) {
	if n := raisedConditions(cleanSignals()); n != 0 {
		t.Errorf("clean page raised %d conditions, want 0", n)
	}
	// The two H1 conditions are mutually exclusive, so one shy of the
	// full catalog is the maximum.
	if n := raisedConditions(brokenSignals()); n != len(issueCatalog)-1 {
		t.Errorf("broken page raised %d conditions, want %d", n, len(issueCatalog)-1)
	}
}
