// Report aggregation: weighted overall score, severity tallies, grade,
// summary text. The overall score is a documented weighted mean of the ten
// dimensions minus documented severity and compound-absence penalties. The
// penalties are what let a page riddled with failures degrade well below the
// per-dimension baselines while a clean page stays at them.
package analyze

import (
	"fmt"
	"math"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// dimensionWeights order matches the dimension constants. WCAG compliance
// dominates; perception dimensions trail.
var dimensionWeights = [dimensionCount]float64{
	0.25, // WCAG Compliance
	0.15, // Visual Clarity
	0.15, // Cognitive Load
	0.10, // Mobile Usability
	0.08, // Color Accessibility
	0.08, // Navigation Ease
	0.07, // Content Hierarchy
	0.05, // Interactive Feedback
	0.04, // Trust Signals
	0.03, // Performance Perception
}

const (
	severePenaltyPer   = 4
	severePenaltyCap   = 20
	moderatePenaltyPer = 2
	moderatePenaltyCap = 15
)

// AggregateReport combines scores and issues into the final AuditReport.
// Pure: no I/O, no clock, inputs unchanged. AnalyzedAt is left empty for the
// caller to stamp.
func AggregateReport(url string, signals core.SignalSet, scores core.DimensionScores, issues []core.Issue) *core.AuditReport {
	severe, moderate, casual := tallySeverities(issues)

	overall := overallScore(scores, signals, severe, moderate)

	return &core.AuditReport{
		URL:           url,
		OverallScore:  overall,
		Grade:         scoreToGrade(overall),
		Scores:        scores,
		SiteProfile:   ClassifySite(url),
		Summary:       buildSummary(url, overall, scores, signals),
		SevereCount:   severe,
		ModerateCount: moderate,
		CasualCount:   casual,
		Issues:        issues,
		Signals:       signals,
	}
}

func tallySeverities(issues []core.Issue) (severe, moderate, casual int) {
	for _, i := range issues {
		switch i.Severity {
		case core.SeveritySevere:
			severe++
		case core.SeverityModerate:
			moderate++
		default:
			casual++
		}
	}
	return
}

func overallScore(scores core.DimensionScores, signals core.SignalSet, severe, moderate int) int {
	vals := dimensionValues(scores)
	weighted := 0.0
	for i, w := range dimensionWeights {
		weighted += w * float64(vals[i])
	}

	penalty := minInt(severe*severePenaltyPer, severePenaltyCap) +
		minInt(moderate*moderatePenaltyPer, moderatePenaltyCap)

	// Pages missing several structural basics at once are worse than the
	// sum of the parts: each absence multiplies the cost of the others.
	switch absences := structuralAbsences(signals); {
	case absences >= 4:
		penalty += 10
	case absences == 3:
		penalty += 5
	}

	return clampScore(int(math.Round(weighted - float64(penalty))))
}

// structuralAbsences counts how many page-wide basics are missing entirely.
func structuralAbsences(s core.SignalSet) int {
	n := 0
	if !s.HasLangAttr {
		n++
	}
	if !s.HasSkipLink {
		n++
	}
	if !s.HasViewportMeta {
		n++
	}
	if s.SemanticElementCount == 0 {
		n++
	}
	return n
}

func scoreToGrade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func buildSummary(url string, overall int, scores core.DimensionScores, signals core.SignalSet) string {
	var base string
	switch {
	case overall < 40:
		base = fmt.Sprintf("%s has critical accessibility issues that need immediate attention. Multiple barriers prevent users with disabilities from using the site effectively.", url)
	case overall < 60:
		base = fmt.Sprintf("%s has significant room for improvement. Several important accessibility features are missing or improperly implemented.", url)
	case overall < 75:
		base = fmt.Sprintf("%s meets basic accessibility standards but lacks optimization. Key improvements would significantly enhance the experience.", url)
	default:
		base = fmt.Sprintf("%s demonstrates good accessibility practices with minor areas for enhancement.", url)
	}

	worstIdx := 0
	vals := dimensionValues(scores)
	for i, v := range vals {
		if v < vals[worstIdx] {
			worstIdx = i
		}
	}
	base += fmt.Sprintf(" Priority focus area: %s (currently %d/100).", dimensionNames[worstIdx], vals[worstIdx])

	if isMinimalContent(signals) {
		base += " Note: the document contained little analyzable content; baseline scores apply."
	}
	return base
}

// isMinimalContent distinguishes "nothing wrong detected" from "nothing
// analyzable": an essentially empty document still gets a valid baseline
// report rather than a failure or an inflated score.
func isMinimalContent(s core.SignalSet) bool {
	return s.ImagesTotal == 0 && s.InputsTotal == 0 && s.LinksTotal == 0 &&
		s.H1Count == 0 && s.SemanticElementCount == 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
