// Dimension scoring: each of the ten dimensions starts from a documented
// baseline and loses points through a declarative deduction table. The
// mapping from signal to dimension is total: every extracted signal feeds
// at least one dimension and every dimension reads a fixed subset of
// signals, so scores are fully determined by the SignalSet with no
// dependence on evaluation order.
//
// A page with zero detected issues scores each dimension's baseline, never
// 100: absence of detected problems is not proof of accessibility.
package analyze

import "github.com/gaurav-prasanna/a11ypipe/core"

type dimension int

const (
	dimWCAGCompliance dimension = iota
	dimVisualClarity
	dimCognitiveLoad
	dimMobileUsability
	dimColorAccessibility
	dimNavigationEase
	dimContentHierarchy
	dimInteractiveFeedback
	dimTrustSignals
	dimPerformancePerception
	dimensionCount
)

var dimensionNames = [dimensionCount]string{
	"WCAG Compliance",
	"Visual Clarity",
	"Cognitive Load",
	"Mobile Usability",
	"Color Accessibility",
	"Navigation Ease",
	"Content Hierarchy",
	"Interactive Feedback",
	"Trust Signals",
	"Performance Perception",
}

// baselines sit in the 50-70 band: a clean page is presumed adequate, not
// perfect.
var baselines = [dimensionCount]int{68, 64, 66, 68, 62, 60, 64, 62, 70, 70}

type deductionKind int

const (
	severeDeduction   deductionKind = iota // -8 per occurrence
	moderateDeduction                      // -4 per occurrence
	minorDeduction                         // -1 per occurrence
	absenceDeduction                       // flat deduction while the condition holds
)

// rule removes points from one dimension based on one signal. limit caps the
// total deduction (and is the flat amount for absence rules) so a runaway
// count cannot drive a dimension far below zero before clamping.
type rule struct {
	signal string
	kind   deductionKind
	limit  int
	count  func(core.SignalSet) int
}

func (r rule) deduction(s core.SignalSet) int {
	n := r.count(s)
	if n <= 0 {
		return 0
	}
	var per int
	switch r.kind {
	case severeDeduction:
		per = 8
	case moderateDeduction:
		per = 4
	case minorDeduction:
		per = 1
	case absenceDeduction:
		return r.limit
	}
	d := n * per
	if d > r.limit {
		d = r.limit
	}
	return d
}

// Signal accessors used by the rule table.
func missingAlt(s core.SignalSet) int    { return s.ImagesMissingAlt }
func missingLabels(s core.SignalSet) int { return s.InputsMissingLabel }
func headingSkips(s core.SignalSet) int  { return s.HeadingSkips }
func emptyLinks(s core.SignalSet) int    { return s.LinksWithoutText }
func contrastPairs(s core.SignalSet) int { return s.LowContrastPairs }

func noLang(s core.SignalSet) int     { return boolToCount(!s.HasLangAttr) }
func noSkipLink(s core.SignalSet) int { return boolToCount(!s.HasSkipLink) }
func noViewport(s core.SignalSet) int { return boolToCount(!s.HasViewportMeta) }
func noSemantic(s core.SignalSet) int { return boolToCount(s.SemanticElementCount == 0) }
func noLandmark(s core.SignalSet) int { return boolToCount(s.AriaLandmarkCount == 0) }
func h1Missing(s core.SignalSet) int  { return boolToCount(s.H1Count == 0) }
func h1Multiple(s core.SignalSet) int { return boolToCount(s.H1Count > 1) }

func boolToCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

// dimensionRules is the complete signal→dimension map.
var dimensionRules = [dimensionCount][]rule{
	dimWCAGCompliance: {
		{"images_missing_alt", severeDeduction, 24, missingAlt},
		{"inputs_missing_label", severeDeduction, 24, missingLabels},
		{"has_lang_attr", absenceDeduction, 5, noLang},
		{"has_skip_link", absenceDeduction, 3, noSkipLink},
	},
	dimVisualClarity: {
		{"h1_count (zero)", moderateDeduction, 4, h1Missing},
		{"images_missing_alt", minorDeduction, 6, missingAlt},
		{"low_contrast_pairs", minorDeduction, 6, contrastPairs},
	},
	dimCognitiveLoad: {
		{"has_lang_attr", absenceDeduction, 5, noLang},
		{"heading_skips", moderateDeduction, 12, headingSkips},
		{"semantic_element_count (zero)", absenceDeduction, 3, noSemantic},
	},
	dimMobileUsability: {
		{"has_viewport_meta", absenceDeduction, 5, noViewport},
		{"inputs_missing_label", minorDeduction, 6, missingLabels},
	},
	dimColorAccessibility: {
		{"low_contrast_pairs", moderateDeduction, 12, contrastPairs},
		{"images_missing_alt", minorDeduction, 6, missingAlt},
	},
	dimNavigationEase: {
		{"has_skip_link", absenceDeduction, 5, noSkipLink},
		{"links_without_text", moderateDeduction, 12, emptyLinks},
		{"aria_landmark_count (zero)", absenceDeduction, 3, noLandmark},
	},
	dimContentHierarchy: {
		{"h1_count (zero)", moderateDeduction, 4, h1Missing},
		{"h1_count (multiple)", moderateDeduction, 4, h1Multiple},
		{"heading_skips", moderateDeduction, 12, headingSkips},
		{"semantic_element_count (zero)", absenceDeduction, 3, noSemantic},
	},
	dimInteractiveFeedback: {
		{"inputs_missing_label", severeDeduction, 24, missingLabels},
		{"links_without_text", minorDeduction, 6, emptyLinks},
	},
	dimTrustSignals: {
		{"raised_conditions", minorDeduction, 10, raisedConditions},
	},
	dimPerformancePerception: {
		{"has_viewport_meta", absenceDeduction, 3, noViewport},
		{"semantic_element_count (zero)", absenceDeduction, 3, noSemantic},
	},
}

// ScoreDimensions maps a SignalSet to the ten dimension scores.
func ScoreDimensions(s core.SignalSet) core.DimensionScores {
	var vals [dimensionCount]int
	for d := dimension(0); d < dimensionCount; d++ {
		score := baselines[d]
		for _, r := range dimensionRules[d] {
			score -= r.deduction(s)
		}
		vals[d] = clampScore(score)
	}
	return core.DimensionScores{
		WCAGCompliance:        vals[dimWCAGCompliance],
		VisualClarity:         vals[dimVisualClarity],
		CognitiveLoad:         vals[dimCognitiveLoad],
		MobileUsability:       vals[dimMobileUsability],
		ColorAccessibility:    vals[dimColorAccessibility],
		NavigationEase:        vals[dimNavigationEase],
		ContentHierarchy:      vals[dimContentHierarchy],
		InteractiveFeedback:   vals[dimInteractiveFeedback],
		TrustSignals:          vals[dimTrustSignals],
		PerformancePerception: vals[dimPerformancePerception],
	}
}

// dimensionValues exposes the scores in table order for aggregation.
func dimensionValues(ds core.DimensionScores) [dimensionCount]int {
	return [dimensionCount]int{
		ds.WCAGCompliance,
		ds.VisualClarity,
		ds.CognitiveLoad,
		ds.MobileUsability,
		ds.ColorAccessibility,
		ds.NavigationEase,
		ds.ContentHierarchy,
		ds.InteractiveFeedback,
		ds.TrustSignals,
		ds.PerformancePerception,
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
