// Report value types. Every type here is constructed once per audit and
// never mutated afterwards; an audit run is a pure transformation from a
// parsed document to a fresh AuditReport.
package core

// Severity classifies how strongly an issue blocks real users.
type Severity string

const (
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityCasual   Severity = "casual"
)

// Rank orders severities for sorting: severe first.
func (s Severity) Rank() int {
	switch s {
	case SeveritySevere:
		return 0
	case SeverityModerate:
		return 1
	default:
		return 2
	}
}

// SignalSet is the flat, fully-enumerated set of countable structural
// observations extracted from a document. Every field is known at compile
// time so the signal→dimension mapping can be checked exhaustively.
type SignalSet struct {
	ImagesTotal          int  `json:"images_total"`
	ImagesMissingAlt     int  `json:"images_missing_alt"`
	InputsTotal          int  `json:"inputs_total"`
	InputsMissingLabel   int  `json:"inputs_missing_label"`
	HasLangAttr          bool `json:"has_lang_attr"`
	H1Count              int  `json:"h1_count"`
	HeadingSkips         int  `json:"heading_skips"`
	LinksTotal           int  `json:"links_total"`
	LinksWithoutText     int  `json:"links_without_text"`
	HasSkipLink          bool `json:"has_skip_link"`
	SemanticElementCount int  `json:"semantic_element_count"`
	HasViewportMeta      bool `json:"has_viewport_meta"`
	LowContrastPairs     int  `json:"low_contrast_pairs"`
	AriaLandmarkCount    int  `json:"aria_landmark_count"`
}

// DimensionScores holds the ten scored axes, each clamped to [0,100].
type DimensionScores struct {
	WCAGCompliance        int `json:"wcag_compliance"`
	VisualClarity         int `json:"visual_clarity"`
	CognitiveLoad         int `json:"cognitive_load"`
	MobileUsability       int `json:"mobile_usability"`
	ColorAccessibility    int `json:"color_accessibility"`
	NavigationEase        int `json:"navigation_ease"`
	ContentHierarchy      int `json:"content_hierarchy"`
	InteractiveFeedback   int `json:"interactive_feedback"`
	TrustSignals          int `json:"trust_signals"`
	PerformancePerception int `json:"performance_perception"`
}

// Issue is one prioritized finding. Issues are derived from signals on every
// audit and never persisted independently.
type Issue struct {
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	WhyThisMatters string   `json:"why_this_matters"`
	ImpactMetric   string   `json:"impact_metric"`
}

// AuditReport is the complete result of one audit. It is a response value,
// not a stored entity: constructed within one audit call, returned, discarded.
type AuditReport struct {
	URL           string          `json:"url"`
	OverallScore  int             `json:"overall_score"`
	Grade         string          `json:"grade"`
	Scores        DimensionScores `json:"scores"`
	SiteProfile   string          `json:"site_profile"`
	Summary       string          `json:"summary"`
	SevereCount   int             `json:"severe_count"`
	ModerateCount int             `json:"moderate_count"`
	CasualCount   int             `json:"casual_count"`
	Issues        []Issue         `json:"issues"`
	Signals       SignalSet       `json:"signals"`
	AnalyzedAt    string          `json:"analyzed_at"` // ISO8601

	// Enrichment is optional model-generated elaboration. It is attached
	// after the deterministic pipeline completes and never feeds back into
	// the scores.
	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment carries optional textual elaboration produced by an external
// model. Purely additive: no numeric fields.
type Enrichment struct {
	Summary         string   `json:"summary,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Strengths       []string `json:"strengths,omitempty"`
}
