// Issue synthesis: each raised signal condition maps to one canonical issue
// template filled with the actual counts. The catalog is ordered severe →
// moderate → casual, and within a tier by a fixed priority (WCAG-blocking
// problems before cosmetic ones), so the output sequence is stable by
// construction. Impact figures are estimates, phrased as such; there is no
// per-site measurement behind them.
package analyze

import (
	"fmt"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

type issueTemplate struct {
	raised func(core.SignalSet) bool
	build  func(core.SignalSet) core.Issue
}

var issueCatalog = []issueTemplate{
	// --- severe ---
	{
		raised: func(s core.SignalSet) bool { return s.ImagesMissingAlt > 0 },
		build: func(s core.SignalSet) core.Issue {
			pct := 100
			if s.ImagesTotal > 0 {
				pct = s.ImagesMissingAlt * 100 / s.ImagesTotal
			}
			return core.Issue{
				Title:          "Missing Alternative Text for Images",
				Severity:       core.SeveritySevere,
				Description:    fmt.Sprintf("%d of %d images lack alt text, making them invisible to screen readers.", s.ImagesMissingAlt, s.ImagesTotal),
				Recommendation: `Add descriptive alt text to every informative image. Mark decorative images with alt="" plus role="presentation".`,
				WhyThisMatters: "Blind and low-vision users rely on screen readers to describe images; without alt text that content simply does not exist for them.",
				ImpactMetric:   fmt.Sprintf("Estimate: restoring alt text covers %d%% of the page's visual content for screen-reader users.", pct),
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.InputsMissingLabel > 0 },
		build: func(s core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Form Inputs Without Labels",
				Severity:       core.SeveritySevere,
				Description:    fmt.Sprintf("%d form controls have no associated label, aria-label, or aria-labelledby.", s.InputsMissingLabel),
				Recommendation: "Associate every control with a <label for=...> element or give it an aria-label.",
				WhyThisMatters: "Screen-reader users cannot tell what an unlabeled field expects, so forms become guesswork or dead ends.",
				ImpactMetric:   "Estimate: labeled controls improve assisted form completion by roughly a third.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return !s.HasLangAttr },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Missing Language Declaration",
				Severity:       core.SeveritySevere,
				Description:    "The document root declares no lang attribute.",
				Recommendation: `Add lang="en" (or the page's actual language code) to the <html> element.`,
				WhyThisMatters: "Screen readers pick pronunciation rules from the declared language; without it content may be read with the wrong voice entirely.",
				ImpactMetric:   "Estimate: affects pronunciation for every screen-reader user on the page.",
			}
		},
	},

	// --- moderate ---
	{
		raised: func(s core.SignalSet) bool { return s.H1Count == 0 },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Missing H1 Heading",
				Severity:       core.SeverityModerate,
				Description:    "The page has no level-1 heading to anchor its structure.",
				Recommendation: "Add a single <h1> describing the page's main content.",
				WhyThisMatters: "Screen-reader users navigate by headings; without an H1 the page has no identifiable starting point.",
				ImpactMetric:   "Estimate: heading navigation covers the most common screen-reader browsing strategy.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.H1Count > 1 },
		build: func(s core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Multiple H1 Headings",
				Severity:       core.SeverityModerate,
				Description:    fmt.Sprintf("%d level-1 headings compete for the page's main topic.", s.H1Count),
				Recommendation: "Keep one <h1> and demote the others to <h2> or below.",
				WhyThisMatters: "Several H1s leave assistive-technology users unsure which heading names the page.",
				ImpactMetric:   "Estimate: a single H1 makes the page outline unambiguous.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.HeadingSkips > 0 },
		build: func(s core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Skipped Heading Levels",
				Severity:       core.SeverityModerate,
				Description:    fmt.Sprintf("Heading levels jump by more than one in %d places.", s.HeadingSkips),
				Recommendation: "Fix the hierarchy so levels descend one step at a time (H1 → H2 → H3).",
				WhyThisMatters: "Skipped levels break the mental outline users build from headings and hide the relationship between sections.",
				ImpactMetric:   "Estimate: a sound hierarchy measurably shortens time-to-content for heading navigation.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.LinksWithoutText > 0 },
		build: func(s core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Links Without Descriptive Text",
				Severity:       core.SeverityModerate,
				Description:    fmt.Sprintf("%d links expose no text, aria-label, or described image.", s.LinksWithoutText),
				Recommendation: "Give every link visible text or an aria-label; give icon links an accessible name.",
				WhyThisMatters: "A screen reader announces these as just \"link\", so keyboard and screen-reader users cannot tell where they lead.",
				ImpactMetric:   "Estimate: named links remove the largest source of navigation dead ends for screen-reader users.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return !s.HasSkipLink },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "No Skip Navigation Link",
				Severity:       core.SeverityModerate,
				Description:    "No early anchor lets keyboard users jump past the navigation to the main content.",
				Recommendation: `Add <a href="#main">Skip to main content</a> as the first focusable element.`,
				WhyThisMatters: "Keyboard-only users must otherwise tab through the full navigation on every page view.",
				ImpactMetric:   "Estimate: saves keyboard users 15-30 seconds per page.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return !s.HasViewportMeta },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Missing Mobile Viewport Meta Tag",
				Severity:       core.SeverityModerate,
				Description:    "The page declares no viewport, so mobile browsers render the desktop layout.",
				Recommendation: `Add <meta name="viewport" content="width=device-width, initial-scale=1">.`,
				WhyThisMatters: "Mobile users are forced into constant zooming and panning, which compounds every other accessibility problem on small screens.",
				ImpactMetric:   "Estimate: affects the majority of traffic on mobile-heavy audiences.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.LowContrastPairs > 0 },
		build: func(s core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "Potential Low-Contrast Text",
				Severity:       core.SeverityModerate,
				Description:    fmt.Sprintf("%d declared foreground/background pairs fall below the 4.5:1 contrast ratio. Heuristic: only inline-declared colors are checked.", s.LowContrastPairs),
				Recommendation: "Raise the contrast of the flagged color pairs to at least 4.5:1 (3:1 for large text).",
				WhyThisMatters: "Low-contrast text is hard to read for low-vision users and for anyone in bright light.",
				ImpactMetric:   "Estimate: contrast problems affect roughly one in five users in some lighting condition.",
			}
		},
	},

	// --- casual ---
	{
		raised: func(s core.SignalSet) bool { return s.SemanticElementCount == 0 },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "No Semantic HTML5 Elements",
				Severity:       core.SeverityCasual,
				Description:    "The page is built from generic containers with no main, nav, header, footer, article, section, or aside.",
				Recommendation: "Replace structural <div>s with the matching semantic elements.",
				WhyThisMatters: "Semantic elements give assistive technologies a map of the page; generic divs give them nothing to navigate by.",
				ImpactMetric:   "Estimate: landmark navigation is markedly faster than linear reading.",
			}
		},
	},
	{
		raised: func(s core.SignalSet) bool { return s.AriaLandmarkCount == 0 },
		build: func(core.SignalSet) core.Issue {
			return core.Issue{
				Title:          "No ARIA Landmarks",
				Severity:       core.SeverityCasual,
				Description:    "No element exposes a landmark role, explicitly or through a native landmark element.",
				Recommendation: "Introduce landmark elements (main, nav) or role attributes for the page's major regions.",
				WhyThisMatters: "Landmarks let screen-reader users jump between page regions instead of reading linearly.",
				ImpactMetric:   "Estimate: region jumping is a core efficiency feature of every major screen reader.",
			}
		},
	},
}

// SynthesizeIssues converts raised signals into the ordered issue list.
func SynthesizeIssues(s core.SignalSet) []core.Issue {
	issues := make([]core.Issue, 0, len(issueCatalog))
	for _, t := range issueCatalog {
		if t.raised(s) {
			issues = append(issues, t.build(s))
		}
	}
	return issues
}

// raisedConditions counts how many catalog conditions a SignalSet trips.
// Used by the Trust Signals dimension: overall trust erodes with each
// distinct problem regardless of tier.
func raisedConditions(s core.SignalSet) int {
	n := 0
	for _, t := range issueCatalog {
		if t.raised(s) {
			n++
		}
	}
	return n
}
