// Feature extraction: one walk over the parsed document produces the flat
// SignalSet consumed by scoring and issue synthesis. Total and deterministic:
// malformed-but-parseable markup never fails, the same tree always yields the
// same signals.
package analyze

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// semanticSelector matches the HTML5 sectioning elements counted as
// document structure.
const semanticSelector = "main, nav, header, footer, article, section, aside"

// landmarkRoles are the ARIA roles recognized as page landmarks.
var landmarkRoles = map[string]bool{
	"banner":        true,
	"navigation":    true,
	"main":          true,
	"complementary": true,
	"contentinfo":   true,
	"search":        true,
	"form":          true,
	"region":        true,
}

// nativeLandmarkTags map to implicit landmark roles exposed by screen
// readers without an explicit role attribute.
var nativeLandmarkTags = map[string]bool{
	"main":   true,
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
}

// exemptInputTypes are form controls that carry their own accessible name
// (or none at all) and are not expected to have a label.
var exemptInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

var skipLinkText = regexp.MustCompile(`(?i)\b(skip|jump)\b`)

// skipLinkTargets are fragment ids conventionally pointing at main content.
var skipLinkTargets = map[string]bool{
	"main":         true,
	"content":      true,
	"main-content": true,
	"maincontent":  true,
	"skip":         true,
}

// maxSkipLinkPosition bounds how deep in document order a skip link may
// appear and still help keyboard users.
const maxSkipLinkPosition = 5

// ExtractSignals walks the parsed document and returns its SignalSet.
func ExtractSignals(doc *goquery.Document) core.SignalSet {
	var s core.SignalSet

	extractImages(doc, &s)
	extractFormControls(doc, &s)
	extractHeadings(doc, &s)
	extractLinks(doc, &s)
	extractLandmarks(doc, &s)

	s.HasLangAttr = strings.TrimSpace(doc.Find("html").AttrOr("lang", "")) != ""
	s.HasViewportMeta = hasViewportMeta(doc)
	s.LowContrastPairs = countLowContrastPairs(doc)

	return s
}

func extractImages(doc *goquery.Document, s *core.SignalSet) {
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		s.ImagesTotal++

		alt, ok := img.Attr("alt")
		if !ok {
			// Attribute absent entirely: always missing.
			s.ImagesMissingAlt++
			return
		}
		if strings.TrimSpace(alt) != "" {
			return
		}
		// Empty alt counts unless the image is explicitly decorative or
		// named through another attribute.
		if isDecorative(img) || hasAriaName(img) {
			return
		}
		s.ImagesMissingAlt++
	})
}

func isDecorative(sel *goquery.Selection) bool {
	role := strings.ToLower(strings.TrimSpace(sel.AttrOr("role", "")))
	if role == "presentation" || role == "none" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(sel.AttrOr("aria-hidden", "")), "true")
}

func hasAriaName(sel *goquery.Selection) bool {
	return strings.TrimSpace(sel.AttrOr("aria-label", "")) != "" ||
		strings.TrimSpace(sel.AttrOr("aria-labelledby", "")) != "" ||
		strings.TrimSpace(sel.AttrOr("title", "")) != ""
}

func extractFormControls(doc *goquery.Document, s *core.SignalSet) {
	// Collect the ids referenced by <label for=...> once.
	labeledIDs := make(map[string]bool)
	doc.Find("label[for]").Each(func(_ int, l *goquery.Selection) {
		if id := strings.TrimSpace(l.AttrOr("for", "")); id != "" {
			labeledIDs[id] = true
		}
	})

	doc.Find("input, select, textarea").Each(func(_ int, ctl *goquery.Selection) {
		if goquery.NodeName(ctl) == "input" {
			typ := strings.ToLower(strings.TrimSpace(ctl.AttrOr("type", "text")))
			if exemptInputTypes[typ] {
				return
			}
		}
		s.InputsTotal++

		if strings.TrimSpace(ctl.AttrOr("aria-label", "")) != "" ||
			strings.TrimSpace(ctl.AttrOr("aria-labelledby", "")) != "" {
			return
		}
		if id := strings.TrimSpace(ctl.AttrOr("id", "")); id != "" && labeledIDs[id] {
			return
		}
		// A wrapping <label> also associates implicitly.
		if ctl.Closest("label").Length() > 0 {
			return
		}
		s.InputsMissingLabel++
	})
}

func extractHeadings(doc *goquery.Document, s *core.SignalSet) {
	prev := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		name := goquery.NodeName(h)
		level := int(name[1] - '0')
		if level == 1 {
			s.H1Count++
		}
		if prev != 0 && level-prev > 1 {
			s.HeadingSkips++
		}
		prev = level
	})
}

func extractLinks(doc *goquery.Document, s *core.SignalSet) {
	doc.Find("a").Each(func(i int, a *goquery.Selection) {
		s.LinksTotal++

		if i < maxSkipLinkPosition && isSkipLink(a) {
			s.HasSkipLink = true
		}

		if strings.TrimSpace(a.Text()) != "" || hasAriaName(a) {
			return
		}
		// An image child with alt text names the link.
		named := false
		a.Find("img").Each(func(_ int, img *goquery.Selection) {
			if strings.TrimSpace(img.AttrOr("alt", "")) != "" {
				named = true
			}
		})
		if !named {
			s.LinksWithoutText++
		}
	})
}

// isSkipLink recognizes early-document anchors that jump to main content.
func isSkipLink(a *goquery.Selection) bool {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	if !strings.HasPrefix(href, "#") || len(href) < 2 {
		return false
	}
	if skipLinkTargets[strings.ToLower(href[1:])] {
		return true
	}
	return skipLinkText.MatchString(a.Text())
}

func extractLandmarks(doc *goquery.Document, s *core.SignalSet) {
	s.SemanticElementCount = doc.Find(semanticSelector).Length()

	doc.Find("*").Each(func(_ int, el *goquery.Selection) {
		role, hasRole := el.Attr("role")
		if hasRole {
			if landmarkRoles[strings.ToLower(strings.TrimSpace(role))] {
				s.AriaLandmarkCount++
			}
			return
		}
		if nativeLandmarkTags[goquery.NodeName(el)] {
			s.AriaLandmarkCount++
		}
	})
}

func hasViewportMeta(doc *goquery.Document) bool {
	found := false
	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		if strings.EqualFold(strings.TrimSpace(m.AttrOr("name", "")), "viewport") {
			found = true
		}
	})
	return found
}
