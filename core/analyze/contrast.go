// Low-contrast detection over colors declared in markup. This is a
// heuristic, not a rendered-pixel measurement: only inline style attributes
// that declare BOTH a foreground and a background color are considered, and
// anything unparseable is skipped. Cascading stylesheets, inherited colors,
// and images behind text are invisible to it.
package analyze

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minContrastRatio is the WCAG AA threshold for normal-size text.
const minContrastRatio = 4.5

var (
	fgDeclRe = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([^;]+)`)
	bgDeclRe = regexp.MustCompile(`(?i)(?:^|;)\s*background(?:-color)?\s*:\s*([^;]+)`)
	rgbFnRe  = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)
)

// namedColors covers the handful of keywords that show up in inline styles.
// Unknown names are skipped rather than guessed.
var namedColors = map[string][3]uint8{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"yellow": {255, 255, 0},
	"orange": {255, 165, 0},
	"purple": {128, 0, 128},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"silver": {192, 192, 192},
	"navy":   {0, 0, 128},
	"teal":   {0, 128, 128},
	"maroon": {128, 0, 0},
}

// countLowContrastPairs scans inline style attributes for declared
// foreground/background pairs failing the AA luminance ratio.
func countLowContrastPairs(doc *goquery.Document) int {
	count := 0
	doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style := el.AttrOr("style", "")

		fgMatch := fgDeclRe.FindStringSubmatch(style)
		bgMatch := bgDeclRe.FindStringSubmatch(style)
		if fgMatch == nil || bgMatch == nil {
			return
		}

		fg, ok := parseColor(fgMatch[1])
		if !ok {
			return
		}
		bg, ok := parseColor(bgMatch[1])
		if !ok {
			return
		}

		if contrastRatio(fg, bg) < minContrastRatio {
			count++
		}
	})
	return count
}

// parseColor understands #rgb, #rrggbb, rgb()/rgba(), and a small set of
// named colors.
func parseColor(raw string) ([3]uint8, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))

	if c, ok := namedColors[v]; ok {
		return c, true
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		switch len(hex) {
		case 3:
			var c [3]uint8
			for i := 0; i < 3; i++ {
				n, err := strconv.ParseUint(string(hex[i]), 16, 8)
				if err != nil {
					return [3]uint8{}, false
				}
				c[i] = uint8(n*16 + n)
			}
			return c, true
		case 6:
			var c [3]uint8
			for i := 0; i < 3; i++ {
				n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
				if err != nil {
					return [3]uint8{}, false
				}
				c[i] = uint8(n)
			}
			return c, true
		default:
			return [3]uint8{}, false
		}
	}

	if m := rgbFnRe.FindStringSubmatch(v); m != nil {
		var c [3]uint8
		for i := 0; i < 3; i++ {
			n, err := strconv.Atoi(m[i+1])
			if err != nil || n > 255 {
				return [3]uint8{}, false
			}
			c[i] = uint8(n)
		}
		return c, true
	}

	return [3]uint8{}, false
}

// contrastRatio computes the WCAG contrast ratio between two colors.
func contrastRatio(a, b [3]uint8) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// relativeLuminance implements the WCAG sRGB luminance formula.
func relativeLuminance(c [3]uint8) float64 {
	lin := func(ch uint8) float64 {
		v := float64(ch) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c[0]) + 0.7152*lin(c[1]) + 0.0722*lin(c[2])
}
