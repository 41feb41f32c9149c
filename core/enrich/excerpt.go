package enrich

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ContentExcerpt converts page HTML to Markdown and truncates it for use in
// the enrichment prompt. Returns "" when the page yields nothing usable;
// the prompt simply omits the excerpt then.
func ContentExcerpt(html string, limit int) string {
	if html == "" {
		return ""
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return ""
	}
	runes := []rune(markdown)
	if len(runes) <= limit {
		return markdown
	}
	return string(runes[:limit])
}
