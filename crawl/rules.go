// Package crawl — URL filtering rules.
// Decides which discovered URLs are worth auditing: only same-domain HTML
// pages produce meaningful accessibility signals, so everything else is
// filtered before it reaches the audit pipeline.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// nonPageExtensions are file extensions that cannot be audited as pages.
// Running the signal extractor over an image or a stylesheet yields an
// empty SignalSet and a misleading baseline report, so these are dropped
// at discovery time instead.
var nonPageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// IsAuditable reports whether a discovered URL should enter the audit
// queue: it must belong to the site being audited and look like an HTML
// page rather than a static asset.
func IsAuditable(rawURL string, domain string) bool {
	return IsSameDomain(rawURL, domain) && !IsStaticAsset(rawURL)
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return nonPageExtensions[ext]
}

// NormalizeURL strips fragments and trailing slashes so the same page is
// never audited twice under different spellings.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""

	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
