// Package crawl discovers the set of internal pages to audit in --all mode.
// Discovery tries sitemap.xml first and falls back to breadth-first link
// crawling, capped so a large site cannot turn one audit into thousands.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// DefaultMaxPages bounds BFS discovery when no limit is configured.
const DefaultMaxPages = 100

// Discoverer finds internal URLs for a site-wide audit.
type Discoverer struct {
	fetcher  core.Fetcher
	logger   *slog.Logger
	maxPages int
}

// Config configures a Discoverer.
type Config struct {
	Fetcher  core.Fetcher
	Logger   *slog.Logger
	MaxPages int
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
}

// New creates a Discoverer. Config.Fetcher is required.
func New(cfg Config) *Discoverer {
	cfg.defaults()
	return &Discoverer{
		fetcher:  cfg.Fetcher,
		logger:   cfg.Logger,
		maxPages: cfg.MaxPages,
	}
}

// sitemapEntry holds one URL from a sitemap.xml.
type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// sitemapRoot is the root element of a sitemap.xml.
type sitemapRoot struct {
	URLs []sitemapEntry `xml:"url"`
}

// Discover returns the internal URLs to audit starting from baseURL.
// The baseURL itself is always first in the result.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host

	sitemapAddr := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := d.fromSitemap(ctx, sitemapAddr, domain)
	if err == nil && len(urls) > 0 {
		d.logger.Info("discovered pages from sitemap", "count", len(urls), "domain", domain)
		return withBaseFirst(NormalizeURL(baseURL), urls), nil
	}
	d.logger.Debug("sitemap unavailable, falling back to link crawl", "domain", domain)

	urls, err = d.fromLinks(ctx, baseURL, domain)
	if err != nil {
		return nil, err
	}
	d.logger.Info("discovered pages from links", "count", len(urls), "domain", domain)
	return urls, nil
}

// fromSitemap fetches and parses sitemap.xml for internal URLs.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemapAddr string, domain string) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapAddr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapRoot
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, entry := range sitemap.URLs {
		if IsAuditable(entry.Loc, domain) {
			urls = append(urls, NormalizeURL(entry.Loc))
		}
		if len(urls) >= d.maxPages {
			break
		}
	}
	return urls, nil
}

// fromLinks performs BFS crawling to find internal links.
func (d *Discoverer) fromLinks(ctx context.Context, startURL string, domain string) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() && queue.Visited() < d.maxPages {
		currentURL := queue.Next()

		result, err := d.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			d.logger.Debug("skipping unreachable page", "url", currentURL, "error", err)
			continue
		}

		links, err := pageLinks(result.HTML, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if IsAuditable(link, domain) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All(), nil
}

// pageLinks extracts href values from <a> tags, resolving relative URLs.
func pageLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}

// withBaseFirst returns urls with base moved (or inserted) at the front.
func withBaseFirst(base string, urls []string) []string {
	out := []string{base}
	for _, u := range urls {
		if u != base {
			out = append(out, u)
		}
	}
	return out
}
