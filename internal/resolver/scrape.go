package resolver

import (
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"grabarr/internal/utils/logging"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"golang.org/x/net/publicsuffix"
)

// pageScraper scans a share page for an embedded video source when the API
// response does not carry one.
type pageScraper struct{}

func newPageScraper() *pageScraper {
	return &pageScraper{}
}

// findVideoSource visits the share page and returns the first embedded video
// source URL it finds.
func (p *pageScraper) findVideoSource(shareURL string) (string, error) {
	collector, err := newCollector()
	if err != nil {
		return "", err
	}

	var videoURL string

	collector.OnHTML("html", func(container *colly.HTMLElement) {
		doc := container.DOM
		videoURL = extractVideoSource(doc)
	})

	logging.D(1, "Scraping %q for an embedded video source...", shareURL)

	if err := collector.Visit(shareURL); err != nil {
		return "", fmt.Errorf("failed to visit share page %q: %w", shareURL, err)
	}
	collector.Wait()

	if videoURL == "" {
		return "", fmt.Errorf("no embedded video source found at %q", shareURL)
	}
	return videoURL, nil
}

// newCollector initializes a Colly collector with a cookie jar.
func newCollector() (*colly.Collector, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	collector := colly.NewCollector(
		colly.Async(true),
	)
	collector.SetRequestTimeout(60 * time.Second)
	collector.SetCookieJar(jar)

	return collector, nil
}

// extractVideoSource pulls a direct media URL out of the page DOM.
//
// Checks <video>/<source> elements first, then the og:video meta property.
func extractVideoSource(doc *goquery.Selection) string {
	selectors := []string{"video source[src]", "video[src]"}

	for _, sel := range selectors {
		if src, ok := doc.Find(sel).First().Attr("src"); ok && src != "" {
			return strings.TrimSpace(src)
		}
	}

	if content, ok := doc.Find(`meta[property="og:video"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}
