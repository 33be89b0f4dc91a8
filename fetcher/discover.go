// fetcher/discover.go
package fetcher

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverArchiveURL scrapes a datasets landing page for the anchor whose text
// contains linkText and returns the absolute archive URL. Government portals
// occasionally move the static file path; discovering it from the page keeps
// the config stable across those moves.
func (c *Client) DiscoverArchiveURL(pageURL, linkText string) (string, error) {
	log.Printf("Fetcher: discovering archive link on %s (text: %q)\n", pageURL, linkText)

	resp, err := c.httpClient.Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to get landing page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("failed to get landing page %s: status code %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	var href string
	doc.Find("a").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if !strings.Contains(text, linkText) {
			return true
		}
		if h, ok := sel.Attr("href"); ok {
			href = h
			return false
		}
		return true
	})

	if href == "" {
		return "", fmt.Errorf("no anchor matching %q found on %s", linkText, pageURL)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse page URL %s: %w", pageURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse discovered href %q: %w", href, err)
	}

	resolved := base.ResolveReference(ref).String()
	log.Printf("Fetcher: discovered archive URL %s\n", resolved)
	return resolved, nil
}
