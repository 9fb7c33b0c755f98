// Package goquery extracts links from HTML documents using CSS selectors.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/netkit"
)

// anchorSelector matches every anchor element carrying an href.
const anchorSelector = "a[href]"

var _ netkit.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor implements netkit.LinkExtractor using goquery.
type LinkExtractor struct {
	selector string
}

// NewLinkExtractor creates a LinkExtractor that collects all anchor hrefs.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{selector: anchorSelector}
}

// ExtractLinks returns the absolute URLs of the anchors in body, resolved
// against pageURL, in document order without duplicates. Fragments are
// stripped. Links with non-HTTP schemes (javascript:, mailto:, tel:, data:)
// and empty hrefs are skipped. Links to other hosts are kept; filtering by
// host is left to the caller.
func (e *LinkExtractor) ExtractLinks(body []byte, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find(e.selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string if href cannot be parsed or resolves to a
// non-HTTP scheme.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
