// Package crawl provides breadth-first, depth-bounded, same-domain site
// crawling on top of a netkit.PageFetcher and a netkit.LinkExtractor.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/bloom"
)

// Visited set sizing for the Bloom filter pre-check.
const (
	// visitedExpectedURLs is the expected number of URLs per crawl.
	visitedExpectedURLs = 10000
	// visitedFalsePositiveRate is the filter's false positive rate.
	visitedFalsePositiveRate = 0.01
)

// Crawler walks a site breadth-first starting at a base URL.
// A Crawler holds no per-crawl state; concurrent Crawl calls are independent.
type Crawler struct {
	Fetcher   netkit.PageFetcher
	Extractor netkit.LinkExtractor

	// Logger receives crawl progress. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Result holds the outcome of a crawl.
type Result struct {
	// Visited lists every URL that was processed, in visit order.
	Visited []string

	// Failed counts visited URLs whose fetch failed.
	Failed int

	// Dropped counts frontier entries discarded for exceeding the max depth.
	Dropped int
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Crawl visits baseURL and every same-host page reachable from it through at
// most maxDepth links, and returns the set of visited URLs.
//
// A URL is marked visited when it is dequeued, whether or not its fetch
// succeeds. Entries deeper than maxDepth are dropped without being marked.
// Fetch and link extraction failures yield an empty link set and the crawl
// continues. If ctx is cancelled the crawl stops before the next URL and
// returns the partial result together with ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, baseURL string, maxDepth int) (*Result, error) {
	if maxDepth < 0 {
		return nil, netkit.Errorf(netkit.EINVALID, "max depth must not be negative, got %d", maxDepth)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid base URL: %v", err)
	}
	if base.Host == "" {
		return nil, netkit.Errorf(netkit.EINVALID, "base URL %q has no host", baseURL)
	}

	// Visited URLs are fragment-free, like the extracted links.
	seed := baseURL
	if i := strings.IndexByte(seed, '#'); i >= 0 {
		seed = seed[:i]
	}

	logger := c.logger()
	logger.Info("crawl started", "url", seed, "max_depth", maxDepth)

	frontier := NewFrontier()
	frontier.Push(seed, 0)
	visited := bloom.NewSet(visitedExpectedURLs, visitedFalsePositiveRate)
	result := &Result{}

	for {
		entry, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			result.Visited = visited.Members()
			logger.Warn("crawl cancelled", "url", baseURL, "pages", len(result.Visited), "err", err)
			return result, err
		}

		if visited.Has(entry.URL) {
			continue
		}
		if entry.Depth > maxDepth {
			result.Dropped++
			logger.Debug("max depth reached, skipping", "url", entry.URL, "depth", entry.Depth)
			continue
		}

		visited.Add(entry.URL)
		logger.Info("crawling", "url", entry.URL, "depth", entry.Depth)

		for _, link := range c.links(ctx, entry.URL, result) {
			if visited.Has(link) || !sameHost(base, link) {
				continue
			}
			frontier.Push(link, entry.Depth+1)
		}
	}

	result.Visited = visited.Members()
	logger.Info("crawl complete",
		"url", baseURL,
		"pages", len(result.Visited),
		"estimated_pages", visited.EstimatedCount(),
		"failed", result.Failed,
		"dropped", result.Dropped,
	)
	return result, nil
}

// links fetches pageURL and returns the links found on it.
// Any failure is logged and results in no links.
func (c *Crawler) links(ctx context.Context, pageURL string, result *Result) []string {
	page, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		result.Failed++
		c.logger().Warn("fetch failed", "url", pageURL, "err", err)
		return nil
	}
	if len(page.Body) == 0 {
		return nil
	}

	links, err := c.Extractor.ExtractLinks(page.Body, pageURL)
	if err != nil {
		c.logger().Warn("link extraction failed", "url", pageURL, "err", err)
		return nil
	}
	return links
}

// sameHost reports whether rawURL has exactly the same network location
// (host and optional port) as base. The comparison is case-sensitive.
func sameHost(base *url.URL, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}
