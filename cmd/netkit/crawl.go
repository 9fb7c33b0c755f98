package main

import (
	"fmt"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/crawl"
)

// maxURLDisplayLen bounds URLs printed in summaries.
const maxURLDisplayLen = 80

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.Depth)
	if err != nil && result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", netkit.ErrorMessage(err))
		return err
	}

	for _, u := range result.Visited {
		fmt.Fprintln(deps.Stdout, u)
	}
	fmt.Fprintf(deps.Stdout, "\nCrawl complete. Found %d links from %s", len(result.Visited), crawl.TruncateURL(c.URL, maxURLDisplayLen))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout, ".")
	return err
}
