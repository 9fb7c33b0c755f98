package main

import (
	"fmt"

	"github.com/fwojciec/netkit"
)

// Run executes the forms command.
func (c *FormsCmd) Run(deps *Dependencies) error {
	urls := []string{c.URL}
	if c.CrawlDepth >= 0 {
		result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.CrawlDepth)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", netkit.ErrorMessage(err))
			return err
		}
		urls = result.Visited
	}

	total := 0
	for _, u := range urls {
		page, err := deps.Fetcher.Fetch(deps.Ctx, u)
		if err != nil {
			if len(urls) == 1 {
				fmt.Fprintf(deps.Stderr, "Could not fetch URL: %s\n", netkit.ErrorMessage(err))
				return err
			}
			deps.Logger.Warn("skipping page", "url", u, "err", err)
			continue
		}

		forms, err := deps.Forms.ExtractForms(page.Body, u)
		if err != nil {
			deps.Logger.Warn("form extraction failed", "url", u, "err", err)
			continue
		}
		if len(forms) == 0 {
			continue
		}

		total += len(forms)
		if len(urls) > 1 {
			fmt.Fprintf(deps.Stdout, "\n%s\n", u)
		}
		fmt.Fprintf(deps.Stdout, "Found %d form(s):\n", len(forms))
		for i, f := range forms {
			fmt.Fprintf(deps.Stdout, "  [Form %d] Action: %s | Method: %s\n", i+1, f.Action, f.Method)
			for _, field := range f.Fields {
				fmt.Fprintf(deps.Stdout, "    - %s (%s)\n", field.Name, field.Type)
			}
		}
	}

	if total == 0 {
		fmt.Fprintln(deps.Stdout, "No forms found on that page.")
	}
	return nil
}
