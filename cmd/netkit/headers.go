package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/netkit"
)

// Run executes the headers command.
func (c *HeadersCmd) Run(deps *Dependencies) error {
	page, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Could not fetch URL: %s\n", netkit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Status: %d\n", page.StatusCode)
	fmt.Fprintln(deps.Stdout, "Headers:")

	keys := make([]string, 0, len(page.Header))
	for k := range page.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(deps.Stdout, "  %s: %s\n", k, page.Header[k])
	}
	return nil
}
