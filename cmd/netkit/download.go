package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/crawl"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	var dl *netkit.Download
	path, err := deps.Store.Save(deps.Ctx, c.URL, func(w io.Writer) error {
		var err error
		dl, err = deps.Downloader.Download(deps.Ctx, c.URL, w)
		return err
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Download failed: %s\n", netkit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s (%s, xxhash %s)\n", path, crawl.FormatBytes(dl.Bytes), dl.Checksum)
	return nil
}
