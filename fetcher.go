package netkit

import (
	"context"
	"io"
)

// PageFetcher performs HTTP GET requests.
type PageFetcher interface {
	// Fetch retrieves the URL and returns the response as a Page.
	// An HTTP error status is not a failure: the Page is returned with a nil
	// error. Connection-level failures return a nil Page and an error with
	// code EUNAVAILABLE.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Download describes a completed file download.
type Download struct {
	URL      string
	Path     string
	Bytes    int64
	Checksum string
}

// Downloader streams a URL's body into a writer.
type Downloader interface {
	// Download copies the response body of url into w. Non-2xx responses
	// are returned as errors and nothing is written.
	Download(ctx context.Context, url string, w io.Writer) (*Download, error)
}

// FileStore persists downloaded files.
type FileStore interface {
	// Save creates the file for url and calls fill to write its content.
	// The file only becomes visible at the returned path if fill succeeds.
	Save(ctx context.Context, url string, fill func(w io.Writer) error) (path string, err error)
}
