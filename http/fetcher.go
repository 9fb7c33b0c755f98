// Package http provides an HTTP-based implementation of netkit.PageFetcher
// and netkit.Downloader.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/netkit"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "netkit/1.0"

// DefaultMaxBodySize caps the number of body bytes Fetch keeps in memory.
const DefaultMaxBodySize = 10 << 20

// Ensure Fetcher implements the fetch interfaces at compile time.
var (
	_ netkit.PageFetcher = (*Fetcher)(nil)
	_ netkit.Downloader  = (*Fetcher)(nil)
)

// Fetcher performs HTTP GET requests.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for Fetch requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many body bytes Fetch reads.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithClient replaces the underlying HTTP client. The client's own timeout
// is left untouched; the Fetch timeout still applies per request.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}

	return f
}

// Fetch retrieves the given URL. Any HTTP status yields a Page; only
// request construction and transport failures return an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*netkit.Page, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, netkit.Errorf(netkit.EUNAVAILABLE, "read body of %s: %v", url, err)
	}

	return &netkit.Page{
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     flattenHeader(resp.Header),
		Body:       body,
	}, nil
}

// Download streams the body of url into w. Unlike Fetch, no timeout is
// applied beyond ctx since downloads may be arbitrarily large.
func (f *Fetcher) Download(ctx context.Context, url string, w io.Writer) (*netkit.Download, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, netkit.Errorf(netkit.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	digest := xxhash.New()
	n, err := io.Copy(io.MultiWriter(w, digest), resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	return &netkit.Download{
		URL:      url,
		Bytes:    n,
		Checksum: fmt.Sprintf("%016x", digest.Sum64()),
	}, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, netkit.Errorf(netkit.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, netkit.Errorf(netkit.EUNAVAILABLE, "could not fetch %s: %v", url, err)
	}
	return resp, nil
}

// flattenHeader joins multi-valued headers with ", ".
func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
