package mock

import (
	"context"
	"io"

	"github.com/fwojciec/netkit"
)

var _ netkit.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of netkit.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*netkit.Page, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (*netkit.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ netkit.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of netkit.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, w io.Writer) (*netkit.Download, error)
}

func (d *Downloader) Download(ctx context.Context, url string, w io.Writer) (*netkit.Download, error) {
	return d.DownloadFn(ctx, url, w)
}

var _ netkit.FileStore = (*FileStore)(nil)

// FileStore is a mock implementation of netkit.FileStore.
type FileStore struct {
	SaveFn func(ctx context.Context, url string, fill func(w io.Writer) error) (string, error)
}

func (s *FileStore) Save(ctx context.Context, url string, fill func(w io.Writer) error) (string, error) {
	return s.SaveFn(ctx, url, fill)
}
