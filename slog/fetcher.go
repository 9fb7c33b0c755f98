// Package slog provides logging decorators for netkit services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/netkit"
)

// Ensure the decorators implement their interfaces.
var (
	_ netkit.PageFetcher = (*LoggingFetcher)(nil)
	_ netkit.Downloader  = (*LoggingDownloader)(nil)
)

// LoggingFetcher wraps a PageFetcher with logging.
type LoggingFetcher struct {
	next   netkit.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next netkit.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *netkit.Page, err error) {
	defer func(begin time.Time) {
		status, size := 0, 0
		if page != nil {
			status, size = page.StatusCode, len(page.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   netkit.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next netkit.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the operation.
func (d *LoggingDownloader) Download(ctx context.Context, url string, w io.Writer) (dl *netkit.Download, err error) {
	defer func(begin time.Time) {
		var size int64
		var checksum string
		if dl != nil {
			size, checksum = dl.Bytes, dl.Checksum
		}
		d.logger.Info("download",
			"url", url,
			"bytes", size,
			"checksum", checksum,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, w)
}
