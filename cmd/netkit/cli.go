package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/crawl"
	netkitprom "github.com/fwojciec/netkit/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher    netkit.PageFetcher
	Downloader netkit.Downloader
	Store      netkit.FileStore
	Connector  netkit.Connector
	Links      netkit.LinkExtractor
	Forms      netkit.FormExtractor
	Crawler    *crawl.Crawler

	// Metrics is nil unless --metrics-addr is set.
	Metrics *netkitprom.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config       kong.ConfigFlag `help:"Load flag values from a YAML file"`
	LogLevel     string          `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogDev       bool            `help:"Human-readable console logs"`
	MetricsAddr  string          `help:"Serve Prometheus metrics on this address (disabled when empty)"`
	TimeoutFetch time.Duration   `default:"10s" help:"HTTP fetch timeout per page"`

	Listen   ListenCmd   `cmd:"" help:"Start the TCP echo listener"`
	Connect  ConnectCmd  `cmd:"" help:"Open an interactive TCP session"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a site and list same-host links"`
	Headers  HeadersCmd  `cmd:"" help:"Show the status and headers of a URL"`
	Forms    FormsCmd    `cmd:"" help:"List the HTML forms of a page or site"`
	Download DownloadCmd `cmd:"" help:"Download a URL to a file"`
}

// ListenCmd is the "listen" subcommand.
type ListenCmd struct {
	Host     string `default:"0.0.0.0" help:"Interface to bind"`
	Port     int    `default:"8080" help:"Port to bind (0 picks a free port)"`
	MaxConns int64  `default:"0" help:"Maximum concurrent connections (0 = unlimited)"`
}

// ConnectCmd is the "connect" subcommand.
type ConnectCmd struct {
	Host     string        `arg:"" help:"Remote host"`
	Port     int           `arg:"" help:"Remote port"`
	Timeout  time.Duration `default:"30s" help:"Connect timeout"`
	Raw      bool          `help:"Put the terminal in raw mode"`
	NoEscape bool          `help:"Disable the Ctrl+] escape character"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL   string `arg:"" help:"Base URL"`
	Depth int    `short:"d" default:"2" help:"Maximum link depth"`
}

// HeadersCmd is the "headers" subcommand.
type HeadersCmd struct {
	URL string `arg:"" help:"URL to inspect"`
}

// FormsCmd is the "forms" subcommand.
type FormsCmd struct {
	URL        string `arg:"" help:"Page URL"`
	CrawlDepth int    `default:"-1" help:"Crawl to this depth first and scan every page (-1 = single page)"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	URL  string `arg:"" help:"URL to download"`
	Dest string `default:"." help:"Destination directory"`
}
