package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/crawl"
	"github.com/fwojciec/netkit/fs"
	"github.com/fwojciec/netkit/goquery"
	"github.com/fwojciec/netkit/html"
	netkithttp "github.com/fwojciec/netkit/http"
	netkitprom "github.com/fwojciec/netkit/prometheus"
	netkitslog "github.com/fwojciec/netkit/slog"
	"github.com/fwojciec/netkit/tcp"
	"github.com/fwojciec/netkit/yaml"
	netkitzap "github.com/fwojciec/netkit/zap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is the local side of interactive sessions.
	Stdin io.Reader

	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher    netkit.PageFetcher
	Downloader netkit.Downloader
	Connector  netkit.Connector
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("netkit"),
		kong.Description("Network toolkit: TCP echo listener, interactive client and site crawler"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.DefaultEnvars("NETKIT"),
		kong.Configuration(yaml.Loader),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'netkit --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := netkitzap.NewLogger(stderr, cli.LogLevel, cli.LogDev)
	if err != nil {
		return err
	}
	deps.Logger = logger

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()
	deps.Ctx = runCtx

	if cli.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		deps.Metrics = netkitprom.NewMetrics(reg)

		ln, err := net.Listen("tcp", cli.MetricsAddr)
		if err != nil {
			return &netkit.BindError{Address: cli.MetricsAddr, Err: err}
		}
		srv := &http.Server{Handler: deps.Metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		logger.Info("serving metrics", "addr", ln.Addr().String())

		g.Go(func() error {
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-runCtx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// Wire core services into dependencies
	httpFetcher := netkithttp.NewFetcher(netkithttp.WithTimeout(cli.TimeoutFetch))
	deps.Fetcher = m.Fetcher
	if deps.Fetcher == nil {
		deps.Fetcher = httpFetcher
	}
	deps.Fetcher = netkitslog.NewLoggingFetcher(deps.Fetcher, logger)
	if deps.Metrics != nil {
		deps.Fetcher = deps.Metrics.InstrumentFetcher(deps.Fetcher)
	}

	deps.Downloader = m.Downloader
	if deps.Downloader == nil {
		deps.Downloader = httpFetcher
	}
	deps.Downloader = netkitslog.NewLoggingDownloader(deps.Downloader, logger)

	deps.Links = goquery.NewLinkExtractor()
	deps.Forms = html.NewFormExtractor()
	deps.Crawler = &crawl.Crawler{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Links,
		Logger:    logger,
	}

	// Wire command-specific dependencies based on command
	switch kongCtx.Command() {
	case "connect <host> <port>":
		deps.Connector = m.Connector
		if deps.Connector == nil {
			deps.Connector = &tcp.Dialer{Timeout: cli.Connect.Timeout}
		}
		deps.Connector = netkitslog.NewLoggingConnector(deps.Connector, logger)
		if deps.Metrics != nil {
			deps.Connector = deps.Metrics.InstrumentConnector(deps.Connector)
		}
	case "download <url>":
		deps.Store = fs.NewFileStore(cli.Download.Dest)
	}

	g.Go(func() error {
		defer cancel()
		return kongCtx.Run(deps)
	})
	return g.Wait()
}
