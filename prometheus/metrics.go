// Package prometheus exposes Prometheus collectors for netkit services.
package prometheus

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/netkit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the netkit collectors registered on one registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	connectionsAccepted prometheus.Counter
	connectionsActive   prometheus.Gauge
	fetchesTotal        *prometheus.CounterVec
	fetchDuration       prometheus.Histogram
	connectsTotal       *prometheus.CounterVec
}

// NewMetrics registers the netkit collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		connectionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "netkit_connections_accepted_total",
			Help: "Total number of TCP connections accepted by the listener.",
		}),
		connectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "netkit_connections_active",
			Help: "Number of TCP connections currently open on the listener.",
		}),
		fetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netkit_fetches_total",
			Help: "Total number of page fetches, labeled by HTTP status class.",
		}, []string{"status"}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "netkit_fetch_duration_seconds",
			Help:    "Histogram of page fetch latencies.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		connectsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "netkit_connects_total",
			Help: "Total number of outbound connect attempts, labeled by result.",
		}, []string{"result"}),
	}
}

// Handler returns an http.Handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// StatusClass maps an HTTP status code to its class label ("2xx", "4xx").
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// InstrumentListener counts accepted and active connections of ln.
func (m *Metrics) InstrumentListener(ln net.Listener) net.Listener {
	return &listener{Listener: ln, metrics: m}
}

type listener struct {
	net.Listener
	metrics *Metrics
}

func (l *listener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	l.metrics.connectionsAccepted.Inc()
	l.metrics.connectionsActive.Inc()
	return &trackedConn{Conn: conn, metrics: l.metrics}, nil
}

// trackedConn decrements the active gauge exactly once on Close.
type trackedConn struct {
	net.Conn
	metrics *Metrics
	once    sync.Once
}

func (c *trackedConn) Close() error {
	c.once.Do(c.metrics.connectionsActive.Dec)
	return c.Conn.Close()
}

var (
	_ netkit.PageFetcher = (*Fetcher)(nil)
	_ netkit.Connector   = (*Connector)(nil)
)

// Fetcher wraps a PageFetcher with request counters and latency.
type Fetcher struct {
	next    netkit.PageFetcher
	metrics *Metrics
}

// InstrumentFetcher wraps next with fetch metrics.
func (m *Metrics) InstrumentFetcher(next netkit.PageFetcher) *Fetcher {
	return &Fetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*netkit.Page, error) {
	begin := time.Now()
	page, err := f.next.Fetch(ctx, url)
	f.metrics.fetchDuration.Observe(time.Since(begin).Seconds())
	if err != nil {
		f.metrics.fetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	f.metrics.fetchesTotal.WithLabelValues(StatusClass(page.StatusCode)).Inc()
	return page, nil
}

// Connector wraps a Connector with attempt counters.
type Connector struct {
	next    netkit.Connector
	metrics *Metrics
}

// InstrumentConnector wraps next with connect metrics.
func (m *Metrics) InstrumentConnector(next netkit.Connector) *Connector {
	return &Connector{next: next, metrics: m}
}

// Connect delegates to the wrapped connector and records the result.
func (c *Connector) Connect(ctx context.Context, host string, port int) (net.Conn, error) {
	conn, err := c.next.Connect(ctx, host, port)
	c.metrics.connectsTotal.WithLabelValues(connectResult(err)).Inc()
	return conn, err
}

func connectResult(err error) string {
	if err == nil {
		return "ok"
	}
	var connErr *netkit.ConnectError
	if !errors.As(err, &connErr) {
		return "invalid"
	}
	switch connErr.Failure {
	case netkit.ConnectFailureResolve:
		return "resolve"
	case netkit.ConnectFailureRefused:
		return "refused"
	case netkit.ConnectFailureTimeout:
		return "timeout"
	default:
		return "io"
	}
}
