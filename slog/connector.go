package slog

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/netkit"
)

var _ netkit.Connector = (*LoggingConnector)(nil)

// LoggingConnector wraps a Connector with logging.
type LoggingConnector struct {
	next   netkit.Connector
	logger *slog.Logger
}

// NewLoggingConnector creates a new LoggingConnector.
func NewLoggingConnector(next netkit.Connector, logger *slog.Logger) *LoggingConnector {
	return &LoggingConnector{next: next, logger: logger}
}

// Connect delegates to the wrapped connector and logs the operation.
func (c *LoggingConnector) Connect(ctx context.Context, host string, port int) (conn net.Conn, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", host,
			"port", port,
			"duration", time.Since(begin),
		}
		if conn != nil {
			attrs = append(attrs, "local_addr", conn.LocalAddr().String())
		}
		var connErr *netkit.ConnectError
		if errors.As(err, &connErr) {
			attrs = append(attrs, "failure", connErr.Failure.String())
		}
		attrs = append(attrs, "err", err)
		c.logger.Info("connect", attrs...)
	}(time.Now())
	return c.next.Connect(ctx, host, port)
}
