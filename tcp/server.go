// Package tcp implements the TCP echo listener and the outbound connector.
package tcp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/netkit"
	"golang.org/x/sync/semaphore"
)

// Accept-error backoff bounds.
const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = 1 * time.Second
)

// Server accepts TCP connections and runs an echo session on each one in
// its own goroutine. Handlers share no mutable state.
type Server struct {
	// Logger receives connection lifecycle events. If nil, slog.Default() is used.
	Logger *slog.Logger

	// MaxConns bounds the number of concurrently served connections.
	// Zero or negative means unbounded. When the limit is reached, pending
	// clients wait in the listen backlog until a handler exits.
	MaxConns int64
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Address joins host and port into a listen address. Ports outside
// 0-65535 are rejected with EINVALID.
func Address(host string, port int) (string, error) {
	if port < 0 || port > 65535 {
		return "", netkit.Errorf(netkit.EINVALID, "port must be in range 0-65535, got %d", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// Listen binds address. Bind failures are returned as *netkit.BindError.
func Listen(ctx context.Context, address string) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, &netkit.BindError{Address: address, Err: err}
	}
	return ln, nil
}

// ListenAndServe binds address and serves it until ctx is cancelled.
// A bind failure is returned before any connection is accepted.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	ln, err := Listen(ctx, address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed.
// Accept errors are logged and retried with backoff. On return ln is
// closed and every handler has exited.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := s.logger()
	logger.Info("listening", "addr", ln.Addr().String(), "max_conns", s.MaxConns)

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()
	defer ln.Close()

	var sem *semaphore.Weighted
	if s.MaxConns > 0 {
		sem = semaphore.NewWeighted(s.MaxConns)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	var backoff time.Duration
	for {
		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				logger.Info("listener stopped", "addr", ln.Addr().String())
				return nil
			}
		}

		conn, err := ln.Accept()
		if err != nil {
			if sem != nil {
				sem.Release(1)
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				logger.Info("listener stopped", "addr", ln.Addr().String())
				return nil
			}

			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff = min(backoff*2, maxAcceptBackoff)
			}
			logger.Error("accept failed", "err", err, "retry_in", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		backoff = 0

		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem != nil {
				defer sem.Release(1)
			}
			s.handle(ctx, conn)
		}()
	}
}
