package tcp_test

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/tcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitHostPort(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestDialer_Connect(t *testing.T) {
	t.Parallel()

	t.Run("connects to the echo server", func(t *testing.T) {
		t.Parallel()

		logger, _ := observedLogger()
		addr, _, _ := startServer(t, &tcp.Server{Logger: logger})
		host, port := splitHostPort(t, addr)

		conn, err := (&tcp.Dialer{}).Connect(context.Background(), host, port)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
		assert.Equal(t, tcp.Greeting, readN(t, conn, len(tcp.Greeting)))
	})

	t.Run("classifies a closed port as refused", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		host, port := splitHostPort(t, ln.Addr().String())
		require.NoError(t, ln.Close())

		_, err = (&tcp.Dialer{}).Connect(context.Background(), host, port)

		var connErr *netkit.ConnectError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, netkit.ConnectFailureRefused, connErr.Failure)
		assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	})

	t.Run("classifies an unknown host as a resolution failure", func(t *testing.T) {
		t.Parallel()

		_, err := (&tcp.Dialer{Timeout: 5 * time.Second}).Connect(context.Background(), "no-such-host.invalid", 80)

		var connErr *netkit.ConnectError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, netkit.ConnectFailureResolve, connErr.Failure)
		assert.Equal(t, "no-such-host.invalid:80", connErr.Address)
	})

	t.Run("classifies an expired deadline as a timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := (&tcp.Dialer{}).Connect(ctx, "127.0.0.1", 9)

		var connErr *netkit.ConnectError
		require.ErrorAs(t, err, &connErr)
		assert.Equal(t, netkit.ConnectFailureTimeout, connErr.Failure)
	})

	t.Run("rejects out of range ports", func(t *testing.T) {
		t.Parallel()

		d := &tcp.Dialer{}
		_, err := d.Connect(context.Background(), "127.0.0.1", 0)
		assert.Equal(t, netkit.EINVALID, netkit.ErrorCode(err))

		_, err = d.Connect(context.Background(), "127.0.0.1", 65536)
		assert.Equal(t, netkit.EINVALID, netkit.ErrorCode(err))
	})

	t.Run("rejects an empty host", func(t *testing.T) {
		t.Parallel()

		_, err := (&tcp.Dialer{}).Connect(context.Background(), "", 80)

		assert.Equal(t, netkit.EINVALID, netkit.ErrorCode(err))
	})
}

func TestIsExpectedCloseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "EOF", err: io.EOF, want: true},
		{name: "closed connection", err: net.ErrClosed, want: true},
		{name: "wrapped reset", err: &net.OpError{Op: "read", Err: syscall.ECONNRESET}, want: true},
		{name: "broken pipe", err: &net.OpError{Op: "write", Err: syscall.EPIPE}, want: true},
		{name: "other error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tcp.IsExpectedCloseError(tt.err))
		})
	}
}
