package bridge_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/netkit/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connPair returns a connected client and server over loopback TCP.
func connPair(t *testing.T) (client, server net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	client, err = net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	server, ok := <-accepted
	require.True(t, ok, "accept failed")

	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	require.NoError(t, server.SetDeadline(time.Now().Add(5*time.Second)))
	return client, server
}

// cancelPipe is a blocking local reader that supports cancellation.
type cancelPipe struct {
	*io.PipeReader
}

var errCanceled = errors.New("read canceled")

func (p cancelPipe) Cancel() bool {
	_ = p.CloseWithError(errCanceled)
	return true
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runBridge runs b in the background and returns a channel with its outcome.
func runBridge(ctx context.Context, b *bridge.Bridge, conn net.Conn) <-chan runResult {
	out := make(chan runResult, 1)
	go func() {
		stats, err := b.Run(ctx, conn)
		out <- runResult{stats: stats, err: err}
	}()
	return out
}

type runResult struct {
	stats *bridge.Stats
	err   error
}

func wait(t *testing.T, ch <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("bridge did not finish")
		return runResult{}
	}
}

func TestBridge_Run(t *testing.T) {
	t.Parallel()

	t.Run("relays both directions until the remote closes", func(t *testing.T) {
		t.Parallel()

		client, server := connPair(t)
		pr, pw := io.Pipe()
		var output bytes.Buffer
		b := &bridge.Bridge{Local: cancelPipe{pr}, Output: &output, Escape: bridge.DefaultEscape, Logger: discardLogger()}

		done := runBridge(context.Background(), b, client)

		go func() { _, _ = pw.Write([]byte("ping")) }()
		got := make([]byte, 4)
		_, err := io.ReadFull(server, got)
		require.NoError(t, err)
		assert.Equal(t, "ping", string(got))

		_, err = server.Write([]byte("pong"))
		require.NoError(t, err)
		require.NoError(t, server.Close())

		r := wait(t, done)
		require.NoError(t, r.err)
		assert.Equal(t, "pong", output.String())
		assert.Equal(t, int64(4), r.stats.Sent)
		assert.Equal(t, int64(4), r.stats.Received)
	})

	t.Run("ends the session on the escape byte and closes the socket", func(t *testing.T) {
		t.Parallel()

		client, server := connPair(t)
		b := &bridge.Bridge{
			Local:  strings.NewReader("abc\x1ddef"),
			Output: io.Discard,
			Escape: bridge.DefaultEscape,
			Logger: discardLogger(),
		}

		r := wait(t, runBridge(context.Background(), b, client))

		require.NoError(t, r.err)
		assert.Equal(t, int64(3), r.stats.Sent)

		received, err := io.ReadAll(server)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(received))
	})

	t.Run("forwards the escape byte when escape is disabled", func(t *testing.T) {
		t.Parallel()

		client, server := connPair(t)
		b := &bridge.Bridge{Local: strings.NewReader("a\x1db"), Output: io.Discard, Logger: discardLogger()}

		r := wait(t, runBridge(context.Background(), b, client))

		require.NoError(t, r.err)
		received, err := io.ReadAll(server)
		require.NoError(t, err)
		assert.Equal(t, "a\x1db", string(received))
	})

	t.Run("closes the connection when local input ends", func(t *testing.T) {
		t.Parallel()

		client, server := connPair(t)
		b := &bridge.Bridge{Local: strings.NewReader("bye"), Output: io.Discard, Logger: discardLogger()}

		r := wait(t, runBridge(context.Background(), b, client))

		require.NoError(t, r.err)
		received, err := io.ReadAll(server)
		require.NoError(t, err)
		assert.Equal(t, "bye", string(received))
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		client, _ := connPair(t)
		pr, _ := io.Pipe()
		b := &bridge.Bridge{Local: cancelPipe{pr}, Output: io.Discard, Logger: discardLogger()}
		ctx, cancel := context.WithCancel(context.Background())

		done := runBridge(ctx, b, client)
		cancel()

		r := wait(t, done)
		assert.ErrorIs(t, r.err, context.Canceled)
	})

	t.Run("returns when the remote closes even if local input cannot be cancelled", func(t *testing.T) {
		t.Parallel()

		client, server := connPair(t)
		pr, pw := io.Pipe()
		t.Cleanup(func() { _ = pw.Close() })
		b := &bridge.Bridge{Local: pr, Output: io.Discard, Logger: discardLogger()}

		done := runBridge(context.Background(), b, client)
		require.NoError(t, server.Close())

		r := wait(t, done)
		require.NoError(t, r.err)
	})
}
