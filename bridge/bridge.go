// Package bridge relays bytes between a local terminal and a TCP connection.
package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/fwojciec/netkit/tcp"
)

// DefaultEscape is Ctrl+], the telnet escape character.
const DefaultEscape byte = 0x1d

// errEscape ends the local direction when the escape byte is read.
var errEscape = errors.New("escape character received")

// Canceler is implemented by local readers whose blocked Read can be
// interrupted, such as github.com/muesli/cancelreader readers.
type Canceler interface {
	Cancel() bool
}

// Bridge copies Local into a connection and the connection into Output
// until either side ends.
type Bridge struct {
	// Local is the source of bytes sent to the remote, usually stdin.
	Local io.Reader

	// Output receives bytes from the remote, usually stdout.
	Output io.Writer

	// Escape ends the session when read from Local. Zero disables it.
	Escape byte

	// Logger receives session events. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Stats counts the bytes relayed in each direction.
type Stats struct {
	Sent     int64
	Received int64
}

type copyResult struct {
	direction string
	err       error
}

func (b *Bridge) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// Run relays until the remote closes, Local ends or yields the escape
// byte, or ctx is cancelled. The first direction to finish closes conn and
// cancels Local if it implements Canceler. Run then waits for the other
// direction, except for a local read that cannot be cancelled: that
// goroutine exits on its next read.
//
// Normal closure (EOF, closed connection, reset, broken pipe, escape) is
// reported as a nil error. Cancellation returns ctx.Err().
func (b *Bridge) Run(ctx context.Context, conn net.Conn) (*Stats, error) {
	logger := b.logger().With("remote_addr", conn.RemoteAddr().String())

	var sent, received atomic.Int64
	done := make(chan copyResult, 2)

	cancelLocal := func() bool {
		if c, ok := b.Local.(Canceler); ok {
			return c.Cancel()
		}
		return false
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
		cancelLocal()
	})
	defer stop()

	go func() {
		err := copyUntilEscape(&countingWriter{w: conn, n: &sent}, b.Local, b.Escape)
		done <- copyResult{direction: "local", err: err}
	}()

	go func() {
		_, err := io.Copy(&countingWriter{w: b.Output, n: &received}, conn)
		done <- copyResult{direction: "remote", err: err}
	}()

	first := <-done
	_ = conn.Close()
	localCancelled := cancelLocal()
	if first.direction == "local" || localCancelled {
		<-done
	}

	stats := &Stats{Sent: sent.Load(), Received: received.Load()}

	if err := ctx.Err(); err != nil {
		logger.Info("session cancelled", "sent", stats.Sent, "received", stats.Received)
		return stats, err
	}

	switch {
	case first.err == nil, errors.Is(first.err, errEscape), tcp.IsExpectedCloseError(first.err):
		logger.Info("session closed", "ended_by", first.direction, "sent", stats.Sent, "received", stats.Received)
		return stats, nil
	default:
		logger.Error("session failed", "ended_by", first.direction, "err", first.err)
		return stats, first.err
	}
}

// copyUntilEscape copies src to dst until EOF or the escape byte. Bytes
// before the escape byte are forwarded; the escape byte and anything after
// it are not.
func copyUntilEscape(dst io.Writer, src io.Reader, escape byte) error {
	buf := make([]byte, 32*1024)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			escaped := false
			if escape != 0 {
				for i, c := range chunk {
					if c == escape {
						chunk = chunk[:i]
						escaped = true
						break
					}
				}
			}
			if len(chunk) > 0 {
				if _, err := dst.Write(chunk); err != nil {
					return err
				}
			}
			if escaped {
				return errEscape
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return nil
			}
			return rerr
		}
	}
}

type countingWriter struct {
	w io.Writer
	n *atomic.Int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}
