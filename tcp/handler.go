package tcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/google/uuid"
)

// Echo protocol constants.
const (
	// Greeting is sent once to every client right after accept.
	Greeting = "Connection Established to Server\r\n"

	// EchoPrefix precedes every echoed chunk.
	EchoPrefix = "ECHO: "

	// ReadBufferSize is the maximum number of bytes read per echo.
	ReadBufferSize = 1024
)

// handle runs one echo session. conn is closed on every exit path.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	logger := s.logger().With(
		"conn_id", uuid.NewString(),
		"remote_addr", conn.RemoteAddr().String(),
	)
	logger.Info("client connected")

	if _, err := io.WriteString(conn, Greeting); err != nil {
		logSessionEnd(ctx, logger, err)
		return
	}

	buf := make([]byte, ReadBufferSize)
	reply := make([]byte, 0, len(EchoPrefix)+ReadBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			reply = append(reply[:0], EchoPrefix...)
			reply = append(reply, buf[:n]...)
			if _, werr := conn.Write(reply); werr != nil {
				logSessionEnd(ctx, logger, werr)
				return
			}
		}
		if err != nil {
			logSessionEnd(ctx, logger, err)
			return
		}
	}
}

func logSessionEnd(ctx context.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		logger.Info("client disconnected")
	case ctx.Err() != nil:
		logger.Info("connection closed on shutdown")
	case isResetError(err):
		logger.Warn("connection reset by client", "err", err)
	case errors.Is(err, net.ErrClosed):
		logger.Info("connection closed")
	default:
		logger.Error("connection error", "err", err)
	}
}
