package netkit

import (
	"context"
	"fmt"
	"net"
)

// Connector opens outbound TCP connections.
type Connector interface {
	// Connect performs a single synchronous connect to host:port.
	// Failures are returned as *ConnectError; there is no retry.
	Connect(ctx context.Context, host string, port int) (net.Conn, error)
}

// ConnectFailure classifies why an outbound connect failed.
type ConnectFailure int

const (
	// ConnectFailureIO is any failure not covered by a more specific kind.
	ConnectFailureIO ConnectFailure = iota

	// ConnectFailureResolve indicates the host name could not be resolved.
	ConnectFailureResolve

	// ConnectFailureRefused indicates the peer actively refused the connection.
	ConnectFailureRefused

	// ConnectFailureTimeout indicates the connect did not complete in time.
	ConnectFailureTimeout
)

// String returns a human-readable name for the failure kind.
func (f ConnectFailure) String() string {
	switch f {
	case ConnectFailureResolve:
		return "name resolution failed"
	case ConnectFailureRefused:
		return "connection refused"
	case ConnectFailureTimeout:
		return "timeout"
	default:
		return "i/o error"
	}
}

// ConnectError is returned by Connector implementations.
type ConnectError struct {
	Failure ConnectFailure
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %s: %v", e.Address, e.Failure, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// BindError is returned when a listener cannot bind its address.
// It is always reported before any connection is accepted.
type BindError struct {
	Address string
	Err     error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Address, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }
