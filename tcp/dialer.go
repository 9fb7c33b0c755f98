package tcp

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/fwojciec/netkit"
)

// DefaultConnectTimeout bounds a single outbound connect attempt.
const DefaultConnectTimeout = 30 * time.Second

var _ netkit.Connector = (*Dialer)(nil)

// Dialer implements netkit.Connector with a single synchronous TCP dial.
type Dialer struct {
	// Timeout bounds the connect. Zero means DefaultConnectTimeout.
	Timeout time.Duration
}

// Connect dials host:port once. Failures are *netkit.ConnectError.
func (d *Dialer) Connect(ctx context.Context, host string, port int) (net.Conn, error) {
	if host == "" {
		return nil, netkit.Errorf(netkit.EINVALID, "host must not be empty")
	}
	if port < 1 || port > 65535 {
		return nil, netkit.Errorf(netkit.EINVALID, "port must be in range 1-65535, got %d", port)
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &netkit.ConnectError{
			Failure: classifyDialError(err),
			Address: address,
			Err:     err,
		}
	}
	return conn, nil
}

// classifyDialError maps a dial error to a ConnectFailure.
func classifyDialError(err error) netkit.ConnectFailure {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return netkit.ConnectFailureResolve
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return netkit.ConnectFailureRefused
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return netkit.ConnectFailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return netkit.ConnectFailureTimeout
	}
	return netkit.ConnectFailureIO
}
