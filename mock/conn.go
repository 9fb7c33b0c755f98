package mock

import (
	"context"
	"net"

	"github.com/fwojciec/netkit"
)

var _ netkit.Connector = (*Connector)(nil)

// Connector is a mock implementation of netkit.Connector.
type Connector struct {
	ConnectFn func(ctx context.Context, host string, port int) (net.Conn, error)
}

func (c *Connector) Connect(ctx context.Context, host string, port int) (net.Conn, error) {
	return c.ConnectFn(ctx, host, port)
}
