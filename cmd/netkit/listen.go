package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/tcp"
)

// Run executes the listen command.
func (c *ListenCmd) Run(deps *Dependencies) error {
	address, err := tcp.Address(c.Host, c.Port)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", netkit.ErrorMessage(err))
		return err
	}

	ln, err := tcp.Listen(deps.Ctx, address)
	if err != nil {
		var bindErr *netkit.BindError
		if errors.As(err, &bindErr) {
			fmt.Fprintf(deps.Stderr, "Could not start listener on %s: %v\n", bindErr.Address, bindErr.Err)
		}
		return err
	}
	if deps.Metrics != nil {
		ln = deps.Metrics.InstrumentListener(ln)
	}

	fmt.Fprintf(deps.Stdout, "Listener started on %s\n", ln.Addr())

	srv := &tcp.Server{Logger: deps.Logger, MaxConns: c.MaxConns}
	return srv.Serve(deps.Ctx, ln)
}
