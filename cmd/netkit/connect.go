package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/netkit"
	"github.com/fwojciec/netkit/bridge"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Run executes the connect command.
func (c *ConnectCmd) Run(deps *Dependencies) error {
	conn, err := deps.Connector.Connect(deps.Ctx, c.Host, c.Port)
	if err != nil {
		var connErr *netkit.ConnectError
		if errors.As(err, &connErr) {
			fmt.Fprintf(deps.Stderr, "Could not connect to %s: %s\n", connErr.Address, connErr.Failure)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", netkit.ErrorMessage(err))
		}
		return err
	}
	defer conn.Close()

	b := &bridge.Bridge{
		Local:  deps.Stdin,
		Output: deps.Stdout,
		Escape: bridge.DefaultEscape,
		Logger: deps.Logger,
	}
	if c.NoEscape {
		b.Escape = 0
	}

	if f, ok := deps.Stdin.(*os.File); ok {
		if c.Raw && term.IsTerminal(int(f.Fd())) {
			oldState, err := term.MakeRaw(int(f.Fd()))
			if err != nil {
				return fmt.Errorf("set terminal raw mode: %w", err)
			}
			defer term.Restore(int(f.Fd()), oldState)
		}

		if cr, err := cancelreader.NewReader(f); err != nil {
			deps.Logger.Debug("stdin is not cancellable", "err", err)
		} else {
			defer cr.Close()
			b.Local = cr
		}
	}

	fmt.Fprintf(deps.Stderr, "Connected to %s.\n", conn.RemoteAddr())
	if b.Escape != 0 {
		fmt.Fprintln(deps.Stderr, "Escape character is '^]'.")
	}

	stats, err := b.Run(deps.Ctx, conn)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(deps.Stderr, "\r\nConnection closed (sent %d bytes, received %d bytes).\r\n", stats.Sent, stats.Received)
	return nil
}
