package widget

import (
	"context"

	"github.com/iw2rmb/flowedit/remote"
)

// Conn is the part of *remote.Conn an Instance uses.
type Conn interface {
	Send(msg remote.Message) error
	Inbox() <-chan remote.Message
	Err() error
	Close() error
}

// DialFunc opens a connection to the service at url.
type DialFunc func(ctx context.Context, url string) (Conn, error)

func dialRemote(ctx context.Context, url string) (Conn, error) {
	c, err := remote.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}
