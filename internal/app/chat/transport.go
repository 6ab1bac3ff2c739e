package chat

import "context"

// HandlerFunc receives the body of an inbound frame on a subscribed destination.
type HandlerFunc func(body []byte)

// Conn is one duplex publish/subscribe connection to the messaging endpoint.
// A Conn is owned by exactly one session; it is never shared.
type Conn interface {
	// Subscribe registers fn for inbound frames on destination.
	Subscribe(destination string, fn HandlerFunc) error

	// Publish sends body on destination.
	Publish(destination string, body []byte) error

	// NotifyClose registers fn to be called once when the connection drops.
	// A deliberate Close does not fire it.
	NotifyClose(fn func(err error))

	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Dialer opens connections to a messaging endpoint.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}
