// Package sink defines the delivery targets for dequeued items: a local
// handler callback or a remote HTTP endpoint. Exactly one sink is active
// per queue; the queue enforces that at registration time.
//
// Delivery outcome is normalized to an error: nil means the item is done,
// non-nil hands it to the retry scheduler. For the remote sink any
// completed HTTP exchange counts as success regardless of status code;
// only transport faults are failures.
package sink

import "context"

// Kind discriminates the sink variants.
type Kind int

const (
	// KindNone means no sink is configured; the processing loop exits
	// without consuming items.
	KindNone Kind = iota
	// KindHandler is a local callback sink.
	KindHandler
	// KindRemote is an HTTP endpoint sink.
	KindRemote
)

// String returns the variant name for logging.
func (k Kind) String() string {
	switch k {
	case KindHandler:
		return "handler"
	case KindRemote:
		return "remote"
	default:
		return "none"
	}
}

// HandlerFunc is a local delivery callback. It receives the item payload
// and the owning queue's name. A non-nil error (or a panic) marks the
// delivery failed.
type HandlerFunc func(ctx context.Context, payload map[string]any, queue string) error

// Sink delivers one payload at a time.
type Sink interface {
	// Kind identifies the sink variant.
	Kind() Kind
	// Deliver attempts delivery of a single payload. A nil return is
	// success; the item is destroyed. A non-nil return is failure; the
	// item is retried or dropped by the queue.
	Deliver(ctx context.Context, payload map[string]any, queue string) error
}
