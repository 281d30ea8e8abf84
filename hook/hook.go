// Package hook defines the lifecycle hook system for spool queues.
//
// Extensions are notified of queue events (an item accepted, discarded,
// delivered, retried, or dropped) and can react to them, for example by
// recording metrics or mirroring items to an audit log. Each hook is a
// separate interface so extensions opt in only to the events they care
// about. The [Registry] fans each event out to every registered extension
// that implements the corresponding hook; hook errors are logged and never
// propagated back into the queue.
package hook

import (
	"context"
	"time"

	"github.com/xraph/spool"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ItemAdded is called after an item is accepted into the buffer.
type ItemAdded interface {
	OnItemAdded(ctx context.Context, queue string, it *spool.Item) error
}

// ItemDiscarded is called when a submission is rejected by the capacity
// bound and appended to the discard list.
type ItemDiscarded interface {
	OnItemDiscarded(ctx context.Context, queue string, it *spool.Item) error
}

// ItemDelivered is called after a successful delivery.
type ItemDelivered interface {
	OnItemDelivered(ctx context.Context, queue string, it *spool.Item, elapsed time.Duration) error
}

// ItemRetrying is called when a failed delivery is scheduled for retry.
// attempt is the retry number just consumed (1-based).
type ItemRetrying interface {
	OnItemRetrying(ctx context.Context, queue string, it *spool.Item, attempt int, delay time.Duration) error
}

// ItemDropped is called when an item exhausts its retry budget and is
// dropped permanently.
type ItemDropped interface {
	OnItemDropped(ctx context.Context, queue string, it *spool.Item, cause error) error
}
