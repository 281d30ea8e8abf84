package spool

import (
	"context"
	"time"
)

// Hooks receives queue lifecycle events. hook.Registry is the standard
// implementation; the queue holds this minimal interface to avoid an
// import cycle with the hook package. Emit calls must not block and must
// never panic; errors are the implementation's concern.
type Hooks interface {
	// EmitItemAdded fires after an item is accepted into the buffer.
	EmitItemAdded(ctx context.Context, queue string, it *Item)
	// EmitItemDiscarded fires when a submission is rejected by the
	// capacity bound and appended to the discard list.
	EmitItemDiscarded(ctx context.Context, queue string, it *Item)
	// EmitItemDelivered fires after a successful delivery.
	EmitItemDelivered(ctx context.Context, queue string, it *Item, elapsed time.Duration)
	// EmitItemRetrying fires when a failed delivery is scheduled for
	// retry. attempt is the retry number just consumed (1-based).
	EmitItemRetrying(ctx context.Context, queue string, it *Item, attempt int, delay time.Duration)
	// EmitItemDropped fires when an item exhausts its retry budget and
	// is dropped permanently.
	EmitItemDropped(ctx context.Context, queue string, it *Item, cause error)
	// Clear removes all subscriptions. Called by Dispose.
	Clear()
}

// noopHooks is the default when no hook registry is configured.
type noopHooks struct{}

func (noopHooks) EmitItemAdded(context.Context, string, *Item)     {}
func (noopHooks) EmitItemDiscarded(context.Context, string, *Item) {}

func (noopHooks) EmitItemDelivered(context.Context, string, *Item, time.Duration) {}

func (noopHooks) EmitItemRetrying(context.Context, string, *Item, int, time.Duration) {}

func (noopHooks) EmitItemDropped(context.Context, string, *Item, error) {}

func (noopHooks) Clear() {}
