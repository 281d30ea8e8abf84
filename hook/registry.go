package hook

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/spool"
)

// Compile-time check: the Registry satisfies the queue's hook interface.
var _ spool.Hooks = (*Registry)(nil)

// Named entry types pair a hook implementation with the extension name
// captured at registration time, so emit calls don't type-assert back to
// Extension.
type itemAddedEntry struct {
	name string
	hook ItemAdded
}

type itemDiscardedEntry struct {
	name string
	hook ItemDiscarded
}

type itemDeliveredEntry struct {
	name string
	hook ItemDelivered
}

type itemRetryingEntry struct {
	name string
	hook ItemRetrying
}

type itemDroppedEntry struct {
	name string
	hook ItemDropped
}

// Registry holds registered extensions and dispatches queue lifecycle
// events to them. Extensions are type-cached at registration time so each
// emit iterates only over extensions implementing the relevant hook.
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	extensions []Extension
	logger     *slog.Logger

	itemAdded     []itemAddedEntry
	itemDiscarded []itemDiscardedEntry
	itemDelivered []itemDeliveredEntry
	itemRetrying  []itemRetryingEntry
	itemDropped   []itemDroppedEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable hook
// caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(ItemAdded); ok {
		r.itemAdded = append(r.itemAdded, itemAddedEntry{name, h})
	}
	if h, ok := e.(ItemDiscarded); ok {
		r.itemDiscarded = append(r.itemDiscarded, itemDiscardedEntry{name, h})
	}
	if h, ok := e.(ItemDelivered); ok {
		r.itemDelivered = append(r.itemDelivered, itemDeliveredEntry{name, h})
	}
	if h, ok := e.(ItemRetrying); ok {
		r.itemRetrying = append(r.itemRetrying, itemRetryingEntry{name, h})
	}
	if h, ok := e.(ItemDropped); ok {
		r.itemDropped = append(r.itemDropped, itemDroppedEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Extension, len(r.extensions))
	copy(out, r.extensions)
	return out
}

// Clear removes all registered extensions. The queue calls this on
// Dispose so no subscriber outlives the instance.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions = nil
	r.itemAdded = nil
	r.itemDiscarded = nil
	r.itemDelivered = nil
	r.itemRetrying = nil
	r.itemDropped = nil
}

// EmitItemAdded notifies all extensions that implement ItemAdded.
func (r *Registry) EmitItemAdded(ctx context.Context, queue string, it *spool.Item) {
	r.mu.RLock()
	entries := r.itemAdded
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.hook.OnItemAdded(ctx, queue, it); err != nil {
			r.logHookError("OnItemAdded", e.name, err)
		}
	}
}

// EmitItemDiscarded notifies all extensions that implement ItemDiscarded.
func (r *Registry) EmitItemDiscarded(ctx context.Context, queue string, it *spool.Item) {
	r.mu.RLock()
	entries := r.itemDiscarded
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.hook.OnItemDiscarded(ctx, queue, it); err != nil {
			r.logHookError("OnItemDiscarded", e.name, err)
		}
	}
}

// EmitItemDelivered notifies all extensions that implement ItemDelivered.
func (r *Registry) EmitItemDelivered(ctx context.Context, queue string, it *spool.Item, elapsed time.Duration) {
	r.mu.RLock()
	entries := r.itemDelivered
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.hook.OnItemDelivered(ctx, queue, it, elapsed); err != nil {
			r.logHookError("OnItemDelivered", e.name, err)
		}
	}
}

// EmitItemRetrying notifies all extensions that implement ItemRetrying.
func (r *Registry) EmitItemRetrying(ctx context.Context, queue string, it *spool.Item, attempt int, delay time.Duration) {
	r.mu.RLock()
	entries := r.itemRetrying
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.hook.OnItemRetrying(ctx, queue, it, attempt, delay); err != nil {
			r.logHookError("OnItemRetrying", e.name, err)
		}
	}
}

// EmitItemDropped notifies all extensions that implement ItemDropped.
func (r *Registry) EmitItemDropped(ctx context.Context, queue string, it *spool.Item, cause error) {
	r.mu.RLock()
	entries := r.itemDropped
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.hook.OnItemDropped(ctx, queue, it, cause); err != nil {
			r.logHookError("OnItemDropped", e.name, err)
		}
	}
}

func (r *Registry) logHookError(hookName, extName string, err error) {
	r.logger.Error("extension hook failed",
		slog.String("hook", hookName),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
