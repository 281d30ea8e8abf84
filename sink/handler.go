package sink

import (
	"context"
	"fmt"
)

// Compile-time interface check.
var _ Sink = (*Handler)(nil)

// Handler invokes a local callback for each delivery. A panic inside the
// callback is recovered and normalized into a delivery failure so one bad
// payload cannot take down the processing loop.
type Handler struct {
	fn HandlerFunc
}

// NewHandler wraps fn in a Handler sink.
func NewHandler(fn HandlerFunc) *Handler {
	return &Handler{fn: fn}
}

// Kind implements Sink.
func (h *Handler) Kind() Kind { return KindHandler }

// Deliver invokes the callback with the payload and queue name.
func (h *Handler) Deliver(ctx context.Context, payload map[string]any, queue string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink: handler panic: %v", r)
		}
	}()

	if cbErr := h.fn(ctx, payload, queue); cbErr != nil {
		return fmt.Errorf("sink: handler: %w", cbErr)
	}
	return nil
}
