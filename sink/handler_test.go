package sink_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/spool/sink"
)

func TestHandler_Success(t *testing.T) {
	var gotPayload map[string]any
	var gotQueue string

	h := sink.NewHandler(func(_ context.Context, payload map[string]any, queue string) error {
		gotPayload = payload
		gotQueue = queue
		return nil
	})

	err := h.Deliver(context.Background(), map[string]any{"id": 1}, "orders")
	if err != nil {
		t.Fatalf("Deliver() error: %v", err)
	}
	if gotQueue != "orders" {
		t.Errorf("queue = %q, want %q", gotQueue, "orders")
	}
	if gotPayload["id"] != 1 {
		t.Errorf("payload = %v, want id 1", gotPayload)
	}
}

func TestHandler_ErrorIsFailure(t *testing.T) {
	cause := errors.New("downstream unavailable")
	h := sink.NewHandler(func(context.Context, map[string]any, string) error {
		return cause
	})

	err := h.Deliver(context.Background(), map[string]any{}, "orders")
	if !errors.Is(err, cause) {
		t.Errorf("Deliver() = %v, want wrapped %v", err, cause)
	}
}

func TestHandler_PanicIsFailure(t *testing.T) {
	h := sink.NewHandler(func(context.Context, map[string]any, string) error {
		panic("boom")
	})

	err := h.Deliver(context.Background(), map[string]any{}, "orders")
	if err == nil {
		t.Fatal("Deliver() = nil, want error from recovered panic")
	}
}

func TestHandler_Kind(t *testing.T) {
	h := sink.NewHandler(func(context.Context, map[string]any, string) error { return nil })
	if h.Kind() != sink.KindHandler {
		t.Errorf("Kind() = %v, want %v", h.Kind(), sink.KindHandler)
	}
}
