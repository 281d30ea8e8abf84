// Package spool provides a single-process, disk-backed FIFO delivery queue.
// Items are delivered to exactly one configured sink, a local handler
// callback or a remote HTTP endpoint, with exponential backoff retry on
// failure and at-least-once semantics, without a broker.
//
// # Quick Start
//
//	q, err := spool.New(spool.Config{Name: "emails", Dir: "./data"})
//	if err != nil { ... }
//	defer q.Dispose()
//
//	q.RegisterHandler(func(ctx context.Context, payload map[string]any, queue string) error {
//	    return send(payload)
//	})
//
//	q.Enqueue(map[string]any{"to": "ops@example.com"})
//
// # Architecture
//
// The queue owns a strict-FIFO in-memory buffer that is snapshotted to a
// Store on every accepted enqueue, on drain, and optionally on a periodic
// ticker. A single-flight processing loop drains the buffer head-first;
// failed deliveries are rescheduled with exponential backoff and reinserted
// at the head so in-flight items keep priority over newly submitted ones.
//
// Snapshot stores are pluggable: the built-in file store writes one JSON
// file per queue, and the store/ subpackages provide memory, Redis, SQLite,
// and Postgres backends behind the same interface.
//
// Delivery, persistence, and capacity failures are absorbed internally and
// surfaced only through logs, lifecycle hooks, and the discard list; callers
// of Enqueue observe errors solely for malformed input. Only sink
// registration conflicts and invalid configuration fail fast.
package spool
