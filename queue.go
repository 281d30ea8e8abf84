package spool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/xraph/spool/backoff"
	"github.com/xraph/spool/id"
	"github.com/xraph/spool/sink"
)

// loopState tracks the processing loop: at most one loop instance runs per
// queue (single-flight), and a trigger while already processing is a no-op.
type loopState int

const (
	stateIdle loopState = iota
	stateProcessing
)

// Queue is a disk-backed FIFO delivery queue. It owns the ordered buffer,
// drives the single-flight processing loop, and enforces that at most one
// delivery sink is active.
//
// All methods are safe for concurrent use. Buffer mutations happen under a
// single mutex; deliveries run on one background goroutine at a time.
type Queue struct {
	cfg     Config
	qid     id.ID
	logger  *slog.Logger
	store   Store
	hooks   Hooks
	backoff backoff.Strategy
	limiter *rate.Limiter

	mu        sync.Mutex
	buffer    []*Item
	discarded []*Item
	snk       sink.Sink
	state     loopState

	// Retry timers in flight, keyed by a monotonic sequence so Drain and
	// Dispose can cancel scheduled reinsertions deterministically.
	timers   map[uint64]*time.Timer
	timerSeq uint64

	persistStop context.CancelFunc
}

// New creates a Queue from cfg, restores its buffer from the snapshot
// store, and starts the periodic persistence ticker when configured.
//
// Without a WithStore option the queue persists to a JSON file store under
// cfg.Dir. A corrupt or missing snapshot degrades to an empty buffer.
func New(cfg Config, opts ...Option) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q := &Queue{
		cfg:     cfg,
		qid:     id.NewQueueID(),
		logger:  slog.Default(),
		hooks:   noopHooks{},
		backoff: backoff.Default(),
		timers:  make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}

	if q.store == nil {
		fs, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		q.store = fs
	}

	q.restore()
	q.startPersistLoop()

	return q, nil
}

// restore loads the persisted snapshot into the buffer, truncating to the
// capacity bound. Load failures are non-fatal: the queue starts empty.
func (q *Queue) restore() {
	items, err := q.store.Load(context.Background(), q.cfg.Name)
	if err != nil {
		q.logger.Warn("snapshot load failed, starting empty",
			slog.String("queue", q.cfg.Name),
			slog.String("error", err.Error()),
		)
		return
	}
	if q.cfg.MaxSize > 0 && len(items) > q.cfg.MaxSize {
		items = items[:q.cfg.MaxSize]
	}
	q.buffer = items
}

// Enqueue submits a payload to the queue tail. It returns ErrNilPayload
// for a nil payload; a submission rejected by the capacity bound is not an
// error: the item goes to the discard list and the ItemDiscarded hook
// fires. Accepted items are snapshotted and the processing loop is kicked
// without waiting for delivery.
func (q *Queue) Enqueue(payload map[string]any) error {
	if payload == nil {
		return ErrNilPayload
	}
	it := NewItem(payload)

	q.mu.Lock()
	if q.cfg.MaxSize > 0 && len(q.buffer) >= q.cfg.MaxSize {
		q.discarded = append(q.discarded, it)
		q.mu.Unlock()

		q.logger.Debug("item discarded, buffer full",
			slog.String("queue", q.cfg.Name),
			slog.Int("max_size", q.cfg.MaxSize),
		)
		q.hooks.EmitItemDiscarded(context.Background(), q.cfg.Name, it)
		return nil
	}
	q.buffer = append(q.buffer, it)
	snap := q.snapshotLocked()
	q.mu.Unlock()

	q.hooks.EmitItemAdded(context.Background(), q.cfg.Name, it)
	q.persist(snap)
	q.kick()
	return nil
}

// Dequeue removes and returns the head item. The second return value is
// false when the buffer is empty.
func (q *Queue) Dequeue() (*Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buffer) == 0 {
		return nil, false
	}
	it := q.buffer[0]
	q.buffer = q.buffer[1:]
	return it, true
}

// Peek returns the head item without removing it. The second return value
// is false when the buffer is empty.
func (q *Queue) Peek() (*Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buffer) == 0 {
		return nil, false
	}
	return q.buffer[0], true
}

// RegisterHandler installs a local callback as the delivery sink and starts
// the processing loop. It fails with ErrSinkConfigured if any sink is
// already registered; the existing sink stays active.
func (q *Queue) RegisterHandler(fn sink.HandlerFunc) error {
	if fn == nil {
		return ErrNilHandler
	}

	q.mu.Lock()
	if q.snk != nil {
		q.mu.Unlock()
		return ErrSinkConfigured
	}
	q.snk = sink.NewHandler(fn)
	q.mu.Unlock()

	q.kick()
	return nil
}

// RegisterRemote installs an HTTP endpoint as the delivery sink and starts
// the processing loop. method is GET or POST (case-insensitive; empty means
// POST). It fails with ErrSinkConfigured if any sink is already registered;
// the existing sink stays active.
func (q *Queue) RegisterRemote(endpoint, apiKey, method string, opts ...sink.RemoteOption) error {
	r, err := sink.NewRemote(endpoint, apiKey, method, opts...)
	if err != nil {
		return err
	}

	q.mu.Lock()
	if q.snk != nil {
		q.mu.Unlock()
		return ErrSinkConfigured
	}
	q.snk = r
	q.mu.Unlock()

	q.kick()
	return nil
}

// Drain clears the buffer immediately, cancels scheduled retries, persists
// the now-empty snapshot, and halts the periodic persistence ticker. The
// discard list is kept. Draining an empty queue is a no-op that still
// persists and succeeds.
func (q *Queue) Drain() {
	q.mu.Lock()
	q.buffer = nil
	q.cancelTimersLocked()
	q.mu.Unlock()

	q.stopPersistLoop()
	q.persist(nil)
}

// Dispose tears the queue down: it halts the persistence ticker, cancels
// scheduled retries, clears the in-memory buffer and all hook
// subscriptions, and closes the store. The discard list and the on-disk
// snapshot survive.
func (q *Queue) Dispose() error {
	q.stopPersistLoop()

	q.mu.Lock()
	q.buffer = nil
	q.cancelTimersLocked()
	q.mu.Unlock()

	q.hooks.Clear()
	return q.store.Close()
}

// ──────────────────────────────────────────────────
// Read accessors
// ──────────────────────────────────────────────────

// Len returns the number of buffered items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffer)
}

// Cap returns the configured capacity bound; zero means unbounded.
func (q *Queue) Cap() int { return q.cfg.MaxSize }

// Discarded returns the items rejected by the capacity bound, oldest
// first. The list grows without bound for the queue's lifetime.
func (q *Queue) Discarded() []*Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Item, len(q.discarded))
	copy(out, q.discarded)
	return out
}

// Snapshot returns a shallow copy of the current buffer, head first.
func (q *Queue) Snapshot() []*Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// ID returns the queue instance identifier.
func (q *Queue) ID() id.ID { return q.qid }

// Name returns the configured queue name.
func (q *Queue) Name() string { return q.cfg.Name }

func (q *Queue) snapshotLocked() []*Item {
	out := make([]*Item, len(q.buffer))
	copy(out, q.buffer)
	return out
}

// ──────────────────────────────────────────────────
// Persistence
// ──────────────────────────────────────────────────

// persist writes a snapshot. Save failures are logged and absorbed; the
// in-memory buffer is never rolled back.
func (q *Queue) persist(items []*Item) {
	if err := q.store.Save(context.Background(), q.cfg.Name, items); err != nil {
		q.logger.Error("snapshot save failed",
			slog.String("queue", q.cfg.Name),
			slog.String("error", err.Error()),
		)
	}
}

// startPersistLoop launches the periodic snapshot goroutine when a positive
// interval is configured.
func (q *Queue) startPersistLoop() {
	if q.cfg.PersistInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	q.persistStop = cancel

	go func() {
		ticker := time.NewTicker(q.cfg.PersistInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				q.persist(q.Snapshot())
			}
		}
	}()
}

// stopPersistLoop halts the ticker. Safe to call repeatedly; the ticker is
// never restarted.
func (q *Queue) stopPersistLoop() {
	if q.persistStop != nil {
		q.persistStop()
	}
}

// cancelTimersLocked stops all scheduled retry reinsertions. A timer that
// already fired but has not reinserted yet is invalidated by removing its
// sequence entry.
func (q *Queue) cancelTimersLocked() {
	for seq, t := range q.timers {
		t.Stop()
		delete(q.timers, seq)
	}
}
