package spool

import (
	"context"
	"log/slog"
	"time"
)

// kick transitions the processing loop from Idle to Processing and starts
// it on a background goroutine. A kick while the loop is already running,
// or before any sink is registered, is a no-op.
func (q *Queue) kick() {
	q.mu.Lock()
	if q.state == stateProcessing || q.snk == nil {
		q.mu.Unlock()
		return
	}
	q.state = stateProcessing
	q.mu.Unlock()

	go q.process()
}

// process drains the buffer head-first until it observes the buffer empty,
// then returns the loop to Idle. Failed deliveries are handed to the retry
// scheduler and the loop continues with the remaining buffer; the failed
// item's reinsertion happens asynchronously after its backoff delay, so
// the loop never stalls on a single item.
func (q *Queue) process() {
	for {
		q.mu.Lock()
		if len(q.buffer) == 0 || q.snk == nil {
			q.state = stateIdle
			q.mu.Unlock()
			return
		}
		it := q.buffer[0]
		q.buffer = q.buffer[1:]
		s := q.snk
		q.mu.Unlock()

		if q.limiter != nil {
			time.Sleep(q.limiter.Reserve().Delay())
		}

		start := time.Now()
		if err := s.Deliver(context.Background(), it.Payload, q.cfg.Name); err != nil {
			q.scheduleRetry(it, err)
			continue
		}
		q.hooks.EmitItemDelivered(context.Background(), q.cfg.Name, it, time.Since(start))
	}
}

// scheduleRetry consumes one retry from the item's budget and arms a timer
// that reinserts it at the buffer head once the backoff delay elapses.
// Head reinsertion keeps items that already entered processing ahead of
// newer submissions. An item past its budget is dropped permanently.
func (q *Queue) scheduleRetry(it *Item, cause error) {
	if it.retries >= q.cfg.retryCeiling() {
		q.logger.Warn("dropping item after exhausting retries",
			slog.String("queue", q.cfg.Name),
			slog.Int("retries", it.retries),
			slog.String("error", cause.Error()),
		)
		q.hooks.EmitItemDropped(context.Background(), q.cfg.Name, it, cause)
		return
	}

	it.retries++
	delay := q.backoff.Delay(it.retries)

	q.mu.Lock()
	q.timerSeq++
	seq := q.timerSeq
	q.timers[seq] = time.AfterFunc(delay, func() { q.resume(seq, it) })
	q.mu.Unlock()

	q.logger.Debug("delivery failed, retry scheduled",
		slog.String("queue", q.cfg.Name),
		slog.Int("attempt", it.retries),
		slog.Duration("delay", delay),
		slog.String("error", cause.Error()),
	)
	q.hooks.EmitItemRetrying(context.Background(), q.cfg.Name, it, it.retries, delay)
}

// resume runs when a retry timer fires: it reinserts the item at the head
// of the buffer and re-kicks the loop. A timer invalidated by Drain or
// Dispose between firing and acquiring the lock reinserts nothing.
func (q *Queue) resume(seq uint64, it *Item) {
	q.mu.Lock()
	if _, ok := q.timers[seq]; !ok {
		q.mu.Unlock()
		return
	}
	delete(q.timers, seq)
	q.buffer = append([]*Item{it}, q.buffer...)
	q.mu.Unlock()

	q.kick()
}
