package spool

import (
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/xraph/spool/backoff"
)

// Option configures a Queue.
type Option func(*Queue) error

// WithLogger sets the structured logger for the queue.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) error {
		q.logger = l
		return nil
	}
}

// WithStore sets the snapshot store. The default is a file store writing
// under Config.Dir. The queue closes the store on Dispose.
func WithStore(s Store) Option {
	return func(q *Queue) error {
		q.store = s
		return nil
	}
}

// WithHooks sets the lifecycle hook registry. Typically a *hook.Registry.
func WithHooks(h Hooks) Option {
	return func(q *Queue) error {
		q.hooks = h
		return nil
	}
}

// WithBackoff sets the retry delay strategy. The default is exponential
// starting at 100ms (100, 200, 400, 800, 1600, ...).
func WithBackoff(s backoff.Strategy) Option {
	return func(q *Queue) error {
		q.backoff = s
		return nil
	}
}

// WithRateLimit caps sustained deliveries at perSecond with the given
// token-bucket burst. Zero perSecond disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(q *Queue) error {
		if perSecond <= 0 {
			q.limiter = nil
			return nil
		}
		if burst <= 0 {
			burst = 1
		}
		q.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}
