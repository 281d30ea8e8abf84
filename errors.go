package spool

import "errors"

var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("spool: invalid config")
	ErrNoQueueName   = errors.New("spool: queue name must not be empty")

	// Submission errors.
	ErrNilPayload = errors.New("spool: nil payload")

	// Sink registration errors.
	ErrNilHandler     = errors.New("spool: nil handler")
	ErrSinkConfigured = errors.New("spool: a delivery sink is already configured")
)
