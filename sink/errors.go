package sink

import "errors"

var (
	// ErrNoEndpoint means a remote sink was configured without a URL.
	ErrNoEndpoint = errors.New("sink: endpoint URL must not be empty")
	// ErrInvalidMethod means the remote sink method is not GET or POST.
	ErrInvalidMethod = errors.New("sink: method must be GET or POST")
)
