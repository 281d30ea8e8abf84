package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// retriesField is the reserved snapshot key stripped from outgoing bodies.
// Payloads restored from old snapshots may still carry it.
const retriesField = "_retries"

// APIKeyHeader carries the remote sink's API key on every request.
const APIKeyHeader = "X-Api-Key"

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface check.
var _ Sink = (*Remote)(nil)

// Remote delivers items to an HTTP endpoint. POST requests carry the
// payload as a JSON body with the retry counter stripped; GET requests
// have no body. Any completed exchange is a success; status codes are
// not inspected.
type Remote struct {
	endpoint string
	apiKey   string
	method   string
	client   Doer
}

// RemoteOption configures a Remote sink.
type RemoteOption func(*Remote)

// WithClient sets the HTTP client used for deliveries. The default client
// has a 30 second timeout.
func WithClient(d Doer) RemoteOption {
	return func(r *Remote) { r.client = d }
}

// NewRemote creates a Remote sink. method is case-insensitive and must be
// GET or POST; empty means POST.
func NewRemote(endpoint, apiKey, method string, opts ...RemoteOption) (*Remote, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = http.MethodPost
	}
	if m != http.MethodGet && m != http.MethodPost {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	r := &Remote{
		endpoint: endpoint,
		apiKey:   apiKey,
		method:   m,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Endpoint returns the configured URL.
func (r *Remote) Endpoint() string { return r.endpoint }

// Method returns the normalized HTTP method.
func (r *Remote) Method() string { return r.method }

// Kind implements Sink.
func (r *Remote) Kind() Kind { return KindRemote }

// Deliver issues one request for the payload.
func (r *Remote) Deliver(ctx context.Context, payload map[string]any, queue string) error {
	var body io.Reader
	if r.method == http.MethodPost {
		clean := make(map[string]any, len(payload))
		for k, v := range payload {
			if k == retriesField {
				continue
			}
			clean[k] = v
		}
		data, err := json.Marshal(clean)
		if err != nil {
			return fmt.Errorf("sink: encode payload for queue %q: %w", queue, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.endpoint, body)
	if err != nil {
		return fmt.Errorf("sink: build %s request: %w", r.method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(APIKeyHeader, r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink: %s %s: %w", r.method, r.endpoint, err)
	}
	// Any response counts as delivered; drain the body so the connection
	// can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}
