package spool

import "encoding/json"

// retriesField is the reserved payload key carrying the retry counter in
// persisted snapshots. It never appears in delivered payloads.
const retriesField = "_retries"

// Item is a single unit of work: an opaque JSON-object payload plus an
// engine-managed retry counter. Items have positional identity: two items
// with equal payloads are distinct entries in the buffer.
type Item struct {
	Payload map[string]any

	retries int
}

// NewItem wraps a payload in a fresh Item with a zero retry counter.
func NewItem(payload map[string]any) *Item {
	return &Item{Payload: payload}
}

// Retries returns how many delivery retries the item has consumed.
func (it *Item) Retries() int { return it.retries }

// Clone returns a deep copy of the item. Nested payload values are shared;
// the top-level map and the retry counter are independent.
func (it *Item) Clone() *Item {
	payload := make(map[string]any, len(it.Payload))
	for k, v := range it.Payload {
		payload[k] = v
	}
	return &Item{Payload: payload, retries: it.retries}
}

// MarshalJSON flattens the payload into a single object and adds the retry
// counter under the reserved "_retries" key, producing the snapshot format.
func (it *Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(it.Payload)+1)
	for k, v := range it.Payload {
		out[k] = v
	}
	out[retriesField] = it.retries
	return json.Marshal(out)
}

// UnmarshalJSON splits the reserved "_retries" key back out of a snapshot
// object. A missing or malformed counter defaults to zero.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	it.retries = 0
	if v, ok := raw[retriesField]; ok {
		if n, ok := v.(float64); ok && n > 0 {
			it.retries = int(n)
		}
		delete(raw, retriesField)
	}
	it.Payload = raw
	return nil
}
