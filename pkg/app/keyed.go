package app

// Status is the async state recorded for one key.
type Status struct {
	Phase Phase
	// Text is the placeholder while Loading, the payload once Loaded and the
	// error message once Failed.
	Text string
	seq  uint64
}

// Keyed tracks independent async state per entry id. Each Begin hands out a
// sequence number; Finish and Clear only apply when the sequence is still the
// latest one issued for that key, so a late response never overwrites a
// newer one.
type Keyed struct {
	next  uint64
	items map[string]Status
}

// Begin marks key as loading with placeholder text. It returns ok=false
// without changing anything when key is already loading.
func (k *Keyed) Begin(key, placeholder string) (seq uint64, ok bool) {
	if k.items == nil {
		k.items = make(map[string]Status)
	}
	if cur, exists := k.items[key]; exists && cur.Phase == Loading {
		return 0, false
	}
	k.next++
	k.items[key] = Status{Phase: Loading, Text: placeholder, seq: k.next}
	return k.next, true
}

// Finish records the outcome for key. It reports false when seq is stale.
func (k *Keyed) Finish(key string, seq uint64, phase Phase, text string) bool {
	cur, ok := k.items[key]
	if !ok || cur.seq != seq {
		return false
	}
	k.items[key] = Status{Phase: phase, Text: text, seq: seq}
	return true
}

// Clear drops key once its request with seq completes. It reports false when
// seq is stale.
func (k *Keyed) Clear(key string, seq uint64) bool {
	cur, ok := k.items[key]
	if !ok || cur.seq != seq {
		return false
	}
	delete(k.items, key)
	return true
}

// Get returns the status for key; the zero Status (NotLoaded) when absent.
func (k *Keyed) Get(key string) Status {
	return k.items[key]
}

// Loading reports whether a request for key is in flight.
func (k *Keyed) Loading(key string) bool {
	return k.items[key].Phase == Loading
}

// Len returns the number of tracked keys.
func (k *Keyed) Len() int { return len(k.items) }

// Reset forgets every key. Sequence numbers keep increasing so responses
// issued before the reset are recognized as stale.
func (k *Keyed) Reset() {
	k.items = nil
}
