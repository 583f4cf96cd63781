package app

// Phase is the lifecycle of a remotely fetched value.
type Phase int

const (
	// NotLoaded means no request has been issued yet.
	NotLoaded Phase = iota
	// Loading means a request is in flight.
	Loading
	// Loaded means the last request succeeded.
	Loaded
	// Failed means the last request failed.
	Failed
)

func (p Phase) String() string {
	switch p {
	case NotLoaded:
		return "not-loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Resource holds one remote value in exactly one Phase. A value is only
// present when Loaded and a reason only when Failed.
type Resource[T any] struct {
	phase  Phase
	value  T
	reason string
}

// Pending returns a Resource in the Loading phase.
func Pending[T any]() Resource[T] { return Resource[T]{phase: Loading} }

// Ready returns a Loaded resource holding v.
func Ready[T any](v T) Resource[T] { return Resource[T]{phase: Loaded, value: v} }

// Failure returns a Failed resource with the given reason.
func Failure[T any](reason string) Resource[T] { return Resource[T]{phase: Failed, reason: reason} }

func (r Resource[T]) Phase() Phase { return r.phase }

// Value returns the loaded value; ok is false in every other phase.
func (r Resource[T]) Value() (v T, ok bool) {
	if r.phase != Loaded {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Reason returns the failure reason, or "" unless Failed.
func (r Resource[T]) Reason() string {
	if r.phase != Failed {
		return ""
	}
	return r.reason
}

func (r Resource[T]) IsLoading() bool { return r.phase == Loading }
func (r Resource[T]) IsLoaded() bool  { return r.phase == Loaded }
func (r Resource[T]) IsFailed() bool  { return r.phase == Failed }
