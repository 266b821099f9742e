package resource

// State is the lifecycle position of a Resource.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Resource tracks one external fetch. Every Begin hands out a new generation;
// completions carrying any other generation are dropped, so at most one fetch
// can ever land in the resource.
type Resource[T any] struct {
	state    State
	gen      uint64
	inflight bool
	value    T
	msg      string
	cause    error
}

// Snapshot is a read-only copy of a Resource for renderers.
type Snapshot[T any] struct {
	State   State
	Value   T
	Message string
}

// Begin moves the resource to Loading and returns the generation the caller
// must present when completing. A Begin while Loading supersedes the in-flight
// fetch.
func (r *Resource[T]) Begin() uint64 {
	var zero T
	r.gen++
	r.inflight = true
	r.state = StateLoading
	r.value = zero
	r.msg = ""
	r.cause = nil
	return r.gen
}

// Resolve stores v if gen is the in-flight generation.
func (r *Resource[T]) Resolve(gen uint64, v T) bool {
	if !r.accepts(gen) {
		return false
	}
	r.inflight = false
	r.state = StateSuccess
	r.value = v
	return true
}

// Fail stores a user-facing message and the underlying cause if gen is the
// in-flight generation.
func (r *Resource[T]) Fail(gen uint64, msg string, cause error) bool {
	if !r.accepts(gen) {
		return false
	}
	r.inflight = false
	r.state = StateError
	r.msg = msg
	r.cause = cause
	return true
}

// Invalidate orphans the in-flight fetch without touching the visible state.
func (r *Resource[T]) Invalidate() {
	r.gen++
	r.inflight = false
}

// Reset returns the resource to Idle and orphans any in-flight fetch.
func (r *Resource[T]) Reset() {
	var zero T
	r.gen++
	r.inflight = false
	r.state = StateIdle
	r.value = zero
	r.msg = ""
	r.cause = nil
}

func (r *Resource[T]) accepts(gen uint64) bool {
	return r.inflight && gen == r.gen
}

func (r *Resource[T]) State() State { return r.state }

// Pending reports the generation of a fetch that may still complete.
func (r *Resource[T]) Pending() (uint64, bool) {
	if !r.inflight {
		return 0, false
	}
	return r.gen, true
}

func (r *Resource[T]) Value() (T, bool) {
	return r.value, r.state == StateSuccess
}

func (r *Resource[T]) Message() string { return r.msg }

// Cause is the error behind the Error state, kept for logging.
func (r *Resource[T]) Cause() error { return r.cause }

func (r *Resource[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		State:   r.state,
		Value:   r.value,
		Message: r.msg,
	}
}
