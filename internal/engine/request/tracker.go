// Package request tracks the lifecycle of asynchronous gateway calls.
// Each distinct operation (catalog load, sale submission, product
// create/update/delete) owns its own Tracker instance.
package request

import "sync"

// State is the observable phase of an asynchronous operation
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Tracker is a reusable idle → loading → {success|error} state machine.
// Invocations are tagged with a monotonically increasing sequence number;
// a completion only lands if no later completion has already been
// accepted, which makes late responses to superseded requests silently
// disappear (last-completed-wins).
type Tracker struct {
	mu       sync.Mutex
	state    State
	message  string
	lastSeq  uint64
	accepted uint64
}

// NewTracker returns a tracker in the idle state
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a new invocation and returns its sequence number.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastSeq++
	t.state = StateLoading
	t.message = ""
	return t.lastSeq
}

// Succeed records a successful completion for seq. It reports whether the
// completion was accepted; stale completions are discarded.
func (t *Tracker) Succeed(seq uint64) bool {
	return t.complete(seq, StateSuccess, "")
}

// Fail records a failed completion for seq carrying a human-readable
// message. Stale completions are discarded.
func (t *Tracker) Fail(seq uint64, message string) bool {
	if message == "" {
		// Every error state must carry something the UI can render
		message = "erro desconhecido"
	}
	return t.complete(seq, StateError, message)
}

func (t *Tracker) complete(seq uint64, state State, message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq <= t.accepted {
		return false
	}
	t.accepted = seq
	t.state = state
	t.message = message
	return true
}

// Reset returns the tracker to idle, e.g. after the success display
// window of a sale submission elapses. In-flight invocations keep their
// sequence numbers and may still complete afterwards.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateIdle
	t.message = ""
}

// Snapshot returns the current state and, for errors, the message.
func (t *Tracker) Snapshot() (State, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.message
}
