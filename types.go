// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

// core is the shared state behind a channel's two ends.
//
// A core owns the unbounded item queue, the completion state, the waiter
// registry and the completion future. Both the single-reader and the
// multi-reader specializations implement it; the Reader and Writer ends
// delegate every operation here.
type core[T any] interface {
	// tryWrite enqueues v, or hands it directly to a pending read
	// waiter. Reports false once the channel left the open state.
	tryWrite(v T) bool

	// complete transitions the channel out of the open state exactly
	// once. A nil err completes cleanly; a non-nil err faults the
	// channel. Reports false if a transition already happened.
	complete(err error) bool

	// tryRead dequeues the oldest buffered item.
	// Reports false when the queue is empty, regardless of state.
	tryRead() (T, bool)

	// readAsync resolves with the next item, or fails once the channel
	// is terminal and drained.
	readAsync() *Future[T]

	// waitToRead resolves true when an item is readable, false on a
	// clean terminal drain, and fails with the stored error on a fault.
	waitToRead() *Future[bool]

	// completion returns the channel's one-shot completion future.
	completion() *Future[struct{}]

	// terminalError is the failure a writer observes after completion:
	// the stored fault error, or ErrClosed for a clean completion.
	// Only meaningful once the channel left the open state.
	terminalError() error

	// synchronous reports the continuation dispatch policy.
	synchronous() bool
}

// Completion state of a core. Monotonic: at most one transition away
// from stateOpen, never back.
const (
	stateOpen int64 = iota
	stateCompleted
	stateFaulted
)

// pad is cache line padding to prevent false sharing.
type pad [64]byte
