// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

// Future is a one-shot asynchronous result.
//
// A Future resolves exactly once, either with a value or with an error,
// and stays resolved forever. It may be observed any number of times and
// from any goroutine: select on Done, block on Result, poll with
// TryResult, or attach continuations with OnComplete.
//
// Where continuations run is the channel's dispatch policy: with
// synchronous continuations they execute inline on the goroutine that
// resolved the future (usually the writer that delivered the item);
// otherwise they are handed to a fresh goroutine and the resolving call
// does not wait for them.
type Future[T any] struct {
	lock     spinLock
	done     chan struct{}
	resolved bool
	val      T
	err      error
	conts    []func(T, error)

	// inline selects the dispatch policy for conts.
	inline bool
}

// closedDone is shared by futures that are born resolved, so the
// immediate fast paths do not allocate a channel per operation.
var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// newFuture creates a pending future with the given dispatch policy.
func newFuture[T any](inline bool) *Future[T] {
	return &Future[T]{done: make(chan struct{}), inline: inline}
}

// resolvedFuture creates an already-successful future.
func resolvedFuture[T any](v T, inline bool) *Future[T] {
	return &Future[T]{done: closedDone, resolved: true, val: v, inline: inline}
}

// failedFuture creates an already-failed future.
func failedFuture[T any](err error, inline bool) *Future[T] {
	return &Future[T]{done: closedDone, resolved: true, err: err, inline: inline}
}

// Done returns a channel that is closed once the future is resolved.
// After Done is closed, Result and TryResult return immediately.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the future resolves, then returns its outcome.
// The zero value of T accompanies any non-nil error.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// TryResult reports the outcome without blocking.
// The third return is false while the future is still pending.
func (f *Future[T]) TryResult() (T, error, bool) {
	f.lock.acquire()
	v, err, ok := f.val, f.err, f.resolved
	f.lock.release()
	return v, err, ok
}

// OnComplete registers fn to run once the future resolves.
//
// If the future is already resolved, fn is dispatched immediately under
// the same policy: inline on the calling goroutine when synchronous
// continuations are enabled, on a fresh goroutine otherwise.
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.lock.acquire()
	if !f.resolved {
		f.conts = append(f.conts, fn)
		f.lock.release()
		return
	}
	f.lock.release()
	f.dispatch([]func(T, error){fn})
}

// complete resolves the future. The first call wins; later calls are
// no-ops reporting false. Continuations run after Done is closed.
func (f *Future[T]) complete(v T, err error) bool {
	f.lock.acquire()
	if f.resolved {
		f.lock.release()
		return false
	}
	f.val, f.err = v, err
	f.resolved = true
	conts := f.conts
	f.conts = nil
	f.lock.release()
	close(f.done)
	f.dispatch(conts)
	return true
}

// dispatch runs continuations per the policy. Callers must not hold any
// lock: inline continuations may re-enter the channel.
func (f *Future[T]) dispatch(conts []func(T, error)) {
	if len(conts) == 0 {
		return
	}
	if f.inline {
		for _, fn := range conts {
			fn(f.val, f.err)
		}
		return
	}
	go func() {
		for _, fn := range conts {
			fn(f.val, f.err)
		}
	}()
}
