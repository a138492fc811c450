// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

// Channel is an unbounded, completion-aware producer/consumer channel.
//
// A Channel is an immutable pair of ends over one shared core: any
// number of writers push through the Writer end, readers drain through
// the Reader end, and a one-shot completion protocol tells readers when
// no further items will ever arrive. Writers are never blocked and
// never experience backpressure.
//
// Construct channels with the [Builder]:
//
//	ch := ubch.Build[int](ubch.New())
//	ch.Writer().TryWrite(42)
//	v, ok := ch.Reader().TryRead()
type Channel[T any] struct {
	reader Reader[T]
	writer Writer[T]
}

// Reader returns the read end. All calls return the same end.
func (c *Channel[T]) Reader() *Reader[T] { return &c.reader }

// Writer returns the write end. All calls return the same end.
func (c *Channel[T]) Writer() *Writer[T] { return &c.writer }

// Reader is the read end of a channel.
//
// For a channel built with [Builder.SingleReader], at most one
// goroutine may use the Reader at a time, with at most one Read or
// WaitToRead outstanding; a newer request displaces an older pending
// one with ErrSuperseded, and two truly concurrent consumers are
// undefined behavior. The default multi-reader channel accepts any
// number of concurrent consumers.
type Reader[T any] struct {
	core core[T]
}

// TryRead dequeues the oldest buffered item without blocking.
// Reports false when nothing is buffered, whether or not the channel
// has completed, and never fails. Safe for hot-path polling.
func (r *Reader[T]) TryRead() (T, bool) {
	return r.core.tryRead()
}

// Read resolves with the next item.
//
// If an item is already buffered the returned future is born resolved.
// Otherwise the read suspends until a write fulfills it, the channel
// completes (failing the future with ErrClosed or the completion
// error), or a newer request displaces it (single-reader channels,
// ErrSuperseded).
func (r *Reader[T]) Read() *Future[T] {
	return r.core.readAsync()
}

// WaitToRead resolves true as soon as an item can be read without
// suspending, and false once the channel completed cleanly with nothing
// left to drain. A channel completed with an error fails the future
// with that error once drained.
//
// On multi-reader channels a resolved true is a hint, not a
// reservation: a competing reader may win the subsequent TryRead, so
// drain loops should tolerate a false TryRead and wait again.
func (r *Reader[T]) WaitToRead() *Future[bool] {
	return r.core.waitToRead()
}

// Completion returns the channel's completion future. It resolves
// exactly once, at the first moment the channel is both completed and
// fully drained: with nil error after a clean Complete, or with the
// stored error after a faulted one. It may be observed by any number
// of goroutines.
func (r *Reader[T]) Completion() *Future[struct{}] {
	return r.core.completion()
}

// Writer is the write end of a channel. Any number of goroutines may
// write concurrently on either specialization.
type Writer[T any] struct {
	core core[T]
}

// TryWrite enqueues v and reports whether it was accepted. It fails
// only once the channel has completed, never blocks, and never applies
// backpressure. An accepted item either lands in the queue or is handed
// directly to a suspended reader, whose continuation runs per the
// channel's dispatch policy.
func (w *Writer[T]) TryWrite(v T) bool {
	return w.core.tryWrite(v)
}

// Write is TryWrite in future shape. The channel is unbounded, so the
// returned future is always born resolved: successful when v was
// accepted, failed with ErrClosed or the completion error otherwise.
func (w *Writer[T]) Write(v T) *Future[struct{}] {
	if w.core.tryWrite(v) {
		return resolvedFuture(struct{}{}, w.core.synchronous())
	}
	return failedFuture[struct{}](w.core.terminalError(), w.core.synchronous())
}

// Complete transitions the channel out of the open state exactly once.
//
// A nil err completes the channel cleanly; a non-nil err faults it, and
// readers observe err once the queue drains. Every suspended reader is
// fulfilled immediately (buffered items remain readable until drained).
// If the queue is already empty the completion future resolves within
// this call. Returns ErrAlreadyCompleted if a transition already
// happened.
func (w *Writer[T]) Complete(err error) error {
	if !w.core.complete(err) {
		return ErrAlreadyCompleted
	}
	return nil
}

// TryComplete is Complete reporting a lost race as false instead of an
// error. Use it when several writers may race to complete the channel.
func (w *Writer[T]) TryComplete(err error) bool {
	return w.core.complete(err)
}
