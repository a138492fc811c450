// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

import (
	"sync"
)

// minRingCap is the initial ring allocation on first write.
const minRingCap = 32

// ring is a growable power-of-2 circular buffer. Not safe for
// concurrent use; the multi-reader core guards it with its mutex.
type ring[T any] struct {
	buf  []T
	head uint64
	tail uint64
}

func (r *ring[T]) empty() bool { return r.head == r.tail }

func (r *ring[T]) push(v T) {
	if r.buf == nil {
		r.buf = make([]T, minRingCap)
	} else if r.tail-r.head == uint64(len(r.buf)) {
		r.grow()
	}
	r.buf[r.tail&uint64(len(r.buf)-1)] = v
	r.tail++
}

func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.head == r.tail {
		return zero, false
	}
	i := r.head & uint64(len(r.buf)-1)
	v := r.buf[i]
	r.buf[i] = zero
	r.head++
	return v, true
}

// grow doubles the buffer, unwrapping items into write order.
func (r *ring[T]) grow() {
	n := uint64(len(r.buf))
	buf := make([]T, n*2)
	for i := uint64(0); i < n; i++ {
		buf[i] = r.buf[(r.head+i)&(n-1)]
	}
	r.buf = buf
	r.head = 0
	r.tail = n
}

// multiCore is the multi-reader specialization.
//
// One mutex serializes the queue, the waiter registry and the state
// word as a single atomic unit, so any number of concurrent readers and
// writers are safe and no write can race a registration into a lost
// wakeup. The price is that every operation, including TryRead and
// TryWrite, takes the mutex; use the single-reader specialization when
// the consumer is known to be unique.
//
// Read waiters are fulfilled strictly FIFO by direct item handoff: a
// waiter can only pend while the queue is empty, so handing the item to
// the oldest waiter preserves global write order and never delivers one
// item twice. WaitToRead waiters are all resolved on every accepted
// write; a resolved true is a hint, not a reservation, and a competing
// reader may still win the subsequent TryRead.
type multiCore[T any] struct {
	mu      sync.Mutex
	queue   ring[T]
	state   int64
	failure error

	readWaiters []*Future[T]
	waitWaiters []*Future[bool]

	done   *Future[struct{}]
	inline bool
}

func newMultiCore[T any](inline bool) *multiCore[T] {
	return &multiCore[T]{
		done:   newFuture[struct{}](inline),
		inline: inline,
	}
}

func (c *multiCore[T]) synchronous() bool { return c.inline }

func (c *multiCore[T]) completion() *Future[struct{}] { return c.done }

func (c *multiCore[T]) terminalError() error {
	c.mu.Lock()
	err := c.failure
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return ErrClosed
}

func (c *multiCore[T]) tryWrite(v T) bool {
	c.mu.Lock()
	if c.state != stateOpen {
		c.mu.Unlock()
		return false
	}

	var handoff *Future[T]
	if len(c.readWaiters) > 0 {
		// Queue is empty whenever read waiters pend, so the oldest
		// waiter takes the item directly and FIFO order holds.
		handoff = c.readWaiters[0]
		c.readWaiters = c.readWaiters[1:]
	} else {
		c.queue.push(v)
	}
	waits := c.waitWaiters
	c.waitWaiters = nil
	c.mu.Unlock()

	if handoff != nil {
		handoff.complete(v, nil)
	}
	for _, w := range waits {
		w.complete(true, nil)
	}
	return true
}

func (c *multiCore[T]) tryRead() (T, bool) {
	var zero T
	c.mu.Lock()
	v, ok := c.queue.pop()
	if !ok {
		c.mu.Unlock()
		return zero, false
	}
	finish := c.state != stateOpen && c.queue.empty()
	err := c.failure
	c.mu.Unlock()

	if finish {
		c.done.complete(struct{}{}, err)
	}
	return v, true
}

func (c *multiCore[T]) readAsync() *Future[T] {
	c.mu.Lock()
	if v, ok := c.queue.pop(); ok {
		finish := c.state != stateOpen && c.queue.empty()
		err := c.failure
		c.mu.Unlock()
		if finish {
			c.done.complete(struct{}{}, err)
		}
		return resolvedFuture(v, c.inline)
	}
	if c.state != stateOpen {
		err := c.failure
		if err == nil {
			err = ErrClosed
		}
		c.mu.Unlock()
		return failedFuture[T](err, c.inline)
	}
	f := newFuture[T](c.inline)
	c.readWaiters = append(c.readWaiters, f)
	c.mu.Unlock()
	return f
}

func (c *multiCore[T]) waitToRead() *Future[bool] {
	c.mu.Lock()
	if !c.queue.empty() {
		c.mu.Unlock()
		return resolvedFuture(true, c.inline)
	}
	if c.state != stateOpen {
		err := c.failure
		c.mu.Unlock()
		if err != nil {
			return failedFuture[bool](err, c.inline)
		}
		return resolvedFuture(false, c.inline)
	}
	f := newFuture[bool](c.inline)
	c.waitWaiters = append(c.waitWaiters, f)
	c.mu.Unlock()
	return f
}

func (c *multiCore[T]) complete(err error) bool {
	c.mu.Lock()
	if c.state != stateOpen {
		c.mu.Unlock()
		return false
	}
	c.failure = err
	if err != nil {
		c.state = stateFaulted
	} else {
		c.state = stateCompleted
	}
	reads := c.readWaiters
	waits := c.waitWaiters
	c.readWaiters, c.waitWaiters = nil, nil
	finish := c.queue.empty()
	c.mu.Unlock()

	readErr := err
	if readErr == nil {
		readErr = ErrClosed
	}
	var zero T
	for _, r := range reads {
		r.complete(zero, readErr)
	}
	for _, w := range waits {
		if err != nil {
			w.complete(false, err)
		} else {
			w.complete(false, nil)
		}
	}
	if finish {
		c.done.complete(struct{}{}, err)
	}
	return true
}
