// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

import (
	"code.hybscloud.com/atomix"
)

// segShift sets the segment size of the single-reader queue (32 items).
const (
	segShift = 5
	segSize  = 1 << segShift
)

// segment is one fixed-size block of the unbounded queue. The writer
// links a fresh segment ahead of publishing the first index inside it,
// so a reader that observed that index also observes the link.
type segment[T any] struct {
	buf  [segSize]T
	next *segment[T]
}

// singleCore is the single-reader specialization.
//
// The queue is a linked list of fixed-size segments addressed by two
// monotonically increasing indices. The reader owns head and its cached
// view of tail, so TryRead never takes a lock. Writers, completion and
// waiter registration serialize on one spinlock covering the tail
// segment, the waiter slot and the state word as a unit, which rules
// out lost wakeups: an enqueue either sees the registered waiter or the
// registration sees the enqueued item.
//
// At most one waiter slot exists. Registering a new Read or WaitToRead
// while an earlier one pends displaces it with ErrSuperseded; the
// newest request always wins.
//
// Exactly one goroutine may consume (TryRead, Read, WaitToRead) at a
// time. Two concurrent consumers are undefined behavior: the head index
// and segment walk assume a single owner. This contract is what buys
// the lock-free read side; it is documented, not defended.
type singleCore[T any] struct {
	_          pad
	head       atomix.Uint64 // Next index to read; reader only
	_          pad
	cachedTail uint64 // Reader's cached view of tail
	_          pad
	tail       atomix.Uint64 // Next index to write; lock holder only
	_          pad
	state      atomix.Int64 // stateOpen / stateCompleted / stateFaulted
	_          pad
	lock       spinLock // Guards tail segment, waiter slot, state transition
	_          pad

	readSeg  *segment[T] // Reader only
	readBase uint64      // Index of readSeg.buf[0]; reader only

	writeSeg  *segment[T] // Lock holder only
	writeBase uint64      // Index of writeSeg.buf[0]; lock holder only

	// Waiter slot: at most one of the two is non-nil.
	pendingRead *Future[T]
	pendingWait *Future[bool]

	failure error // Written before the terminal state store
	done    *Future[struct{}]
	inline  bool
}

func newSingleCore[T any](inline bool) *singleCore[T] {
	seg := &segment[T]{}
	return &singleCore[T]{
		readSeg:  seg,
		writeSeg: seg,
		done:     newFuture[struct{}](inline),
		inline:   inline,
	}
}

func (c *singleCore[T]) synchronous() bool { return c.inline }

func (c *singleCore[T]) completion() *Future[struct{}] { return c.done }

func (c *singleCore[T]) terminalError() error {
	if c.state.Load() == stateFaulted {
		return c.failure
	}
	return ErrClosed
}

func (c *singleCore[T]) tryWrite(v T) bool {
	if c.state.LoadRelaxed() != stateOpen {
		return false
	}

	c.lock.acquire()
	if c.state.LoadRelaxed() != stateOpen {
		c.lock.release()
		return false
	}

	// A pending read waiter implies an empty queue, so handing the item
	// over directly preserves FIFO and skips the queue entirely.
	if r := c.pendingRead; r != nil {
		c.pendingRead = nil
		c.lock.release()
		r.complete(v, nil)
		return true
	}

	tail := c.tail.LoadRelaxed()
	if tail == c.writeBase+segSize {
		s := &segment[T]{}
		c.writeSeg.next = s
		c.writeSeg = s
		c.writeBase += segSize
	}
	c.writeSeg.buf[tail-c.writeBase] = v
	c.tail.StoreRelease(tail + 1)

	w := c.pendingWait
	c.pendingWait = nil
	c.lock.release()

	if w != nil {
		w.complete(true, nil)
	}
	return true
}

func (c *singleCore[T]) tryRead() (T, bool) {
	var zero T
	head := c.head.LoadRelaxed()
	if head == c.cachedTail {
		c.cachedTail = c.tail.LoadAcquire()
		if head == c.cachedTail {
			return zero, false
		}
	}

	if head == c.readBase+segSize {
		c.readSeg = c.readSeg.next
		c.readBase += segSize
	}
	v := c.readSeg.buf[head-c.readBase]
	c.readSeg.buf[head-c.readBase] = zero

	// Sequentially consistent store pairs with the state store in
	// complete: whichever side runs second observes the other, so the
	// completion future cannot miss the final dequeue.
	c.head.Store(head + 1)
	if c.state.Load() != stateOpen {
		c.finishIfDrained()
	}
	return v, true
}

func (c *singleCore[T]) readAsync() *Future[T] {
	if v, ok := c.tryRead(); ok {
		return resolvedFuture(v, c.inline)
	}

	c.lock.acquire()
	// Re-probe under the lock: a writer may have enqueued after the
	// fast path gave up and before we serialized against it.
	if c.head.LoadRelaxed() != c.tail.LoadRelaxed() {
		c.lock.release()
		v, _ := c.tryRead()
		return resolvedFuture(v, c.inline)
	}
	if c.state.LoadRelaxed() != stateOpen {
		err := c.failure
		if err == nil {
			err = ErrClosed
		}
		c.lock.release()
		return failedFuture[T](err, c.inline)
	}

	oldRead, oldWait := c.pendingRead, c.pendingWait
	f := newFuture[T](c.inline)
	c.pendingRead, c.pendingWait = f, nil
	c.lock.release()

	c.supersede(oldRead, oldWait)
	return f
}

func (c *singleCore[T]) waitToRead() *Future[bool] {
	head := c.head.LoadRelaxed()
	if head != c.cachedTail {
		return resolvedFuture(true, c.inline)
	}
	c.cachedTail = c.tail.LoadAcquire()
	if head != c.cachedTail {
		return resolvedFuture(true, c.inline)
	}

	c.lock.acquire()
	if c.head.LoadRelaxed() != c.tail.LoadRelaxed() {
		c.lock.release()
		return resolvedFuture(true, c.inline)
	}
	if c.state.LoadRelaxed() != stateOpen {
		err := c.failure
		c.lock.release()
		if err != nil {
			return failedFuture[bool](err, c.inline)
		}
		return resolvedFuture(false, c.inline)
	}

	oldRead, oldWait := c.pendingRead, c.pendingWait
	f := newFuture[bool](c.inline)
	c.pendingRead, c.pendingWait = nil, f
	c.lock.release()

	c.supersede(oldRead, oldWait)
	return f
}

// supersede fails a displaced waiter, outside the lock.
func (c *singleCore[T]) supersede(read *Future[T], wait *Future[bool]) {
	if read != nil {
		var zero T
		read.complete(zero, ErrSuperseded)
	}
	if wait != nil {
		wait.complete(false, ErrSuperseded)
	}
}

func (c *singleCore[T]) complete(err error) bool {
	c.lock.acquire()
	if c.state.LoadRelaxed() != stateOpen {
		c.lock.release()
		return false
	}
	c.failure = err
	if err != nil {
		c.state.Store(stateFaulted)
	} else {
		c.state.Store(stateCompleted)
	}
	r, w := c.pendingRead, c.pendingWait
	c.pendingRead, c.pendingWait = nil, nil
	c.lock.release()

	// A pending waiter implies an empty queue; it observes completion
	// now rather than ever draining anything.
	if r != nil {
		readErr := err
		if readErr == nil {
			readErr = ErrClosed
		}
		var zero T
		r.complete(zero, readErr)
	}
	if w != nil {
		if err != nil {
			w.complete(false, err)
		} else {
			w.complete(false, nil)
		}
	}

	c.finishIfDrained()
	return true
}

// finishIfDrained resolves the completion future once the queue is
// empty. Callers guarantee the state is already terminal. Recomputed at
// every dequeue and at completion, so the future tracks actual
// emptiness instead of separate bookkeeping.
func (c *singleCore[T]) finishIfDrained() {
	if c.head.Load() == c.tail.Load() {
		c.done.complete(struct{}{}, c.failure)
	}
}
