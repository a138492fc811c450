// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ubch provides unbounded, completion-aware channels.
//
// A channel connects one or more writers to one or more readers through
// an in-memory FIFO with no capacity limit. Writers never block and
// never experience backpressure; readers drain non-blockingly or
// suspend through one-shot futures until data or completion arrives.
// A one-shot completion protocol lets the producing side announce that
// no further items will ever be written, cleanly or with an error.
//
// Two core specializations exist, chosen at construction:
//
//   - Multi-reader (default): any number of concurrent readers and
//     writers; queue and waiter registry serialized as one atomic unit.
//   - Single-reader: exactly one consumer by contract; lock-free read
//     side and a single waiter slot with last-registration-wins
//     supersession.
//
// # Quick Start
//
//	ch := ubch.Build[int](ubch.New())
//	w, r := ch.Writer(), ch.Reader()
//
//	w.TryWrite(1)
//	w.TryWrite(2)
//	w.Complete(nil)
//
//	for {
//	    v, ok := r.TryRead()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(v)
//	}
//
// # Suspending Reads
//
// Read and WaitToRead return a [Future]: select on Done, block on
// Result, or attach continuations with OnComplete.
//
//	// Drain loop on a single-reader channel
//	for {
//	    ok, err := r.WaitToRead().Result()
//	    if err != nil || !ok {
//	        break // completed (or faulted: inspect err)
//	    }
//	    for {
//	        v, more := r.TryRead()
//	        if !more {
//	            break
//	        }
//	        process(v)
//	    }
//	}
//
// # Completion
//
// Complete transitions the channel out of the open state exactly once.
// Buffered items stay readable after completion; the channel's
// completion future resolves at the first moment the channel is both
// terminal and drained.
//
//	go func() {
//	    for v := range produce() {
//	        w.TryWrite(v)
//	    }
//	    w.Complete(nil)
//	}()
//
//	<-r.Completion().Done() // terminal and drained
//
// Completing with a non-nil error faults the channel: pending and
// future reads fail with that error once the queue drains, and the
// completion future carries it too. A second Complete returns
// ErrAlreadyCompleted; racing completers should use TryComplete.
//
// # Single-Reader Supersession
//
// On a single-reader channel only the most recent read request matters.
// Registering a new Read or WaitToRead while an earlier one is pending
// fails the earlier future with ErrSuperseded. This is deliberate
// control flow, not an error condition: a consumer that abandons a wait
// and issues a new one needs no cleanup path for the old future.
//
// # Dispatch Policy
//
// Fulfilling a suspended read runs the future's continuations either
// inline on the fulfilling goroutine (the writer or completer), when
// the channel was built with SynchronousContinuations, or on a fresh
// goroutine otherwise. The policy changes where dependent code runs,
// never which value it observes. Inline continuations that re-enter the
// channel are safe; inline continuations that block stall the writer.
//
// # Error Handling
//
// TryWrite, TryRead and TryComplete never fail: they report refusal
// through their boolean results, keeping them safe for hot-path
// polling. The future-returning operations surface conditions through
// the future's error:
//
//	ubch.IsClosed(err)     // completed and drained, clean
//	ubch.IsSuperseded(err) // displaced by a newer request
//	ubch.IsSemantic(err)   // any control flow signal (delegates to iox)
//
// A faulted channel surfaces the caller's own completion error verbatim.
//
// # Thread Safety
//
// Writer ends are safe for any number of concurrent goroutines on both
// specializations. Reader ends are safe for concurrent use only on the
// multi-reader specialization; using a single-reader channel from two
// consumers concurrently is undefined behavior, documented rather than
// defended at runtime cost.
//
// # Race Detection
//
// The single-reader core orders its fast paths with atomic operations
// from [code.hybscloud.com/atomix], whose acquire/release edges the Go
// race detector cannot observe. Concurrency tests that exercise those
// paths are skipped under the race detector via the RaceEnabled
// constant; the algorithms are verified by stress tests without it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU
// pause instructions in lock retry loops, and [code.hybscloud.com/iox]
// for semantic error classification.
package ubch
