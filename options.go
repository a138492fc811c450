// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

// Options configures channel creation and core selection.
type Options struct {
	// Reader constraint (selects the core specialization)
	singleReader bool

	// Continuation dispatch policy
	synchronousContinuations bool
}

// Builder creates channels with fluent configuration.
//
// The builder selects the core implementation from the declared reader
// constraint and fixes the continuation dispatch policy at construction.
//
// Example:
//
//	// Default: any number of concurrent readers, deferred continuations
//	ch := ubch.Build[Event](ubch.New())
//
//	// Single consumer, lock-free read side
//	ch := ubch.Build[Event](ubch.New().SingleReader())
//
//	// Continuations run inline on the writing goroutine
//	ch := ubch.Build[Event](ubch.New().SynchronousContinuations())
type Builder struct {
	opts Options
}

// New creates a channel builder. The channel is unbounded, so there is
// no capacity to configure and Build never fails.
func New() *Builder {
	return &Builder{}
}

// SingleReader declares that exactly one goroutine will consume.
//
// Enables the lock-free read side and the single waiter slot: a newer
// Read or WaitToRead displaces a pending one with ErrSuperseded.
// Violating the single-consumer contract is undefined behavior.
func (b *Builder) SingleReader() *Builder {
	b.opts.singleReader = true
	return b
}

// SynchronousContinuations runs waiter continuations inline on the
// goroutine that performed the fulfilling write or completion, instead
// of handing them to a fresh goroutine.
//
// Inline dispatch avoids a goroutine switch per fulfillment, but a slow
// continuation then stalls the writer that triggered it. The delivered
// value is identical under either policy.
func (b *Builder) SynchronousContinuations() *Builder {
	b.opts.synchronousContinuations = true
	return b
}

// Build creates a channel from the builder's configuration.
//
// Core selection:
//
//	SingleReader() → lock-free segmented queue, single waiter slot
//	default        → mutex-serialized queue, FIFO waiter registry
func Build[T any](b *Builder) *Channel[T] {
	var c core[T]
	if b.opts.singleReader {
		c = newSingleCore[T](b.opts.synchronousContinuations)
	} else {
		c = newMultiCore[T](b.opts.synchronousContinuations)
	}
	ch := &Channel[T]{}
	ch.reader.core = c
	ch.writer.core = c
	return ch
}
