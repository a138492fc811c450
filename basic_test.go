// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch_test

import (
	"testing"

	"code.hybscloud.com/ubch"
)

// =============================================================================
// Basic Operations
// =============================================================================

// TestMultiReaderBasic tests FIFO order on the default multi-reader core.
func TestMultiReaderBasic(t *testing.T) {
	ch := ubch.Build[int](ubch.New())
	w, r := ch.Writer(), ch.Reader()

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead on empty: got ok, want false")
	}

	for i := range 8 {
		if !w.TryWrite(i + 100) {
			t.Fatalf("TryWrite(%d): refused", i)
		}
	}

	for i := range 8 {
		v, ok := r.TryRead()
		if !ok {
			t.Fatalf("TryRead(%d): got false", i)
		}
		if v != i+100 {
			t.Fatalf("TryRead(%d): got %d, want %d", i, v, i+100)
		}
	}

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead on drained: got ok, want false")
	}
}

// TestSingleReaderBasic tests FIFO order on the single-reader core.
func TestSingleReaderBasic(t *testing.T) {
	ch := ubch.Build[int](ubch.New().SingleReader())
	w, r := ch.Writer(), ch.Reader()

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead on empty: got ok, want false")
	}

	for i := range 8 {
		if !w.TryWrite(i + 100) {
			t.Fatalf("TryWrite(%d): refused", i)
		}
	}

	for i := range 8 {
		v, ok := r.TryRead()
		if !ok {
			t.Fatalf("TryRead(%d): got false", i)
		}
		if v != i+100 {
			t.Fatalf("TryRead(%d): got %d, want %d", i, v, i+100)
		}
	}

	if _, ok := r.TryRead(); ok {
		t.Fatal("TryRead on drained: got ok, want false")
	}
}

// TestEmptyTryReadNoSideEffect verifies a failed TryRead leaves the
// channel usable: later writes and reads behave as if it never happened.
func TestEmptyTryReadNoSideEffect(t *testing.T) {
	for _, single := range []bool{false, true} {
		b := ubch.New()
		if single {
			b = b.SingleReader()
		}
		ch := ubch.Build[string](b)
		w, r := ch.Writer(), ch.Reader()

		for range 3 {
			if _, ok := r.TryRead(); ok {
				t.Fatal("TryRead on empty: got ok")
			}
		}
		if !w.TryWrite("a") {
			t.Fatal("TryWrite refused after empty probes")
		}
		if v, ok := r.TryRead(); !ok || v != "a" {
			t.Fatalf("TryRead: got (%q, %v), want (a, true)", v, ok)
		}
	}
}

// TestUnboundedGrowth writes 100000 items before reading any, then
// verifies the full monotone sequence on both cores. This crosses many
// segment boundaries on the single-reader core and forces repeated ring
// growth on the multi-reader core.
func TestUnboundedGrowth(t *testing.T) {
	const n = 100000
	for _, single := range []bool{false, true} {
		b := ubch.New()
		if single {
			b = b.SingleReader()
		}
		ch := ubch.Build[int](b)
		w, r := ch.Writer(), ch.Reader()

		for i := range n {
			if !w.TryWrite(i) {
				t.Fatalf("single=%v TryWrite(%d): refused", single, i)
			}
		}
		for i := range n {
			v, ok := r.TryRead()
			if !ok {
				t.Fatalf("single=%v TryRead(%d): got false", single, i)
			}
			if v != i {
				t.Fatalf("single=%v TryRead(%d): got %d", single, i, v)
			}
		}
		if _, ok := r.TryRead(); ok {
			t.Fatalf("single=%v TryRead after drain: got ok", single)
		}
	}
}

// TestInterleavedWriteRead alternates writes and reads so the queue
// repeatedly empties and refills across segment boundaries.
func TestInterleavedWriteRead(t *testing.T) {
	ch := ubch.Build[int](ubch.New().SingleReader())
	w, r := ch.Writer(), ch.Reader()

	for i := range 500 {
		burst := i%7 + 1
		for j := range burst {
			if !w.TryWrite(i*100 + j) {
				t.Fatal("TryWrite refused")
			}
		}
		for j := range burst {
			v, ok := r.TryRead()
			if !ok {
				t.Fatalf("TryRead: empty at burst %d item %d", i, j)
			}
			if v != i*100+j {
				t.Fatalf("TryRead: got %d, want %d", v, i*100+j)
			}
		}
	}
	if _, ok := r.TryRead(); ok {
		t.Fatal("queue should be empty between bursts")
	}
}

// TestWriteFuture verifies Write returns an already-resolved future on
// an open channel: the unbounded variant never suspends a writer.
func TestWriteFuture(t *testing.T) {
	ch := ubch.Build[int](ubch.New())
	w, r := ch.Writer(), ch.Reader()

	f := w.Write(7)
	if _, err, ok := f.TryResult(); !ok || err != nil {
		t.Fatalf("Write future: got (err=%v, ok=%v), want resolved success", err, ok)
	}
	if v, ok := r.TryRead(); !ok || v != 7 {
		t.Fatalf("TryRead after Write: got (%d, %v)", v, ok)
	}
}
