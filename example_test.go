// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch_test

import (
	"errors"
	"fmt"

	"code.hybscloud.com/ubch"
)

// Example demonstrates writing, completing and draining a channel.
func Example() {
	ch := ubch.Build[string](ubch.New())
	w, r := ch.Writer(), ch.Reader()

	w.TryWrite("hello")
	w.TryWrite("world")
	w.Complete(nil)

	for {
		v, ok := r.TryRead()
		if !ok {
			break
		}
		fmt.Println(v)
	}

	_, err := r.Completion().Result()
	fmt.Println("clean:", err == nil)
	// Output:
	// hello
	// world
	// clean: true
}

// Example_supersession demonstrates the single-reader rule that only
// the most recent read request matters.
func Example_supersession() {
	ch := ubch.Build[int](ubch.New().SingleReader())
	w, r := ch.Writer(), ch.Reader()

	stale := r.Read()
	fresh := r.Read()

	if _, err := stale.Result(); ubch.IsSuperseded(err) {
		fmt.Println("stale read cancelled")
	}

	w.TryWrite(42)
	v, _ := fresh.Result()
	fmt.Println(v)
	// Output:
	// stale read cancelled
	// 42
}

// Example_fault demonstrates propagating a producer failure to readers
// through the completion protocol.
func Example_fault() {
	ch := ubch.Build[int](ubch.New())
	w, r := ch.Writer(), ch.Reader()

	w.TryWrite(1)
	w.Complete(errors.New("upstream failed"))

	// The buffered item drains first; the fault surfaces after.
	v, _ := r.TryRead()
	fmt.Println("drained:", v)

	_, err := r.Read().Result()
	fmt.Println(err)
	// Output:
	// drained: 1
	// upstream failed
}
