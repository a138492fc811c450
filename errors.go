// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrClosed indicates the channel is completed and fully drained.
//
// Read and WaitToRead futures fail with ErrClosed when the channel was
// completed without an error and no buffered items remain. A channel
// completed with an error surfaces that error instead.
//
// ErrClosed is a control flow signal, not a failure. It is the normal way
// a drain loop learns that no further items will ever arrive.
//
// Example:
//
//	for {
//	    v, err := r.Read().Result()
//	    if ubch.IsClosed(err) {
//	        break // producer finished
//	    }
//	    if err != nil {
//	        return err // channel faulted
//	    }
//	    process(v)
//	}
var ErrClosed = errors.New("ubch: channel closed")

// ErrAlreadyCompleted indicates a second completion attempt.
//
// Complete returns ErrAlreadyCompleted when the channel has already
// transitioned out of the open state. Use TryComplete when competing
// completers are expected and the losing call should not be treated as
// an error.
var ErrAlreadyCompleted = errors.New("ubch: channel already completed")

// ErrSuperseded indicates a stale read request was displaced.
//
// In the single-reader specialization, registering a new Read or
// WaitToRead while an earlier one is still pending cancels the earlier
// request: its future fails with ErrSuperseded. Only the most recent
// request matters, so callers must treat ErrSuperseded as expected
// control flow, not as a failure.
var ErrSuperseded = errors.New("ubch: read request superseded")

// IsClosed reports whether err indicates a drained, completed channel.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsSuperseded reports whether err indicates a displaced read request.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Returns true for ErrClosed and ErrSuperseded, and otherwise delegates
// to [iox.IsSemantic] for ecosystem consistency.
func IsSemantic(err error) bool {
	return errors.Is(err, ErrClosed) || errors.Is(err, ErrSuperseded) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrClosed, ErrSuperseded, or any condition
// [iox.IsNonFailure] recognizes.
func IsNonFailure(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, ErrClosed) || errors.Is(err, ErrSuperseded) || iox.IsNonFailure(err)
}
