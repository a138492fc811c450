// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ubch

// RaceEnabled is true when the race detector is active.
// Used by tests to skip single-reader concurrency tests, whose
// atomic acquire/release ordering the detector cannot track.
const RaceEnabled = true
