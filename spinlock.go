// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ubch

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// spinLock is a test-and-test-and-set lock for short critical sections.
//
// Used where the holder performs a handful of plain loads and stores:
// the single-reader core's writer side and the Future resolution path.
// Not suitable for regions that can block; the multi-reader core uses
// sync.Mutex instead because its holders contend arbitrarily.
type spinLock struct {
	word atomix.Uint64
}

func (l *spinLock) acquire() {
	sw := spin.Wait{}
	for {
		if l.word.LoadRelaxed() == 0 && l.word.CompareAndSwapAcqRel(0, 1) {
			return
		}
		sw.Once()
	}
}

func (l *spinLock) release() {
	l.word.StoreRelease(0)
}
