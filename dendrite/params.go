// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dendrite

import "github.com/goki/mat32"

// Params are the receptor permanence learning parameters.
// Permanences are 8-bit values that saturate at 0 and 255.
type Params struct {
	PermThr  uint8   `def:"20" desc:"permanence threshold: a receptor with permanence >= PermThr is connected and counts toward dendrite overlap"`
	PermInc  uint8   `def:"2" desc:"permanence increment applied to receptors whose context bit is active during learning"`
	PermDec  uint8   `def:"1" desc:"permanence decrement applied to receptors whose context bit is inactive during learning"`
	PctLearn float32 `def:"1" min:"0" max:"1" desc:"probability that a receptor whose permanence falls to 0 is moved to a new active context bit -- 1 = always move"`
}

func (dp *Params) Defaults() {
	dp.PermThr = 20
	dp.PermInc = 2
	dp.PermDec = 1
	dp.PctLearn = 1
	dp.Update()
}

func (dp *Params) Update() {
	dp.PctLearn = mat32.Clamp(dp.PctLearn, 0, 1)
}

// Connected returns true if perm is at or above threshold.
func (dp *Params) Connected(perm uint8) bool {
	return perm >= dp.PermThr
}

// IncPerm returns perm + PermInc, saturating at 255.
func (dp *Params) IncPerm(perm uint8) uint8 {
	if int(perm)+int(dp.PermInc) > 255 {
		return 255
	}
	return perm + dp.PermInc
}

// DecPerm returns perm - PermDec, saturating at 0.
func (dp *Params) DecPerm(perm uint8) uint8 {
	if perm < dp.PermDec {
		return 0
	}
	return perm - dp.PermDec
}
