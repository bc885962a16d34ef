// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParams is returned by New for an invalid configuration.
	ErrParams = errors.New("seqlearn: invalid params")

	// ErrNotInit is returned when computing, learning or saving before Init.
	ErrNotInit = errors.New("seqlearn: block not initialized")

	// ErrInputWidth is returned by Init when the Input width is not NumC.
	ErrInputWidth = errors.New("seqlearn: input width does not match number of columns")
)

// Params are the SequenceLearner structural and learning parameters.
// They are fixed once the Learner is constructed.
type Params struct {
	NumC         int   `def:"512" min:"1" desc:"number of columns -- must equal the width of the Input"`
	NumSPC       int   `def:"10" min:"1" desc:"number of statelets per column: alternative contexts a column can represent"`
	NumDPS       int   `def:"10" min:"1" desc:"number of dendrites per statelet: distinct contexts a statelet can learn before dendrites are reused"`
	NumRPD       int   `def:"12" min:"1" desc:"number of receptors per dendrite"`
	DThresh      int   `def:"6" min:"0" desc:"dendrite threshold: a used dendrite recognizes the context when its overlap is >= DThresh -- must be < NumRPD"`
	PermThr      uint8 `def:"20" desc:"receptor permanence threshold for being connected"`
	PermInc      uint8 `def:"2" desc:"receptor permanence increment"`
	PermDec      uint8 `def:"1" desc:"receptor permanence decrement"`
	NumT         int   `def:"2" min:"2" desc:"number of Output history steps: Context reads the previous NumT-1 outputs"`
	AlwaysUpdate bool  `desc:"recompute and learn on every step -- otherwise only when the Input or Context changed since the last Pull"`
	Seed         int64 `desc:"seed for the block's random number stream"`
}

func (sp *Params) Defaults() {
	sp.NumC = 512
	sp.NumSPC = 10
	sp.NumDPS = 10
	sp.NumRPD = 12
	sp.DThresh = 6
	sp.PermThr = 20
	sp.PermInc = 2
	sp.PermDec = 1
	sp.NumT = 2
	sp.AlwaysUpdate = false
	sp.Seed = 0
}

// Validate returns an error wrapping ErrParams listing every invalid value.
func (sp *Params) Validate() error {
	var msgs []string
	pos := func(nm string, v int) {
		if v <= 0 {
			msgs = append(msgs, fmt.Sprintf("%s must be > 0, is %d", nm, v))
		}
	}
	pos("NumC", sp.NumC)
	pos("NumSPC", sp.NumSPC)
	pos("NumDPS", sp.NumDPS)
	pos("NumRPD", sp.NumRPD)
	if sp.DThresh < 0 || sp.DThresh >= sp.NumRPD {
		msgs = append(msgs, fmt.Sprintf("DThresh must be in [0, NumRPD): DThresh %d, NumRPD %d", sp.DThresh, sp.NumRPD))
	}
	if sp.NumT < 2 {
		msgs = append(msgs, fmt.Sprintf("NumT must be >= 2 for the context to see a previous output, is %d", sp.NumT))
	}
	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrParams, strings.Join(msgs, "; "))
	}
	return nil
}

// NumS returns the total number of statelets.
func (sp *Params) NumS() int { return sp.NumC * sp.NumSPC }

// NumD returns the total number of dendrites.
func (sp *Params) NumD() int { return sp.NumS() * sp.NumDPS }

// NumDPC returns the number of dendrites per column.
func (sp *Params) NumDPC() int { return sp.NumSPC * sp.NumDPS }
