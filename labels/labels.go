// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package labels provides the label Transformer block, which encodes an integer
category label as a sparse bit pattern for input into a sequence learner.

Each of the NumL labels owns a distinct contiguous run of NumS/NumL bits.
*/
package labels

import (
	"fmt"

	"github.com/emer/seqlearn/ports"
)

// Transformer encodes one of NumL labels into a NumS wide Output.
type Transformer struct {
	NumL   int           `desc:"number of labels"`
	NumS   int           `desc:"number of output bits (statelets)"`
	NumAS  int           `inactive:"+" desc:"number of active bits per label = NumS / NumL"`
	Value  int           `desc:"current label"`
	Output *ports.Output `desc:"encoded label output"`
}

// New returns a new Transformer, with numT steps of Output history.
func New(numL, numS, numT int) (*Transformer, error) {
	if numL <= 0 || numS < numL {
		return nil, fmt.Errorf("labels.New: need 0 < NumL <= NumS: NumL: %d, NumS: %d", numL, numS)
	}
	lt := &Transformer{NumL: numL, NumS: numS}
	lt.NumAS = numS / numL
	lt.Output = ports.NewOutput(numT, numS)
	return lt, nil
}

// SetValue sets the label to encode on the next Encode.
func (lt *Transformer) SetValue(val int) error {
	if val < 0 || val >= lt.NumL {
		return fmt.Errorf("labels.Transformer SetValue: label %d out of range [0, %d)", val, lt.NumL)
	}
	lt.Value = val
	return nil
}

// Encode sets the Output state to the bits of the current label.
func (lt *Transformer) Encode() {
	lt.Output.State.ClearAll()
	st := lt.Value * lt.NumAS
	for i := st; i < st+lt.NumAS; i++ {
		lt.Output.State.Set(i)
	}
}

// Feedforward encodes the current label, then stores and steps the Output.
func (lt *Transformer) Feedforward() {
	lt.Encode()
	lt.Output.Store()
	lt.Output.Step()
}

// Clear clears the Output.
func (lt *Transformer) Clear() {
	lt.Output.Clear()
}
