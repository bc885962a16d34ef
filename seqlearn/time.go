// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import "github.com/emer/emergent/v2/etime"

// seqlearn.Time counts the steps a Learner has run
type Time struct {

	// number of Step calls since the last Init
	Steps int

	// number of Encode calls that recomputed the block state,
	// i.e., were not skipped for lack of Input or Context change.
	Updates int

	// current evaluation mode.  Feedforward never learns in etime.Test mode.
	Mode etime.Modes
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.Mode = etime.Train
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Steps = 0
	tm.Updates = 0
}

// StepInc increments at the step level
func (tm *Time) StepInc() {
	tm.Steps++
}

// UpdateInc counts a recomputed step
func (tm *Time) UpdateInc() {
	tm.Updates++
}
