// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/emergent/v2/etime"
	"github.com/emer/seqlearn/bitarr"
	"github.com/emer/seqlearn/dendrite"
	"github.com/emer/seqlearn/ports"
	"github.com/goki/ki/ints"
)

// Learner is the SequenceLearner block.  Each active input column is
// expressed by one or more of its statelets, chosen by which dendrites
// recognize the Context (the block's own previous Outputs).  When no
// dendrite on a column recognizes the Context the column is surprised:
// a random statelet plus every statelet that has learned before are
// activated and each gets a new dendrite trained on the Context.
//
// Indexing: statelet s belongs to column s / NumSPC, and owns dendrites
// [s*NumDPS, (s+1)*NumDPS).  Column c owns dendrites [c*NumDPC, (c+1)*NumDPC).
type Learner struct {
	Params
	Input   *ports.Input    `desc:"column input -- connect an upstream Output of width NumC before Init"`
	Context *ports.Input    `desc:"context input, wired to this block's own Output at time offsets 1..NumT-1"`
	Output  *ports.Output   `desc:"statelet output, width NumS"`
	Mem     dendrite.Memory `desc:"dendritic memory over the Context, one bit of Mem.State per dendrite"`
	NextSD  []uint32        `desc:"per statelet, index of the next dendrite to allocate -- never exceeds NumDPS-1"`
	DUsed   *bitarr.Array   `desc:"per dendrite, set once the dendrite has learned"`
	Anom    float32         `inactive:"+" desc:"anomaly score of the last recomputed step: fraction of active columns that were surprised"`
	Time    Time            `desc:"step counters and evaluation mode"`

	rnd    erand.Rand
	acts   []int
	isInit bool
}

// New returns a new Learner for the given params, or an error wrapping
// ErrParams if they are invalid.
func New(pars Params) (*Learner, error) {
	if err := pars.Validate(); err != nil {
		return nil, err
	}
	sl := &Learner{Params: pars}
	sl.NextSD = make([]uint32, sl.NumS())
	sl.DUsed = bitarr.New(sl.NumD())
	sl.Input = ports.NewInput()
	sl.Context = ports.NewInput()
	sl.Output = ports.NewOutput(sl.NumT, sl.NumS())
	for t := 1; t < sl.NumT; t++ {
		sl.Context.AddChild(sl.Output, t)
	}
	sl.Mem.Params = dendrite.Params{PermThr: pars.PermThr, PermInc: pars.PermInc, PermDec: pars.PermDec, PctLearn: 1}
	sl.Time.Defaults()
	sl.InitRand()
	return sl, nil
}

// InitRand restarts the random number stream from Seed.
func (sl *Learner) InitRand() {
	sl.rnd = erand.NewSysRand(sl.Seed)
}

// IsInit returns true once Init has succeeded.
func (sl *Learner) IsInit() bool {
	return sl.isInit
}

// Init initializes the dendritic memory over the Context.  The Input must
// already be connected and NumC wide.  Calling Init again redraws all
// receptors but keeps NextSD and DUsed.  The Time counters restart at 0.
func (sl *Learner) Init() error {
	if nb := sl.Input.NumBits(); nb != sl.NumC {
		return fmt.Errorf("%w: Input has %d bits, NumC is %d", ErrInputWidth, nb, sl.NumC)
	}
	if err := sl.Mem.Init(sl.Context.NumBits(), sl.NumD(), sl.NumRPD, sl.rnd); err != nil {
		return err
	}
	sl.Time.Reset()
	sl.isInit = true
	return nil
}

// Clear clears the Input, Context, Output and dendrite activation states.
// Learned state (receptors, NextSD, DUsed) is kept.
func (sl *Learner) Clear() {
	sl.Input.Clear()
	sl.Context.Clear()
	sl.Output.Clear()
	sl.Mem.Clear()
}

// Pull updates the Input and Context from their connected Outputs.
func (sl *Learner) Pull() {
	sl.Input.Pull()
	sl.Context.Pull()
}

// NeedsUpdate returns true if Encode and Learn will recompute on this step.
func (sl *Learner) NeedsUpdate() bool {
	return sl.AlwaysUpdate || sl.Input.Changed() || sl.Context.Changed()
}

// Encode computes the Output from the Input columns and the Context.
// When neither Input nor Context changed (and not AlwaysUpdate), nothing is
// recomputed: Output, Mem.State and Anom keep their previous values.
func (sl *Learner) Encode() error {
	if !sl.isInit {
		return ErrNotInit
	}
	if !sl.NeedsUpdate() {
		return nil
	}
	sl.Time.UpdateInc()
	sl.acts = sl.Input.State.Acts()
	sl.Anom = 0
	sl.Output.State.ClearAll()
	sl.Mem.State.ClearAll()
	nsurp := 0
	for _, c := range sl.acts {
		if !sl.Recognize(c) {
			sl.Surprise(c)
			nsurp++
		}
	}
	if na := len(sl.acts); na > 0 {
		sl.Anom = float32(nsurp) / float32(na)
	}
	return nil
}

// Learn trains every active dendrite of the active columns on the Context
// and marks it used.  Gated the same way as Encode.
func (sl *Learner) Learn() error {
	if !sl.isInit {
		return ErrNotInit
	}
	if !sl.NeedsUpdate() {
		return nil
	}
	ndpc := sl.NumDPC()
	for _, c := range sl.acts {
		dBeg := c * ndpc
		for d := dBeg; d < dBeg+ndpc; d++ {
			if !sl.Mem.State.Bit(d) {
				continue
			}
			sl.Mem.LearnMove(d, sl.Context.State, sl.rnd)
			sl.DUsed.Set(d)
		}
	}
	return nil
}

// Store copies the Output state into its history.
func (sl *Learner) Store() {
	sl.Output.Store()
}

// Step advances the Output history, so the next Pull sees this step's
// Output in the Context.
func (sl *Learner) Step() {
	sl.Output.Step()
	sl.Time.StepInc()
}

// Feedforward runs one full step: Pull, Encode, Learn (if learn is true
// and not in etime.Test mode), Store and Step.
func (sl *Learner) Feedforward(learn bool) error {
	sl.Pull()
	if err := sl.Encode(); err != nil {
		return err
	}
	if learn && sl.Time.Mode != etime.Test {
		if err := sl.Learn(); err != nil {
			return err
		}
	}
	sl.Store()
	sl.Step()
	return nil
}

// AnomalyScore returns the fraction of active columns that were surprised
// on the last recomputed step, in [0, 1].
func (sl *Learner) AnomalyScore() float32 {
	return sl.Anom
}

// Recognize activates every used dendrite on column c whose overlap with the
// Context reaches DThresh, along with its statelet.  Returns true if any did.
func (sl *Learner) Recognize(c int) bool {
	ndpc := sl.NumDPC()
	dBeg := c * ndpc
	recog := false
	for d := dBeg; d < dBeg+ndpc; d++ {
		if !sl.DUsed.Bit(d) {
			continue
		}
		if sl.Mem.Overlap(d, sl.Context.State) >= sl.DThresh {
			sl.Mem.State.Set(d)
			sl.Output.State.Set(d / sl.NumDPS)
			recog = true
		}
	}
	return recog
}

// Surprise bursts column c: a randomly chosen statelet, and every other
// statelet that has allocated a dendrite before, are activated and each
// has its next dendrite activated for learning.
func (sl *Learner) Surprise(c int) {
	sBeg := c * sl.NumSPC
	sRand := sBeg + sl.rnd.Intn(sl.NumSPC, -1)
	sl.Output.State.Set(sRand)
	sl.NextDendrite(sRand)
	for s := sBeg; s < sBeg+sl.NumSPC; s++ {
		if s == sRand || sl.NextSD[s] == 0 {
			continue
		}
		sl.Output.State.Set(s)
		sl.NextDendrite(s)
	}
}

// NextDendrite activates the next dendrite to allocate on statelet s and
// advances NextSD[s], stopping at the last dendrite: once all are allocated
// the last one keeps being reused.
func (sl *Learner) NextDendrite(s int) {
	nsd := int(sl.NextSD[s])
	sl.Mem.State.Set(s*sl.NumDPS + nsd)
	sl.NextSD[s] = uint32(ints.MinInt(nsd+1, sl.NumDPS-1))
}
