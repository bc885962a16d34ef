// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ports provides the timed input and output connections between blocks.

An Output keeps a ring of past states, one per time step, so that any Input
can read it at a fixed time offset.  An Input concatenates one or more
(Output, offset) children into a single bit array on each Pull, and tracks
whether the pulled value changed since the previous Pull.

A block may wire its own Output into one of its Inputs at offsets >= 1:
the Input then only ever sees snapshots stored on previous steps, so the
self-reference is delayed by at least one step and never sees the state
being computed.  Offset 0 reads the live state, for connecting an upstream
block that has already run on the current step.
*/
package ports

import (
	"github.com/emer/seqlearn/bitarr"
)

// Output holds the current output state of a block plus a history ring
// of the states stored on the last NumT steps.
type Output struct {
	NumT    int             `desc:"number of time steps of history kept"`
	NumBits int             `desc:"width of each state"`
	State   *bitarr.Array   `desc:"current state, copied into the history by Store"`
	Hists   []*bitarr.Array `view:"-" desc:"history ring, indexed through Cur"`
	Cur     int             `inactive:"+" desc:"index of the current history slot"`
}

// NewOutput returns an Output of numBits wide states with numT steps of history.
func NewOutput(numT, numBits int) *Output {
	out := &Output{}
	out.Setup(numT, numBits)
	return out
}

// Setup allocates the state and history.  numT is raised to at least 1.
func (out *Output) Setup(numT, numBits int) {
	if numT < 1 {
		numT = 1
	}
	out.NumT = numT
	out.NumBits = numBits
	out.State = bitarr.New(numBits)
	out.Hists = make([]*bitarr.Array, numT)
	for i := range out.Hists {
		out.Hists[i] = bitarr.New(numBits)
	}
	out.Cur = 0
}

// Clear zeroes the state and the full history.
func (out *Output) Clear() {
	out.State.ClearAll()
	for _, h := range out.Hists {
		h.ClearAll()
	}
}

// Store copies State into the current history slot.
func (out *Output) Store() {
	out.Hists[out.Cur].CopyFrom(out.State)
}

// Step advances the current history slot.  After Step, Hist(1) is the
// state most recently stored.  Blocks run Pull, Encode, Learn, Store and
// Step in that order each time step, so a reader at offset 0 sees the
// value computed on the same step, and at offset t >= 1 the value from t
// steps before.
func (out *Output) Step() {
	out.Cur = (out.Cur + 1) % out.NumT
}

// Hist returns the state t steps back: Hist(0) is the live State, and
// Hist(t) for t >= 1 is the t-th most recent state stored before the last Step.
func (out *Output) Hist(t int) *bitarr.Array {
	if t == 0 {
		return out.State
	}
	idx := ((out.Cur-t)%out.NumT + out.NumT) % out.NumT
	return out.Hists[idx]
}

// Child is one Output connection of an Input, read at time offset T.
type Child struct {
	Out *Output
	T   int
}

// Input aggregates Output histories into a single bit array.
type Input struct {
	Children []Child       `desc:"connected outputs, concatenated in order"`
	State    *bitarr.Array `desc:"concatenated state from the last Pull"`

	prev    *bitarr.Array
	pulled  bool
	changed bool
}

// NewInput returns an Input with no children.
func NewInput() *Input {
	in := &Input{}
	in.State = bitarr.New(0)
	in.prev = bitarr.New(0)
	return in
}

// AddChild connects out, read t steps back, and widens the state.
// Existing state is cleared.
func (in *Input) AddChild(out *Output, t int) {
	in.Children = append(in.Children, Child{Out: out, T: t})
	nb := in.NumBits()
	in.State = bitarr.New(nb)
	in.prev = bitarr.New(nb)
	in.pulled = false
}

// NumBits returns the total width of all children.
func (in *Input) NumBits() int {
	nb := 0
	for _, ch := range in.Children {
		nb += ch.Out.NumBits
	}
	return nb
}

// Pull reads all children into State and updates Changed.
func (in *Input) Pull() {
	in.prev.CopyFrom(in.State)
	off := 0
	for _, ch := range in.Children {
		in.State.CopyAt(ch.Out.Hist(ch.T), off)
		off += ch.Out.NumBits
	}
	in.changed = !in.pulled || !in.State.Equal(in.prev)
	in.pulled = true
}

// Changed returns true if the last Pull produced a different state than
// the Pull before it.  The first Pull always counts as a change.
func (in *Input) Changed() bool {
	return in.changed
}

// Clear zeroes the state.
func (in *Input) Clear() {
	in.State.ClearAll()
}
