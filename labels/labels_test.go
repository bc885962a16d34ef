// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package labels_test

import (
	"testing"

	"github.com/emer/seqlearn/labels"
	"github.com/emer/seqlearn/seqlearn"
)

func TestEncode(t *testing.T) {
	lt, err := labels.New(4, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if lt.NumAS != 2 {
		t.Errorf("NumAS: %d, want 2", lt.NumAS)
	}

	if err := lt.SetValue(3); err != nil {
		t.Fatal(err)
	}
	lt.Feedforward()
	for ti := 0; ti < 2; ti++ {
		acts := lt.Output.Hist(ti).Acts()
		if len(acts) != 2 || acts[0] != 6 || acts[1] != 7 {
			t.Errorf("Hist(%d) acts: %v, want [6 7]", ti, acts)
		}
	}

	if err := lt.SetValue(4); err == nil {
		t.Errorf("expected error for label 4 of 4")
	}
	if err := lt.SetValue(-1); err == nil {
		t.Errorf("expected error for label -1")
	}
	if lt.Value != 3 {
		t.Errorf("bad SetValue changed Value to %d", lt.Value)
	}

	lt.Clear()
	if lt.Output.State.NumActs() != 0 {
		t.Errorf("Clear left bits set")
	}

	if _, err := labels.New(5, 4, 2); err == nil {
		t.Errorf("expected error for NumS < NumL")
	}
}

// TestAnomalySequence runs the repeating a-f label sequence with a
// substitution of g for d on the third pass.
func TestAnomalySequence(t *testing.T) {
	values := "aaaaabcdefaaaaabcdefaaaaabcgef"
	lt, err := labels.New(26, 208, 2)
	if err != nil {
		t.Fatal(err)
	}

	sp := seqlearn.Params{}
	sp.Defaults()
	sp.NumC = 208
	sl, err := seqlearn.New(sp)
	if err != nil {
		t.Fatal(err)
	}
	sl.Input.AddChild(lt.Output, 0)
	if err := sl.Init(); err != nil {
		t.Fatal(err)
	}

	scores := make([]float32, len(values))
	for i, v := range values {
		if err := lt.SetValue(int(v - 'a')); err != nil {
			t.Fatal(err)
		}
		lt.Feedforward()
		if err := sl.Feedforward(true); err != nil {
			t.Fatal(err)
		}
		scores[i] = sl.AnomalyScore()
	}
	if scores[0] != 1 {
		t.Errorf("first value anomaly: %v, want 1", scores[0])
	}
	for i := 15; i < 27; i++ {
		if scores[i] != 0 {
			t.Errorf("learned sequence at %d (%c) anomaly: %v, want 0", i, values[i], scores[i])
		}
	}
	if scores[27] != 1 {
		t.Errorf("substituted value anomaly: %v, want 1", scores[27])
	}
	for i, sc := range scores {
		if sc < 0 || sc > 1 {
			t.Errorf("score %d out of range: %v", i, sc)
		}
	}
}
