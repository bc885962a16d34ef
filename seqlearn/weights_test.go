// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/seqlearn/ports"
)

func wtsParams() Params {
	sp := smallParams()
	sp.NumC = 6
	sp.NumSPC = 3
	sp.NumDPS = 3
	sp.NumRPD = 5
	sp.DThresh = 2
	sp.AlwaysUpdate = true
	sp.Seed = 11
	return sp
}

var wtsSeq = [][]int{{0, 1}, {2, 3}, {4, 5}, {2, 3}, {0, 1}, {4, 5}, {0, 5}}

func TestWtsLayout(t *testing.T) {
	sl, src := newTestLearner(t, wtsParams())
	for i := 0; i < 20; i++ {
		runStep(t, sl, src, wtsSeq[i%len(wtsSeq)])
	}
	var buf bytes.Buffer
	if err := sl.WriteWts(&buf); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) != sl.WtsSize() {
		t.Fatalf("wrote %d bytes, WtsSize: %d", len(b), sl.WtsSize())
	}
	// NextSD is last, as little-endian uint32
	off := len(b) - 4*sl.NumS()
	for s := 0; s < sl.NumS(); s++ {
		if nsd := binary.LittleEndian.Uint32(b[off+4*s:]); nsd != sl.NextSD[s] {
			t.Errorf("NextSD[%d] saved as %d, is %d", s, nsd, sl.NextSD[s])
		}
	}
	// used bits are between the receptors and NextSD
	uoff := sl.NumD() * sl.NumRPD * 5
	for d := 0; d < sl.NumD(); d++ {
		if (b[uoff+d/8]&(1<<uint(d%8)) != 0) != sl.DUsed.Bit(d) {
			t.Errorf("used bit %d wrong", d)
		}
	}
}

func TestSaveOpen(t *testing.T) {
	for _, fn := range []string{"sl.wts", "sl.wts.gz"} {
		t.Run(fn, func(t *testing.T) {
			sp := wtsParams()
			a, asrc := newTestLearner(t, sp)
			for i := 0; i < 30; i++ {
				runStep(t, a, asrc, wtsSeq[i%len(wtsSeq)])
			}
			fname := filepath.Join(t.TempDir(), fn)
			if err := a.SaveWts(fname); err != nil {
				t.Fatal(err)
			}

			// fresh block, not initialized: OpenWts initializes it
			b, err := New(sp)
			if err != nil {
				t.Fatal(err)
			}
			bsrc := ports.NewOutput(2, sp.NumC)
			b.Input.AddChild(bsrc, 0)
			if err := b.OpenWts(fname); err != nil {
				t.Fatal(err)
			}
			if !b.IsInit() {
				t.Fatalf("OpenWts did not initialize")
			}
			for ri := range a.Mem.Recs {
				if a.Mem.Recs[ri] != b.Mem.Recs[ri] {
					t.Fatalf("receptor %d differs after load", ri)
				}
			}
			if !a.DUsed.Equal(b.DUsed) {
				t.Errorf("used dendrites differ after load")
			}

			// same learned state, activations and random stream: same future
			a.Clear()
			a.InitRand()
			for i := 0; i < 30; i++ {
				cols := wtsSeq[(i+3)%len(wtsSeq)]
				aan := runStep(t, a, asrc, cols)
				ban := runStep(t, b, bsrc, cols)
				if aan != ban || !a.Output.Hist(1).Equal(b.Output.Hist(1)) {
					t.Fatalf("step %d differs after load: anomaly %v vs %v", i, aan, ban)
				}
			}
		})
	}
}

func TestSaveOpenErrors(t *testing.T) {
	sp := wtsParams()
	sl, err := New(sp)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	fname := filepath.Join(dir, "none.wts")
	if err := sl.SaveWts(fname); !errors.Is(err, ErrNotInit) {
		t.Errorf("save before init: %v", err)
	}
	if _, err := os.Stat(fname); err == nil {
		t.Errorf("failed save created a file")
	}
	if err := sl.OpenWts(fname); err == nil {
		t.Errorf("expected error opening missing file")
	}
	if sl.IsInit() {
		t.Errorf("failed open initialized the block")
	}

	src := ports.NewOutput(2, sp.NumC)
	sl.Input.AddChild(src, 0)
	if err := sl.Init(); err != nil {
		t.Fatal(err)
	}
	sl.NextSD[0] = 2
	if err := sl.ReadWts(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Errorf("expected error on truncated weights")
	}
	if sl.NextSD[0] != 2 {
		t.Errorf("truncated read changed NextSD")
	}
}

func TestReports(t *testing.T) {
	sl, src := newTestLearner(t, wtsParams())
	runStep(t, sl, src, []int{0, 1})
	rep := sl.SizeReport()
	if !strings.Contains(rep, "Dendrites: 54") || !strings.Contains(rep, "Receptors: 270") {
		t.Errorf("size report:\n%s", rep)
	}
	if ap := sl.AllParams(); !strings.Contains(ap, "\"NumRPD\": 5") {
		t.Errorf("params:\n%s", ap)
	}
	var b strings.Builder
	if err := sl.WriteUsedJSON(&b); err != nil {
		t.Fatal(err)
	}
	if strings.Count(b.String(), "\"Di\":") != sl.NumUsed() {
		t.Errorf("used json:\n%s", b.String())
	}
}
