// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dendrite provides the dendritic memory of a block: a flat array of
dendrites, each owning a fixed number of receptors over an input (context)
bit space.

A receptor has an address into the input and an 8-bit permanence.  A dendrite's
overlap with an input is the number of its connected receptors whose address
is active.  Learning raises the permanence of receptors on active bits and
lowers the rest; receptors that fall to zero permanence are moved onto active
input bits that the dendrite does not yet read, so each dendrite's receptive
field grows toward the inputs it is repeatedly trained on.
*/
package dendrite

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/seqlearn/bitarr"
	"github.com/goki/ki/indent"
)

// Memory is a set of NumD dendrites with NumRPD receptors each,
// stored dendrite-major in Recs.
type Memory struct {
	Params
	NumI   int           `inactive:"+" desc:"width of the input space that receptors address"`
	NumD   int           `inactive:"+" desc:"number of dendrites"`
	NumRPD int           `inactive:"+" desc:"number of receptors per dendrite"`
	Recs   []Receptor    `view:"-" desc:"receptors, NumRPD per dendrite, dendrite-major"`
	State  *bitarr.Array `desc:"dendrite activation state, one bit per dendrite -- set by the owning block"`
}

// Init allocates numD dendrites of numRPD receptors over a numI wide input.
// Receptor addresses are drawn uniformly from the input using rnd, in
// dendrite-major order, and all permanences start at 0 (disconnected).
func (mem *Memory) Init(numI, numD, numRPD int, rnd erand.Rand) error {
	if numI <= 0 || numD <= 0 || numRPD <= 0 {
		return fmt.Errorf("dendrite.Memory Init: sizes must be > 0: NumI: %d, NumD: %d, NumRPD: %d", numI, numD, numRPD)
	}
	mem.Update()
	mem.NumI = numI
	mem.NumD = numD
	mem.NumRPD = numRPD
	mem.Recs = make([]Receptor, numD*numRPD)
	for ri := range mem.Recs {
		rc := &mem.Recs[ri]
		rc.Addr = uint32(rnd.Intn(numI, -1))
		rc.Perm = 0
	}
	mem.State = bitarr.New(numD)
	return nil
}

// IsInit returns true if Init has allocated the receptors.
func (mem *Memory) IsInit() bool {
	return mem.Recs != nil
}

// Clear clears the activation state.  Receptors are not affected.
func (mem *Memory) Clear() {
	if mem.State != nil {
		mem.State.ClearAll()
	}
}

// DendRecs returns the receptors of dendrite d.
func (mem *Memory) DendRecs(d int) []Receptor {
	st := d * mem.NumRPD
	return mem.Recs[st : st+mem.NumRPD]
}

// Overlap returns the number of connected receptors on dendrite d whose
// address is active in in.
func (mem *Memory) Overlap(d int, in *bitarr.Array) int {
	ovl := 0
	for _, rc := range mem.DendRecs(d) {
		if rc.Perm >= mem.PermThr && in.Bit(int(rc.Addr)) {
			ovl++
		}
	}
	return ovl
}

// NumConnected returns the number of connected receptors on dendrite d.
func (mem *Memory) NumConnected(d int) int {
	nc := 0
	for _, rc := range mem.DendRecs(d) {
		if mem.Connected(rc.Perm) {
			nc++
		}
	}
	return nc
}

// Learn updates permanences of dendrite d against in, without moving receptors.
func (mem *Memory) Learn(d int, in *bitarr.Array) {
	recs := mem.DendRecs(d)
	for ri := range recs {
		rc := &recs[ri]
		if in.Bit(int(rc.Addr)) {
			rc.Perm = mem.IncPerm(rc.Perm)
		} else {
			rc.Perm = mem.DecPerm(rc.Perm)
		}
	}
}

// LearnMove updates permanences of dendrite d against in, and moves receptors
// whose permanence falls to 0.  A receptor on an active bit gets +PermInc,
// any other gets -PermDec.  A receptor that is decremented to 0 is moved
// with probability PctLearn (no random draw at 1):
//
//   - the new address is drawn uniformly from the active bits of in that no
//     receptor on d currently reads, not from the whole input;
//   - the permanence is set to PermThr, so the moved receptor is connected
//     immediately rather than starting over disconnected;
//   - with no such bit the receptor stays in place at 0.
//
// Receptors are processed in order, so a receptor moved earlier in the pass
// is no longer a candidate for later ones.
func (mem *Memory) LearnMove(d int, in *bitarr.Array, rnd erand.Rand) {
	recs := mem.DendRecs(d)
	var acts []int
	for ri := range recs {
		rc := &recs[ri]
		if in.Bit(int(rc.Addr)) {
			rc.Perm = mem.IncPerm(rc.Perm)
			continue
		}
		rc.Perm = mem.DecPerm(rc.Perm)
		if rc.Perm > 0 {
			continue
		}
		if mem.PctLearn < 1 && rnd.Float32(-1) >= mem.PctLearn {
			continue
		}
		if acts == nil {
			acts = in.Acts()
		}
		cands := unreadActs(acts, recs)
		if len(cands) == 0 {
			continue
		}
		rc.Addr = uint32(cands[rnd.Intn(len(cands), -1)])
		rc.Perm = mem.PermThr
	}
}

// unreadActs returns the active bits that no receptor in recs addresses.
func unreadActs(acts []int, recs []Receptor) []int {
	cands := make([]int, 0, len(acts))
	for _, a := range acts {
		read := false
		for _, rc := range recs {
			if int(rc.Addr) == a {
				read = true
				break
			}
		}
		if !read {
			cands = append(cands, a)
		}
	}
	return cands
}

// RecVals sets values of given variable name for each receptor, in
// dendrite-major order, into given float32 slice (only resized if not big enough).
// Returns error on invalid var name.
func (mem *Memory) RecVals(vals *[]float32, varNm string) error {
	vidx, err := ReceptorVarByName(varNm)
	if err != nil {
		return err
	}
	nr := len(mem.Recs)
	if *vals == nil || cap(*vals) < nr {
		*vals = make([]float32, nr)
	} else if len(*vals) < nr {
		*vals = (*vals)[0:nr]
	}
	for i := range mem.Recs {
		rc := &mem.Recs[i]
		(*vals)[i] = rc.VarByIndex(vidx)
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Weights File

// WriteTo writes all receptors as (uint32 address, uint8 permanence)
// little-endian records in dendrite-major order.  No shape information is
// written: the reader must be configured identically.
func (mem *Memory) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, len(mem.Recs)*ReceptorSize)
	for ri, rc := range mem.Recs {
		off := ri * ReceptorSize
		binary.LittleEndian.PutUint32(buf[off:], rc.Addr)
		buf[off+4] = rc.Perm
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom reads receptors written by WriteTo into an initialized Memory.
func (mem *Memory) ReadFrom(r io.Reader) (int64, error) {
	if !mem.IsInit() {
		return 0, errors.New("dendrite.Memory ReadFrom: memory not initialized")
	}
	buf := make([]byte, len(mem.Recs)*ReceptorSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		log.Println(err)
		return int64(n), err
	}
	for ri := range mem.Recs {
		rc := &mem.Recs[ri]
		off := ri * ReceptorSize
		rc.Addr = binary.LittleEndian.Uint32(buf[off:])
		rc.Perm = buf[off+4]
	}
	return int64(n), nil
}

// WriteJSON writes the receptors of the given dendrites (all if ds is nil)
// in an indented JSON text format, for inspection.
func (mem *Memory) WriteJSON(w io.Writer, depth int, ds []int) {
	if ds == nil {
		ds = make([]int, mem.NumD)
		for d := range ds {
			ds[d] = d
		}
	}
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"NumI\": %d,\n", mem.NumI)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"NumRPD\": %d,\n", mem.NumRPD)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Ds\": [\n"))
	depth++
	nd := len(ds)
	for di, d := range ds {
		recs := mem.DendRecs(d)
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Di\": %d,\n", d)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Addr\": [ "))
		for ri, rc := range recs {
			w.Write([]byte(strconv.FormatUint(uint64(rc.Addr), 10)))
			if ri == len(recs)-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Perm\": [ "))
		for ri, rc := range recs {
			w.Write([]byte(strconv.FormatUint(uint64(rc.Perm), 10)))
			if ri == len(recs)-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		if di == nd-1 {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}\n"))
}
