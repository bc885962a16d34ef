// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/seqlearn/dendrite"
)

// AllParams returns a listing of all parameters in the Learner
func (sl *Learner) AllParams() string {
	b, _ := json.MarshalIndent(&sl.Params, "", " ")
	return "SequenceLearner: " + string(b) + "\n"
}

// SizeReport returns a string reporting the number of statelets, dendrites
// and receptors, and their memory footprint.
func (sl *Learner) SizeReport() string {
	var b strings.Builder
	nrec := sl.NumD() * sl.NumRPD
	recMem := nrec * int(unsafe.Sizeof(dendrite.Receptor{}))
	stMem := len(sl.NextSD)*4 + 2*sl.DUsed.NumBytes()
	fmt.Fprintf(&b, "%14s:\t Columns: %d\t Statelets: %d\t Dendrites: %d\t StateMem: %v\n", "SeqLearner", sl.NumC, sl.NumS(), sl.NumD(), (datasize.ByteSize)(stMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Receptors: %d\t RecMem: %v\t Context: %d\n", "Memory", nrec, (datasize.ByteSize)(recMem).HumanReadable(), sl.Mem.NumI)
	fmt.Fprintf(&b, "%14s:\t %v\n", "Weights", (datasize.ByteSize)(sl.WtsSize()).HumanReadable())
	return b.String()
}

// NumUsed returns the number of dendrites that have learned.
func (sl *Learner) NumUsed() int {
	return sl.DUsed.NumActs()
}

// WriteUsedJSON writes the receptors of all used dendrites in an indented
// JSON text format, for inspection.
func (sl *Learner) WriteUsedJSON(w io.Writer) error {
	if !sl.isInit {
		return ErrNotInit
	}
	ds := sl.DUsed.Acts()
	if ds == nil {
		ds = []int{}
	}
	sl.Mem.WriteJSON(w, 0, ds)
	return nil
}
