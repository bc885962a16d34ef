// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dendrite

import (
	"fmt"
)

// Receptor is one connection from a dendrite to a single context bit.
type Receptor struct {
	Addr uint32 `desc:"index of the context bit this receptor reads"`
	Perm uint8  `desc:"permanence: connection strength, connected when >= PermThr"`
}

// ReceptorSize is the number of bytes of one persisted receptor record.
const ReceptorSize = 5

var ReceptorVars = []string{"Addr", "Perm"}

var ReceptorVarsMap map[string]int

func init() {
	ReceptorVarsMap = make(map[string]int, len(ReceptorVars))
	for i, v := range ReceptorVars {
		ReceptorVarsMap[v] = i
	}
}

// ReceptorVarByName returns the index of the variable in the Receptor, or error
func ReceptorVarByName(varNm string) (int, error) {
	i, ok := ReceptorVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Receptor VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in ReceptorVars list)
func (rc *Receptor) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return float32(rc.Addr)
	case 1:
		return float32(rc.Perm)
	}
	return 0
}

// VarByName returns variable by name, or error
func (rc *Receptor) VarByName(varNm string) (float32, error) {
	i, err := ReceptorVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return rc.VarByIndex(i), nil
}
