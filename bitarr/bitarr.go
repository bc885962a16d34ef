// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bitarr provides a fixed-width binary vector used for all block
states: column inputs, context, statelet outputs and dendrite activations.

Individual bits are read and written in constant time, and Acts returns
the indexes of the set bits in ascending order.
*/
package bitarr

import (
	"fmt"
	"io"

	"github.com/emer/etable/v2/bitslice"
)

// Array is a fixed-width bit vector.  The width is set by New and
// never changes afterward.
type Array struct {
	n    int
	bits bitslice.Slice
}

// New returns a new Array of n bits, all cleared.
func New(n int) *Array {
	ba := &Array{}
	ba.Resize(n)
	return ba
}

// Resize sets the width to n bits, clearing all bits.
func (ba *Array) Resize(n int) {
	ba.n = n
	ba.bits = bitslice.Make(n, 0)
}

// Len returns the width in bits.
func (ba *Array) Len() int { return ba.n }

// Set sets bit i.
func (ba *Array) Set(i int) { ba.bits.Set(i, true) }

// Clear clears bit i.
func (ba *Array) Clear(i int) { ba.bits.Set(i, false) }

// SetBit sets bit i to val.
func (ba *Array) SetBit(i int, val bool) { ba.bits.Set(i, val) }

// Bit returns the value of bit i.
func (ba *Array) Bit(i int) bool { return ba.bits.Index(i) }

// ClearAll clears every bit.
func (ba *Array) ClearAll() {
	for i := 0; i < ba.n; i++ {
		ba.bits.Set(i, false)
	}
}

// Acts returns the indexes of all set bits, in ascending order.
func (ba *Array) Acts() []int {
	var acts []int
	for i := 0; i < ba.n; i++ {
		if ba.bits.Index(i) {
			acts = append(acts, i)
		}
	}
	return acts
}

// SetActs clears the array and sets the given bit indexes.
// Indexes outside of the array width are ignored.
func (ba *Array) SetActs(acts []int) {
	ba.ClearAll()
	for _, i := range acts {
		if i < 0 || i >= ba.n {
			continue
		}
		ba.bits.Set(i, true)
	}
}

// NumActs returns the number of set bits.
func (ba *Array) NumActs() int {
	na := 0
	for i := 0; i < ba.n; i++ {
		if ba.bits.Index(i) {
			na++
		}
	}
	return na
}

// CopyFrom copies the bits of src, which must have the same width.
func (ba *Array) CopyFrom(src *Array) {
	for i := 0; i < ba.n; i++ {
		ba.bits.Set(i, src.bits.Index(i))
	}
}

// CopyAt copies all of src into this array starting at bit offset off.
func (ba *Array) CopyAt(src *Array, off int) {
	for i := 0; i < src.n; i++ {
		ba.bits.Set(off+i, src.bits.Index(i))
	}
}

// Equal returns true if o has the same width and the same bits set.
func (ba *Array) Equal(o *Array) bool {
	if ba.n != o.n {
		return false
	}
	for i := 0; i < ba.n; i++ {
		if ba.bits.Index(i) != o.bits.Index(i) {
			return false
		}
	}
	return true
}

// NumBytes returns the number of bytes used by WriteTo.
func (ba *Array) NumBytes() int {
	return (ba.n + 7) / 8
}

// WriteTo writes the bits packed 8 per byte, bit i in byte i/8
// at position i%8.  There is no header.
func (ba *Array) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, ba.NumBytes())
	for i := 0; i < ba.n; i++ {
		if ba.bits.Index(i) {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom reads bits written by WriteTo into an array of the same width.
func (ba *Array) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, ba.NumBytes())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), fmt.Errorf("bitarr: reading %d bits: %w", ba.n, err)
	}
	for i := 0; i < ba.n; i++ {
		ba.bits.Set(i, buf[i/8]&(1<<uint(i%8)) != 0)
	}
	return int64(n), nil
}

// String returns the bits as a string of 0s and 1s.
func (ba *Array) String() string {
	b := make([]byte, ba.n)
	for i := 0; i < ba.n; i++ {
		if ba.bits.Index(i) {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
