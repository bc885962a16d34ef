// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqlearn

import (
	"compress/gzip"
	"encoding/binary"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/seqlearn/bitarr"
	"github.com/emer/seqlearn/dendrite"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Weights File

// The weights layout has no header: receptor records (see dendrite.Memory
// WriteTo), then the DUsed bits packed 8 per byte, then NextSD as
// little-endian uint32.  It can only be read back by a Learner with
// identical Params.

// WtsSize returns the number of bytes written by WriteWts.
func (sl *Learner) WtsSize() int {
	return sl.NumD()*sl.NumRPD*dendrite.ReceptorSize + (sl.NumD()+7)/8 + sl.NumS()*4
}

// WriteWts writes all learned state to w.  The block must be initialized.
func (sl *Learner) WriteWts(w io.Writer) error {
	if !sl.isInit {
		return ErrNotInit
	}
	if _, err := sl.Mem.WriteTo(w); err != nil {
		return err
	}
	if _, err := sl.DUsed.WriteTo(w); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, sl.NextSD)
}

// ReadWts reads learned state written by WriteWts, initializing the block
// first if needed.  Nothing is changed unless the whole state is read.
// The random number stream is restarted from Seed, so that a loaded block
// replays identically.
func (sl *Learner) ReadWts(r io.Reader) error {
	if !sl.isInit {
		if err := sl.Init(); err != nil {
			return err
		}
	}
	mem := sl.Mem
	mem.Recs = make([]dendrite.Receptor, len(sl.Mem.Recs))
	if _, err := mem.ReadFrom(r); err != nil {
		return err
	}
	used := bitarr.New(sl.NumD())
	if _, err := used.ReadFrom(r); err != nil {
		log.Println(err)
		return err
	}
	nsd := make([]uint32, sl.NumS())
	if err := binary.Read(r, binary.LittleEndian, nsd); err != nil {
		log.Println(err)
		return err
	}
	sl.Mem.Recs = mem.Recs
	sl.DUsed = used
	sl.NextSD = nsd
	sl.InitRand()
	return nil
}

// SaveWts saves learned state to the given file.
// If filename has .gz extension, then file is gzip compressed.
func (sl *Learner) SaveWts(filename string) error {
	if !sl.isInit {
		return ErrNotInit
	}
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzw := gzip.NewWriter(fp)
		if err := sl.WriteWts(gzw); err != nil {
			log.Println(err)
			return err
		}
		return gzw.Close()
	}
	return sl.WriteWts(fp)
}

// OpenWts loads learned state from the given file, initializing the block
// first if needed.  If filename has .gz extension, then file is gzip uncompressed.
func (sl *Learner) OpenWts(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return sl.ReadWts(gzr)
	}
	return sl.ReadWts(fp)
}
