// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trctest synthesizes LeCroy trace files for tests.
package trctest // import "github.com/go-lpc/lecroy/internal/trctest"

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Offsets of WAVEDESC fields, relative to the start of the block, for
// tests that corrupt an otherwise valid file.
const (
	OfsCommType       = 32
	OfsCommOrder      = 34
	OfsWaveDescriptor = 36
	OfsUserText       = 40
	OfsTrigTimeArray  = 48
	OfsWaveArray1     = 60
	OfsWaveArrayCount = 116
	OfsSubarrayCount  = 144

	DescSize = 346
)

// Config describes the synthetic trace file Make builds.
//
// Declared block lengths (descriptor, user text, trigger times,
// samples) are always derived from the actual content, so the
// resulting file is self-consistent. Tests wanting an inconsistent
// file overwrite the fields in place, at the Ofs* offsets above.
type Config struct {
	Preamble  []byte // optional transfer header before the descriptor
	BigEndian bool   // encode multi-byte fields big-endian
	Word      bool   // 16-bit samples instead of 8-bit
	UserText  string

	Instrument string
	InstrNum   int32
	Label      string

	Trigs   [][2]float64 // per-segment (trigger offset, trigger interval)
	Samples []int        // raw samples, all segments concatenated

	Gain   float32
	Offset float32

	HorizInterval float32
	HorizOffset   float64
	VertUnit      string
	HorizUnit     string

	TimeBase      int16
	FixedVertGain int16
	Coupling      int16
	RecordType    int16
	Processing    int16

	Year  uint16
	Month uint8
	Day   uint8
	Hour  uint8
	Min   uint8
	Sec   float64

	Pad int // extra trailing bytes after the sample array
}

// Make builds the byte content of the trace file cfg describes.
func Make(cfg Config) []byte {
	var (
		ord  binary.ByteOrder = binary.LittleEndian
		cord int16            = 1
		ctyp int16
		elem = 1
		bits = int16(8)
	)
	if cfg.BigEndian {
		ord = binary.BigEndian
		cord = 0
	}
	if cfg.Word {
		ctyp = 1
		elem = 2
		bits = 16
	}

	w := &wbuf{ord: ord}
	w.writeBytes(cfg.Preamble)

	beg := len(w.p)
	w.writeStr("WAVEDESC", 16)
	w.writeStr("LECROY_2_3", 16)
	w.writeI16(ctyp)
	w.writeI16(cord)
	w.writeI32(DescSize)
	w.writeI32(int32(len(cfg.UserText)))
	w.writeI32(0) // res-desc1
	w.writeI32(int32(16 * len(cfg.Trigs)))
	w.writeI32(0) // ris-time array
	w.writeI32(0) // res-array1
	w.writeI32(int32(elem * len(cfg.Samples)))
	w.writeI32(0) // wave-array2
	w.writeI32(0) // res-array2
	w.writeI32(0) // res-array3
	w.writeStr(cfg.Instrument, 16)
	w.writeI32(cfg.InstrNum)
	w.writeStr(cfg.Label, 16)
	w.writeI16(0) // reserved1
	w.writeI16(0) // reserved2
	w.writeI32(int32(len(cfg.Samples)))
	w.writeI32(0) // points per screen
	w.writeI32(0) // first valid point
	w.writeI32(int32(len(cfg.Samples) - 1))
	w.writeI32(0) // first point
	w.writeI32(0) // sparsing factor
	w.writeI32(0) // segment index
	w.writeI32(int32(len(cfg.Trigs)))
	w.writeI32(1) // sweeps per acq
	w.writeI16(0) // points per pair
	w.writeI16(0) // pair offset
	w.writeF32(cfg.Gain)
	w.writeF32(cfg.Offset)
	w.writeF32(0) // max value
	w.writeF32(0) // min value
	w.writeI16(bits)
	w.writeI16(int16(len(cfg.Trigs)))
	w.writeF32(cfg.HorizInterval)
	w.writeF64(cfg.HorizOffset)
	w.writeF64(0) // pixel offset
	w.writeStr(cfg.VertUnit, 48)
	w.writeStr(cfg.HorizUnit, 48)
	w.writeF32(0) // horiz uncertainty
	w.writeF64(cfg.Sec)
	w.writeU8(cfg.Min)
	w.writeU8(cfg.Hour)
	w.writeU8(cfg.Day)
	w.writeU8(cfg.Month)
	w.writeU16(cfg.Year)
	w.writeU16(0) // unused
	w.writeF32(0) // acq duration
	w.writeI16(cfg.RecordType)
	w.writeI16(cfg.Processing)
	w.writeI16(0) // reserved5
	w.writeI16(0) // ris sweeps
	w.writeI16(cfg.TimeBase)
	w.writeI16(cfg.Coupling)
	w.writeF32(1) // probe att
	w.writeI16(cfg.FixedVertGain)
	w.writeI16(0) // bandwidth limit
	w.writeF32(0) // vertical vernier
	w.writeF32(0) // acq vert offset
	w.writeI16(0) // wave source

	if n := len(w.p) - beg; n != DescSize {
		panic(fmt.Errorf("trctest: invalid descriptor size %d (want %d)", n, DescSize))
	}

	w.writeBytes([]byte(cfg.UserText))
	for _, trig := range cfg.Trigs {
		w.writeF64(trig[0])
		w.writeF64(trig[1])
	}
	for _, v := range cfg.Samples {
		switch {
		case cfg.Word:
			w.writeI16(int16(v))
		default:
			w.writeU8(uint8(int8(v)))
		}
	}
	w.writeBytes(make([]byte, cfg.Pad))

	return w.p
}

// wbuf is an appending binary writer with a fixed byte order.
type wbuf struct {
	p   []byte
	ord binary.ByteOrder
}

func (w *wbuf) writeBytes(vs []byte) {
	w.p = append(w.p, vs...)
}

func (w *wbuf) writeU8(v uint8) {
	w.p = append(w.p, v)
}

func (w *wbuf) writeU16(v uint16) {
	var buf [2]byte
	w.ord.PutUint16(buf[:], v)
	w.p = append(w.p, buf[:]...)
}

func (w *wbuf) writeI16(v int16) {
	w.writeU16(uint16(v))
}

func (w *wbuf) writeI32(v int32) {
	var buf [4]byte
	w.ord.PutUint32(buf[:], uint32(v))
	w.p = append(w.p, buf[:]...)
}

func (w *wbuf) writeF32(v float32) {
	var buf [4]byte
	w.ord.PutUint32(buf[:], math.Float32bits(v))
	w.p = append(w.p, buf[:]...)
}

func (w *wbuf) writeF64(v float64) {
	var buf [8]byte
	w.ord.PutUint64(buf[:], math.Float64bits(v))
	w.p = append(w.p, buf[:]...)
}

// writeStr writes v as a fixed-size field of n bytes, padded with NUL
// bytes and truncated if too long.
func (w *wbuf) writeStr(v string, n int) {
	buf := make([]byte, n)
	copy(buf, v)
	w.p = append(w.p, buf...)
}
