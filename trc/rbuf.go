// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trc

import (
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/xerrors"
)

// rbuf is a reading cursor over an in-memory buffer, decoding
// multi-byte fields with a fixed byte order.
//
// Errors are sticky: once a read or a seek has failed, subsequent
// operations are no-ops and the first error is the one reported.
// The underlying buffer is never modified.
type rbuf struct {
	p   []byte
	c   int64
	ord binary.ByteOrder
	err error
}

func newRbuf(p []byte, ord binary.ByteOrder) *rbuf {
	return &rbuf{p: p, ord: ord}
}

func (r *rbuf) pos() int64 { return r.c }

func (r *rbuf) seek(off int64) {
	if r.err != nil {
		return
	}
	if off < 0 || off > int64(len(r.p)) {
		r.err = xerrors.Errorf("trc: could not seek to offset %d (buffer length %d): %w",
			off, len(r.p), ErrInvalidOffset,
		)
		return
	}
	r.c = off
}

func (r *rbuf) load(n int64) []byte {
	if r.err != nil {
		return nil
	}
	if r.c+n > int64(len(r.p)) {
		r.err = xerrors.Errorf("trc: could not read %d bytes at offset %d (buffer length %d): %w",
			n, r.c, len(r.p), ErrTruncated,
		)
		return nil
	}
	p := r.p[r.c : r.c+n]
	r.c += n
	return p
}

func (r *rbuf) readU8() uint8 {
	p := r.load(1)
	if p == nil {
		return 0
	}
	return p[0]
}

func (r *rbuf) readI16() int16 {
	p := r.load(2)
	if p == nil {
		return 0
	}
	return int16(r.ord.Uint16(p))
}

func (r *rbuf) readU16() uint16 {
	p := r.load(2)
	if p == nil {
		return 0
	}
	return r.ord.Uint16(p)
}

func (r *rbuf) readI32() int32 {
	p := r.load(4)
	if p == nil {
		return 0
	}
	return int32(r.ord.Uint32(p))
}

func (r *rbuf) readF32() float32 {
	p := r.load(4)
	if p == nil {
		return 0
	}
	return math.Float32frombits(r.ord.Uint32(p))
}

func (r *rbuf) readF64() float64 {
	p := r.load(8)
	if p == nil {
		return 0
	}
	return math.Float64frombits(r.ord.Uint64(p))
}

func (r *rbuf) readBytes(n int) []byte {
	return r.load(int64(n))
}

// readStr reads a fixed-size string field, dropping trailing NUL
// bytes and spaces.
func (r *rbuf) readStr(n int) string {
	p := r.readBytes(n)
	if p == nil {
		return ""
	}
	return strings.TrimRight(string(p), "\x00 ")
}
