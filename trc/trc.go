// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trc decodes binary waveform files (.trc) saved by LeCroy
// digital oscilloscopes.
//
// A trace file starts with a fixed-layout WAVEDESC descriptor block,
// possibly preceded by a transfer preamble, and followed by an
// optional user-text block, a per-segment trigger-time array and the
// array of raw ADC samples. All multi-byte fields use the byte order
// declared by the descriptor itself.
package trc // import "github.com/go-lpc/lecroy/trc"

import (
	"os"

	"golang.org/x/xerrors"
)

// Trace is a decoded LeCroy trace file.
type Trace struct {
	Desc      Descriptor  // acquisition metadata
	TrigTimes []TrigTime  // per-segment trigger times, in segment order
	Data      [][]float64 // per-segment samples, index-aligned with TrigTimes
}

// TrigTime locates one segment of a sequence acquisition in time.
type TrigTime struct {
	Offset   float64 // time from the first trigger to this one, in seconds
	Interval float64 // time from this trigger to the segment's first sample, in seconds
}

// Decode decodes the trace file held in raw.
func Decode(raw []byte, opts ...Option) (*Trace, error) {
	var t Trace
	err := NewDecoder(raw, opts...).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Read reads and decodes the trace file at path.
func Read(path string, opts ...Option) (*Trace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("trc: could not read %q: %w", path, err)
	}
	return Decode(raw, opts...)
}
