// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trc

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestCommType(t *testing.T) {
	for _, tc := range []struct {
		ct   CommType
		size int
		want string
	}{
		{ct: Int8, size: 1, want: "int8"},
		{ct: Int16, size: 2, want: "int16"},
		{ct: CommType(2), size: 0, want: "CommType(2)"},
		{ct: CommType(-1), size: 0, want: "CommType(-1)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.ct.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
			if got, want := tc.ct.Size(), tc.size; got != want {
				t.Fatalf("invalid size: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestCommOrder(t *testing.T) {
	for _, tc := range []struct {
		co   CommOrder
		ord  binary.ByteOrder
		want string
	}{
		{co: HiFirst, ord: binary.BigEndian, want: "big-endian"},
		{co: LoFirst, ord: binary.LittleEndian, want: "little-endian"},
		{co: CommOrder(2), ord: binary.LittleEndian, want: "CommOrder(2)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.co.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
			if got, want := tc.co.ByteOrder(), tc.ord; got != want {
				t.Fatalf("invalid byte order: got=%v, want=%v", got, want)
			}
		})
	}
}

func TestRecordType(t *testing.T) {
	for _, tc := range []struct {
		rt   RecordType
		want string
	}{
		{rt: SingleSweep, want: "single sweep"},
		{rt: Interleaved, want: "interleaved"},
		{rt: Histogram, want: "histogram"},
		{rt: Graph, want: "graph"},
		{rt: FilterCoefficient, want: "filter coefficient"},
		{rt: Complex, want: "complex"},
		{rt: Extrema, want: "extrema"},
		{rt: SequenceObsolete, want: "sequence obsolete"},
		{rt: CenteredRIS, want: "centered RIS"},
		{rt: PeakDetect, want: "peak detect"},
		{rt: RecordType(10), want: "RecordType(10)"},
		{rt: RecordType(-1), want: "RecordType(-1)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.rt.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
		})
	}
}

func TestProcessing(t *testing.T) {
	for _, tc := range []struct {
		p    Processing
		want string
	}{
		{p: NoProcessing, want: "no processing"},
		{p: FIRFilter, want: "fir filter"},
		{p: Interpolated, want: "interpolated"},
		{p: Sparsed, want: "sparsed"},
		{p: Autoscaled, want: "autoscaled"},
		{p: NoResult, want: "no result"},
		{p: Rolling, want: "rolling"},
		{p: Cumulative, want: "cumulative"},
		{p: Processing(8), want: "Processing(8)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.p.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
		})
	}
}

func TestCoupling(t *testing.T) {
	for _, tc := range []struct {
		vc   Coupling
		want string
	}{
		{vc: DC50Ohm, want: "DC 50 Ohm"},
		{vc: Ground, want: "ground"},
		{vc: DC1MOhm, want: "DC 1 MOhm"},
		{vc: Coupling(3), want: "ground"},
		{vc: AC1MOhm, want: "AC 1 MOhm"},
		{vc: Coupling(5), want: "Coupling(5)"},
	} {
		t.Run(fmt.Sprintf("coupling-%d", int16(tc.vc)), func(t *testing.T) {
			if got, want := tc.vc.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
		})
	}
}

func TestTimeBase(t *testing.T) {
	for _, tc := range []struct {
		tb   TimeBase
		want string
	}{
		{tb: 0, want: "1 ps/div"},
		{tb: 5, want: "50 ps/div"},
		{tb: 9, want: "1 ns/div"},
		{tb: 22, want: "20 us/div"},
		{tb: 27, want: "1 ms/div"},
		{tb: 39, want: "10 s/div"},
		{tb: 49, want: "20 ks/div"},
		{tb: 100, want: "external"},
		{tb: 54, want: "TimeBase(54)"},
		{tb: -1, want: "TimeBase(-1)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.tb.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
		})
	}
}

func TestFixedVertGain(t *testing.T) {
	for _, tc := range []struct {
		fvg  FixedVertGain
		want string
	}{
		{fvg: 0, want: "1 uV/div"},
		{fvg: 10, want: "2 mV/div"},
		{fvg: 18, want: "1 V/div"},
		{fvg: 23, want: "50 V/div"},
		{fvg: 27, want: "1 kV/div"},
		{fvg: 36, want: "FixedVertGain(36)"},
		{fvg: -1, want: "FixedVertGain(-1)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			if got, want := tc.fvg.String(), tc.want; got != want {
				t.Fatalf("got=%q, want=%q", got, want)
			}
		})
	}
}

func TestTimeStamp(t *testing.T) {
	ts := TimeStamp{
		Seconds: 42.5,
		Minutes: 13,
		Hours:   14,
		Days:    1,
		Months:  3,
		Year:    2022,
	}
	if got, want := ts.String(), "2022-03-01 14:13:42.500000"; got != want {
		t.Fatalf("invalid stamp: got=%q, want=%q", got, want)
	}
	if got, want := ts.Time(), time.Date(2022, 3, 1, 14, 13, 42, 500000000, time.UTC); !got.Equal(want) {
		t.Fatalf("invalid time: got=%v, want=%v", got, want)
	}
}

func TestDescriptorOffsets(t *testing.T) {
	desc := Descriptor{
		CommType:       Int16,
		CommOrder:      LoFirst,
		WaveDescriptor: descSize,
		UserText:       160,
		TrigTimeArray:  48,
		WaveArray1:     600,
		WaveArrayCount: 300,
		SubarrayCount:  3,
		HorizInterval:  0.5,
		HorizOffset:    -0.25,
		pos:            10,
	}

	if got, want := desc.Pos(), int64(10); got != want {
		t.Fatalf("invalid position: got=%d, want=%d", got, want)
	}
	if got, want := desc.TrigTimesOffset(), int64(10+346+160); got != want {
		t.Fatalf("invalid trigger-times offset: got=%d, want=%d", got, want)
	}
	if got, want := desc.DataOffset(), int64(10+346+160+48); got != want {
		t.Fatalf("invalid data offset: got=%d, want=%d", got, want)
	}
	if got, want := desc.SampleSize(), 2; got != want {
		t.Fatalf("invalid sample size: got=%d, want=%d", got, want)
	}
	if got, want := desc.NumSegments(), 3; got != want {
		t.Fatalf("invalid number of segments: got=%d, want=%d", got, want)
	}
	if got, want := desc.SamplesPerSegment(), 100; got != want {
		t.Fatalf("invalid samples per segment: got=%d, want=%d", got, want)
	}

	desc.WaveArrayCount = 4
	desc.SubarrayCount = 2
	if got, want := desc.Times(), []float64{-0.25, 0.25}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid times: got=%v, want=%v", got, want)
	}

	desc.SubarrayCount = 0
	if got, want := desc.SamplesPerSegment(), 0; got != want {
		t.Fatalf("invalid samples per segment: got=%d, want=%d", got, want)
	}
}
