// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trc

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

const (
	// magic marks the beginning of a WAVEDESC block.
	magic = "WAVEDESC"

	// descSize is the size of the fixed part of a WAVEDESC block.
	descSize = 346

	// ofsCommOrder is the offset of the COMM_ORDER flag within the
	// WAVEDESC block.
	ofsCommOrder = 34
)

// Descriptor is the WAVEDESC block of a LeCroy trace file: the
// fixed-layout header describing how samples are encoded, how the
// acquisition is segmented and how raw ADC counts map to physical
// values.
type Descriptor struct {
	DescriptorName string // always "WAVEDESC"
	TemplateName   string // name of the template the file follows

	CommType  CommType  // encoding of one sample element
	CommOrder CommOrder // byte order of all multi-byte fields

	// Lengths in bytes of the blocks following the descriptor, in
	// their on-file order.
	WaveDescriptor int32 // length of the descriptor block itself
	UserText       int32 // length of the optional user-text block
	ResDesc1       int32
	TrigTimeArray  int32 // length of the trigger-time array
	RISTimeArray   int32
	ResArray1      int32
	WaveArray1     int32 // length of the first sample array
	WaveArray2     int32
	ResArray2      int32
	ResArray3      int32

	InstrumentName   string
	InstrumentNumber int32
	TraceLabel       string
	Reserved1        int16
	Reserved2        int16

	WaveArrayCount  int32 // number of samples, summed over all segments
	PointsPerScreen int32
	FirstValidPoint int32
	LastValidPoint  int32
	FirstPoint      int32
	SparsingFactor  int32
	SegmentIndex    int32
	SubarrayCount   int32 // number of segments of a sequence acquisition
	SweepsPerAcq    int32
	PointsPerPair   int16
	PairOffset      int16

	VerticalGain   float32
	VerticalOffset float32 // value = raw*VerticalGain - VerticalOffset
	MaxValue       float32
	MinValue       float32
	NominalBits    int16
	NomSubarrayCnt int16

	HorizInterval    float32 // sampling period, in seconds
	HorizOffset      float64 // trigger to first sample, in seconds
	PixelOffset      float64
	VertUnit         string
	HorizUnit        string
	HorizUncertainty float32

	TriggerTime TimeStamp // wall-clock time of the first trigger
	AcqDuration float32

	RecordType     RecordType
	ProcessingDone Processing
	Reserved5      int16
	RISSweeps      int16

	TimeBase        TimeBase
	VertCoupling    Coupling
	ProbeAtt        float32
	FixedVertGain   FixedVertGain
	BandwidthLimit  int16
	VerticalVernier float32
	AcqVertOffset   float32
	WaveSource      int16

	pos int64 // offset of the WAVEDESC block within the file
}

// Pos returns the offset of the WAVEDESC block within the file.
func (desc *Descriptor) Pos() int64 { return desc.pos }

// TrigTimesOffset returns the offset, from the start of the file, of
// the trigger-time array.
func (desc *Descriptor) TrigTimesOffset() int64 {
	return desc.pos + int64(desc.WaveDescriptor) + int64(desc.UserText)
}

// DataOffset returns the offset, from the start of the file, of the
// first sample array.
func (desc *Descriptor) DataOffset() int64 {
	return desc.TrigTimesOffset() + int64(desc.TrigTimeArray)
}

// SampleSize returns the size in bytes of one sample element.
func (desc *Descriptor) SampleSize() int { return desc.CommType.Size() }

// NumSegments returns the number of segments of the acquisition.
// Non-segmented acquisitions report one segment.
func (desc *Descriptor) NumSegments() int { return int(desc.SubarrayCount) }

// SamplesPerSegment returns the number of samples in each segment.
func (desc *Descriptor) SamplesPerSegment() int {
	if desc.SubarrayCount <= 0 {
		return 0
	}
	return int(desc.WaveArrayCount) / int(desc.SubarrayCount)
}

// Times returns the sampling instants of one segment, relative to
// that segment's trigger.
func (desc *Descriptor) Times() []float64 {
	var (
		n  = desc.SamplesPerSegment()
		dt = float64(desc.HorizInterval)
		ts = make([]float64, n)
	)
	for i := range ts {
		ts[i] = desc.HorizOffset + float64(i)*dt
	}
	return ts
}

// CommType describes how one sample element is stored on file.
type CommType int16

const (
	Int8  CommType = 0 // samples are signed 8-bit integers
	Int16 CommType = 1 // samples are signed 16-bit integers
)

// Size returns the size in bytes of one sample element.
func (ct CommType) Size() int {
	switch ct {
	case Int8:
		return 1
	case Int16:
		return 2
	}
	return 0
}

func (ct CommType) String() string {
	switch ct {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	}
	return fmt.Sprintf("CommType(%d)", int16(ct))
}

// CommOrder describes the byte order of all multi-byte fields of a
// trace file, samples included.
type CommOrder int16

const (
	HiFirst CommOrder = 0 // big-endian
	LoFirst CommOrder = 1 // little-endian
)

// ByteOrder returns the binary.ByteOrder to decode multi-byte fields
// with.
func (co CommOrder) ByteOrder() binary.ByteOrder {
	if co == HiFirst {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (co CommOrder) String() string {
	switch co {
	case HiFirst:
		return "big-endian"
	case LoFirst:
		return "little-endian"
	}
	return fmt.Sprintf("CommOrder(%d)", int16(co))
}

// RecordType describes the kind of acquisition the file holds.
type RecordType int16

const (
	SingleSweep RecordType = iota
	Interleaved
	Histogram
	Graph
	FilterCoefficient
	Complex
	Extrema
	SequenceObsolete
	CenteredRIS
	PeakDetect
)

var recordTypeNames = [...]string{
	"single sweep",
	"interleaved",
	"histogram",
	"graph",
	"filter coefficient",
	"complex",
	"extrema",
	"sequence obsolete",
	"centered RIS",
	"peak detect",
}

func (rt RecordType) String() string {
	if rt < 0 || int(rt) >= len(recordTypeNames) {
		return fmt.Sprintf("RecordType(%d)", int16(rt))
	}
	return recordTypeNames[rt]
}

// Processing describes the processing applied by the instrument
// before the trace was saved.
type Processing int16

const (
	NoProcessing Processing = iota
	FIRFilter
	Interpolated
	Sparsed
	Autoscaled
	NoResult
	Rolling
	Cumulative
)

var processingNames = [...]string{
	"no processing",
	"fir filter",
	"interpolated",
	"sparsed",
	"autoscaled",
	"no result",
	"rolling",
	"cumulative",
}

func (p Processing) String() string {
	if p < 0 || int(p) >= len(processingNames) {
		return fmt.Sprintf("Processing(%d)", int16(p))
	}
	return processingNames[p]
}

// Coupling describes the input coupling of the acquisition channel.
type Coupling int16

const (
	DC50Ohm Coupling = 0
	Ground  Coupling = 1
	DC1MOhm Coupling = 2
	AC1MOhm Coupling = 4
)

var couplingNames = [...]string{
	"DC 50 Ohm",
	"ground",
	"DC 1 MOhm",
	"ground",
	"AC 1 MOhm",
}

func (vc Coupling) String() string {
	if vc < 0 || int(vc) >= len(couplingNames) {
		return fmt.Sprintf("Coupling(%d)", int16(vc))
	}
	return couplingNames[vc]
}

// scaleVals is the 1-2-5 sequence both the time base and the fixed
// vertical gain settings step through.
var scaleVals = [...]int{1, 2, 5, 10, 20, 50, 100, 200, 500}

// TimeBase encodes the time base setting of the acquisition, in 1-2-5
// steps from 1 ps/div to 500 ks/div. The value 100 denotes an
// external clock.
type TimeBase int16

var timeBasePrefixes = [...]string{"p", "n", "u", "m", "", "k"}

func (tb TimeBase) String() string {
	if tb == 100 {
		return "external"
	}
	if tb < 0 || int(tb) >= len(timeBasePrefixes)*len(scaleVals) {
		return fmt.Sprintf("TimeBase(%d)", int16(tb))
	}
	return fmt.Sprintf("%d %ss/div", scaleVals[tb%9], timeBasePrefixes[tb/9])
}

// FixedVertGain encodes the fixed vertical gain setting of the
// acquisition channel, in 1-2-5 steps from 1 uV/div to 10 kV/div.
type FixedVertGain int16

var vertGainPrefixes = [...]string{"u", "m", "", "k"}

func (fvg FixedVertGain) String() string {
	if fvg < 0 || int(fvg) >= len(vertGainPrefixes)*len(scaleVals) {
		return fmt.Sprintf("FixedVertGain(%d)", int16(fvg))
	}
	return fmt.Sprintf("%d %sV/div", scaleVals[fvg%9], vertGainPrefixes[fvg/9])
}

// TimeStamp is the on-file representation of the wall-clock time of
// the first trigger of an acquisition.
type TimeStamp struct {
	Seconds float64
	Minutes uint8
	Hours   uint8
	Days    uint8
	Months  uint8
	Year    uint16
}

// Time converts the timestamp to a time.Time in UTC.
func (ts TimeStamp) Time() time.Time {
	sec, frac := math.Modf(ts.Seconds)
	return time.Date(
		int(ts.Year), time.Month(ts.Months), int(ts.Days),
		int(ts.Hours), int(ts.Minutes), int(sec),
		int(math.Round(frac*1e9)),
		time.UTC,
	)
}

func (ts TimeStamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%09.6f",
		ts.Year, ts.Months, ts.Days,
		ts.Hours, ts.Minutes, ts.Seconds,
	)
}
