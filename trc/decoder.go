// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trc

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/xerrors"
)

// Option configures how a Decoder decodes a trace file.
type Option func(*Decoder)

// WithHeaderOnly restricts decoding to the WAVEDESC block.
// Trigger times and sample data are not decoded.
func WithHeaderOnly() Option {
	return func(dec *Decoder) {
		dec.hdronly = true
	}
}

// WithoutScaling makes the decoder keep samples as raw ADC counts
// instead of applying the vertical gain and offset from the
// descriptor.
func WithoutScaling() Option {
	return func(dec *Decoder) {
		dec.noscale = true
	}
}

// Decoder decodes a LeCroy trace file held in an in-memory buffer.
type Decoder struct {
	raw     []byte
	hdronly bool
	noscale bool
}

// NewDecoder creates a Decoder decoding the trace file held in raw.
func NewDecoder(raw []byte, opts ...Option) *Decoder {
	dec := &Decoder{raw: raw}
	for _, opt := range opts {
		opt(dec)
	}
	return dec
}

// Decode decodes a whole trace file into t.
//
// Decode is all-or-nothing: t is written to only once the complete
// file could be decoded.
func (dec *Decoder) Decode(t *Trace) error {
	beg := bytes.Index(dec.raw, []byte(magic))
	if beg < 0 {
		return xerrors.Errorf("trc: could not find %q marker: %w", magic, ErrUnsupportedFormat)
	}

	desc, err := decodeDesc(dec.raw, int64(beg))
	if err != nil {
		return err
	}

	if dec.hdronly {
		*t = Trace{Desc: desc}
		return nil
	}

	trigs, err := decodeTrigTimes(dec.raw, &desc)
	if err != nil {
		return err
	}

	data, err := decodeSamples(dec.raw, &desc, !dec.noscale)
	if err != nil {
		return err
	}

	*t = Trace{Desc: desc, TrigTimes: trigs, Data: data}
	return nil
}

// byteOrderOf resolves the byte order of the WAVEDESC block at beg
// from its COMM_ORDER flag.
//
// The flag itself has an order-independent encoding: 0 (big-endian
// file) reads the same both ways, and only a little-endian file may
// store 1.
func byteOrderOf(raw []byte, beg int64) (CommOrder, error) {
	if beg+ofsCommOrder+2 > int64(len(raw)) {
		return 0, xerrors.Errorf("trc: could not read COMM_ORDER flag at offset %d (buffer length %d): %w",
			beg+ofsCommOrder, len(raw), ErrTruncated,
		)
	}
	v := binary.LittleEndian.Uint16(raw[beg+ofsCommOrder:])
	switch v {
	case 0:
		return HiFirst, nil
	case 1:
		return LoFirst, nil
	}
	return 0, xerrors.Errorf("trc: invalid COMM_ORDER flag 0x%x at offset %d: %w",
		v, beg+ofsCommOrder, ErrUnsupportedFormat,
	)
}

// decodeDesc decodes the WAVEDESC block at offset beg of raw and
// validates the layout it declares against the size of raw.
func decodeDesc(raw []byte, beg int64) (Descriptor, error) {
	var desc Descriptor
	if beg < 0 {
		return desc, xerrors.Errorf("trc: invalid descriptor offset %d: %w", beg, ErrInvalidOffset)
	}

	ord, err := byteOrderOf(raw, beg)
	if err != nil {
		return desc, err
	}

	r := newRbuf(raw, ord.ByteOrder())
	r.seek(beg)

	desc.DescriptorName = r.readStr(16)
	desc.TemplateName = r.readStr(16)
	desc.CommType = CommType(r.readI16())
	desc.CommOrder = CommOrder(r.readI16())
	desc.WaveDescriptor = r.readI32()
	desc.UserText = r.readI32()
	desc.ResDesc1 = r.readI32()
	desc.TrigTimeArray = r.readI32()
	desc.RISTimeArray = r.readI32()
	desc.ResArray1 = r.readI32()
	desc.WaveArray1 = r.readI32()
	desc.WaveArray2 = r.readI32()
	desc.ResArray2 = r.readI32()
	desc.ResArray3 = r.readI32()
	desc.InstrumentName = r.readStr(16)
	desc.InstrumentNumber = r.readI32()
	desc.TraceLabel = r.readStr(16)
	desc.Reserved1 = r.readI16()
	desc.Reserved2 = r.readI16()
	desc.WaveArrayCount = r.readI32()
	desc.PointsPerScreen = r.readI32()
	desc.FirstValidPoint = r.readI32()
	desc.LastValidPoint = r.readI32()
	desc.FirstPoint = r.readI32()
	desc.SparsingFactor = r.readI32()
	desc.SegmentIndex = r.readI32()
	desc.SubarrayCount = r.readI32()
	desc.SweepsPerAcq = r.readI32()
	desc.PointsPerPair = r.readI16()
	desc.PairOffset = r.readI16()
	desc.VerticalGain = r.readF32()
	desc.VerticalOffset = r.readF32()
	desc.MaxValue = r.readF32()
	desc.MinValue = r.readF32()
	desc.NominalBits = r.readI16()
	desc.NomSubarrayCnt = r.readI16()
	desc.HorizInterval = r.readF32()
	desc.HorizOffset = r.readF64()
	desc.PixelOffset = r.readF64()
	desc.VertUnit = r.readStr(48)
	desc.HorizUnit = r.readStr(48)
	desc.HorizUncertainty = r.readF32()
	desc.TriggerTime = TimeStamp{
		Seconds: r.readF64(),
		Minutes: r.readU8(),
		Hours:   r.readU8(),
		Days:    r.readU8(),
		Months:  r.readU8(),
		Year:    r.readU16(),
	}
	_ = r.readU16() // unused trailing short of TRIGGER_TIME
	desc.AcqDuration = r.readF32()
	desc.RecordType = RecordType(r.readI16())
	desc.ProcessingDone = Processing(r.readI16())
	desc.Reserved5 = r.readI16()
	desc.RISSweeps = r.readI16()
	desc.TimeBase = TimeBase(r.readI16())
	desc.VertCoupling = Coupling(r.readI16())
	desc.ProbeAtt = r.readF32()
	desc.FixedVertGain = FixedVertGain(r.readI16())
	desc.BandwidthLimit = r.readI16()
	desc.VerticalVernier = r.readF32()
	desc.AcqVertOffset = r.readF32()
	desc.WaveSource = r.readI16()

	if r.err != nil {
		return desc, xerrors.Errorf("trc: could not decode WAVEDESC block at offset %d: %w", beg, r.err)
	}
	desc.pos = beg

	if desc.DescriptorName != magic {
		return desc, xerrors.Errorf("trc: invalid descriptor marker %q at offset %d: %w",
			desc.DescriptorName, beg, ErrUnsupportedFormat,
		)
	}
	switch desc.CommType {
	case Int8, Int16:
		// ok
	default:
		return desc, xerrors.Errorf("trc: invalid COMM_TYPE value %d: %w",
			int16(desc.CommType), ErrUnsupportedFormat,
		)
	}
	if desc.WaveDescriptor < descSize {
		return desc, xerrors.Errorf("trc: declared descriptor length %d smaller than fixed block size %d: %w",
			desc.WaveDescriptor, descSize, ErrLayoutMismatch,
		)
	}
	if desc.UserText < 0 || desc.TrigTimeArray < 0 || desc.WaveArray1 < 0 {
		return desc, xerrors.Errorf("trc: negative block length (user-text %d, trigger-times %d, samples %d): %w",
			desc.UserText, desc.TrigTimeArray, desc.WaveArray1, ErrLayoutMismatch,
		)
	}
	if desc.SubarrayCount <= 0 {
		return desc, xerrors.Errorf("trc: invalid segment count %d: %w",
			desc.SubarrayCount, ErrInvalidDescriptor,
		)
	}
	if desc.WaveArrayCount < 0 {
		return desc, xerrors.Errorf("trc: invalid sample count %d: %w",
			desc.WaveArrayCount, ErrInvalidDescriptor,
		)
	}
	if end := desc.DataOffset() + int64(desc.WaveArray1); end > int64(len(raw)) {
		return desc, xerrors.Errorf("trc: declared layout ends at offset %d (buffer length %d): %w",
			end, len(raw), ErrLayoutMismatch,
		)
	}

	return desc, nil
}

// trigSize is the on-file size of one trigger-time record: two
// float64 values per segment.
const trigSize = 16

// decodeTrigTimes decodes the trigger-time array, one record per
// segment, in segment order.
func decodeTrigTimes(raw []byte, desc *Descriptor) ([]TrigTime, error) {
	n := desc.NumSegments()
	if int64(desc.TrigTimeArray) != int64(n)*trigSize {
		return nil, xerrors.Errorf("trc: trigger-time array length %d does not match %d segments (want %d): %w",
			desc.TrigTimeArray, n, int64(n)*trigSize, ErrLayoutMismatch,
		)
	}

	r := newRbuf(raw, desc.CommOrder.ByteOrder())
	r.seek(desc.TrigTimesOffset())

	trigs := make([]TrigTime, n)
	for i := range trigs {
		trigs[i].Offset = r.readF64()
		trigs[i].Interval = r.readF64()
	}
	if r.err != nil {
		return nil, xerrors.Errorf("trc: could not decode trigger-time array: %w", r.err)
	}
	return trigs, nil
}

// decodeSamples decodes the sample array and splits it into one slice
// per segment, in segment order. With scale, raw ADC counts are
// mapped to physical values with the vertical gain and offset of the
// descriptor.
func decodeSamples(raw []byte, desc *Descriptor, scale bool) ([][]float64, error) {
	var (
		n    = int(desc.WaveArrayCount)
		segs = desc.NumSegments()
	)
	if n%segs != 0 {
		return nil, xerrors.Errorf("trc: sample count %d not divisible by segment count %d: %w",
			n, segs, ErrInvalidDescriptor,
		)
	}
	if int64(n)*int64(desc.SampleSize()) > int64(desc.WaveArray1) {
		return nil, xerrors.Errorf("trc: %d samples of %d bytes exceed declared array length %d: %w",
			n, desc.SampleSize(), desc.WaveArray1, ErrLayoutMismatch,
		)
	}

	r := newRbuf(raw, desc.CommOrder.ByteOrder())
	r.seek(desc.DataOffset())

	var (
		gain = float64(desc.VerticalGain)
		off  = float64(desc.VerticalOffset)
		vs   = make([]float64, n)
	)
	if !scale {
		gain, off = 1, 0
	}
	switch desc.CommType {
	case Int8:
		for i := range vs {
			vs[i] = float64(int8(r.readU8()))*gain - off
		}
	case Int16:
		for i := range vs {
			vs[i] = float64(r.readI16())*gain - off
		}
	default:
		return nil, xerrors.Errorf("trc: invalid COMM_TYPE value %d: %w",
			int16(desc.CommType), ErrUnsupportedFormat,
		)
	}
	if r.err != nil {
		return nil, xerrors.Errorf("trc: could not decode sample array: %w", r.err)
	}

	var (
		sz   = n / segs
		data = make([][]float64, segs)
	)
	for i := range data {
		beg := i * sz
		end := beg + sz
		data[i] = vs[beg:end:end]
	}
	return data, nil
}
