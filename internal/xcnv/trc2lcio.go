// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"log"

	"github.com/go-lpc/lecroy/trc"
	"go-hep.org/x/hep/lcio"
)

// TRC2LCIO writes the decoded trace data to w, one LCIO event per
// segment, preceded by a run header carrying the acquisition
// metadata.
//
// Event timestamps are the per-segment trigger offsets, in
// nanoseconds from the first trigger of the acquisition.
func TRC2LCIO(w *lcio.Writer, data *trc.Trace, run int32, msg *log.Logger) error {
	var (
		desc = &data.Desc
		det  = desc.InstrumentName
		raw  = &lcio.GenericObject{
			Data: []lcio.GenericObjectData{
				{F64s: nil},
			},
		}
	)

	err := w.WriteRunHeader(&lcio.RunHeader{
		RunNumber: run,
		Detector:  det,
		Descr:     fmt.Sprintf("LeCroy trace %q", desc.TraceLabel),
		Params: lcio.Params{
			Ints: map[string][]int32{
				"Segments": {desc.SubarrayCount},
				"Samples":  {desc.WaveArrayCount},
			},
			Floats: map[string][]float32{
				"VerticalGain":   {desc.VerticalGain},
				"VerticalOffset": {desc.VerticalOffset},
				"HorizInterval":  {desc.HorizInterval},
			},
			Strings: map[string][]string{
				"Instrument": {desc.InstrumentName},
				"TraceLabel": {desc.TraceLabel},
				"TrigTime":   {desc.TriggerTime.String()},
				"VertUnit":   {desc.VertUnit},
				"HorizUnit":  {desc.HorizUnit},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("could not write run header: %w", err)
	}

	for i, seg := range data.Data {
		if i%100 == 0 {
			msg.Printf("processing segment %d...", i)
		}
		trig := data.TrigTimes[i]
		evt := lcio.Event{
			RunNumber:   run,
			EventNumber: int32(i),
			TimeStamp:   int64(trig.Offset * 1e9),
			Detector:    det,
			Params: lcio.Params{
				Floats: map[string][]float32{
					"TrigOffset":   {float32(trig.Offset)},
					"TrigInterval": {float32(trig.Interval)},
				},
			},
		}
		raw.Data[0].F64s = seg
		evt.Add("TrcSegment", raw)

		err = w.WriteEvent(&evt)
		if err != nil {
			return fmt.Errorf("could not write segment %d: %w", i, err)
		}
	}

	return nil
}
