// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"log"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-lpc/lecroy/internal/trctest"
	"github.com/go-lpc/lecroy/trc"
	"go-hep.org/x/hep/csvutil"
	"go-hep.org/x/hep/lcio"
)

func TestTRC2LCIO(t *testing.T) {
	raw := trctest.Make(trctest.Config{
		Instrument:    "LECROYHDO4104",
		InstrNum:      42,
		Label:         "C2",
		UserText:      "pulse calibration",
		Trigs:         [][2]float64{{0, 0.25}, {0.5, 0.125}},
		Samples:       []int{10, 20, 30, 40},
		Gain:          0.5,
		Offset:        0.25,
		HorizInterval: 0.5,
		VertUnit:      "V",
		HorizUnit:     "S",
		Year:          2022, Month: 3, Day: 1,
		Hour: 14, Min: 13, Sec: 42.5,
	})

	data, err := trc.Decode(raw)
	if err != nil {
		t.Fatalf("could not decode trace: %+v", err)
	}

	const run = 63
	var (
		msg   = log.New(os.Stdout, "", 0)
		fname = filepath.Join(t.TempDir(), "trace.lcio")
	)

	w, err := lcio.Create(fname)
	if err != nil {
		t.Fatalf("could not create LCIO file: %+v", err)
	}
	defer w.Close()

	err = TRC2LCIO(w, data, run, msg)
	if err != nil {
		t.Fatalf("could not convert to LCIO: %+v", err)
	}

	err = w.Close()
	if err != nil {
		t.Fatalf("could not close LCIO file: %+v", err)
	}

	r, err := lcio.Open(fname)
	if err != nil {
		t.Fatalf("could not open LCIO file: %+v", err)
	}
	defer r.Close()

	wantEvts := []struct {
		stamp float64
		dt    float64
		seg   []float64
	}{
		{stamp: 0, dt: 0.25, seg: []float64{4.75, 9.75}},
		{stamp: 0.5, dt: 0.125, seg: []float64{14.75, 19.75}},
	}

	nevts := 0
	for r.Next() {
		evt := r.Event()
		if got, want := evt.RunNumber, int32(run); got != want {
			t.Fatalf("evt %d: invalid run number: got=%d, want=%d", nevts, got, want)
		}
		if got, want := evt.EventNumber, int32(nevts); got != want {
			t.Fatalf("evt %d: invalid event number: got=%d, want=%d", nevts, got, want)
		}
		if got, want := evt.Detector, "LECROYHDO4104"; got != want {
			t.Fatalf("evt %d: invalid detector: got=%q, want=%q", nevts, got, want)
		}
		if got, want := evt.TimeStamp, int64(wantEvts[nevts].stamp*1e9); got != want {
			t.Fatalf("evt %d: invalid timestamp: got=%d, want=%d", nevts, got, want)
		}
		if got, want := evt.Params.Floats["TrigOffset"], []float32{float32(wantEvts[nevts].stamp)}; !reflect.DeepEqual(got, want) {
			t.Fatalf("evt %d: invalid trigger offset: got=%v, want=%v", nevts, got, want)
		}
		if got, want := evt.Params.Floats["TrigInterval"], []float32{float32(wantEvts[nevts].dt)}; !reflect.DeepEqual(got, want) {
			t.Fatalf("evt %d: invalid trigger interval: got=%v, want=%v", nevts, got, want)
		}
		seg := evt.Get("TrcSegment").(*lcio.GenericObject).Data[0].F64s
		if got, want := seg, wantEvts[nevts].seg; !reflect.DeepEqual(got, want) {
			t.Fatalf("evt %d: invalid samples: got=%v, want=%v", nevts, got, want)
		}
		nevts++
	}
	if got, want := nevts, len(wantEvts); got != want {
		t.Fatalf("invalid number of events: got=%d, want=%d", got, want)
	}

	rhdr := r.RunHeader()
	if got, want := rhdr.RunNumber, int32(run); got != want {
		t.Fatalf("invalid run number: got=%d, want=%d", got, want)
	}
	if got, want := rhdr.Detector, "LECROYHDO4104"; got != want {
		t.Fatalf("invalid detector: got=%q, want=%q", got, want)
	}
	if got, want := rhdr.Descr, `LeCroy trace "C2"`; got != want {
		t.Fatalf("invalid description: got=%q, want=%q", got, want)
	}
	if got, want := rhdr.Params.Ints["Segments"], []int32{2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid segments param: got=%v, want=%v", got, want)
	}
	if got, want := rhdr.Params.Ints["Samples"], []int32{4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid samples param: got=%v, want=%v", got, want)
	}
	if got, want := rhdr.Params.Floats["VerticalGain"], []float32{0.5}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid gain param: got=%v, want=%v", got, want)
	}
	if got, want := rhdr.Params.Strings["TrigTime"], []string{"2022-03-01 14:13:42.500000"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("invalid trigger time param: got=%v, want=%v", got, want)
	}
}

func TestTRC2CSV(t *testing.T) {
	raw := trctest.Make(trctest.Config{
		Instrument:    "LECROYHDO4104",
		Label:         "C1",
		Trigs:         [][2]float64{{0, 0.25}, {4, 0.125}},
		Samples:       []int{1, 2, 3, 4},
		Gain:          1,
		HorizInterval: 0.5,
		VertUnit:      "V",
		HorizUnit:     "S",
	})

	data, err := trc.Decode(raw)
	if err != nil {
		t.Fatalf("could not decode trace: %+v", err)
	}

	fname := filepath.Join(t.TempDir(), "trace.csv")
	tbl, err := csvutil.Create(fname)
	if err != nil {
		t.Fatalf("could not create CSV file: %+v", err)
	}
	defer tbl.Close()
	tbl.Writer.Comma = ';'

	err = TRC2CSV(tbl, data)
	if err != nil {
		t.Fatalf("could not convert to CSV: %+v", err)
	}

	err = tbl.Close()
	if err != nil {
		t.Fatalf("could not close CSV file: %+v", err)
	}

	got, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("could not read CSV file: %+v", err)
	}

	want := `# segment;sample;time (S);ampl (V)
0;0;0.25;1
0;1;0.75;2
1;0;4.125;3
1;1;4.625;4
`
	if got, want := string(got), want; got != want {
		t.Fatalf("invalid CSV output:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
