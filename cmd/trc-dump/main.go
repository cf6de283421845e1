// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// trc-dump decodes and displays LeCroy trace files.
//
// Usage: trc-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> trc-dump ./C2--calib--00042.trc
//  === LECROYHDO4104 C2 ===
//  template:      LECROY_2_3
//  byte order:    little-endian
//  sample type:   int8
//  record type:   sequence obsolete
//  processing:    no processing
//  timebase:      20 us/div
//  coupling:      DC 50 Ohm
//  fixed gain:    20 mV/div
//  trigger time:  2022-03-01 14:13:42.500000
//  vertical:      gain=0.0001 offset=0.025 unit="V"
//  horizontal:    interval=5e-10 offset=-2.5e-07 unit="S"
//  segments:      2
//  samples:       2002
//  --- segment 0 ---
//  trigger:   offset=0 s interval=1.25e-10 s
//    0: -0.0125
//    1: -0.0124
//  [...]
package main // import "github.com/go-lpc/lecroy/cmd/trc-dump"

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-lpc/lecroy/trc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const usage = `trc-dump decodes and displays LeCroy trace files.

Usage: trc-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> trc-dump ./C2--calib--00042.trc
 === LECROYHDO4104 C2 ===
 template:      LECROY_2_3
 byte order:    little-endian
 sample type:   int8
 record type:   sequence obsolete
 processing:    no processing
 timebase:      20 us/div
 coupling:      DC 50 Ohm
 fixed gain:    20 mV/div
 trigger time:  2022-03-01 14:13:42.500000
 vertical:      gain=0.0001 offset=0.025 unit="V"
 horizontal:    interval=5e-10 offset=-2.5e-07 unit="S"
 segments:      2
 samples:       2002
 --- segment 0 ---
 trigger:   offset=0 s interval=1.25e-10 s
   0: -0.0125
   1: -0.0124
 [...]

options:
`

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	log.SetPrefix("trc-dump: ")
	log.SetFlags(0)

	var (
		fset = flag.NewFlagSet("trc", flag.ExitOnError)

		hdr   = fset.Bool("desc", false, "print the descriptor only")
		stats = fset.Bool("stats", false, "print per-segment statistics instead of samples")
		nmax  = fset.Int("n", -1, "maximum number of samples to print per segment (all if negative)")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		log.Fatalf("missing path to input trace file")
	}

	for _, fname := range fset.Args() {
		err := process(w, fname, *nmax, *hdr, *stats)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, nmax int, hdr, stats bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	var opts []trc.Option
	if hdr {
		opts = append(opts, trc.WithHeaderOnly())
	}

	data, err := trc.Read(fname, opts...)
	if err != nil {
		return fmt.Errorf("could not decode trace: %w", err)
	}

	desc := &data.Desc
	fmt.Fprintf(wbuf, "=== %s %s ===\n", desc.InstrumentName, desc.TraceLabel)
	fmt.Fprintf(wbuf, "template:      %s\n", desc.TemplateName)
	fmt.Fprintf(wbuf, "byte order:    %v\n", desc.CommOrder)
	fmt.Fprintf(wbuf, "sample type:   %v\n", desc.CommType)
	fmt.Fprintf(wbuf, "record type:   %v\n", desc.RecordType)
	fmt.Fprintf(wbuf, "processing:    %v\n", desc.ProcessingDone)
	fmt.Fprintf(wbuf, "timebase:      %v\n", desc.TimeBase)
	fmt.Fprintf(wbuf, "coupling:      %v\n", desc.VertCoupling)
	fmt.Fprintf(wbuf, "fixed gain:    %v\n", desc.FixedVertGain)
	fmt.Fprintf(wbuf, "trigger time:  %v\n", desc.TriggerTime)
	fmt.Fprintf(wbuf, "vertical:      gain=%v offset=%v unit=%q\n",
		desc.VerticalGain, desc.VerticalOffset, desc.VertUnit,
	)
	fmt.Fprintf(wbuf, "horizontal:    interval=%v offset=%v unit=%q\n",
		desc.HorizInterval, desc.HorizOffset, desc.HorizUnit,
	)
	fmt.Fprintf(wbuf, "segments:      %d\n", desc.NumSegments())
	fmt.Fprintf(wbuf, "samples:       %d\n", desc.WaveArrayCount)

	for i, seg := range data.Data {
		trig := data.TrigTimes[i]
		fmt.Fprintf(wbuf, "--- segment %d ---\n", i)
		fmt.Fprintf(wbuf, "trigger:   offset=%v s interval=%v s\n", trig.Offset, trig.Interval)
		switch {
		case stats && len(seg) != 0:
			fmt.Fprintf(wbuf, "mean:      %v\n", stat.Mean(seg, nil))
			fmt.Fprintf(wbuf, "std-dev:   %v\n", stat.StdDev(seg, nil))
			fmt.Fprintf(wbuf, "min:       %v\n", floats.Min(seg))
			fmt.Fprintf(wbuf, "max:       %v\n", floats.Max(seg))
		default:
			for j, v := range seg {
				if nmax >= 0 && j >= nmax {
					fmt.Fprintf(wbuf, "  [...]\n")
					break
				}
				fmt.Fprintf(wbuf, "  %d: %v\n", j, v)
			}
		}
	}

	return nil
}
