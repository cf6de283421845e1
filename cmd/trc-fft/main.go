// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// trc-fft computes and displays the frequency spectrum of one segment
// of a LeCroy trace file.
//
// Samples are Hamming-windowed and spectrum magnitudes are normalized
// by the window sum, so a pure tone of amplitude A shows up as a peak
// of about A/2 in the trace's vertical unit.
//
// Usage: trc-fft [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> trc-fft -seg=0 -n=4 ./C2--calib--00042.trc
//  # freq (Hz) mag (V)
//  0 2.5e-05
//  500000 0.00012
//  1e+06 0.0245
//  1.5e+06 0.00042
package main // import "github.com/go-lpc/lecroy/cmd/trc-fft"

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/cmplx"
	"os"

	"github.com/go-lpc/lecroy/trc"
	"gonum.org/v1/gonum/dsp/fourier"
)

const usage = `trc-fft computes and displays the frequency spectrum of one segment
of a LeCroy trace file.

Usage: trc-fft [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> trc-fft -seg=0 -n=4 ./C2--calib--00042.trc
 # freq (Hz) mag (V)
 0 2.5e-05
 500000 0.00012
 1e+06 0.0245
 1.5e+06 0.00042

options:
`

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	log.SetPrefix("trc-fft: ")
	log.SetFlags(0)

	var (
		fset = flag.NewFlagSet("trc", flag.ExitOnError)

		seg  = fset.Int("seg", 0, "index of the segment to analyze")
		nmax = fset.Int("n", -1, "maximum number of spectrum lines to print (all if negative)")
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
		err := process(w, fname, *seg, *nmax)
		if err != nil {
			log.Fatalf("could not analyze file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, seg, nmax int) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	data, err := trc.Read(fname)
	if err != nil {
		return fmt.Errorf("could not decode trace: %w", err)
	}

	if seg < 0 || seg >= len(data.Data) {
		return fmt.Errorf("invalid segment index %d (trace has %d segments)", seg, len(data.Data))
	}

	var (
		desc = &data.Desc
		xs   = data.Data[seg]
		dt   = float64(desc.HorizInterval)
	)
	if len(xs) < 2 {
		return fmt.Errorf("cannot analyze segment %d with %d samples", seg, len(xs))
	}
	if dt <= 0 {
		return fmt.Errorf("invalid sampling period %v", dt)
	}

	var (
		win    = hamming(len(xs))
		winSum float64
		wxs    = make([]float64, len(xs))
	)
	for i, v := range xs {
		wxs[i] = v * win[i]
		winSum += win[i]
	}

	fft := fourier.NewFFT(len(wxs))
	coeffs := fft.Coefficients(nil, wxs)

	fmt.Fprintf(wbuf, "# freq (Hz) mag (%s)\n", desc.VertUnit)
	for i, c := range coeffs {
		if nmax >= 0 && i >= nmax {
			break
		}
		fmt.Fprintf(wbuf, "%v %v\n", fft.Freq(i)/dt, cmplx.Abs(c)/winSum)
	}

	return nil
}

// hamming returns a Hamming window of length n, with n at least 2.
func hamming(n int) []float64 {
	win := make([]float64, n)
	for i := range win {
		win[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return win
}
