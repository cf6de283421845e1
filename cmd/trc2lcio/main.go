// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command trc2lcio converts a LeCroy trace file to an LCIO one.
package main // import "github.com/go-lpc/lecroy/cmd/trc2lcio"

import (
	"compress/flate"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-lpc/lecroy/internal/xcnv"
	"github.com/go-lpc/lecroy/trc"
	"go-hep.org/x/hep/lcio"
)

var (
	msg = log.New(os.Stdout, "trc2lcio: ", 0)
)

func main() {
	var (
		oname = flag.String("o", "out.lcio", "path to output LCIO file")
		compr = flag.Int("lvl", flate.DefaultCompression, "compression level for output LCIO file")
		run   = flag.Int("run", -1, "run number for the output file (inferred from the trace file name if negative)")
	)

	flag.Usage = func() {
		fmt.Printf(`Usage: trc2lcio [OPTIONS] file.trc

ex:
 $> trc2lcio -o out.lcio -lvl=9 ./C2--calib--00042.trc

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		msg.Fatalf("missing input trace file")
	}

	if *oname == "" {
		flag.Usage()
		msg.Fatalf("invalid output LCIO file name")
	}

	err := process(*oname, *compr, int32(*run), flag.Arg(0))
	if err != nil {
		msg.Fatalf("could not convert trace file: %+v", err)
	}
}

func process(oname string, lvl int, run int32, fname string) error {
	data, err := trc.Read(fname)
	if err != nil {
		return fmt.Errorf("could not decode trace file: %w", err)
	}

	if run < 0 {
		run, err = runNbrFrom(fname)
		if err != nil {
			return fmt.Errorf("could not infer run from %q: %w", fname, err)
		}
	}

	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(lvl)

	err = xcnv.TRC2LCIO(w, data, run, msg)
	if err != nil {
		return fmt.Errorf("could not convert trace to LCIO: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	return nil
}

// runNbrFrom extracts the trailing sequence number LeCroy scopes
// append to auto-saved trace file names, e.g. "C1Trace00042.trc" or
// "C2--calib--00042.trc".
func runNbrFrom(fname string) (int32, error) {
	name := filepath.Base(fname)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	beg := len(name)
	for beg > 0 && '0' <= name[beg-1] && name[beg-1] <= '9' {
		beg--
	}
	if beg == len(name) {
		return 0, fmt.Errorf("no trailing sequence number in %q", name)
	}

	v, err := strconv.ParseInt(name[beg:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence number %q: %w", name[beg:], err)
	}
	return int32(v), nil
}
