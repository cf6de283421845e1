// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command trc2csv converts a LeCroy trace file to a CSV table, one row
// per sample.
package main // import "github.com/go-lpc/lecroy/cmd/trc2csv"

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-lpc/lecroy/internal/xcnv"
	"github.com/go-lpc/lecroy/trc"
	"go-hep.org/x/hep/csvutil"
)

func main() {
	log.SetPrefix("trc2csv: ")
	log.SetFlags(0)

	oname := flag.String("o", "out.csv", "path to output CSV file")

	flag.Usage = func() {
		fmt.Printf(`Usage: trc2csv [OPTIONS] file.trc

ex:
 $> trc2csv -o out.csv ./C2--calib--00042.trc

options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("missing input trace file")
	}

	if *oname == "" {
		flag.Usage()
		log.Fatalf("invalid output CSV file name")
	}

	err := process(*oname, flag.Arg(0))
	if err != nil {
		log.Fatalf("could not convert trace file: %+v", err)
	}
}

func process(oname, fname string) error {
	data, err := trc.Read(fname)
	if err != nil {
		return fmt.Errorf("could not decode trace file: %w", err)
	}

	tbl, err := csvutil.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output CSV file: %w", err)
	}
	defer tbl.Close()
	tbl.Writer.Comma = ';'

	err = xcnv.TRC2CSV(tbl, data)
	if err != nil {
		return fmt.Errorf("could not convert trace to CSV: %w", err)
	}

	err = tbl.Close()
	if err != nil {
		return fmt.Errorf("could not close output CSV file: %w", err)
	}

	return nil
}
