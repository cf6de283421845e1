// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// trc-scan decodes the descriptors of LeCroy trace files and prints a
// one-line summary per file.
//
// Files are memory-mapped and only their descriptor block is decoded,
// so scanning large sequence captures stays cheap. With -db, the
// summaries are also recorded into the trace catalog database.
//
// Usage: trc-scan [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//  $> trc-scan -j=8 ./runs/*.trc
//  runs/C1Trace00042.trc: LECROYHDO4104 C1 2022-03-01 14:13:42.500000 segments=1000 samples=2002000
//  runs/C2Trace00042.trc: LECROYHDO4104 C2 2022-03-01 14:13:42.500000 segments=1000 samples=2002000
package main // import "github.com/go-lpc/lecroy/cmd/trc-scan"

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/go-lpc/lecroy/internal/mmap"
	"github.com/go-lpc/lecroy/tracedb"
	"github.com/go-lpc/lecroy/trc"
	"golang.org/x/sync/errgroup"
)

const usage = `trc-scan decodes the descriptors of LeCroy trace files and prints a
one-line summary per file.

Usage: trc-scan [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> trc-scan -j=8 ./runs/*.trc
 runs/C1Trace00042.trc: LECROYHDO4104 C1 2022-03-01 14:13:42.500000 segments=1000 samples=2002000
 runs/C2Trace00042.trc: LECROYHDO4104 C2 2022-03-01 14:13:42.500000 segments=1000 samples=2002000

options:
`

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	log.SetPrefix("trc-scan: ")
	log.SetFlags(0)

	var (
		fset = flag.NewFlagSet("trc", flag.ExitOnError)

		jobs   = fset.Int("j", runtime.NumCPU(), "number of traces to scan concurrently")
		dbname = fset.String("db", "", "name of the trace catalog database to record summaries into")
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

	err = process(w, fset.Args(), *jobs, *dbname)
	if err != nil {
		log.Fatalf("could not scan traces: %+v", err)
	}
}

func process(w io.Writer, fnames []string, jobs int, dbname string) error {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var grp errgroup.Group
	grp.SetLimit(jobs)

	sums := make([]tracedb.Summary, len(fnames))
	for i, fname := range fnames {
		i, fname := i, fname
		grp.Go(func() error {
			s, err := scan(fname)
			if err != nil {
				return err
			}
			sums[i] = s
			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return err
	}

	for _, s := range sums {
		fmt.Fprintf(w, "%s: %s %s %s segments=%d samples=%d\n",
			s.File, s.Instrument, s.Label, s.TrigTime, s.Segments, s.Samples,
		)
	}

	if dbname != "" {
		err = record(dbname, sums)
		if err != nil {
			return fmt.Errorf("could not record summaries: %w", err)
		}
	}

	return nil
}

func scan(fname string) (tracedb.Summary, error) {
	f, err := mmap.Open(fname)
	if err != nil {
		return tracedb.Summary{}, fmt.Errorf("could not mmap %q: %w", fname, err)
	}
	defer f.Close()

	var data trc.Trace
	err = trc.NewDecoder(f.Bytes(), trc.WithHeaderOnly()).Decode(&data)
	if err != nil {
		return tracedb.Summary{}, fmt.Errorf("could not decode %q: %w", fname, err)
	}

	return tracedb.SummaryOf(fname, &data), nil
}

func record(dbname string, sums []tracedb.Summary) error {
	db, err := tracedb.Open(dbname)
	if err != nil {
		return fmt.Errorf("could not open trace catalog %q: %w", dbname, err)
	}
	defer db.Close()

	ctx := context.Background()
	for _, s := range sums {
		err = db.InsertSummary(ctx, s)
		if err != nil {
			return fmt.Errorf("could not insert summary for %q: %w", s.File, err)
		}
	}

	return db.Close()
}
