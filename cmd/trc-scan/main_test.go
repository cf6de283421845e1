// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-lpc/lecroy/internal/trctest"
	"github.com/go-lpc/lecroy/trc"
)

func trcFile(label string) []byte {
	return trctest.Make(trctest.Config{
		Instrument:    "LECROYHDO4104",
		Label:         label,
		Trigs:         [][2]float64{{0, 0.25}, {4, 0.125}},
		Samples:       []int{1, 2, 3, 5, 7, 9},
		Gain:          1,
		HorizInterval: 0.5,
		VertUnit:      "V",
		HorizUnit:     "S",
		Year:          2022, Month: 3, Day: 1,
		Hour: 14, Min: 13, Sec: 42.5,
	})
}

func TestScan(t *testing.T) {
	tmp := t.TempDir()

	fnames := []string{
		filepath.Join(tmp, "C1Trace00042.trc"),
		filepath.Join(tmp, "C2Trace00042.trc"),
	}
	for i, fname := range fnames {
		label := fmt.Sprintf("C%d", i+1)
		err := os.WriteFile(fname, trcFile(label), 0644)
		if err != nil {
			t.Fatalf("could not create trace file: %+v", err)
		}
	}

	xmain(io.Discard, append([]string{"-j=2"}, fnames...))
}

func TestProcess(t *testing.T) {
	tmp := t.TempDir()

	fnames := []string{
		filepath.Join(tmp, "C1Trace00042.trc"),
		filepath.Join(tmp, "C2Trace00042.trc"),
	}
	for i, fname := range fnames {
		label := fmt.Sprintf("C%d", i+1)
		err := os.WriteFile(fname, trcFile(label), 0644)
		if err != nil {
			t.Fatalf("could not create trace file: %+v", err)
		}
	}

	out := new(strings.Builder)
	err := process(out, fnames, 2, "")
	if err != nil {
		t.Fatalf("could not scan traces: %+v", err)
	}

	want := fmt.Sprintf(
		"%s: LECROYHDO4104 C1 2022-03-01 14:13:42.500000 segments=2 samples=6\n"+
			"%s: LECROYHDO4104 C2 2022-03-01 14:13:42.500000 segments=2 samples=6\n",
		fnames[0], fnames[1],
	)
	if got := out.String(); got != want {
		t.Fatalf("invalid trc-scan output:\ngot:\n%s\nwant:\n%s\n", got, want)
	}
}

func TestProcessInvalidFile(t *testing.T) {
	tmp := t.TempDir()

	f1 := filepath.Join(tmp, "C1Trace00042.trc")
	err := os.WriteFile(f1, trcFile("C1"), 0644)
	if err != nil {
		t.Fatalf("could not create trace file: %+v", err)
	}

	f2 := filepath.Join(tmp, "garbage.trc")
	err = os.WriteFile(f2, []byte("not a trace file"), 0644)
	if err != nil {
		t.Fatalf("could not create trace file: %+v", err)
	}

	err = process(io.Discard, []string{f1, f2}, 2, "")
	if err == nil {
		t.Fatalf("expected an error")
	}
	want := fmt.Errorf("could not decode %q: trc: could not find %q marker: %w",
		f2, "WAVEDESC", trc.ErrUnsupportedFormat,
	)
	if got, want := err.Error(), want.Error(); got != want {
		t.Fatalf("invalid error:\ngot= %v\nwant=%v\n", got, want)
	}
	if !errors.Is(err, trc.ErrUnsupportedFormat) {
		t.Fatalf("invalid error type: %+v", err)
	}
}

func TestProcessMissingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "missing.trc")

	err := process(io.Discard, []string{fname}, 1, "")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("invalid error: %+v", err)
	}
}
