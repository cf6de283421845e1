// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"strings"

	"github.com/go-lpc/lecroy/trc"
	"go-hep.org/x/hep/csvutil"
)

// TRC2CSV writes the decoded trace data to tbl, one row per sample:
// segment index, sample index, time and amplitude.
//
// Sample times are relative to the first trigger of the acquisition:
// the segment's trigger offset, plus the trigger-to-first-sample
// interval, plus the sampling period times the sample index.
func TRC2CSV(tbl *csvutil.Table, data *trc.Trace) error {
	var (
		desc = &data.Desc
		sep  = string(tbl.Writer.Comma)
		hdr  = strings.Join([]string{
			"# segment",
			"sample",
			fmt.Sprintf("time (%s)", desc.HorizUnit),
			fmt.Sprintf("ampl (%s)", desc.VertUnit),
		}, sep) + "\n"
	)

	err := tbl.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("could not write CSV header: %w", err)
	}

	dt := float64(desc.HorizInterval)
	for i, seg := range data.Data {
		trig := data.TrigTimes[i]
		beg := trig.Offset + trig.Interval
		for j, v := range seg {
			err = tbl.WriteRow(int32(i), int32(j), beg+float64(j)*dt, v)
			if err != nil {
				return fmt.Errorf("could not write sample %d of segment %d: %w", j, i, err)
			}
		}
	}

	return nil
}
