// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracedb holds types to store and retrieve summaries of
// decoded LeCroy trace files from an acquisition catalog database.
package tracedb // import "github.com/go-lpc/lecroy/tracedb"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-lpc/lecroy/trc"
	_ "github.com/go-sql-driver/mysql"
)

const (
	host = "localhost"
)

var (
	usr = "username"
	pwd = "s3cr3t"

	drvName = "mysql"
)

// DB exposes convenience methods to record and retrieve trace file
// summaries from the catalog database.
type DB struct {
	db   *sql.DB
	name string // name of the catalog database
}

// Open opens a connection to the catalog database dbname.
func Open(dbname string) (*DB, error) {
	db, err := sql.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("tracedb: could not open %q db: %w", dbname, err)
	}

	err = ping(db, dbname)
	if err != nil {
		return nil, fmt.Errorf("tracedb: could not ping %q db: %w", dbname, err)
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", usr, pwd, host, db)
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("tracedb: could not ping %q db: %w", dbname, err)
	}

	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// Summary condenses the metadata of one decoded trace file.
type Summary struct {
	File          string // path of the trace file
	Instrument    string
	Label         string
	TrigTime      string // wall-clock time of the first trigger
	Segments      int32
	Samples       int32   // number of samples, summed over all segments
	HorizInterval float64 // sampling period, in seconds
	VerticalGain  float64
}

// SummaryOf builds the summary of the decoded trace file fname.
func SummaryOf(fname string, data *trc.Trace) Summary {
	desc := &data.Desc
	return Summary{
		File:          fname,
		Instrument:    desc.InstrumentName,
		Label:         desc.TraceLabel,
		TrigTime:      desc.TriggerTime.String(),
		Segments:      desc.SubarrayCount,
		Samples:       desc.WaveArrayCount,
		HorizInterval: float64(desc.HorizInterval),
		VerticalGain:  float64(desc.VerticalGain),
	}
}

// InsertSummary records the summary s into the catalog.
func (db *DB) InsertSummary(ctx context.Context, s Summary) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := db.db.ExecContext(
		ctx,
		`INSERT INTO traces
(file, instrument, label, trigtime, segments, samples, horiz_interval, vertical_gain)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.File, s.Instrument, s.Label, s.TrigTime,
		s.Segments, s.Samples, s.HorizInterval, s.VerticalGain,
	)
	if err != nil {
		return fmt.Errorf("tracedb: could not insert summary for %q: %w", s.File, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("tracedb: context error while inserting summary: %w", err)
	}

	return nil
}

// LastSummary returns the most recently triggered summary of the
// catalog.
func (db *DB) LastSummary(ctx context.Context) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Summary
	rows, err := db.db.QueryContext(
		ctx,
		`SELECT file, instrument, label, trigtime, segments, samples, horiz_interval, vertical_gain
FROM traces ORDER BY trigtime DESC LIMIT 1`,
	)
	if err != nil {
		return s, fmt.Errorf("tracedb: could not query last summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		err = rows.Scan(
			&s.File, &s.Instrument, &s.Label, &s.TrigTime,
			&s.Segments, &s.Samples, &s.HorizInterval, &s.VerticalGain,
		)
		if err != nil {
			return s, fmt.Errorf("tracedb: could not scan summary: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("tracedb: could not scan db for last summary: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return s, fmt.Errorf("tracedb: context error while retrieving last summary: %w", err)
	}

	return s, nil
}

// Summaries returns the summaries recorded for the given instrument,
// in trigger-time order.
func (db *DB) Summaries(ctx context.Context, instrument string) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sums []Summary
	rows, err := db.db.QueryContext(
		ctx,
		`SELECT file, instrument, label, trigtime, segments, samples, horiz_interval, vertical_gain
FROM traces WHERE instrument=? ORDER BY trigtime`,
		instrument,
	)
	if err != nil {
		return sums, fmt.Errorf("tracedb: could not query summaries: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var s Summary
		err = rows.Scan(
			&s.File, &s.Instrument, &s.Label, &s.TrigTime,
			&s.Segments, &s.Samples, &s.HorizInterval, &s.VerticalGain,
		)
		if err != nil {
			return sums, fmt.Errorf("tracedb: could not scan row %d: %w", i, err)
		}
		i++

		sums = append(sums, s)
	}

	if err := rows.Err(); err != nil {
		return sums, fmt.Errorf("tracedb: could not scan db for summaries: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return sums, fmt.Errorf("tracedb: context error while retrieving summaries: %w", err)
	}

	return sums, nil
}
