// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trc

import "errors"

var (
	// ErrTruncated is returned when a read would run past the end of
	// the input buffer.
	ErrTruncated = errors.New("trc: truncated buffer")

	// ErrInvalidOffset is returned when a seek lands outside the
	// input buffer.
	ErrInvalidOffset = errors.New("trc: invalid offset")

	// ErrUnsupportedFormat is returned when the input does not look
	// like a LeCroy trace file, or uses an encoding this package does
	// not handle.
	ErrUnsupportedFormat = errors.New("trc: unsupported format")

	// ErrLayoutMismatch is returned when the block lengths declared
	// by the descriptor do not agree with each other or with the size
	// of the input buffer.
	ErrLayoutMismatch = errors.New("trc: layout mismatch")

	// ErrInvalidDescriptor is returned when a descriptor field holds
	// a value that makes the file impossible to interpret.
	ErrInvalidDescriptor = errors.New("trc: invalid descriptor")
)
