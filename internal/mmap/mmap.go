// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmap provides a read-only memory-mapped view of a file.
package mmap // import "github.com/go-lpc/lecroy/internal/mmap"

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

type Handle struct {
	data []byte
}

// Open memory-maps the whole file at path for reading.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap: could not open %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmap: could not stat %q: %w", path, err)
	}

	size := fi.Size()
	if size == 0 {
		return &Handle{}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("mmap: file %q too large", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: could not mmap %q: %w", path, err)
	}

	h := &Handle{data: data}
	runtime.SetFinalizer(h, (*Handle).Close)
	return h, nil
}

// Bytes returns the mapped memory.
// The returned slice is only valid until Close.
func (h *Handle) Bytes() []byte {
	return h.data
}

// Len returns the length of the underlying memory-mapped file.
func (h *Handle) Len() int {
	return len(h.data)
}

// Close unmaps the file.
func (h *Handle) Close() error {
	if h == nil {
		return os.ErrInvalid
	}

	if h.data == nil {
		return nil
	}
	data := h.data
	h.data = nil
	runtime.SetFinalizer(h, nil)

	return unix.Munmap(data)
}
