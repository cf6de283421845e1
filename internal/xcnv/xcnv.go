// Copyright 2022 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xcnv provides tools to convert LeCroy traces to LCIO and CSV.
package xcnv // import "github.com/go-lpc/lecroy/internal/xcnv"
