// Copyright 2025 The Cadence TIP-AI Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU compute backend.
package cpu

import (
	internalcpu "github.com/Cadence-TIP-AI/pytorch/internal/backend/cpu"
	"github.com/Cadence-TIP-AI/pytorch/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of the elementwise
// operations the optimizer needs, fanning large buffers out across
// goroutines.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/Cadence-TIP-AI/pytorch/backend/cpu"
//	    "github.com/Cadence-TIP-AI/pytorch/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    _ = x
//	}
func New() *Backend {
	return internalcpu.New()
}
