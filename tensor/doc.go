// Copyright 2025 The Cadence TIP-AI Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the numeric buffer types consumed by the
// functional optimizer: shapes, raw buffers with stable identity, the
// generic Tensor wrapper, and the Backend interface for elementwise
// arithmetic.
//
// # Basic Usage
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
package tensor
