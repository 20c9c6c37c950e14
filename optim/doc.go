// Copyright 2025 The Cadence TIP-AI Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides functional optimizers for distributed training.
//
// # Overview
//
// A functional optimizer takes gradients explicitly through Step instead
// of reading them off the parameters. A distributed coordinator computes
// gradients per worker (possibly on many goroutines), collects them into
// one ordered slice, and applies them in a single call; no shared
// accumulation field exists to race on.
//
// This package contains:
//   - RMSprop: adaptive-learning-rate update with optional momentum and
//     variance centering
//   - Optimizer interface for custom functional optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/Cadence-TIP-AI/pytorch/backend/cpu"
//	    "github.com/Cadence-TIP-AI/pytorch/nn"
//	    "github.com/Cadence-TIP-AI/pytorch/optim"
//	    "github.com/Cadence-TIP-AI/pytorch/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    w, _ := tensor.FromSlice([]float32{3.0}, tensor.Shape{1}, backend)
//	    params := []*nn.Parameter[*cpu.Backend]{nn.NewParameter("w", w)}
//
//	    updater, err := optim.NewRMSprop(params, optim.RMSpropConfig{
//	        LR:    0.01,
//	        Alpha: 0.99,
//	    }, backend)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // Training loop: one gradient slot per parameter, nil = absent.
//	    grads := []*tensor.RawTensor{computeGradient(w)}
//	    if err := updater.Step(grads); err != nil {
//	        panic(err)
//	    }
//	}
//
// # Error Handling
//
// Both error kinds are caller contract violations, surfaced synchronously
// and without partial effects:
//   - ErrEmptyParameterSet: construction with an empty parameter list
//   - ErrGradientCountMismatch: Step with the wrong gradient count
package optim
