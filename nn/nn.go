// Copyright 2025 The Cadence TIP-AI Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the trainable parameter type the optimizer updates.
package nn

import (
	"github.com/Cadence-TIP-AI/pytorch/internal/nn"
	"github.com/Cadence-TIP-AI/pytorch/tensor"
)

// Parameter represents a trainable parameter: an identity-bearing numeric
// buffer the optimizer keys its per-parameter state on.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new trainable parameter.
//
// Example:
//
//	backend := cpu.New()
//	w, _ := tensor.FromSlice([]float32{0.1, 0.2}, tensor.Shape{2}, backend)
//	weight := nn.NewParameter("weight", w)
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}
