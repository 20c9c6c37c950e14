// Copyright 2025 The Cadence TIP-AI Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/Cadence-TIP-AI/pytorch/internal/nn"
	"github.com/Cadence-TIP-AI/pytorch/internal/optim"
	"github.com/Cadence-TIP-AI/pytorch/tensor"
)

// Optimizer interface defines the common interface for functional optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// Caller contract violations surfaced by constructors and Step.
var (
	// ErrEmptyParameterSet is returned when an optimizer is constructed
	// with no parameters.
	ErrEmptyParameterSet = optim.ErrEmptyParameterSet

	// ErrGradientCountMismatch is returned by Step when the gradient
	// slice length does not equal the parameter count.
	ErrGradientCountMismatch = optim.ErrGradientCountMismatch
)

// RMSprop represents the functional RMSprop optimizer.
type RMSprop[B tensor.Backend] = optim.RMSprop[B]

// RMSpropConfig contains configuration for the RMSprop optimizer.
type RMSpropConfig = optim.RMSpropConfig

// NewRMSprop creates a new functional RMSprop optimizer.
//
// Example:
//
//	backend := cpu.New()
//	updater, err := optim.NewRMSprop(
//	    params,
//	    optim.RMSpropConfig{
//	        LR:       0.01,
//	        Alpha:    0.99,
//	        Momentum: 0.9,
//	    },
//	    backend,
//	)
func NewRMSprop[B tensor.Backend](params []*nn.Parameter[B], config RMSpropConfig, backend B) (*RMSprop[B], error) {
	return optim.NewRMSprop(params, config, backend)
}
