// Package optim implements functional optimizers for distributed training.
//
// A functional optimizer does not read gradients off the parameters it
// owns. Instead the caller passes gradients to Step explicitly, one
// optional slot per parameter in construction order. This separates
// gradient computation (done per worker, possibly on many goroutines)
// from the parameter update (applied centrally or per shard), so
// concurrent gradient producers never race on a shared accumulation
// field.
//
// Example usage:
//
//	updater, err := optim.NewRMSprop(params, optim.RMSpropConfig{
//	    LR: 0.01,
//	}, backend)
//	if err != nil {
//	    return err
//	}
//
//	// Training loop: workers fill the gradient slice, one slot per
//	// parameter; a slot left nil means "no gradient this step".
//	for step := range steps {
//	    grads := computeGradients(params)
//	    if err := updater.Step(grads); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"errors"

	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// Optimizer is the base interface for functional optimizers.
//
// Step takes the gradients explicitly instead of reading them from the
// parameters; a nil slot means the parameter receives no update this call.
type Optimizer interface {
	// Step applies one update to all parameters with a non-nil gradient
	// slot. The slice must have one slot per parameter, in the order the
	// parameters were passed at construction.
	Step(gradients []*tensor.RawTensor) error

	// ZeroGrad clears any gradients staged locally on the parameters.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}

// Caller contract violations surfaced by constructors and Step.
var (
	// ErrEmptyParameterSet is returned when an optimizer is constructed
	// with no parameters.
	ErrEmptyParameterSet = errors.New("optim: got an empty parameter list")

	// ErrGradientCountMismatch is returned by Step when the gradient
	// slice length does not equal the parameter count.
	ErrGradientCountMismatch = errors.New("optim: gradient count does not match parameter count")
)
