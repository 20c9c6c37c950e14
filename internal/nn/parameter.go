// Package nn provides the trainable parameter type the optimizer updates.
package nn

import (
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// Parameter represents a trainable parameter.
//
// A Parameter is an identity-bearing numeric buffer: its pointer is stable
// for its whole lifetime, so the optimizer can key per-parameter state on
// it without hashing buffer contents.
//
// Example:
//
//	// Create a weight parameter
//	weight := nn.NewParameter("weight", weightTensor)
//
//	// Access the tensor
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
	grad   *tensor.Tensor[float32, B] // Locally accumulated gradient, if any
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the Parameter.
//
// Parameters:
//   - name: Descriptive name for this parameter (e.g., "linear1.weight")
//   - tensor: The initialized parameter tensor
//
// Returns a new Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the locally accumulated gradient tensor.
//
// Returns nil if no gradient has been set. The functional optimizer does
// not read this field; gradients are passed to Step explicitly. It exists
// for callers that stage a gradient alongside the parameter before
// handing it off.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the locally accumulated gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad clears the locally accumulated gradient tensor.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
