package optim

import (
	"fmt"
	"math"

	"github.com/Cadence-TIP-AI/pytorch/internal/nn"
	"github.com/Cadence-TIP-AI/pytorch/internal/parallel"
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// RMSprop implements the RMSprop optimizer in functional form.
//
// RMSprop divides each gradient by a running root-mean-square of recent
// gradient magnitudes, with optional momentum and variance centering.
//
// Update rule per parameter (elementwise):
//
//	g = gradient + weight_decay * param                    // Effective gradient
//	square_avg = alpha * square_avg + (1-alpha) * g²       // Second moment
//	if centered:
//	    grad_avg = alpha * grad_avg + (1-alpha) * g        // First moment
//	    avg = sqrt(square_avg - grad_avg²) + eps           // Centered (variance)
//	else:
//	    avg = sqrt(square_avg) + eps
//	if momentum > 0:
//	    buf = momentum * buf + g / avg
//	    param = param - lr * buf
//	else:
//	    param = param - lr * g / avg
//
// Per-parameter state (step counter, square_avg, and the optional
// momentum_buffer / grad_avg) is created lazily the first time a
// parameter receives a gradient, and mutated in place on every later
// step. A nil gradient slot leaves the parameter, its state, and its
// step counter untouched.
//
// The centered denominator is deliberately not clamped at zero: for
// ill-conditioned gradient sequences square_avg - grad_avg² can go
// negative in floating point and the update propagates NaN, matching
// the reference recurrence.
//
// Reference: "Lecture 6.5 - rmsprop" (Tieleman & Hinton, 2012)
//
// Example:
//
//	updater, err := optim.NewRMSprop(params, optim.RMSpropConfig{
//	    LR:    0.01,
//	    Alpha: 0.99,
//	}, backend)
type RMSprop[B tensor.Backend] struct {
	params      []*nn.Parameter[B]
	lr          float32
	alpha       float32
	eps         float32
	weightDecay float32
	momentum    float32
	centered    bool
	state       map[*nn.Parameter[B]]*rmspropState[B]
	parallel    parallel.Config
	backend     B
}

// rmspropState is the per-parameter optimizer state, created lazily on the
// first step in which the parameter has a gradient.
type rmspropState[B tensor.Backend] struct {
	step           int64                      // Gradient-present steps seen so far
	squareAvg      *tensor.Tensor[float32, B] // EMA of squared gradients
	momentumBuffer *tensor.Tensor[float32, B] // Present iff momentum > 0
	gradAvg        *tensor.Tensor[float32, B] // Present iff centered
}

// RMSpropConfig holds configuration for the RMSprop optimizer.
// Zero-valued fields fall back to the defaults noted below.
type RMSpropConfig struct {
	LR          float32 // Learning rate (default: 0.01)
	Alpha       float32 // Smoothing constant for the running averages (default: 0.99)
	Eps         float32 // Term for numerical stability (default: 1e-8)
	WeightDecay float32 // L2 penalty added to the gradient (default: 0.0)
	Momentum    float32 // Momentum factor (default: 0.0)
	Centered    bool    // Subtract the squared mean gradient before the sqrt (default: false)
}

// NewRMSprop creates a new functional RMSprop optimizer over the given
// parameter list. The list order fixes the slot order Step expects for
// its gradient slice.
//
// Returns ErrEmptyParameterSet if params is empty; no optimizer is
// produced in that case.
//
// Default hyperparameters:
//   - LR: 0.01
//   - Alpha: 0.99
//   - Eps: 1e-8
//   - WeightDecay: 0.0
//   - Momentum: 0.0
//   - Centered: false
func NewRMSprop[B tensor.Backend](params []*nn.Parameter[B], config RMSpropConfig, backend B) (*RMSprop[B], error) {
	if len(params) == 0 {
		return nil, ErrEmptyParameterSet
	}

	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Alpha == 0 {
		config.Alpha = 0.99
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &RMSprop[B]{
		params:      params,
		lr:          config.LR,
		alpha:       config.Alpha,
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		momentum:    config.Momentum,
		centered:    config.Centered,
		state:       make(map[*nn.Parameter[B]]*rmspropState[B]),
		parallel:    parallel.DefaultConfig(),
		backend:     backend,
	}, nil
}

// Step performs a single optimization step with externally supplied
// gradients, one optional slot per parameter in construction order.
//
// A nil slot skips that parameter entirely: no state is created, no
// update is applied, and its step counter does not advance.
//
// Returns ErrGradientCountMismatch, before touching any parameter, if
// len(gradients) != the parameter count. Each non-nil gradient must match
// its parameter's shape and dtype; a mismatch panics before any state is
// created or parameter updated. Gradient buffers are read only; the
// caller's buffers are never mutated.
//
// Step must not be called concurrently with itself or with anything else
// touching the same parameters; the updates for distinct parameters are
// disjoint and may run on multiple goroutines internally.
func (r *RMSprop[B]) Step(gradients []*tensor.RawTensor) error {
	if len(gradients) != len(r.params) {
		return fmt.Errorf("%w: %d parameters, %d gradients",
			ErrGradientCountMismatch, len(r.params), len(gradients))
	}
	for i, param := range r.params {
		if gradients[i] != nil {
			checkGradient(param, gradients[i])
		}
	}

	// Sequential prologue: lazy state creation and step counting mutate
	// the state map and must stay on this goroutine.
	type update struct {
		param *nn.Parameter[B]
		grad  *tensor.RawTensor
		state *rmspropState[B]
	}
	pending := make([]update, 0, len(r.params))

	for i, param := range r.params {
		grad := gradients[i]
		if grad == nil {
			// No gradient this step, skip the parameter entirely.
			continue
		}

		state, ok := r.state[param]
		if !ok {
			state = &rmspropState[B]{
				squareAvg: tensor.ZerosLike[float32](param.Tensor().Raw(), r.backend),
			}
			if r.momentum > 0 {
				state.momentumBuffer = tensor.ZerosLike[float32](param.Tensor().Raw(), r.backend)
			}
			if r.centered {
				state.gradAvg = tensor.ZerosLike[float32](param.Tensor().Raw(), r.backend)
			}
			r.state[param] = state
		}

		state.step++
		pending = append(pending, update{param: param, grad: grad, state: state})
	}

	// Each pending update reads and writes only its own parameter and
	// state buffers, so the fan-out is race free.
	parallel.For(len(pending), func(i int) {
		u := pending[i]
		r.updateParameter(u.param, u.grad, u.state)
	}, r.parallel)

	return nil
}

// checkGradient validates the shape and dtype contract for a gradient
// buffer against its parameter.
func checkGradient[B tensor.Backend](param *nn.Parameter[B], grad *tensor.RawTensor) {
	raw := param.Tensor().Raw()
	if !grad.Shape().Equal(raw.Shape()) {
		panic(fmt.Sprintf("rmsprop: gradient shape mismatch for %q: %v vs %v",
			param.Name(), grad.Shape(), raw.Shape()))
	}
	if grad.DType() != raw.DType() {
		panic(fmt.Sprintf("rmsprop: gradient dtype mismatch for %q: %s vs %s",
			param.Name(), grad.DType(), raw.DType()))
	}
}

// updateParameter applies the RMSprop recurrence to a single parameter.
func (r *RMSprop[B]) updateParameter(param *nn.Parameter[B], grad *tensor.RawTensor, state *rmspropState[B]) {
	gradData := grad.AsFloat32()
	paramData := param.Tensor().Raw().AsFloat32()
	squareAvg := state.squareAvg.Raw().AsFloat32()

	var momentumBuf, gradAvg []float32
	if r.momentum > 0 {
		momentumBuf = state.momentumBuffer.Raw().AsFloat32()
	}
	if r.centered {
		gradAvg = state.gradAvg.Raw().AsFloat32()
	}

	for i := range paramData {
		// Effective gradient; the caller's buffer is left untouched.
		g := gradData[i]
		if r.weightDecay != 0 {
			g += r.weightDecay * paramData[i]
		}

		// square_avg = alpha * square_avg + (1-alpha) * g²
		squareAvg[i] = r.alpha*squareAvg[i] + (1.0-r.alpha)*g*g

		var avg float32
		if r.centered {
			// grad_avg = alpha * grad_avg + (1-alpha) * g
			gradAvg[i] = r.alpha*gradAvg[i] + (1.0-r.alpha)*g
			// Not clamped: a negative operand propagates NaN.
			avg = float32(math.Sqrt(float64(squareAvg[i]-gradAvg[i]*gradAvg[i]))) + r.eps
		} else {
			avg = float32(math.Sqrt(float64(squareAvg[i]))) + r.eps
		}

		if r.momentum > 0 {
			// buf = momentum * buf + g / avg
			momentumBuf[i] = r.momentum*momentumBuf[i] + g/avg
			paramData[i] -= r.lr * momentumBuf[i]
		} else {
			paramData[i] -= r.lr * g / avg
		}
	}
}

// ZeroGrad clears gradients staged locally on the parameters.
//
// The functional update path never reads those gradients, but callers
// that stage per-parameter gradients before collecting them into a Step
// slice use this between iterations.
func (r *RMSprop[B]) ZeroGrad() {
	for _, param := range r.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (r *RMSprop[B]) GetLR() float32 {
	return r.lr
}

// SetLR updates the learning rate.
func (r *RMSprop[B]) SetLR(lr float32) {
	r.lr = lr
}

// StepCount returns how many gradient-present steps the given parameter
// has received. Returns 0 for parameters that never received a gradient.
func (r *RMSprop[B]) StepCount(param *nn.Parameter[B]) int64 {
	state, ok := r.state[param]
	if !ok {
		return 0
	}
	return state.step
}
