package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cadence-TIP-AI/pytorch/internal/backend/cpu"
	"github.com/Cadence-TIP-AI/pytorch/internal/nn"
	"github.com/Cadence-TIP-AI/pytorch/internal/optim"
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

type Backend = *cpu.CPUBackend

// newParam creates a named parameter from a float32 slice.
func newParam(t *testing.T, name string, data []float32) *nn.Parameter[Backend] {
	t.Helper()
	backend := cpu.New()
	x, err := tensor.FromSlice(data, tensor.Shape{len(data)}, backend)
	require.NoError(t, err)
	return nn.NewParameter(name, x)
}

// newGrad creates a gradient buffer from a float32 slice.
func newGrad(t *testing.T, data []float32) *tensor.RawTensor {
	t.Helper()
	grad, err := tensor.NewRaw(tensor.Shape{len(data)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(grad.AsFloat32(), data)
	return grad
}

func TestRMSprop_EmptyParameterList(t *testing.T) {
	backend := cpu.New()

	_, err := optim.NewRMSprop(nil, optim.RMSpropConfig{}, backend)
	require.ErrorIs(t, err, optim.ErrEmptyParameterSet)

	_, err = optim.NewRMSprop([]*nn.Parameter[Backend]{}, optim.RMSpropConfig{}, backend)
	require.ErrorIs(t, err, optim.ErrEmptyParameterSet)
}

func TestRMSprop_GradientCountMismatch(t *testing.T) {
	backend := cpu.New()
	p1 := newParam(t, "p1", []float32{1.0})
	p2 := newParam(t, "p2", []float32{2.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p1, p2}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	// One gradient for two parameters: the call must fail before any
	// parameter is touched, even though slot 0 has a valid gradient.
	err = updater.Step([]*tensor.RawTensor{newGrad(t, []float32{1.0})})
	require.ErrorIs(t, err, optim.ErrGradientCountMismatch)

	assert.Equal(t, float32(1.0), p1.Tensor().Data()[0])
	assert.Equal(t, float32(2.0), p2.Tensor().Data()[0])
	assert.Equal(t, int64(0), updater.StepCount(p1))
	assert.Equal(t, int64(0), updater.StepCount(p2))
}

func TestRMSprop_AbsentGradientIsNoOp(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.5})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, updater.Step([]*tensor.RawTensor{nil}))
	}

	assert.Equal(t, float32(1.5), p.Tensor().Data()[0])
	assert.Equal(t, int64(0), updater.StepCount(p))
}

// TestRMSprop_SingleStep checks the recurrence against hand-computed values:
// p=1, g=2, lr=0.01, alpha=0.99 gives square_avg=0.04, avg≈0.2, p'≈0.9.
func TestRMSprop_SingleStep(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{
		LR:    0.01,
		Alpha: 0.99,
		Eps:   1e-8,
	}, backend)
	require.NoError(t, err)

	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))

	// square_avg = 0.01 * 4 = 0.04
	// avg = sqrt(0.04) + 1e-8 ≈ 0.2
	// p' = 1.0 - 0.01 * 2.0 / 0.2 = 0.9
	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-6)
	assert.Equal(t, int64(1), updater.StepCount(p))
}

// TestRMSprop_NotIdempotent asserts that repeating the same gradient moves
// the parameter by a different delta: the running average accumulates.
func TestRMSprop_NotIdempotent(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	afterFirst := p.Tensor().Data()[0]
	delta1 := 1.0 - afterFirst

	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	afterSecond := p.Tensor().Data()[0]
	delta2 := afterFirst - afterSecond

	// Second step: square_avg = 0.99*0.04 + 0.01*4 = 0.0796
	// avg ≈ 0.282135, delta ≈ 0.01*2/0.282135 ≈ 0.070888
	assert.InDelta(t, 0.1, delta1, 1e-6)
	assert.InDelta(t, 0.070888, delta2, 1e-4)
	assert.NotEqual(t, delta1, delta2)
}

func TestRMSprop_Momentum(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{
		LR:       0.01,
		Momentum: 0.9,
	}, backend)
	require.NoError(t, err)

	// Step 1: avg ≈ 0.2, buf = 0.9*0 + 2/0.2 = 10, p' = 1 - 0.01*10 = 0.9
	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-5)

	// Step 2: square_avg = 0.0796, avg ≈ 0.282135
	// buf = 0.9*10 + 2/0.282135 ≈ 16.08882
	// p'' = 0.9 - 0.1608882 ≈ 0.739112
	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	assert.InDelta(t, 0.739112, p.Tensor().Data()[0], 1e-4)
}

func TestRMSprop_Centered(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{
		LR:       0.01,
		Centered: true,
	}, backend)
	require.NoError(t, err)

	// square_avg = 0.04, grad_avg = 0.02
	// avg = sqrt(0.04 - 0.0004) + 1e-8 ≈ 0.198997
	// p' = 1 - 0.01*2/0.198997 ≈ 0.899496
	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	assert.InDelta(t, 0.899496, p.Tensor().Data()[0], 1e-5)
}

func TestRMSprop_WeightDecay(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})
	grad := newGrad(t, []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{
		LR:          0.01,
		WeightDecay: 0.1,
	}, backend)
	require.NoError(t, err)

	// Effective gradient = 1.0 + 0.1*1.0 = 1.1
	// square_avg = 0.01 * 1.21 = 0.0121, avg ≈ 0.11
	// p' = 1 - 0.01*1.1/0.11 = 0.9
	require.NoError(t, updater.Step([]*tensor.RawTensor{grad}))
	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-5)

	// The caller's gradient buffer is a local adjustment, never mutated.
	assert.Equal(t, float32(1.0), grad.AsFloat32()[0])
}

// TestRMSprop_StepCount verifies the counter advances only on
// gradient-present calls, per parameter.
func TestRMSprop_StepCount(t *testing.T) {
	backend := cpu.New()
	p1 := newParam(t, "p1", []float32{1.0})
	p2 := newParam(t, "p2", []float32{2.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p1, p2}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		grads := []*tensor.RawTensor{newGrad(t, []float32{0.5}), nil}
		if i%2 == 0 {
			grads[1] = newGrad(t, []float32{0.5})
		}
		require.NoError(t, updater.Step(grads))
	}

	assert.Equal(t, int64(4), updater.StepCount(p1))
	assert.Equal(t, int64(2), updater.StepCount(p2))
}

func TestRMSprop_MixedNilSlots(t *testing.T) {
	backend := cpu.New()
	p1 := newParam(t, "p1", []float32{1.0, 2.0})
	p2 := newParam(t, "p2", []float32{3.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p1, p2}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	require.NoError(t, updater.Step([]*tensor.RawTensor{
		newGrad(t, []float32{2.0, 2.0}),
		nil,
	}))

	// p1 updated elementwise, p2 untouched.
	assert.InDelta(t, 0.9, p1.Tensor().Data()[0], 1e-6)
	assert.InDelta(t, 1.9, p1.Tensor().Data()[1], 1e-6)
	assert.Equal(t, float32(3.0), p2.Tensor().Data()[0])
}

func TestRMSprop_GetSetLR(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{LR: 0.01}, backend)
	require.NoError(t, err)

	assert.Equal(t, float32(0.01), updater.GetLR())

	updater.SetLR(0.001)
	assert.Equal(t, float32(0.001), updater.GetLR())
}

func TestRMSprop_Defaults(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	// Zero config falls back to lr=0.01, alpha=0.99, eps=1e-8: same
	// numbers as the explicit-config single-step test.
	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)
	assert.Equal(t, float32(0.01), updater.GetLR())

	require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0})}))
	assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-6)
}

// TestRMSprop_Convergence minimizes f(x) = x² from x = 3.
func TestRMSprop_Convergence(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "x", []float32{3.0})

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{LR: 0.01}, backend)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		// df/dx = 2x
		x := p.Tensor().Data()[0]
		require.NoError(t, updater.Step([]*tensor.RawTensor{newGrad(t, []float32{2.0 * x})}))
	}

	final := p.Tensor().Data()[0]
	if math.Abs(float64(final)) > 0.1 {
		t.Errorf("RMSprop convergence: x = %f, expected close to 0", final)
	}
}

// TestRMSprop_ManyParameters exercises the parallel fan-out path with a
// parameter count above the sequential-fallback threshold.
func TestRMSprop_ManyParameters(t *testing.T) {
	backend := cpu.New()

	const n = 256
	params := make([]*nn.Parameter[Backend], n)
	for i := range params {
		params[i] = newParam(t, "p", []float32{1.0})
	}

	updater, err := optim.NewRMSprop(params, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	grads := make([]*tensor.RawTensor, n)
	for i := range grads {
		grads[i] = newGrad(t, []float32{2.0})
	}
	require.NoError(t, updater.Step(grads))

	for i, p := range params {
		assert.InDelta(t, 0.9, p.Tensor().Data()[0], 1e-6, "parameter %d", i)
	}
}

func TestRMSprop_ZeroGrad(t *testing.T) {
	backend := cpu.New()
	p := newParam(t, "p", []float32{1.0})

	g, err := tensor.FromSlice([]float32{5.0}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	p.SetGrad(g)
	require.NotNil(t, p.Grad())

	updater, err := optim.NewRMSprop([]*nn.Parameter[Backend]{p}, optim.RMSpropConfig{}, backend)
	require.NoError(t, err)

	updater.ZeroGrad()
	assert.Nil(t, p.Grad())
}
