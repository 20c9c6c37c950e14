// Package cpu implements the CPU backend with pure Go kernels.
package cpu

import (
	"fmt"

	"github.com/Cadence-TIP-AI/pytorch/internal/parallel"
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// Elementwise kernels fan out across goroutines for large buffers; small
// buffers stay on the calling goroutine (see internal/parallel).
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// checkBinary validates the same-shape, same-dtype contract for binary ops.
func checkBinary(op string, a, b *tensor.RawTensor) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch: %v vs %v", op, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
}

// newResult allocates a result tensor shaped like x.
func (cpu *CPUBackend) newResult(op string, x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// Add performs element-wise addition over same-shaped tensors.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("add", a, b)
	result := cpu.newResult("add", a)
	cpu.binary(result, a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
	return result
}

// Sub performs element-wise subtraction over same-shaped tensors.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("sub", a, b)
	result := cpu.newResult("sub", a)
	cpu.binary(result, a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
	return result
}

// Mul performs element-wise multiplication over same-shaped tensors.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("mul", a, b)
	result := cpu.newResult("mul", a)
	cpu.binary(result, a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
	return result
}

// Div performs element-wise division over same-shaped tensors.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkBinary("div", a, b)
	result := cpu.newResult("div", a)
	cpu.binary(result, a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
	return result
}

// binary dispatches an elementwise binary kernel on dtype.
func (cpu *CPUBackend) binary(result, a, b *tensor.RawTensor, f32 func(x, y float32) float32, f64 func(x, y float64) float64) {
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		parallel.For(len(dst), func(i int) {
			dst[i] = f32(x[i], y[i])
		}, cpu.parallel)
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		parallel.For(len(dst), func(i int) {
			dst[i] = f64(x[i], y[i])
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("binary op: unsupported dtype %s", a.DType()))
	}
}
