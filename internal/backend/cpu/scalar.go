package cpu

import (
	"fmt"

	"github.com/Cadence-TIP-AI/pytorch/internal/parallel"
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar's Go type must match the tensor's dtype.

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("addScalar", x)

	switch x.DType() {
	case tensor.Float32:
		s := scalar.(float32)
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] + s
		}, cpu.parallel)
	case tensor.Float64:
		s := scalar.(float64)
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] + s
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("mulScalar", x)

	switch x.DType() {
	case tensor.Float32:
		s := scalar.(float32)
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] * s
		}, cpu.parallel)
	case tensor.Float64:
		s := scalar.(float64)
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] * s
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)
