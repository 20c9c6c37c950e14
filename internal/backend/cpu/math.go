package cpu

import (
	"fmt"
	"math"

	"github.com/Cadence-TIP-AI/pytorch/internal/parallel"
	"github.com/Cadence-TIP-AI/pytorch/internal/tensor"
)

// Sqrt computes the element-wise square root: sqrt(x).
// Negative inputs produce NaN, matching IEEE semantics; no clamping.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sqrt", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(src), func(i int) {
			dst[i] = float32(math.Sqrt(float64(src[i])))
		}, cpu.parallel)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) {
			dst[i] = math.Sqrt(src[i])
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s", x.DType()))
	}

	return result
}

// Square computes element-wise x * x.
func (cpu *CPUBackend) Square(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("square", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] * src[i]
		}, cpu.parallel)
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		parallel.For(len(src), func(i int) {
			dst[i] = src[i] * src[i]
		}, cpu.parallel)
	default:
		panic(fmt.Sprintf("square: unsupported dtype %s", x.DType()))
	}

	return result
}
