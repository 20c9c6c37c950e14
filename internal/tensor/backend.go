package tensor

// Backend defines the interface a compute backend must implement to
// serve the optimizer: elementwise arithmetic over same-shaped buffers
// plus scalar variants. Backends allocate result tensors on their own
// device; inputs are never mutated.
//
// Implementations:
//   - CPU: pure Go kernels (internal/backend/cpu)
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Device returns the compute device new tensors are allocated on.
	Device() Device

	// Element-wise binary operations. Operands must share shape and dtype.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise math operations.
	Sqrt(x *RawTensor) *RawTensor   // square root
	Square(x *RawTensor) *RawTensor // x * x

	// Scalar operations (element-wise with a scalar).
	AddScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
}
