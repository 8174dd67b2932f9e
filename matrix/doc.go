// Package matrix offers the dense linear-algebra layer of geomath.
//
// The matrix package provides:
//
//   - Dense: dynamic-size row-major float64 matrix with bounds-checked
//     At/Set, row/column access and in-place Resize.
//   - Mat2 / Mat3: fixed-size array-backed matrices for rotations.
//   - Vector: owning float64 vector with arithmetic, dot/cross product, norm.
//   - Block: a non-owning window into a Dense (inclusive bounds) with
//     overlap-safe block-to-block assignment.
//   - Kernels: Add, Sub, Mul, Scale, Transpose, MulVec, pivoted LU,
//     Inverse, Determinant, Trace, column statistics.
//
// All shape errors are returned as wrapped sentinels (ErrDimensionMismatch,
// ErrOutOfRange, ...) and matched with errors.Is. Values are not safe for
// concurrent mutation.
//
// See example_test.go for usage patterns.
package matrix
