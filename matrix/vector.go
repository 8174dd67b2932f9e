// SPDX-License-Identifier: MIT

// Package matrix - Vector: owning, dynamically sized float64 sequence.
//
// Purpose:
//   - Value semantics: constructors copy their input, arithmetic returns new
//     vectors, Clone is a deep copy.
//   - At/Set are bounds-checked (ErrOutOfRange); Elem is the unchecked path.
//   - Length mismatches surface as ErrDimensionMismatch, never truncation.
//
// Complexity quicksheet:
//   - At/Set/Elem: O(1); Add/Sub/Scale/Dot/Norm: O(n); Cross: O(1).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	opVecAdd       = "Vector.Add"
	opVecSub       = "Vector.Sub"
	opVecDot       = "Vector.Dot"
	opVecCross     = "Vector.Cross"
	opVecNormalize = "Vector.Normalize"
)

// Vector is a dense float64 vector.
type Vector struct {
	data []float64
}

// NewVector returns a zero vector of length n (n > 0).
func NewVector(n int) (*Vector, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Vector{data: make([]float64, n)}, nil
}

// VectorOf copies vals into a new vector. An empty argument list yields a
// zero-length vector.
func VectorOf(vals ...float64) *Vector {
	data := make([]float64, len(vals))
	copy(data, vals)

	return &Vector{data: data}
}

// ZeroVector is NewVector without the error; n <= 0 yields an empty vector.
func ZeroVector(n int) *Vector {
	if n < 0 {
		n = 0
	}

	return &Vector{data: make([]float64, n)}
}

// OnesVector returns a vector of n ones.
func OnesVector(n int) *Vector {
	v := ZeroVector(n)
	for i := range v.data {
		v.data[i] = 1
	}

	return v
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.data) }

// At returns element i or ErrOutOfRange.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("Vector.At(%d) len %d: %w", i, len(v.data), ErrOutOfRange)
	}

	return v.data[i], nil
}

// Elem is the unchecked accessor.
func (v *Vector) Elem(i int) float64 { return v.data[i] }

// Set stores x at i or returns ErrOutOfRange. Vectors carry no NaN/Inf
// policy: they hold intermediate results, and the check happens when values
// enter a Dense (Set, SetRow, SetCol).
func (v *Vector) Set(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("Vector.Set(%d) len %d: %w", i, len(v.data), ErrOutOfRange)
	}
	v.data[i] = x

	return nil
}

// Raw returns a copy of the elements.
func (v *Vector) Raw() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)

	return out
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector { return VectorOf(v.data...) }

// Resize changes the length in place, keeping the common prefix and
// zero-filling new elements.
func (v *Vector) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("Vector.Resize(%d): %w", n, ErrInvalidDimensions)
	}
	buf := make([]float64, n)
	copy(buf, v.data)
	v.data = buf

	return nil
}

// sameLen validates operand presence and equal length.
func (v *Vector) sameLen(op string, w *Vector) error {
	if w == nil {
		return matrixErrorf(op, ErrNilMatrix)
	}
	if len(v.data) != len(w.data) {
		return fmt.Errorf("%s: len %d vs %d: %w", op, len(v.data), len(w.data), ErrDimensionMismatch)
	}

	return nil
}

// Add returns v + w.
func (v *Vector) Add(w *Vector) (*Vector, error) {
	if err := v.sameLen(opVecAdd, w); err != nil {
		return nil, err
	}
	out := ZeroVector(len(v.data))
	for i := range v.data {
		out.data[i] = v.data[i] + w.data[i]
	}

	return out, nil
}

// Sub returns v - w.
func (v *Vector) Sub(w *Vector) (*Vector, error) {
	if err := v.sameLen(opVecSub, w); err != nil {
		return nil, err
	}
	out := ZeroVector(len(v.data))
	for i := range v.data {
		out.data[i] = v.data[i] - w.data[i]
	}

	return out, nil
}

// Scale returns alpha * v.
func (v *Vector) Scale(alpha float64) *Vector {
	out := ZeroVector(len(v.data))
	for i, x := range v.data {
		out.data[i] = alpha * x
	}

	return out
}

// Neg returns -v.
func (v *Vector) Neg() *Vector { return v.Scale(-1) }

// Dot returns Σ v[i]*w[i].
func (v *Vector) Dot(w *Vector) (float64, error) {
	if err := v.sameLen(opVecDot, w); err != nil {
		return 0, err
	}
	var s float64
	for i := range v.data {
		s += v.data[i] * w.data[i]
	}

	return s, nil
}

// Cross returns the 3D cross product v × w.
// Both operands must have length 3.
func (v *Vector) Cross(w *Vector) (*Vector, error) {
	if err := v.sameLen(opVecCross, w); err != nil {
		return nil, err
	}
	if len(v.data) != 3 {
		return nil, fmt.Errorf("%s: len %d, want 3: %w", opVecCross, len(v.data), ErrDimensionMismatch)
	}
	a, b := v.data, w.data

	return VectorOf(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	), nil
}

// Cross2 returns the z component of the 2D cross product (v.x*w.y - v.y*w.x).
func (v *Vector) Cross2(w *Vector) (float64, error) {
	if err := v.sameLen(opVecCross, w); err != nil {
		return 0, err
	}
	if len(v.data) != 2 {
		return 0, fmt.Errorf("%s: len %d, want 2: %w", opVecCross, len(v.data), ErrDimensionMismatch)
	}

	return v.data[0]*w.data[1] - v.data[1]*w.data[0], nil
}

// Norm returns the Euclidean length (module) of v.
func (v *Vector) Norm() float64 {
	var s float64
	for _, x := range v.data {
		s += x * x
	}

	return math.Sqrt(s)
}

// Normalize returns v / |v|.
func (v *Vector) Normalize() (*Vector, error) {
	n := v.Norm()
	if n == NormZero {
		return nil, matrixErrorf(opVecNormalize, ErrZeroVector)
	}

	return v.Scale(1 / n), nil
}

// Equal reports exact element-wise equality with identical length.
func (v *Vector) Equal(w *Vector) bool {
	if w == nil || len(v.data) != len(w.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != w.data[i] {
			return false
		}
	}

	return true
}

// AllClose checks |v-w| <= atol + rtol*|w| element-wise.
func (v *Vector) AllClose(w *Vector, rtol, atol float64) bool {
	if w == nil || len(v.data) != len(w.data) {
		return false
	}
	for i := range v.data {
		if math.Abs(v.data[i]-w.data[i]) > atol+rtol*math.Abs(w.data[i]) {
			return false
		}
	}

	return true
}

// String renders the vector as "[a, b, c]".
func (v *Vector) String() string {
	var b strings.Builder
	b.WriteString(_fmtRowOpen)
	for i, x := range v.data {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		b.WriteString(fmt.Sprintf("%g", x))
	}
	b.WriteString("]")

	return b.String()
}
