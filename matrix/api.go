// SPDX-License-Identifier: MIT
// Package matrix - public API facades and constructors.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "fmt"

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewOnes returns a rows×cols matrix filled with ones.
func NewOnes(rows, cols int) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = 1
	}

	return m, nil
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1
	}

	return I, nil
}

// NewDiagonal returns the square matrix with d on its diagonal.
func NewDiagonal(d *Vector) (*Dense, error) {
	if d == nil {
		return nil, matrixErrorf("NewDiagonal", ErrNilMatrix)
	}
	n := d.Len()
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf("NewDiagonal", err)
	}
	for i, v := range d.data {
		m.data[i*n+i] = v
	}

	return m, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	return NewDense(m.Rows(), m.Cols())
}

// DenseCopy materializes any Matrix into a fresh *Dense.
//
// Behavior highlights:
//   - *Dense and *Block copy the flat buffer row by row.
//   - Other implementations are read through At in i→j order.
//
// Complexity: O(r*c).
func DenseCopy(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("DenseCopy", err)
	}
	switch t := m.(type) {
	case *Dense:
		return t.clone(), nil
	case *Block:
		return t.Dense()
	case *Mat2:
		return t.Dense(), nil
	case *Mat3:
		return t.Dense(), nil
	}

	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("DenseCopy", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("DenseCopy: %w", err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// ---------- Comparison ----------

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Shapes must match (ErrDimensionMismatch otherwise).
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ---------- Linear Algebra facades ----------

// Product is an alias for Mul.
func Product(a, b Matrix) (*Dense, error) { return Mul(a, b) }

// T is an alias for Transpose.
func T(m Matrix) (*Dense, error) { return Transpose(m) }
