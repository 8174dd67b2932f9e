// SPDX-License-Identifier: MIT

// Package matrix - fixed-size 2×2 and 3×3 matrices.
//
// Mat2 and Mat3 are array-backed value types: assignment copies, no heap
// allocation, no shape errors on the arithmetic. They satisfy Matrix through
// pointer receivers so every kernel accepts them next to *Dense.

package matrix

import "fmt"

// Mat2 is a row-major 2×2 matrix.
type Mat2 [2][2]float64

// Mat3 is a row-major 3×3 matrix.
type Mat3 [3][3]float64

var (
	_ Matrix = (*Mat2)(nil)
	_ Matrix = (*Mat3)(nil)
)

// Identity2 returns the 2×2 identity.
func Identity2() Mat2 { return Mat2{{1, 0}, {0, 1}} }

// Identity3 returns the 3×3 identity.
func Identity3() Mat3 { return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} }

func (m *Mat2) Rows() int { return 2 }
func (m *Mat2) Cols() int { return 2 }

func (m *Mat2) At(i, j int) (float64, error) {
	if i < 0 || i > 1 || j < 0 || j > 1 {
		return 0, fmt.Errorf("Mat2.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m[i][j], nil
}

func (m *Mat2) Set(i, j int, v float64) error {
	if i < 0 || i > 1 || j < 0 || j > 1 {
		return fmt.Errorf("Mat2.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	m[i][j] = v

	return nil
}

// Clone returns a copy as a *Mat2.
func (m *Mat2) Clone() Matrix {
	cp := *m

	return &cp
}

// Mul returns m·o.
func (m Mat2) Mul(o Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}

	return out
}

// MulVec returns m·(x, y).
func (m Mat2) MulVec(x, y float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*y, m[1][0]*x + m[1][1]*y
}

// T returns the transpose.
func (m Mat2) T() Mat2 { return Mat2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}} }

// Det returns the determinant.
func (m Mat2) Det() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }

// Dense copies m into a new 2×2 Dense.
func (m Mat2) Dense() *Dense {
	return &Dense{r: 2, c: 2, data: []float64{m[0][0], m[0][1], m[1][0], m[1][1]}, validateNaNInf: DefaultValidateNaNInf}
}

func (m *Mat3) Rows() int { return 3 }
func (m *Mat3) Cols() int { return 3 }

func (m *Mat3) At(i, j int) (float64, error) {
	if i < 0 || i > 2 || j < 0 || j > 2 {
		return 0, fmt.Errorf("Mat3.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m[i][j], nil
}

func (m *Mat3) Set(i, j int, v float64) error {
	if i < 0 || i > 2 || j < 0 || j > 2 {
		return fmt.Errorf("Mat3.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	m[i][j] = v

	return nil
}

// Clone returns a copy as a *Mat3.
func (m *Mat3) Clone() Matrix {
	cp := *m

	return &cp
}

// Mul returns m·o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}

	return out
}

// MulVec returns m·(x, y, z).
func (m Mat3) MulVec(x, y, z float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

// T returns the transpose.
func (m Mat3) T() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}

	return out
}

// Det returns the determinant (cofactor expansion along row 0).
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Dense copies m into a new 3×3 Dense.
func (m Mat3) Dense() *Dense {
	d := &Dense{r: 3, c: 3, data: make([]float64, 9), validateNaNInf: DefaultValidateNaNInf}
	for i := 0; i < 3; i++ {
		copy(d.data[i*3:i*3+3], m[i][:])
	}

	return d
}
