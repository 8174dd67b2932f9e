// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scaling, matrix-vector product and LU-based inversion.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - Every kernel has a *Dense fast path over the flat buffer and an
//     interface fallback through At/Set with the same traversal order.
//   - Results are always freshly allocated *Dense values; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// PivotTolerance scales the singularity test of LU/Inverse/Determinant: a
// pivot with |p| <= n·PivotTolerance·max|a_ij| counts as zero.
const PivotTolerance = 1e-14

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opMulVec      = "MulVec"
	opInverse     = "Inverse"
	opLU          = "LU"
	opDeterminant = "Determinant"
	opTrace       = "Trace"
	opDiagonal    = "Diagonal"
	opIsIdentity  = "IsIdentity"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// shapeErrorf reports an operand shape mismatch with both shapes in the message.
func shapeErrorf(tag string, a, b Matrix, err error) error {
	return fmt.Errorf("%s: %dx%d vs %dx%d: %w", tag, a.Rows(), a.Cols(), b.Rows(), b.Cols(), err)
}

// addSub is the shared kernel behind Add and Sub: res = a + sign*b.
//
// Implementation:
//   - Stage 1: validate non-nil operands with identical shapes.
//   - Stage 2: flat loop when both are *Dense; i→j At/Set loop otherwise.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, shapeErrorf(opTag, a, b, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B.
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product C = A·B (A is r×k, B is k×c).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (a.Cols == b.Rows).
//   - Stage 2: *Dense fast path in i-k-j order over flat buffers.
//   - Stage 3: interface fallback in i-j-k order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		if a == nil || b == nil {
			return nil, matrixErrorf(opMul, err)
		}

		return nil, shapeErrorf(opMul, a, b, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return res, nil
}

// Transpose returns a new c×r matrix with rows and columns swapped.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			base := i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[base+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns alpha·m.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := DenseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// MulVec computes y = m·x for an r×c matrix and a vector of length c.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MulVec(m Matrix, x *Vector) (*Vector, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMulVec, err)
	}
	if x == nil {
		return nil, matrixErrorf(opMulVec, ErrNilMatrix)
	}
	if err := ValidateVecLen(x.data, m.Cols()); err != nil {
		return nil, fmt.Errorf("%s: %dx%d by len %d: %w", opMulVec, m.Rows(), m.Cols(), x.Len(), err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := ZeroVector(rows)
	var i, j int
	var sum, v float64
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			sum = ZeroSum
			base := i * cols
			for j = 0; j < cols; j++ {
				sum += d.data[base+j] * x.data[j]
			}
			y.data[i] = sum
		}

		return y, nil
	}

	var err error
	for i = 0; i < rows; i++ {
		sum = ZeroSum
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMulVec, err)
			}
			sum += v * x.data[j]
		}
		y.data[i] = sum
	}

	return y, nil
}

// luFactor runs Doolittle elimination with partial (row) pivoting on a copy
// of m. The returned flat buffer packs L below the diagonal (unit diagonal
// implied) and U on and above it; perm[i] is the source row of row i.
// A column whose best pivot is at or below n·PivotTolerance·max|a_ij| is
// rounding noise: it sets singular and elimination skips it, so Determinant
// can still report 0.
func luFactor(m Matrix) (lu []float64, perm []int, sign float64, singular bool, err error) {
	d, err := DenseCopy(m)
	if err != nil {
		return nil, nil, 0, false, err
	}
	n := d.r
	lu = d.data
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign = 1

	var i, j, k, p int
	var maxAbs, pivot, f, scale float64
	for _, v := range lu {
		scale = math.Max(scale, math.Abs(v))
	}
	tol := float64(n) * PivotTolerance * scale
	for k = 0; k < n; k++ {
		// Stage 1: pick the largest |a(i,k)| for i >= k.
		p, maxAbs = k, math.Abs(lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if a := math.Abs(lu[i*n+k]); a > maxAbs {
				p, maxAbs = i, a
			}
		}
		if maxAbs == ZeroPivot || maxAbs <= tol {
			singular = true

			continue
		}
		// Stage 2: swap rows k and p.
		if p != k {
			for j = 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}
		// Stage 3: eliminate below the pivot, storing multipliers in place.
		pivot = lu[k*n+k]
		for i = k + 1; i < n; i++ {
			f = lu[i*n+k] / pivot
			lu[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				lu[i*n+j] -= f * lu[k*n+j]
			}
		}
	}

	return lu, perm, sign, singular, nil
}

// LU computes P·A = L·U with partial pivoting.
//
// Returns:
//   - L: unit lower triangular.
//   - U: upper triangular.
//   - perm: row permutation, row i of P·A is row perm[i] of A.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (no usable pivot in some column).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(m Matrix) (L, U *Dense, perm []int, err error) {
	if err = ValidateNotNil(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	if err = ValidateSquare(m); err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	lu, perm, _, singular, err := luFactor(m)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	if singular {
		return nil, nil, nil, matrixErrorf(opLU, ErrSingular)
	}

	n := m.Rows()
	L, _ = NewDense(n, n)
	U, _ = NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case j < i:
				L.data[i*n+j] = lu[i*n+j]
			case j == i:
				L.data[i*n+j] = 1
				U.data[i*n+j] = lu[i*n+j]
			default:
				U.data[i*n+j] = lu[i*n+j]
			}
		}
	}

	return L, U, perm, nil
}

// Inverse returns A⁻¹ via pivoted LU and n triangular solves.
//
// Implementation:
//   - Stage 1: validate square input and factor with partial pivoting.
//   - Stage 2: for each column e_col, forward substitution on L then
//     backward substitution on U, applying the row permutation.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	lu, perm, _, singular, err := luFactor(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if singular {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	n := m.Rows()
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n)
		x         = make([]float64, n)
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col.
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += lu[i*n+k] * y[k]
			}
			if perm[i] == col {
				y[i] = 1 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y.
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += lu[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / lu[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Determinant returns det(A) from the pivoted LU factors (0 when singular).
func Determinant(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	lu, _, sign, singular, err := luFactor(m)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	if singular {
		return 0, nil
	}
	n := m.Rows()
	det := sign
	for i := 0; i < n; i++ {
		det *= lu[i*n+i]
	}

	return det, nil
}

// Trace returns Σ A[i,i] of a square matrix.
func Trace(m Matrix) (float64, error) {
	diag, err := Diagonal(m)
	if err != nil {
		return 0, matrixErrorf(opTrace, err)
	}
	if m.Rows() != m.Cols() {
		return 0, matrixErrorf(opTrace, ErrNonSquare)
	}
	var s float64
	for _, v := range diag.data {
		s += v
	}

	return s, nil
}

// Diagonal returns the main diagonal (length min(r,c)).
func Diagonal(m Matrix) (*Vector, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	n := min(m.Rows(), m.Cols())
	out := ZeroVector(n)
	for i := 0; i < n; i++ {
		v, err := m.At(i, i)
		if err != nil {
			return nil, matrixErrorf(opDiagonal, err)
		}
		out.data[i] = v
	}

	return out, nil
}

// IsIdentity reports whether m is square and within eps of the identity.
// The tolerance comes from WithEpsilon (DefaultEpsilon otherwise).
func IsIdentity(m Matrix, opts ...Option) (bool, error) {
	if err := ValidateNotNil(m); err != nil {
		return false, matrixErrorf(opIsIdentity, err)
	}
	if m.Rows() != m.Cols() {
		return false, nil
	}
	eps := gatherOptions(opts...).eps
	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return false, matrixErrorf(opIsIdentity, err)
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(v-want) > eps {
				return false, nil
			}
		}
	}

	return true, nil
}
