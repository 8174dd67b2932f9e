// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"

	"github.com/tidop/geomath/decomp"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

// designRCond is the singular-value cut-off relative to the largest one.
// Geodetic coordinates put the condition number of an affine design near
// 1e9; rounding noise of a truly lost rank sits near 1e-16.
const designRCond = 1e-12

// checkPair validates a correspondence set before any numeric work.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (shapes differ).
//   - transform.ErrInvalidDimension when the column count is not in dims.
//   - ErrTooFewPoints when src has fewer than minPts rows.
func checkPair(op string, src, dst matrix.Matrix, minPts int, dims ...int) error {
	if err := matrix.ValidateNotNil(src); err != nil {
		return fmt.Errorf("%s: src: %w", op, err)
	}
	if err := matrix.ValidateNotNil(dst); err != nil {
		return fmt.Errorf("%s: dst: %w", op, err)
	}
	if src.Rows() != dst.Rows() || src.Cols() != dst.Cols() {
		return fmt.Errorf("%s: src %dx%d vs dst %dx%d: %w",
			op, src.Rows(), src.Cols(), dst.Rows(), dst.Cols(), matrix.ErrDimensionMismatch)
	}
	supported := false
	for _, d := range dims {
		if src.Cols() == d {
			supported = true
		}
	}
	if !supported {
		return fmt.Errorf("%s: dim %d: %w", op, src.Cols(), transform.ErrInvalidDimension)
	}
	if src.Rows() < minPts {
		return fmt.Errorf("%s: %d points, need %d: %w", op, src.Rows(), minPts, ErrTooFewPoints)
	}

	return nil
}

// design accumulates the rows of A·x = b.
type design struct {
	a    *matrix.Dense
	b    *matrix.Vector
	next int
}

func newDesign(rows, unknowns int) *design {
	a, _ := matrix.NewDenseWithOptions(rows, unknowns, matrix.WithNoValidateNaNInf())
	return &design{a: a, b: matrix.ZeroVector(rows)}
}

// add appends one equation coef·x = rhs.
func (d *design) add(rhs float64, coef ...float64) {
	for j, c := range coef {
		_ = d.a.Set(d.next, j, c)
	}
	_ = d.b.Set(d.next, rhs)
	d.next++
}

// solve returns the least-squares solution and the factorization it used.
func (d *design) solve(op string) (*matrix.Vector, *decomp.SVD, error) {
	x, s, err := decomp.LeastSquares(d.a, d.b, decomp.WithRelativeThreshold(designRCond))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return x, s, nil
}

// pairs copies src and dst into Dense for unchecked element access.
func pairs(src, dst matrix.Matrix) (s, d *matrix.Dense, err error) {
	if s, err = matrix.DenseCopy(src); err != nil {
		return nil, nil, err
	}
	if d, err = matrix.DenseCopy(dst); err != nil {
		return nil, nil, err
	}

	return s, d, nil
}
