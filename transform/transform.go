// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/tidop/geomath/matrix"
)

const (
	opApply        = "Apply"
	opApplyMatrix  = "ApplyMatrix"
	opCompose      = "Compose"
	opAsAffine     = "AsAffine"
	opInverse      = "Inverse"
	opNewAffine    = "NewAffine"
	opNewRotation  = "NewRotation"
	opNewScaling   = "NewScaling"
	opNewHelmert   = "NewHelmert"
	opNewTranslate = "NewTranslation"
)

// Transform is the common surface of every geometric transform in the package.
//
// Points are column vectors of length Dim(); point sets are N×Dim matrices
// with one point per row.
type Transform interface {
	// Dim returns 2 or 3.
	Dim() int
	// Apply maps a single point.
	Apply(p *matrix.Vector) (*matrix.Vector, error)
	// ApplyMatrix maps every row of pts and returns a new N×Dim matrix.
	ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error)
	// Homogeneous returns the (Dim+1)×(Dim+1) matrix with last row [0 … 0 1].
	Homogeneous() *matrix.Dense
}

// transformErrorf wraps err with an operation tag.
func transformErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkDim returns ErrInvalidDimension unless d is 2 or 3.
func checkDim(d int) error {
	if d != 2 && d != 3 {
		return fmt.Errorf("dim %d: %w", d, ErrInvalidDimension)
	}

	return nil
}

// applyPoint computes lin·p + t.
func applyPoint(dim int, lin *matrix.Dense, t *matrix.Vector, p *matrix.Vector) (*matrix.Vector, error) {
	if p == nil {
		return nil, transformErrorf(opApply, matrix.ErrNilMatrix)
	}
	if p.Len() != dim {
		return nil, fmt.Errorf("%s: point len %d, want %d: %w", opApply, p.Len(), dim, matrix.ErrDimensionMismatch)
	}
	y, err := matrix.MulVec(lin, p)
	if err != nil {
		return nil, transformErrorf(opApply, err)
	}
	for i := 0; i < dim; i++ {
		_ = y.Set(i, y.Elem(i)+t.Elem(i))
	}

	return y, nil
}

// applyRows maps each row x of pts to lin·x + t.
//
// Implementation:
//   - Stage 1: out = pts·linᵀ (one matrix product for the whole set).
//   - Stage 2: add t to every row in place.
//
// Complexity: O(N·dim²).
func applyRows(dim int, lin *matrix.Dense, t *matrix.Vector, pts matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateColumns(pts, dim); err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}
	lt, err := matrix.Transpose(lin)
	if err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}
	out, err := matrix.Mul(pts, lt)
	if err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < dim; j++ {
			if err = out.Set(i, j, out.Elem(i, j)+t.Elem(j)); err != nil {
				return nil, transformErrorf(opApplyMatrix, err)
			}
		}
	}

	return out, nil
}

// homogeneous assembles [[lin, t], [0, 1]].
func homogeneous(dim int, lin *matrix.Dense, t *matrix.Vector) *matrix.Dense {
	h, _ := matrix.NewIdentity(dim + 1)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			_ = h.Set(i, j, lin.Elem(i, j))
		}
		_ = h.Set(i, dim, t.Elem(i))
	}

	return h
}

// splitHomogeneous extracts the linear block and translation of a
// (dim+1)×(dim+1) or dim×(dim+1) matrix.
func splitHomogeneous(m matrix.Matrix) (dim int, lin *matrix.Dense, t *matrix.Vector, err error) {
	if err = matrix.ValidateNotNil(m); err != nil {
		return 0, nil, nil, err
	}
	dim = m.Cols() - 1
	if err = checkDim(dim); err != nil {
		return 0, nil, nil, err
	}
	if m.Rows() != dim && m.Rows() != dim+1 {
		return 0, nil, nil, fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}
	lin, _ = matrix.NewDense(dim, dim)
	t = matrix.ZeroVector(dim)
	var v float64
	for i := 0; i < dim; i++ {
		for j := 0; j <= dim; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, nil, nil, err
			}
			if j == dim {
				_ = t.Set(i, v)
				continue
			}
			if err = lin.Set(i, j, v); err != nil {
				return 0, nil, nil, err
			}
		}
	}

	return dim, lin, t, nil
}

// Compose returns the affine transform equivalent to applying b first and a
// second: H = H_a · H_b.
//
// Errors:
//   - ErrNilTransform, matrix.ErrDimensionMismatch (a.Dim() != b.Dim()).
func Compose(a, b Transform) (*Affine, error) {
	if a == nil || b == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	if a.Dim() != b.Dim() {
		return nil, fmt.Errorf("%s: dim %d vs %d: %w", opCompose, a.Dim(), b.Dim(), matrix.ErrDimensionMismatch)
	}
	h, err := matrix.Mul(a.Homogeneous(), b.Homogeneous())
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}

	return NewAffine(h)
}

// AsAffine returns t as a general affine transform.
func AsAffine(t Transform) (*Affine, error) {
	if t == nil {
		return nil, transformErrorf(opAsAffine, ErrNilTransform)
	}
	if a, ok := t.(*Affine); ok {
		return a.clone(), nil
	}

	return NewAffine(t.Homogeneous())
}

// Invert returns the inverse of any transform as an Affine.
func Invert(t Transform) (*Affine, error) {
	a, err := AsAffine(t)
	if err != nil {
		return nil, err
	}

	return a.Inverse()
}
