// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/tidop/geomath/matrix"
)

// Translation shifts every point by a fixed vector: p' = p + t.
type Translation struct {
	t *matrix.Vector
}

// NewTranslation2D returns the 2D translation (tx, ty).
func NewTranslation2D(tx, ty float64) *Translation {
	return &Translation{t: matrix.VectorOf(tx, ty)}
}

// NewTranslation3D returns the 3D translation (tx, ty, tz).
func NewTranslation3D(tx, ty, tz float64) *Translation {
	return &Translation{t: matrix.VectorOf(tx, ty, tz)}
}

// NewTranslation copies v; its length must be 2 or 3.
func NewTranslation(v *matrix.Vector) (*Translation, error) {
	if v == nil {
		return nil, transformErrorf(opNewTranslate, matrix.ErrNilMatrix)
	}
	if err := checkDim(v.Len()); err != nil {
		return nil, transformErrorf(opNewTranslate, err)
	}

	return &Translation{t: v.Clone()}, nil
}

// Dim implements Transform.
func (tr *Translation) Dim() int { return tr.t.Len() }

// Vector returns a copy of the translation vector.
func (tr *Translation) Vector() *matrix.Vector { return tr.t.Clone() }

// X returns the first component.
func (tr *Translation) X() float64 { return tr.t.Elem(0) }

// Y returns the second component.
func (tr *Translation) Y() float64 { return tr.t.Elem(1) }

// Z returns the third component, or ErrInvalidDimension for a 2D translation.
func (tr *Translation) Z() (float64, error) {
	if tr.Dim() != 3 {
		return 0, fmt.Errorf("Translation.Z: dim %d: %w", tr.Dim(), ErrInvalidDimension)
	}

	return tr.t.Elem(2), nil
}

// Apply implements Transform.
func (tr *Translation) Apply(p *matrix.Vector) (*matrix.Vector, error) {
	if p == nil {
		return nil, transformErrorf(opApply, matrix.ErrNilMatrix)
	}
	out, err := p.Add(tr.t)
	if err != nil {
		return nil, transformErrorf(opApply, err)
	}

	return out, nil
}

// ApplyMatrix implements Transform.
func (tr *Translation) ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateColumns(pts, tr.Dim()); err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}
	out, err := matrix.DenseCopy(pts)
	if err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}
	err = out.Apply(func(_, j int, v float64) float64 { return v + tr.t.Elem(j) })
	if err != nil {
		return nil, transformErrorf(opApplyMatrix, err)
	}

	return out, nil
}

// Homogeneous implements Transform.
func (tr *Translation) Homogeneous() *matrix.Dense {
	lin, _ := matrix.NewIdentity(tr.Dim())

	return homogeneous(tr.Dim(), lin, tr.t)
}

// Inverse returns the translation by -t.
func (tr *Translation) Inverse() *Translation { return &Translation{t: tr.t.Neg()} }

// Compose returns the translation by t + o.t.
func (tr *Translation) Compose(o *Translation) (*Translation, error) {
	if o == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	sum, err := tr.t.Add(o.t)
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}

	return &Translation{t: sum}, nil
}

func (tr *Translation) String() string { return "Translation" + tr.t.String() }
