// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/tidop/geomath/matrix"
)

// Scaling multiplies each coordinate by its own factor: p'_i = s_i·p_i.
type Scaling struct {
	s *matrix.Vector
}

// NewScaling2D returns diag(sx, sy).
func NewScaling2D(sx, sy float64) *Scaling { return &Scaling{s: matrix.VectorOf(sx, sy)} }

// NewScaling3D returns diag(sx, sy, sz).
func NewScaling3D(sx, sy, sz float64) *Scaling { return &Scaling{s: matrix.VectorOf(sx, sy, sz)} }

// NewUniformScaling returns s·I in dim dimensions.
func NewUniformScaling(dim int, s float64) (*Scaling, error) {
	if err := checkDim(dim); err != nil {
		return nil, transformErrorf(opNewScaling, err)
	}

	return &Scaling{s: matrix.OnesVector(dim).Scale(s)}, nil
}

// NewScaling copies the per-axis factors in v.
func NewScaling(v *matrix.Vector) (*Scaling, error) {
	if v == nil {
		return nil, transformErrorf(opNewScaling, matrix.ErrNilMatrix)
	}
	if err := checkDim(v.Len()); err != nil {
		return nil, transformErrorf(opNewScaling, err)
	}

	return &Scaling{s: v.Clone()}, nil
}

// Dim implements Transform.
func (sc *Scaling) Dim() int { return sc.s.Len() }

// Factors returns a copy of the per-axis factors.
func (sc *Scaling) Factors() *matrix.Vector { return sc.s.Clone() }

func (sc *Scaling) parts() (*matrix.Dense, *matrix.Vector) {
	d, _ := matrix.NewDiagonal(sc.s)
	return d, matrix.ZeroVector(sc.Dim())
}

// Apply implements Transform.
func (sc *Scaling) Apply(p *matrix.Vector) (*matrix.Vector, error) {
	lin, t := sc.parts()
	return applyPoint(sc.Dim(), lin, t, p)
}

// ApplyMatrix implements Transform.
func (sc *Scaling) ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error) {
	lin, t := sc.parts()
	return applyRows(sc.Dim(), lin, t, pts)
}

// Homogeneous implements Transform.
func (sc *Scaling) Homogeneous() *matrix.Dense {
	lin, t := sc.parts()
	return homogeneous(sc.Dim(), lin, t)
}

// Inverse returns diag(1/s_i). A zero factor yields matrix.ErrSingular.
func (sc *Scaling) Inverse() (*Scaling, error) {
	inv := sc.s.Clone()
	for i := 0; i < inv.Len(); i++ {
		if inv.Elem(i) == 0 {
			return nil, fmt.Errorf("%s: factor %d is zero: %w", opInverse, i, matrix.ErrSingular)
		}
		_ = inv.Set(i, 1/inv.Elem(i))
	}

	return &Scaling{s: inv}, nil
}

// Compose multiplies the factors axis by axis.
func (sc *Scaling) Compose(o *Scaling) (*Scaling, error) {
	if o == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	if o.Dim() != sc.Dim() {
		return nil, fmt.Errorf("%s: dim %d vs %d: %w", opCompose, sc.Dim(), o.Dim(), matrix.ErrDimensionMismatch)
	}
	out := sc.s.Clone()
	for i := 0; i < out.Len(); i++ {
		_ = out.Set(i, out.Elem(i)*o.s.Elem(i))
	}

	return &Scaling{s: out}, nil
}
