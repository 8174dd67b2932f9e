// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"

	"github.com/tidop/geomath/matrix"
)

// Helmert is a similarity transform: p' = s·R·p + t with a single positive
// scale s, a proper rotation R and a translation t.
type Helmert struct {
	scale float64
	rot   *Rotation
	t     *Translation
}

// NewHelmert combines scale, rotation and translation of equal dimension.
//
// Errors:
//   - ErrNilTransform, ErrInvalidScale, matrix.ErrDimensionMismatch.
func NewHelmert(scale float64, r *Rotation, t *Translation) (*Helmert, error) {
	if r == nil || t == nil {
		return nil, transformErrorf(opNewHelmert, ErrNilTransform)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%s: scale %g: %w", opNewHelmert, scale, ErrInvalidScale)
	}
	if r.Dim() != t.Dim() {
		return nil, fmt.Errorf("%s: dim %d vs %d: %w", opNewHelmert, r.Dim(), t.Dim(), matrix.ErrDimensionMismatch)
	}

	return &Helmert{scale: scale, rot: r, t: t}, nil
}

// NewHelmert2D returns the 2D similarity with the given scale, translation
// and rotation angle in radians.
func NewHelmert2D(scale, tx, ty, angle float64) (*Helmert, error) {
	return NewHelmert(scale, NewRotation2D(angle), NewTranslation2D(tx, ty))
}

// NewHelmert3D returns the 3D similarity with rotation Rx(omega)·Ry(phi)·Rz(kappa).
func NewHelmert3D(scale, tx, ty, tz, omega, phi, kappa float64) (*Helmert, error) {
	return NewHelmert(scale, NewRotation3D(omega, phi, kappa), NewTranslation3D(tx, ty, tz))
}

// Dim implements Transform.
func (h *Helmert) Dim() int { return h.rot.Dim() }

// Scale returns s.
func (h *Helmert) Scale() float64 { return h.scale }

// Rotation returns R.
func (h *Helmert) Rotation() *Rotation { return h.rot }

// Translation returns t.
func (h *Helmert) Translation() *Translation { return h.t }

// Angle returns the rotation angle of a 2D similarity.
func (h *Helmert) Angle() (float64, error) { return h.rot.Angle() }

func (h *Helmert) parts() (*matrix.Dense, *matrix.Vector) {
	lin, _ := matrix.Scale(h.rot.r, h.scale)
	return lin, h.t.t
}

// Matrix returns the Dim×(Dim+1) matrix [s·R | t].
func (h *Helmert) Matrix() *matrix.Dense { return h.ToAffine().Matrix() }

// ToAffine returns h as a general Affine.
func (h *Helmert) ToAffine() *Affine {
	lin, t := h.parts()
	return &Affine{dim: h.Dim(), lin: lin, t: t.Clone()}
}

// Apply implements Transform.
func (h *Helmert) Apply(p *matrix.Vector) (*matrix.Vector, error) {
	lin, t := h.parts()
	return applyPoint(h.Dim(), lin, t, p)
}

// ApplyMatrix implements Transform.
func (h *Helmert) ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error) {
	lin, t := h.parts()
	return applyRows(h.Dim(), lin, t, pts)
}

// Homogeneous implements Transform.
func (h *Helmert) Homogeneous() *matrix.Dense {
	lin, t := h.parts()
	return homogeneous(h.Dim(), lin, t)
}

// Inverse returns the similarity with scale 1/s, rotation Rᵀ and
// translation -Rᵀ·t/s.
func (h *Helmert) Inverse() (*Helmert, error) {
	rt := h.rot.Inverse()
	rtt, err := matrix.MulVec(rt.r, h.t.t)
	if err != nil {
		return nil, transformErrorf(opInverse, err)
	}

	return NewHelmert(1/h.scale, rt, &Translation{t: rtt.Scale(-1 / h.scale)})
}

// Compose returns the similarity that applies o first and h second:
// scale s₁·s₂, rotation R₁·R₂, translation s₁·R₁·t₂ + t₁.
func (h *Helmert) Compose(o *Helmert) (*Helmert, error) {
	if o == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	r, err := h.rot.Compose(o.rot)
	if err != nil {
		return nil, err
	}
	t, err := h.Apply(o.t.t)
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}

	return NewHelmert(h.scale*o.scale, r, &Translation{t: t})
}
