// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"

	"github.com/tidop/geomath/matrix"
)

// orthoTolerance bounds |RᵀR - I| and |det R - 1| accepted by NewRotation.
const orthoTolerance = 1e-6

// Rotation is a proper rotation about the origin: p' = R·p.
type Rotation struct {
	dim int
	r   *matrix.Dense
}

// NewRotation2D returns the counter-clockwise rotation by angle radians.
func NewRotation2D(angle float64) *Rotation {
	s, c := math.Sincos(angle)
	m := matrix.Mat2{{c, -s}, {s, c}}

	return &Rotation{dim: 2, r: m.Dense()}
}

// rotX, rotY and rotZ are the elementary rotations about each axis.
func rotX(a float64) matrix.Mat3 {
	s, c := math.Sincos(a)
	return matrix.Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(a float64) matrix.Mat3 {
	s, c := math.Sincos(a)
	return matrix.Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotZ(a float64) matrix.Mat3 {
	s, c := math.Sincos(a)
	return matrix.Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// NewRotation3D returns R = Rx(omega)·Ry(phi)·Rz(kappa).
func NewRotation3D(omega, phi, kappa float64) *Rotation {
	m := rotX(omega).Mul(rotY(phi)).Mul(rotZ(kappa))

	return &Rotation{dim: 3, r: m.Dense()}
}

// NewRotation validates and copies a 2×2 or 3×3 rotation matrix.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrInvalidDimension.
//   - ErrNotRotation when RᵀR or det R deviate from I and 1 by more than 1e-6.
func NewRotation(m matrix.Matrix) (*Rotation, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	if err := checkDim(m.Rows()); err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	r, err := matrix.DenseCopy(m)
	if err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	rt, _ := matrix.Transpose(r)
	rtr, _ := matrix.Mul(rt, r)
	ok, err := matrix.IsIdentity(rtr, matrix.WithEpsilon(orthoTolerance))
	if err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	det, err := matrix.Determinant(r)
	if err != nil {
		return nil, transformErrorf(opNewRotation, err)
	}
	if !ok || math.Abs(det-1) > orthoTolerance {
		return nil, fmt.Errorf("%s: det %g: %w", opNewRotation, det, ErrNotRotation)
	}

	return &Rotation{dim: r.Rows(), r: r}, nil
}

// Dim implements Transform.
func (r *Rotation) Dim() int { return r.dim }

// Matrix returns a copy of the Dim×Dim rotation matrix.
func (r *Rotation) Matrix() *matrix.Dense { return r.r.Clone().(*matrix.Dense) }

// Angle returns the 2D rotation angle in (-π, π].
func (r *Rotation) Angle() (float64, error) {
	if r.dim != 2 {
		return 0, fmt.Errorf("Rotation.Angle: dim %d: %w", r.dim, ErrInvalidDimension)
	}

	return math.Atan2(r.r.Elem(1, 0), r.r.Elem(0, 0)), nil
}

// EulerAngles recovers (omega, phi, kappa) of a 3D rotation built as
// Rx(omega)·Ry(phi)·Rz(kappa), with phi in [-π/2, π/2]. See EulerAnglesOrder
// for the other axis sequences.
func (r *Rotation) EulerAngles() (omega, phi, kappa float64, err error) {
	return r.EulerAnglesOrder(EulerXYZ)
}

func (r *Rotation) parts() (*matrix.Dense, *matrix.Vector) {
	return r.r, matrix.ZeroVector(r.dim)
}

// Apply implements Transform.
func (r *Rotation) Apply(p *matrix.Vector) (*matrix.Vector, error) {
	lin, t := r.parts()
	return applyPoint(r.dim, lin, t, p)
}

// ApplyMatrix implements Transform.
func (r *Rotation) ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error) {
	lin, t := r.parts()
	return applyRows(r.dim, lin, t, pts)
}

// Homogeneous implements Transform.
func (r *Rotation) Homogeneous() *matrix.Dense {
	lin, t := r.parts()
	return homogeneous(r.dim, lin, t)
}

// Inverse returns Rᵀ.
func (r *Rotation) Inverse() *Rotation {
	rt, _ := matrix.Transpose(r.r)
	return &Rotation{dim: r.dim, r: rt}
}

// Compose returns the rotation R·O (o applied first).
func (r *Rotation) Compose(o *Rotation) (*Rotation, error) {
	if o == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	if o.dim != r.dim {
		return nil, fmt.Errorf("%s: dim %d vs %d: %w", opCompose, r.dim, o.dim, matrix.ErrDimensionMismatch)
	}
	p, err := matrix.Mul(r.r, o.r)
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}

	return &Rotation{dim: r.dim, r: p}, nil
}
