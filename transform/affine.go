// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"

	"github.com/tidop/geomath/matrix"
)

// Affine is the general map p' = A·p + t, stored as its Dim×(Dim+1) matrix
// [A | t].
type Affine struct {
	dim int
	lin *matrix.Dense
	t   *matrix.Vector
}

// NewAffine2D builds the 2D affine with per-axis scale, translation and a
// rotation angle in radians:
//
//	[ sx·cos  -sy·sin  tx ]
//	[ sx·sin   sy·cos  ty ]
func NewAffine2D(sx, sy, tx, ty, angle float64) *Affine {
	a, _ := NewAffineFromParts(NewScaling2D(sx, sy), NewRotation2D(angle), NewTranslation2D(tx, ty))
	return a
}

// NewAffine3D builds the 3D affine A = Rx(omega)·Ry(phi)·Rz(kappa)·diag(sx, sy, sz)
// with translation (tx, ty, tz).
func NewAffine3D(sx, sy, sz, tx, ty, tz, omega, phi, kappa float64) *Affine {
	a, _ := NewAffineFromParts(
		NewScaling3D(sx, sy, sz),
		NewRotation3D(omega, phi, kappa),
		NewTranslation3D(tx, ty, tz),
	)
	return a
}

// NewAffineFromParts returns the affine R·diag(s)·p + t.
func NewAffineFromParts(s *Scaling, r *Rotation, t *Translation) (*Affine, error) {
	if s == nil || r == nil || t == nil {
		return nil, transformErrorf(opNewAffine, ErrNilTransform)
	}
	if s.Dim() != r.Dim() || t.Dim() != r.Dim() {
		return nil, fmt.Errorf("%s: dims %d/%d/%d: %w", opNewAffine, s.Dim(), r.Dim(), t.Dim(), matrix.ErrDimensionMismatch)
	}
	lin := r.Matrix()
	err := lin.Apply(func(_, j int, v float64) float64 { return v * s.s.Elem(j) })
	if err != nil {
		return nil, transformErrorf(opNewAffine, err)
	}

	return &Affine{dim: r.Dim(), lin: lin, t: t.Vector()}, nil
}

// NewAffine copies a Dim×(Dim+1) matrix [A | t] or a (Dim+1)×(Dim+1)
// homogeneous matrix whose last row is [0 … 0 1].
//
// Errors:
//   - matrix.ErrNilMatrix, ErrInvalidDimension, matrix.ErrDimensionMismatch.
//   - ErrNotAffine for a projective last row.
func NewAffine(m matrix.Matrix) (*Affine, error) {
	dim, lin, t, err := splitHomogeneous(m)
	if err != nil {
		return nil, transformErrorf(opNewAffine, err)
	}
	if m.Rows() == dim+1 {
		for j := 0; j <= dim; j++ {
			v, _ := m.At(dim, j)
			want := 0.0
			if j == dim {
				want = 1
			}
			if v != want {
				return nil, fmt.Errorf("%s: h[%d,%d]=%g: %w", opNewAffine, dim, j, v, ErrNotAffine)
			}
		}
	}

	return &Affine{dim: dim, lin: lin, t: t}, nil
}

// IdentityAffine returns the identity transform in dim dimensions.
func IdentityAffine(dim int) (*Affine, error) {
	if err := checkDim(dim); err != nil {
		return nil, transformErrorf(opNewAffine, err)
	}
	lin, _ := matrix.NewIdentity(dim)

	return &Affine{dim: dim, lin: lin, t: matrix.ZeroVector(dim)}, nil
}

func (a *Affine) clone() *Affine {
	return &Affine{dim: a.dim, lin: a.lin.Clone().(*matrix.Dense), t: a.t.Clone()}
}

func (a *Affine) parts() (*matrix.Dense, *matrix.Vector) { return a.lin, a.t }

// Dim implements Transform.
func (a *Affine) Dim() int { return a.dim }

// At returns element (r, c) of [A | t]; c == Dim selects the translation.
func (a *Affine) At(r, c int) (float64, error) {
	if r < 0 || r >= a.dim || c < 0 || c > a.dim {
		return 0, fmt.Errorf("Affine.At(%d,%d): %w", r, c, matrix.ErrOutOfRange)
	}
	if c == a.dim {
		return a.t.Elem(r), nil
	}

	return a.lin.Elem(r, c), nil
}

// Matrix returns a copy of the Dim×(Dim+1) matrix [A | t].
func (a *Affine) Matrix() *matrix.Dense {
	m, _ := matrix.NewDense(a.dim, a.dim+1)
	for i := 0; i < a.dim; i++ {
		for j := 0; j < a.dim; j++ {
			_ = m.Set(i, j, a.lin.Elem(i, j))
		}
		_ = m.Set(i, a.dim, a.t.Elem(i))
	}

	return m
}

// Linear returns a copy of the Dim×Dim block A.
func (a *Affine) Linear() *matrix.Dense { return a.lin.Clone().(*matrix.Dense) }

// Translation returns the translation part t.
func (a *Affine) Translation() *Translation { return &Translation{t: a.t.Clone()} }

// Scale returns the Euclidean norm of each column of A.
func (a *Affine) Scale() *matrix.Vector {
	s := matrix.ZeroVector(a.dim)
	for j := 0; j < a.dim; j++ {
		var sum float64
		for i := 0; i < a.dim; i++ {
			sum += a.lin.Elem(i, j) * a.lin.Elem(i, j)
		}
		_ = s.Set(j, math.Sqrt(sum))
	}

	return s
}

// Rotation returns A with each column divided by its norm. For transforms
// built from scale, rotation and translation this is the rotation matrix;
// with shear the columns are unit but not orthogonal.
//
// Errors:
//   - matrix.ErrSingular if a column of A is zero.
func (a *Affine) Rotation() (*matrix.Dense, error) {
	s := a.Scale()
	r := a.Linear()
	for j := 0; j < a.dim; j++ {
		if s.Elem(j) == 0 {
			return nil, fmt.Errorf("Affine.Rotation: column %d is zero: %w", j, matrix.ErrSingular)
		}
	}
	if err := r.Apply(func(_, j int, v float64) float64 { return v / s.Elem(j) }); err != nil {
		return nil, fmt.Errorf("Affine.Rotation: %w", err)
	}

	return r, nil
}

// Angle returns atan2(A[1,0], A[0,0]) for a 2D affine.
func (a *Affine) Angle() (float64, error) {
	if a.dim != 2 {
		return 0, fmt.Errorf("Affine.Angle: dim %d: %w", a.dim, ErrInvalidDimension)
	}

	return math.Atan2(a.lin.Elem(1, 0), a.lin.Elem(0, 0)), nil
}

// Apply implements Transform.
func (a *Affine) Apply(p *matrix.Vector) (*matrix.Vector, error) {
	return applyPoint(a.dim, a.lin, a.t, p)
}

// ApplyMatrix implements Transform.
func (a *Affine) ApplyMatrix(pts matrix.Matrix) (*matrix.Dense, error) {
	return applyRows(a.dim, a.lin, a.t, pts)
}

// Homogeneous implements Transform.
func (a *Affine) Homogeneous() *matrix.Dense { return homogeneous(a.dim, a.lin, a.t) }

// Inverse returns p = A⁻¹·(p' - t).
//
// Errors:
//   - matrix.ErrSingular when A is not invertible.
func (a *Affine) Inverse() (*Affine, error) {
	inv, err := matrix.Inverse(a.lin)
	if err != nil {
		return nil, transformErrorf(opInverse, err)
	}
	t, err := matrix.MulVec(inv, a.t)
	if err != nil {
		return nil, transformErrorf(opInverse, err)
	}

	return &Affine{dim: a.dim, lin: inv, t: t.Neg()}, nil
}

// Compose returns the affine that applies o first and a second.
func (a *Affine) Compose(o *Affine) (*Affine, error) {
	if o == nil {
		return nil, transformErrorf(opCompose, ErrNilTransform)
	}
	if o.dim != a.dim {
		return nil, fmt.Errorf("%s: dim %d vs %d: %w", opCompose, a.dim, o.dim, matrix.ErrDimensionMismatch)
	}
	lin, err := matrix.Mul(a.lin, o.lin)
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}
	t, err := applyPoint(a.dim, a.lin, a.t, o.t)
	if err != nil {
		return nil, transformErrorf(opCompose, err)
	}

	return &Affine{dim: a.dim, lin: lin, t: t}, nil
}

// IsIdentity reports whether every element of [A | t] is within tol of the identity.
func (a *Affine) IsIdentity(tol float64) bool {
	for i := 0; i < a.dim; i++ {
		if math.Abs(a.t.Elem(i)) > tol {
			return false
		}
	}
	ok, _ := matrix.IsIdentity(a.lin, matrix.WithEpsilon(tol))

	return ok
}

func (a *Affine) String() string { return "Affine\n" + a.Matrix().String() }
