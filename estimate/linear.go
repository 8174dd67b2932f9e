// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"
	"math"

	"github.com/tidop/geomath/decomp"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

const (
	opTranslation = "estimate.Translation"
	opRotation2D  = "estimate.Rotation2D"
	opScaling2D   = "estimate.Scaling2D"
	opAffine2D    = "estimate.Affine2D"
	opAffine3D    = "estimate.Affine3D"
	opHelmert2D   = "estimate.Helmert2D"
)

// Translation fits p' = p + t in 2D or 3D from at least one pair.
//
// Each pair contributes one identity row per axis, so the least-squares
// solution is the mean of dst - src.
func Translation(src, dst matrix.Matrix) (*transform.Translation, error) {
	t, _, err := translation(src, dst)
	return t, err
}

func translation(src, dst matrix.Matrix) (*transform.Translation, *decomp.SVD, error) {
	if err := checkPair(opTranslation, src, dst, 1, 2, 3); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTranslation, err)
	}
	n, dim := s.Rows(), s.Cols()
	sys := newDesign(n*dim, dim)
	unit := make([]float64, dim)
	for i := 0; i < n; i++ {
		for k := 0; k < dim; k++ {
			clear(unit)
			unit[k] = 1
			sys.add(d.Elem(i, k)-s.Elem(i, k), unit...)
		}
	}
	x, svd, err := sys.solve(opTranslation)
	if err != nil {
		return nil, nil, err
	}
	t, err := transform.NewTranslation(x)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opTranslation, err)
	}

	return t, svd, nil
}

// Rotation2D fits a pure rotation about the origin.
//
// Implementation:
//   - Stage 1: solve [x -y; y x]·(a, b) = (x', y') over all pairs.
//   - Stage 2: normalize (a, b) to unit length; the angle is atan2(b, a).
//
// Errors:
//   - matrix.ErrZeroVector when the fit has no rotational signal
//     (e.g. every source point at the origin).
func Rotation2D(src, dst matrix.Matrix) (*transform.Rotation, error) {
	r, _, err := rotation2D(src, dst)
	return r, err
}

func rotation2D(src, dst matrix.Matrix) (*transform.Rotation, *decomp.SVD, error) {
	if err := checkPair(opRotation2D, src, dst, 1, 2); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opRotation2D, err)
	}
	sys := newDesign(2*s.Rows(), 2)
	for i := 0; i < s.Rows(); i++ {
		x, y := s.Elem(i, 0), s.Elem(i, 1)
		sys.add(d.Elem(i, 0), x, -y)
		sys.add(d.Elem(i, 1), y, x)
	}
	ab, svd, err := sys.solve(opRotation2D)
	if err != nil {
		return nil, nil, err
	}
	u, err := ab.Normalize()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opRotation2D, err)
	}

	return transform.NewRotation2D(math.Atan2(u.Elem(1), u.Elem(0))), svd, nil
}

// Scaling2D fits independent axis scales: x' = sx·x, y' = sy·y.
func Scaling2D(src, dst matrix.Matrix) (*transform.Scaling, error) {
	sc, _, err := scaling2D(src, dst)
	return sc, err
}

func scaling2D(src, dst matrix.Matrix) (*transform.Scaling, *decomp.SVD, error) {
	if err := checkPair(opScaling2D, src, dst, 1, 2); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opScaling2D, err)
	}
	sys := newDesign(2*s.Rows(), 2)
	for i := 0; i < s.Rows(); i++ {
		sys.add(d.Elem(i, 0), s.Elem(i, 0), 0)
		sys.add(d.Elem(i, 1), 0, s.Elem(i, 1))
	}
	x, svd, err := sys.solve(opScaling2D)
	if err != nil {
		return nil, nil, err
	}

	return transform.NewScaling2D(x.Elem(0), x.Elem(1)), svd, nil
}

// Affine2D fits the six-parameter 2D affine from at least three pairs.
//
// Implementation:
//   - Unknowns c = (a00, a01, a10, a11, tx, ty).
//   - Rows per pair: [x y 0 0 1 0]·c = x' and [0 0 x y 0 1]·c = y'.
//
// Collinear sources make the system rank deficient; the minimum-norm
// solution is returned and Fit reports the rank.
func Affine2D(src, dst matrix.Matrix) (*transform.Affine, error) {
	a, _, err := affine2D(src, dst)
	return a, err
}

func affine2D(src, dst matrix.Matrix) (*transform.Affine, *decomp.SVD, error) {
	if err := checkPair(opAffine2D, src, dst, 3, 2); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opAffine2D, err)
	}
	sys := newDesign(2*s.Rows(), 6)
	for i := 0; i < s.Rows(); i++ {
		x, y := s.Elem(i, 0), s.Elem(i, 1)
		sys.add(d.Elem(i, 0), x, y, 0, 0, 1, 0)
		sys.add(d.Elem(i, 1), 0, 0, x, y, 0, 1)
	}
	c, svd, err := sys.solve(opAffine2D)
	if err != nil {
		return nil, nil, err
	}
	m, err := matrix.NewDenseFrom([][]float64{
		{c.Elem(0), c.Elem(1), c.Elem(4)},
		{c.Elem(2), c.Elem(3), c.Elem(5)},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opAffine2D, err)
	}
	a, err := transform.NewAffine(m)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opAffine2D, err)
	}

	return a, svd, nil
}

// Affine3D fits the twelve-parameter 3D affine from at least four pairs.
//
// Unknowns are the rows of [A | t]; each pair contributes three rows, one per
// output axis, [x y z 1] placed in the block of that axis.
func Affine3D(src, dst matrix.Matrix) (*transform.Affine, error) {
	a, _, err := affine3D(src, dst)
	return a, err
}

func affine3D(src, dst matrix.Matrix) (*transform.Affine, *decomp.SVD, error) {
	if err := checkPair(opAffine3D, src, dst, 4, 3); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opAffine3D, err)
	}
	sys := newDesign(3*s.Rows(), 12)
	coef := make([]float64, 12)
	for i := 0; i < s.Rows(); i++ {
		for k := 0; k < 3; k++ {
			clear(coef)
			coef[4*k], coef[4*k+1], coef[4*k+2], coef[4*k+3] = s.Elem(i, 0), s.Elem(i, 1), s.Elem(i, 2), 1
			sys.add(d.Elem(i, k), coef...)
		}
	}
	c, svd, err := sys.solve(opAffine3D)
	if err != nil {
		return nil, nil, err
	}
	m, _ := matrix.NewDense(3, 4)
	for k := 0; k < 3; k++ {
		for j := 0; j < 4; j++ {
			if err = m.Set(k, j, c.Elem(4*k+j)); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", opAffine3D, err)
			}
		}
	}
	a, err := transform.NewAffine(m)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opAffine3D, err)
	}

	return a, svd, nil
}

// Helmert2D fits the four-parameter 2D similarity from at least two pairs.
//
// Implementation:
//   - Unknowns (a, b, tx, ty) with a = s·cos θ, b = s·sin θ.
//   - Rows per pair: [x -y 1 0] = x' and [y x 0 1] = y'.
//   - s = hypot(a, b), θ = atan2(b, a).
//
// Errors:
//   - transform.ErrInvalidScale when the fitted scale is zero.
func Helmert2D(src, dst matrix.Matrix) (*transform.Helmert, error) {
	h, _, err := helmert2D(src, dst)
	return h, err
}

func helmert2D(src, dst matrix.Matrix) (*transform.Helmert, *decomp.SVD, error) {
	if err := checkPair(opHelmert2D, src, dst, 2, 2); err != nil {
		return nil, nil, err
	}
	s, d, err := pairs(src, dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opHelmert2D, err)
	}
	sys := newDesign(2*s.Rows(), 4)
	for i := 0; i < s.Rows(); i++ {
		x, y := s.Elem(i, 0), s.Elem(i, 1)
		sys.add(d.Elem(i, 0), x, -y, 1, 0)
		sys.add(d.Elem(i, 1), y, x, 0, 1)
	}
	c, svd, err := sys.solve(opHelmert2D)
	if err != nil {
		return nil, nil, err
	}
	a, b := c.Elem(0), c.Elem(1)
	h, err := transform.NewHelmert2D(math.Hypot(a, b), c.Elem(2), c.Elem(3), math.Atan2(b, a))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opHelmert2D, err)
	}

	return h, svd, nil
}
