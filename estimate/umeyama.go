// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"

	"github.com/tidop/geomath/decomp"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

const (
	opUmeyama   = "estimate.Umeyama"
	opHelmert3D = "estimate.Helmert3D"
	opHelmert   = "estimate.Helmert"
)

// Umeyama returns the least-squares similarity dst ≈ s·R·src + t in 2D or 3D
// (Umeyama, 1991). At least Dim pairs are required.
//
// Implementation:
//   - Stage 1: center both sets; σ² = mean squared distance of src to its centroid.
//   - Stage 2: Σ = Ycᵀ·Xc / n; SVD Σ = U·D·Vᵀ.
//   - Stage 3: S = I, with S[d,d] = -1 when det(U)·det(V) < 0 (reflection guard).
//   - Stage 4: R = U·S·Vᵀ, s = tr(D·S) / σ², t = μ_dst - s·R·μ_src.
//
// Errors:
//   - ErrDegenerate when every source point coincides (σ² = 0).
//
// Complexity:
//   - Time O(n·d² + d³), Space O(n·d).
func Umeyama(src, dst matrix.Matrix) (*transform.Helmert, error) {
	h, _, err := umeyama(opUmeyama, src, dst, 2, 3)
	return h, err
}

// Helmert3D fits the seven-parameter 3D similarity from at least three pairs.
func Helmert3D(src, dst matrix.Matrix) (*transform.Helmert, error) {
	h, _, err := umeyama(opHelmert3D, src, dst, 3)
	return h, err
}

// Helmert dispatches on the column count: two columns to Helmert2D, three
// to Helmert3D.
func Helmert(src, dst matrix.Matrix) (*transform.Helmert, error) {
	h, _, err := helmert(src, dst)
	return h, err
}

func helmert(src, dst matrix.Matrix) (*transform.Helmert, *decomp.SVD, error) {
	if err := matrix.ValidateNotNil(src); err != nil {
		return nil, nil, fmt.Errorf("%s: src: %w", opHelmert, err)
	}
	switch src.Cols() {
	case 2:
		return helmert2D(src, dst)
	case 3:
		return umeyama(opHelmert3D, src, dst, 3)
	}

	return nil, nil, fmt.Errorf("%s: dim %d: %w", opHelmert, src.Cols(), transform.ErrInvalidDimension)
}

func umeyama(op string, src, dst matrix.Matrix, dims ...int) (*transform.Helmert, *decomp.SVD, error) {
	if err := checkPair(op, src, dst, 1, dims...); err != nil {
		return nil, nil, err
	}
	if src.Rows() < src.Cols() {
		return nil, nil, fmt.Errorf("%s: %d points, need %d: %w", op, src.Rows(), src.Cols(), ErrTooFewPoints)
	}
	n, dim := src.Rows(), src.Cols()

	// Stage 1
	xc, muX, err := matrix.CenterColumns(src)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	yc, muY, err := matrix.CenterColumns(dst)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	varX, err := matrix.ColumnVariance(src)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if varX == 0 {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrDegenerate)
	}

	// Stage 2
	yct, _ := matrix.Transpose(yc)
	cov, err := matrix.Mul(yct, xc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if cov, err = matrix.Scale(cov, 1/float64(n)); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	svd, err := decomp.NewSVD(cov, decomp.WithRelativeThreshold(designRCond))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	u, v := svd.U(), svd.V()

	// Stage 3
	diagS := matrix.OnesVector(dim)
	detU, _ := matrix.Determinant(u)
	detV, _ := matrix.Determinant(v)
	if detU*detV < 0 {
		_ = diagS.Set(dim-1, -1)
	}

	// Stage 4
	sm, _ := matrix.NewDiagonal(diagS)
	us, _ := matrix.Mul(u, sm)
	vt, _ := matrix.Transpose(v)
	r, err := matrix.Mul(us, vt)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	var trace float64
	for i, w := range svd.Values() {
		trace += w * diagS.Elem(i)
	}
	scale := trace / varX

	rot, err := transform.NewRotation(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	rmu, err := rot.Apply(muX)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	t, err := muY.Sub(rmu.Scale(scale))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	tr, err := transform.NewTranslation(t)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	h, err := transform.NewHelmert(scale, rot, tr)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return h, svd, nil
}
