// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/tidop/geomath/decomp"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

// Model names a transform family that Fit can estimate.
type Model int

const (
	ModelTranslation Model = iota
	ModelRotation
	ModelScaling
	ModelAffine
	ModelHelmert
	ModelUmeyama
)

var modelNames = [...]string{
	ModelTranslation: "translation",
	ModelRotation:    "rotation",
	ModelScaling:     "scaling",
	ModelAffine:      "affine",
	ModelHelmert:     "helmert",
	ModelUmeyama:     "umeyama",
}

func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("Model(%d)", int(m))
	}

	return modelNames[m]
}

// ParseModel maps a case-insensitive name to its Model.
func ParseModel(s string) (Model, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modelNames {
		if n == name {
			return Model(m), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownModel)
}

// Models lists every supported model in declaration order.
func Models() []Model {
	out := make([]Model, len(modelNames))
	for i := range out {
		out[i] = Model(i)
	}

	return out
}

// Result is a fitted transform with its quality diagnostics.
type Result struct {
	Model     Model
	Transform transform.Transform
	Points    int
	RMSE      float64
	// Rank, Unknowns and Condition describe the design matrix (or, for the
	// closed-form models, the cross-covariance) that was factorized.
	Rank      int
	Unknowns  int
	Condition float64
}

// RankDeficient reports whether the fitted system lost rank, as happens for
// collinear or coincident points.
func (r *Result) RankDeficient() bool { return r.Rank < r.Unknowns }

// Fit estimates model from the pairs and evaluates its RMSE on them.
//
// Errors:
//   - ErrUnknownModel, plus any error of the underlying estimator.
func Fit(model Model, src, dst matrix.Matrix) (*Result, error) {
	var (
		t   transform.Transform
		svd *decomp.SVD
		err error
	)
	switch model {
	case ModelTranslation:
		t, svd, err = translation(src, dst)
	case ModelRotation:
		t, svd, err = rotation2D(src, dst)
	case ModelScaling:
		t, svd, err = scaling2D(src, dst)
	case ModelAffine:
		if err = matrix.ValidateNotNil(src); err == nil && src.Cols() == 3 {
			t, svd, err = affine3D(src, dst)
		} else if err == nil {
			t, svd, err = affine2D(src, dst)
		}
	case ModelHelmert:
		t, svd, err = helmert(src, dst)
	case ModelUmeyama:
		t, svd, err = umeyama(opUmeyama, src, dst, 2, 3)
	default:
		return nil, fmt.Errorf("estimate.Fit: %s: %w", model, ErrUnknownModel)
	}
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(t, src, dst)
	if err != nil {
		return nil, err
	}

	_, unknowns := svd.Dims()

	return &Result{
		Model:     model,
		Transform: t,
		Points:    src.Rows(),
		RMSE:      rmse,
		Rank:      svd.Rank(),
		Unknowns:  unknowns,
		Condition: svd.ConditionNumber(),
	}, nil
}

// Affine2DPoints is Affine2D over r2.Point slices.
func Affine2DPoints(src, dst []r2.Point) (*transform.Affine, error) {
	s, d, err := points2(src, dst)
	if err != nil {
		return nil, err
	}

	return Affine2D(s, d)
}

// Helmert2DPoints is Helmert2D over r2.Point slices.
func Helmert2DPoints(src, dst []r2.Point) (*transform.Helmert, error) {
	s, d, err := points2(src, dst)
	if err != nil {
		return nil, err
	}

	return Helmert2D(s, d)
}

// TranslationPoints2 is Translation over r2.Point slices.
func TranslationPoints2(src, dst []r2.Point) (*transform.Translation, error) {
	s, d, err := points2(src, dst)
	if err != nil {
		return nil, err
	}

	return Translation(s, d)
}

// Helmert3DPoints is Helmert3D over r3.Vector slices.
func Helmert3DPoints(src, dst []r3.Vector) (*transform.Helmert, error) {
	if len(src) < 3 || len(dst) < 3 {
		return nil, fmt.Errorf("%s: %d/%d points: %w", opHelmert3D, len(src), len(dst), ErrTooFewPoints)
	}
	s, err := transform.MatrixFromPoints3(src)
	if err != nil {
		return nil, err
	}
	d, err := transform.MatrixFromPoints3(dst)
	if err != nil {
		return nil, err
	}

	return Helmert3D(s, d)
}

func points2(src, dst []r2.Point) (s, d *matrix.Dense, err error) {
	if len(src) == 0 || len(dst) == 0 {
		return nil, nil, fmt.Errorf("estimate: %d/%d points: %w", len(src), len(dst), ErrTooFewPoints)
	}
	if s, err = transform.MatrixFromPoints2(src); err != nil {
		return nil, nil, err
	}
	if d, err = transform.MatrixFromPoints2(dst); err != nil {
		return nil, nil, err
	}

	return s, d, nil
}
