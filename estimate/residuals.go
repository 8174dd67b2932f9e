// SPDX-License-Identifier: MIT

package estimate

import (
	"fmt"
	"math"

	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

// ResidualVectors returns dst_i - t(src_i) for every pair as an N×Dim matrix.
func ResidualVectors(t transform.Transform, src, dst matrix.Matrix) (*matrix.Dense, error) {
	if t == nil {
		return nil, fmt.Errorf("estimate.Residuals: %w", transform.ErrNilTransform)
	}
	if err := checkPair("estimate.Residuals", src, dst, 1, t.Dim()); err != nil {
		return nil, err
	}
	mapped, err := t.ApplyMatrix(src)
	if err != nil {
		return nil, fmt.Errorf("estimate.Residuals: %w", err)
	}
	diff, err := matrix.Sub(dst, mapped)
	if err != nil {
		return nil, fmt.Errorf("estimate.Residuals: %w", err)
	}

	return diff, nil
}

// Residuals returns |t(src_i) - dst_i| for every pair.
func Residuals(t transform.Transform, src, dst matrix.Matrix) ([]float64, error) {
	diff, err := ResidualVectors(t, src, dst)
	if err != nil {
		return nil, err
	}
	out := make([]float64, diff.Rows())
	for i := range out {
		row, _ := diff.Row(i)
		out[i] = row.Norm()
	}

	return out, nil
}

// RMSE is the root mean square of Residuals.
func RMSE(t transform.Transform, src, dst matrix.Matrix) (float64, error) {
	res, err := Residuals(t, src, dst)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, r := range res {
		sum += r * r
	}

	return math.Sqrt(sum / float64(len(res))), nil
}
