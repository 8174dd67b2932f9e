// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over point sets (one point per row): means and
//     centering, the building blocks of closed-form similarity estimation.
//   - Keep tight loops centralized in ew* micro-kernels.
//
// Exposed API:
//   - ColumnMeans(X)     -> means              // per-column average
//   - CenterColumns(X)   -> (Xc, means)        // subtract per-column mean
//   - ColumnVariance(X)  -> total             // Σ_i |x_i - mean|² / r
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opColumnMeans    = "ColumnMeans"
	opCenterColumns  = "CenterColumns"
	opColumnVariance = "ColumnVariance"
)

// ColumnMeans returns Σ_i X[i,j] / r for every column j.
//
// Errors:
//   - ErrNilMatrix from validation; wrapped At errors on the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) (*Vector, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := ZeroVector(c)
	if r == 0 {
		return means, nil
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means.data[j] += d.data[base+j]
			}
		}
	} else {
		var v float64
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means.data[j] += v
			}
		}
	}

	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means.data[j] *= invR
	}

	return means, nil
}

// CenterColumns subtracts the per-column mean from every element.
//
// Implementation:
//   - Stage 1: compute column means (ColumnMeans).
//   - Stage 2: apply ewBroadcastSubCols to produce a centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - *Vector: column means (len=c), reusable to un-center later.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, *Vector, error) {
	means, err := ColumnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	Xc, err := ewBroadcastSubCols(X, means.data)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// ColumnVariance returns the mean squared distance of the rows to their
// centroid: Σ_i Σ_j (X[i,j] - mean_j)² / r.
func ColumnVariance(X Matrix) (float64, error) {
	Xc, _, err := CenterColumns(X)
	if err != nil {
		return 0, matrixErrorf(opColumnVariance, err)
	}
	var s float64
	for _, v := range Xc.data {
		s += v * v
	}

	return s / float64(Xc.r), nil
}
