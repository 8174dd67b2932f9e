// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto the At/Set fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustRows builds a *Dense from nested rows or fails the test.
func MustRows(t testing.TB, rows ...[]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// Sequential fills an r×c matrix with 0,1,2,... in row-major order.
func Sequential(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, float64(i*c+j)))
		}
	}

	return m
}

// RandomFill fills m with deterministic U(-1,1) values by seed.
func RandomFill(t testing.TB, m matrix.Matrix, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			require.NoError(t, m.Set(i, j, rng.Float64()*2-1))
		}
	}
}

// RequireClose asserts element-wise closeness of two matrices.
func RequireClose(t testing.TB, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ:\nwant %v\ngot  %v", want, got)
}
