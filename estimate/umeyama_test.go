package estimate_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/estimate"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

func TestHelmert3DRecoversSimilarity(t *testing.T) {
	want, err := transform.NewHelmert3D(1.5, 10, -20, 30, deg(5), deg(-10), deg(25))
	require.NoError(t, err)
	got, err := estimate.Helmert3D(rows(t, srcPoints3), mapped(t, want, srcPoints3))
	require.NoError(t, err)

	assert.InDelta(t, 1.5, got.Scale(), 1e-12)
	ok, err := matrix.AllClose(want.Matrix(), got.Matrix(), 0, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok, "want\n%v\ngot\n%v", want.Matrix(), got.Matrix())

	o, p, k, err := got.Rotation().EulerAngles()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{deg(5), deg(-10), deg(25)}, []float64{o, p, k}, 1e-12)
}

func TestHelmert3DPoints(t *testing.T) {
	want, err := transform.NewHelmert3D(0.9, 1, 2, 3, 0, 0, deg(90))
	require.NoError(t, err)
	src := make([]r3.Vector, len(srcPoints3))
	for i, p := range srcPoints3 {
		src[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	dst, err := transform.Points3(want, src)
	require.NoError(t, err)

	got, err := estimate.Helmert3DPoints(src, dst)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got.Scale(), 1e-12)

	_, err = estimate.Helmert3DPoints(src[:2], dst[:2])
	require.ErrorIs(t, err, estimate.ErrTooFewPoints)
}

func TestUmeyama2DAgreesWithHelmert2D(t *testing.T) {
	src, dst := rows(t, srcPoints2), rows(t, helmertDst2)
	u, err := estimate.Umeyama(src, dst)
	require.NoError(t, err)
	h, err := estimate.Helmert2D(src, dst)
	require.NoError(t, err)

	requireRel(t, h.Scale(), u.Scale())
	requireRel(t, 150, u.Translation().X())
	ua, _ := u.Angle()
	requireRel(t, deg(35), ua)
}

func TestUmeyamaRejectsReflection(t *testing.T) {
	// dst mirrors src across the x axis; the best proper rotation is still
	// returned (det +1).
	src := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {2, 2}}
	dst := [][]float64{{1, 0}, {0, -1}, {-1, 0}, {2, -2}}
	u, err := estimate.Umeyama(rows(t, src), rows(t, dst))
	require.NoError(t, err)
	det, err := matrix.Determinant(u.Rotation().Matrix())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, det, 1e-12)
}

func TestHelmertDispatch(t *testing.T) {
	h, err := estimate.Helmert(rows(t, srcPoints2), rows(t, helmertDst2))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Dim())

	h, err = estimate.Helmert(rows(t, srcPoints3), rows(t, srcPoints3))
	require.NoError(t, err)
	assert.Equal(t, 3, h.Dim())
	assert.InDelta(t, 1.0, h.Scale(), 1e-12)

	_, err = estimate.Helmert(rows(t, [][]float64{{1, 2, 3, 4}}), rows(t, [][]float64{{1, 2, 3, 4}}))
	require.ErrorIs(t, err, transform.ErrInvalidDimension)
}

func TestUmeyamaDegenerate(t *testing.T) {
	same := [][]float64{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}
	_, err := estimate.Helmert3D(rows(t, same), rows(t, same))
	require.ErrorIs(t, err, estimate.ErrDegenerate)

	_, err = estimate.Helmert3D(rows(t, srcPoints3[:2]), rows(t, srcPoints3[:2]))
	require.ErrorIs(t, err, estimate.ErrTooFewPoints)
}
