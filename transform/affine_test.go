package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

func TestAffine2DElements(t *testing.T) {
	a := transform.NewAffine2D(0.25, 0.30, 150, 75, deg(35))
	want := [][]float64{
		{0.20478801107224795, -0.17207293090531381, 150},
		{0.14339410908776151, 0.24574561328669753, 75},
	}
	requireClose(t, rows(t, want), a.Matrix(), 1e-15)

	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 75.0, v)
	_, err = a.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestAffine2DMapsFixture(t *testing.T) {
	a := transform.NewAffine2D(0.25, 0.30, 150, 75, deg(35))
	got, err := a.ApplyMatrix(rows(t, srcPoints2))
	require.NoError(t, err)
	requireClose(t, rows(t, affineDst2), got, 1e-3)

	p, err := a.Apply(matrix.VectorOf(srcPoints2[0]...))
	require.NoError(t, err)
	assert.InDeltaSlice(t, affineDst2[0], p.Raw(), 1e-3)
}

func TestAffineDecomposition(t *testing.T) {
	a := transform.NewAffine2D(0.25, 0.30, 150, 75, deg(35))
	assert.InDeltaSlice(t, []float64{0.25, 0.30}, a.Scale().Raw(), 1e-15)

	ang, err := a.Angle()
	require.NoError(t, err)
	assert.InDelta(t, deg(35), ang, 1e-15)

	tr := a.Translation()
	assert.Equal(t, 150.0, tr.X())
	assert.Equal(t, 75.0, tr.Y())

	r, err := a.Rotation()
	require.NoError(t, err)
	requireClose(t, transform.NewRotation2D(deg(35)).Matrix(), r, 1e-15)
}

func TestAffineInverseRoundTrip(t *testing.T) {
	for name, a := range map[string]*transform.Affine{
		"2d": transform.NewAffine2D(0.25, 0.30, 150, 75, deg(35)),
		"3d": transform.NewAffine3D(1.5, 0.5, 2, 10, -20, 30, deg(10), deg(-25), deg(40)),
	} {
		t.Run(name, func(t *testing.T) {
			inv, err := a.Inverse()
			require.NoError(t, err)

			id, err := a.Compose(inv)
			require.NoError(t, err)
			assert.True(t, id.IsIdentity(1e-12))

			pts := rows(t, srcPoints2)
			if a.Dim() == 3 {
				pts = rows(t, [][]float64{{1, 2, 3}, {-4, 5, 0.5}, {100, -7, 42}})
			}
			fwd, err := a.ApplyMatrix(pts)
			require.NoError(t, err)
			back, err := inv.ApplyMatrix(fwd)
			require.NoError(t, err)
			requireClose(t, pts, back, 1e-6)
		})
	}
}

func TestAffineSingularInverse(t *testing.T) {
	a := transform.NewAffine2D(0, 1, 0, 0, 0)
	_, err := a.Inverse()
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = a.Rotation()
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestAffineNearSingularInverse(t *testing.T) {
	a, err := transform.NewAffine(rows(t, [][]float64{{1.1, 0.7, 4}, {3.3, 2.1, -2}}))
	require.NoError(t, err)
	_, err = a.Inverse()
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = transform.Invert(a)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestNewAffineShapes(t *testing.T) {
	h := rows(t, [][]float64{{1, 0, 5}, {0, 1, 6}, {0, 0, 1}})
	a, err := transform.NewAffine(h)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Dim())
	requireClose(t, h, a.Homogeneous(), 0)

	_, err = transform.NewAffine(rows(t, [][]float64{{1, 0, 5}, {0, 1, 6}, {0.1, 0, 1}}))
	require.ErrorIs(t, err, transform.ErrNotAffine)

	_, err = transform.NewAffine(rows(t, [][]float64{{1, 0, 0, 0, 0}}))
	require.ErrorIs(t, err, transform.ErrInvalidDimension)

	_, err = transform.NewAffine(rows(t, [][]float64{{1, 0, 0}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = transform.IdentityAffine(4)
	require.ErrorIs(t, err, transform.ErrInvalidDimension)

	_, err = transform.NewAffineFromParts(
		transform.NewScaling2D(1, 1), transform.NewRotation3D(0, 0, 0), transform.NewTranslation2D(0, 0))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAffineApplyDimensionMismatch(t *testing.T) {
	a, err := transform.IdentityAffine(3)
	require.NoError(t, err)
	_, err = a.Apply(matrix.VectorOf(1, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.ApplyMatrix(rows(t, srcPoints2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Apply(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
