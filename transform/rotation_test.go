package transform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

func TestRotation2D(t *testing.T) {
	r := transform.NewRotation2D(math.Pi / 2)
	p, err := r.Apply(matrix.VectorOf(1, 0))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, p.Raw(), 1e-15)

	ang, err := r.Angle()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, ang, 1e-15)

	_, _, _, err = r.EulerAngles()
	require.ErrorIs(t, err, transform.ErrInvalidDimension)
}

func TestRotation3DMatchesClosedForm(t *testing.T) {
	omega, phi, kappa := deg(12), deg(-30), deg(75)
	sx, cx := math.Sincos(omega)
	sy, cy := math.Sincos(phi)
	sz, cz := math.Sincos(kappa)
	want := rows(t, [][]float64{
		{cy * cz, -cy * sz, sy},
		{cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy},
		{sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy},
	})
	r := transform.NewRotation3D(omega, phi, kappa)
	requireClose(t, want, r.Matrix(), 1e-15)

	o, p, k, err := r.EulerAngles()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{omega, phi, kappa}, []float64{o, p, k}, 1e-12)

	_, err = r.Angle()
	require.ErrorIs(t, err, transform.ErrInvalidDimension)
}

func TestRotationInverseIsTranspose(t *testing.T) {
	r := transform.NewRotation3D(deg(5), deg(15), deg(-40))
	inv := r.Inverse()
	rt, err := matrix.Transpose(r.Matrix())
	require.NoError(t, err)
	requireClose(t, rt, inv.Matrix(), 0)

	id, err := r.Compose(inv)
	require.NoError(t, err)
	ok, err := matrix.IsIdentity(id.Matrix(), matrix.WithEpsilon(1e-14))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = r.Compose(transform.NewRotation2D(0))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestNewRotationValidates(t *testing.T) {
	r, err := transform.NewRotation(transform.NewRotation2D(0.3).Matrix())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Dim())

	_, err = transform.NewRotation(rows(t, [][]float64{{2, 0}, {0, 1}}))
	require.ErrorIs(t, err, transform.ErrNotRotation)

	// Reflection: orthogonal but det -1.
	_, err = transform.NewRotation(rows(t, [][]float64{{1, 0}, {0, -1}}))
	require.ErrorIs(t, err, transform.ErrNotRotation)

	_, err = transform.NewRotation(rows(t, [][]float64{{1}}))
	require.ErrorIs(t, err, transform.ErrInvalidDimension)

	_, err = transform.NewRotation(rows(t, [][]float64{{1, 0, 0}, {0, 1, 0}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}
