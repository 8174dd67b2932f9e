package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
)

const epsTight = 1e-12

func TestColumnMeansAndCentering(t *testing.T) {
	X := MustRows(t,
		[]float64{1, 10},
		[]float64{2, 20},
		[]float64{3, 30},
	)
	means, err := matrix.ColumnMeans(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 20}, means.Raw())

	slow, err := matrix.ColumnMeans(hide{X})
	require.NoError(t, err)
	assert.Equal(t, means.Raw(), slow.Raw())

	Xc, m2, err := matrix.CenterColumns(X)
	require.NoError(t, err)
	assert.Equal(t, means.Raw(), m2.Raw())
	assert.Equal(t, []float64{-1, -10, 0, 0, 1, 10}, Xc.Data())

	centered, err := matrix.ColumnMeans(Xc)
	require.NoError(t, err)
	assert.InDelta(t, 0, centered.Norm(), epsTight)
}

func TestColumnVariance(t *testing.T) {
	X := MustRows(t, []float64{0, 0}, []float64{2, 0}, []float64{0, 2}, []float64{2, 2})
	v, err := matrix.ColumnVariance(X)
	require.NoError(t, err)
	// every corner is at squared distance 2 from (1,1)
	assert.InDelta(t, 2.0, v, epsTight)

	_, err = matrix.ColumnVariance(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
