package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
)

func TestAddSub(t *testing.T) {
	a := MustRows(t, []float64{1, 2}, []float64{3, 4})
	b := MustRows(t, []float64{10, 20}, []float64{30, 40})

	s, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33, 44}, s.Data())

	d, err := matrix.Sub(hide{b}, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 18, 27, 36}, d.Data())

	_, err = matrix.Add(a, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "2x2 vs 2x3")

	_, err = matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulFastPathMatchesFallback(t *testing.T) {
	a := MustDense(t, 4, 3)
	b := MustDense(t, 3, 5)
	RandomFill(t, a, 1)
	RandomFill(t, b, 2)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	RequireClose(t, fast, slow, 1e-12)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTransposeScaleMulVec(t *testing.T) {
	m := Sequential(t, 2, 3)
	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, tr.Data())

	trSlow, err := matrix.T(hide{m})
	require.NoError(t, err)
	assert.Equal(t, tr.Data(), trSlow.Data())

	sc, err := matrix.Scale(m, -2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -2, -4, -6, -8, -10}, sc.Data())

	y, err := matrix.MulVec(m, matrix.VectorOf(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 12}, y.Raw())

	y2, err := matrix.MulVec(hide{m}, matrix.VectorOf(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, y.Raw(), y2.Raw())

	_, err = matrix.MulVec(m, matrix.VectorOf(1, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInverseNeedsPivoting(t *testing.T) {
	// Zero leading pivot: 90° rotation.
	r := MustRows(t, []float64{0, -1}, []float64{1, 0})
	inv, err := matrix.Inverse(r)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, -1, 0}, inv.Data())
}

func TestInverseRoundTrip(t *testing.T) {
	a := MustRows(t,
		[]float64{4, 7, 2},
		[]float64{3, 6, 1},
		[]float64{2, 5, 3},
	)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	p, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	id, _ := matrix.NewIdentity(3)
	RequireClose(t, id, p, 1e-12)

	ok, err := matrix.IsIdentity(p, matrix.WithEpsilon(1e-12))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInverseSingularAndNonSquare(t *testing.T) {
	s := MustRows(t, []float64{1, 2}, []float64{2, 4})
	_, err := matrix.Inverse(s)
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Inverse(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverseNearSingularIsSingular(t *testing.T) {
	// Row 2 is 3x row 1; elimination leaves a pivot of about -1.1e-16.
	a := MustRows(t, []float64{1.1, 0.7}, []float64{3.3, 2.1})
	_, err := matrix.Inverse(a)
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, _, _, err = matrix.LU(a)
	require.ErrorIs(t, err, matrix.ErrSingular)

	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, det)

	// Small but well-conditioned input is not affected by the relative test.
	tiny := MustRows(t, []float64{1e-20, 0}, []float64{0, 2e-20})
	inv, err := matrix.Inverse(tiny)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1e20, 0, 0, 0.5e20}, inv.Data(), 1e5)
}

func TestLUReconstructs(t *testing.T) {
	a := MustRows(t,
		[]float64{0, 2, 1},
		[]float64{1, 1, 0},
		[]float64{3, 0, 1},
	)
	L, U, perm, err := matrix.LU(a)
	require.NoError(t, err)

	lu, err := matrix.Mul(L, U)
	require.NoError(t, err)
	pa := MustDense(t, 3, 3)
	for i, src := range perm {
		row, err := a.Row(src)
		require.NoError(t, err)
		require.NoError(t, pa.SetRow(i, row))
	}
	RequireClose(t, pa, lu, 1e-12)
}

func TestDeterminantTraceDiagonal(t *testing.T) {
	a := MustRows(t,
		[]float64{2, 0, 1},
		[]float64{1, 3, 2},
		[]float64{1, 1, 2},
	)
	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, det, 1e-12)

	det, err = matrix.Determinant(MustRows(t, []float64{1, 2}, []float64{2, 4}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, det)

	tr, err := matrix.Trace(a)
	require.NoError(t, err)
	assert.Equal(t, 7.0, tr)

	_, err = matrix.Trace(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	d, err := matrix.Diagonal(Sequential(t, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 4}, d.Raw())
}

func TestConstructors(t *testing.T) {
	o, err := matrix.NewOnes(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, o.Data())

	d, err := matrix.NewDiagonal(matrix.VectorOf(2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 0, 3}, d.Data())

	z, err := matrix.ZerosLike(d)
	require.NoError(t, err)
	assert.Equal(t, 2, z.Rows())

	cp, err := matrix.DenseCopy(hide{d})
	require.NoError(t, err)
	assert.Equal(t, d.Data(), cp.Data())
}
