package estimate_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

var srcPoints2 = [][]float64{
	{4157222.543, 664789.307},
	{4149043.336, 688836.443},
	{4172803.511, 690340.078},
	{4177148.376, 642997.635},
	{4137012.190, 671808.029},
	{4146292.729, 666952.887},
	{4138759.902, 702670.738},
}

// affineDst2: srcPoints2 under Affine2D(sx 0.25, sy 0.30, tx 150, ty 75, 35°).
var affineDst2 = [][]float64{
	{737107.092, 759565.279},
	{731294.227, 764301.907},
	{735901.291, 768078.488},
	{744937.420, 757067.318},
	{731760.522, 758392.053},
	{734496.503, 758529.698},
	{726807.795, 766227.040},
}

// helmertDst2: srcPoints2 under Helmert2D(scale 0.25, tx 150, ty 75, 35°).
var helmertDst2 = [][]float64{
	{756172.466, 732337.103},
	{751049.245, 736088.818},
	{755699.431, 739803.813},
	{763377.835, 730731.677},
	{751027.184, 730876.407},
	{753623.926, 731212.907},
	{746959.564, 737447.332},
}

var srcPoints3 = [][]float64{
	{0, 0, 0},
	{10, 0, 0},
	{0, 10, 0},
	{0, 0, 10},
	{4.5, -3.2, 7.7},
	{-12, 6.1, 2.5},
}

func rows(t testing.TB, r [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r)
	require.NoError(t, err)

	return m
}

func points2(r [][]float64) []r2.Point {
	out := make([]r2.Point, len(r))
	for i, p := range r {
		out[i] = r2.Point{X: p[0], Y: p[1]}
	}

	return out
}

// mapped applies tf to every row of src.
func mapped(t testing.TB, tf transform.Transform, src [][]float64) *matrix.Dense {
	t.Helper()
	out, err := tf.ApplyMatrix(rows(t, src))
	require.NoError(t, err)

	return out
}

// requireRel checks |got - want| <= 0.1%·|want|.
func requireRel(t testing.TB, want, got float64, msgAndArgs ...any) {
	t.Helper()
	require.InEpsilon(t, want, got, 1e-3, msgAndArgs...)
}
