package transform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
)

func deg(d float64) float64 { return d * math.Pi / 180 }

// srcPoints2 and affineDst2 are UTM-scale coordinates related by
// NewAffine2D(0.25, 0.30, 150, 75, 35°), rounded to the millimetre.
var srcPoints2 = [][]float64{
	{4157222.543, 664789.307},
	{4149043.336, 688836.443},
	{4172803.511, 690340.078},
	{4177148.376, 642997.635},
	{4137012.190, 671808.029},
	{4146292.729, 666952.887},
	{4138759.902, 702670.738},
}

var affineDst2 = [][]float64{
	{737107.092, 759565.279},
	{731294.227, 764301.907},
	{735901.291, 768078.488},
	{744937.420, 757067.318},
	{731760.522, 758392.053},
	{734496.503, 758529.698},
	{726807.795, 766227.040},
}

// helmertDst2 is srcPoints2 under NewHelmert2D(0.25, 150, 75, 35°).
var helmertDst2 = [][]float64{
	{756172.466, 732337.103},
	{751049.245, 736088.818},
	{755699.431, 739803.813},
	{763377.835, 730731.677},
	{751027.184, 730876.407},
	{753623.926, 731212.907},
	{746959.564, 737447.332},
}

func rows(t testing.TB, r [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r)
	require.NoError(t, err)

	return m
}

func requireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, 0, atol)
	require.NoError(t, err)
	require.True(t, ok, "want\n%v\ngot\n%v", want, got)
}
