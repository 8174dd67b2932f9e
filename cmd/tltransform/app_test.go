package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tidop/geomath/estimate"
	"github.com/tidop/geomath/internal/logging"
	"github.com/tidop/geomath/internal/pointio"
)

const srcCSV = `id,x,y
P1,4157222.543,664789.307
P2,4149043.336,688836.443
P3,4172803.511,690340.078
P4,4177148.376,642997.635
P5,4137012.190,671808.029
P6,4146292.729,666952.887
P7,4138759.902,702670.738
`

const helmertCSV = `id,x,y
P1,756172.466,732337.103
P2,751049.245,736088.818
P3,755699.431,739803.813
P4,763377.835,730731.677
P5,751027.184,730876.407
P6,753623.926,731212.907
P7,746959.564,737447.332
`

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestEstimateThenApplyInverse(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "src.csv", srcCSV)
	dst := writeTemp(t, dir, "dst.csv", helmertCSV)

	logger, logs := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer
	app := NewApp(&out, &out, logger)
	require.NoError(t, app.Run([]string{"tltransform", "estimate", "--model", "helmert", "--src", src, "--dst", dst}))

	var rep report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "helmert", rep.Model)
	assert.Equal(t, 2, rep.Dim)
	assert.Equal(t, 7, rep.Points)
	assert.InEpsilon(t, 0.25, rep.Scale[0], 1e-3)
	require.NotNil(t, rep.Angle)
	assert.InEpsilon(t, 35*3.141592653589793/180, *rep.Angle, 1e-3)
	assert.Less(t, rep.RMSE, 1e-3)
	require.NotNil(t, rep.Condition)
	require.Equal(t, 1, logs.FilterMessage("transform estimated").Len())

	params := writeTemp(t, dir, "params.json", out.String())
	back := filepath.Join(dir, "back.csv")
	out.Reset()
	app = NewApp(&out, &out, logger)
	require.NoError(t, app.Run([]string{"tltransform", "apply", "--params", params, "--src", dst, "--out", back, "--inverse"}))

	got, err := pointio.ReadFile(back, 2)
	require.NoError(t, err)
	want, err := pointio.Read(strings.NewReader(srcCSV), 2)
	require.NoError(t, err)
	for i, v := range want.Data() {
		assert.InDelta(t, v, got.Data()[i], 0.05)
	}
}

func TestApplyToStdout(t *testing.T) {
	dir := t.TempDir()
	params := writeTemp(t, dir, "p.json", `{"dim":2,"matrix":[[1,0,10],[0,1,-5]]}`)
	pts := writeTemp(t, dir, "p.csv", "0,0\n1,2\n")

	logger, _ := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer
	require.NoError(t, NewApp(&out, &out, logger).Run([]string{"tltransform", "apply", "--params", params, "--src", pts}))
	assert.Equal(t, "10,-5\n11,-3\n", out.String())
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "src.csv", srcCSV)
	logger, _ := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer

	err := NewApp(&out, &out, logger).Run([]string{"tltransform", "estimate", "--model", "projective", "--src", src, "--dst", src})
	require.ErrorIs(t, err, estimate.ErrUnknownModel)

	err = NewApp(&out, &out, logger).Run([]string{"tltransform", "estimate",
		"--src", filepath.Join(dir, "a.csv"), "--dst", filepath.Join(dir, "b.csv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.csv")
	assert.Contains(t, err.Error(), "b.csv")

	bad := writeTemp(t, dir, "bad.json", `{"dim":2,"matrix":[[1,0,0]]}`)
	err = NewApp(&out, &out, logger).Run([]string{"tltransform", "apply", "--params", bad, "--src", src})
	require.ErrorIs(t, err, errParams)
}

func TestPlotWritesImage(t *testing.T) {
	dir := t.TempDir()
	src := writeTemp(t, dir, "src.csv", srcCSV)
	dst := writeTemp(t, dir, "dst.csv", helmertCSV)
	img := filepath.Join(dir, "res.png")

	logger, logs := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer
	require.NoError(t, NewApp(&out, &out, logger).Run([]string{"tltransform", "plot",
		"--model", "helmert", "--src", src, "--dst", dst, "--out", img}))

	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Equal(t, 1, logs.FilterMessage("residual plot written").Len())
}

func TestEstimateRejectsWiderNumericFile(t *testing.T) {
	dir := t.TempDir()
	// 3D points read with the default --dim 2.
	pts := writeTemp(t, dir, "p3.csv", "0,0,0\n1,0,0\n0,1,0\n0,0,1\n")
	logger, _ := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer

	err := NewApp(&out, &out, logger).Run([]string{"tltransform", "estimate", "--src", pts, "--dst", pts})
	require.ErrorIs(t, err, pointio.ErrBadRecord)
	assert.Empty(t, out.String())
}

func TestEstimate3DReportsQuaternion(t *testing.T) {
	dir := t.TempDir()
	// dst = Rz(90°)·src + (1, 2, 3).
	src := writeTemp(t, dir, "src.csv", "A,0,0,0\nB,1,0,0\nC,0,1,0\nD,0,0,1\n")
	dst := writeTemp(t, dir, "dst.csv", "A,1,2,3\nB,1,3,3\nC,0,2,3\nD,1,2,4\n")

	logger, _ := logging.NewObservedLogger(zapcore.InfoLevel)
	var out bytes.Buffer
	require.NoError(t, NewApp(&out, &out, logger).Run([]string{"tltransform", "estimate",
		"--model", "helmert", "--dim", "3", "--euler", "zyx", "--src", src, "--dst", dst}))

	var rep report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, 3, rep.Dim)
	assert.InDeltaSlice(t, []float64{0, 0, 0.7071067811865476, 0.7071067811865476}, rep.Quaternion, 1e-9)
	assert.Equal(t, "zyx", rep.EulerOrder)
	assert.InDeltaSlice(t, []float64{3.141592653589793 / 2, 0, 0}, rep.Euler, 1e-9)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, rep.Translation, 1e-9)
	assert.Nil(t, rep.Angle)

	err := NewApp(&out, &out, logger).Run([]string{"tltransform", "estimate",
		"--euler", "xxx", "--src", src, "--dst", dst})
	require.Error(t, err)
}
