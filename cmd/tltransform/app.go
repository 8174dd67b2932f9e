// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tidop/geomath/estimate"
	"github.com/tidop/geomath/internal/logging"
	"github.com/tidop/geomath/internal/pointio"
	"github.com/tidop/geomath/internal/residplot"
	"github.com/tidop/geomath/matrix"
	"github.com/tidop/geomath/transform"
)

// Flags.
const (
	flagDebug   = "debug"
	flagModel   = "model"
	flagSrc     = "src"
	flagDst     = "dst"
	flagDim     = "dim"
	flagParams  = "params"
	flagOut     = "out"
	flagInverse = "inverse"
	flagExag    = "exaggeration"
	flagEuler   = "euler"
)

var errParams = errors.New("invalid transform parameters")

// params is the on-disk transform: the Dim×(Dim+1) matrix [A | t]. An
// estimate report decodes as params, so its output feeds apply directly.
type params struct {
	Dim    int         `json:"dim"`
	Matrix [][]float64 `json:"matrix"`
}

// report is the JSON written by estimate.
type report struct {
	params
	Model       string    `json:"model"`
	Points      int       `json:"points"`
	Scale       []float64 `json:"scale"`
	Angle       *float64  `json:"angle,omitempty"`
	// Quaternion [x y z w] and Euler angles are reported for 3D transforms
	// whose linear part is a scaled proper rotation.
	Quaternion  []float64 `json:"quaternion,omitempty"`
	EulerOrder  string    `json:"euler_order,omitempty"`
	Euler       []float64 `json:"euler,omitempty"`
	Translation []float64 `json:"translation"`
	RMSE        float64   `json:"rmse"`
	Rank        int       `json:"rank"`
	Unknowns    int       `json:"unknowns"`
	// Condition is omitted when infinite.
	Condition *float64 `json:"condition,omitempty"`
}

type runner struct {
	out    io.Writer
	logger *zap.SugaredLogger
}

// NewApp returns the command with output on out and usage errors on errOut.
// A nil logger is built from the --debug flag before any action runs.
func NewApp(out, errOut io.Writer, logger *zap.SugaredLogger) *cli.App {
	r := &runner{out: out, logger: logger}

	return &cli.App{
		Name:            "tltransform",
		Usage:           "estimate and apply 2D/3D geometric transforms",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Usage:   "enable debug logging",
				EnvVars: []string{"TLTRANSFORM_DEBUG"},
			},
		},
		Before: r.before,
		After:  r.after,
		Commands: []*cli.Command{
			{
				Name:      "estimate",
				Usage:     "fit a transform to corresponding points",
				UsageText: "tltransform estimate --src FILE --dst FILE [--model NAME] [--dim N]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagModel,
						Value: estimate.ModelAffine.String(),
						Usage: "translation, rotation, scaling, affine, helmert or umeyama",
					},
					&cli.StringFlag{Name: flagSrc, Required: true, Usage: "source points `FILE` (CSV)"},
					&cli.StringFlag{Name: flagDst, Required: true, Usage: "target points `FILE` (CSV)"},
					&cli.IntFlag{Name: flagDim, Value: 2, Usage: "point dimension, 2 or 3"},
					&cli.StringFlag{
						Name:  flagEuler,
						Value: transform.EulerXYZ.String(),
						Usage: "axis order of the reported 3D Euler angles (xyz, zyx, zxz, ...)",
					},
				},
				Action: r.estimateAction,
			},
			{
				Name:      "apply",
				Usage:     "apply a transform to a point file",
				UsageText: "tltransform apply --params FILE --src FILE [--out FILE] [--inverse]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagParams, Required: true, Usage: "transform `FILE` (JSON)"},
					&cli.StringFlag{Name: flagSrc, Required: true, Usage: "input points `FILE` (CSV)"},
					&cli.StringFlag{Name: flagOut, Usage: "output `FILE`; stdout when empty"},
					&cli.BoolFlag{Name: flagInverse, Usage: "apply the inverse transform"},
				},
				Action: r.applyAction,
			},
			{
				Name:      "plot",
				Usage:     "fit a transform and draw its residual vectors",
				UsageText: "tltransform plot --src FILE --dst FILE --out FILE.png [--model NAME] [--exaggeration K]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagModel, Value: estimate.ModelAffine.String(), Usage: "transform model"},
					&cli.StringFlag{Name: flagSrc, Required: true, Usage: "source points `FILE` (CSV)"},
					&cli.StringFlag{Name: flagDst, Required: true, Usage: "target points `FILE` (CSV)"},
					&cli.IntFlag{Name: flagDim, Value: 2, Usage: "point dimension, 2 or 3"},
					&cli.StringFlag{Name: flagOut, Required: true, Usage: "image `FILE`; format from extension"},
					&cli.Float64Flag{Name: flagExag, Value: 1000, Usage: "residual length multiplier"},
				},
				Action: r.plotAction,
			},
		},
	}
}

func (r *runner) before(c *cli.Context) error {
	if r.logger != nil {
		return nil
	}
	l, err := logging.NewLogger("tltransform", c.Bool(flagDebug))
	if err != nil {
		return err
	}
	r.logger = l

	return nil
}

func (r *runner) after(*cli.Context) error {
	if r.logger == nil {
		return nil
	}
	// Sync on a terminal stderr reports ENOTTY/EINVAL; nothing to recover.
	_ = r.logger.Sync()

	return nil
}

// fit loads both point files and estimates the model named by --model.
func (r *runner) fit(c *cli.Context) (src, dst *matrix.Dense, res *estimate.Result, err error) {
	model, err := estimate.ParseModel(c.String(flagModel))
	if err != nil {
		return nil, nil, nil, err
	}
	dim := c.Int(flagDim)
	src, errSrc := pointio.ReadFile(c.String(flagSrc), dim)
	dst, errDst := pointio.ReadFile(c.String(flagDst), dim)
	if err = multierr.Combine(errSrc, errDst); err != nil {
		return nil, nil, nil, err
	}
	r.logger.Debugw("points loaded", "src", c.String(flagSrc), "dst", c.String(flagDst), "n", src.Rows(), "dim", dim)

	start := time.Now()
	if res, err = estimate.Fit(model, src, dst); err != nil {
		return nil, nil, nil, err
	}
	r.logger.Infow("transform estimated",
		"model", model, "points", res.Points, "rmse", res.RMSE,
		"rank", res.Rank, "unknowns", res.Unknowns, "elapsed", time.Since(start))
	if res.RankDeficient() {
		r.logger.Warnw("design matrix is rank deficient; points may be collinear or coincident",
			"rank", res.Rank, "unknowns", res.Unknowns)
	}

	return src, dst, res, nil
}

func (r *runner) estimateAction(c *cli.Context) error {
	order, err := transform.ParseEulerOrder(c.String(flagEuler))
	if err != nil {
		return err
	}
	_, _, res, err := r.fit(c)
	if err != nil {
		return err
	}

	rep, err := newReport(res, order)
	if err != nil {
		return err
	}
	r.logger.Debugw("parameters", "matrix", rep.Matrix)

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

func newReport(res *estimate.Result, order transform.EulerOrder) (*report, error) {
	a, err := transform.AsAffine(res.Transform)
	if err != nil {
		return nil, err
	}
	dim := a.Dim()
	m := a.Matrix()
	rep := &report{
		params:      params{Dim: dim, Matrix: make([][]float64, dim)},
		Model:       res.Model.String(),
		Points:      res.Points,
		Scale:       a.Scale().Raw(),
		Translation: a.Translation().Vector().Raw(),
		RMSE:        res.RMSE,
		Rank:        res.Rank,
		Unknowns:    res.Unknowns,
	}
	for i := range rep.Matrix {
		row, _ := m.Row(i)
		rep.Matrix[i] = row.Raw()
	}
	if dim == 2 {
		ang, _ := a.Angle()
		rep.Angle = &ang
	}
	if dim == 3 {
		if rot, ok := properRotation(a); ok {
			q, _ := rot.Quaternion()
			rep.Quaternion = []float64{q.X, q.Y, q.Z, q.W}
			a1, a2, a3, _ := rot.EulerAnglesOrder(order)
			rep.EulerOrder = order.String()
			rep.Euler = []float64{a1, a2, a3}
		}
	}
	if !math.IsInf(res.Condition, 0) {
		cond := res.Condition
		rep.Condition = &cond
	}

	return rep, nil
}

// properRotation returns the rotation of a when its scale-normalized linear
// part is orthonormal with det +1; sheared or reflecting fits report none.
func properRotation(a *transform.Affine) (*transform.Rotation, bool) {
	m, err := a.Rotation()
	if err != nil {
		return nil, false
	}
	rot, err := transform.NewRotation(m)
	if err != nil {
		return nil, false
	}

	return rot, true
}

// loadParams decodes a params file into an affine transform.
func loadParams(path string) (*transform.Affine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p params
	if err = json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(p.Matrix) != p.Dim {
		return nil, fmt.Errorf("%s: %d matrix rows for dim %d: %w", path, len(p.Matrix), p.Dim, errParams)
	}
	m, err := matrix.NewDenseFrom(p.Matrix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errParams, err)
	}
	a, err := transform.NewAffine(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errParams, err)
	}

	return a, nil
}

func (r *runner) applyAction(c *cli.Context) error {
	a, err := loadParams(c.String(flagParams))
	if err != nil {
		return err
	}
	if c.Bool(flagInverse) {
		if a, err = a.Inverse(); err != nil {
			return err
		}
	}
	pts, err := pointio.ReadFile(c.String(flagSrc), a.Dim())
	if err != nil {
		return err
	}
	out, err := a.ApplyMatrix(pts)
	if err != nil {
		return err
	}
	r.logger.Infow("transform applied", "points", out.Rows(), "dim", a.Dim(), "inverse", c.Bool(flagInverse))

	if path := c.String(flagOut); path != "" {
		return pointio.WriteFile(path, out)
	}

	return pointio.Write(r.out, out)
}

func (r *runner) plotAction(c *cli.Context) error {
	src, dst, res, err := r.fit(c)
	if err != nil {
		return err
	}
	vec, err := estimate.ResidualVectors(res.Transform, src, dst)
	if err != nil {
		return err
	}
	mapped, err := res.Transform.ApplyMatrix(src)
	if err != nil {
		return err
	}
	opts := residplot.Options{
		Title:        fmt.Sprintf("%s residuals, RMSE %.4g", res.Model, res.RMSE),
		Exaggeration: c.Float64(flagExag),
	}
	if err = residplot.Save(c.String(flagOut), mapped, vec, opts); err != nil {
		return err
	}
	r.logger.Infow("residual plot written", "path", c.String(flagOut))

	return nil
}
