// SPDX-License-Identifier: MIT

// Package residplot draws the residual vectors of a fitted transform in plan
// view: a marker at every mapped point and a segment along its residual,
// exaggerated by a fixed factor so millimetre errors show at map scale.
package residplot

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tidop/geomath/matrix"
)

// DefaultSize is the side of the square output image.
const DefaultSize = 6 * vg.Inch

// ErrExaggeration is returned for a non-positive exaggeration factor.
var ErrExaggeration = errors.New("residplot: exaggeration must be > 0")

var residualColor = color.RGBA{R: 200, A: 255}

// Options controls the figure.
type Options struct {
	Title        string
	Exaggeration float64 // residual length multiplier; 0 means 1
	Size         vg.Length
}

// New builds the plot for points pts (N×D, D >= 2) and residual vectors res
// of the same shape. Only the first two coordinates are drawn.
func New(pts, res matrix.Matrix, opts Options) (*plot.Plot, error) {
	if err := matrix.ValidateNotNil(pts); err != nil {
		return nil, fmt.Errorf("residplot.New: %w", err)
	}
	if err := matrix.ValidateNotNil(res); err != nil {
		return nil, fmt.Errorf("residplot.New: %w", err)
	}
	if err := matrix.ValidateSameShape(pts, res); err != nil {
		return nil, fmt.Errorf("residplot.New: %w", err)
	}
	if pts.Cols() < 2 {
		return nil, fmt.Errorf("residplot.New: %d columns: %w", pts.Cols(), matrix.ErrDimensionMismatch)
	}
	k := opts.Exaggeration
	if k == 0 {
		k = 1
	}
	if k < 0 {
		return nil, ErrExaggeration
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, pts.Rows())
	for i := range xys {
		x, _ := pts.At(i, 0)
		y, _ := pts.At(i, 1)
		dx, _ := res.At(i, 0)
		dy, _ := res.At(i, 1)
		xys[i] = plotter.XY{X: x, Y: y}

		seg, err := plotter.NewLine(plotter.XYs{{X: x, Y: y}, {X: x + k*dx, Y: y + k*dy}})
		if err != nil {
			return nil, fmt.Errorf("residplot.New: point %d: %w", i, err)
		}
		seg.LineStyle.Color = residualColor
		seg.LineStyle.Width = vg.Points(1)
		p.Add(seg)
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("residplot.New: %w", err)
	}
	sc.GlyphStyle.Radius = vg.Points(2)
	p.Add(sc)
	p.Legend.Add(fmt.Sprintf("residual ×%g", k), sc)

	return p, nil
}

// Save renders the plot to path; the format follows the extension
// (.png, .svg, .pdf, ...).
func Save(path string, pts, res matrix.Matrix, opts Options) error {
	p, err := New(pts, res, opts)
	if err != nil {
		return err
	}
	size := opts.Size
	if size == 0 {
		size = DefaultSize
	}

	return p.Save(size, size, path)
}
