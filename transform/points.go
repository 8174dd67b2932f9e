// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/tidop/geomath/matrix"
)

// Point2 maps a single r2.Point through a 2D transform.
func Point2(t Transform, p r2.Point) (r2.Point, error) {
	if t == nil {
		return r2.Point{}, ErrNilTransform
	}
	y, err := t.Apply(matrix.VectorOf(p.X, p.Y))
	if err != nil {
		return r2.Point{}, err
	}

	return r2.Point{X: y.Elem(0), Y: y.Elem(1)}, nil
}

// Point3 maps a single r3.Vector through a 3D transform.
func Point3(t Transform, p r3.Vector) (r3.Vector, error) {
	if t == nil {
		return r3.Vector{}, ErrNilTransform
	}
	y, err := t.Apply(matrix.VectorOf(p.X, p.Y, p.Z))
	if err != nil {
		return r3.Vector{}, err
	}

	return r3.Vector{X: y.Elem(0), Y: y.Elem(1), Z: y.Elem(2)}, nil
}

// Points2 maps a slice of points in one matrix product.
func Points2(t Transform, ps []r2.Point) ([]r2.Point, error) {
	if t == nil {
		return nil, ErrNilTransform
	}
	m, err := MatrixFromPoints2(ps)
	if err != nil {
		return nil, err
	}
	out, err := t.ApplyMatrix(m)
	if err != nil {
		return nil, err
	}

	return PointsFromMatrix2(out)
}

// Points3 is Points2 for r3.Vector.
func Points3(t Transform, ps []r3.Vector) ([]r3.Vector, error) {
	if t == nil {
		return nil, ErrNilTransform
	}
	m, err := MatrixFromPoints3(ps)
	if err != nil {
		return nil, err
	}
	out, err := t.ApplyMatrix(m)
	if err != nil {
		return nil, err
	}

	return PointsFromMatrix3(out)
}

// MatrixFromPoints2 stacks ps into an N×2 matrix.
func MatrixFromPoints2(ps []r2.Point) (*matrix.Dense, error) {
	m, err := matrix.NewDense(len(ps), 2)
	if err != nil {
		return nil, fmt.Errorf("MatrixFromPoints2: %w", err)
	}
	for i, p := range ps {
		if err = m.SetRow(i, matrix.VectorOf(p.X, p.Y)); err != nil {
			return nil, fmt.Errorf("MatrixFromPoints2: point %d: %w", i, err)
		}
	}

	return m, nil
}

// MatrixFromPoints3 stacks ps into an N×3 matrix.
func MatrixFromPoints3(ps []r3.Vector) (*matrix.Dense, error) {
	m, err := matrix.NewDense(len(ps), 3)
	if err != nil {
		return nil, fmt.Errorf("MatrixFromPoints3: %w", err)
	}
	for i, p := range ps {
		if err = m.SetRow(i, matrix.VectorOf(p.X, p.Y, p.Z)); err != nil {
			return nil, fmt.Errorf("MatrixFromPoints3: point %d: %w", i, err)
		}
	}

	return m, nil
}

// PointsFromMatrix2 reads the rows of an N×2 matrix.
func PointsFromMatrix2(m matrix.Matrix) ([]r2.Point, error) {
	if err := matrix.ValidateColumns(m, 2); err != nil {
		return nil, fmt.Errorf("PointsFromMatrix2: %w", err)
	}
	out := make([]r2.Point, m.Rows())
	for i := range out {
		x, _ := m.At(i, 0)
		y, _ := m.At(i, 1)
		out[i] = r2.Point{X: x, Y: y}
	}

	return out, nil
}

// PointsFromMatrix3 reads the rows of an N×3 matrix.
func PointsFromMatrix3(m matrix.Matrix) ([]r3.Vector, error) {
	if err := matrix.ValidateColumns(m, 3); err != nil {
		return nil, fmt.Errorf("PointsFromMatrix3: %w", err)
	}
	out := make([]r3.Vector, m.Rows())
	for i := range out {
		x, _ := m.At(i, 0)
		y, _ := m.At(i, 1)
		z, _ := m.At(i, 2)
		out[i] = r3.Vector{X: x, Y: y, Z: z}
	}

	return out, nil
}
