// SPDX-License-Identifier: MIT

// Package pointio reads and writes point sets as CSV, one point per line.
//
// A line holds Dim coordinates, optionally preceded by a non-numeric point
// label which is ignored. Lines starting with '#' are comments. A first line whose leading
// coordinate does not parse as a number is taken as a header.
package pointio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/tidop/geomath/matrix"
)

var (
	// ErrBadRecord marks a line with the wrong field count or a non-numeric coordinate.
	ErrBadRecord = errors.New("pointio: bad record")

	// ErrNoPoints is returned when the input holds no point lines.
	ErrNoPoints = errors.New("pointio: no points")
)

// Read parses every point line of r into an N×dim matrix. All malformed lines
// are reported together.
func Read(r io.Reader, dim int) (*matrix.Dense, error) {
	if dim < 1 {
		return nil, fmt.Errorf("pointio.Read: dim %d: %w", dim, matrix.ErrInvalidDimensions)
	}
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		pts  [][]float64
		errs error
		seen bool
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		line, _ := cr.FieldPos(0)
		first := !seen
		seen = true
		p, err := parseRecord(rec, dim)
		if err != nil {
			if first && isHeader(rec, dim) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		pts = append(pts, p)
	}
	if errs != nil {
		return nil, errs
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}

	return matrix.NewDenseFrom(pts)
}

// parseRecord accepts dim coordinates or a label followed by dim coordinates.
// A numeric leading field in a dim+1 record is a coordinate, not a label, so
// the record is rejected rather than silently shifted.
func parseRecord(rec []string, dim int) ([]float64, error) {
	switch len(rec) {
	case dim:
	case dim + 1:
		if _, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err == nil {
			return nil, fmt.Errorf("%d numeric fields, want %d: %w", len(rec), dim, ErrBadRecord)
		}
		rec = rec[1:]
	default:
		return nil, fmt.Errorf("%d fields, want %d or %d: %w", len(rec), dim, dim+1, ErrBadRecord)
	}
	p := make([]float64, dim)
	for i, f := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d %q: %w", i, f, ErrBadRecord)
		}
		p[i] = v
	}

	return p, nil
}

// isHeader reports whether rec looks like column names rather than data.
func isHeader(rec []string, dim int) bool {
	if len(rec) != dim && len(rec) != dim+1 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[len(rec)-dim]), 64)

	return err != nil
}

// Write emits one CSV line per row of pts using the shortest exact decimal
// form of each coordinate.
func Write(w io.Writer, pts matrix.Matrix) error {
	if err := matrix.ValidateNotNil(pts); err != nil {
		return fmt.Errorf("pointio.Write: %w", err)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, pts.Cols())
	for i := 0; i < pts.Rows(); i++ {
		for j := range rec {
			v, err := pts.At(i, j)
			if err != nil {
				return fmt.Errorf("pointio.Write: %w", err)
			}
			rec[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("pointio.Write: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadFile opens path and calls Read.
func ReadFile(path string, dim int) (pts *matrix.Dense, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	return Read(f, dim)
}

// WriteFile creates (or truncates) path and calls Write.
func WriteFile(path string, pts matrix.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	return Write(f, pts)
}
