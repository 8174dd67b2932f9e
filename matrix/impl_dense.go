// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Support no-copy windows (Block) whose lifetime is tied to the buffer generation.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Elem: O(1); Clone: O(r*c); Block: O(1); Resize: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxApply    = "Apply"    // method tag used in error wrappers
	ctxRow      = "Row"      // row accessor tag
	ctxCol      = "Col"      // column accessor tag
	ctxSwapRows = "SwapRows" // row exchange tag
	ctxBlock    = "Block"    // ctor tag for Dense.Block
	ctxResize   = "Resize"   // reallocation tag
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Inputs:
//   - method: context tag (ctxAt/ctxSet/ctxApply/...)
//   - row, col: coordinates
//   - err: sentinel (e.g., ErrOutOfRange, ErrNaNInf)
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is the dynamic-size owning matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - gen counts reallocations; Blocks compare it to detect a resized parent.
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts
	data           []float64 // contiguous row-major storage (len == r*c)
	gen            uint64    // buffer generation, bumped by Resize
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize the default policy.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseWithOptions is NewDense with an explicit numeric policy.
func NewDenseWithOptions(rows, cols int, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.validateNaNInf = gatherOptions(opts...).validateNaNInf

	return m, nil
}

// NewDenseFrom builds a matrix from nested rows (copying the values).
// Every row must have the same, non-zero length.
//
// Errors:
//   - ErrBadShape for an empty or ragged input.
//   - ErrNaNInf when a value is not finite (default policy).
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewDenseFrom: %w", ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	m, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrBadShape)
		}
		for j = 0; j < c; j++ {
			if err = m.Set(i, j, rows[i][j]); err != nil {
				return nil, fmt.Errorf("NewDenseFrom: %w", err)
			}
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates and method name.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Elem is the unchecked accessor: the caller guarantees 0<=row<Rows and
// 0<=col<Cols. Violations read a neighbouring cell or panic on the slice bound.
func (m *Dense) Elem(row, col int) float64 { return m.data[row*m.c+col] }

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers under the policy.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy, fresh generation).
func (m *Dense) Clone() Matrix { return m.clone() }

func (m *Dense) clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Data returns a copy of the row-major buffer.
func (m *Dense) Data() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// String HUMAN-READABLE dump of rows for diagnostics.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Row returns a copy of row i as a Vector.
func (m *Dense) Row(i int) (*Vector, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return &Vector{data: out}, nil
}

// Col returns a copy of column j as a Vector.
func (m *Dense) Col(j int) (*Vector, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return &Vector{data: out}, nil
}

// firstNonFinite returns the index of the first NaN/Inf in xs when m
// validates them, else -1. SetRow and SetCol check before writing so a
// rejected vector leaves m untouched.
func (m *Dense) firstNonFinite(xs []float64) int {
	if !m.validateNaNInf {
		return -1
	}
	for k, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return k
		}
	}

	return -1
}

// SetRow overwrites row i with v; len(v) must equal Cols.
func (m *Dense) SetRow(i int, v *Vector) error {
	if v == nil {
		return denseErrorf(ctxRow, i, 0, ErrNilMatrix)
	}
	if i < 0 || i >= m.r {
		return denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	if v.Len() != m.c {
		return denseErrorf(ctxRow, i, 0, ErrDimensionMismatch)
	}
	if k := m.firstNonFinite(v.data); k >= 0 {
		return denseErrorf(ctxRow, i, k, ErrNaNInf)
	}
	copy(m.data[i*m.c:(i+1)*m.c], v.data)

	return nil
}

// SetCol overwrites column j with v; len(v) must equal Rows.
func (m *Dense) SetCol(j int, v *Vector) error {
	if v == nil {
		return denseErrorf(ctxCol, 0, j, ErrNilMatrix)
	}
	if j < 0 || j >= m.c {
		return denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	if v.Len() != m.r {
		return denseErrorf(ctxCol, 0, j, ErrDimensionMismatch)
	}
	if k := m.firstNonFinite(v.data); k >= 0 {
		return denseErrorf(ctxCol, k, j, ErrNaNInf)
	}
	for i, x := range v.data {
		m.data[i*m.c+j] = x
	}

	return nil
}

// SwapRows exchanges rows i and k in place.
func (m *Dense) SwapRows(i, k int) error {
	if i < 0 || i >= m.r || k < 0 || k >= m.r {
		return denseErrorf(ctxSwapRows, i, k, ErrOutOfRange)
	}
	if i == k {
		return nil
	}
	ri := m.data[i*m.c : (i+1)*m.c]
	rk := m.data[k*m.c : (k+1)*m.c]
	for j := range ri {
		ri[j], rk[j] = rk[j], ri[j]
	}

	return nil
}

// Resize reallocates the matrix as rows×cols, keeping the overlapping
// top-left region and zero-filling the rest.
//
// Behavior highlights:
//   - Every Block taken before the call becomes stale (ErrStaleBlock).
//   - Resizing to the current shape is a no-op and keeps blocks valid.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (m *Dense) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return denseErrorf(ctxResize, rows, cols, ErrInvalidDimensions)
	}
	if rows == m.r && cols == m.c {
		return nil
	}
	buf := make([]float64, rows*cols)
	rr, cc := min(rows, m.r), min(cols, m.c)
	for i := 0; i < rr; i++ {
		copy(buf[i*cols:i*cols+cc], m.data[i*m.c:i*m.c+cc])
	}
	m.r, m.c, m.data = rows, cols, buf
	m.gen++

	return nil
}

// Block creates a no-copy window over rows iniRow..endRow and columns
// iniCol..endCol, both ranges inclusive.
//
// Implementation:
//   - Stage 1: validate 0<=ini<=end<extent for both axes.
//   - Stage 2: return a Block recording the current buffer generation.
//
// Errors:
//   - ErrOutOfRange when the window does not fit the matrix.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Block(iniRow, endRow, iniCol, endCol int) (*Block, error) {
	if iniRow < 0 || iniCol < 0 || endRow < iniRow || endCol < iniCol || endRow >= m.r || endCol >= m.c {
		return nil, fmt.Errorf("Dense.%s(%d..%d,%d..%d) on %dx%d: %w",
			ctxBlock, iniRow, endRow, iniCol, endCol, m.r, m.c, ErrOutOfRange)
	}

	return &Block{
		base:   m,
		iniRow: iniRow,
		endRow: endRow,
		iniCol: iniCol,
		endCol: endCol,
		gen:    m.gen,
	}, nil
}

// RowBlock is Block(i, i, 0, Cols-1).
func (m *Dense) RowBlock(i int) (*Block, error) { return m.Block(i, i, 0, m.c-1) }

// ColBlock is Block(0, Rows-1, j, j).
func (m *Dense) ColBlock(j int) (*Block, error) { return m.Block(0, m.r-1, j, j) }

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in-place.
//
// Behavior highlights:
//   - Deterministic row-major order; no extra allocations.
//   - Respects validateNaNInf (rejects NaN/±Inf when enabled).
//   - Early error aborts; elements written before the error remain updated.
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}
