// SPDX-License-Identifier: MIT

// Package matrix - Block: non-owning rectangular window into a Dense.
//
// Purpose:
//   - Sub-matrix read/write without copy: element (i,j) of the block is
//     element (iniRow+i, iniCol+j) of the parent.
//   - Bounds are INCLUSIVE on both ends: Rows() == endRow-iniRow+1.
//   - Block-to-block assignment between intersecting windows of the same
//     parent goes through a temporary copy so unread source cells are never
//     overwritten.
//
// Lifetime:
//   - A Block records the parent's buffer generation at creation. After the
//     parent is resized every accessor returns ErrStaleBlock.

package matrix

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

const (
	ctxBlockAt     = "At"
	ctxBlockSet    = "Set"
	ctxBlockAssign = "Assign"
)

// Block is a view into a Dense. Writes go straight to the parent storage.
type Block struct {
	base           *Dense
	iniRow, endRow int    // inclusive row range in base
	iniCol, endCol int    // inclusive column range in base
	gen            uint64 // base.gen at creation
}

var _ Matrix = (*Block)(nil)

func blockErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Block.%s(%d,%d): %w", method, row, col, err)
}

// Rows returns endRow-iniRow+1.
func (b *Block) Rows() int { return b.endRow - b.iniRow + 1 }

// Cols returns endCol-iniCol+1.
func (b *Block) Cols() int { return b.endCol - b.iniCol + 1 }

// Bounds returns the inclusive window in parent coordinates.
func (b *Block) Bounds() (iniRow, endRow, iniCol, endCol int) {
	return b.iniRow, b.endRow, b.iniCol, b.endCol
}

// Parent returns the Dense the block views.
func (b *Block) Parent() *Dense { return b.base }

// Stale reports whether the parent was resized after the block was taken.
func (b *Block) Stale() bool { return b.gen != b.base.gen }

// offset maps local (i,j) to the parent flat index without checks.
func (b *Block) offset(i, j int) int {
	return (b.iniRow+i)*b.base.c + b.iniCol + j
}

// check validates the generation and local bounds.
func (b *Block) check(method string, i, j int) error {
	if b.Stale() {
		return blockErrorf(method, i, j, ErrStaleBlock)
	}
	if i < 0 || i > b.endRow-b.iniRow || j < 0 || j > b.endCol-b.iniCol {
		return blockErrorf(method, i, j, ErrOutOfRange)
	}

	return nil
}

// At reads element (i,j) in block-local coordinates.
//
// Errors:
//   - ErrOutOfRange when i > endRow-iniRow or j > endCol-iniCol (or negative).
//   - ErrStaleBlock after a parent Resize.
func (b *Block) At(i, j int) (float64, error) {
	if err := b.check(ctxBlockAt, i, j); err != nil {
		return 0, err
	}

	return b.base.data[b.offset(i, j)], nil
}

// Elem is the unchecked accessor; the caller guarantees the indices and
// that the parent has not been resized.
func (b *Block) Elem(i, j int) float64 { return b.base.data[b.offset(i, j)] }

// Set writes through to the parent, honoring the parent numeric policy.
func (b *Block) Set(i, j int, v float64) error {
	if err := b.check(ctxBlockSet, i, j); err != nil {
		return err
	}
	if b.base.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return blockErrorf(ctxBlockSet, i, j, ErrNaNInf)
	}
	b.base.data[b.offset(i, j)] = v

	return nil
}

// Clone materializes the window into a detached Dense.
// A stale block clones to nil; use Dense to get the error.
func (b *Block) Clone() Matrix {
	d, err := b.Dense()
	if err != nil {
		return nil
	}

	return d
}

// Dense returns a detached copy of the window. Later writes to the parent
// are not reflected in the copy.
func (b *Block) Dense() (*Dense, error) {
	if b.Stale() {
		return nil, fmt.Errorf("Block.Dense: %w", ErrStaleBlock)
	}
	r, c := b.Rows(), b.Cols()
	out := &Dense{r: r, c: c, data: make([]float64, r*c), validateNaNInf: b.base.validateNaNInf}
	for i := 0; i < r; i++ {
		src := b.offset(i, 0)
		copy(out.data[i*c:(i+1)*c], b.base.data[src:src+c])
	}

	return out, nil
}

// rect returns the window as a closed r2.Rect in parent coordinates:
// X spans columns, Y spans rows. Closed intervals match the inclusive bounds.
func (b *Block) rect() r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: float64(b.iniCol), Y: float64(b.iniRow)},
		r2.Point{X: float64(b.endCol), Y: float64(b.endRow)},
	)
}

// Overlaps reports whether both blocks view the same parent and their
// windows share at least one cell.
func (b *Block) Overlaps(o *Block) bool {
	if b == nil || o == nil || b.base != o.base {
		return false
	}

	return b.rect().Intersects(o.rect())
}

// Assign copies src into b element-wise.
//
// Implementation:
//   - Stage 1: both blocks must be live and of identical size.
//   - Stage 2: if src and b share a parent and their windows intersect,
//     src is first materialized into a temporary Dense.
//   - Stage 3: row-by-row copy into the parent storage.
//
// Errors:
//   - ErrNilMatrix, ErrStaleBlock, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) only on the overlapping path.
func (b *Block) Assign(src *Block) error {
	if src == nil {
		return blockErrorf(ctxBlockAssign, 0, 0, ErrNilMatrix)
	}
	if b.Stale() || src.Stale() {
		return blockErrorf(ctxBlockAssign, 0, 0, ErrStaleBlock)
	}
	if b.Rows() != src.Rows() || b.Cols() != src.Cols() {
		return fmt.Errorf("Block.%s: %dx%d from %dx%d: %w",
			ctxBlockAssign, b.Rows(), b.Cols(), src.Rows(), src.Cols(), ErrDimensionMismatch)
	}

	r, c := b.Rows(), b.Cols()
	if b.Overlaps(src) {
		tmp, err := src.Dense()
		if err != nil {
			return err
		}
		for i := 0; i < r; i++ {
			dst := b.offset(i, 0)
			copy(b.base.data[dst:dst+c], tmp.data[i*c:(i+1)*c])
		}

		return nil
	}

	for i := 0; i < r; i++ {
		dst, from := b.offset(i, 0), src.offset(i, 0)
		copy(b.base.data[dst:dst+c], src.base.data[from:from+c])
	}

	return nil
}

// AssignMatrix copies any Matrix of the same size into the window.
// A *Block source goes through Assign; the parent Dense itself is
// materialized first.
func (b *Block) AssignMatrix(src Matrix) error {
	if src == nil {
		return blockErrorf(ctxBlockAssign, 0, 0, ErrNilMatrix)
	}
	if sb, ok := src.(*Block); ok {
		return b.Assign(sb)
	}
	if b.Stale() {
		return blockErrorf(ctxBlockAssign, 0, 0, ErrStaleBlock)
	}
	if b.Rows() != src.Rows() || b.Cols() != src.Cols() {
		return fmt.Errorf("Block.%s: %dx%d from %dx%d: %w",
			ctxBlockAssign, b.Rows(), b.Cols(), src.Rows(), src.Cols(), ErrDimensionMismatch)
	}
	if d, ok := src.(*Dense); ok && d == b.base {
		src = d.clone()
	}

	r, c := b.Rows(), b.Cols()
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = src.At(i, j); err != nil {
				return fmt.Errorf("Block.%s: %w", ctxBlockAssign, err)
			}
			if err = b.Set(i, j, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Fill sets every element of the window to v.
func (b *Block) Fill(v float64) error {
	if b.Stale() {
		return blockErrorf(ctxBlockSet, 0, 0, ErrStaleBlock)
	}
	if b.base.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return blockErrorf(ctxBlockSet, 0, 0, ErrNaNInf)
	}
	r, c := b.Rows(), b.Cols()
	for i := 0; i < r; i++ {
		row := b.base.data[b.offset(i, 0) : b.offset(i, 0)+c]
		for j := range row {
			row[j] = v
		}
	}

	return nil
}
