package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidop/geomath/matrix"
)

func TestBlockInclusiveBounds(t *testing.T) {
	m := Sequential(t, 4, 5)
	b, err := m.Block(1, 2, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 2, b.Rows())
	require.Equal(t, 3, b.Cols())

	v, err := b.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 6.0, v) // m(1,1)

	v, err = b.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 13.0, v) // m(2,3)
	require.Equal(t, 13.0, b.Elem(1, 2))

	single, err := m.Block(3, 3, 4, 4)
	require.NoError(t, err)
	require.Equal(t, 1, single.Rows())
	require.Equal(t, 1, single.Cols())
}

func TestBlockOutOfRange(t *testing.T) {
	m := Sequential(t, 3, 3)
	b, err := m.Block(0, 1, 0, 1)
	require.NoError(t, err)

	_, err = b.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = b.At(0, -1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, b.Set(0, 2, 1), matrix.ErrOutOfRange)

	for _, tc := range []struct{ r0, r1, c0, c1 int }{
		{-1, 1, 0, 1}, {0, 3, 0, 1}, {2, 1, 0, 1}, {0, 1, 2, 3},
	} {
		_, err = m.Block(tc.r0, tc.r1, tc.c0, tc.c1)
		require.ErrorIs(t, err, matrix.ErrOutOfRange, "%+v", tc)
	}
}

func TestBlockWritesThrough(t *testing.T) {
	m := MustDense(t, 3, 3)
	b, err := m.Block(1, 2, 1, 2)
	require.NoError(t, err)
	require.NoError(t, b.Set(1, 1, 5))
	require.Equal(t, 5.0, m.Elem(2, 2))

	require.NoError(t, b.Fill(1))
	require.Equal(t, []float64{0, 0, 0, 0, 1, 1, 0, 1, 1}, m.Data())
}

func TestBlockDenseIsDetached(t *testing.T) {
	m := Sequential(t, 3, 3)
	b, err := m.Block(0, 1, 1, 2)
	require.NoError(t, err)
	d, err := b.Dense()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 4, 5}, d.Data())

	require.NoError(t, m.Set(0, 1, 100))
	require.Equal(t, 1.0, d.Elem(0, 0))

	cl := b.Clone()
	require.IsType(t, &matrix.Dense{}, cl)
}

func TestBlockAssignSizeChecked(t *testing.T) {
	m := Sequential(t, 4, 4)
	a, _ := m.Block(0, 1, 0, 1)
	b, _ := m.Block(0, 2, 0, 1)
	require.ErrorIs(t, a.Assign(b), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, a.AssignMatrix(MustDense(t, 3, 3)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, a.Assign(nil), matrix.ErrNilMatrix)
}

// simulateAssign is the reference: copy src out completely, then write dst.
func simulateAssign(src []float64, cols, sr, sc, dr, dc, h, w int) []float64 {
	out := append([]float64(nil), src...)
	tmp := make([]float64, h*w)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			tmp[i*w+j] = src[(sr+i)*cols+sc+j]
		}
	}
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			out[(dr+i)*cols+dc+j] = tmp[i*w+j]
		}
	}

	return out
}

func TestBlockAssignOverlappingMatchesCopyFirst(t *testing.T) {
	cases := []struct {
		name           string
		sr, sc, dr, dc int
		h, w           int
	}{
		{"shift down-right", 0, 0, 1, 1, 4, 4},
		{"shift up-left", 1, 1, 0, 0, 4, 4},
		{"shift right", 0, 0, 0, 2, 5, 3},
		{"shift down", 0, 0, 2, 0, 3, 5},
		{"disjoint", 0, 0, 3, 3, 2, 2},
		{"identical", 1, 1, 1, 1, 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Sequential(t, 5, 5)
			want := simulateAssign(m.Data(), 5, tc.sr, tc.sc, tc.dr, tc.dc, tc.h, tc.w)

			src, err := m.Block(tc.sr, tc.sr+tc.h-1, tc.sc, tc.sc+tc.w-1)
			require.NoError(t, err)
			dst, err := m.Block(tc.dr, tc.dr+tc.h-1, tc.dc, tc.dc+tc.w-1)
			require.NoError(t, err)

			require.NoError(t, dst.Assign(src))
			require.Equal(t, want, m.Data())
		})
	}
}

func TestBlockOverlaps(t *testing.T) {
	m := Sequential(t, 4, 4)
	other := Sequential(t, 4, 4)
	a, _ := m.Block(0, 1, 0, 1)
	b, _ := m.Block(1, 2, 1, 2) // shares cell (1,1)
	c, _ := m.Block(2, 3, 2, 3)
	d, _ := m.Block(0, 1, 2, 3) // touches a only along the column boundary
	x, _ := other.Block(0, 1, 0, 1)

	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c))
	require.False(t, a.Overlaps(d))
	require.False(t, a.Overlaps(x))
}

func TestBlockAssignAcrossMatrices(t *testing.T) {
	src := Sequential(t, 3, 3)
	dst := MustDense(t, 3, 3)
	sb, _ := src.Block(0, 1, 0, 1)
	db, _ := dst.Block(1, 2, 1, 2)
	require.NoError(t, db.Assign(sb))
	require.Equal(t, []float64{0, 0, 0, 0, 0, 1, 0, 3, 4}, dst.Data())
}

func TestBlockAssignMatrixFromParent(t *testing.T) {
	m := Sequential(t, 2, 2)
	b, _ := m.Block(0, 1, 0, 1)
	require.NoError(t, b.AssignMatrix(m))
	require.Equal(t, []float64{0, 1, 2, 3}, m.Data())

	tr := MustRows(t, []float64{9, 8}, []float64{7, 6})
	require.NoError(t, b.AssignMatrix(hide{tr}))
	require.Equal(t, []float64{9, 8, 7, 6}, m.Data())
}

func TestBlockStaleAfterResize(t *testing.T) {
	m := Sequential(t, 3, 3)
	b, err := m.Block(0, 1, 0, 1)
	require.NoError(t, err)
	require.False(t, b.Stale())

	require.NoError(t, m.Resize(4, 4))
	require.True(t, b.Stale())
	_, err = b.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrStaleBlock)
	_, err = b.Dense()
	require.ErrorIs(t, err, matrix.ErrStaleBlock)
	require.Nil(t, b.Clone())
	_, err = matrix.DenseCopy(b)
	require.ErrorIs(t, err, matrix.ErrStaleBlock)
}

func TestBlockAsMatrixOperand(t *testing.T) {
	m := Sequential(t, 3, 3)
	b, _ := m.Block(0, 1, 0, 1)
	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)

	p, err := matrix.Mul(b, id)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 3, 4}, p.Data())
}
