// SPDX-License-Identifier: MIT

package decomp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tidop/geomath/matrix"
)

const (
	opNewSVD      = "NewSVD"
	opSolve       = "SVD.Solve"
	opSolveMatrix = "SVD.SolveMatrix"
)

// machineEpsilon is the spacing of float64 values around 1.
const machineEpsilon = 2.220446049250313e-16

// SVD holds the thin factorization A = U·diag(w)·Vᵀ of an m×n design matrix.
// It is immutable after construction and may be shared by concurrent
// readers.
type SVD struct {
	m, n      int
	u, v      *mat.Dense // m×k and n×k, k = min(m,n)
	values    []float64  // descending, len k
	threshold float64
}

// NewSVD factorizes a once.
//
// Implementation:
//   - Stage 1: copy a into a gonum Dense.
//   - Stage 2: thin SVD (mat.SVDThin); extract U, V and the singular values.
//   - Stage 3: fix the zero threshold, by default 0.5·sqrt(m+n+1)·w₀·ε
//     (see WithThreshold and WithRelativeThreshold).
//
// Errors:
//   - matrix.ErrNilMatrix, ErrNoConvergence.
//
// Complexity:
//   - Time O(m·n·min(m,n)), Space O(m·n).
func NewSVD(a matrix.Matrix, opts ...Option) (*SVD, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewSVD, err)
	}
	m, n := a.Rows(), a.Cols()
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("%s: %w", opNewSVD, ErrEmptySystem)
	}
	g, err := toGonum(a)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewSVD, err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%s: %dx%d: %w", opNewSVD, m, n, ErrNoConvergence)
	}
	u, v := &mat.Dense{}, &mat.Dense{}
	svd.UTo(u)
	svd.VTo(v)
	values := svd.Values(nil)

	o := gatherOptions(opts...)
	var tsh float64
	switch {
	case o.hasThreshold:
		tsh = o.threshold
	case o.hasRCond:
		tsh = o.rcond * values[0]
	default:
		tsh = DefaultThreshold(m, n, values[0])
	}

	return &SVD{m: m, n: n, u: u, v: v, values: values, threshold: tsh}, nil
}

// DefaultThreshold returns 0.5·sqrt(m+n+1)·wmax·ε, the cut-off below which a
// singular value of an m×n system is indistinguishable from zero.
func DefaultThreshold(m, n int, wmax float64) float64 {
	return 0.5 * math.Sqrt(float64(m+n+1)) * wmax * machineEpsilon
}

// toGonum copies any Matrix into a gonum Dense.
func toGonum(a matrix.Matrix) (*mat.Dense, error) {
	d, err := matrix.DenseCopy(a)
	if err != nil {
		return nil, err
	}

	return mat.NewDense(d.Rows(), d.Cols(), d.Data()), nil
}

// fromGonum copies a gonum matrix into a matrix.Dense.
func fromGonum(g mat.Matrix) *matrix.Dense {
	r, c := g.Dims()
	out, _ := matrix.NewDenseWithOptions(r, c, matrix.WithNoValidateNaNInf())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			_ = out.Set(i, j, g.At(i, j))
		}
	}

	return out
}

// Dims returns the shape of the factorized matrix.
func (s *SVD) Dims() (m, n int) { return s.m, s.n }

// Values returns a copy of the singular values in descending order.
func (s *SVD) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)

	return out
}

// U returns a copy of the m×k left singular vectors.
func (s *SVD) U() *matrix.Dense { return fromGonum(s.u) }

// V returns a copy of the n×k right singular vectors.
func (s *SVD) V() *matrix.Dense { return fromGonum(s.v) }

// Threshold returns the singular-value cut-off in use.
func (s *SVD) Threshold() float64 { return s.threshold }

// Rank counts singular values above the threshold.
func (s *SVD) Rank() int {
	r := 0
	for _, w := range s.values {
		if w > s.threshold {
			r++
		}
	}

	return r
}

// RankDeficient reports Rank() < min(m, n).
func (s *SVD) RankDeficient() bool { return s.Rank() < len(s.values) }

// ConditionNumber returns w_max / w_min (+Inf when w_min is zero).
func (s *SVD) ConditionNumber() float64 {
	wmin := s.values[len(s.values)-1]
	if wmin == 0 {
		return math.Inf(1)
	}

	return s.values[0] / wmin
}

// Solve returns x minimizing |A·x - b|₂.
//
// Implementation:
//   - x = Σ_k V[:,k] · (U[:,k]ᵀ·b) / w_k over singular values w_k > threshold.
//
// Behavior highlights:
//   - Rank-deficient systems yield the minimum-norm solution; no error.
//   - The cached factors are reused; A is never re-factorized.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (len(b) != m).
//
// Complexity:
//   - Time O(m·k + n·k), Space O(n + k).
func (s *SVD) Solve(b *matrix.Vector) (*matrix.Vector, error) {
	if b == nil {
		return nil, fmt.Errorf("%s: %w", opSolve, matrix.ErrNilMatrix)
	}
	if b.Len() != s.m {
		return nil, fmt.Errorf("%s: rhs len %d, want %d: %w", opSolve, b.Len(), s.m, matrix.ErrDimensionMismatch)
	}

	k := len(s.values)
	coef := make([]float64, k)
	var i, j, c int
	for c = 0; c < k; c++ {
		w := s.values[c]
		if w <= s.threshold {
			continue
		}
		var dot float64
		for i = 0; i < s.m; i++ {
			dot += s.u.At(i, c) * b.Elem(i)
		}
		coef[c] = dot / w
	}

	x := matrix.ZeroVector(s.n)
	for j = 0; j < s.n; j++ {
		var sum float64
		for c = 0; c < k; c++ {
			sum += s.v.At(j, c) * coef[c]
		}
		_ = x.Set(j, sum)
	}

	return x, nil
}

// SolveMatrix solves A·X = B column by column (B is m×p, X is n×p).
func (s *SVD) SolveMatrix(B matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(B); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolveMatrix, err)
	}
	if B.Rows() != s.m {
		return nil, fmt.Errorf("%s: rhs %dx%d, want %d rows: %w",
			opSolveMatrix, B.Rows(), B.Cols(), s.m, matrix.ErrDimensionMismatch)
	}
	bd, err := matrix.DenseCopy(B)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolveMatrix, err)
	}
	X, err := matrix.NewDense(s.n, B.Cols())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolveMatrix, err)
	}
	for j := 0; j < B.Cols(); j++ {
		col, err := bd.Col(j)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opSolveMatrix, err)
		}
		x, err := s.Solve(col)
		if err != nil {
			return nil, err
		}
		if err = X.SetCol(j, x); err != nil {
			return nil, fmt.Errorf("%s: %w", opSolveMatrix, err)
		}
	}

	return X, nil
}

// LeastSquares factorizes a and solves a·x = b in one call.
func LeastSquares(a matrix.Matrix, b *matrix.Vector, opts ...Option) (*matrix.Vector, *SVD, error) {
	s, err := NewSVD(a, opts...)
	if err != nil {
		return nil, nil, err
	}
	x, err := s.Solve(b)
	if err != nil {
		return nil, nil, err
	}

	return x, s, nil
}

// Rank returns the numerical rank of a with the default threshold.
func Rank(a matrix.Matrix) (int, error) {
	s, err := NewSVD(a)
	if err != nil {
		return 0, err
	}

	return s.Rank(), nil
}
