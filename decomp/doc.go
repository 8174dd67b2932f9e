// Package decomp provides the SVD-based least-squares solver used by the
// transform estimators.
//
// An SVD value factorizes a design matrix A (m×n) once and then solves
// A·x = b for any number of right-hand sides. Singular values at or below a
// threshold are treated as zero, so rank-deficient systems return the
// minimum-norm least-squares solution instead of an error. Callers that need
// to detect degenerate input (collinear points, repeated points) query Rank,
// ConditionNumber or RankDeficient.
//
// The factorization itself is gonum's mat.SVD.
package decomp
