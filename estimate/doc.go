// Package estimate fits transforms to corresponding point sets.
//
// Every estimator takes src and dst as N×Dim matrices, one point per row,
// with row i of src matched to row i of dst. Linear models are written as an
// overdetermined design system A·x = b with two (or three) rows per point and
// solved in the least-squares sense through decomp.SVD; the 3D similarity
// uses Umeyama's closed form.
//
// Estimators are pure functions: no randomness and no shared state, so
// repeated calls on the same input produce identical results.
package estimate
