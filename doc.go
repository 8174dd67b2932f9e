// Package geomath is the geometric core of a photogrammetry toolkit: small
// dense linear algebra, an SVD least-squares solver, 2D/3D geometric
// transforms and the estimators that fit them to corresponding points.
//
// Everything lives in subpackages:
//
//	matrix/           Dense, Block views, fixed Mat2/Mat3, Vector, kernels (Mul, LU, Inverse)
//	decomp/           SVD factorization and least-squares Solve (gonum)
//	transform/        Translation, Rotation, Scaling, Affine, Helmert; Compose, Inverse
//	estimate/         Translation, Rotation2D, Scaling2D, Affine2D/3D, Helmert2D/3D, Umeyama, Fit
//	cmd/tltransform/  estimate and apply transforms from CSV point files
//
// Quick example, fitting a similarity between two point sets:
//
//	src, _ := matrix.NewDenseFrom([][]float64{{0, 0}, {1, 0}, {0, 1}})
//	dst, _ := matrix.NewDenseFrom([][]float64{{5, 5}, {5, 7}, {3, 5}})
//	h, _ := estimate.Helmert2D(src, dst) // scale 2, 90°, t = (5, 5)
//
// Points are rows: an N-point set in D dimensions is an N×D matrix.
//
//	go get github.com/tidop/geomath
package geomath
