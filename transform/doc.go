// Package transform implements the 2D and 3D geometric transforms:
// Translation, Rotation, Scaling, Affine and Helmert (similarity).
//
// Every transform is immutable once constructed. Apply maps one point,
// ApplyMatrix maps a point set stored one point per row, Inverse returns the
// inverse of the same kind, and Compose(o) returns the transform equivalent
// to applying o first and the receiver second. Transforms of different
// kinds compose through their homogeneous (Dim+1)×(Dim+1) matrices with the
// package-level Compose, which yields an Affine.
//
// The dimension of a transform is 2 or 3; constructors reject anything else
// with ErrInvalidDimension.
package transform
