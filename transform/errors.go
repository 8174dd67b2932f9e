// SPDX-License-Identifier: MIT

package transform

import "errors"

var (
	// ErrInvalidDimension is returned when a transform is built for a
	// dimension other than 2 or 3, or when an operation needs a specific one.
	ErrInvalidDimension = errors.New("transform: dimension must be 2 or 3")

	// ErrInvalidScale is returned for a non-positive or non-finite similarity scale.
	ErrInvalidScale = errors.New("transform: scale must be finite and > 0")

	// ErrNotRotation is returned when a matrix is not orthonormal with det +1.
	ErrNotRotation = errors.New("transform: matrix is not a proper rotation")

	// ErrNilTransform is returned when a nil transform is passed.
	ErrNilTransform = errors.New("transform: nil transform")
)

// ErrNotAffine is returned when a homogeneous matrix has a last row other
// than [0 … 0 1].
var ErrNotAffine = errors.New("transform: homogeneous last row must be [0 ... 0 1]")

// ErrUnknownEulerOrder is returned for an axis sequence outside the twelve
// Euler and Tait-Bryan orders.
var ErrUnknownEulerOrder = errors.New("transform: unknown Euler axis order")
