// SPDX-License-Identifier: MIT

package estimate

import "errors"

var (
	// ErrTooFewPoints is returned when the point count is below the model minimum.
	ErrTooFewPoints = errors.New("estimate: too few points for model")

	// ErrUnknownModel is returned by ParseModel and Fit for unsupported model names.
	ErrUnknownModel = errors.New("estimate: unknown model")

	// ErrDegenerate is returned when the source points carry no spread
	// (all points coincide), leaving scale undefined.
	ErrDegenerate = errors.New("estimate: degenerate point configuration")
)
