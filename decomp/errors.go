// SPDX-License-Identifier: MIT

package decomp

import "errors"

var (
	// ErrNoConvergence is returned when the SVD factorization fails.
	ErrNoConvergence = errors.New("decomp: SVD did not converge")

	// ErrEmptySystem is returned for a design matrix without rows or columns.
	ErrEmptySystem = errors.New("decomp: empty system")
)
