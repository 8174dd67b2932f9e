// SPDX-License-Identifier: MIT

package decomp

import "math"

const (
	panicThresholdInvalid = "decomp: WithThreshold: threshold must be finite, non-negative"
	panicRCondInvalid     = "decomp: WithRelativeThreshold: rcond must be in [0, 1)"
)

// Option configures an SVD solver.
type Option func(*options)

type options struct {
	threshold    float64 // absolute cut-off, used when hasThreshold
	hasThreshold bool
	rcond        float64 // cut-off relative to the largest singular value, used when hasRCond
	hasRCond     bool
}

// WithThreshold fixes the absolute singular-value cut-off. Values w <= t are
// treated as zero. Panics on NaN, Inf or negative t.
func WithThreshold(t float64) Option {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *options) {
		o.threshold = t
		o.hasThreshold = true
		o.hasRCond = false
	}
}

// WithRelativeThreshold sets the cut-off to rcond·w₀, w₀ the largest
// singular value. Panics unless 0 <= rcond < 1.
func WithRelativeThreshold(rcond float64) Option {
	if math.IsNaN(rcond) || rcond < 0 || rcond >= 1 {
		panic(panicRCondInvalid)
	}

	return func(o *options) {
		o.rcond = rcond
		o.hasRCond = true
		o.hasThreshold = false
	}
}

func gatherOptions(opts ...Option) options {
	var o options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
