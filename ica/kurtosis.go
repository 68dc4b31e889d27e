package ica

import "gonum.org/v1/gonum/stat"

// Kurtosis returns the excess (Fisher) kurtosis of xs under population
// moment normalization, m₄/m₂² − 3: zero for a Gaussian, positive for
// heavy-tailed (sparse) distributions, negative for flat ones. It is the
// per-map non-Gaussianity score used by the acceptance criterion of the
// canica pipeline.
func Kurtosis(xs []float64) float64 {
	v := stat.PopVariance(xs, nil)

	return stat.Moment(4, xs, nil)/(v*v) - 3
}
