package canica

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// learnSeries recovers per-subject time series by regressing each
// standardized subject matrix onto the finalized maps: for subject data X
// (samples × features) and maps S (components × features), the series is the
// least-squares solution A of A·S = X, i.e. A = X·Sᵀ·(S·Sᵀ)⁻¹.
//
// The Gram matrix S·Sᵀ is shared across subjects and factorized once per
// solve. A singular Gram matrix means the thresholded maps became linearly
// dependent; the solve error is surfaced as-is.
func learnSeries(maps *mat.Dense, subjects []*mat.Dense) ([]*mat.Dense, error) {
	var gram mat.Dense
	gram.Mul(maps, maps.T())

	series := make([]*mat.Dense, len(subjects))
	for i, subj := range subjects {
		var sxT mat.Dense
		sxT.Mul(maps, subj.T())

		var at mat.Dense
		if err := at.Solve(&gram, &sxT); err != nil {
			return nil, fmt.Errorf("canica: back-projection for subject %d: %w", i, err)
		}
		series[i] = mat.DenseCopyOf(at.T())
	}

	return series, nil
}
