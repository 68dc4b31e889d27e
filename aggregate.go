package canica

import "gonum.org/v1/gonum/mat"

// groupSubspace concatenates the per-subject bases column-wise into one
// features × Σq matrix. Every basis must have features rows; reduceSubject
// guarantees that.
func groupSubspace(bases []*mat.Dense, features int) *mat.Dense {
	total := 0
	for _, b := range bases {
		_, q := b.Dims()
		total += q
	}

	group := mat.NewDense(features, total, nil)
	col := 0
	for _, b := range bases {
		_, q := b.Dims()
		group.Slice(0, features, col, col+q).(*mat.Dense).Copy(b)
		col += q
	}

	return group
}
