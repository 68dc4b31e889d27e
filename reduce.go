package canica

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/groupica/canica/memo"
	"github.com/groupica/canica/volume"
)

// reduceSubject standardizes subj in place (center, optional smoothing,
// re-center, unit variance) and returns its oversampled principal subspace:
// a features × q orthonormal basis with q = min(2·NComponents, rank bound).
// The double width leaves room for components that only emerge at the group
// level.
func (c *CanICA) reduceSubject(subj *mat.Dense) (*mat.Dense, error) {
	centerColumns(subj)

	if c.opts.SmoothBandwidth > 0 {
		key := memo.Key("smooth", subj, c.opts.Mask.Bits, c.opts.SmoothBandwidth)
		smoothed, err := memo.Do(c.cache, key, func() (*mat.Dense, error) {
			sm, smErr := volume.NewSmoother(c.opts.Mask, c.opts.SmoothBandwidth)
			if smErr != nil {
				return nil, smErr
			}
			out := mat.DenseCopyOf(subj)
			if smErr = sm.SmoothRows(out); smErr != nil {
				return nil, smErr
			}

			return out, nil
		})
		if err != nil {
			return nil, err
		}
		subj.Copy(smoothed)
		// Smoothing shifts column means slightly; restore zero mean before
		// scaling.
		centerColumns(subj)
	}
	standardizeColumns(subj)

	samples, features := subj.Dims()
	q := 2 * c.opts.NComponents
	if q > samples {
		q = samples
	}
	if q > features {
		q = features
	}

	key := memo.Key("subject-svd", subj, q)

	return memo.Do(c.cache, key, func() (*mat.Dense, error) {
		var svd mat.SVD
		if !svd.Factorize(subj, mat.SVDThin) {
			return nil, ErrSVDFailed
		}
		// The leading right singular vectors span the subject's dominant
		// spatial subspace.
		var v mat.Dense
		svd.VTo(&v)
		basis := mat.NewDense(features, q, nil)
		basis.Copy(v.Slice(0, features, 0, q))

		return basis, nil
	})
}

// centerColumns subtracts each column's mean in place.
func centerColumns(m *mat.Dense) {
	rows, cols := m.Dims()
	means := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j, v := range m.RawRowView(i) {
			means[j] += v
		}
	}
	inv := 1 / float64(rows)
	for j := range means {
		means[j] *= inv
	}
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for j := range row {
			row[j] -= means[j]
		}
	}
}

// standardizeColumns scales each already-centered column to unit population
// standard deviation in place. Constant columns are left untouched rather
// than divided by zero.
func standardizeColumns(m *mat.Dense) {
	rows, cols := m.Dims()
	scale := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j, v := range m.RawRowView(i) {
			scale[j] += v * v
		}
	}
	inv := 1 / float64(rows)
	for j := range scale {
		s := math.Sqrt(scale[j] * inv)
		if s == 0 {
			s = 1
		}
		scale[j] = 1 / s
	}
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for j := range row {
			row[j] *= scale[j]
		}
	}
}
