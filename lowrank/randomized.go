package lowrank

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBadRank indicates a requested rank outside [1, min(rows, cols)].
	ErrBadRank = errors.New("lowrank: rank must be in [1, min(rows, cols)]")

	// ErrNilSource indicates a nil random source.
	ErrNilSource = errors.New("lowrank: random source is nil")

	// ErrSVDFailed indicates that an inner exact SVD did not converge.
	ErrSVDFailed = errors.New("lowrank: svd failed to converge")
)

// Defaults for the sketching parameters.
const (
	// DefaultOversample is the extra sketch width beyond the requested rank.
	DefaultOversample = 10

	// DefaultPowerIters is the number of power iterations refining the
	// range basis. Two is enough for rapidly decaying spectra.
	DefaultPowerIters = 2
)

// Options tunes the randomized sketch. The zero value of a field selects
// its default.
type Options struct {
	// Oversample widens the Gaussian sketch beyond rank. Default 10.
	Oversample int

	// PowerIters refines the range basis with (A·Aᵀ)-multiplications.
	// Default 2; set negative for none.
	PowerIters int
}

// RandomizedSVD computes an approximate truncated SVD of a, keeping the
// given rank: u is rows × rank with orthonormal columns, s holds the rank
// leading singular values in descending order, and vt is rank × cols.
//
// opts may be nil for defaults. rng drives the Gaussian sketch; it must not
// be nil.
func RandomizedSVD(a mat.Matrix, rank int, rng *rand.Rand, opts *Options) (u *mat.Dense, s []float64, vt *mat.Dense, err error) {
	m, n := a.Dims()
	if rank <= 0 || rank > m || rank > n {
		return nil, nil, nil, ErrBadRank
	}
	if rng == nil {
		return nil, nil, nil, ErrNilSource
	}

	oversample := DefaultOversample
	powerIters := DefaultPowerIters
	if opts != nil {
		if opts.Oversample > 0 {
			oversample = opts.Oversample
		}
		if opts.PowerIters != 0 {
			powerIters = opts.PowerIters
		}
		if opts.PowerIters < 0 {
			powerIters = 0
		}
	}

	p := rank + oversample
	if p > n {
		p = n
	}

	// Gaussian sketch of the range of a.
	omega := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			omega.Set(i, j, rng.NormFloat64())
		}
	}
	var y mat.Dense
	y.Mul(a, omega)

	q, err := orthonormalize(&y)
	if err != nil {
		return nil, nil, nil, err
	}

	// Power iterations sharpen the basis toward the dominant subspace.
	for it := 0; it < powerIters; it++ {
		var z mat.Dense
		z.Mul(a.T(), q)
		qz, oErr := orthonormalize(&z)
		if oErr != nil {
			return nil, nil, nil, oErr
		}
		var y2 mat.Dense
		y2.Mul(a, qz)
		q, err = orthonormalize(&y2)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// Exact SVD of the small projection.
	var b mat.Dense
	b.Mul(q.T(), a)
	var svd mat.SVD
	if !svd.Factorize(&b, mat.SVDThin) {
		return nil, nil, nil, ErrSVDFailed
	}
	var ub, vb mat.Dense
	svd.UTo(&ub)
	svd.VTo(&vb)
	values := svd.Values(nil)

	_, qc := q.Dims()
	u = mat.NewDense(m, rank, nil)
	u.Mul(q, ub.Slice(0, qc, 0, rank))

	s = make([]float64, rank)
	copy(s, values[:rank])

	vt = mat.NewDense(rank, n, nil)
	vt.Copy(vb.Slice(0, n, 0, rank).T())

	return u, s, vt, nil
}

// orthonormalize returns an orthonormal basis of a's column space via a thin
// SVD, which is numerically safer than Gram–Schmidt for ill-conditioned
// sketches.
func orthonormalize(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThinU) {
		return nil, ErrSVDFailed
	}
	var u mat.Dense
	svd.UTo(&u)

	return &u, nil
}
