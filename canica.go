package canica

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/groupica/canica/memo"
)

// CanICA extracts group-level independent spatial components from
// multi-subject sample matrices. Construct with New, fit once with Fit, then
// query Maps, TimeSeries and Transform. A fitted instance is safe for
// concurrent reads; Fit itself is not safe to call concurrently.
type CanICA struct {
	opts  Options
	cache memo.Cache

	fitted    bool
	nFeatures int
	maps      *mat.Dense   // NComponents × nFeatures
	series    []*mat.Dense // per subject, samples × NComponents
}

// New validates opts and returns an unfitted decomposition. Configuration
// mistakes surface here (ErrBadOptions, ErrMaskRequired), never mid-fit.
func New(opts Options) (*CanICA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	cache := opts.Cache
	if cache == nil {
		cache = memo.Nop()
	}

	return &CanICA{opts: opts, cache: cache}, nil
}

// Fit learns the group components from one samples × features matrix per
// subject. All subjects must share the feature count; sample counts may
// differ. The inputs are copied up front and never mutated.
//
// The pipeline: per-subject standardization and dimension reduction, a
// randomized SVD of the aggregated subspaces, fastica source extraction with
// kurtosis-based acceptance, map sparsification, and (unless MapsOnly) a
// least-squares back-projection recovering per-subject time series.
//
// Fit returns the receiver for chaining. On error no state is published: a
// previously fitted instance keeps its old maps.
func (c *CanICA) Fit(subjects []*mat.Dense) (*CanICA, error) {
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}

	_, features := subjects[0].Dims()
	for i, s := range subjects {
		r, f := s.Dims()
		if r == 0 || f == 0 {
			return nil, fmt.Errorf("%w: subject %d is empty", ErrDimensionMismatch, i)
		}
		if f != features {
			return nil, fmt.Errorf("%w: subject %d has %d features, subject 0 has %d",
				ErrDimensionMismatch, i, f, features)
		}
	}
	if c.opts.SmoothBandwidth > 0 {
		if got := c.opts.Mask.NumTrue(); got != features {
			return nil, fmt.Errorf("%w: mask marks %d voxels, subjects have %d features",
				ErrDimensionMismatch, got, features)
		}
	}

	// Private working copies; the standardized versions are also what the
	// back-projection regresses against.
	work := make([]*mat.Dense, len(subjects))
	for i, s := range subjects {
		work[i] = mat.DenseCopyOf(s)
	}

	bases := make([]*mat.Dense, len(work))
	for i, s := range work {
		b, err := c.reduceSubject(s)
		if err != nil {
			return nil, fmt.Errorf("subject %d: %w", i, err)
		}
		bases[i] = b
	}

	maps, err := c.extractMaps(groupSubspace(bases, features))
	if err != nil {
		return nil, err
	}
	thresholdMaps(maps, c.opts.Threshold)

	var series []*mat.Dense
	if !c.opts.MapsOnly {
		series, err = learnSeries(maps, work)
		if err != nil {
			return nil, err
		}
	}

	c.maps = maps
	c.series = series
	c.nFeatures = features
	c.fitted = true

	return c, nil
}

// Transform projects x (samples × features) onto the fitted maps, returning
// samples × NComponents loadings. The feature count must match the fit.
func (c *CanICA) Transform(x mat.Matrix) (*mat.Dense, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	_, f := x.Dims()
	if f != c.nFeatures {
		return nil, fmt.Errorf("%w: got %d features, fitted with %d",
			ErrDimensionMismatch, f, c.nFeatures)
	}

	var out mat.Dense
	out.Mul(x, c.maps.T())

	return &out, nil
}

// Maps returns a copy of the fitted spatial maps, NComponents × features,
// ordered by descending kurtosis.
func (c *CanICA) Maps() (*mat.Dense, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}

	return mat.DenseCopyOf(c.maps), nil
}

// TimeSeries returns copies of the back-projected per-subject time series,
// one samples × NComponents matrix per fitted subject, in input order. When
// the instance was configured with MapsOnly the slice is nil.
func (c *CanICA) TimeSeries() ([]*mat.Dense, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	if c.series == nil {
		return nil, nil
	}

	out := make([]*mat.Dense, len(c.series))
	for i, s := range c.series {
		out[i] = mat.DenseCopyOf(s)
	}

	return out, nil
}
