package canica

import (
	"fmt"
	"math"

	"github.com/groupica/canica/memo"
	"github.com/groupica/canica/volume"
)

// Defaults (single source of truth).
const (
	// DefaultThreshold is the sparsification strength: entries of the final
	// maps below Threshold/sqrt(nFeatures) in magnitude are zeroed.
	DefaultThreshold = 1.0

	// DefaultMaxEscalationsFactor bounds the acceptance loop: the working
	// component count may grow from NComponents up to
	// NComponents·(1 + DefaultMaxEscalationsFactor) before the fit fails
	// with ErrKurtosisCriterion.
	DefaultMaxEscalationsFactor = 2
)

// Options configures a CanICA decomposition.
type Options struct {
	// NComponents is the number of spatial maps to extract. Required, > 0.
	NComponents int

	// Threshold controls sparsification of the final maps. Non-negative;
	// DefaultOptions sets 1. Zero disables sparsification.
	Threshold float64

	// SmoothBandwidth enables mask-constrained Gaussian smoothing of each
	// subject's samples when positive (sigma, in voxels). Zero disables
	// smoothing. Requires Mask.
	SmoothBandwidth float64

	// Mask is the boolean volume identifying feature locations, shared
	// read-only across subjects. Required when SmoothBandwidth > 0; its
	// true-count must then equal the feature count of every subject.
	Mask *volume.Mask

	// KurtosisThreshold is the acceptance cutoff for candidate maps: a
	// candidate passes when its excess kurtosis strictly exceeds this
	// value. Nil accepts everything, so the escalation loop terminates on
	// its first step.
	KurtosisThreshold *float64

	// MapsOnly skips the back-projection step that relearns per-subject
	// time series from the finalised maps.
	MapsOnly bool

	// MaxEscalations bounds how many times the working component count may
	// be incremented past NComponents before Fit gives up with
	// ErrKurtosisCriterion. Zero selects the default,
	// DefaultMaxEscalationsFactor × NComponents. Negative is invalid.
	MaxEscalations int

	// Seed initialises the pseudo-random source threaded through the
	// randomized SVD and the fastica solver. Equal seeds with equal inputs
	// and configuration give bit-identical maps.
	Seed uint64

	// Cache backs the compute-and-remember layer around the expensive
	// sub-steps (smoothing, subject SVD, randomized SVD, fastica). Nil
	// means no caching. A cache is never shared between instances unless
	// the caller passes the same value explicitly.
	Cache memo.Cache
}

// DefaultOptions returns an Options with the documented defaults for the
// given target component count.
func DefaultOptions(nComponents int) Options {
	return Options{
		NComponents: nComponents,
		Threshold:   DefaultThreshold,
	}
}

// validate enforces the constructor preconditions. Smoothing without a mask
// is rejected here, before any computation.
func (o *Options) validate() error {
	if o.NComponents <= 0 {
		return fmt.Errorf("%w: NComponents must be > 0, got %d", ErrBadOptions, o.NComponents)
	}
	if o.Threshold < 0 || math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
		return fmt.Errorf("%w: Threshold must be finite and non-negative", ErrBadOptions)
	}
	if o.SmoothBandwidth < 0 || math.IsNaN(o.SmoothBandwidth) || math.IsInf(o.SmoothBandwidth, 0) {
		return fmt.Errorf("%w: SmoothBandwidth must be finite and non-negative", ErrBadOptions)
	}
	if o.SmoothBandwidth > 0 && o.Mask == nil {
		return ErrMaskRequired
	}
	if o.MaxEscalations < 0 {
		return fmt.Errorf("%w: MaxEscalations must be non-negative", ErrBadOptions)
	}
	if o.KurtosisThreshold != nil && math.IsNaN(*o.KurtosisThreshold) {
		return fmt.Errorf("%w: KurtosisThreshold must not be NaN", ErrBadOptions)
	}

	return nil
}

// maxEscalations resolves the effective escalation budget.
func (o *Options) maxEscalations() int {
	if o.MaxEscalations > 0 {
		return o.MaxEscalations
	}

	return DefaultMaxEscalationsFactor * o.NComponents
}
