// Sentinel error set of the canica pipeline. All public entry points return
// these sentinels (possibly wrapped with context via %w); tests and callers
// match them with errors.Is. No user-triggered condition panics.

package canica

import "errors"

var (
	// ErrBadOptions is returned by New when the configuration is
	// nonsensical: non-positive component count, negative or non-finite
	// threshold, bandwidth or escalation budget, NaN kurtosis cutoff.
	ErrBadOptions = errors.New("canica: invalid options")

	// ErrMaskRequired is returned when smoothing is configured without a
	// mask. Detected at construction: no computation is performed.
	ErrMaskRequired = errors.New("canica: smoothing requires a mask")

	// ErrNoSubjects is returned by Fit on an empty subject list.
	ErrNoSubjects = errors.New("canica: at least one subject matrix is required")

	// ErrDimensionMismatch is returned when subjects disagree on feature
	// count, when the mask's true-count differs from it, or when Transform
	// receives data of the wrong width.
	ErrDimensionMismatch = errors.New("canica: feature dimension mismatch")

	// ErrNotFitted is returned by Transform, Maps and TimeSeries before a
	// successful Fit.
	ErrNotFitted = errors.New("canica: model is not fitted")

	// ErrKurtosisCriterion is returned when the escalation loop exhausts
	// its budget without finding enough components whose kurtosis exceeds
	// the configured cutoff. No maps are published.
	ErrKurtosisCriterion = errors.New("canica: could not find enough components with high enough kurtosis")

	// ErrSVDFailed is returned when a per-subject decomposition does not
	// converge. The whole fit aborts; no partial state is published.
	ErrSVDFailed = errors.New("canica: svd failed to converge")
)
