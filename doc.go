// Package canica extracts a fixed number of spatially sparse, statistically
// independent group-level patterns ("spatial maps") from a collection of
// per-subject multivariate signal matrices, such as brain-activity time
// series recorded over voxels.
//
// 🚀 What is canica?
//
//	A pure-Go implementation of canonical group independent component
//	analysis, built as a three-stage reduction:
//		• Per-subject whitening: centre, optionally smooth, standardise,
//		  then keep an oversampled orthonormal temporal basis (thin SVD)
//		• Group aggregation: randomized low-rank SVD over the concatenated
//		  subject bases
//		• Component extraction: fixed-point ICA with a kurtosis acceptance
//		  criterion that escalates the component count until enough
//		  sparse, non-Gaussian maps are found
//
// ✨ Why choose canica?
//
//   - Deterministic – every randomized step draws from a stream derived
//     from the configured seed; equal seeds and inputs give bit-identical
//     maps, with or without a cache
//   - Caller-safe – input matrices are deep-copied, never mutated
//   - Honest errors – sentinel errors matched with errors.Is, no panics on
//     user-triggered conditions
//   - Cache-aware – every expensive sub-step can be memoized through a
//     pluggable compute-and-remember store
//
// Everything is organized under the root package plus four collaborators:
//
//	(root)   — the CanICA pipeline: Options, Fit, Transform, Maps
//	volume/  — boolean 3-D masks and mask-constrained Gaussian smoothing
//	lowrank/ — randomized (approximate) truncated SVD
//	ica/     — symmetric fixed-point ICA solver and kurtosis scoring
//	memo/    — generic function-result cache keyed by call signature
//
// Quick sketch:
//
//	subjects ─▶ whiten ─▶ concat ─▶ randomized SVD ─▶ fastica ─▶ maps
//	                                      ▲               │
//	                                      └── escalate ◀──┘ (low kurtosis)
//
// Dive into the package docs of each collaborator for contracts, complexity
// notes and error sets.
package canica
