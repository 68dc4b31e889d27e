// Package memo is a minimal compute-and-remember layer.
//
// The canica pipeline wraps each expensive numerical sub-step (spatial
// smoothing, per-subject SVD, randomized SVD, the fastica solve) in a
// memoized call keyed on the full argument signature, including the random
// seed. Repeated Fit calls with identical inputs and configuration then
// reuse previously computed results instead of recomputing them.
//
// The package deliberately knows nothing about the pipeline: it offers a
// Cache interface with two stock implementations (Nop, InMemory), a generic
// Do wrapper, and a Key helper that folds heterogeneous arguments — scalars,
// slices, gonum matrices — into a stable signature string.
//
// Caching is opt-in and per-instance: the default store is Nop, which
// remembers nothing, and a cache is only ever shared between pipeline
// instances when the caller passes the same Cache value explicitly.
package memo
