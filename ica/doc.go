// Package ica implements a symmetric fixed-point independent component
// solver for already-whitened signals, together with the excess-kurtosis
// score used to rank the recovered components by non-Gaussianity.
//
// FastICA treats each column of the input as one mixed signal observed over
// the rows and estimates a square unmixing matrix W such that the sources
// S = X·Wᵀ are maximally statistically independent. The update is the
// classic fixed-point rule
//
//	W ← E[g(W·x)·xᵀ] − diag(E[g′(W·x)])·W
//
// followed by symmetric decorrelation W ← (W·Wᵀ)^(−1/2)·W, iterated until
// the rows stop rotating (tolerance on |diag(W₁·Wᵀ)| − 1) or the iteration
// budget runs out, in which case the current estimate is returned.
//
// No whitening is performed here; the caller guarantees uncorrelated,
// unit-variance columns (the canica pipeline feeds an orthonormal group
// subspace). Determinism follows from the caller-supplied random source
// used for the initial W.
package ica
