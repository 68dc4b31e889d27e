// Package lowrank provides a randomized (approximate) truncated singular
// value decomposition.
//
// RandomizedSVD follows the Halko–Martinsson–Tropp scheme:
//  1. Draw a Gaussian test matrix Ω (n × rank+oversample) from the caller's
//     random source and sketch Y = A·Ω.
//  2. Orthonormalize Y into a range basis Q; optionally refine it with
//     power iterations, re-orthonormalizing after every product to keep the
//     basis numerically sound.
//  3. Decompose the small projected matrix B = Qᵀ·A exactly and lift the
//     left factor back: U = Q·U_B.
//
// The approximation error is controlled by the oversampling margin and the
// power-iteration count; both default to values that recover an exact
// rank-r matrix to machine precision.
//
// Determinism: the caller supplies the *rand.Rand; the package never touches
// global random state, so equal seeds give bit-identical factors.
package lowrank
