// Package volume provides boolean 3-D masks and mask-constrained spatial
// smoothing for flattened sample data.
//
// A Mask marks the valid feature locations inside a 3-D grid; every sample
// row holds exactly one value per true voxel. Smoothing a row means placing
// it back into real space, extrapolating values a few shells beyond the mask
// so the blur does not bleed zeros inward, applying a separable Gaussian
// filter, and gathering the blurred values at the mask positions again.
//
// Algorithm outline (Smoother.SmoothRows, per row):
//  1. Scatter the row's values into the mask's true positions of a
//     zero-initialized volume.
//  2. Extrapolate out of the mask: ceil(bandwidth)+2 iterations of a
//     6-neighbourhood mean fill, growing one voxel shell per iteration.
//  3. Blur with a separable Gaussian of sigma = bandwidth (kernel radius
//     int(4·sigma + 0.5), reflected boundaries).
//  4. Gather the blurred values at the true positions, overwriting the row
//     in place.
//
// Complexity is O(rows · volume · radius) time and O(volume) scratch space.
// The only error path is a shape mismatch between the row length and the
// mask's true-count (ErrMaskMismatch).
package volume
