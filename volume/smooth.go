package volume

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Smoother applies mask-constrained Gaussian smoothing to row-major sample
// data. Bandwidth is the Gaussian sigma in voxel units.
type Smoother struct {
	Mask      *Mask
	Bandwidth float64
}

// NewSmoother validates the mask and bandwidth. Returns ErrNilMask or
// ErrBadBandwidth on nonsensical arguments.
func NewSmoother(m *Mask, bandwidth float64) (*Smoother, error) {
	if m == nil {
		return nil, ErrNilMask
	}
	if bandwidth <= 0 || math.IsInf(bandwidth, 0) || math.IsNaN(bandwidth) {
		return nil, ErrBadBandwidth
	}

	return &Smoother{Mask: m, Bandwidth: bandwidth}, nil
}

// SmoothRows smooths every row of data in place, one sample per row. Each
// row is scattered into the mask's true positions of a zero volume,
// extrapolated beyond the mask, blurred, and gathered back. Row length must
// equal Mask.NumTrue(); otherwise ErrMaskMismatch is returned before any
// row is touched.
func (s *Smoother) SmoothRows(data *mat.Dense) error {
	rows, cols := data.Dims()
	if cols != s.Mask.NumTrue() {
		return ErrMaskMismatch
	}

	size := len(s.Mask.Bits)
	vol := make([]float64, size)
	tmp := make([]float64, size)
	filled := make([]bool, size)
	next := make([]bool, size)
	kernel := gaussianKernel(s.Bandwidth)
	iterations := int(math.Ceil(s.Bandwidth)) + 2

	for r := 0; r < rows; r++ {
		row := data.RawRowView(r)

		for i := range vol {
			vol[i] = 0
		}
		k := 0
		for i, b := range s.Mask.Bits {
			if b {
				vol[i] = row[k]
				k++
			}
		}

		extrapolateOutOfMask(vol, s.Mask, filled, next, iterations)
		gaussianBlur3D(vol, tmp, s.Mask.NX, s.Mask.NY, s.Mask.NZ, kernel)

		k = 0
		for i, b := range s.Mask.Bits {
			if b {
				row[k] = vol[i]
				k++
			}
		}
	}

	return nil
}

// extrapolateOutOfMask fills voxels outside the mask with the mean of their
// already-filled 6-neighbours, growing one shell per iteration. Voxels the
// fill never reaches stay zero. filled and next are caller-provided scratch
// of the volume's size.
func extrapolateOutOfMask(vol []float64, m *Mask, filled, next []bool, iterations int) {
	copy(filled, m.Bits)
	for it := 0; it < iterations; it++ {
		copy(next, filled)
		changed := false
		for z := 0; z < m.NZ; z++ {
			for y := 0; y < m.NY; y++ {
				for x := 0; x < m.NX; x++ {
					idx := m.index(x, y, z)
					if filled[idx] {
						continue
					}
					sum, n := 0.0, 0
					if x > 0 && filled[idx-1] {
						sum += vol[idx-1]
						n++
					}
					if x < m.NX-1 && filled[idx+1] {
						sum += vol[idx+1]
						n++
					}
					if y > 0 && filled[idx-m.NX] {
						sum += vol[idx-m.NX]
						n++
					}
					if y < m.NY-1 && filled[idx+m.NX] {
						sum += vol[idx+m.NX]
						n++
					}
					if z > 0 && filled[idx-m.NX*m.NY] {
						sum += vol[idx-m.NX*m.NY]
						n++
					}
					if z < m.NZ-1 && filled[idx+m.NX*m.NY] {
						sum += vol[idx+m.NX*m.NY]
						n++
					}
					if n > 0 {
						vol[idx] = sum / float64(n)
						next[idx] = true
						changed = true
					}
				}
			}
		}
		copy(filled, next)
		if !changed {
			break
		}
	}
}

// gaussianKernel returns a normalized 1-D Gaussian of the given sigma with
// radius int(4·sigma + 0.5), never below 1.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	k := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		k[i+radius] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}

	return k
}

// gaussianBlur3D convolves vol with the kernel along each axis in turn,
// reflecting at the boundaries. tmp is scratch of the same length; the
// result lands back in vol.
func gaussianBlur3D(vol, tmp []float64, nx, ny, nz int, kernel []float64) {
	convolveAxis(vol, tmp, nx, ny, nz, 0, kernel)
	convolveAxis(tmp, vol, nx, ny, nz, 1, kernel)
	convolveAxis(vol, tmp, nx, ny, nz, 2, kernel)
	copy(vol, tmp)
}

// convolveAxis writes into dst the 1-D convolution of src along axis
// (0 = x, 1 = y, 2 = z) with reflected boundary handling.
func convolveAxis(src, dst []float64, nx, ny, nz, axis int, kernel []float64) {
	radius := (len(kernel) - 1) / 2
	var n, stride int
	switch axis {
	case 0:
		n, stride = nx, 1
	case 1:
		n, stride = ny, nx
	default:
		n, stride = nz, nx*ny
	}

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				idx := (z*ny+y)*nx + x
				var pos int
				switch axis {
				case 0:
					pos = x
				case 1:
					pos = y
				default:
					pos = z
				}
				base := idx - pos*stride
				sum := 0.0
				for t := -radius; t <= radius; t++ {
					sum += kernel[t+radius] * src[base+reflectIndex(pos+t, n)*stride]
				}
				dst[idx] = sum
			}
		}
	}
}

// reflectIndex maps an out-of-range line index back inside [0, n) by
// mirroring about the array edges (…, 1, 0 | 0, 1, …, n-1 | n-1, n-2, …).
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - 1 - i
		}
	}

	return i
}
