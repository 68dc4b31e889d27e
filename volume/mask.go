package volume

import "errors"

var (
	// ErrBadShape indicates non-positive dimensions or a bits slice whose
	// length does not equal nx·ny·nz.
	ErrBadShape = errors.New("volume: invalid mask shape")

	// ErrMaskMismatch indicates a sample row whose length differs from the
	// mask's true-count.
	ErrMaskMismatch = errors.New("volume: row length does not match mask true-count")

	// ErrBadBandwidth indicates a non-positive or non-finite smoothing
	// bandwidth.
	ErrBadBandwidth = errors.New("volume: bandwidth must be positive and finite")

	// ErrNilMask indicates a nil *Mask where one is required.
	ErrNilMask = errors.New("volume: mask is nil")
)

// Mask is a boolean 3-D indicator volume identifying valid feature
// locations. Bits is stored x-fastest: index = (z·NY + y)·NX + x.
//
// A Mask is shared read-only across subjects; nothing in this package
// mutates it after construction.
type Mask struct {
	NX, NY, NZ int
	Bits       []bool
}

// NewMask builds a Mask of shape nx × ny × nz from bits (copied, x-fastest).
// Returns ErrBadShape when a dimension is non-positive or len(bits) does not
// match the shape.
func NewMask(nx, ny, nz int, bits []bool) (*Mask, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, ErrBadShape
	}
	if len(bits) != nx*ny*nz {
		return nil, ErrBadShape
	}
	m := &Mask{NX: nx, NY: ny, NZ: nz, Bits: make([]bool, len(bits))}
	copy(m.Bits, bits)

	return m, nil
}

// FullMask builds a Mask with every voxel marked valid. Convenient when the
// feature grid has no excluded locations.
func FullMask(nx, ny, nz int) (*Mask, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, ErrBadShape
	}
	bits := make([]bool, nx*ny*nz)
	for i := range bits {
		bits[i] = true
	}

	return &Mask{NX: nx, NY: ny, NZ: nz, Bits: bits}, nil
}

// NumTrue reports how many voxels the mask marks as valid. This equals the
// feature count of every sample smoothed against it.
func (m *Mask) NumTrue() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}

	return n
}

func (m *Mask) index(x, y, z int) int { return (z*m.NY+y)*m.NX + x }
