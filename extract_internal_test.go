package canica

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// TestTopByScore_OrderAndTies checks descending selection with stable
// tie-breaking on the original row index.
func TestTopByScore_OrderAndTies(t *testing.T) {
	maps := mat.NewDense(4, 2, []float64{
		10, 10, // score 1
		20, 20, // score 5
		30, 30, // score 5 (ties with row 1, must rank after it)
		40, 40, // score 3
	})
	scores := []float64{1, 5, 5, 3}

	got := topByScore(maps, scores, 3)
	assert.Equal(t, []float64{20, 20}, got.RawRowView(0))
	assert.Equal(t, []float64{30, 30}, got.RawRowView(1))
	assert.Equal(t, []float64{40, 40}, got.RawRowView(2))
}

// TestThresholdMaps checks the magnitude cutoff and its idempotence.
func TestThresholdMaps(t *testing.T) {
	// 4 features: cutoff = 1/sqrt(4) = 0.5.
	maps := mat.NewDense(2, 4, []float64{
		0.49, -0.49, 0.5, -3,
		0, 0.51, -0.5, 0.2,
	})

	thresholdMaps(maps, 1)
	want := mat.NewDense(2, 4, []float64{
		0, 0, 0.5, -3,
		0, 0.51, -0.5, 0,
	})
	assert.True(t, mat.Equal(maps, want), "entries strictly below cutoff are zeroed")

	before := mat.DenseCopyOf(maps)
	thresholdMaps(maps, 1)
	assert.True(t, mat.Equal(maps, before), "thresholding is idempotent")
}

// TestThresholdMaps_Disabled checks a zero threshold leaves maps alone.
func TestThresholdMaps_Disabled(t *testing.T) {
	maps := mat.NewDense(1, 3, []float64{1e-300, -1e-300, 0.1})
	before := mat.DenseCopyOf(maps)

	thresholdMaps(maps, 0)
	assert.True(t, mat.Equal(maps, before))
}

// TestStandardizeColumns checks unit variance and the constant-column guard.
func TestStandardizeColumns(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		-2, 0,
		-2, 0,
		2, 0,
		2, 0,
	})

	standardizeColumns(m)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, math.Copysign(1, m.At(i, 0)), m.At(i, 0), 1e-15,
			"centered ±2 column scales to ±1")
		assert.Zero(t, m.At(i, 1), "constant zero column stays put")
	}
}

// TestCenterColumns checks per-column mean removal.
func TestCenterColumns(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})

	centerColumns(m)
	want := mat.NewDense(3, 2, []float64{
		-1, -10,
		0, 0,
		1, 10,
	})
	assert.True(t, mat.EqualApprox(m, want, 1e-12))
}
