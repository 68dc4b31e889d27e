package lowrank_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/groupica/canica/lowrank"
)

// lowRankMatrix builds an m×n matrix of exact rank r with a deterministic
// source.
func lowRankMatrix(m, n, r int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed))
	left := mat.NewDense(m, r, nil)
	right := mat.NewDense(r, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < r; j++ {
			left.Set(i, j, rng.NormFloat64())
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < n; j++ {
			right.Set(i, j, rng.NormFloat64())
		}
	}
	var a mat.Dense
	a.Mul(left, right)

	return &a
}

// TestRandomizedSVD_Validation covers rank and source preconditions.
func TestRandomizedSVD_Validation(t *testing.T) {
	a := mat.NewDense(4, 3, nil)
	rng := rand.New(rand.NewPCG(1, 1))

	_, _, _, err := lowrank.RandomizedSVD(a, 0, rng, nil)
	assert.ErrorIs(t, err, lowrank.ErrBadRank, "rank 0 must error")

	_, _, _, err = lowrank.RandomizedSVD(a, 4, rng, nil)
	assert.ErrorIs(t, err, lowrank.ErrBadRank, "rank beyond min(dims) must error")

	_, _, _, err = lowrank.RandomizedSVD(a, 2, nil, nil)
	assert.ErrorIs(t, err, lowrank.ErrNilSource, "nil source must error")
}

// TestRandomizedSVD_RecoversLowRank verifies a rank-3 matrix is reproduced
// to machine precision from its rank-3 approximation.
func TestRandomizedSVD_RecoversLowRank(t *testing.T) {
	a := lowRankMatrix(40, 30, 3, 11)
	rng := rand.New(rand.NewPCG(2, 2))

	u, s, vt, err := lowrank.RandomizedSVD(a, 3, rng, nil)
	require.NoError(t, err)

	ur, uc := u.Dims()
	assert.Equal(t, 40, ur)
	assert.Equal(t, 3, uc)
	require.Len(t, s, 3)
	vr, vc := vt.Dims()
	assert.Equal(t, 3, vr)
	assert.Equal(t, 30, vc)

	// Reassemble U·diag(s)·Vᵀ.
	scaled := mat.NewDense(40, 3, nil)
	scaled.Copy(u)
	for j := 0; j < 3; j++ {
		for i := 0; i < 40; i++ {
			scaled.Set(i, j, scaled.At(i, j)*s[j])
		}
	}
	var approx mat.Dense
	approx.Mul(scaled, vt)

	assert.True(t, mat.EqualApprox(a, &approx, 1e-8),
		"rank-3 input must be recovered by a rank-3 randomized SVD")
}

// TestRandomizedSVD_OrthonormalU checks UᵀU ≈ I and descending singular
// values.
func TestRandomizedSVD_OrthonormalU(t *testing.T) {
	a := lowRankMatrix(25, 20, 5, 3)
	rng := rand.New(rand.NewPCG(4, 4))

	u, s, _, err := lowrank.RandomizedSVD(a, 5, rng, nil)
	require.NoError(t, err)

	var gram mat.Dense
	gram.Mul(u.T(), u)
	assert.True(t, mat.EqualApprox(&gram, eye(5), 1e-10), "U must have orthonormal columns")

	for i := 1; i < len(s); i++ {
		assert.GreaterOrEqual(t, s[i-1], s[i], "singular values must be descending")
	}
}

// TestRandomizedSVD_Deterministic verifies equal seeds give bit-identical
// factors.
func TestRandomizedSVD_Deterministic(t *testing.T) {
	a := lowRankMatrix(30, 30, 4, 5)

	u1, s1, vt1, err := lowrank.RandomizedSVD(a, 4, rand.New(rand.NewPCG(9, 9)), nil)
	require.NoError(t, err)
	u2, s2, vt2, err := lowrank.RandomizedSVD(a, 4, rand.New(rand.NewPCG(9, 9)), nil)
	require.NoError(t, err)

	assert.True(t, mat.Equal(u1, u2), "U must be bit-identical under equal seeds")
	assert.Equal(t, s1, s2, "singular values must be bit-identical under equal seeds")
	assert.True(t, mat.Equal(vt1, vt2), "Vᵀ must be bit-identical under equal seeds")
}

// TestRandomizedSVD_TruncatesNoise verifies the requested rank bounds the
// output shape even when the input has full rank.
func TestRandomizedSVD_TruncatesNoise(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	data := make([]float64, 20*15)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	a := mat.NewDense(20, 15, data)

	u, s, vt, err := lowrank.RandomizedSVD(a, 2, rand.New(rand.NewPCG(8, 8)), nil)
	require.NoError(t, err)

	_, uc := u.Dims()
	vr, _ := vt.Dims()
	assert.Equal(t, 2, uc)
	assert.Equal(t, 2, vr)
	assert.Len(t, s, 2)
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	return m
}
