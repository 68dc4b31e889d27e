package canica

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/groupica/canica/ica"
	"github.com/groupica/canica/lowrank"
	"github.com/groupica/canica/memo"
)

// extractMaps runs the escalating extraction loop on the aggregated group
// subspace. At each step it takes a rank-k randomized SVD of the group
// matrix, unmixes the resulting basis with fastica, and scores every
// candidate map by excess kurtosis. When at least NComponents candidates
// pass the cutoff, the top NComponents by score are returned; otherwise k
// grows by one, up to the escalation budget or the available rank.
//
// Each cached sub-step derives its own random stream from the seed and the
// current rank, so a cache hit replays the exact bytes a miss would compute.
func (c *CanICA) extractMaps(group *mat.Dense) (*mat.Dense, error) {
	features, total := group.Dims()
	maxRank := features
	if total < maxRank {
		maxRank = total
	}

	cutoff := math.Inf(-1)
	if c.opts.KurtosisThreshold != nil {
		cutoff = *c.opts.KurtosisThreshold
	}

	n := c.opts.NComponents
	for k := n; k <= n+c.opts.maxEscalations(); k++ {
		if k > maxRank {
			break
		}

		svdKey := memo.Key("group-svd", group, k, c.opts.Seed)
		basis, err := memo.Do(c.cache, svdKey, func() (*mat.Dense, error) {
			rng := rand.New(rand.NewPCG(c.opts.Seed, uint64(k)))
			u, _, _, svdErr := lowrank.RandomizedSVD(group, k, rng, nil)
			if svdErr != nil {
				return nil, fmt.Errorf("%w (rank %d)", ErrSVDFailed, k)
			}

			return u, nil
		})
		if err != nil {
			return nil, err
		}

		icaKey := memo.Key("fastica", basis, c.opts.Seed)
		sources, err := memo.Do(c.cache, icaKey, func() (*mat.Dense, error) {
			rng := rand.New(rand.NewPCG(c.opts.Seed+1, uint64(k)))
			_, s, icaErr := ica.FastICA(basis, rng, nil)

			return s, icaErr
		})
		if err != nil {
			return nil, fmt.Errorf("canica: source extraction (rank %d): %w", k, err)
		}

		// One candidate map per row.
		maps := mat.NewDense(k, features, nil)
		maps.Copy(sources.T())

		scores := make([]float64, k)
		passing := 0
		for i := range scores {
			scores[i] = ica.Kurtosis(maps.RawRowView(i))
			if scores[i] > cutoff {
				passing++
			}
		}
		if passing >= n {
			return topByScore(maps, scores, n), nil
		}
	}

	return nil, ErrKurtosisCriterion
}

// topByScore returns the n rows of maps with the highest scores, in
// descending score order. Ties keep the lower original index first.
func topByScore(maps *mat.Dense, scores []float64, n int) *mat.Dense {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	_, features := maps.Dims()
	out := mat.NewDense(n, features, nil)
	for i := 0; i < n; i++ {
		out.SetRow(i, maps.RawRowView(order[i]))
	}

	return out
}

// thresholdMaps zeroes, in place, every entry of maps whose magnitude is
// below threshold/sqrt(features). A zero threshold disables sparsification.
func thresholdMaps(maps *mat.Dense, threshold float64) {
	if threshold <= 0 {
		return
	}

	raw := maps.RawMatrix()
	cutoff := threshold / math.Sqrt(float64(raw.Cols))
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j, v := range row {
			if math.Abs(v) < cutoff {
				row[j] = 0
			}
		}
	}
}
