package parking

import (
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/parking-search/pkg/geo"
)

// scoreSupplyDistance implements
//
//	score = supply / (1 + alpha * dist^beta)
//
// monotonic decreasing in distance and increasing in supply. Zero distance
// short-circuits before the exponentiation so beta never sees 0^0; the
// candidate at the origin scores exactly its supply.
func scoreSupplyDistance(supply, distMi, alpha, beta float64) float64 {
	if distMi == 0 {
		return supply
	}
	return supply / (1.0 + alpha*math.Pow(distMi, beta))
}

func validateTopN(topN int) error {
	if topN <= 0 {
		return fmt.Errorf("rank: top_n must be positive, got %d: %w", topN, ErrInvalidArgument)
	}
	return nil
}

// Rank scores candidates against the query point, sorts them by descending
// score (ties: ascending distance, then ascending id) and truncates to topN.
func Rank(lat, lon float64, candidates []Record, alpha, beta float64, topN int) ([]ScoredCandidate, error) {
	if err := validateTopN(topN); err != nil {
		return nil, err
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		dist := geo.HaversineDistance(lat, lon, candidate.Lat, candidate.Lon)
		scored = append(scored, ScoredCandidate{
			Record: candidate,
			DistMi: dist,
			Score:  scoreSupplyDistance(candidate.Supply, dist, alpha, beta),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].DistMi != scored[j].DistMi {
			return scored[i].DistMi < scored[j].DistMi
		}
		return scored[i].Record.ID < scored[j].Record.ID
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}
