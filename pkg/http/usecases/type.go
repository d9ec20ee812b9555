package usecases

import (
	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/parking"
)

type Engine interface {
	RankCandidates(lat, lon float64, params parking.Params) ([]parking.ScoredCandidate, error)
	Nearest(lat, lon float64) (parking.Record, float64, error)
	SnapOrigin(lat, lon float64, serviceArea geo.BoundingBox, maxSnapMi float64) (float64, float64, bool)
	Size() int
}

// SearchDefaults fills request fields the caller left out.
type SearchDefaults struct {
	RadiusMi    float64
	Alpha       float64
	Beta        float64
	TopN        int
	MaxSnapMi   float64
	ServiceArea geo.BoundingBox
}

type Origin struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Snapped bool    `json:"snapped"`
}

type Recommendation struct {
	ID     int     `json:"id"`
	Street string  `json:"street"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Supply float64 `json:"supply"`
	DistMi float64 `json:"dist_mi"`
	DistFt float64 `json:"dist_ft"`
	Score  float64 `json:"score"`
}
