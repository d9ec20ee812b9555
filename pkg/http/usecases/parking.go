package usecases

import (
	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/parking"

	"go.uber.org/zap"
)

type ParkingService struct {
	log      *zap.Logger
	engine   Engine
	defaults SearchDefaults
}

func New(log *zap.Logger, engine Engine, defaults SearchDefaults) *ParkingService {
	return &ParkingService{
		log:      log,
		engine:   engine,
		defaults: defaults,
	}
}

// Recommend snaps the origin into the service area, then ranks nearby
// supply. Omitted tuning values fall back to the configured defaults;
// a negative top_n still fails validation.
func (s *ParkingService) Recommend(lat, lon, radiusMi, alpha, beta float64, topN int) (Origin, []Recommendation, error) {
	if radiusMi <= 0 {
		radiusMi = s.defaults.RadiusMi
	}
	if alpha <= 0 {
		alpha = s.defaults.Alpha
	}
	if beta <= 0 {
		beta = s.defaults.Beta
	}
	if topN == 0 {
		topN = s.defaults.TopN
	}

	originLat, originLon, snapped := s.engine.SnapOrigin(lat, lon, s.defaults.ServiceArea, s.defaults.MaxSnapMi)
	if snapped {
		s.log.Debug("origin snapped into service area",
			zap.Float64("lat", lat), zap.Float64("lon", lon),
			zap.Float64("snapped_lat", originLat), zap.Float64("snapped_lon", originLon))
	}

	candidates, err := s.engine.RankCandidates(originLat, originLon, parking.Params{
		RadiusMi: radiusMi,
		Alpha:    alpha,
		Beta:     beta,
		TopN:     topN,
	})
	if err != nil {
		return Origin{}, nil, err
	}

	origin := Origin{Lat: originLat, Lon: originLon, Snapped: snapped}
	recommendations := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recommendations = append(recommendations, newRecommendation(c.Record, c.DistMi, c.Score))
	}
	return origin, recommendations, nil
}

func (s *ParkingService) Nearest(lat, lon float64) (Recommendation, error) {
	rec, distMi, err := s.engine.Nearest(lat, lon)
	if err != nil {
		return Recommendation{}, err
	}
	return newRecommendation(rec, distMi, 0), nil
}

func (s *ParkingService) Snap(lat, lon float64) (Origin, error) {
	if err := parking.ValidateQueryPoint(lat, lon); err != nil {
		return Origin{}, err
	}
	snappedLat, snappedLon, snapped := s.engine.SnapOrigin(lat, lon, s.defaults.ServiceArea, s.defaults.MaxSnapMi)
	return Origin{Lat: snappedLat, Lon: snappedLon, Snapped: snapped}, nil
}

func newRecommendation(rec parking.Record, distMi, score float64) Recommendation {
	return Recommendation{
		ID:     rec.ID,
		Street: rec.Street,
		Lat:    rec.Lat,
		Lon:    rec.Lon,
		Supply: rec.Supply,
		DistMi: distMi,
		DistFt: distMi * geo.FtPerMi,
		Score:  score,
	}
}
