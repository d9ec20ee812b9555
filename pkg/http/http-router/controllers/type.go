package controllers

import "github.com/lintang-b-s/parking-search/pkg/http/usecases"

type ParkingService interface {
	Recommend(lat, lon, radiusMi, alpha, beta float64, topN int) (usecases.Origin, []usecases.Recommendation, error)
	Nearest(lat, lon float64) (usecases.Recommendation, error)
	Snap(lat, lon float64) (usecases.Origin, error)
}
