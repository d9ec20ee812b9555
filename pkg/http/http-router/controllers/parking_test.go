package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/http/usecases"
	"github.com/lintang-b-s/parking-search/pkg/parking"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testAPI(t *testing.T) *parkingAPI {
	t.Helper()
	engine := parking.NewEngine([]parking.Record{
		parking.NewRecord(0, "The Embarcadero", 37.8080, -122.4100, 10),
		parking.NewRecord(1, "Beach St", 37.8090, -122.4090, 2),
		parking.NewRecord(2, "Bay St", 37.8000, -122.4200, 50),
	})
	service := usecases.New(zap.NewNop(), engine, usecases.SearchDefaults{
		RadiusMi:    0.5,
		Alpha:       0.8,
		Beta:        1.6,
		TopN:        5,
		MaxSnapMi:   2.0,
		ServiceArea: geo.NewBoundingBox(37.708, -122.514, 37.832, -122.357),
	})
	return New(service, zap.NewNop())
}

func TestRecommendRequestValidation(t *testing.T) {
	api := testAPI(t)

	do := func(body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(body))
		w := httptest.NewRecorder()
		api.recommend(w, r, nil)
		return w
	}

	t.Run("zero coordinates are a valid point, not a missing field", func(t *testing.T) {
		w := do(`{"lat": 0, "lon": 0}`)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("missing coordinates rejected", func(t *testing.T) {
		w := do(`{"radius_mi": 0.5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation error")
	})

	t.Run("out of range latitude rejected", func(t *testing.T) {
		w := do(`{"lat": 91, "lon": -122.41}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		w := do(`{"lat": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNearestAndSnapRequestValidation(t *testing.T) {
	api := testAPI(t)

	t.Run("nearest accepts zero longitude", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/nearest", strings.NewReader(`{"lat": 37.8084, "lon": 0}`))
		w := httptest.NewRecorder()
		api.nearest(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("snap rejects missing longitude", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/snap", strings.NewReader(`{"lat": 37.8084}`))
		w := httptest.NewRecorder()
		api.snap(w, r, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
