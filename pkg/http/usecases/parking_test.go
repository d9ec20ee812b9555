package usecases

import (
	"testing"

	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/lintang-b-s/parking-search/pkg/parking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDefaults() SearchDefaults {
	return SearchDefaults{
		RadiusMi:    0.5,
		Alpha:       0.8,
		Beta:        1.6,
		TopN:        5,
		MaxSnapMi:   2.0,
		ServiceArea: geo.NewBoundingBox(37.708, -122.514, 37.832, -122.357),
	}
}

func testService(t *testing.T) *ParkingService {
	t.Helper()
	engine := parking.NewEngine([]parking.Record{
		parking.NewRecord(0, "The Embarcadero", 37.8080, -122.4100, 10),
		parking.NewRecord(1, "Beach St", 37.8090, -122.4090, 2),
		parking.NewRecord(2, "Bay St", 37.8000, -122.4200, 50),
	})
	return New(zap.NewNop(), engine, testDefaults())
}

func TestRecommendAppliesDefaults(t *testing.T) {
	s := testService(t)

	// all tuning fields omitted
	origin, results, err := s.Recommend(37.8084, -122.4098, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.False(t, origin.Snapped)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 5)

	for _, rec := range results {
		assert.InDelta(t, rec.DistMi*geo.FtPerMi, rec.DistFt, 1e-9)
	}
}

func TestRecommendSnapsOriginOutsideServiceArea(t *testing.T) {
	s := testService(t)

	// New York, far outside the configured area
	origin, results, err := s.Recommend(40.7128, -74.0060, 0, 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, origin.Snapped)
	require.NotEmpty(t, results)

	// snapped origin sits on a record, so that record comes back at
	// distance zero even when a bigger segment outscores it
	foundCoincident := false
	for _, rec := range results {
		if rec.DistMi == 0 {
			foundCoincident = true
			assert.Equal(t, rec.Lat, origin.Lat)
			assert.Equal(t, rec.Lon, origin.Lon)
		}
	}
	assert.True(t, foundCoincident)
}

func TestRecommendRejectsBadTopN(t *testing.T) {
	s := testService(t)

	_, _, err := s.Recommend(37.8084, -122.4098, 0.5, 0.8, 1.6, -1)
	assert.ErrorIs(t, err, parking.ErrInvalidArgument)
}

func TestNearest(t *testing.T) {
	s := testService(t)

	rec, err := s.Nearest(37.8084, -122.4098)
	require.NoError(t, err)
	assert.Equal(t, "The Embarcadero", rec.Street)
	assert.Greater(t, rec.DistFt, 0.0)
	assert.Zero(t, rec.Score)
}

func TestSnap(t *testing.T) {
	s := testService(t)

	t.Run("inside area stays put", func(t *testing.T) {
		origin, err := s.Snap(37.8084, -122.4098)
		require.NoError(t, err)
		assert.False(t, origin.Snapped)
		assert.Equal(t, 37.8084, origin.Lat)
	})

	t.Run("invalid point rejected", func(t *testing.T) {
		_, err := s.Snap(91.0, 0.0)
		assert.ErrorIs(t, err, parking.ErrInvalidArgument)
	})
}
