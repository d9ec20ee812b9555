package parking

import (
	"sort"
	"testing"

	"github.com/lintang-b-s/parking-search/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomRecords(n int, seed uint64) []Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		lat := 37.708 + rng.Float64()*(37.832-37.708)
		lon := -122.514 + rng.Float64()*(-122.357-(-122.514))
		records = append(records, NewRecord(i, "street", lat, lon, float64(rng.Intn(200))))
	}
	return records
}

// both implementations must satisfy the identical SpatialIndex contract, so
// every case below runs against both.
func forEachIndex(t *testing.T, records []Record, fn func(t *testing.T, idx SpatialIndex)) {
	builders := []struct {
		name  string
		build func([]Record) SpatialIndex
	}{
		{"rtree", BuildIndex},
		{"linear", BuildLinearIndex},
	}
	for _, b := range builders {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.build(records))
		})
	}
}

func TestSpatialIndexRadiusQuery(t *testing.T) {
	records := randomRecords(800, 11)
	qLat, qLon := 37.7700, -122.4300

	forEachIndex(t, records, func(t *testing.T, idx SpatialIndex) {
		for _, radius := range []float64{0.0, 0.1, 0.5, 2.0, 20.0} {
			got := idx.RadiusQuery(qLat, qLon, radius)

			want := []int{}
			for _, rec := range records {
				if geo.HaversineDistance(qLat, qLon, rec.Lat, rec.Lon) <= radius {
					want = append(want, rec.ID)
				}
			}

			sort.Ints(got)
			assert.Equal(t, want, got, "radius %.2f", radius)
		}
	})
}

func TestSpatialIndexRadiusMonotonicity(t *testing.T) {
	records := randomRecords(500, 23)
	qLat, qLon := 37.7800, -122.4200

	forEachIndex(t, records, func(t *testing.T, idx SpatialIndex) {
		prev := 0
		for _, radius := range []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2} {
			n := len(idx.RadiusQuery(qLat, qLon, radius))
			assert.GreaterOrEqual(t, n, prev, "enlarging the radius must never shrink the result")
			prev = n
		}
	})
}

func TestSpatialIndexKNearest(t *testing.T) {
	records := randomRecords(600, 31)
	qLat, qLon := 37.8084, -122.4098

	wantOrder := make([]int, len(records))
	for i := range wantOrder {
		wantOrder[i] = i
	}
	sort.Slice(wantOrder, func(i, j int) bool {
		di := geo.HaversineDistance(qLat, qLon, records[wantOrder[i]].Lat, records[wantOrder[i]].Lon)
		dj := geo.HaversineDistance(qLat, qLon, records[wantOrder[j]].Lat, records[wantOrder[j]].Lon)
		if di != dj {
			return di < dj
		}
		return wantOrder[i] < wantOrder[j]
	})

	forEachIndex(t, records, func(t *testing.T, idx SpatialIndex) {
		for _, k := range []int{0, 1, 10, 300, 1000} {
			got, err := idx.KNearest(qLat, qLon, k)
			require.NoError(t, err)

			wantLen := k
			if wantLen > len(records) {
				wantLen = len(records)
			}
			require.Len(t, got, wantLen, "k=%d", k)
			assert.Equal(t, wantOrder[:wantLen], got, "k=%d", k)
		}

		t.Run("negative k is an invalid argument", func(t *testing.T) {
			_, err := idx.KNearest(qLat, qLon, -1)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	})
}

func TestSpatialIndexEmpty(t *testing.T) {
	forEachIndex(t, nil, func(t *testing.T, idx SpatialIndex) {
		assert.Equal(t, 0, idx.Size())
		assert.Empty(t, idx.RadiusQuery(37.8, -122.4, 100))

		got, err := idx.KNearest(37.8, -122.4, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
