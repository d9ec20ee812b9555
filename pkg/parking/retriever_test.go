package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFallbackK(t *testing.T) {
	tests := []struct {
		topN int
		want int
	}{
		{1, 300},
		{5, 300},
		{6, 300},
		{7, 350},
		{100, 5000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultFallbackK(tt.topN))
	}
}

func TestRetrieveRadiusHit(t *testing.T) {
	records := pierRecords()
	r := newRetriever(BuildIndex(records), records)

	// query next to R1/R2; 0.1 mi covers both but not R3
	got, err := r.retrieve(37.8084, -122.4098, 0.1, 300)
	require.NoError(t, err)

	ids := map[int]struct{}{}
	for _, rec := range got {
		ids[rec.ID] = struct{}{}
	}
	assert.Contains(t, ids, 0)
	assert.Contains(t, ids, 1)
	assert.NotContains(t, ids, 2)
}

func TestRetrieveFallbackGuarantee(t *testing.T) {
	records := randomRecords(120, 5)
	r := newRetriever(BuildIndex(records), records)

	// a point far from every record with a radius that matches nothing
	lat, lon := 40.0, -100.0

	t.Run("fallback returns exactly min(fallbackK, N)", func(t *testing.T) {
		for _, fallbackK := range []int{10, 120, 500} {
			got, err := r.retrieve(lat, lon, 0.5, fallbackK)
			require.NoError(t, err)

			want := fallbackK
			if want > len(records) {
				want = len(records)
			}
			assert.Len(t, got, want, "fallbackK=%d", fallbackK)
		}
	})

	t.Run("empty dataset yields empty candidates, no error", func(t *testing.T) {
		empty := newRetriever(BuildIndex(nil), nil)
		got, err := empty.retrieve(lat, lon, 0.5, 300)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRetrieveRadiusMonotonicity(t *testing.T) {
	records := randomRecords(1000, 13)
	r := newRetriever(BuildIndex(records), records)

	// query inside the data extent so the radius query itself matches and
	// the fallback never triggers
	lat, lon := 37.7700, -122.4300
	prev := 0
	for _, radius := range []float64{0.5, 1.0, 2.0, 4.0} {
		got, err := r.retrieve(lat, lon, radius, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), prev)
		prev = len(got)
	}
}
