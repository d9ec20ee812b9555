package datastructure

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func traverseRtreeAndTestIfBoundingBoxCorrect(node *RtreeNode, countLeaf *int, t *testing.T) {
	maxBB := node.items[0].getBound()
	for _, item := range node.items {
		maxBB = stretch(maxBB, item.getBound())
		if node.isLeaf {
			*countLeaf++
		} else {
			traverseRtreeAndTestIfBoundingBoxCorrect(item, countLeaf, t)
		}
	}

	if !node.bound.isBBSame(maxBB) {
		t.Errorf("node bound is not the minimum box enclosing its children")
	}
}

func randomSegments(n int, seed uint64) []SegmentObject {
	rng := rand.New(rand.NewSource(seed))
	items := make([]SegmentObject, 0, n)
	for i := 0; i < n; i++ {
		// roughly the SF bbox
		lat := 37.708 + rng.Float64()*(37.832-37.708)
		lon := -122.514 + rng.Float64()*(-122.357-(-122.514))
		items = append(items, NewSegmentObject(i, lat, lon))
	}
	return items
}

func buildRtree(items []SegmentObject) *Rtree {
	rt := NewRtree(25, 50, 2)
	for _, item := range items {
		rt.InsertLeaf(item.Bound(), item)
	}
	return rt
}

func TestInsertRtree(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"insert 5 items", 5},
		{"insert 100 items", 100},
		{"insert 2000 items", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := randomSegments(tt.n, 42)
			rt := buildRtree(items)
			assert.Equal(t, tt.n, rt.Size())

			countLeaf := 0
			traverseRtreeAndTestIfBoundingBoxCorrect(rt.root, &countLeaf, t)
			assert.Equal(t, tt.n, countLeaf)
		})
	}
}

func bruteForceKNearest(items []SegmentObject, p Point, k int) []SegmentObject {
	sorted := make([]SegmentObject, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		di := haversineDistance(p.Lat, p.Lon, sorted[i].Lat, sorted[i].Lon)
		dj := haversineDistance(p.Lat, p.Lon, sorted[j].Lat, sorted[j].Lon)
		if di != dj {
			return di < dj
		}
		return sorted[i].ID < sorted[j].ID
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

func TestNearestNeighbours(t *testing.T) {
	items := randomSegments(1500, 7)
	rt := buildRtree(items)

	queries := []Point{
		NewPoint(37.8084, -122.4098),
		NewPoint(37.7100, -122.5100),
		NewPoint(37.8300, -122.3600),
		NewPoint(37.7, -122.2), // outside the data extent
	}

	for _, q := range queries {
		for _, k := range []int{1, 5, 50, 2000} {
			got := rt.NearestNeighbours(k, q)
			want := bruteForceKNearest(items, q, k)
			require.Equal(t, len(want), len(got))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID, "rank %d for k=%d", i, k)
			}
		}
	}

	t.Run("k zero or negative", func(t *testing.T) {
		assert.Empty(t, rt.NearestNeighbours(0, queries[0]))
		assert.Empty(t, rt.NearestNeighbours(-3, queries[0]))
	})

	t.Run("deterministic across repeated queries", func(t *testing.T) {
		first := rt.NearestNeighbours(25, queries[0])
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, rt.NearestNeighbours(25, queries[0]))
		}
	})
}

func TestWithinRadius(t *testing.T) {
	items := randomSegments(1200, 99)
	rt := buildRtree(items)

	q := NewPoint(37.7700, -122.4300)

	for _, radius := range []float64{0.05, 0.25, 1.0, 5.0} {
		got := rt.WithinRadius(q, radius)

		want := map[int]struct{}{}
		for _, item := range items {
			if haversineDistance(q.Lat, q.Lon, item.Lat, item.Lon) <= radius {
				want[item.ID] = struct{}{}
			}
		}

		require.Equal(t, len(want), len(got), "radius %.2f", radius)
		for _, obj := range got {
			_, ok := want[obj.ID]
			assert.True(t, ok, "id %d not within %.2f mi", obj.ID, radius)
		}
	}

	t.Run("empty tree", func(t *testing.T) {
		empty := NewRtree(25, 50, 2)
		assert.Empty(t, empty.WithinRadius(q, 10))
		assert.Empty(t, empty.NearestNeighbours(3, q))
	})
}
