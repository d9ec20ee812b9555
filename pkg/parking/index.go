package parking

import (
	"fmt"
	"sort"

	"github.com/lintang-b-s/parking-search/pkg/datastructure"
	"github.com/lintang-b-s/parking-search/pkg/geo"
)

// SpatialIndex answers radius and k-nearest queries over a fixed record set
// using spherical distance. Implementations are immutable after construction
// and safe to share across goroutines; a dataset change means building a new
// index, never mutating an existing one.
type SpatialIndex interface {
	Size() int

	// RadiusQuery returns the ids of every record at most radiusMi miles
	// from the point, in no particular order. Empty result, not an error,
	// when nothing qualifies.
	RadiusQuery(lat, lon, radiusMi float64) []int

	// KNearest returns up to min(k, Size()) record ids in ascending
	// distance order, ties by ascending id. k < 0 is an invalid argument.
	KNearest(lat, lon float64, k int) ([]int, error)
}

const (
	rtreeMinChildItems = 25
	rtreeMaxChildItems = 50
)

type rtreeIndex struct {
	tree *datastructure.Rtree
	size int
}

// BuildIndex builds the default R*-tree backed index. Building from zero
// records yields a valid empty index.
func BuildIndex(records []Record) SpatialIndex {
	tree := datastructure.NewRtree(rtreeMinChildItems, rtreeMaxChildItems, 2)
	for _, rec := range records {
		obj := datastructure.NewSegmentObject(rec.ID, rec.Lat, rec.Lon)
		tree.InsertLeaf(obj.Bound(), obj)
	}
	return &rtreeIndex{tree: tree, size: len(records)}
}

func (idx *rtreeIndex) Size() int {
	return idx.size
}

func (idx *rtreeIndex) RadiusQuery(lat, lon, radiusMi float64) []int {
	objs := idx.tree.WithinRadius(datastructure.NewPoint(lat, lon), radiusMi)
	ids := make([]int, 0, len(objs))
	for _, obj := range objs {
		ids = append(ids, obj.ID)
	}
	return ids
}

func (idx *rtreeIndex) KNearest(lat, lon float64, k int) ([]int, error) {
	if k < 0 {
		return nil, fmt.Errorf("knearest: k must be non-negative, got %d: %w", k, ErrInvalidArgument)
	}
	objs := idx.tree.NearestNeighbours(k, datastructure.NewPoint(lat, lon))
	ids := make([]int, 0, len(objs))
	for _, obj := range objs {
		ids = append(ids, obj.ID)
	}
	return ids, nil
}

// linearIndex is the scan fallback with the same contract as the R*-tree
// index; it exists so the contract tests can pin both implementations to
// identical behavior, and for hosts that want zero build cost.
type linearIndex struct {
	records []Record
}

func BuildLinearIndex(records []Record) SpatialIndex {
	return &linearIndex{records: records}
}

func (idx *linearIndex) Size() int {
	return len(idx.records)
}

func (idx *linearIndex) RadiusQuery(lat, lon, radiusMi float64) []int {
	ids := []int{}
	for _, rec := range idx.records {
		if geo.HaversineDistance(lat, lon, rec.Lat, rec.Lon) <= radiusMi {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

func (idx *linearIndex) KNearest(lat, lon float64, k int) ([]int, error) {
	if k < 0 {
		return nil, fmt.Errorf("knearest: k must be non-negative, got %d: %w", k, ErrInvalidArgument)
	}

	type idDist struct {
		id   int
		dist float64
	}
	dists := make([]idDist, 0, len(idx.records))
	for _, rec := range idx.records {
		dists = append(dists, idDist{id: rec.ID, dist: geo.HaversineDistance(lat, lon, rec.Lat, rec.Lon)})
	}
	sort.Slice(dists, func(i, j int) bool {
		if dists[i].dist != dists[j].dist {
			return dists[i].dist < dists[j].dist
		}
		return dists[i].id < dists[j].id
	})

	if k > len(dists) {
		k = len(dists)
	}
	ids := make([]int, 0, k)
	for _, d := range dists[:k] {
		ids = append(ids, d.id)
	}
	return ids, nil
}
