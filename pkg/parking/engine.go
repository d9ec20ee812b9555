package parking

import (
	"sync/atomic"

	"github.com/lintang-b-s/parking-search/pkg/geo"
)

// dataset binds an index to the record table it was built from. Swapped
// wholesale on rebuild so in-flight queries keep a consistent pair.
type dataset struct {
	index     SpatialIndex
	records   []Record
	retriever *retriever
}

// Engine is the geospatial ranking engine: spatial index, candidate
// retrieval with nearest-K fallback, distance-decay ranking and origin
// snapping over one parking dataset. Read-only after construction except for
// Rebuild, which atomically swaps the whole dataset; safe for concurrent
// queries.
type Engine struct {
	current    atomic.Pointer[dataset]
	linearScan bool
}

type Option func(*Engine)

// WithLinearScan selects the scan index instead of the R*-tree.
func WithLinearScan() Option {
	return func(e *Engine) {
		e.linearScan = true
	}
}

// NewEngine builds the engine over the given record table. Records must be
// ordered so that records[i].ID == i (the dataset loader guarantees this).
func NewEngine(records []Record, opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.Rebuild(records)
	return e
}

// Rebuild constructs a fresh index over the new record table and swaps it
// in atomically. The old index stays valid for queries already running.
func (e *Engine) Rebuild(records []Record) {
	var index SpatialIndex
	if e.linearScan {
		index = BuildLinearIndex(records)
	} else {
		index = BuildIndex(records)
	}

	e.current.Store(&dataset{
		index:     index,
		records:   records,
		retriever: newRetriever(index, records),
	})
}

func (e *Engine) Size() int {
	return e.current.Load().index.Size()
}

// Nearest returns the single closest record to the query point and its
// distance in miles. Fails with ErrEmptyDataset when there are no records.
func (e *Engine) Nearest(lat, lon float64) (Record, float64, error) {
	if err := ValidateQueryPoint(lat, lon); err != nil {
		return Record{}, 0, err
	}

	ds := e.current.Load()
	if ds.index.Size() == 0 {
		return Record{}, 0, ErrEmptyDataset
	}

	ids, err := ds.index.KNearest(lat, lon, 1)
	if err != nil {
		return Record{}, 0, err
	}
	rec := ds.records[ids[0]]
	return rec, geo.HaversineDistance(lat, lon, rec.Lat, rec.Lon), nil
}

// RankCandidates retrieves candidates around the query point (radius search
// with nearest-K fallback) and ranks them. An empty dataset returns an empty
// sequence, not an error; the presentation layer owns the "no results"
// messaging.
func (e *Engine) RankCandidates(lat, lon float64, params Params) ([]ScoredCandidate, error) {
	if err := ValidateQueryPoint(lat, lon); err != nil {
		return nil, err
	}
	// validated up front so an invalid request never reaches the index
	if err := validateTopN(params.TopN); err != nil {
		return nil, err
	}

	fallbackK := params.FallbackK
	if fallbackK == 0 {
		fallbackK = DefaultFallbackK(params.TopN)
	}

	ds := e.current.Load()
	candidates, err := ds.retriever.retrieve(lat, lon, params.RadiusMi, fallbackK)
	if err != nil {
		return nil, err
	}

	return Rank(lat, lon, candidates, params.Alpha, params.Beta, params.TopN)
}

// SnapOrigin corrects a query point that is outside the service area or
// farther than maxSnapMi from every record by substituting the nearest
// record's position. Snapping an empty dataset is a no-op. The returned bool
// reports whether the point moved.
func (e *Engine) SnapOrigin(lat, lon float64, serviceArea geo.BoundingBox, maxSnapMi float64) (float64, float64, bool) {
	ds := e.current.Load()
	if ds.index.Size() == 0 {
		return lat, lon, false
	}

	ids, err := ds.index.KNearest(lat, lon, 1)
	if err != nil || len(ids) == 0 {
		return lat, lon, false
	}
	nearest := ds.records[ids[0]]

	if !serviceArea.Contains(lat, lon) {
		return nearest.Lat, nearest.Lon, true
	}

	if geo.HaversineDistance(lat, lon, nearest.Lat, nearest.Lon) > maxSnapMi {
		return nearest.Lat, nearest.Lon, true
	}

	return lat, lon, false
}
