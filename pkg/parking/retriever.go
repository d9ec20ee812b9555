package parking

const minFallbackK = 300

// DefaultFallbackK sizes the nearest-K fallback so a small requested top-N
// never starves on a radius that happens to be too tight.
func DefaultFallbackK(topN int) int {
	if k := topN * 50; k > minFallbackK {
		return k
	}
	return minFallbackK
}

type retriever struct {
	index   SpatialIndex
	records []Record
}

func newRetriever(index SpatialIndex, records []Record) *retriever {
	return &retriever{index: index, records: records}
}

// retrieve returns the records within radiusMi of the point, or the nearest
// fallbackK records when the radius excludes everything. Empty dataset gives
// an empty slice, not an error; the ranker handles zero candidates.
func (r *retriever) retrieve(lat, lon, radiusMi float64, fallbackK int) ([]Record, error) {
	ids := r.index.RadiusQuery(lat, lon, radiusMi)

	if len(ids) == 0 {
		var err error
		ids, err = r.index.KNearest(lat, lon, fallbackK)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]Record, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, r.records[id])
	}
	return candidates, nil
}
