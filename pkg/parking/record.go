package parking

// Record is one street segment from the parking dataset. Records are loaded
// once by the dataset collaborator and never mutated; ID is the record's
// position in the backing table.
type Record struct {
	ID     int     `json:"id"`
	Street string  `json:"street"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Supply float64 `json:"supply"`
}

func NewRecord(id int, street string, lat, lon, supply float64) Record {
	return Record{
		ID:     id,
		Street: street,
		Lat:    lat,
		Lon:    lon,
		Supply: supply,
	}
}

// ScoredCandidate is produced fresh per query, never cached across queries.
type ScoredCandidate struct {
	Record Record  `json:"record"`
	DistMi float64 `json:"dist_mi"`
	Score  float64 `json:"score"`
}

// Params are per-query ranking knobs. Alpha scales the distance penalty,
// Beta shapes the decay curve (1 = linear, >1 = superlinear). FallbackK of 0
// means DefaultFallbackK(TopN).
type Params struct {
	RadiusMi  float64
	Alpha     float64
	Beta      float64
	TopN      int
	FallbackK int
}
