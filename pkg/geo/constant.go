package geo

const (
	// EarthRadiusMi is the mean Earth radius in statute miles. All distances
	// in this module are miles unless a name says otherwise.
	EarthRadiusMi = 3958.7613

	FtPerMi = 5280.0
)
