package geo

import "math"

// https://scikit-learn.org/stable/modules/generated/sklearn.metrics.pairwise.haversine_distances.html
// sin^2(a/2)
func havFunction(angleRad float64) float64 {
	return math.Pow(math.Sin(angleRad/2.0), 2)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// HaversineDistance returns the great-circle distance in miles between two
// (lat, lon) pairs given in degrees.
func HaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degToRad(latOne)
	longOne = degToRad(longOne)
	latTwo = degToRad(latTwo)
	longTwo = degToRad(longTwo)

	h := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)

	// rounding can push h a hair outside [0,1] for identical or
	// near-antipodal points, which would make Sqrt/Asin return NaN
	if h < 0 {
		h = 0
	} else if h > 1 {
		h = 1
	}

	return 2.0 * EarthRadiusMi * math.Asin(math.Sqrt(h))
}
