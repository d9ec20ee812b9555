package geo

import "math"

// BoundingBox is a lat/lon axis-aligned box. The zero value is empty and
// contains nothing.
type BoundingBox struct {
	min, max []float64 // lat, lon
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) BoundingBox {
	return BoundingBox{
		min: []float64{minLat, minLon},
		max: []float64{maxLat, maxLon},
	}
}

// NewBoundingBoxFromPoints builds the minimum box enclosing every point.
func NewBoundingBoxFromPoints(lats, lons []float64) BoundingBox {
	min, max := []float64{lats[0], lons[0]}, []float64{lats[0], lons[0]}
	for i := 1; i < len(lats); i++ {
		if lats[i] < min[0] {
			min[0] = lats[i]
		}
		if lats[i] > max[0] {
			max[0] = lats[i]
		}
		if lons[i] < min[1] {
			min[1] = lons[i]
		}
		if lons[i] > max[1] {
			max[1] = lons[i]
		}
	}
	return BoundingBox{
		min: min,
		max: max,
	}
}

func (bb *BoundingBox) GetMin() []float64 {
	return bb.min
}

func (bb *BoundingBox) GetMax() []float64 {
	return bb.max
}

func (bb *BoundingBox) Contains(lat, lon float64) bool {
	if len(bb.min) != 2 || len(bb.max) != 2 {
		return false
	}
	if lat < bb.min[0] || lat > bb.max[0] {
		return false
	}
	if lon < bb.min[1] || lon > bb.max[1] {
		return false
	}
	return true
}

// https://www.movable-type.co.uk/scripts/latlong.html
// GetDestinationPoint returns the destination point given the starting point,
// bearing (degrees) and distance (miles), travelling along a great circle arc.
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / EarthRadiusMi

	bearing = degToRad(bearing)

	lat1 = degToRad(lat1)
	lon1 = degToRad(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)
	lon2 = math.Mod((lon2+3*math.Pi), (2*math.Pi)) - math.Pi

	return radToDeg(lat2), radToDeg(lon2)
}
