package datastructure

type Point struct {
	Lat float64
	Lon float64
}

func NewPoint(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// SegmentObject is the leaf payload stored in the R-tree: one street segment
// center with a back-reference into the record table.
type SegmentObject struct {
	ID  int
	Lat float64
	Lon float64
}

func NewSegmentObject(id int, lat, lon float64) SegmentObject {
	return SegmentObject{ID: id, Lat: lat, Lon: lon}
}

// Bound returns a small box around the segment center. The pad keeps split
// heuristics away from zero-area rectangles.
func (o SegmentObject) Bound() RtreeBoundingBox {
	return NewRtreeBoundingBox(2,
		[]float64{o.Lat - 0.0001, o.Lon - 0.0001},
		[]float64{o.Lat + 0.0001, o.Lon + 0.0001})
}
