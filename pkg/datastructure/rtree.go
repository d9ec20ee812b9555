package datastructure

import (
	"container/heap"
	"math"
	"sort"
)

// R*-tree over street segment centers.
// https://infolab.usc.edu/csci599/Fall2001/paper/rstar-tree.pdf
// https://dl.acm.org/doi/10.1145/971697.602266

const (
	REINSERT_P = 0.3
)

type RtreeBoundingBox struct {
	// number of dimensions
	Dim int
	// Edges[i][0] = low value, Edges[i][1] = high value
	// i = 0,...,Dim
	Edges [][2]float64
}

func NewRtreeBoundingBox(dim int, minVal []float64, maxVal []float64) RtreeBoundingBox {
	b := RtreeBoundingBox{Dim: dim, Edges: make([][2]float64, dim)}
	for axis := 0; axis < dim; axis++ {
		b.Edges[axis] = [2]float64{minVal[axis], maxVal[axis]}
	}

	return b
}

// reset forces all edges to extremes so stretch can shrink-wrap them later.
func reset(b RtreeBoundingBox) RtreeBoundingBox {
	newBB := NewRtreeBoundingBox(b.Dim, make([]float64, b.Dim), make([]float64, b.Dim))
	for axis := 0; axis < b.Dim; axis++ {
		newBB.Edges[axis][0] = math.MaxFloat64
		newBB.Edges[axis][1] = math.Inf(-1)
	}
	return newBB
}

// stretch grows b just enough to also cover bb.
func stretch(b RtreeBoundingBox, bb RtreeBoundingBox) RtreeBoundingBox {
	newBB := NewRtreeBoundingBox(b.Dim, make([]float64, b.Dim), make([]float64, b.Dim))
	for axis := 0; axis < b.Dim; axis++ {
		if b.Edges[axis][0] > bb.Edges[axis][0] {
			newBB.Edges[axis][0] = bb.Edges[axis][0]
		} else {
			newBB.Edges[axis][0] = b.Edges[axis][0]
		}

		if b.Edges[axis][1] < bb.Edges[axis][1] {
			newBB.Edges[axis][1] = bb.Edges[axis][1]
		} else {
			newBB.Edges[axis][1] = b.Edges[axis][1]
		}
	}
	return newBB
}

func boundingBox(b RtreeBoundingBox, bb RtreeBoundingBox) RtreeBoundingBox {
	newBound := NewRtreeBoundingBox(b.Dim, make([]float64, b.Dim), make([]float64, b.Dim))

	for axis := 0; axis < b.Dim; axis++ {
		if b.Edges[axis][0] <= bb.Edges[axis][0] {
			newBound.Edges[axis][0] = b.Edges[axis][0]
		} else {
			newBound.Edges[axis][0] = bb.Edges[axis][0]
		}

		if b.Edges[axis][1] >= bb.Edges[axis][1] {
			newBound.Edges[axis][1] = b.Edges[axis][1]
		} else {
			newBound.Edges[axis][1] = bb.Edges[axis][1]
		}
	}

	return newBound
}

// edgeDeltas is the margin of the box: the sum of (high - low) per dimension.
func edgeDeltas(b RtreeBoundingBox) float64 {
	distance := 0.0
	for axis := 0; axis < b.Dim; axis++ {
		distance += b.Edges[axis][1] - b.Edges[axis][0]
	}
	return distance
}

func area(b RtreeBoundingBox) float64 {
	area := 1.0
	for axis := 0; axis < b.Dim; axis++ {
		area *= b.Edges[axis][1] - b.Edges[axis][0]
	}
	return area
}

func overlaps(b RtreeBoundingBox, bb RtreeBoundingBox) bool {
	for axis := 0; axis < b.Dim; axis++ {
		if b.Edges[axis][0] > bb.Edges[axis][1] || bb.Edges[axis][0] > b.Edges[axis][1] {
			return false
		}
	}

	return true
}

// overlap is the area of the intersection region (0 if disjoint).
func overlap(b RtreeBoundingBox, bb RtreeBoundingBox) float64 {
	intersection := 1.0

	for axis := 0; axis < b.Dim; axis++ {
		low := math.Max(b.Edges[axis][0], bb.Edges[axis][0])
		high := math.Min(b.Edges[axis][1], bb.Edges[axis][1])
		if high <= low {
			return 0.0
		}
		intersection *= high - low
	}

	return intersection
}

// distanceFromCenter is the squared euclidean distance between box centers.
func (b *RtreeBoundingBox) distanceFromCenter(bb RtreeBoundingBox) float64 {
	distance := 0.0
	for axis := 0; axis < b.Dim; axis++ {
		centerB := (b.Edges[axis][0] + b.Edges[axis][1]) / 2.0
		centerBB := (bb.Edges[axis][0] + bb.Edges[axis][1]) / 2.0
		distance += math.Pow(centerB-centerBB, 2)
	}

	return distance
}

func (b *RtreeBoundingBox) isBBSame(bb RtreeBoundingBox) bool {
	for axis := 0; axis < b.Dim; axis++ {
		if b.Edges[axis][0] != bb.Edges[axis][0] || b.Edges[axis][1] != bb.Edges[axis][1] {
			return false
		}
	}

	return true
}

// RtreeNode is either an internal node, a leaf node (items are data entries),
// or a data entry itself (leaf field set, no items).
type RtreeNode struct {
	items  []*RtreeNode
	parent *RtreeNode

	bound RtreeBoundingBox

	// isLeaf is true when items are data entries.
	isLeaf bool

	leaf SegmentObject
}

func (node *RtreeNode) getBound() RtreeBoundingBox {
	return node.bound
}

func (node *RtreeNode) recomputeBound() {
	node.bound = reset(node.bound)
	for _, item := range node.items {
		node.bound = stretch(node.bound, item.getBound())
	}
}

type Rtree struct {
	root          *RtreeNode
	size          int
	minChildItems int
	maxChildItems int
	dimensions    int
	height        int
}

func NewRtree(minChildItems, maxChildItems, dimensions int) *Rtree {
	return &Rtree{
		root:          nil,
		size:          0,
		height:        0,
		minChildItems: minChildItems,
		maxChildItems: maxChildItems,
		dimensions:    dimensions,
	}
}

func (rt *Rtree) Size() int {
	return rt.size
}

func (rt *Rtree) InsertLeaf(bound RtreeBoundingBox, leaf SegmentObject) {
	newLeaf := &RtreeNode{}
	newLeaf.bound = bound
	newLeaf.leaf = leaf

	if rt.root == nil {
		rt.root = &RtreeNode{}
		rt.root.isLeaf = true
		rt.root.items = make([]*RtreeNode, 0, rt.minChildItems)

		rt.root.items = append(rt.root.items, newLeaf)
		rt.root.bound = bound
		newLeaf.parent = rt.root
	} else {
		rt.insertInternal(newLeaf, true)
	}
	rt.size++
}

func (rt *Rtree) insertInternal(leaf *RtreeNode, firstInsert bool) {
	// I1: invoke ChooseSubtree to find an appropriate node N in which to
	// place the new entry E
	leafNode := rt.chooseSubtree(rt.root, leaf.bound)

	// I2: accommodate E in N
	leaf.parent = leafNode
	leafNode.items = append(leafNode.items, leaf)

	// I2: if N has M+1 entries, invoke OverflowTreatment (reinsert or split)
	if len(leafNode.items) > rt.maxChildItems {
		rt.overflowTreatment(leafNode, firstInsert)
	}
}

func (rt *Rtree) overflowTreatment(level *RtreeNode, firstInsert bool) {
	// OT1: on the first overflow of a leaf level during one insertion,
	// reinsert a fraction of its entries instead of splitting
	if level != rt.root && level.isLeaf && firstInsert {
		rt.reinsert(level)
		return
	}

	newNode := rt.split(level)

	// I3: a split of the root grows the tree by one level
	if level == rt.root {
		newRoot := &RtreeNode{}
		newRoot.isLeaf = false

		newRoot.items = make([]*RtreeNode, 0, rt.minChildItems)
		newRoot.items = append(newRoot.items, rt.root)
		newRoot.items = append(newRoot.items, newNode)
		rt.root.parent = newRoot
		newNode.parent = newRoot

		rt.height++

		newRoot.bound = NewRtreeBoundingBox(rt.dimensions, make([]float64, rt.dimensions), make([]float64, rt.dimensions))
		newRoot.recomputeBound()

		rt.root = newRoot
		return
	}

	newNode.parent = level.parent
	level.parent.items = append(level.parent.items, newNode)
	level.parent.recomputeBound()

	// I3: propagate OverflowTreatment upwards if necessary
	if len(level.parent.items) > rt.maxChildItems {
		rt.overflowTreatment(level.parent, firstInsert)
	}
}

func (rt *Rtree) reinsert(node *RtreeNode) {
	// RI1+RI2: order entries by decreasing distance between their centers
	// and the center of the node's bounding rectangle
	sort.Slice(node.items, func(i, j int) bool {
		return node.bound.distanceFromCenter(node.items[i].getBound()) >
			node.bound.distanceFromCenter(node.items[j].getBound())
	})

	// p = 30% of M yields the best performance per the R*-tree paper
	p := int(float64(len(node.items)) * REINSERT_P)
	if p < 1 {
		p = 1
	}

	// RI3: remove the first p entries and adjust the bounding rectangle
	removed := make([]*RtreeNode, p)
	copy(removed, node.items[:p])
	node.items = append(node.items[:0], node.items[p:]...)
	node.recomputeBound()

	for n := node.parent; n != nil; n = n.parent {
		n.recomputeBound()
	}

	// RI4: reinsert the removed entries
	for _, item := range removed {
		rt.insertInternal(item, false)
	}
}

func (rt *Rtree) chooseSubtree(node *RtreeNode, bound RtreeBoundingBox) *RtreeNode {
	// I4: adjust covering rectangles on the insertion path
	node.bound = stretch(node.bound, bound)

	// CS2: if N is a leaf, return N
	if node.isLeaf {
		return node
	}

	if node.items[0].isLeaf {
		// child pointers point to leaves: choose the entry needing the
		// least overlap enlargement, ties by least area enlargement
		minOverlapEnlargement := math.MaxFloat64
		chosenIdx := 0
		for i, item := range node.items {
			enlarged := boundingBox(item.getBound(), bound)
			overlapEnlargement := overlap(item.getBound(), bound)

			if overlapEnlargement < minOverlapEnlargement ||
				(overlapEnlargement == minOverlapEnlargement &&
					area(enlarged)-area(item.getBound()) <
						area(boundingBox(node.items[chosenIdx].getBound(), bound))-area(node.items[chosenIdx].getBound())) {
				minOverlapEnlargement = overlapEnlargement
				chosenIdx = i
			}
		}
		return rt.chooseSubtree(node.items[chosenIdx], bound)
	}

	// child pointers point to internal nodes: choose the entry needing the
	// least area enlargement, ties by smallest area
	minAreaEnlargement := math.MaxFloat64
	chosenIdx := 0
	for i, item := range node.items {
		enlarged := boundingBox(item.getBound(), bound)
		enlargement := area(enlarged) - area(item.getBound())
		if enlargement < minAreaEnlargement ||
			(enlargement == minAreaEnlargement &&
				area(enlarged) < area(boundingBox(node.items[chosenIdx].getBound(), bound))) {
			minAreaEnlargement = enlargement
			chosenIdx = i
		}
	}

	return rt.chooseSubtree(node.items[chosenIdx], bound)
}

func (rt *Rtree) split(node *RtreeNode) *RtreeNode {
	nItems := len(node.items)
	distributionCount := nItems - 2*rt.minChildItems + 1

	sortByEdge := func(axis, edge int) {
		sort.Slice(node.items, func(i, j int) bool {
			return node.items[i].getBound().Edges[axis][edge] <
				node.items[j].getBound().Edges[axis][edge]
		})
	}

	groupBounds := func(k int) (RtreeBoundingBox, RtreeBoundingBox) {
		splitAt := (rt.minChildItems - 1) + k
		first := reset(RtreeBoundingBox{Dim: rt.dimensions, Edges: make([][2]float64, rt.dimensions)})
		second := reset(RtreeBoundingBox{Dim: rt.dimensions, Edges: make([][2]float64, rt.dimensions)})
		for i := 0; i < splitAt; i++ {
			first = stretch(first, node.items[i].getBound())
		}
		for i := splitAt; i < nItems; i++ {
			second = stretch(second, node.items[i].getBound())
		}
		return first, second
	}

	// CSA1+CSA2: for each axis, sort by lower then upper edge and sum the
	// margins of every distribution; the axis with minimum S splits
	splitAxis := 0
	minMarginSum := math.MaxFloat64
	for axis := 0; axis < rt.dimensions; axis++ {
		marginSum := 0.0
		for edge := 0; edge < 2; edge++ {
			sortByEdge(axis, edge)
			for k := 0; k < distributionCount; k++ {
				first, second := groupBounds(k)
				marginSum += edgeDeltas(first) + edgeDeltas(second)
			}
		}
		if marginSum < minMarginSum {
			minMarginSum = marginSum
			splitAxis = axis
		}
	}

	// CSI1: along the split axis, choose the distribution with minimum
	// overlap, ties by minimum combined area
	splitEdge, splitDistribution := 0, 0
	minOverlap := math.MaxFloat64
	minArea := math.MaxFloat64
	for edge := 0; edge < 2; edge++ {
		sortByEdge(splitAxis, edge)
		for k := 0; k < distributionCount; k++ {
			first, second := groupBounds(k)
			overlapVal := overlap(first, second)
			areaVal := area(first) + area(second)
			if overlapVal < minOverlap || (overlapVal == minOverlap && areaVal < minArea) {
				minOverlap = overlapVal
				minArea = areaVal
				splitEdge = edge
				splitDistribution = k
			}
		}
	}

	// S3: distribute the entries into the two groups
	sortByEdge(splitAxis, splitEdge)
	splitIndex := (rt.minChildItems - 1) + splitDistribution

	newNode := &RtreeNode{}
	newNode.isLeaf = node.isLeaf
	newNode.items = make([]*RtreeNode, 0, nItems-splitIndex)
	for i := splitIndex; i < nItems; i++ {
		node.items[i].parent = newNode
		newNode.items = append(newNode.items, node.items[i])
	}
	node.items = node.items[:splitIndex]

	node.recomputeBound()

	newNode.bound = NewRtreeBoundingBox(rt.dimensions, make([]float64, rt.dimensions), make([]float64, rt.dimensions))
	newNode.recomputeBound()

	return newNode
}

// Search returns every data entry whose bound overlaps the query box.
func (rt *Rtree) Search(bound RtreeBoundingBox) []SegmentObject {
	results := []SegmentObject{}
	if rt.root == nil {
		return results
	}
	return rt.search(rt.root, bound, results)
}

func (rt *Rtree) search(node *RtreeNode, bound RtreeBoundingBox,
	results []SegmentObject) []SegmentObject {
	for _, e := range node.items {
		if !overlaps(e.getBound(), bound) {
			continue
		}

		if !node.isLeaf {
			results = rt.search(e, bound, results)
			continue
		}

		results = append(results, e.leaf)
	}
	return results
}

// minDist is the distance from a point to the nearest edge of a rectangle,
// zero if the point lies inside it. Lower bound for the distance to any
// object contained in the rectangle.
func (p Point) minDist(r RtreeBoundingBox) float64 {
	// Edges[0] = {minLat, maxLat}
	// Edges[1] = {minLon, maxLon}
	rLat, rLon := p.Lat, p.Lon
	if p.Lat < r.Edges[0][0] {
		rLat = r.Edges[0][0]
	} else if p.Lat > r.Edges[0][1] {
		rLat = r.Edges[0][1]
	}

	if p.Lon < r.Edges[1][0] {
		rLon = r.Edges[1][0]
	} else if p.Lon > r.Edges[1][1] {
		rLon = r.Edges[1][1]
	}

	return haversineDistance(p.Lat, p.Lon, rLat, rLon)
}

// branch entry for the best-first nearest neighbour search.
type nnEntry struct {
	node   *RtreeNode
	obj    SegmentObject
	dist   float64
	isData bool
}

type nnHeap []nnEntry

func (h nnHeap) Len() int { return len(h) }

func (h nnHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	// equal distances: data entries first, then ascending id, so repeated
	// queries pop in the same order
	if h[i].isData != h[j].isData {
		return h[i].isData
	}
	return h[i].obj.ID < h[j].obj.ID
}

func (h nnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nnHeap) Push(x interface{}) { *h = append(*h, x.(nnEntry)) }

func (h *nnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NearestNeighbours returns up to k data entries in ascending distance from
// p, ties broken by ascending id. Best-first traversal: expanding nodes in
// minDist order guarantees data entries pop in exact distance order.
func (rt *Rtree) NearestNeighbours(k int, p Point) []SegmentObject {
	if rt.root == nil || k <= 0 {
		return []SegmentObject{}
	}
	results := make([]SegmentObject, 0, k)

	h := &nnHeap{}
	heap.Push(h, nnEntry{node: rt.root, dist: p.minDist(rt.root.bound)})

	for h.Len() > 0 && len(results) < k {
		e := heap.Pop(h).(nnEntry)

		if e.isData {
			results = append(results, e.obj)
			continue
		}

		for _, item := range e.node.items {
			if e.node.isLeaf {
				heap.Push(h, nnEntry{
					obj:    item.leaf,
					dist:   haversineDistance(p.Lat, p.Lon, item.leaf.Lat, item.leaf.Lon),
					isData: true,
				})
			} else {
				heap.Push(h, nnEntry{node: item, dist: p.minDist(item.bound)})
			}
		}
	}

	return results
}

// WithinRadius returns every data entry at most radiusMi miles from p, in no
// particular order.
func (rt *Rtree) WithinRadius(p Point, radiusMi float64) []SegmentObject {
	results := []SegmentObject{}
	if rt.root == nil || radiusMi < 0 {
		return results
	}

	// covering box for the radius; lon degrees shrink with latitude
	deltaLat := (radiusMi / earthRadiusMi) * (180.0 / math.Pi)
	latCos := math.Cos(degreeToRadians(p.Lat))
	if latCos < 0.01 {
		latCos = 0.01
	}
	deltaLon := deltaLat / latCos

	bound := NewRtreeBoundingBox(2,
		[]float64{p.Lat - deltaLat, p.Lon - deltaLon},
		[]float64{p.Lat + deltaLat, p.Lon + deltaLon})

	for _, candidate := range rt.Search(bound) {
		if haversineDistance(p.Lat, p.Lon, candidate.Lat, candidate.Lon) <= radiusMi {
			results = append(results, candidate)
		}
	}
	return results
}
