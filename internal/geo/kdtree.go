// Package geo implements the spatial side of the router: a KD-tree over graph
// vertices answering nearest-point and radius queries with great-circle
// distance, and the rectangular map bounds that limit a search.
//
// Coordinates enter and leave the package in degrees and distances in meters.
// Internally the tree works on radians and on angular distances, i.e. meters
// divided by the mean Earth radius.
package geo

import (
	"errors"
	"math"
	"sort"

	"sunnyway/internal/domain/entities"
	"sunnyway/pkg/utils"
)

// ErrNegativeRadius is returned by radius queries given a negative radius.
var ErrNegativeRadius = errors.New("geo: radius must be non-negative")

// Entry is an identified point fed to BuildKdTree.
type Entry struct {
	ID    int
	Point entities.GeoPoint
}

// kdPoint is a point in radians: x is latitude, y is longitude.
type kdPoint struct {
	x, y float64
}

func toKdPoint(p entities.GeoPoint) kdPoint {
	return kdPoint{x: p.Lat * math.Pi / 180, y: p.Lon * math.Pi / 180}
}

// haversine returns the central angle between two radians points.
func haversine(a, b kdPoint) float64 {
	sx := math.Sin(0.5 * (a.x - b.x))
	sy := math.Sin(0.5 * (a.y - b.y))
	h := sx*sx + math.Cos(a.x)*math.Cos(b.x)*sy*sy
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}

type kdNode struct {
	id       int
	point    kdPoint
	left     *kdNode
	right    *kdNode
	vertical bool // splits on latitude when true, longitude otherwise
}

// key returns the coordinate of p on the node's splitting axis.
func (n *kdNode) key(p kdPoint) float64 {
	if n.vertical {
		return p.x
	}
	return p.y
}

// KdTree is an immutable 2-d tree over vertex positions. It is built once and
// is safe for concurrent queries.
//
// Go Learning Note — Immutability Instead of Locks:
// A spatial index that is updated in place needs a sync.RWMutex around every
// query. This tree never changes after BuildKdTree returns, so readers on any
// number of goroutines need no synchronization at all.
type KdTree struct {
	root *kdNode
	size int
}

// BuildKdTree builds a balanced tree from entries. The input slice is not
// modified.
func BuildKdTree(entries []Entry) *KdTree {
	points := make([]kdEntry, len(entries))
	for i, e := range entries {
		points[i] = kdEntry{id: e.ID, point: toKdPoint(e.Point)}
	}
	return &KdTree{
		root: build(points, true),
		size: len(points),
	}
}

type kdEntry struct {
	id    int
	point kdPoint
}

func axisValue(e kdEntry, vertical bool) float64 {
	if vertical {
		return e.point.x
	}
	return e.point.y
}

// build sorts the slice on the active axis and splits at the median. The
// median index is moved left over equal keys so every point in the left
// subtree is strictly smaller than the node on that axis.
func build(points []kdEntry, vertical bool) *kdNode {
	if len(points) == 0 {
		return nil
	}
	if len(points) == 1 {
		return &kdNode{id: points[0].id, point: points[0].point, vertical: vertical}
	}

	sort.Slice(points, func(i, j int) bool {
		return axisValue(points[i], vertical) < axisValue(points[j], vertical)
	})
	mid := len(points) / 2
	median := axisValue(points[mid], vertical)
	for mid > 0 && axisValue(points[mid-1], vertical) >= median {
		mid--
	}

	return &kdNode{
		id:       points[mid].id,
		point:    points[mid].point,
		vertical: vertical,
		left:     build(points[:mid], !vertical),
		right:    build(points[mid+1:], !vertical),
	}
}

// Len returns the number of points in the tree.
func (t *KdTree) Len() int { return t.size }

// axisExtent is how far, on the node's axis, a point within angular distance
// r of target can lie. Latitude differences never exceed the central angle.
// Longitude differences grow towards the poles; the spherical cap of radius r
// spans asin(sin r / cos lat) of longitude, or every longitude once the cap
// reaches a pole.
func axisExtent(n *kdNode, target kdPoint, r float64) float64 {
	if n.vertical {
		return r
	}
	if math.IsInf(r, 1) {
		return r
	}
	s := math.Sin(r) / math.Cos(target.x)
	if r >= math.Pi/2 || s >= 1 || s < 0 {
		return math.Inf(1)
	}
	return math.Asin(s)
}

// farGap is a lower bound on the axis distance from target to any point on
// the side of the node's splitting plane that target is not on. Longitude is
// circular, so the far side may also be reached across the antimeridian.
func farGap(n *kdNode, target kdPoint) float64 {
	tk, nk := n.key(target), n.key(n.point)
	gap := math.Abs(tk - nk)
	if n.vertical {
		return gap
	}
	around := tk + math.Pi // far side is [nk, π], reached going west past -π
	if tk >= nk {
		around = math.Pi - tk // far side is [-π, nk], reached going east past π
	}
	return math.Min(gap, around)
}

type nearestSearch struct {
	target  kdPoint
	best    float64
	found   bool
	closest int
	visited int
}

func (s *nearestSearch) consider(n *kdNode) {
	d := haversine(s.target, n.point)
	if d < s.best || (!s.found && d <= s.best) {
		s.best = d
		s.closest = n.id
		s.found = true
	}
}

func (s *nearestSearch) descend(n *kdNode) {
	if n == nil {
		return
	}
	s.visited++

	near, far := n.left, n.right
	if n.key(s.target) >= n.key(n.point) {
		near, far = n.right, n.left
	}

	s.descend(near)
	s.consider(n)

	if farGap(n, s.target) <= axisExtent(n, s.target, s.best) {
		s.descend(far)
	}
}

// Nearest returns the id of the vertex closest to point, provided it lies
// within maxDistance meters. ok is false when no vertex is that close or
// maxDistance is negative. Pass math.Inf(1) for an unbounded search.
func (t *KdTree) Nearest(point entities.GeoPoint, maxDistance float64) (id int, ok bool) {
	if maxDistance < 0 || math.IsNaN(maxDistance) {
		return 0, false
	}
	s := nearestSearch{
		target: toKdPoint(point),
		best:   maxDistance / utils.EarthRadiusMeters,
	}
	s.descend(t.root)
	return s.closest, s.found
}

// AllNearest returns the ids of every vertex within radius meters of point,
// in no particular order.
func (t *KdTree) AllNearest(point entities.GeoPoint, radius float64) ([]int, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, ErrNegativeRadius
	}
	target := toKdPoint(point)
	r := radius / utils.EarthRadiusMeters

	var result []int
	var walk func(n *kdNode)
	walk = func(n *kdNode) {
		if n == nil {
			return
		}
		if haversine(target, n.point) <= r {
			result = append(result, n.id)
		}
		ext := axisExtent(n, target, r)
		lo, hi, nk := n.key(target)-ext, n.key(target)+ext, n.key(n.point)
		// a longitude interval passing ±π continues from the other end
		wrapsEast := !n.vertical && hi > math.Pi
		wrapsWest := !n.vertical && lo < -math.Pi
		if lo <= nk || wrapsEast {
			walk(n.left)
		}
		if hi >= nk || wrapsWest {
			walk(n.right)
		}
	}
	walk(t.root)
	return result, nil
}
