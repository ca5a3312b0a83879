package mapcompiler

import (
	"math"
	"sort"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

// assembler builds per-cell candidate lists over a flat collider array.
type assembler struct {
	colliders     []geom.Collider
	boxSize       int
	padding       float64
	direct        map[mapdata.Cell][]uint32
	gravitational []uint32
	forced        int
}

func newAssembler(colliders []geom.Collider, boxSize, padding int) *assembler {
	a := &assembler{
		colliders: colliders,
		boxSize:   boxSize,
		padding:   float64(padding),
		direct:    make(map[mapdata.Cell][]uint32),
	}
	for i := range colliders {
		idx := uint32(i)
		occupiedBoxes(&colliders[i], boxSize, padding, func(cell mapdata.Cell) {
			list := a.direct[cell]
			if n := len(list); n > 0 && list[n-1] == idx {
				return
			}
			a.direct[cell] = append(list, idx)
		})
		if colliders[i].Tag.IsGravitational() {
			a.gravitational = append(a.gravitational, idx)
		}
	}
	return a
}

// discover returns the occupied cells, every cell within ring of one, and
// the extra cells, sorted row by row.
func (a *assembler) discover(ring int, extra ...mapdata.Cell) []mapdata.Cell {
	seen := make(map[mapdata.Cell]struct{})
	for cell := range a.direct {
		for _, c := range Ring(cell, ring) {
			seen[c] = struct{}{}
		}
	}
	for _, c := range extra {
		seen[c] = struct{}{}
	}
	cells := make([]mapdata.Cell, 0, len(seen))
	for c := range seen {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// candidates returns the ordered candidate list of one cell.
func (a *assembler) candidates(cell mapdata.Cell) []uint32 {
	set := make(map[uint32]struct{})
	for _, idx := range a.direct[cell] {
		set[idx] = struct{}{}
	}

	bounds := a.cellRect(cell)
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			for _, idx := range a.direct[mapdata.Cell{X: cell.X + dx, Y: cell.Y + dy}] {
				if _, ok := set[idx]; ok {
					continue
				}
				if colliderRectDistance(&a.colliders[idx], bounds) <= a.padding {
					set[idx] = struct{}{}
				}
			}
		}
	}

	hasGravity := false
	for idx := range set {
		if a.colliders[idx].Tag.IsGravitational() {
			hasGravity = true
			break
		}
	}
	if !hasGravity {
		for _, corner := range a.corners(cell) {
			idx := a.nearestGravitational(corner)
			if _, ok := set[idx]; !ok {
				set[idx] = struct{}{}
				a.forced++
			}
		}
	}

	list := make([]uint32, 0, len(set))
	for idx := range set {
		list = append(list, idx)
	}
	sort.Slice(list, func(i, j int) bool {
		ci, cj := a.colliders[list[i]].Kind.Curved(), a.colliders[list[j]].Kind.Curved()
		if ci != cj {
			return ci
		}
		return list[i] < list[j]
	})
	return list
}

func (a *assembler) corners(cell mapdata.Cell) [4]fixnum.Vec2 {
	x0, y0 := int(cell.X)*a.boxSize, int(cell.Y)*a.boxSize
	x1, y1 := x0+a.boxSize, y0+a.boxSize
	return [4]fixnum.Vec2{fixnum.V(x0, y0), fixnum.V(x1, y0), fixnum.V(x0, y1), fixnum.V(x1, y1)}
}

// nearestGravitational scans the whole level. Ties go to the lowest index.
// The caller guarantees at least one gravitational collider exists.
func (a *assembler) nearestGravitational(p fixnum.Vec2) uint32 {
	best := a.gravitational[0]
	bestDist := int64(math.MaxInt64)
	for _, idx := range a.gravitational {
		d := fixnum.DistSq64(a.colliders[idx].ClosestPoint(p), p)
		if d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (a *assembler) cellRect(cell mapdata.Cell) rect {
	b := float64(a.boxSize)
	return rect{float64(cell.X) * b, float64(cell.Y) * b, float64(cell.X+1) * b, float64(cell.Y+1) * b}
}

func (r rect) contains(p vec) bool {
	return p.x >= r.x0 && p.x <= r.x1 && p.y >= r.y0 && p.y <= r.y1
}

func (r rect) corners() [4]vec {
	return [4]vec{{r.x0, r.y0}, {r.x1, r.y0}, {r.x1, r.y1}, {r.x0, r.y1}}
}

func toVec(v fixnum.Vec2) vec {
	return vec{v.X.Float(), v.Y.Float()}
}

// colliderRectDistance is the shortest distance between the collider's
// surface and any point of the rectangle. Arcs are measured as their full
// circle.
func colliderRectDistance(c *geom.Collider, r rect) float64 {
	switch c.Kind {
	case geom.KindCircle:
		return circleRectDistance(c.Circle, r)
	case geom.KindArc:
		return circleRectDistance(c.Arc.Circle, r)
	}
	return segmentRectDistance(toVec(c.Line.Start), toVec(c.Line.End), r)
}

func circleRectDistance(c geom.Circle, r rect) float64 {
	centre := toVec(c.Position)
	radius := c.Radius.Float()
	near := pointRectDistance(centre, r)
	far := 0.0
	for _, corner := range r.corners() {
		far = math.Max(far, corner.sub(centre).length())
	}
	switch {
	case radius < near:
		return near - radius
	case radius > far:
		return radius - far
	}
	return 0
}

func pointRectDistance(p vec, r rect) float64 {
	dx := math.Max(math.Max(r.x0-p.x, 0), p.x-r.x1)
	dy := math.Max(math.Max(r.y0-p.y, 0), p.y-r.y1)
	return math.Hypot(dx, dy)
}

func segmentRectDistance(a, b vec, r rect) float64 {
	if r.contains(a) || r.contains(b) {
		return 0
	}
	cs := r.corners()
	best := math.Inf(1)
	for i := range cs {
		best = math.Min(best, segmentDistance(a, b, cs[i], cs[(i+1)%4]))
	}
	return best
}

func segmentDistance(a, b, c, d vec) float64 {
	if segmentsIntersect(a, b, c, d) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(a, c, d), pointSegmentDistance(b, c, d)),
		math.Min(pointSegmentDistance(c, a, b), pointSegmentDistance(d, a, b)),
	)
}

func pointSegmentDistance(p, a, b vec) float64 {
	ab := b.sub(a)
	l := ab.dot(ab)
	if l == 0 {
		return p.sub(a).length()
	}
	t := math.Max(0, math.Min(1, p.sub(a).dot(ab)/l))
	return p.sub(a.add(ab.scale(t))).length()
}

func segmentsIntersect(a, b, c, d vec) bool {
	d1 := b.sub(a).cross(c.sub(a))
	d2 := b.sub(a).cross(d.sub(a))
	d3 := d.sub(c).cross(a.sub(c))
	d4 := d.sub(c).cross(b.sub(c))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
