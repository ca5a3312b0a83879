package mapcompiler

import (
	"fmt"
	"math"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/leveldata"
)

// vec is the build-time float vector used while lowering shapes.
type vec struct {
	x, y float64
}

func fromPoint(p leveldata.Point) vec      { return vec{p.X, p.Y} }
func (v vec) add(o vec) vec                { return vec{v.x + o.x, v.y + o.y} }
func (v vec) sub(o vec) vec                { return vec{v.x - o.x, v.y - o.y} }
func (v vec) scale(s float64) vec          { return vec{v.x * s, v.y * s} }
func (v vec) dot(o vec) float64            { return v.x*o.x + v.y*o.y }
func (v vec) cross(o vec) float64          { return v.x*o.y - v.y*o.x }
func (v vec) length() float64              { return math.Hypot(v.x, v.y) }
func (v vec) fixed() fixnum.Vec2           { return fixnum.VF(v.x, v.y) }
func (v vec) near(o vec, eps float64) bool { return v.sub(o).length() <= eps }

func (v vec) normalize() vec {
	l := v.length()
	if l == 0 {
		return vec{}
	}
	return vec{v.x / l, v.y / l}
}

const epsilon = 1e-6

// lowerer turns authored shapes into colliders.
type lowerer struct {
	cornerRadius  float64
	maxLineLength float64
}

func (lw lowerer) shape(s leveldata.Shape, tag geom.Tag) ([]geom.Collider, error) {
	radius := lw.cornerRadius
	if s.CornerRadius > 0 {
		radius = s.CornerRadius
	}

	switch s.Kind {
	case leveldata.ShapeEllipse:
		if s.W != s.H {
			return nil, fmt.Errorf("object %q: %w (%gx%g)", s.Name, ErrNotCircle, s.W, s.H)
		}
		return []geom.Collider{geom.NewCircle(geom.Circle{
			Position: vec{s.X + s.W/2, s.Y + s.H/2}.fixed(),
			Radius:   fixnum.FromFloat(s.W / 2),
		}, tag)}, nil

	case leveldata.ShapeRect:
		corners := []vec{
			{s.X, s.Y},
			{s.X + s.W, s.Y},
			{s.X + s.W, s.Y + s.H},
			{s.X, s.Y + s.H},
		}
		var out []geom.Collider
		for i := range corners {
			out = lw.line(out, corners[i], corners[(i+1)%len(corners)], tag)
		}
		return out, nil

	case leveldata.ShapePolygon:
		pts := dedupe(s.Points, true)
		if len(pts) < 3 {
			return nil, fmt.Errorf("object %q: %w: polygon needs 3 distinct points", s.Name, leveldata.ErrUnsupportedShape)
		}
		if shoelace(pts) < 0 {
			for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
				pts[i], pts[j] = pts[j], pts[i]
			}
		}
		return lw.chain(pts, true, radius, tag), nil

	case leveldata.ShapePolyline:
		pts := dedupe(s.Points, false)
		if len(pts) < 2 {
			return nil, fmt.Errorf("object %q: %w: polyline needs 2 distinct points", s.Name, leveldata.ErrUnsupportedShape)
		}
		return lw.chain(pts, false, radius, tag), nil
	}
	return nil, fmt.Errorf("object %q: %w: %v", s.Name, leveldata.ErrUnsupportedShape, s.Kind)
}

// chain emits the segments of a polygon or polyline with every interior
// corner rounded off.
func (lw lowerer) chain(pts []vec, closed bool, radius float64, tag geom.Tag) []geom.Collider {
	n := len(pts)
	type trimmed struct{ end, start vec }
	corners := make([]trimmed, n)
	var out []geom.Collider

	for i := range pts {
		corners[i] = trimmed{pts[i], pts[i]}
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		a := pts[(i+n-1)%n]
		b := pts[(i+1)%n]
		var fillet *geom.Collider
		corners[i].end, corners[i].start, fillet = roundCorner(a, pts[i], b, radius, tag)
		if fillet != nil {
			out = append(out, *fillet)
		}
	}

	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		out = lw.line(out, corners[i].start, corners[(i+1)%n].end, tag)
	}
	return out
}

// roundCorner replaces the corner at o between neighbours a and b with a
// fillet of the given radius. It returns where the incoming segment should
// now end, where the outgoing one should start, and the fillet collider: a
// circle on convex corners, an arc on concave ones, nothing when the path is
// straight or the fillet does not fit.
func roundCorner(a, o, b vec, radius float64, tag geom.Tag) (vec, vec, *geom.Collider) {
	toA := a.sub(o)
	toB := b.sub(o)
	xh := toA.normalize()
	yh := toB.normalize()

	d := xh.dot(yh)
	turn := o.sub(a).cross(b.sub(o))
	if radius <= 0 || math.Abs(turn) < epsilon || d > 1-epsilon || d < -1+epsilon {
		return o, o, nil
	}

	c := xh.add(yh).normalize().scale(radius / math.Sqrt((1-d)/2))
	tA := xh.dot(c)
	tB := yh.dot(c)
	if tA > toA.length()/2 || tB > toB.length()/2 {
		return o, o, nil
	}
	p1 := o.add(xh.scale(tA))
	p2 := o.add(yh.scale(tB))
	centre := o.add(c)

	circle := geom.Circle{Position: centre.fixed(), Radius: fixnum.FromFloat(radius)}
	if turn > 0 {
		col := geom.NewCircle(circle, tag)
		return p1, p2, &col
	}

	start := p1.sub(centre).normalize()
	end := p2.sub(centre).normalize()
	if start.cross(end) < 0 {
		start, end = end, start
	}
	col := geom.NewArc(geom.Arc{Circle: circle, Start: start.fixed(), End: end.fixed()}, tag)
	return p1, p2, &col
}

// line appends the segment from s to e, split into pieces no longer than
// maxLineLength.
func (lw lowerer) line(out []geom.Collider, s, e vec, tag geom.Tag) []geom.Collider {
	length := e.sub(s).length()
	if length < 1.0/float64(fixnum.One) {
		return out
	}
	pieces := 1
	if lw.maxLineLength > 0 {
		pieces = int(math.Ceil(length / lw.maxLineLength))
	}
	step := e.sub(s).scale(1 / float64(pieces))
	for i := 0; i < pieces; i++ {
		from := s.add(step.scale(float64(i)))
		to := s.add(step.scale(float64(i + 1)))
		if i == pieces-1 {
			to = e
		}
		out = append(out, geom.NewLineCollider(geom.NewLine(from.fixed(), to.fixed()), tag))
	}
	return out
}

// dedupe drops repeated consecutive points and, for closed shapes, a final
// point equal to the first.
func dedupe(points []leveldata.Point, closed bool) []vec {
	out := make([]vec, 0, len(points))
	for _, p := range points {
		v := fromPoint(p)
		if len(out) > 0 && v.near(out[len(out)-1], epsilon) {
			continue
		}
		out = append(out, v)
	}
	if closed && len(out) > 1 && out[0].near(out[len(out)-1], epsilon) {
		out = out[:len(out)-1]
	}
	return out
}

// shoelace returns twice the signed area. Positive means the solid is on the
// right when walking the outline with y pointing down.
func shoelace(pts []vec) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].x*pts[j].y - pts[j].x*pts[i].y
	}
	return sum
}
