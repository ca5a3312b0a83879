package geom

import "github.com/automoto/built-to-scale/shared/fixnum"

// Arc is the hollow side of a circle, limited to the angular span swept
// from Start to End in the direction of positive cross product. Start and
// End are unit vectors relative to the circle centre. An arc pushes things
// towards its centre, so it models concave corners.
type Arc struct {
	Circle Circle
	Start  fixnum.Vec2
	End    fixnum.Vec2
}

// InSpan reports whether the direction d (relative to the centre) lies
// inside the arc. Both end directions are inside.
func (a Arc) InSpan(d fixnum.Vec2) bool {
	axb := sign64(a.Start.Cross64(d))
	bxc := sign64(d.Cross64(a.End))
	if sign64(a.Start.Cross64(a.End)) >= 0 {
		return axb >= 0 && bxc >= 0
	}
	// Reflex span: outside only when strictly inside the complementary arc.
	return !(axb < 0 && bxc < 0)
}

// ClosestPoint returns the nearest point on the arc to p, snapping to the
// nearer end when the circle's closest point falls outside the span.
func (a Arc) ClosestPoint(p fixnum.Vec2) fixnum.Vec2 {
	onCircle := a.Circle.ClosestPoint(p).Sub(a.Circle.Position)
	if a.InSpan(onCircle) {
		return a.Circle.Position.Add(onCircle)
	}
	if onCircle.Dot64(a.Start) > onCircle.Dot64(a.End) {
		return a.Circle.Position.Add(a.Start.Scale(a.Circle.Radius))
	}
	return a.Circle.Position.Add(a.End.Scale(a.Circle.Radius))
}

func (a Arc) CollidesCircle(c Circle) bool {
	return a.ClosestPoint(c.Position).Sub(c.Position).LenSq64() < c.Radius.Square64()
}

// NormalAt points back towards the centre.
func (a Arc) NormalAt(p fixnum.Vec2) fixnum.Vec2 {
	return a.Circle.NormalAt(p).Neg()
}

func (a Arc) OvershootCircle(c Circle) fixnum.Vec2 {
	distance := c.Position.Sub(a.Circle.Position).Magnitude()
	amount := distance + c.Radius - a.Circle.Radius
	return a.NormalAt(c.Position).Scale(amount)
}

func sign64(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
