package geom

import "github.com/automoto/built-to-scale/shared/fixnum"

// Line is a finite segment with a precomputed unit normal and length.
type Line struct {
	Start  fixnum.Vec2
	End    fixnum.Vec2
	Normal fixnum.Vec2
	Length fixnum.Num
}

// NewLine builds a segment whose normal is the direction rotated a quarter
// turn anticlockwise on screen, so walking start to end keeps the solid side
// on the right.
func NewLine(start, end fixnum.Vec2) Line {
	dir := end.Sub(start)
	n := dir.FastNormalise()
	return Line{
		Start:  start,
		End:    end,
		Normal: fixnum.Vec2{X: n.Y, Y: -n.X},
		Length: dir.Magnitude(),
	}
}

// ClosestPoint projects p onto the segment, clamping to the endpoints.
func (l Line) ClosestPoint(p fixnum.Vec2) fixnum.Vec2 {
	x := l.End.Sub(l.Start)
	rel := p.Sub(l.Start)

	lenSq := x.LenSq64()
	disc := x.Dot64(rel)
	switch {
	case disc <= 0 || lenSq == 0:
		return l.Start
	case disc >= lenSq:
		return l.End
	}
	return l.Start.Add(fixnum.Vec2{
		X: fixnum.Num(int64(x.X) * disc / lenSq),
		Y: fixnum.Num(int64(x.Y) * disc / lenSq),
	})
}

func (l Line) CollidesCircle(c Circle) bool {
	return l.ClosestPoint(c.Position).Sub(c.Position).LenSq64() <= c.Radius.Square64()
}

// Distance is the signed perpendicular distance from p to the infinite line
// through the segment, positive on the side Normal points to.
func (l Line) Distance(p fixnum.Vec2) fixnum.Num {
	if l.Length == 0 {
		return p.Sub(l.Start).Magnitude()
	}
	x1, y1 := int64(l.Start.X), int64(l.Start.Y)
	x2, y2 := int64(l.End.X), int64(l.End.Y)
	x0, y0 := int64(p.X), int64(p.Y)

	area := (y2-y1)*x0 - (x2-x1)*y0 + x2*y1 - y2*x1
	return fixnum.Num(area / int64(l.Length))
}

// OvershootCircle pushes c along the segment normal until it only touches
// the line from the front. A centre behind the line is pushed all the way
// through.
func (l Line) OvershootCircle(c Circle) fixnum.Vec2 {
	return l.Normal.Scale(c.Radius - l.Distance(c.Position))
}
