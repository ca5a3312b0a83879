// Package geom implements the collision primitives used by the level
// compiler and the player integrator: circles, line segments and circular
// arcs, plus the Collider union that dispatches between them.
package geom

import "github.com/automoto/built-to-scale/shared/fixnum"

// Circle is a solid disc.
type Circle struct {
	Position fixnum.Vec2
	Radius   fixnum.Num
}

// CollidesCircle reports whether the two discs touch or overlap.
func (c Circle) CollidesCircle(o Circle) bool {
	reach := c.Radius + o.Radius
	return c.Position.Sub(o.Position).LenSq64() <= reach.Square64()
}

// NormalAt is the unit direction from the centre towards p.
func (c Circle) NormalAt(p fixnum.Vec2) fixnum.Vec2 {
	return p.Sub(c.Position).FastNormalise()
}

func (c Circle) ClosestPoint(p fixnum.Vec2) fixnum.Vec2 {
	return c.NormalAt(p).Scale(c.Radius).Add(c.Position)
}

// OvershootCircle returns the displacement that moves o out of c.
func (c Circle) OvershootCircle(o Circle) fixnum.Vec2 {
	distance := o.Position.Sub(c.Position).Magnitude()
	amount := c.Radius + o.Radius - distance
	return c.NormalAt(o.Position).Scale(amount)
}
