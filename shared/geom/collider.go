package geom

import (
	"fmt"

	"github.com/automoto/built-to-scale/shared/fixnum"
)

// Kind selects which shape of a Collider is active.
type Kind uint8

const (
	KindCircle Kind = iota
	KindLine
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Curved reports whether the shape is a circle or an arc.
func (k Kind) Curved() bool {
	return k == KindCircle || k == KindArc
}

// Tag classifies how the player reacts to a collider.
type Tag uint8

const (
	CollisionOnly Tag = iota
	CollisionGravitational
	Killision
)

func (t Tag) IsGravitational() bool {
	return t == CollisionGravitational
}

// IsCollision reports whether the collider physically blocks the player.
func (t Tag) IsCollision() bool {
	return t == CollisionGravitational || t == CollisionOnly
}

func (t Tag) IsLethal() bool {
	return t == Killision
}

func (t Tag) String() string {
	switch t {
	case CollisionOnly:
		return "collision"
	case CollisionGravitational:
		return "gravitational"
	case Killision:
		return "killision"
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Collider is a tagged union over the three shapes. Only the field named by
// Kind is meaningful. Velocity is zero for static terrain.
type Collider struct {
	Kind     Kind
	Tag      Tag
	Circle   Circle
	Line     Line
	Arc      Arc
	Velocity fixnum.Vec2
}

func NewCircle(c Circle, tag Tag) Collider {
	return Collider{Kind: KindCircle, Tag: tag, Circle: c}
}

func NewLineCollider(l Line, tag Tag) Collider {
	return Collider{Kind: KindLine, Tag: tag, Line: l}
}

func NewArc(a Arc, tag Tag) Collider {
	return Collider{Kind: KindArc, Tag: tag, Arc: a}
}

func (c *Collider) CollidesCircle(o Circle) bool {
	switch c.Kind {
	case KindCircle:
		return c.Circle.CollidesCircle(o)
	case KindLine:
		return c.Line.CollidesCircle(o)
	case KindArc:
		return c.Arc.CollidesCircle(o)
	}
	return false
}

// NormalAt returns the surface normal facing o.
func (c *Collider) NormalAt(o Circle) fixnum.Vec2 {
	switch c.Kind {
	case KindCircle:
		return c.Circle.NormalAt(o.Position)
	case KindLine:
		return c.Line.Normal
	case KindArc:
		return c.Arc.NormalAt(o.Position)
	}
	return fixnum.Vec2{}
}

// Overshoot is the displacement that resolves o out of the collider.
func (c *Collider) Overshoot(o Circle) fixnum.Vec2 {
	switch c.Kind {
	case KindCircle:
		return c.Circle.OvershootCircle(o)
	case KindLine:
		return c.Line.OvershootCircle(o)
	case KindArc:
		return c.Arc.OvershootCircle(o)
	}
	return fixnum.Vec2{}
}

func (c *Collider) ClosestPoint(p fixnum.Vec2) fixnum.Vec2 {
	switch c.Kind {
	case KindCircle:
		return c.Circle.ClosestPoint(p)
	case KindLine:
		return c.Line.ClosestPoint(p)
	case KindArc:
		return c.Arc.ClosestPoint(p)
	}
	return p
}

// Translate returns a copy moved by offset.
func (c Collider) Translate(offset fixnum.Vec2) Collider {
	switch c.Kind {
	case KindCircle:
		c.Circle.Position = c.Circle.Position.Add(offset)
	case KindLine:
		c.Line.Start = c.Line.Start.Add(offset)
		c.Line.End = c.Line.End.Add(offset)
	case KindArc:
		c.Arc.Circle.Position = c.Arc.Circle.Position.Add(offset)
	}
	return c
}

// Bounds returns the axis-aligned box enclosing the shape. Arcs report the
// box of their whole circle.
func (c *Collider) Bounds() (lo, hi fixnum.Vec2) {
	switch c.Kind {
	case KindCircle:
		r := fixnum.Vec2{X: c.Circle.Radius, Y: c.Circle.Radius}
		return c.Circle.Position.Sub(r), c.Circle.Position.Add(r)
	case KindArc:
		r := fixnum.Vec2{X: c.Arc.Circle.Radius, Y: c.Arc.Circle.Radius}
		return c.Arc.Circle.Position.Sub(r), c.Arc.Circle.Position.Add(r)
	}
	lo = fixnum.Vec2{X: fixnum.Min(c.Line.Start.X, c.Line.End.X), Y: fixnum.Min(c.Line.Start.Y, c.Line.End.Y)}
	hi = fixnum.Vec2{X: fixnum.Max(c.Line.Start.X, c.Line.End.X), Y: fixnum.Max(c.Line.Start.Y, c.Line.End.Y)}
	return lo, hi
}
