package mapcompiler

import (
	"fmt"
	"math"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/leveldata"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

// timerOne is 1.0 for the 16.16 path timer.
const timerOne = 1 << 16

// compilePaths attaches every moving collider group to its path and
// precomputes the per-segment timer increments.
func compilePaths(level *leveldata.Level, lw lowerer) ([]mapdata.Path, error) {
	known := make(map[string]bool, len(level.Paths))
	for _, p := range level.Paths {
		known[p.Group] = true
	}
	for _, m := range level.MovingColliders {
		if !known[m.Group] {
			return nil, fmt.Errorf("%w: moving collider group %q", ErrUnknownGroup, m.Group)
		}
	}

	out := make([]mapdata.Path, 0, len(level.Paths))
	for _, p := range level.Paths {
		if len(p.Points) < 2 {
			return nil, fmt.Errorf("path %q: %w: needs at least 2 points", p.Name, leveldata.ErrUnsupportedShape)
		}
		if p.Speed <= 0 {
			return nil, fmt.Errorf("path %q: %w: speed must be positive", p.Name, leveldata.ErrMissingProperty)
		}

		origin := fixnum.VF(p.Points[0].X, p.Points[0].Y)
		var colliders []geom.Collider
		for _, m := range level.MovingColliders {
			if m.Group != p.Group {
				continue
			}
			lowered, err := lw.shape(m.Shape, movingTag(m))
			if err != nil {
				return nil, fmt.Errorf("path %q: %w", p.Name, err)
			}
			for _, c := range lowered {
				colliders = append(colliders, c.Translate(origin.Neg()))
			}
		}
		if len(colliders) == 0 {
			return nil, fmt.Errorf("path %q: %w: group %q", p.Name, ErrEmptyGroup, p.Group)
		}

		compiled := mapdata.Path{
			Name:      p.Name,
			Closed:    p.Closed,
			Colliders: colliders,
			Points:    make([]mapdata.PathPoint, len(p.Points)),
		}
		for i, pt := range p.Points {
			next := i + 1
			if next == len(p.Points) {
				next = 0
			}
			compiled.Points[i] = mapdata.PathPoint{
				Pos:       fixnum.VF(pt.X, pt.Y),
				Increment: increment(p.Speed, fromPoint(pt), fromPoint(p.Points[next])),
			}
		}
		compiled.Min, compiled.Max = pathBounds(compiled)
		out = append(out, compiled)
	}
	return out, nil
}

func movingTag(m leveldata.MovingShape) geom.Tag {
	switch {
	case m.Lethal:
		return geom.Killision
	case m.Gravitational:
		return geom.CollisionGravitational
	}
	return geom.CollisionOnly
}

// increment is the 16.16 timer step that covers the segment at speed units
// per tick.
func increment(speed float64, from, to vec) int32 {
	length := to.sub(from).length()
	if length == 0 {
		return timerOne
	}
	inc := math.Round(speed / length * timerOne)
	return int32(math.Max(1, math.Min(inc, timerOne)))
}

// pathBounds encloses every collider at every path vertex. Segments are
// straight, so the vertex boxes cover the whole sweep.
func pathBounds(p mapdata.Path) (fixnum.Vec2, fixnum.Vec2) {
	lo, hi := p.Colliders[0].Bounds()
	for i := range p.Colliders[1:] {
		l, h := p.Colliders[i+1].Bounds()
		lo = fixnum.Vec2{X: fixnum.Min(lo.X, l.X), Y: fixnum.Min(lo.Y, l.Y)}
		hi = fixnum.Vec2{X: fixnum.Max(hi.X, h.X), Y: fixnum.Max(hi.Y, h.Y)}
	}
	least, most := p.Points[0].Pos.Add(lo), p.Points[0].Pos.Add(hi)
	for _, pt := range p.Points[1:] {
		l, h := pt.Pos.Add(lo), pt.Pos.Add(hi)
		least = fixnum.Vec2{X: fixnum.Min(least.X, l.X), Y: fixnum.Min(least.Y, l.Y)}
		most = fixnum.Vec2{X: fixnum.Max(most.X, h.X), Y: fixnum.Max(most.Y, h.Y)}
	}
	return least, most
}
