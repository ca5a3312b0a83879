package terrain

import (
	"fmt"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/solarlune/resolv"
)

const (
	tagPath  = "path"
	tagProbe = "probe"

	timerOne = 1 << 16
)

type direction int8

const (
	forward  direction = 1
	backward direction = -1
)

// movingPath is one loaded path. Its state is dropped on unload, so a
// reloaded path starts again from its first point.
type movingPath struct {
	path      *mapdata.Path
	segment   int
	dir       direction
	timer     int32
	position  fixnum.Vec2
	velocity  fixnum.Vec2
	colliders []geom.Collider

	// extent of the colliders relative to position
	lo, hi fixnum.Vec2
}

func newMovingPath(p *mapdata.Path) *movingPath {
	mp := &movingPath{
		path:      p,
		dir:       forward,
		position:  p.Points[0].Pos,
		colliders: make([]geom.Collider, len(p.Colliders)),
	}
	mp.lo, mp.hi = p.Colliders[0].Bounds()
	for i := range p.Colliders {
		l, h := p.Colliders[i].Bounds()
		mp.lo = fixnum.Vec2{X: fixnum.Min(mp.lo.X, l.X), Y: fixnum.Min(mp.lo.Y, l.Y)}
		mp.hi = fixnum.Vec2{X: fixnum.Max(mp.hi.X, h.X), Y: fixnum.Max(mp.hi.Y, h.Y)}
	}
	mp.place()
	return mp
}

// from and to are the endpoints of the segment being travelled, and inc its
// timer increment.
func (mp *movingPath) segmentEnds() (from, to int, inc int32) {
	n := len(mp.path.Points)
	from = mp.segment
	if mp.dir == forward {
		to = (from + 1) % n
		return from, to, mp.path.Points[from].Increment
	}
	to = from - 1
	return from, to, mp.path.Points[to].Increment
}

func (mp *movingPath) step() {
	previous := mp.position
	from, to, inc := mp.segmentEnds()

	mp.timer += inc
	if mp.timer >= timerOne {
		mp.timer = 0
		mp.segment = to
		last := len(mp.path.Points) - 1
		switch {
		case mp.path.Closed:
		case mp.dir == forward && mp.segment == last:
			mp.dir = backward
		case mp.dir == backward && mp.segment == 0:
			mp.dir = forward
		}
		mp.position = mp.path.Points[to].Pos
	} else {
		a, b := mp.path.Points[from].Pos, mp.path.Points[to].Pos
		mp.position = fixnum.Vec2{X: lerp(a.X, b.X, mp.timer), Y: lerp(a.Y, b.Y, mp.timer)}
	}

	mp.velocity = mp.position.Sub(previous)
	mp.place()
}

func (mp *movingPath) place() {
	for i := range mp.path.Colliders {
		mp.colliders[i] = mp.path.Colliders[i].Translate(mp.position)
		mp.colliders[i].Velocity = mp.velocity
	}
}

// lerp interpolates with a 16.16 fraction t.
func lerp(a, b fixnum.Num, t int32) fixnum.Num {
	return a + fixnum.FromRaw(int32((int64(b-a)*int64(t))>>16))
}

// dynamicPaths owns the loaded moving colliders. Path footprints live in a
// resolv space with cells of the path box size; a probe of the same size
// around the player decides which paths are loaded.
type dynamicPaths struct {
	m      *mapdata.Map
	space  *resolv.Space
	origin fixnum.Vec2
	box    float64
	probe  *resolv.Object

	active []*movingPath
	wanted []bool
	buf    []*geom.Collider
}

func newDynamicPaths(m *mapdata.Map) (*dynamicPaths, error) {
	if len(m.Paths) == 0 {
		return nil, nil
	}
	if m.PathBoxSize <= 0 {
		return nil, fmt.Errorf("invalid path box size %d", m.PathBoxSize)
	}
	for i := range m.Paths {
		p := &m.Paths[i]
		if len(p.Points) < 2 || len(p.Colliders) == 0 {
			return nil, fmt.Errorf("path %q is empty", p.Name)
		}
	}

	box := fixnum.New(m.PathBoxSize)
	lo, hi := m.Paths[0].Min, m.Paths[0].Max
	for _, p := range m.Paths[1:] {
		lo = fixnum.Vec2{X: fixnum.Min(lo.X, p.Min.X), Y: fixnum.Min(lo.Y, p.Min.Y)}
		hi = fixnum.Vec2{X: fixnum.Max(hi.X, p.Max.X), Y: fixnum.Max(hi.Y, p.Max.Y)}
	}
	origin := lo.Sub(fixnum.Vec2{X: box, Y: box})
	size := hi.Sub(origin).Add(fixnum.Vec2{X: box, Y: box})

	d := &dynamicPaths{
		m:      m,
		space:  resolv.NewSpace(size.X.Floor()+1, size.Y.Floor()+1, m.PathBoxSize, m.PathBoxSize),
		origin: origin,
		box:    float64(m.PathBoxSize),
		active: make([]*movingPath, len(m.Paths)),
		wanted: make([]bool, len(m.Paths)),
	}
	for i := range m.Paths {
		p := &m.Paths[i]
		at := p.Min.Sub(origin)
		ext := p.Max.Sub(p.Min)
		obj := resolv.NewObject(at.X.Float(), at.Y.Float(), ext.X.Float(), ext.Y.Float(), tagPath)
		obj.Data = i
		d.space.Add(obj)
	}
	d.probe = resolv.NewObject(0, 0, d.box, d.box, tagProbe)
	d.space.Add(d.probe)
	return d, nil
}

func (d *dynamicPaths) advance(playerPos fixnum.Vec2) {
	at := playerPos.Sub(d.origin)
	d.probe.X = at.X.Float() - d.box/2
	d.probe.Y = at.Y.Float() - d.box/2
	d.probe.Update()

	for i := range d.wanted {
		d.wanted[i] = false
	}
	if collision := d.probe.Check(0, 0, tagPath); collision != nil {
		for _, obj := range collision.Objects {
			if i, ok := obj.Data.(int); ok {
				d.wanted[i] = true
			}
		}
	}

	for i, want := range d.wanted {
		switch {
		case want && d.active[i] == nil:
			d.active[i] = newMovingPath(&d.m.Paths[i])
		case !want && d.active[i] != nil:
			d.active[i] = nil
		}
	}
	for _, mp := range d.active {
		if mp != nil {
			mp.step()
		}
	}
}

func (d *dynamicPaths) nearby(pos fixnum.Vec2, reach fixnum.Num) []*geom.Collider {
	d.buf = d.buf[:0]
	for _, mp := range d.active {
		if mp == nil {
			continue
		}
		lo, hi := mp.position.Add(mp.lo), mp.position.Add(mp.hi)
		if pos.X < lo.X-reach || pos.X > hi.X+reach || pos.Y < lo.Y-reach || pos.Y > hi.Y+reach {
			continue
		}
		for i := range mp.colliders {
			d.buf = append(d.buf, &mp.colliders[i])
		}
	}
	return d.buf
}

func (d *dynamicPaths) appendLoaded(dst []*geom.Collider) []*geom.Collider {
	for _, mp := range d.active {
		if mp == nil {
			continue
		}
		for i := range mp.colliders {
			dst = append(dst, &mp.colliders[i])
		}
	}
	return dst
}

func (d *dynamicPaths) loaded() int {
	n := 0
	for _, mp := range d.active {
		if mp != nil {
			n++
		}
	}
	return n
}
