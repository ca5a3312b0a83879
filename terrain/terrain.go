// Package terrain answers the per-tick spatial queries against a compiled
// map: which colliders are near a position, where to recover after a death,
// which scroll stop applies, and which moving colliders are loaded.
package terrain

import (
	"fmt"
	"log"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

// Terrain is the runtime view of a compiled map. Static data is never
// mutated after New; only the loaded moving paths change, and only in
// Advance.
type Terrain struct {
	m       *mapdata.Map
	boxSize int
	cells   map[mapdata.Cell][]*geom.Collider
	scroll  map[mapdata.Cell]mapdata.ScrollStop

	paths *dynamicPaths
}

// New indexes m for lookups. It fails on maps whose cell lists point outside
// the collider array.
func New(m *mapdata.Map) (*Terrain, error) {
	if m.BoxSize <= 0 {
		return nil, fmt.Errorf("map %s: invalid box size %d", m.Name, m.BoxSize)
	}
	t := &Terrain{
		m:       m,
		boxSize: m.BoxSize,
		cells:   make(map[mapdata.Cell][]*geom.Collider, len(m.Cells)),
		scroll:  make(map[mapdata.Cell]mapdata.ScrollStop, len(m.ScrollStops)),
	}
	for _, entry := range m.Cells {
		list := make([]*geom.Collider, len(entry.Colliders))
		for i, idx := range entry.Colliders {
			if int(idx) >= len(m.Colliders) {
				return nil, fmt.Errorf("map %s: cell %v references collider %d of %d", m.Name, entry.Cell, idx, len(m.Colliders))
			}
			list[i] = &m.Colliders[idx]
		}
		t.cells[entry.Cell] = list
	}
	for _, s := range m.ScrollStops {
		t.scroll[s.Cell] = s.Stop
	}

	paths, err := newDynamicPaths(m)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.Name, err)
	}
	t.paths = paths

	log.Printf("Loaded terrain %s: %d colliders, %d cells, %d paths, %d recovery points",
		m.Name, len(m.Colliders), len(m.Cells), len(m.Paths), len(m.RecoveryPoints))
	return t, nil
}

// Map returns the compiled map backing t.
func (t *Terrain) Map() *mapdata.Map {
	return t.m
}

// Nearby returns the candidate colliders for pos. Positions outside the
// compiled area yield nil.
func (t *Terrain) Nearby(pos fixnum.Vec2) []*geom.Collider {
	return t.cells[mapdata.CellAt(pos, t.boxSize)]
}

// RecoveryPointNear returns the recovery point closest to pos. The boolean
// is false when the map has none.
func (t *Terrain) RecoveryPointNear(pos fixnum.Vec2) (fixnum.Vec2, bool) {
	points := t.m.RecoveryPoints
	if len(points) == 0 {
		return pos, false
	}
	best := points[0]
	bestDist := fixnum.DistSq64(best, pos)
	for _, p := range points[1:] {
		if d := fixnum.DistSq64(p, pos); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

// ScrollStopAt returns the camera limits of the scroll box containing pos.
func (t *Terrain) ScrollStopAt(pos fixnum.Vec2) (mapdata.ScrollStop, bool) {
	if t.m.ScrollStopBox <= 0 {
		return mapdata.ScrollStop{}, false
	}
	s, ok := t.scroll[mapdata.CellAt(pos, t.m.ScrollStopBox)]
	return s, ok
}

// NearbyDynamic returns the loaded moving colliders close enough to pos to
// matter this tick. The slice is reused by the next call.
func (t *Terrain) NearbyDynamic(pos fixnum.Vec2) []*geom.Collider {
	if t.paths == nil {
		return nil
	}
	return t.paths.nearby(pos, fixnum.New(t.boxSize))
}

// Advance loads and unloads moving paths around playerPos and moves every
// loaded one a tick forward. It must run before the player is integrated.
func (t *Terrain) Advance(playerPos fixnum.Vec2) {
	if t.paths == nil {
		return
	}
	t.paths.advance(playerPos)
}

// LoadedPaths reports how many moving paths are currently instantiated.
func (t *Terrain) LoadedPaths() int {
	if t.paths == nil {
		return 0
	}
	return t.paths.loaded()
}

// AppendLoaded appends every instantiated moving collider to dst.
func (t *Terrain) AppendLoaded(dst []*geom.Collider) []*geom.Collider {
	if t.paths == nil {
		return dst
	}
	return t.paths.appendLoaded(dst)
}
