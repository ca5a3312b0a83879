// Package mapdata is the compiled, immutable form of a level: a flat
// collider array, the per-cell candidate lists that index into it, and the
// small tables the runtime needs alongside (recovery points, scroll stops,
// moving paths, power-ups).
package mapdata

import (
	"fmt"

	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
)

// Version is bumped whenever the encoded layout changes.
const Version = 1

// Cell is a grid coordinate.
type Cell struct {
	X, Y int32
}

// CellAt floor-divides a world position by size.
func CellAt(p fixnum.Vec2, size int) Cell {
	x, y := p.Floor()
	return Cell{X: int32(floorDiv(x, size)), Y: int32(floorDiv(y, size))}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CellEntry is the candidate list of one grid cell. Colliders are indices
// into Map.Colliders, circles and arcs first.
type CellEntry struct {
	Cell      Cell
	Colliders []uint32
}

// Limit is an optional camera bound.
type Limit struct {
	Set   bool
	Value fixnum.Num
}

func (l Limit) String() string {
	if !l.Set {
		return "-"
	}
	return l.Value.String()
}

// ScrollStop clamps the camera while it is inside a scroll box.
type ScrollStop struct {
	MinX, MinY Limit
	MaxX, MaxY Limit
}

// ScrollStopEntry ties a scroll stop to its scroll box.
type ScrollStopEntry struct {
	Cell Cell
	Stop ScrollStop
}

// PathPoint is one vertex of a path plus the timer increment used while
// travelling the segment that starts at it. Increment is 16.16 fixed point
// per tick.
type PathPoint struct {
	Pos       fixnum.Vec2
	Increment int32
}

// Path drives a group of colliders. Colliders are stored relative to the
// first point. Min and Max bound every position the group can reach.
type Path struct {
	Name      string
	Points    []PathPoint
	Closed    bool
	Colliders []geom.Collider
	Min, Max  fixnum.Vec2
}

// PowerUpKind enumerates the collectable abilities.
type PowerUpKind uint8

const (
	PowerUpJumpBoost PowerUpKind = iota
	PowerUpDash
	PowerUpDoubleJump
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpJumpBoost:
		return "Jump Boost"
	case PowerUpDash:
		return "Dash"
	case PowerUpDoubleJump:
		return "Double Jump"
	}
	return fmt.Sprintf("PowerUpKind(%d)", uint8(k))
}

type PowerUp struct {
	Kind PowerUpKind
	At   fixnum.Vec2
}

type MissionLog struct {
	Text string
	At   fixnum.Vec2
}

// Map is the compiled level.
type Map struct {
	Version     int
	Name        string
	BoxSize     int
	PathBoxSize int

	Colliders []geom.Collider
	Cells     []CellEntry

	RecoveryPoints []fixnum.Vec2

	ScrollStopBox int
	ScrollStops   []ScrollStopEntry

	Paths []Path

	Start       fixnum.Vec2
	CameraStart fixnum.Vec2

	PowerUps    []PowerUp
	MissionLogs []MissionLog
}
