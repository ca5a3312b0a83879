// Package leveldata holds the authored level model read from TMX files. It
// has no dependencies on ebitengine, donburi or resolv; pure data only, so
// the compiler and its tests can build levels directly in Go.
package leveldata

import "errors"

// Layer names in the authored TMX file.
const (
	LayerColliders          = "Colliders"
	LayerCollidersNoGravity = "Colliders No Gravity"
	LayerKillision          = "Killision"
	LayerPaths              = "Paths"
	LayerMovingColliders    = "Moving colliders"
	LayerStart              = "Start"
	LayerScrollStops        = "Scroll stops"
	LayerItems              = "Items"
	LayerMissionLogs        = "Mission logs"
)

// Marker names in the Start layer.
const (
	MarkerPlayer = "PLAYER"
	MarkerCamera = "CAMERA"
)

var (
	ErrMissingLayer     = errors.New("missing layer")
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrMissingProperty  = errors.New("missing property")
	ErrMissingMarker    = errors.New("missing marker")
)

// ShapeKind is the authored geometry type of an object.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
	ShapePolygon
	ShapePolyline
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	}
	return "unknown"
}

// Point is a world position in authored (floating point) units.
type Point struct {
	X, Y float64
}

// Shape is one authored collision object. Points are absolute world
// coordinates for polygons and polylines; rectangles and ellipses use the
// X/Y/W/H box.
type Shape struct {
	Name   string
	Kind   ShapeKind
	X, Y   float64
	W, H   float64
	Points []Point

	// CornerRadius overrides the default fillet radius when non-zero.
	CornerRadius float64
}

// Path is an authored route for a group of moving colliders.
type Path struct {
	Name   string
	Group  string
	Points []Point
	Closed bool
	Speed  float64
}

// MovingShape is a collider that rides along the path with the same group.
type MovingShape struct {
	Group         string
	Shape         Shape
	Gravitational bool
	Lethal        bool
}

// Item is a named power-up placement.
type Item struct {
	Name string
	At   Point
}

// MissionLog is a text trigger placed in the level.
type MissionLog struct {
	Text string
	At   Point
}

// Level is everything the compiler consumes from an authored map.
type Level struct {
	Name string

	Colliders          []Shape
	CollidersNoGravity []Shape
	Killision          []Shape
	RecoveryPoints     []Point

	Paths           []Path
	MovingColliders []MovingShape

	PlayerStart Point
	CameraStart Point

	// ScrollStops are open polylines; each must be axis aligned.
	ScrollStops [][]Point
	Items       []Item
	MissionLogs []MissionLog
}
