package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object property names.
const (
	propSpeed        = "speed"
	propGroup        = "group"
	propGravity      = "gravity"
	propLethal       = "lethal"
	propCornerRadius = "corner_radius"
	propText         = "text"
)

// LoadLevel parses a TMX file into a Level. It takes an fs.FS so callers can
// pass embed.FS (viewer) or os.DirFS (compiler CLI).
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	level, err := FromMap(levelMap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tmxPath, err)
	}
	level.Name = strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")
	return level, nil
}

// FromMap extracts the authored layers from an already parsed map.
func FromMap(levelMap *tiled.Map) (*Level, error) {
	groups := make(map[string]*tiled.ObjectGroup, len(levelMap.ObjectGroups))
	for _, og := range levelMap.ObjectGroups {
		groups[og.Name] = og
	}
	layer := func(name string, required bool) (*tiled.ObjectGroup, error) {
		og, ok := groups[name]
		if !ok && required {
			return nil, fmt.Errorf("%w: %q", ErrMissingLayer, name)
		}
		return og, nil
	}

	level := &Level{}

	for _, group := range []struct {
		name string
		dst  *[]Shape
	}{
		{LayerColliders, &level.Colliders},
		{LayerCollidersNoGravity, &level.CollidersNoGravity},
	} {
		og, err := layer(group.name, true)
		if err != nil {
			return nil, err
		}
		for _, o := range og.Objects {
			shape, err := shapeOf(o)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", group.name, err)
			}
			*group.dst = append(*group.dst, shape)
		}
	}

	og, err := layer(LayerKillision, true)
	if err != nil {
		return nil, err
	}
	for _, o := range og.Objects {
		if isPoint(o) {
			level.RecoveryPoints = append(level.RecoveryPoints, Point{X: o.X, Y: o.Y})
			continue
		}
		shape, err := shapeOf(o)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", LayerKillision, err)
		}
		level.Killision = append(level.Killision, shape)
	}

	if og, err = layer(LayerStart, true); err != nil {
		return nil, err
	}
	if level.PlayerStart, err = marker(og, MarkerPlayer); err != nil {
		return nil, err
	}
	if level.CameraStart, err = marker(og, MarkerCamera); err != nil {
		return nil, err
	}

	if og, _ = layer(LayerPaths, false); og != nil {
		for _, o := range og.Objects {
			path, err := pathOf(o)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", LayerPaths, err)
			}
			level.Paths = append(level.Paths, path)
		}
	}

	og, err = layer(LayerMovingColliders, len(level.Paths) > 0)
	if err != nil {
		return nil, err
	}
	if og != nil {
		for _, o := range og.Objects {
			if !hasProperty(o.Properties, propGroup) {
				return nil, fmt.Errorf("layer %q object %q: %w: %s", LayerMovingColliders, o.Name, ErrMissingProperty, propGroup)
			}
			shape, err := shapeOf(o)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", LayerMovingColliders, err)
			}
			level.MovingColliders = append(level.MovingColliders, MovingShape{
				Group:         o.Properties.GetString(propGroup),
				Shape:         shape,
				Gravitational: boolProperty(o.Properties, propGravity, true),
				Lethal:        boolProperty(o.Properties, propLethal, false),
			})
		}
	}

	if og, _ = layer(LayerScrollStops, false); og != nil {
		for _, o := range og.Objects {
			if len(o.PolyLines) == 0 {
				return nil, fmt.Errorf("layer %q object %q: %w: scroll stops must be polylines", LayerScrollStops, o.Name, ErrUnsupportedShape)
			}
			level.ScrollStops = append(level.ScrollStops, absolutePoints(o, o.PolyLines[0].Points))
		}
	}

	if og, _ = layer(LayerItems, false); og != nil {
		for _, o := range og.Objects {
			level.Items = append(level.Items, Item{Name: o.Name, At: Point{X: o.X, Y: o.Y}})
		}
	}

	if og, _ = layer(LayerMissionLogs, false); og != nil {
		for _, o := range og.Objects {
			if !hasProperty(o.Properties, propText) {
				return nil, fmt.Errorf("layer %q object %q: %w: %s", LayerMissionLogs, o.Name, ErrMissingProperty, propText)
			}
			level.MissionLogs = append(level.MissionLogs, MissionLog{
				Text: o.Properties.GetString(propText),
				At:   Point{X: o.X, Y: o.Y},
			})
		}
	}

	return level, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each
// one, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func isPoint(o *tiled.Object) bool {
	return o.Width == 0 && o.Height == 0 &&
		len(o.Ellipses) == 0 && len(o.Polygons) == 0 && len(o.PolyLines) == 0
}

func shapeOf(o *tiled.Object) (Shape, error) {
	shape := Shape{
		Name:         o.Name,
		X:            o.X,
		Y:            o.Y,
		W:            o.Width,
		H:            o.Height,
		CornerRadius: o.Properties.GetFloat(propCornerRadius),
	}
	switch {
	case o.Rotation != 0:
		return shape, fmt.Errorf("object %q: %w: rotated objects", o.Name, ErrUnsupportedShape)
	case len(o.Ellipses) > 0:
		shape.Kind = ShapeEllipse
	case len(o.Polygons) > 0:
		shape.Kind = ShapePolygon
		shape.Points = absolutePoints(o, o.Polygons[0].Points)
	case len(o.PolyLines) > 0:
		shape.Kind = ShapePolyline
		shape.Points = absolutePoints(o, o.PolyLines[0].Points)
	case o.Width == 0 || o.Height == 0:
		return shape, fmt.Errorf("object %q: %w: point markers are not colliders", o.Name, ErrUnsupportedShape)
	default:
		shape.Kind = ShapeRect
	}
	return shape, nil
}

func pathOf(o *tiled.Object) (Path, error) {
	path := Path{Name: o.Name, Group: o.Name}
	if !hasProperty(o.Properties, propSpeed) {
		return path, fmt.Errorf("path %q: %w: %s", o.Name, ErrMissingProperty, propSpeed)
	}
	path.Speed = o.Properties.GetFloat(propSpeed)
	if hasProperty(o.Properties, propGroup) {
		path.Group = o.Properties.GetString(propGroup)
	}
	switch {
	case len(o.Polygons) > 0:
		path.Closed = true
		path.Points = absolutePoints(o, o.Polygons[0].Points)
	case len(o.PolyLines) > 0:
		path.Points = absolutePoints(o, o.PolyLines[0].Points)
	default:
		return path, fmt.Errorf("path %q: %w: paths must be polylines or polygons", o.Name, ErrUnsupportedShape)
	}
	return path, nil
}

func marker(og *tiled.ObjectGroup, name string) (Point, error) {
	for _, o := range og.Objects {
		if o.Name == name {
			return Point{X: o.X, Y: o.Y}, nil
		}
	}
	return Point{}, fmt.Errorf("%w: %s in layer %q", ErrMissingMarker, name, og.Name)
}

func absolutePoints(o *tiled.Object, pts *tiled.Points) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(*pts))
	for i, p := range *pts {
		out[i] = Point{X: o.X + p.X, Y: o.Y + p.Y}
	}
	return out
}

func hasProperty(props tiled.Properties, name string) bool {
	for _, p := range props {
		if p.Name == name {
			return true
		}
	}
	return false
}

func boolProperty(props tiled.Properties, name string, def bool) bool {
	if !hasProperty(props, name) {
		return def
	}
	return props.GetBool(name)
}
