// Package mapcompiler lowers an authored level into the baked spatial index
// the runtime reads: a flat collider array plus a bounded, deterministically
// ordered candidate list for every reachable grid cell.
package mapcompiler

import (
	"errors"
	"fmt"

	"github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/leveldata"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

var (
	ErrNotCircle                = errors.New("ellipse is not a circle")
	ErrNoGravitySource          = errors.New("level has no gravitational collider")
	ErrUnknownPowerUp           = errors.New("unknown power-up")
	ErrScrollStopNotAxisAligned = errors.New("scroll stop segment is not axis aligned")
	ErrEmptyGroup               = errors.New("path has no moving colliders")
	ErrUnknownGroup             = errors.New("moving collider has no path")
	ErrNoRecoveryPoint          = fmt.Errorf("%w: lethal colliders need a recovery point", leveldata.ErrMissingMarker)
)

// Options are the grid and lowering knobs.
type Options struct {
	BoxSize       int
	PathBoxSize   int
	RingRadius    int
	CornerRadius  float64
	MaxLineLength float64
	PlayerPadding int
	ScrollBox     int
	ScrollBand    int
	ScreenWidth   int
	ScreenHeight  int
}

// DefaultOptions returns the options the runtime is tuned for.
func DefaultOptions() Options {
	return Options{
		BoxSize:       config.Compiler.BoxSize,
		PathBoxSize:   config.Compiler.PathBoxSize,
		RingRadius:    config.Compiler.RingRadius,
		CornerRadius:  config.Compiler.CornerRadius,
		MaxLineLength: config.Compiler.MaxLineLength,
		PlayerPadding: int(config.Compiler.PlayerPadding),
		ScrollBox:     config.Compiler.ScrollBox,
		ScrollBand:    config.Compiler.ScrollBand,
		ScreenWidth:   config.C.Width,
		ScreenHeight:  config.C.Height,
	}
}

func (o Options) validate() error {
	if o.BoxSize <= 0 || o.PathBoxSize <= 0 || o.ScrollBox <= 0 {
		return fmt.Errorf("box sizes must be positive: box=%d pathbox=%d scroll=%d", o.BoxSize, o.PathBoxSize, o.ScrollBox)
	}
	if o.RingRadius < 0 || o.PlayerPadding < 0 || o.ScrollBand < 0 {
		return fmt.Errorf("ring, padding and scroll band must not be negative")
	}
	return nil
}

// Report summarises a compilation so authors can tune the box size.
type Report struct {
	Colliders         int
	Cells             int
	MaxCandidates     int
	MaxCandidatesCell mapdata.Cell
	Paths             int
	RecoveryPoints    int
	ScrollStops       int
	ForcedGravity     int
}

func (r Report) String() string {
	return fmt.Sprintf("%d colliders, %d cells, max %d candidates at (%d,%d), %d paths, %d recovery points, %d scroll stops, %d forced gravity sources",
		r.Colliders, r.Cells, r.MaxCandidates, r.MaxCandidatesCell.X, r.MaxCandidatesCell.Y,
		r.Paths, r.RecoveryPoints, r.ScrollStops, r.ForcedGravity)
}

// Compile lowers level into a baked map.
func Compile(level *leveldata.Level, opts Options) (*mapdata.Map, Report, error) {
	var report Report
	if err := opts.validate(); err != nil {
		return nil, report, err
	}
	lw := lowerer{cornerRadius: opts.CornerRadius, maxLineLength: opts.MaxLineLength}

	var colliders []geom.Collider
	for _, layer := range []struct {
		name   string
		shapes []leveldata.Shape
		tag    geom.Tag
	}{
		{leveldata.LayerColliders, level.Colliders, geom.CollisionGravitational},
		{leveldata.LayerCollidersNoGravity, level.CollidersNoGravity, geom.CollisionOnly},
		{leveldata.LayerKillision, level.Killision, geom.Killision},
	} {
		for _, s := range layer.shapes {
			lowered, err := lw.shape(s, layer.tag)
			if err != nil {
				return nil, report, fmt.Errorf("layer %q: %w", layer.name, err)
			}
			colliders = append(colliders, lowered...)
		}
	}

	hasGravity := false
	for i := range colliders {
		if colliders[i].Tag.IsGravitational() {
			hasGravity = true
			break
		}
	}
	if !hasGravity {
		return nil, report, ErrNoGravitySource
	}

	paths, err := compilePaths(level, lw)
	if err != nil {
		return nil, report, err
	}
	if len(level.RecoveryPoints) == 0 && hasLethal(colliders, paths) {
		return nil, report, ErrNoRecoveryPoint
	}

	stops, err := scrollStops(level.ScrollStops, opts)
	if err != nil {
		return nil, report, err
	}

	powerUps := make([]mapdata.PowerUp, 0, len(level.Items))
	for _, item := range level.Items {
		kind, err := powerUpKind(item.Name)
		if err != nil {
			return nil, report, err
		}
		powerUps = append(powerUps, mapdata.PowerUp{Kind: kind, At: fixed(item.At)})
	}

	logs := make([]mapdata.MissionLog, 0, len(level.MissionLogs))
	for _, l := range level.MissionLogs {
		logs = append(logs, mapdata.MissionLog{Text: l.Text, At: fixed(l.At)})
	}

	recovery := make([]fixnum.Vec2, 0, len(level.RecoveryPoints))
	for _, p := range level.RecoveryPoints {
		recovery = append(recovery, fixed(p))
	}

	start := fixed(level.PlayerStart)
	asm := newAssembler(colliders, opts.BoxSize, opts.PlayerPadding)
	cells := asm.discover(opts.RingRadius, mapdata.CellAt(start, opts.BoxSize))
	entries := make([]mapdata.CellEntry, 0, len(cells))
	for _, cell := range cells {
		list := asm.candidates(cell)
		if len(list) > report.MaxCandidates {
			report.MaxCandidates = len(list)
			report.MaxCandidatesCell = cell
		}
		entries = append(entries, mapdata.CellEntry{Cell: cell, Colliders: list})
	}

	report.Colliders = len(colliders)
	report.Cells = len(entries)
	report.Paths = len(paths)
	report.RecoveryPoints = len(recovery)
	report.ScrollStops = len(stops)
	report.ForcedGravity = asm.forced

	return &mapdata.Map{
		Version:        mapdata.Version,
		Name:           level.Name,
		BoxSize:        opts.BoxSize,
		PathBoxSize:    opts.PathBoxSize,
		Colliders:      colliders,
		Cells:          entries,
		RecoveryPoints: recovery,
		ScrollStopBox:  opts.ScrollBox,
		ScrollStops:    stops,
		Paths:          paths,
		Start:          start,
		CameraStart:    fixed(level.CameraStart),
		PowerUps:       powerUps,
		MissionLogs:    logs,
	}, report, nil
}

func powerUpKind(name string) (mapdata.PowerUpKind, error) {
	for _, k := range []mapdata.PowerUpKind{mapdata.PowerUpJumpBoost, mapdata.PowerUpDash, mapdata.PowerUpDoubleJump} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPowerUp, name)
}

func hasLethal(colliders []geom.Collider, paths []mapdata.Path) bool {
	for i := range colliders {
		if colliders[i].Tag.IsLethal() {
			return true
		}
	}
	for _, p := range paths {
		for i := range p.Colliders {
			if p.Colliders[i].Tag.IsLethal() {
				return true
			}
		}
	}
	return false
}

func fixed(p leveldata.Point) fixnum.Vec2 {
	return fixnum.VF(p.X, p.Y)
}
