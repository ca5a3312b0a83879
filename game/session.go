// Package game runs one level headlessly: it owns the donburi world, feeds
// it a tick of input at a time and reports what a renderer needs to draw.
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/automoto/built-to-scale/systems"
	"github.com/automoto/built-to-scale/systems/factory"
	"github.com/automoto/built-to-scale/terrain"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrNoGravityAtStart is returned for maps whose start cell holds no
// gravitational collider. The first tick on such a map could not pick a
// gravity source.
var ErrNoGravityAtStart = errors.New("no gravitational collider near the start")

// Input is the held state of the controls for one tick.
type Input struct {
	Left, Right bool
	Jump        bool
	Dash        bool
}

func (in Input) actions() [cfg.ActionCount]bool {
	var a [cfg.ActionCount]bool
	a[cfg.ActionMoveLeft] = in.Left
	a[cfg.ActionMoveRight] = in.Right
	a[cfg.ActionJump] = in.Jump
	a[cfg.ActionDash] = in.Dash
	return a
}

// Frame is the observable outcome of one tick.
type Frame struct {
	Tick int
	systems.Pose

	Position   fixnum.Vec2
	Speed      fixnum.Vec2
	Up         fixnum.Vec2
	OnGround   bool
	Recovering bool

	Camera       fixnum.Vec2
	ViewX, ViewY int // top-left of the screen in world space

	PopTime     int
	PopFrame    int
	PopLocation fixnum.Vec2

	Sounds      []cfg.SoundID
	MissionLogs []string
	PowerUps    []mapdata.PowerUpKind

	LoadedPaths     int
	NearbyColliders int
}

// Session is a running level.
type Session struct {
	m       *mapdata.Map
	terrain *terrain.Terrain
	world   donburi.World
	ecs     *ecs.ECS
	player  *donburi.Entry
	level   *donburi.Entry
}

// NewSession builds a world for m with the player at the map start.
func NewSession(m *mapdata.Map) (*Session, error) {
	s := &Session{m: m}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards all runtime state and starts the level again. Progress
// saved on disk is restored.
func (s *Session) Reset() error {
	t, err := terrain.New(s.m)
	if err != nil {
		return err
	}
	if !hasGravity(t, s.m.Start) {
		return fmt.Errorf("map %s at %v: %w", s.m.Name, s.m.Start, ErrNoGravityAtStart)
	}

	w := donburi.NewWorld()
	s.terrain = t
	s.world = w
	s.level = factory.CreateLevel(w, t)
	s.player = factory.CreatePlayer(w, s.m.Start)
	factory.CreateCamera(w, s.m.CameraStart)

	// Terrain must advance before the player reads it.
	s.ecs = ecs.NewECS(w)
	s.ecs.AddSystem(systems.UpdateTerrain)
	s.ecs.AddSystem(systems.UpdatePlayer)
	s.ecs.AddSystem(systems.UpdateCamera)
	s.ecs.AddSystem(systems.UpdatePowerUps)
	s.ecs.AddSystem(systems.UpdateMissionLogs)

	kinds, err := systems.LoadProgress(s.m.Name)
	if err != nil {
		return fmt.Errorf("map %s: %w", s.m.Name, err)
	}
	systems.RestorePowerUps(s.ecs, kinds)
	return nil
}

// ClearProgress forgets the power-ups saved for this level and restarts it.
func (s *Session) ClearProgress() error {
	if err := systems.ClearProgress(s.m.Name); err != nil {
		return fmt.Errorf("map %s: %w", s.m.Name, err)
	}
	return s.Reset()
}

func hasGravity(t *terrain.Terrain, at fixnum.Vec2) bool {
	for _, c := range t.Nearby(at) {
		if c.Tag.IsGravitational() {
			return true
		}
	}
	return false
}

// World exposes the ECS world to renderers. Callers must not mutate it.
func (s *Session) World() donburi.World {
	return s.world
}

func (s *Session) Terrain() *terrain.Terrain {
	return s.terrain
}

func (s *Session) Map() *mapdata.Map {
	return s.m
}

// Step advances the level by one tick.
func (s *Session) Step(in Input) Frame {
	w := s.world
	if entry, ok := components.Input.First(w); ok {
		components.Input.Get(entry).Set(in.actions())
	}

	s.ecs.Update()

	f := s.frame()
	if len(f.PowerUps) > 0 {
		kinds := components.Collected.Get(mustFirst(w, components.Collected)).Kinds
		if err := systems.SaveProgress(s.m.Name, kinds); err != nil {
			log.Printf("Warning: Could not save progress for %s: %v", s.m.Name, err)
		}
	}
	return f
}

func (s *Session) frame() Frame {
	w := s.world
	player := components.Player.Get(s.player)
	physics := components.Physics.Get(s.player)
	state := components.State.Get(s.player).Current
	level := components.Level.Get(s.level)
	camera := components.Camera.Get(mustFirst(w, components.Camera))

	f := Frame{
		Tick:            level.Tick,
		Pose:            systems.PlayerPose(player, physics, state),
		Position:        physics.Position,
		Speed:           physics.Speed,
		Up:              physics.Up,
		OnGround:        physics.GroundState == cfg.OnGround,
		Camera:          camera.Position,
		Sounds:          systems.DrainSFX(s.ecs),
		MissionLogs:     systems.DrainMissionLogs(s.ecs),
		PowerUps:        systems.NewPowerUps(s.ecs),
		LoadedPaths:     s.terrain.LoadedPaths(),
		NearbyColliders: len(level.Nearby),
	}
	f.ViewX, f.ViewY = systems.ViewOrigin(camera.Position)

	switch st := state.(type) {
	case *components.Playing:
		f.PopTime = st.PopTime
		f.PopLocation = st.PopLocation
		if st.PopTime > 0 {
			f.PopFrame = systems.PopFrame(st.PopTime)
		}
	case *components.Recovering:
		f.Recovering = true
	}
	return f
}

func mustFirst[T any](w donburi.World, c *donburi.ComponentType[T]) *donburi.Entry {
	entry, ok := c.First(w)
	if !ok {
		panic(fmt.Sprintf("missing singleton %s", c.Name()))
	}
	return entry
}
