package scenes

import (
	"log"
	"sync"

	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/game"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = 0

// PlatformerScene runs a compiled map in a window with debug rendering.
type PlatformerScene struct {
	m       *mapdata.Map
	session *game.Session
	ecs     *ecs.ECS
	once    sync.Once

	frame     game.Frame
	held      [cfg.ActionCount]bool
	previous  [cfg.ActionCount]bool
	gamepad   bool
	showCells bool
	loaded    []*geom.Collider

	cues        []cue
	banner      *banner
	pendingLogs []string
	collected   []string
}

func NewPlatformerScene(m *mapdata.Map) *PlatformerScene {
	return &PlatformerScene{m: m, showCells: cfg.Debug.ShowCells}
}

func (ps *PlatformerScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(cfg.Debug.BackgroundColor)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlatformerScene) configure() {
	session, err := game.NewSession(ps.m)
	if err != nil {
		panic("failed to start level: " + err.Error())
	}
	ps.session = session
	ps.rebuild()
	log.Printf("Started level %s at %v", ps.m.Name, ps.m.Start)
}

// rebuild wraps the session's current world with the scene's systems and
// renderers. It runs again after every restart since Reset replaces the
// world.
func (ps *PlatformerScene) rebuild() {
	e := ecs.NewECS(ps.session.World())

	e.AddSystem(ps.UpdateSession)

	e.AddRenderer(layerDefault, ps.DrawCells)
	e.AddRenderer(layerDefault, ps.DrawTerrain)
	e.AddRenderer(layerDefault, ps.DrawPickups)
	e.AddRenderer(layerDefault, ps.DrawPlayer)
	e.AddRenderer(layerDefault, ps.DrawHUD)
	e.AddRenderer(layerDefault, ps.DrawMessage)

	ps.ecs = e
	ps.frame = ps.session.Step(game.Input{})
}

// UpdateSession polls the controls and advances the level one tick.
func (ps *PlatformerScene) UpdateSession(e *ecs.ECS) {
	ps.previous = ps.held
	ps.held, ps.gamepad = pollInput()

	if ps.justPressed(cfg.ActionToggleCells) {
		ps.showCells = !ps.showCells
	}
	switch {
	case ps.justPressed(cfg.ActionClearProgress):
		ps.restart(ps.session.ClearProgress)
		return
	case ps.justPressed(cfg.ActionRestart):
		ps.restart(ps.session.Reset)
		return
	}

	ps.frame = ps.session.Step(game.Input{
		Left:  ps.held[cfg.ActionMoveLeft],
		Right: ps.held[cfg.ActionMoveRight],
		Jump:  ps.held[cfg.ActionJump],
		Dash:  ps.held[cfg.ActionDash],
	})
	ps.updateHUD()
}

func (ps *PlatformerScene) restart(reset func() error) {
	if err := reset(); err != nil {
		log.Printf("Warning: Could not restart level: %v", err)
		return
	}
	ps.cues, ps.banner, ps.pendingLogs, ps.collected = nil, nil, nil, nil
	ps.rebuild()
}

func (ps *PlatformerScene) justPressed(action cfg.ActionID) bool {
	return ps.held[action] && !ps.previous[action]
}
