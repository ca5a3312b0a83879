package scenes

import (
	"image/color"
	"math"

	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const arcSegments = 12

// view converts world positions to screen pixels for the current frame.
type view struct {
	x, y float32
}

func (v view) at(p fixnum.Vec2) (float32, float32) {
	return float32(p.X.Float()) - v.x, float32(p.Y.Float()) - v.y
}

func (ps *PlatformerScene) view() view {
	return view{x: float32(ps.frame.ViewX), y: float32(ps.frame.ViewY)}
}

func tagColor(tag geom.Tag) color.RGBA {
	switch tag {
	case geom.CollisionGravitational:
		return cfg.Debug.GravitationalColor
	case geom.Killision:
		return cfg.Debug.KillisionColor
	}
	return cfg.Debug.CollisionColor
}

func drawCollider(screen *ebiten.Image, v view, c *geom.Collider, clr color.RGBA) {
	switch c.Kind {
	case geom.KindCircle:
		x, y := v.at(c.Circle.Position)
		vector.StrokeCircle(screen, x, y, float32(c.Circle.Radius.Float()), 1, clr, false)
	case geom.KindLine:
		x0, y0 := v.at(c.Line.Start)
		x1, y1 := v.at(c.Line.End)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, false)
	case geom.KindArc:
		drawArc(screen, v, c.Arc, clr)
	}
}

// drawArc approximates the arc's span with straight segments, sweeping
// from Start towards End.
func drawArc(screen *ebiten.Image, v view, a geom.Arc, clr color.RGBA) {
	from := math.Atan2(a.Start.Y.Float(), a.Start.X.Float())
	to := math.Atan2(a.End.Y.Float(), a.End.X.Float())
	for to < from {
		to += 2 * math.Pi
	}
	cx, cy := v.at(a.Circle.Position)
	r := a.Circle.Radius.Float()
	step := (to - from) / arcSegments
	for i := 0; i < arcSegments; i++ {
		a0, a1 := from+float64(i)*step, from+float64(i+1)*step
		vector.StrokeLine(screen,
			cx+float32(math.Cos(a0)*r), cy+float32(math.Sin(a0)*r),
			cx+float32(math.Cos(a1)*r), cy+float32(math.Sin(a1)*r),
			1, clr, false)
	}
}

// DrawTerrain renders every static collider, the loaded moving ones and the
// recovery points.
func (ps *PlatformerScene) DrawTerrain(e *ecs.ECS, screen *ebiten.Image) {
	v := ps.view()
	m := ps.session.Map()
	for i := range m.Colliders {
		c := &m.Colliders[i]
		drawCollider(screen, v, c, tagColor(c.Tag))
	}

	ps.loaded = ps.session.Terrain().AppendLoaded(ps.loaded[:0])
	for _, c := range ps.loaded {
		clr := cfg.Debug.MovingColor
		if c.Tag.IsLethal() {
			clr = cfg.Debug.KillisionColor
		}
		drawCollider(screen, v, c, clr)
	}

	for _, p := range m.RecoveryPoints {
		x, y := v.at(p)
		vector.StrokeRect(screen, x-3, y-3, 6, 6, 1, cfg.Debug.RecoveryColor, false)
	}
}

// DrawCells outlines the compiled grid and highlights the player's
// candidate cell.
func (ps *PlatformerScene) DrawCells(e *ecs.ECS, screen *ebiten.Image) {
	if !ps.showCells {
		return
	}
	v := ps.view()
	m := ps.session.Map()
	size := float32(m.BoxSize)
	faint := color.RGBA{R: 80, G: 80, B: 80, A: 255}
	for _, entry := range m.Cells {
		x := float32(entry.Cell.X)*size - v.x
		y := float32(entry.Cell.Y)*size - v.y
		vector.StrokeRect(screen, x, y, size, size, 1, faint, false)
	}

	for _, c := range ps.session.Terrain().Nearby(ps.frame.Position) {
		drawCollider(screen, v, c, cfg.White)
	}
}

// DrawPickups renders the power-ups and mission logs still in the level.
func (ps *PlatformerScene) DrawPickups(e *ecs.ECS, screen *ebiten.Image) {
	v := ps.view()
	components.PowerUp.Each(e.World, func(entry *donburi.Entry) {
		p := components.PowerUp.Get(entry)
		x, y := v.at(p.At)
		vector.FillCircle(screen, x, y, 4, cfg.Debug.PowerUpColor, false)
	})
	components.MissionLog.Each(e.World, func(entry *donburi.Entry) {
		l := components.MissionLog.Get(entry)
		if l.Shown {
			return
		}
		x, y := v.at(l.At)
		vector.StrokeRect(screen, x-2, y-2, 4, 4, 1, cfg.White, false)
	})
}

// DrawPlayer renders the player body oriented along up, or the recovery
// bubble, plus the pop effect after a recovery.
func (ps *PlatformerScene) DrawPlayer(e *ecs.ECS, screen *ebiten.Image) {
	v := ps.view()
	f := ps.frame
	x, y := v.at(f.Position)
	r := float32(cfg.Player.Radius.Float())

	if f.Recovering {
		wobble := float32(f.SpriteFrame)
		vector.StrokeCircle(screen, x, y, r+4+wobble/2, 1, cfg.LightBlue, true)
	}

	vector.StrokeCircle(screen, x, y, r, 1, cfg.Debug.PlayerColor, true)

	// Head direction follows the orientation matrix applied to screen up.
	hx := float32(f.B.Float()) * -r
	hy := float32(f.D.Float()) * -r
	vector.StrokeLine(screen, x, y, x+hx, y+hy, 1, cfg.Debug.PlayerColor, true)

	facing := float32(1)
	if f.FlipX {
		facing = -1
	}
	fx := float32(f.A.Float()) * facing * r / 2
	fy := float32(f.C.Float()) * facing * r / 2
	vector.FillCircle(screen, x+fx, y+fy, 1.5, cfg.Debug.PlayerColor, true)

	if f.PopTime > 0 {
		px, py := v.at(f.PopLocation)
		vector.StrokeCircle(screen, px, py, r+float32(f.PopFrame*3), 1, cfg.LightBlue, true)
	}

	if ps.showCells {
		cx, cy := v.at(f.Camera)
		w := float32(cfg.Camera.WindowWidth)
		h := float32(cfg.Camera.WindowHeight)
		vector.StrokeRect(screen, cx-w/2, cy-h/2, w, h, 1, cfg.Debug.CameraColor, false)
	}
}

// spriteLabel names the pose for the debug HUD.
func spriteLabel(p systems.Pose) string {
	return p.Sprite.String()
}
