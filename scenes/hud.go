package scenes

import (
	"fmt"
	"image/color"
	"strings"

	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/fonts"
	"github.com/automoto/built-to-scale/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// banner is the mission log currently on screen. It fades in, holds, then
// fades out.
type banner struct {
	text      string
	alpha     float32
	remaining int
	tween     *gween.Tween
}

func newBanner(text string) *banner {
	return &banner{
		text:      text,
		remaining: cfg.Message.DisplayDuration,
		tween:     gween.New(0, 1, float32(cfg.Message.FadeFrames), ease.OutQuad),
	}
}

// update advances one tick and reports whether the banner is finished.
func (b *banner) update() bool {
	b.remaining--
	if b.remaining == cfg.Message.FadeFrames {
		b.tween = gween.New(b.alpha, 0, float32(cfg.Message.FadeFrames), ease.InQuad)
	}
	b.alpha, _ = b.tween.Update(1)
	return b.remaining <= 0
}

// cue is a sound label shown briefly in place of audio playback.
type cue struct {
	label string
	ttl   int
}

func (ps *PlatformerScene) updateHUD() {
	for _, snd := range ps.frame.Sounds {
		if label, ok := cfg.Sound.Labels[snd]; ok {
			ps.cues = append(ps.cues, cue{label: label, ttl: cfg.Sound.DisplayFrames})
		}
	}
	live := ps.cues[:0]
	for _, c := range ps.cues {
		if c.ttl--; c.ttl > 0 {
			live = append(live, c)
		}
	}
	ps.cues = live

	ps.pendingLogs = append(ps.pendingLogs, ps.frame.MissionLogs...)
	if ps.banner != nil && ps.banner.update() {
		ps.banner = nil
	}
	if ps.banner == nil && len(ps.pendingLogs) > 0 {
		labels := cfg.Message.KeyboardLabels
		if ps.gamepad {
			labels = cfg.Message.GamepadLabels
		}
		ps.banner = newBanner(systems.ResolvePlaceholders(ps.pendingLogs[0], labels))
		ps.pendingLogs = ps.pendingLogs[1:]
	}

	for _, k := range ps.frame.PowerUps {
		ps.collected = append(ps.collected, k.String())
	}
}

// DrawHUD renders the debug readout, collected power-ups and sound cues.
func (ps *PlatformerScene) DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Small.Get()
	f := ps.frame

	lines := []string{
		fmt.Sprintf("t%d %s %s", f.Tick, spriteLabel(f.Pose), groundLabel(f.OnGround)),
		fmt.Sprintf("pos %.1f,%.1f", f.Position.X.Float(), f.Position.Y.Float()),
		fmt.Sprintf("cand %d paths %d", f.NearbyColliders, f.LoadedPaths),
	}
	if len(ps.collected) > 0 {
		lines = append(lines, strings.Join(ps.collected, ", "))
	}
	for i, line := range lines {
		text.Draw(screen, line, face, 2, 8+i*8, cfg.White)
	}

	for i, c := range ps.cues {
		text.Draw(screen, c.label, face, cfg.C.Width-40, 8+i*8, cfg.Yellow)
	}
}

func groundLabel(onGround bool) string {
	if onGround {
		return "ground"
	}
	return "air"
}

// DrawMessage renders the active mission log near the bottom of the screen.
func (ps *PlatformerScene) DrawMessage(e *ecs.ECS, screen *ebiten.Image) {
	if ps.banner == nil || ps.banner.alpha <= 0 {
		return
	}
	face := fonts.Regular.Get()
	bounds := text.BoundString(face, ps.banner.text)

	padding := float32(cfg.Message.BoxPadding)
	boxWidth := float32(bounds.Dx()) + padding*2
	boxHeight := float32(bounds.Dy()) + padding*2
	boxX := (float32(cfg.C.Width) - boxWidth) / 2
	boxY := float32(cfg.C.Height) - boxHeight - float32(cfg.Message.BottomMargin)

	vector.FillRect(screen, boxX, boxY, boxWidth, boxHeight, fade(cfg.Message.BoxColor, ps.banner.alpha), false)
	text.Draw(screen, ps.banner.text, face,
		int(boxX+padding), int(boxY+padding)+bounds.Dy(), fade(cfg.Message.TextColor, ps.banner.alpha))
}

func fade(c color.RGBA, alpha float32) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(float32(v) * alpha) }
	// premultiplied
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
