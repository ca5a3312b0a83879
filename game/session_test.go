package game

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"

	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
)

func testMap() *mapdata.Map {
	colliders := []geom.Collider{
		geom.NewCircle(geom.Circle{Position: fixnum.V(0, 0), Radius: fixnum.New(100)}, geom.CollisionGravitational),
		geom.NewCircle(geom.Circle{Position: fixnum.V(0, 104), Radius: fixnum.New(4)}, geom.Killision),
	}
	m := &mapdata.Map{
		Name:           "session",
		BoxSize:        64,
		PathBoxSize:    256,
		Colliders:      colliders,
		RecoveryPoints: []fixnum.Vec2{fixnum.V(0, -130)},
		Start:          fixnum.V(0, -120),
		CameraStart:    fixnum.V(0, -120),
		PowerUps:       []mapdata.PowerUp{{Kind: mapdata.PowerUpDoubleJump, At: fixnum.V(30, -106)}},
		MissionLogs:    []mapdata.MissionLog{{Text: "hello", At: fixnum.V(0, -110)}},
	}
	for y := int32(-4); y <= 4; y++ {
		for x := int32(-4); x <= 4; x++ {
			m.Cells = append(m.Cells, mapdata.CellEntry{Cell: mapdata.Cell{X: x, Y: y}, Colliders: []uint32{0, 1}})
		}
	}
	return m
}

func mustSession(t *testing.T, m *mapdata.Map) *Session {
	t.Helper()
	s, err := NewSession(m)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRejectsStartWithoutGravity(t *testing.T) {
	m := testMap()
	m.Start = fixnum.V(10000, 10000)
	_, err := NewSession(m)
	if !errors.Is(err, ErrNoGravityAtStart) {
		t.Fatalf("NewSession error = %v, want ErrNoGravityAtStart", err)
	}
}

func TestStepReportsEvents(t *testing.T) {
	s := mustSession(t, testMap())

	f := s.Step(Input{})
	if f.Tick != 1 {
		t.Fatalf("tick = %d, want 1", f.Tick)
	}
	if len(f.MissionLogs) != 1 || f.MissionLogs[0] != "hello" {
		t.Fatalf("mission logs = %v", f.MissionLogs)
	}
	if f.NearbyColliders != 2 {
		t.Errorf("nearby colliders = %d, want 2", f.NearbyColliders)
	}

	var landed bool
	for i := 0; i < 60; i++ {
		f = s.Step(Input{})
		for _, snd := range f.Sounds {
			landed = landed || snd == cfg.SoundLand
		}
	}
	if !landed || !f.OnGround {
		t.Fatal("player never landed")
	}
	if f.Sprite != cfg.SpriteIdle {
		t.Errorf("resting sprite = %v, want idle", f.Sprite)
	}

	var picked []mapdata.PowerUpKind
	for i := 0; i < 60 && len(picked) == 0; i++ {
		f = s.Step(Input{Right: true})
		picked = f.PowerUps
	}
	if len(picked) != 1 || picked[0] != mapdata.PowerUpDoubleJump {
		t.Fatalf("picked up %v, want Double Jump", picked)
	}
}

func TestDeathFromBelow(t *testing.T) {
	m := testMap()
	m.Start = fixnum.V(0, 130)
	s := mustSession(t, m)

	var died bool
	for i := 0; i < 100 && !died; i++ {
		f := s.Step(Input{})
		died = f.Recovering
	}
	if !died {
		t.Fatal("player never touched the spike")
	}

	var f Frame
	for i := 0; i < cfg.Recovery.ResumeFrame; i++ {
		f = s.Step(Input{})
		if f.Sprite != cfg.SpriteBubble && f.Recovering {
			t.Fatalf("recovering with sprite %v", f.Sprite)
		}
	}
	if f.Recovering {
		t.Fatal("still recovering")
	}
	if f.PopTime == 0 || f.PopFrame != 0 {
		t.Fatalf("pop effect not started: time %d frame %d", f.PopTime, f.PopFrame)
	}
}

func TestReset(t *testing.T) {
	s := mustSession(t, testMap())
	for i := 0; i < 30; i++ {
		s.Step(Input{Right: true})
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	f := s.Step(Input{})
	if f.Tick != 1 {
		t.Fatalf("tick after reset = %d, want 1", f.Tick)
	}
}

// Replaying the same inputs must give bit-identical frames.
func TestDeterministic(t *testing.T) {
	run := func() [32]byte {
		s := mustSession(t, testMap())
		h := sha256.New()
		for i := 0; i < 600; i++ {
			in := Input{
				Left:  i%200 > 150,
				Right: i%90 < 40,
				Jump:  i%70 == 0 || i%70 == 1,
			}
			f := s.Step(in)
			fmt.Fprintf(h, "%d %v %v %v %v %d\n", f.Tick, f.Position, f.Speed, f.Camera, f.Recovering, f.Sprite)
		}
		var sum [32]byte
		copy(sum[:], h.Sum(nil))
		return sum
	}
	if a, b := run(), run(); a != b {
		t.Fatal("two runs with the same input diverged")
	}
}

func TestClearProgressRestartsLevel(t *testing.T) {
	s := mustSession(t, testMap())
	for i := 0; i < 30; i++ {
		s.Step(Input{Right: true})
	}
	if err := s.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress: %v", err)
	}
	f := s.Step(Input{})
	if f.Tick != 1 {
		t.Fatalf("after clear: tick %d, want 1", f.Tick)
	}
	if len(f.MissionLogs) != 1 {
		t.Errorf("mission log not shown again after clearing: %v", f.MissionLogs)
	}
}
