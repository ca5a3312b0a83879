package systems

import (
	"runtime"
	"testing"

	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/automoto/built-to-scale/systems/factory"
	"github.com/automoto/built-to-scale/terrain"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func planet(x, y, r int, tag geom.Tag) geom.Collider {
	return geom.NewCircle(geom.Circle{Position: fixnum.V(x, y), Radius: fixnum.New(r)}, tag)
}

// flatMap lists every collider in every cell around the origin, which is
// enough for the small scenes these tests build.
func flatMap(start fixnum.Vec2, colliders ...geom.Collider) *mapdata.Map {
	m := &mapdata.Map{
		Name:        "test",
		BoxSize:     64,
		PathBoxSize: 256,
		Colliders:   colliders,
		Start:       start,
		CameraStart: start,
	}
	all := make([]uint32, len(colliders))
	for i := range all {
		all[i] = uint32(i)
	}
	for y := int32(-8); y <= 8; y++ {
		for x := int32(-8); x <= 8; x++ {
			m.Cells = append(m.Cells, mapdata.CellEntry{Cell: mapdata.Cell{X: x, Y: y}, Colliders: all})
		}
	}
	return m
}

type world struct {
	e      *ecs.ECS
	w      donburi.World
	player *donburi.Entry
}

func newWorld(t *testing.T, m *mapdata.Map) *world {
	t.Helper()
	tr, err := terrain.New(m)
	if err != nil {
		t.Fatalf("terrain.New: %v", err)
	}
	w := donburi.NewWorld()
	factory.CreateLevel(w, tr)
	factory.CreateCamera(w, m.CameraStart)
	player := factory.CreatePlayer(w, m.Start)

	e := ecs.NewECS(w)
	e.AddSystem(UpdateTerrain)
	e.AddSystem(UpdatePlayer)
	e.AddSystem(UpdateCamera)
	e.AddSystem(UpdatePowerUps)
	e.AddSystem(UpdateMissionLogs)
	return &world{e: e, w: w, player: player}
}

func (tw *world) step(actions ...cfg.ActionID) []cfg.SoundID {
	var held [cfg.ActionCount]bool
	for _, a := range actions {
		held[a] = true
	}
	entry, _ := components.Input.First(tw.w)
	components.Input.Get(entry).Set(held)

	tw.e.Update()
	return DrainSFX(tw.e)
}

func (tw *world) run(ticks int, actions ...cfg.ActionID) []cfg.SoundID {
	var sounds []cfg.SoundID
	for i := 0; i < ticks; i++ {
		sounds = append(sounds, tw.step(actions...)...)
	}
	return sounds
}

func (tw *world) physics() *components.PhysicsData {
	return components.Physics.Get(tw.player)
}

func (tw *world) data() *components.PlayerData {
	return components.Player.Get(tw.player)
}

func (tw *world) state() components.PlayerState {
	return components.State.Get(tw.player).Current
}

func hasSound(sounds []cfg.SoundID, want cfg.SoundID) bool {
	for _, s := range sounds {
		if s == want {
			return true
		}
	}
	return false
}

// distance from the origin in whole units
func radius(p fixnum.Vec2) float64 {
	return p.Magnitude().Float()
}

func TestSettlesOnPlanet(t *testing.T) {
	tw := newWorld(t, flatMap(fixnum.V(0, -130), planet(0, 0, 100, geom.CollisionGravitational)))
	sounds := tw.run(200)

	ph := tw.physics()
	if ph.GroundState != cfg.OnGround {
		t.Fatalf("ground state = %v, want OnGround", ph.GroundState)
	}
	if r := radius(ph.Position); r < 107 || r > 109 {
		t.Fatalf("resting distance from centre = %.2f, want about 108", r)
	}
	if !ph.Speed.IsZero() {
		t.Errorf("resting speed = %v, want zero", ph.Speed)
	}
	if ph.Up != fixnum.V(0, -1) {
		t.Errorf("up = %v, want (0, -1)", ph.Up)
	}
	if tw.data().JumpState != cfg.HasJump {
		t.Errorf("jump state = %v, want HasJump", tw.data().JumpState)
	}
	if !hasSound(sounds, cfg.SoundLand) {
		t.Error("landing raised no sound")
	}
}

func TestLineContactRemovesNormalSpeed(t *testing.T) {
	floor := geom.NewLineCollider(geom.NewLine(fixnum.V(-100, 0), fixnum.V(100, 0)), geom.CollisionOnly)
	tw := newWorld(t, flatMap(fixnum.V(0, -30),
		planet(0, 400, 50, geom.CollisionGravitational),
		floor,
	))
	tw.run(120)

	ph := tw.physics()
	if ph.Speed.Y != 0 {
		t.Fatalf("speed into the floor = %v, want 0", ph.Speed.Y)
	}
	if y := ph.Position.Y.Float(); y < -9 || y > -7 {
		t.Fatalf("resting y = %.2f, want about -8", y)
	}
	if ph.SurfaceNormal != fixnum.V(0, -1) {
		t.Errorf("surface normal = %v, want (0, -1)", ph.SurfaceNormal)
	}
}

func TestWalkFollowsSurface(t *testing.T) {
	tw := newWorld(t, flatMap(fixnum.V(0, -110), planet(0, 0, 100, geom.CollisionGravitational)))
	tw.run(30)
	tw.run(40, cfg.ActionMoveRight)

	ph := tw.physics()
	if ph.Position.X <= 0 {
		t.Fatalf("x = %v after walking right, want positive", ph.Position.X)
	}
	if r := radius(ph.Position); r < 106 || r > 110 {
		t.Fatalf("left the surface while walking: distance %.2f", r)
	}
	if tw.data().Facing != cfg.FacingRight {
		t.Error("facing not right")
	}

	tw.run(5, cfg.ActionMoveLeft)
	if tw.data().Facing != cfg.FacingLeft {
		t.Error("facing not left after walking left")
	}
}

func TestJump(t *testing.T) {
	tw := newWorld(t, flatMap(fixnum.V(0, -110), planet(0, 0, 100, geom.CollisionGravitational)))
	tw.run(30)

	sounds := tw.step(cfg.ActionJump)
	if !hasSound(sounds, cfg.SoundJump) {
		t.Fatal("jump raised no sound")
	}
	if tw.data().JumpState != cfg.Jumping {
		t.Fatalf("jump state = %v, want Jumping", tw.data().JumpState)
	}
	if tw.data().JumpsRemaining != 0 {
		t.Errorf("jumps remaining = %d, want 0", tw.data().JumpsRemaining)
	}

	tw.run(10, cfg.ActionJump)
	if r := radius(tw.physics().Position); r < 120 {
		t.Fatalf("distance %.2f ten ticks into a held jump, want above 120", r)
	}

	// holding the button does not jump again
	if hasSound(tw.run(5, cfg.ActionJump), cfg.SoundJump) {
		t.Error("held jump button jumped twice")
	}

	tw.run(200)
	if tw.physics().GroundState != cfg.OnGround || tw.data().JumpState != cfg.HasJump {
		t.Fatal("did not land after the jump")
	}
}

func TestJumpFramesExpire(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		want      cfg.JumpState
	}{
		{"out of jumps", 0, cfg.Falling},
		{"double jump left", 1, cfg.HasJump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &components.PlayerData{JumpState: cfg.Jumping, JumpsRemaining: tt.remaining}
			for i := 0; i < cfg.Player.JumpFrames; i++ {
				advanceFrame(p)
			}
			if p.JumpState != cfg.Jumping {
				t.Fatalf("jump ended after %d frames", cfg.Player.JumpFrames)
			}
			advanceFrame(p)
			if p.JumpState != tt.want {
				t.Fatalf("state = %v, want %v", p.JumpState, tt.want)
			}
		})
	}
}

func TestDeathAndRecovery(t *testing.T) {
	m := flatMap(fixnum.V(0, -140),
		planet(0, 0, 100, geom.CollisionGravitational),
		planet(0, -104, 4, geom.Killision),
	)
	m.RecoveryPoints = []fixnum.Vec2{fixnum.V(300, 300), fixnum.V(0, 130)}
	tw := newWorld(t, m)

	var sounds []cfg.SoundID
	for i := 0; i < 100; i++ {
		sounds = append(sounds, tw.step()...)
		if _, ok := tw.state().(*components.Recovering); ok {
			break
		}
	}
	r, ok := tw.state().(*components.Recovering)
	if !ok {
		t.Fatal("touching a lethal collider did not start a recovery")
	}
	if !hasSound(sounds, cfg.SoundDeath) {
		t.Error("death raised no sound")
	}
	if r.RecoverTo != fixnum.V(0, 130) {
		t.Fatalf("recovering to %v, want the nearest point (0, 130)", r.RecoverTo)
	}
	if r.StartReverse != fixnum.V(0, -1) || r.DestReverse != fixnum.V(0, 1) {
		t.Errorf("reverse gravity = %v -> %v", r.StartReverse, r.DestReverse)
	}

	sounds = tw.run(cfg.Recovery.ResumeFrame - 1)
	if _, ok := tw.state().(*components.Recovering); !ok {
		t.Fatal("recovery ended early")
	}
	sounds = append(sounds, tw.step()...)
	playing, ok := tw.state().(*components.Playing)
	if !ok {
		t.Fatalf("not playing after %d recovery ticks", cfg.Recovery.ResumeFrame)
	}
	if !hasSound(sounds, cfg.SoundRecovered) {
		t.Error("recovery raised no sound")
	}
	if playing.PopTime != PopDuration() {
		t.Errorf("pop time = %d, want %d", playing.PopTime, PopDuration())
	}
	if d := tw.physics().Position.Sub(r.RecoverTo).Magnitude().Float(); d > 8 {
		t.Fatalf("resumed %.2f units from the recovery point", d)
	}
}

func TestRecoveryFreezesThenMoves(t *testing.T) {
	ph := &components.PhysicsData{Position: fixnum.V(0, 0), Speed: fixnum.V(3, 3)}
	r := &components.Recovering{
		StartingFrom: fixnum.V(0, 0),
		RecoverTo:    fixnum.V(96, 0),
		StartReverse: fixnum.V(0, -1),
		DestReverse:  fixnum.V(0, -1),
	}
	for i := 1; i < cfg.Recovery.FreezeFrames; i++ {
		if updateRecovering(r, ph) != nil {
			t.Fatal("resumed during the freeze")
		}
	}
	if !ph.Speed.IsZero() || ph.Position != fixnum.V(0, 0) {
		t.Fatalf("moved during the freeze: %v %v", ph.Position, ph.Speed)
	}

	// first moving frame sits at the start
	updateRecovering(r, ph)
	if ph.Position != fixnum.V(0, 0) {
		t.Fatalf("first moving frame at %v, want start", ph.Position)
	}
	// halfway: both ends lifted by 15 along reverse gravity
	for r.Time < cfg.Recovery.FreezeFrames+(cfg.Recovery.MoveEnd-cfg.Recovery.FreezeFrames)/2 {
		updateRecovering(r, ph)
	}
	if ph.Position != fixnum.V(48, -15) {
		t.Fatalf("halfway position = %v, want (48, -15)", ph.Position)
	}
}

func TestGravityFallsBackToLastSource(t *testing.T) {
	src := planet(0, 0, 100, geom.CollisionGravitational)
	ph := &components.PhysicsData{Position: fixnum.V(0, -150), GravitySource: &src}
	wall := geom.NewLineCollider(geom.NewLine(fixnum.V(0, 0), fixnum.V(10, 0)), geom.CollisionOnly)

	if got := gravitySource(ph, []*geom.Collider{&wall}); got != &src {
		t.Fatal("did not fall back to the previous source")
	}

	ph.GravitySource = nil
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic with no gravity source at all")
		}
	}()
	gravitySource(ph, []*geom.Collider{&wall})
}

func TestNearestGravitational(t *testing.T) {
	near := planet(0, 0, 10, geom.CollisionGravitational)
	twin := planet(0, 0, 10, geom.CollisionGravitational)
	far := planet(100, 0, 10, geom.CollisionGravitational)
	spike := planet(0, 0, 30, geom.Killision)

	tests := []struct {
		name       string
		candidates []*geom.Collider
		want       *geom.Collider
	}{
		{"empty", nil, nil},
		{"only lethal", []*geom.Collider{&spike}, nil},
		{"nearest wins", []*geom.Collider{&far, &near}, &near},
		{"tie goes to first", []*geom.Collider{&near, &twin}, &near},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestGravitational(tt.candidates, fixnum.V(0, -20)); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPowerUpPickup(t *testing.T) {
	m := flatMap(fixnum.V(0, -120), planet(0, 0, 100, geom.CollisionGravitational))
	m.PowerUps = []mapdata.PowerUp{
		{Kind: mapdata.PowerUpDash, At: fixnum.V(0, -110)},
		{Kind: mapdata.PowerUpDoubleJump, At: fixnum.V(0, 110)},
	}
	tw := newWorld(t, m)

	sounds := tw.step()
	if !hasSound(sounds, cfg.SoundPowerUp) {
		t.Fatal("pickup raised no sound")
	}
	if !tw.data().CanDash {
		t.Fatal("dash not unlocked")
	}
	if got := NewPowerUps(tw.e); len(got) != 1 || got[0] != mapdata.PowerUpDash {
		t.Fatalf("NewPowerUps = %v", got)
	}
	if got := NewPowerUps(tw.e); got != nil {
		t.Fatalf("second NewPowerUps = %v, want nil", got)
	}

	count := 0
	components.PowerUp.Each(tw.w, func(*donburi.Entry) { count++ })
	if count != 1 {
		t.Fatalf("%d power-ups left, want 1", count)
	}
	if tw.data().MaxJumps != cfg.Player.MaxJumps {
		t.Error("distant power-up applied")
	}
}

func TestApplyPowerUp(t *testing.T) {
	tests := []struct {
		kind  mapdata.PowerUpKind
		check func(*components.PlayerData) bool
	}{
		{mapdata.PowerUpJumpBoost, func(p *components.PlayerData) bool { return p.JumpSpeed == cfg.Player.BoostedJumpSpeed }},
		{mapdata.PowerUpDash, func(p *components.PlayerData) bool { return p.CanDash }},
		{mapdata.PowerUpDoubleJump, func(p *components.PlayerData) bool { return p.MaxJumps == 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := &components.PlayerData{JumpSpeed: cfg.Player.JumpSpeed, MaxJumps: 1}
			ApplyPowerUp(p, tt.kind)
			if !tt.check(p) {
				t.Fatalf("%v not applied: %+v", tt.kind, p)
			}
		})
	}
}

func TestDashOncePerGrounding(t *testing.T) {
	tw := newWorld(t, flatMap(fixnum.V(0, -110), planet(0, 0, 100, geom.CollisionGravitational)))
	tw.data().CanDash = true
	tw.run(30)

	sounds := tw.step(cfg.ActionMoveRight, cfg.ActionDash)
	if !hasSound(sounds, cfg.SoundDash) {
		t.Fatal("dash raised no sound")
	}
	if tw.data().DashAvailable && tw.physics().GroundState != cfg.OnGround {
		t.Fatal("dash still available in the air")
	}

	ph := &components.PhysicsData{Up: fixnum.V(0, -1), GroundState: cfg.InAir}
	p := &components.PlayerData{CanDash: true}
	applyDirection(tw.e, p, ph, 1, true)
	if ph.Speed.X != cfg.Player.AirSpeed {
		t.Fatalf("dash without availability gave speed %v", ph.Speed.X)
	}
}

func TestMissionLogShownOnce(t *testing.T) {
	m := flatMap(fixnum.V(0, -120), planet(0, 0, 100, geom.CollisionGravitational))
	m.MissionLogs = []mapdata.MissionLog{{Text: "Press {jump}", At: fixnum.V(0, -110)}}
	tw := newWorld(t, m)

	sounds := tw.step()
	if !hasSound(sounds, cfg.SoundMissionLog) {
		t.Fatal("log raised no sound")
	}
	if got := DrainMissionLogs(tw.e); len(got) != 1 || got[0] != "Press {jump}" {
		t.Fatalf("DrainMissionLogs = %v", got)
	}
	tw.run(10)
	if got := DrainMissionLogs(tw.e); got != nil {
		t.Fatalf("log shown twice: %v", got)
	}
}

func TestResolvePlaceholders(t *testing.T) {
	got := ResolvePlaceholders("{move} to walk, {jump} to jump", cfg.Message.KeyboardLabels)
	if want := "Arrow Keys to walk, X to jump"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInsideWindow(t *testing.T) {
	cam := fixnum.V(100, 100)
	tests := []struct {
		p    fixnum.Vec2
		want bool
	}{
		{fixnum.V(100, 100), true},
		{fixnum.V(132, 116), true},
		{fixnum.V(68, 84), true},
		{fixnum.V(133, 100), false},
		{fixnum.V(100, 83), false},
	}
	for _, tt := range tests {
		if got := insideWindow(cam, tt.p); got != tt.want {
			t.Errorf("insideWindow(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClampToScrollStop(t *testing.T) {
	limit := func(v int) mapdata.Limit { return mapdata.Limit{Set: true, Value: fixnum.New(v)} }
	tests := []struct {
		name      string
		cam, dest fixnum.Vec2
		stop      mapdata.ScrollStop
		want      fixnum.Vec2
	}{
		{"clamped min x", fixnum.V(10, 0), fixnum.V(8, 0), mapdata.ScrollStop{MinX: limit(9)}, fixnum.V(9, 0)},
		{"outside min x is free", fixnum.V(5, 0), fixnum.V(4, 0), mapdata.ScrollStop{MinX: limit(9)}, fixnum.V(4, 0)},
		{"clamped max y", fixnum.V(0, 0), fixnum.V(0, 3), mapdata.ScrollStop{MaxY: limit(1)}, fixnum.V(0, 1)},
		{"no limits", fixnum.V(0, 0), fixnum.V(7, 7), mapdata.ScrollStop{}, fixnum.V(7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampToScrollStop(tt.cam, tt.dest, tt.stop); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraStepsTowardPlayer(t *testing.T) {
	m := flatMap(fixnum.V(0, -110), planet(0, 0, 100, geom.CollisionGravitational))
	m.CameraStart = fixnum.V(200, -110)
	tw := newWorld(t, m)
	tw.step()

	cam, _ := components.Camera.First(tw.w)
	got := components.Camera.Get(cam).Position
	if got.X >= fixnum.New(200) || got.X < fixnum.New(198) {
		t.Fatalf("camera x = %v, want one step toward the player", got.X)
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		up         fixnum.Vec2
		a, b, c, d int
	}{
		{fixnum.V(0, -1), 1, 0, 0, 1},
		{fixnum.V(0, 1), -1, 0, 0, -1},
		{fixnum.V(1, 0), 0, 1, -1, 0},
	}
	for _, tt := range tests {
		a, b, c, d := Orientation(tt.up)
		if a != fixnum.New(tt.a) || b != fixnum.New(tt.b) || c != fixnum.New(tt.c) || d != fixnum.New(tt.d) {
			t.Errorf("Orientation(%v) = %v %v %v %v", tt.up, a, b, c, d)
		}
	}
}

func TestPlayerPose(t *testing.T) {
	ph := &components.PhysicsData{Position: fixnum.V(50, 50), Up: fixnum.V(0, -1)}
	tests := []struct {
		name   string
		player components.PlayerData
		speed  fixnum.Vec2
		state  components.PlayerState
		want   cfg.SpriteID
	}{
		{"idle", components.PlayerData{JumpState: cfg.HasJump}, fixnum.Vec2{}, &components.Playing{}, cfg.SpriteIdle},
		{"walk", components.PlayerData{JumpState: cfg.HasJump}, fixnum.V(1, 0), &components.Playing{}, cfg.SpriteWalk},
		{"jump", components.PlayerData{JumpState: cfg.Jumping}, fixnum.V(0, -2), &components.Playing{}, cfg.SpriteJump},
		{"fall", components.PlayerData{JumpState: cfg.Falling}, fixnum.V(0, 2), &components.Playing{}, cfg.SpriteFall},
		{"bubble", components.PlayerData{JumpState: cfg.HasJump}, fixnum.Vec2{}, &components.Recovering{Time: 4}, cfg.SpriteBubble},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ph.Speed = tt.speed
			p := tt.player
			pose := PlayerPose(&p, ph, tt.state)
			if pose.Sprite != tt.want {
				t.Fatalf("sprite = %v, want %v", pose.Sprite, tt.want)
			}
			if pose.RenderPosition != fixnum.V(42, 42) {
				t.Errorf("render position = %v, want (42, 42)", pose.RenderPosition)
			}
		})
	}
}

func TestPersistenceDisabledByDefault(t *testing.T) {
	if err := SaveProgress("test", []mapdata.PowerUpKind{mapdata.PowerUpDash}); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	kinds, err := LoadProgress("test")
	if err != nil || kinds != nil {
		t.Fatalf("LoadProgress = %v, %v; want nothing", kinds, err)
	}
}

// enablePersistence points gdata at a temporary home directory for the
// duration of the test.
func enablePersistence(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("gdata stores under $HOME only on unix")
	}
	t.Setenv("HOME", t.TempDir())
	if err := InitPersistence(); err != nil {
		t.Fatalf("InitPersistence: %v", err)
	}
	t.Cleanup(func() {
		gdataManager = nil
		gdataInitialized = false
	})
}

func TestSaveLoadClearProgress(t *testing.T) {
	enablePersistence(t)

	saved := []mapdata.PowerUpKind{mapdata.PowerUpDash, mapdata.PowerUpDoubleJump}
	if err := SaveProgress("demo", saved); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	got, err := LoadProgress("demo")
	if err != nil || len(got) != 2 || got[0] != mapdata.PowerUpDash || got[1] != mapdata.PowerUpDoubleJump {
		t.Fatalf("LoadProgress = %v, %v; want %v", got, err, saved)
	}
	if other, _ := LoadProgress("other"); other != nil {
		t.Fatalf("progress leaked to another level: %v", other)
	}

	if err := ClearProgress("demo"); err != nil {
		t.Fatalf("ClearProgress: %v", err)
	}
	if got, err := LoadProgress("demo"); err != nil || got != nil {
		t.Fatalf("LoadProgress after clear = %v, %v; want nothing", got, err)
	}
	if err := ClearProgress("demo"); err != nil {
		t.Fatalf("clearing twice: %v", err)
	}
}

func TestDecodeKinds(t *testing.T) {
	got := decodeKinds([]string{"Dash", "Wings", "Double Jump"})
	if len(got) != 2 || got[0] != mapdata.PowerUpDash || got[1] != mapdata.PowerUpDoubleJump {
		t.Fatalf("decodeKinds = %v", got)
	}
}

func TestRestorePowerUps(t *testing.T) {
	m := flatMap(fixnum.V(0, -120), planet(0, 0, 100, geom.CollisionGravitational))
	m.PowerUps = []mapdata.PowerUp{{Kind: mapdata.PowerUpJumpBoost, At: fixnum.V(0, 300)}}
	tw := newWorld(t, m)

	RestorePowerUps(tw.e, []mapdata.PowerUpKind{mapdata.PowerUpJumpBoost})
	if tw.data().JumpSpeed != cfg.Player.BoostedJumpSpeed {
		t.Fatal("restored jump boost not applied")
	}
	count := 0
	components.PowerUp.Each(tw.w, func(*donburi.Entry) { count++ })
	if count != 0 {
		t.Fatal("restored power-up still in the level")
	}
	if NewPowerUps(tw.e) != nil {
		t.Error("restored power-ups reported as new pickups")
	}
}

// deckMap has no static terrain: the only ground is a gravitational deck
// carried back and forth along x at half a unit per tick.
func deckMap(start fixnum.Vec2) *mapdata.Map {
	m := flatMap(start)
	deck := geom.NewLineCollider(geom.NewLine(fixnum.V(-40, 0), fixnum.V(40, 0)), geom.CollisionGravitational)
	m.Paths = []mapdata.Path{{
		Name: "deck",
		Points: []mapdata.PathPoint{
			{Pos: fixnum.V(0, 0), Increment: 327},
			{Pos: fixnum.V(100, 0), Increment: 327},
		},
		Colliders: []geom.Collider{deck},
		Min:       fixnum.V(-40, -10),
		Max:       fixnum.V(140, 10),
	}}
	return m
}

func deckCentre(t *testing.T, tw *world) fixnum.Vec2 {
	t.Helper()
	entry, _ := components.Level.First(tw.w)
	loaded := components.Level.Get(entry).Terrain.AppendLoaded(nil)
	if len(loaded) != 1 {
		t.Fatalf("loaded colliders = %d, want the deck", len(loaded))
	}
	l := loaded[0].Line
	return fixnum.Vec2{X: (l.Start.X + l.End.X) / 2, Y: l.Start.Y}
}

func TestRidesMovingDeck(t *testing.T) {
	tw := newWorld(t, deckMap(fixnum.V(0, -20)))
	tw.run(40)

	if gs := tw.physics().GroundState; gs != cfg.OnGround {
		t.Fatalf("ground state = %v, want OnGround on the deck", gs)
	}
	playerFrom, deckFrom := tw.physics().Position.X, deckCentre(t, tw).X

	for i := 0; i < 110; i++ {
		tw.step()
		if y := tw.physics().Position.Y.Float(); y < -9 || y > -7 {
			t.Fatalf("tick %d: player y = %.2f, want resting on the deck at -8", i, y)
		}
	}

	deckMoved := (deckCentre(t, tw).X - deckFrom).Float()
	playerMoved := (tw.physics().Position.X - playerFrom).Float()
	if deckMoved < 50 {
		t.Fatalf("deck moved %.2f, want about 55", deckMoved)
	}
	if d := playerMoved - deckMoved; d < -2 || d > 2 {
		t.Fatalf("player moved %.2f while the deck moved %.2f", playerMoved, deckMoved)
	}
}
