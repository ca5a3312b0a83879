package systems

import (
	"fmt"

	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
	"github.com/yohamta/donburi/ecs"
)

// gatherColliders fills level.Nearby with the static and moving candidates
// around pos. The buffer is reused across ticks.
func gatherColliders(level *components.LevelData, pos fixnum.Vec2) []*geom.Collider {
	level.Nearby = append(level.Nearby[:0], level.Terrain.Nearby(pos)...)
	level.Nearby = append(level.Nearby, level.Terrain.NearbyDynamic(pos)...)
	return level.Nearby
}

// nearestGravitational returns the gravitational collider whose closest
// point is nearest to pos, or nil when there is none. Ties go to the
// earlier candidate.
func nearestGravitational(candidates []*geom.Collider, pos fixnum.Vec2) *geom.Collider {
	var best *geom.Collider
	var bestDist int64
	for _, c := range candidates {
		if !c.Tag.IsGravitational() {
			continue
		}
		d := fixnum.DistSq64(c.ClosestPoint(pos), pos)
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// gravitySource picks this tick's source, falling back to the previous one
// when no candidate pulls. Reaching a tick with neither is a broken map.
func gravitySource(physics *components.PhysicsData, candidates []*geom.Collider) *geom.Collider {
	if src := nearestGravitational(candidates, physics.Position); src != nil {
		physics.GravitySource = src
		return src
	}
	if physics.GravitySource == nil {
		panic(fmt.Sprintf("no gravity source near %v and none seen before", physics.Position))
	}
	return physics.GravitySource
}

func bodyAt(pos fixnum.Vec2) geom.Circle {
	return geom.Circle{Position: pos, Radius: cfg.Player.Radius}
}

// physicsFrame applies gravity, resolves contacts and integrates one tick.
// It reports whether the player touched a lethal collider.
func physicsFrame(e *ecs.ECS, level *components.LevelData, player *components.PlayerData, physics *components.PhysicsData, jumpHeld bool) bool {
	candidates := gatherColliders(level, physics.Position)

	src := gravitySource(physics, candidates)
	gravity := src.ClosestPoint(physics.Position).Sub(physics.Position).FastNormalise()

	divisor := cfg.Player.GravityDivisor
	if player.JumpState == cfg.Jumping && jumpHeld {
		divisor = cfg.Player.HeldGravityDivisor
	}
	physics.Speed = physics.Speed.Add(gravity.DivInt(divisor))

	died, maxCos := resolveCollisions(physics, candidates)

	wasGrounded := physics.GroundState == cfg.OnGround
	switch {
	case maxCos > cfg.Player.FirmGroundCosine:
		land(player, physics, cfg.Player.FirmFriction)
	case maxCos > cfg.Player.SteepGroundCosine:
		land(player, physics, cfg.Player.SteepFriction)
	default:
		physics.Speed = physics.Speed.Scale(cfg.Player.AirFriction)
		physics.GroundState = cfg.InAir
	}
	if !wasGrounded && physics.GroundState == cfg.OnGround {
		PlaySFX(e, cfg.SoundLand)
	}

	if physics.Speed.MagnitudeSquared() < cfg.Player.RestSpeedSquared {
		physics.Speed = fixnum.Vec2{}
	}

	physics.Up = gravity.Neg()
	physics.Position = physics.Position.Add(physics.Speed)
	return died
}

// resolveCollisions pushes the body out of every blocking candidate and
// removes the speed component heading into each surface. maxCos is the
// largest cosine between Up and a contact normal, or -1 with no contact.
func resolveCollisions(physics *components.PhysicsData, candidates []*geom.Collider) (died bool, maxCos fixnum.Num) {
	maxCos = -fixnum.One
	for _, c := range candidates {
		body := bodyAt(physics.Position)
		if !c.CollidesCircle(body) {
			continue
		}
		if c.Tag.IsLethal() {
			died = true
			continue
		}
		if !c.Tag.IsCollision() {
			continue
		}

		normal := c.NormalAt(body)
		physics.SurfaceNormal = normal
		if into := physics.Speed.Dot(normal); into < 0 {
			physics.Speed = physics.Speed.Sub(normal.Scale(into))
		}
		if cos := physics.Up.Dot(normal); cos > maxCos {
			maxCos = cos
		}
		physics.Position = physics.Position.Add(c.Overshoot(body)).Add(c.Velocity)
	}
	return died, maxCos
}

// land refreshes the jump and dash and applies ground friction.
func land(player *components.PlayerData, physics *components.PhysicsData, friction fixnum.Num) {
	player.JumpState = cfg.HasJump
	player.DashAvailable = true
	player.JumpsRemaining = player.MaxJumps
	physics.Speed = physics.Speed.Scale(friction)
	physics.GroundState = cfg.OnGround
}
