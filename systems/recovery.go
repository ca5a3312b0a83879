package systems

import (
	"github.com/automoto/built-to-scale/components"
	cfg "github.com/automoto/built-to-scale/config"
	"github.com/automoto/built-to-scale/shared/fixnum"
	"github.com/automoto/built-to-scale/shared/geom"
)

// die starts carrying the player to the recovery point nearest to where
// they died. Maps without recovery points send the player back to the start.
func die(level *components.LevelData, physics *components.PhysicsData) *components.Recovering {
	t := level.Terrain
	pos := physics.Position

	recoverTo, ok := t.RecoveryPointNear(pos)
	if !ok {
		recoverTo = t.Map().Start
	}

	return &components.Recovering{
		RecoverTo:    recoverTo,
		StartingFrom: pos,
		StartReverse: awayFrom(physics.GravitySource, pos),
		DestReverse:  awayFrom(destinationSource(level, physics, recoverTo), recoverTo),
	}
}

func destinationSource(level *components.LevelData, physics *components.PhysicsData, at fixnum.Vec2) *geom.Collider {
	if src := nearestGravitational(level.Terrain.Nearby(at), at); src != nil {
		return src
	}
	return physics.GravitySource
}

// awayFrom is the reverse gravity direction at pos.
func awayFrom(src *geom.Collider, pos fixnum.Vec2) fixnum.Vec2 {
	if src == nil {
		return fixnum.Vec2{}
	}
	return pos.Sub(src.ClosestPoint(pos)).FastNormalise()
}

// updateRecovering advances the recovery animation. It returns the Playing
// state to switch to once control comes back, nil until then.
func updateRecovering(r *components.Recovering, physics *components.PhysicsData) *components.Playing {
	rc := cfg.Recovery
	r.Time++

	switch {
	case r.Time < rc.FreezeFrames:
		physics.Speed = fixnum.Vec2{}
	case r.Time < rc.MoveEnd:
		t := fixnum.New(r.Time - rc.FreezeFrames).DivInt(rc.MoveEnd - rc.FreezeFrames)
		rest := fixnum.One - t
		from := r.StartingFrom.Add(r.StartReverse.Scale(t).MulInt(rc.LiftDistance))
		to := r.RecoverTo.Add(r.DestReverse.Scale(rest).MulInt(rc.LiftDistance))
		physics.Position = from.Scale(rest).Add(to.Scale(t))
	case r.Time < rc.ResumeFrame:
	default:
		physics.Speed = fixnum.Vec2{}
		return &components.Playing{
			PopTime:     PopDuration(),
			PopLocation: physics.Position,
		}
	}
	return nil
}

// PopDuration is the length in ticks of the bubble-pop effect.
func PopDuration() int {
	return cfg.PlayerAnimations[cfg.SpriteBubblePop].Frames * cfg.Recovery.PopFrameRate
}
