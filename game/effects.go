package game

import (
	"fmt"
	"time"

	"topdownracer/vec"
)

// EffectPhase is the contact transition between a body and an effect
type EffectPhase int

const (
	PhaseEnter EffectPhase = iota
	PhaseColliding
	PhaseExit
)

const (
	bananaSpinDegrees = 300.0 // Per second while slipping on a peel
	bananaLimit       = 3
	gravelJitterSpeed = 30.0
	gravelJitter      = 4.0 // Degrees

	damagedForever  = Forever
	spikesDuration  = 3000 * time.Millisecond
	slipDuration    = 700 * time.Millisecond
	boostDuration   = 5000 * time.Millisecond
	freezeDuration  = 1000 * time.Millisecond
	invisibleTime   = 2000 * time.Millisecond
	noCollisionTime = 5000 * time.Millisecond
	oilAdhesion     = 0.002
	iceAdhesion     = 0.5
	gravelAdhesion  = 0.02
	boostAccelMult  = 2.0
	potholeForce    = 0.1
	potholeAccel    = 0.9
	potholeMaxSpeed = 0.6
	puddleForce     = 0.4
	puddleAccel     = 0.7
	spikesForce     = 0.2
	spikesMaxSpeed  = 0.8
	spikesAccel     = 0.7
)

// updateEffectContacts compares the effects each body overlaps with the
// previous tick and dispatches enter, colliding and exit transitions.
// Consumed effects go to the removal queue and stay in place until it is
// drained.
func (r *Race) updateEffectContacts(dt float64) {
	touching := make(map[*EffectObject]map[*Body]bool)
	for _, b := range r.Bodies() {
		if b.Ghost || b.Progress.Finished {
			continue
		}
		for _, e := range r.Collisions.EffectsOverlapping(b) {
			if b.NoCollision && e.Config().Category == CategoryObstacle {
				continue
			}
			if touching[e] == nil {
				touching[e] = make(map[*Body]bool)
			}
			touching[e][b] = true
		}
	}

	for _, e := range r.Effects {
		for _, b := range r.Bodies() {
			if e.removed {
				break
			}
			now, was := touching[e][b], e.colliding[b]
			switch {
			case now && !was:
				e.colliding[b] = true
				r.applyEffect(e, b, PhaseEnter, dt)
			case now && was:
				r.applyEffect(e, b, PhaseColliding, dt)
			case !now && was:
				delete(e.colliding, b)
				r.applyEffect(e, b, PhaseExit, dt)
			}
		}
	}
}

// applyEffect is the single dispatch point for every effect kind.
// Multipliers are always undone by dividing by the same factor so stacked
// effects unwind correctly.
func (r *Race) applyEffect(e *EffectObject, b *Body, phase EffectPhase, dt float64) {
	now := r.Now()
	cfg := e.Config()
	hit := phase == PhaseEnter && (cfg.SpeedGate == 0 || b.Speed() > cfg.SpeedGate)

	switch e.Kind {
	case EffectPothole:
		if !hit {
			return
		}
		b.ActualForce = vec.Scale(b.ActualForce, potholeForce)
		r.damage(b, now, damagedForever, potholeMaxSpeed, potholeAccel)
		r.obstacleHit(e, b)

	case EffectPuddle:
		switch {
		case hit:
			b.ActualForce = vec.Scale(b.ActualForce, puddleForce)
			b.AccelerationForward *= puddleAccel
			e.applied[b] = true
			r.obstacleHit(e, b)
		case phase == PhaseExit && e.applied[b]:
			b.AccelerationForward /= puddleAccel
			delete(e.applied, b)
		}

	case EffectSpikes:
		if !hit {
			return
		}
		b.ActualForce = vec.Scale(b.ActualForce, spikesForce)
		r.damage(b, now, spikesDuration, spikesMaxSpeed, spikesAccel)
		r.obstacleHit(e, b)

	case EffectOilSpill:
		if !hit {
			return
		}
		if b.Effects.Add(TagSlip, &TimedEffect{
			CanBeOverridden: true,
			Start:           now,
			Duration:        slipDuration,
			Finish:          func() { b.Adhesion /= oilAdhesion },
		}) {
			b.Adhesion *= oilAdhesion
		}
		r.obstacleHit(e, b)

	case EffectBananaPeel:
		if !hit {
			return
		}
		b.Effects.Add(TagSlip, &TimedEffect{
			CanBeOverridden: true,
			Start:           now,
			Duration:        slipDuration,
			Update:          func(dt float64) { b.Angle -= vec.Radians(bananaSpinDegrees) * dt },
		})
		r.obstacleHit(e, b)
		if b.IsPlayerControlled && r.Player != nil {
			r.Player.BananaHits++
			if r.Player.BananaHits >= bananaLimit {
				r.logger.Printf("%s hit %d banana peels", b.Name, r.Player.BananaHits)
				r.finishPlayer(ReasonBananaPeels)
			}
		}

	case EffectIce:
		switch phase {
		case PhaseEnter:
			b.Adhesion *= iceAdhesion
		case PhaseExit:
			b.Adhesion /= iceAdhesion
		}

	case EffectGravel:
		switch phase {
		case PhaseEnter:
			b.Adhesion *= gravelAdhesion
		case PhaseColliding:
			if b.Speed() > gravelJitterSpeed {
				b.Angle += vec.Radians((r.rand.Float64() - 0.5) * gravelJitter)
			}
		case PhaseExit:
			b.Adhesion /= gravelAdhesion
		}

	case EffectBoostStar:
		if !hit {
			return
		}
		if b.Effects.Add(TagBoost, &TimedEffect{
			CanBeOverridden: true,
			Start:           now,
			Duration:        boostDuration,
			Finish: func() {
				b.AccelerationForward /= boostAccelMult
				b.AccelerationBackward /= boostAccelMult
			},
		}) {
			b.AccelerationForward *= boostAccelMult
			b.AccelerationBackward *= boostAccelMult
		}
		r.perkPickup(e, b)

	case EffectWrench:
		if !hit {
			return
		}
		b.Effects.Finish(TagDamaged)
		r.perkPickup(e, b)

	case EffectIceCube:
		if !hit {
			return
		}
		if b.Effects.Add(TagFreeze, &TimedEffect{
			Start:           now,
			Duration:        freezeDuration,
			CanBeOverridden: true,
			Finish:          func() { b.Frozen = false },
		}) {
			b.Frozen = true
			b.ActualForce = vec.Zero
		}
		r.perkPickup(e, b)

	case EffectInvisible:
		if !hit {
			return
		}
		bodies := r.Bodies()
		if b.Effects.Add(TagInvisible, &TimedEffect{
			Start:    now,
			Duration: invisibleTime,
			Finish: func() {
				for _, other := range bodies {
					other.Invisible = false
				}
			},
		}) {
			for _, other := range bodies {
				other.Invisible = true
			}
		}
		r.perkPickup(e, b)

	case EffectNoCollision:
		if !hit {
			return
		}
		if b.Effects.Add(TagNoCollision, &TimedEffect{
			Start:    now,
			Duration: noCollisionTime,
			Finish:   func() { b.NoCollision = false },
		}) {
			b.NoCollision = true
		}
		r.perkPickup(e, b)
	}
}

// damage slows a body down under the damaged tag until the effect ends or
// a wrench repairs it
func (r *Race) damage(b *Body, now, duration time.Duration, maxSpeed, accel float64) {
	if b.Effects.Add(TagDamaged, &TimedEffect{
		CanBeOverridden: true,
		Start:           now,
		Duration:        duration,
		Finish: func() {
			b.MaxSpeedForward /= maxSpeed
			b.AccelerationForward /= accel
		},
	}) {
		b.MaxSpeedForward *= maxSpeed
		b.AccelerationForward *= accel
	}
}

func (r *Race) obstacleHit(e *EffectObject, b *Body) {
	r.cues.Play(CueObstacleHit, fmt.Sprintf("%s %s", b.Name, e.Kind))
}

func (r *Race) perkPickup(e *EffectObject, b *Body) {
	r.logger.Printf("%s picked up %s", b.Name, e.Kind)
	r.cues.Play(CuePerkPickup, fmt.Sprintf("%s %s", b.Name, e.Kind))
	r.queueRemoval(e, true)
}
