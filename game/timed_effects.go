package game

import (
	"slices"
	"time"

	"golang.org/x/exp/maps"
)

// EffectTag keys the timed effects of a body. One effect per tag is active.
type EffectTag string

const (
	TagBoost       EffectTag = "boost"
	TagSlip        EffectTag = "slip"
	TagDamaged     EffectTag = "damaged"
	TagNitro       EffectTag = "nitro"
	TagFreeze      EffectTag = "freeze"
	TagInvisible   EffectTag = "invisible"
	TagNoCollision EffectTag = "no-collision"
)

// Forever effects never expire on their own and end only through Finish
const Forever time.Duration = -1

// TimedEffect is a duration bound modifier on a body. Update runs every tick
// while the effect is active and Finish runs exactly once when it ends.
type TimedEffect struct {
	CanBeOverridden bool
	Start           time.Duration
	Duration        time.Duration
	Update          func(dt float64)
	Finish          func()
}

func (e *TimedEffect) expired(now time.Duration) bool {
	return e.Duration != Forever && now > e.Start+e.Duration
}

func (e *TimedEffect) finish() {
	if e.Finish != nil {
		e.Finish()
	}
}

// TimedEffects tracks the active effects of one body
type TimedEffects struct {
	active map[EffectTag]*TimedEffect
}

// NewTimedEffects creates an empty effect driver
func NewTimedEffects() *TimedEffects {
	return &TimedEffects{active: make(map[EffectTag]*TimedEffect)}
}

// Add installs effect under tag. A running effect that cannot be overridden
// wins and the new one is dropped; an overridable one is finished first.
// Reports whether effect was installed.
func (t *TimedEffects) Add(tag EffectTag, effect *TimedEffect) bool {
	if running, ok := t.active[tag]; ok {
		if !running.CanBeOverridden {
			return false
		}
		delete(t.active, tag)
		running.finish()
	}
	t.active[tag] = effect
	return true
}

// Update advances every active effect and finishes the expired ones. Tags
// are visited in a fixed order so replays stay deterministic.
func (t *TimedEffects) Update(now time.Duration, dt float64) {
	tags := maps.Keys(t.active)
	slices.Sort(tags)
	for _, tag := range tags {
		effect, ok := t.active[tag]
		if !ok {
			continue
		}
		if effect.expired(now) {
			delete(t.active, tag)
			effect.finish()
			continue
		}
		if effect.Update != nil {
			effect.Update(dt)
		}
	}
}

// Finish ends the effect under tag now. Reports whether one was active.
func (t *TimedEffects) Finish(tag EffectTag) bool {
	effect, ok := t.active[tag]
	if !ok {
		return false
	}
	delete(t.active, tag)
	effect.finish()
	return true
}

// Active reports whether an effect is running under tag
func (t *TimedEffects) Active(tag EffectTag) bool {
	_, ok := t.active[tag]
	return ok
}

// Tags lists the active tags in order
func (t *TimedEffects) Tags() []EffectTag {
	tags := maps.Keys(t.active)
	slices.Sort(tags)
	return tags
}

// FinishAll ends every active effect
func (t *TimedEffects) FinishAll() {
	for _, tag := range t.Tags() {
		t.Finish(tag)
	}
}
