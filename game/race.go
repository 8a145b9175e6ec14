package game

import (
	"fmt"
	"log"
	"os"
	"time"

	"topdownracer/track"
	"topdownracer/vec"
)

// RaceOptions are the collaborators and knobs of one race
type RaceOptions struct {
	// Seed drives effect placement, obstacle drops and the ghost draw
	Seed uint64

	// Logger defaults to stderr with a "[race] " prefix
	Logger *log.Logger

	// Cues defaults to logging every cue
	Cues Cues

	// Input drives the player; defaults to a car nobody touches
	Input InputSource

	// SkipCountdown starts the clock right away
	SkipCountdown bool

	// TimeLimit ends the race with ReasonTimeout once the race clock passes
	// it; zero means no limit
	TimeLimit time.Duration
}

// Race owns every piece of one race and runs its tick
type Race struct {
	Track      *track.Track
	Config     Config
	Timeline   *Timeline
	Countdown  *Countdown
	Integrator *Integrator
	Collisions *CollisionManager
	World      *World
	Scoreboard *Scoreboard

	Player    *Player
	Opponents []*Opponent
	Effects   []*EffectObject

	rand       *Rand
	logger     *log.Logger
	cues       Cues
	candidates []vec.Vec2D
	removals   []removal
	outcome    *RaceOutcome
	nextID     int
	ticks      int
}

// removal is a queued effect removal, drained once per tick after effect
// contacts so nothing is removed while the effect list is being walked
type removal struct {
	effect  *EffectObject
	respawn bool
}

// NewRace puts the player and the roster of the track's map on the grid and
// scatters the initial effects
func NewRace(t *track.Track, cfg Config, opts RaceOptions) (*Race, error) {
	if t == nil || t.Path == nil || t.Path.Len() < 3 {
		name := ""
		if t != nil {
			name = t.Name
		}
		return nil, &track.ConfigurationError{Op: "new race", Name: name, Err: fmt.Errorf("track needs a path of at least 3 checkpoints")}
	}
	if len(t.Start) == 0 {
		return nil, &track.ConfigurationError{Op: "new race", Name: t.Name, Err: fmt.Errorf("track has no start positions")}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[race] ", log.LstdFlags)
	}
	cues := opts.Cues
	if cues == nil {
		cues = LogCues{Logger: logger}
	}
	input := opts.Input
	if input == nil {
		input = NewScriptedInput()
	}

	cfg = cfg.ForTrack(t)
	world := NewWorld(cfg)
	timeline := NewTimeline()
	r := &Race{
		Track:      t,
		Config:     cfg,
		Timeline:   timeline,
		Integrator: NewIntegrator(),
		Collisions: NewCollisionManager(t, world),
		World:      world,
		Scoreboard: NewScoreboard(t.Path, cfg.Laps),
		rand:       NewRand(opts.Seed),
		logger:     logger,
		cues:       cues,
		candidates: PlacementCandidates(t.Path),
	}
	r.Countdown = NewCountdown(timeline, func(label string) {
		r.cues.Play(CueCountdown, label)
	})

	playerBody := NewBody("Player", VehicleTypePlayer, t.Start[0], t.Traction)
	r.Player = NewPlayer(playerBody, input)
	world.RegisterBody(playerBody)

	for _, entry := range GetRoster(t.Map, r.rand.Float64()) {
		opponent := r.newOpponent(entry)
		r.Opponents = append(r.Opponents, opponent)
		world.RegisterBody(opponent.Body)
	}

	r.placeInitialEffects()

	if opts.TimeLimit > 0 {
		timeline.After(opts.TimeLimit, func() {
			r.logger.Printf("time limit of %v reached", opts.TimeLimit)
			r.finishPlayer(ReasonTimeout)
		})
	}
	if !opts.SkipCountdown {
		r.Countdown.Start()
	}
	r.logger.Printf("race on %s (%s, difficulty %d) with %d opponents", t.Name, t.Map, t.Difficulty, len(r.Opponents))
	return r, nil
}

func (r *Race) newOpponent(entry RosterEntry) *Opponent {
	path := track.NewEnemyPath(r.Track.Path, entry.LaneOffset)
	slot := r.Track.Start[0]
	if entry.StartSlot < len(r.Track.Start) {
		slot = r.Track.Start[entry.StartSlot]
	}
	start := track.StartPosition{Position: path.Points[0].Point, Angle: slot.Angle}

	body := NewBody(entry.Name, VehicleTypeOpponent, start, r.Track.Traction)
	body.Ghost = entry.Ghost
	body.DefaultAccelerationForward += entry.ExtraAccel
	body.AccelerationForward += entry.ExtraAccel

	return NewOpponent(body, NewPolicy(entry.Tier, path, entry.ShouldAvoid && !entry.Ghost))
}

// Now is the race clock
func (r *Race) Now() time.Duration {
	return r.Timeline.Now()
}

// Bodies lists the player first, then the opponents in roster order
func (r *Race) Bodies() []*Body {
	bodies := make([]*Body, 0, len(r.Opponents)+1)
	if r.Player != nil {
		bodies = append(bodies, r.Player.Body)
	}
	for _, o := range r.Opponents {
		bodies = append(bodies, o.Body)
	}
	return bodies
}

// Ticks is the number of simulated ticks
func (r *Race) Ticks() int {
	return r.ticks
}

// Finished reports whether the player's race is over
func (r *Race) Finished() bool {
	return r.outcome != nil
}

// Outcome returns the result once the player's race is over
func (r *Race) Outcome() (*RaceOutcome, bool) {
	return r.outcome, r.outcome != nil
}

// Update runs one tick of dt seconds. Nothing moves while the clock is
// paused or once the race is over.
func (r *Race) Update(dt float64) {
	r.Timeline.Advance(r.Countdown.Update(dt))
	if r.Timeline.Paused() || r.outcome != nil {
		return
	}
	r.ticks++
	now := r.Now()

	if r.Track.Update(now) {
		state := "closed"
		if r.Track.ShortcutsOpen() {
			state = "open"
		}
		r.cues.Play(CueShortcutSwitch, state)
	}

	if pb := r.Player.Body; !pb.Progress.Finished {
		r.Player.Update(r, dt)
		r.Integrator.Step(pb, dt, now)
	}
	for _, o := range r.Opponents {
		if o.Body.Progress.Finished {
			continue
		}
		o.Update(r, dt)
		r.Integrator.Step(o.Body, dt, now)
	}

	bodies := r.Bodies()
	for _, b := range bodies {
		b.Update(now)
	}

	for _, pair := range r.Collisions.VehicleCollisions() {
		if pair[0].Progress.Finished || pair[1].Progress.Finished {
			continue
		}
		r.Integrator.ResolveVehicleCollision(pair[0], pair[1])
	}
	for _, b := range bodies {
		if b.Progress.Finished {
			continue
		}
		cellPos, hit := r.Collisions.TrackCollision(b)
		if !hit {
			continue
		}
		if r.Integrator.ResolveTrackCollision(b, cellPos, r.Collisions.Mask(), now) && b.IsPlayerControlled {
			r.cues.Play(CueWallHit, b.Name)
		}
	}

	r.updateEffectContacts(dt)
	for _, b := range bodies {
		nitro := b.Nitro() == NitroActive
		b.Effects.Update(now, dt)
		if nitro && b.Nitro() != NitroActive && b.IsPlayerControlled {
			r.cues.Play(CueNitroOff, b.Name)
		}
	}

	if r.outcome == nil {
		pb := r.Player.Body
		if r.Scoreboard.Update(pb, now, dt) {
			r.logger.Printf("%s completed lap %d of %d", pb.Name, pb.Progress.Lap, r.Config.Laps)
			r.cues.Play(CueLap, pb.Name)
			if pb.Progress.Finished {
				r.finishPlayer(ReasonFinished)
			}
		}
	}

	r.drainRemovals()
	for _, b := range bodies {
		r.World.UpdateBodyCell(b)
	}
}

// queueRemoval takes e off the track at the end of the tick. Respawned
// effects are replaced by a random one of the same category.
func (r *Race) queueRemoval(e *EffectObject, respawn bool) {
	if e.removed {
		return
	}
	e.removed = true
	r.removals = append(r.removals, removal{effect: e, respawn: respawn})
}

func (r *Race) drainRemovals() {
	if len(r.removals) == 0 {
		return
	}
	queued := r.removals
	r.removals = nil

	gone := make(map[*EffectObject]bool, len(queued))
	for _, q := range queued {
		gone[q.effect] = true
		r.Collisions.Remove(q.effect)
	}
	kept := r.Effects[:0]
	for _, e := range r.Effects {
		if !gone[e] {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(r.Effects); i++ {
		r.Effects[i] = nil
	}
	r.Effects = kept

	for _, q := range queued {
		if q.respawn {
			r.spawnRandom(q.effect.Config().Category)
		}
	}
}

// finishPlayer ends the player's race and freezes the outcome. Only the
// first call counts.
func (r *Race) finishPlayer(reason OutcomeReason) {
	if r.outcome != nil {
		return
	}
	now := r.Now()
	pb := r.Player.Body

	standings := make([]Standing, 0, len(r.Opponents)+1)
	standings = append(standings, standingOf(pb, r.Scoreboard.Checkpoint()))
	for _, o := range r.Opponents {
		standings = append(standings, standingOf(o.Body, o.Policy.Path.VisitedCheckpoints))
	}
	r.outcome = newRaceOutcome(r.Track.Name, reason, standings, r.Player.BananaHits, now)

	r.logger.Printf("%s race over (%s) after %v, place %d", pb.Name, reason, now, r.outcome.PlayerPlace())
	r.cues.Play(CueFinish, reason.String())
}

func standingOf(b *Body, checkpoints int) Standing {
	return Standing{
		Name:        b.Name,
		Player:      b.IsPlayerControlled,
		Finished:    b.Progress.Finished,
		FinishTime:  b.Progress.FinishTime,
		Laps:        b.Progress.Lap,
		BestLap:     b.Progress.BestLap,
		Checkpoints: checkpoints,
	}
}
