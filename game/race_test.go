package game

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"topdownracer/geom"
	"topdownracer/track"
	"topdownracer/vec"
)

func quietOptions(opts RaceOptions) RaceOptions {
	opts.Logger = log.New(io.Discard, "", 0)
	opts.Cues = NopCues{}
	return opts
}

func newOvalRace(t *testing.T, opts RaceOptions) *Race {
	t.Helper()
	oval, err := track.NewOval(track.DefaultOvalOptions())
	if err != nil {
		t.Fatalf("expected an oval, got err=%v", err)
	}
	r, err := NewRace(oval, DefaultConfig(), quietOptions(opts))
	if err != nil {
		t.Fatalf("expected a race, got err=%v", err)
	}
	return r
}

func TestNewRaceRejectsBadTracks(t *testing.T) {
	mask := geom.NewMask(10, 10, 10)
	starts := []track.StartPosition{{}}

	cases := []*track.Track{
		track.New("no path", "grass", 1, nil, mask, nil, starts),
		track.New("short", "grass", 1, straightTrack(2, 10), mask, nil, starts),
		track.New("no starts", "grass", 1, straightTrack(5, 10), mask, nil, nil),
	}
	for _, tr := range cases {
		_, err := NewRace(tr, DefaultConfig(), quietOptions(RaceOptions{}))
		var cfgErr *track.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected a configuration error for %q, got=%v", tr.Name, err)
		}
	}
}

func TestNewRaceFillsTheGrid(t *testing.T) {
	r := newOvalRace(t, RaceOptions{Seed: 3, SkipCountdown: true})

	if len(r.Opponents) != 4 || len(r.Bodies()) != 5 || r.Bodies()[0] != r.Player.Body {
		t.Fatalf("expected the player and four opponents, got=%d bodies", len(r.Bodies()))
	}
	// grass is difficulty 2
	want := 2*r.Config.ObstaclesPerDifficulty + r.Config.Perks
	if len(r.Effects) != want || r.Collisions.EffectCount() != want {
		t.Fatalf("expected %d effects, got=%d indexed=%d", want, len(r.Effects), r.Collisions.EffectCount())
	}
	start := r.Track.Path.Points[0].Point
	for _, e := range r.Effects {
		if vec.Distance(e.Center(), start) <= startClearance {
			t.Fatalf("expected the start to stay clear, got %s at %v", e.Kind, e.Center())
		}
	}
	for _, o := range r.Opponents {
		if o.Body.Position != o.Policy.Path.Points[0].Point {
			t.Fatalf("expected %s to start on its lane", o.Body.Name)
		}
	}
}

func TestCountdownHoldsTheRace(t *testing.T) {
	r := newOvalRace(t, RaceOptions{Input: NewScriptedInput(ControlAccelerate)})
	start := r.Player.Body.Position

	for i := 0; i < 60; i++ {
		r.Update(1.0 / 60)
	}
	if r.Now() != 0 || r.Ticks() != 0 || r.Player.Body.Position != start {
		t.Fatalf("expected nothing to move during the countdown, got now=%v ticks=%d", r.Now(), r.Ticks())
	}

	for i := 0; i < 4*60; i++ {
		r.Update(1.0 / 60)
	}
	if r.Countdown.Running() || r.Ticks() == 0 {
		t.Fatalf("expected the race to be running after the countdown")
	}
	if vec.Distance(r.Player.Body.Position, start) == 0 {
		t.Fatalf("expected the player to drive off")
	}
}

func TestCountdownCarriesOnlyTheTimePastGo(t *testing.T) {
	r := newOvalRace(t, RaceOptions{})

	for i := 0; i < 3; i++ {
		r.Update(1.0)
	}
	r.Update(1.25)
	if r.Countdown.Running() || r.Ticks() != 1 {
		t.Fatalf("expected the first race tick on the frame past GO, got ticks=%d", r.Ticks())
	}
	if r.Now() != 250*time.Millisecond {
		t.Fatalf("expected the clock to start at the time past GO, got=%v", r.Now())
	}
}

func TestRaceEndsAtTheTimeLimit(t *testing.T) {
	r := newOvalRace(t, RaceOptions{Seed: 11, SkipCountdown: true, TimeLimit: 2 * time.Second})
	starts := make([]vec.Vec2D, len(r.Opponents))
	for i, o := range r.Opponents {
		starts[i] = o.Body.Position
	}

	for i := 0; i < 1000 && !r.Finished(); i++ {
		r.Update(1.0 / 60)
	}
	outcome, ok := r.Outcome()
	if !ok || outcome.Reason != ReasonTimeout {
		t.Fatalf("expected the race to time out, got=%+v", outcome)
	}
	if outcome.Duration < 2*time.Second || r.Ticks() < 115 || r.Ticks() > 125 {
		t.Fatalf("expected about two seconds of racing, got duration=%v ticks=%d", outcome.Duration, r.Ticks())
	}
	if len(outcome.Standings) != 5 || outcome.PlayerPlace() == 0 || outcome.ID == "" {
		t.Fatalf("expected standings for every car, got=%+v", outcome)
	}
	if outcome.PerfectRun || r.Player.Body.Progress.Finished {
		t.Fatalf("expected a timeout not to count as a finish")
	}

	moved := 0
	for i, o := range r.Opponents {
		if vec.Distance(o.Body.Position, starts[i]) > 10 {
			moved++
		}
	}
	if moved == 0 {
		t.Fatalf("expected the opponents to drive")
	}

	ticks := r.Ticks()
	r.Update(1.0 / 60)
	if r.Ticks() != ticks {
		t.Fatalf("expected a finished race to stand still")
	}
}

func TestSeedReplaysPlacement(t *testing.T) {
	a := newOvalRace(t, RaceOptions{Seed: 5, SkipCountdown: true})
	b := newOvalRace(t, RaceOptions{Seed: 5, SkipCountdown: true})
	for i := range a.Effects {
		if a.Effects[i].Kind != b.Effects[i].Kind || a.Effects[i].Center() != b.Effects[i].Center() {
			t.Fatalf("expected the same seed to place the same effects, differed at %d", i)
		}
	}
}

func TestSnowRaceLaysIce(t *testing.T) {
	r := newTestRace(t, "snow", bareConfig(), NopCues{})
	if len(r.Effects) != 1 || r.Effects[0].Kind != EffectIce {
		t.Fatalf("expected one ice patch, got=%d effects", len(r.Effects))
	}
	if r.Effects[0].Center() != r.Track.Path.Points[4].Point {
		t.Fatalf("expected the ice mid lap, got=%v", r.Effects[0].Center())
	}
	for _, o := range r.Opponents {
		if o.Policy.AvoidObstacles == o.Body.Ghost {
			t.Fatalf("expected %s to avoid obstacles unless a ghost", o.Body.Name)
		}
	}
}
