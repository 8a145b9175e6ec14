package game

import (
	"testing"
	"time"

	"topdownracer/vec"
)

func TestScoreboardCountsLaps(t *testing.T) {
	s := NewScoreboard(straightTrack(5, 100), 2)
	b := testBody(0, 0)

	for _, x := range []float64{100, 200} {
		b.Position = vec.New(x, 0)
		if s.Update(b, time.Second, 1.0/60) {
			t.Fatalf("expected no lap at x=%f", x)
		}
	}
	if s.Checkpoint() != 3 {
		t.Fatalf("expected checkpoint 3, got=%d", s.Checkpoint())
	}

	b.Position = vec.New(300, 0)
	if !s.Update(b, 30*time.Second, 1.0/60) {
		t.Fatalf("expected a lap on the last checkpoint")
	}
	if s.Checkpoint() != 1 || b.Progress.Lap != 1 || b.Progress.BestLap != 30*time.Second {
		t.Fatalf("expected lap 1 in 30s, got checkpoint=%d progress=%+v", s.Checkpoint(), b.Progress)
	}
	if b.Progress.Finished {
		t.Fatalf("expected the race to go on after one of two laps")
	}

	for _, x := range []float64{100, 200, 300} {
		b.Position = vec.New(x, 0)
		s.Update(b, 55*time.Second, 1.0/60)
	}
	if !b.Progress.Finished || b.Progress.FinishTime != 55*time.Second {
		t.Fatalf("expected the car to finish at 55s, got=%+v", b.Progress)
	}
	if b.Progress.BestLap != 25*time.Second {
		t.Fatalf("expected the faster second lap to be the best, got=%v", b.Progress.BestLap)
	}
	if s.Update(b, time.Minute, 1.0/60) {
		t.Fatalf("expected a finished car to be left alone")
	}
}

func TestScoreboardFinishGateGrowsWithSpeed(t *testing.T) {
	s := NewScoreboard(straightTrack(5, 100), 3)
	b := testBody(100, 0)
	s.Update(b, 0, 1.0/60)
	b.Position = vec.New(200, 0)
	s.Update(b, 0, 1.0/60)

	// 10 short of the line is inside the wide checkpoint threshold but not the
	// finish gate of a standing car
	b.Position = vec.New(290, 0)
	if s.Update(b, 0, 1.0/60) || s.Checkpoint() != 3 {
		t.Fatalf("expected the finish gate to need a closer pass, got checkpoint=%d", s.Checkpoint())
	}

	b.ActualForce = vec.New(600, 0)
	if !s.Update(b, 0, 1.0/60) {
		t.Fatalf("expected a fast car to cross the gate within one tick of travel")
	}
}

func TestProgressKeepsFirstFinish(t *testing.T) {
	var p Progress
	p.Finish(10 * time.Second)
	p.Finish(20 * time.Second)
	if p.FinishTime != 10*time.Second {
		t.Fatalf("expected the first finish to stick, got=%v", p.FinishTime)
	}
}
