package game

import (
	"math"
	"time"

	"topdownracer/track"
	"topdownracer/vec"
)

const (
	checkpointThreshold = 60.0
	// The last checkpoint must be crossed close to the line itself
	finishPointRadius = 50.0
	finishGateWidth   = 2.0
)

// Progress is the lap bookkeeping of one car
type Progress struct {
	Lap        int
	BestLap    time.Duration // Zero until a lap is completed
	LapStart   time.Duration
	Finished   bool
	FinishTime time.Duration
}

// CompleteLap counts a lap ending at now and keeps the best lap time
func (p *Progress) CompleteLap(now time.Duration) {
	lapTime := now - p.LapStart
	if p.BestLap == 0 || lapTime < p.BestLap {
		p.BestLap = lapTime
	}
	p.Lap++
	p.LapStart = now
}

// Finish marks the car as done at now. Later calls are ignored.
func (p *Progress) Finish(now time.Duration) {
	if p.Finished {
		return
	}
	p.Finished = true
	p.FinishTime = now
}

// Scoreboard follows the player over the track checkpoints
type Scoreboard struct {
	path       *track.TrackPath
	laps       int
	checkpoint int
}

// NewScoreboard creates a scoreboard for a race of laps laps
func NewScoreboard(path *track.TrackPath, laps int) *Scoreboard {
	return &Scoreboard{path: path, laps: laps, checkpoint: 1}
}

// Checkpoint is the index of the next checkpoint to cross
func (s *Scoreboard) Checkpoint() int {
	return s.checkpoint
}

// Update advances the player's progress. The last checkpoint before the
// finish line only counts when crossed close to the point itself; the
// tolerance grows with the distance covered this tick. Reports whether a
// lap was completed.
func (s *Scoreboard) Update(b *Body, now time.Duration, dt float64) bool {
	total := s.path.Len()
	if total < 3 || b.Progress.Finished {
		return false
	}
	last := total - 2
	d := s.path.DistanceToPoint(b.Position, s.checkpoint)

	switch {
	case math.IsNaN(d):
		s.checkpoint++
	case s.checkpoint != last && d < checkpointThreshold:
		s.checkpoint++
	case s.checkpoint == last && d < finishGateWidth+b.Speed()*dt &&
		vec.Distance(b.Position, s.path.Points[s.checkpoint].Point) < finishPointRadius:
		s.checkpoint++
	}

	if s.checkpoint < total-1 {
		return false
	}
	s.checkpoint = 1
	b.Progress.CompleteLap(now)
	if b.Progress.Lap >= s.laps {
		b.Progress.Finish(now)
	}
	return true
}
