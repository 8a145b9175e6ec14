package game

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OutcomeReason is why the player's race ended
type OutcomeReason int

const (
	ReasonFinished OutcomeReason = iota
	ReasonBananaPeels
	ReasonTimeout
)

func (r OutcomeReason) String() string {
	switch r {
	case ReasonFinished:
		return "finished"
	case ReasonBananaPeels:
		return "banana-peels"
	case ReasonTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Standing is one car's line in the results
type Standing struct {
	Name        string
	Player      bool
	Finished    bool
	FinishTime  time.Duration
	Laps        int
	BestLap     time.Duration
	Checkpoints int // Progress into the current lap
}

// RaceOutcome is the result handed to whatever presents the race end
type RaceOutcome struct {
	ID             string
	Track          string
	Reason         OutcomeReason
	Standings      []Standing
	BananaPeelHits int
	// PerfectRun is a finished race without a single banana peel
	PerfectRun bool
	Duration   time.Duration
}

// Winner is the first standing, empty when nobody raced
func (o *RaceOutcome) Winner() Standing {
	if len(o.Standings) == 0 {
		return Standing{}
	}
	return o.Standings[0]
}

// PlayerPlace is the 1-based position of the player, 0 without a player
func (o *RaceOutcome) PlayerPlace() int {
	for i, s := range o.Standings {
		if s.Player {
			return i + 1
		}
	}
	return 0
}

func newRaceOutcome(trackName string, reason OutcomeReason, standings []Standing, bananaHits int, duration time.Duration) *RaceOutcome {
	sortStandings(standings)
	return &RaceOutcome{
		ID:             uuid.NewString(),
		Track:          trackName,
		Reason:         reason,
		Standings:      standings,
		BananaPeelHits: bananaHits,
		PerfectRun:     reason == ReasonFinished && bananaHits == 0,
		Duration:       duration,
	}
}

// sortStandings puts finished cars first by finish time, then the rest by
// laps and checkpoints covered
func sortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Finished != b.Finished {
			return a.Finished
		}
		if a.Finished {
			return a.FinishTime < b.FinishTime
		}
		if a.Laps != b.Laps {
			return a.Laps > b.Laps
		}
		return a.Checkpoints > b.Checkpoints
	})
}
