package game

import (
	"testing"
	"time"
)

func TestSortStandings(t *testing.T) {
	standings := []Standing{
		{Name: "far behind", Laps: 0, Checkpoints: 40},
		{Name: "slow finisher", Finished: true, FinishTime: 90 * time.Second, Laps: 3},
		{Name: "early in lap two", Laps: 2, Checkpoints: 3},
		{Name: "fast finisher", Finished: true, FinishTime: 80 * time.Second, Laps: 3},
		{Name: "late in lap two", Laps: 2, Checkpoints: 10},
	}
	sortStandings(standings)

	want := []string{"fast finisher", "slow finisher", "late in lap two", "early in lap two", "far behind"}
	for i, name := range want {
		if standings[i].Name != name {
			t.Fatalf("expected %q at %d, got=%q", name, i+1, standings[i].Name)
		}
	}
}

func TestNewRaceOutcome(t *testing.T) {
	standings := []Standing{
		{Name: "Bob", Finished: true, FinishTime: time.Minute},
		{Name: "Player", Player: true, Finished: true, FinishTime: 50 * time.Second},
	}
	o := newRaceOutcome("oval", ReasonFinished, standings, 0, 50*time.Second)
	if !o.PerfectRun || o.PlayerPlace() != 1 || o.Winner().Name != "Player" {
		t.Fatalf("expected a perfect win, got=%+v", o)
	}
	if o.ID == "" || o.Reason.String() != "finished" {
		t.Fatalf("expected an identified finished outcome, got id=%q reason=%s", o.ID, o.Reason)
	}

	again := newRaceOutcome("oval", ReasonFinished, nil, 1, 0)
	if again.PerfectRun || again.PlayerPlace() != 0 || again.Winner().Name != "" {
		t.Fatalf("expected an imperfect empty outcome, got=%+v", again)
	}
	if again.ID == o.ID {
		t.Fatalf("expected every outcome to get its own id")
	}
}
