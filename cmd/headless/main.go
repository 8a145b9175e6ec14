package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ttacon/chalk"

	"topdownracer/game"
	"topdownracer/track"
)

var controlNames = map[string]game.Control{
	"accelerate": game.ControlAccelerate,
	"brake":      game.ControlBrake,
	"left":       game.ControlLeft,
	"right":      game.ControlRight,
	"nitro":      game.ControlNitro,
	"horn":       game.ControlHorn,
	"drop":       game.ControlDropObstacle,
}

func main() {
	trackFile := flag.String("track", "", "Track descriptor (JSON); the procedural oval when empty")
	seed := flag.Uint64("seed", 1, "Seed for effect placement and the roster draw")
	laps := flag.Int("laps", 3, "Laps to finish")
	limit := flag.Duration("limit", 3*time.Minute, "Race clock limit")
	tps := flag.Int("tps", 60, "Simulated ticks per second")
	hold := flag.String("hold", "", "Comma separated player controls held for the whole race (accelerate, brake, left, right, nitro, horn, drop)")
	quiet := flag.Bool("quiet", false, "Only print the standings")
	flag.Parse()

	if *limit <= 0 || *tps <= 0 {
		log.Fatalf("limit and tps must be positive")
	}

	var held []game.Control
	for _, name := range strings.Split(*hold, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, ok := controlNames[name]
		if !ok {
			log.Fatalf("Unknown control %q", name)
		}
		held = append(held, c)
	}

	var out io.Writer = os.Stderr
	if *quiet {
		out = io.Discard
	}
	logger := log.New(out, "[race] ", log.LstdFlags)

	t, err := loadTrack(*trackFile)
	if err != nil {
		log.Fatalf("Failed to load track: %v", err)
	}

	config := game.DefaultConfig()
	config.Laps = *laps
	race, err := game.NewRace(t, config, game.RaceOptions{
		Seed:          *seed,
		Logger:        logger,
		Input:         game.NewScriptedInput(held...),
		SkipCountdown: true,
		TimeLimit:     *limit,
	})
	if err != nil {
		log.Fatalf("Failed to create race: %v", err)
	}

	dt := 1 / float64(*tps)
	for !race.Finished() {
		race.Update(dt)
	}

	outcome, _ := race.Outcome()
	printOutcome(outcome, race.Ticks())
}

func loadTrack(filename string) (*track.Track, error) {
	if filename == "" {
		return track.NewOval(track.DefaultOvalOptions())
	}
	return track.LoadFile(filename)
}

func printOutcome(outcome *game.RaceOutcome, ticks int) {
	fmt.Printf("Race %s on %s: %s after %v (%d ticks)\n", outcome.ID, outcome.Track, outcome.Reason, outcome.Duration, ticks)
	for i, s := range outcome.Standings {
		status := chalk.Red.Color("DNF")
		if s.Finished {
			status = chalk.Green.Color(s.FinishTime.String())
		}
		name := s.Name
		if s.Player {
			name = chalk.Bold.TextStyle(name)
		}
		fmt.Printf("%d. %-20s laps %d  best %-10v %s\n", i+1, name, s.Laps, s.BestLap, status)
	}
	if outcome.PerfectRun {
		fmt.Println(chalk.Yellow.Color("Perfect run, no banana peels"))
	} else if outcome.BananaPeelHits > 0 {
		fmt.Printf("Banana peels hit: %d\n", outcome.BananaPeelHits)
	}
}
