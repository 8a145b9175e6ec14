package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"topdownracer/game"
	"topdownracer/track"
)

func main() {
	trackFile := flag.String("track", "", "Track descriptor (JSON); the procedural oval when empty")
	seed := flag.Uint64("seed", 1, "Seed for effect placement and the roster draw")
	profiles := flag.String("profiles", "profiles", "Directory for slow tick profiles")
	flag.Parse()

	logger := log.New(os.Stderr, "[race] ", log.LstdFlags)

	t, err := loadTrack(*trackFile)
	if err != nil {
		log.Fatalf("Failed to load track: %v", err)
	}

	config := game.DefaultConfig()
	newRace := func() (*game.Race, error) {
		return game.NewRace(t, config, game.RaceOptions{
			Seed:   *seed,
			Logger: logger,
			Input:  game.NewKeyboardInput(),
		})
	}
	g, err := game.NewGame(config, newRace, game.NewProfiler(*profiles, logger), logger)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Top Down Racer - " + t.Name)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadTrack(filename string) (*track.Track, error) {
	if filename == "" {
		return track.NewOval(track.DefaultOvalOptions())
	}
	return track.LoadFile(filename)
}
