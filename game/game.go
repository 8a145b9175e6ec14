package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cameraFollow is the share of the distance to the player the camera covers
// each frame
const cameraFollow = 0.1

// RaceFactory builds a fresh race; the game calls it on start and restart
type RaceFactory func() (*Race, error)

// Game runs a race inside an ebiten window
type Game struct {
	race     *Race
	newRace  RaceFactory
	renderer *Renderer
	camera   *Camera
	config   Config
	debug    DebugState
	logger   *log.Logger

	// Performance profiling
	profiler *Profiler

	menuOpen bool

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a game and its first race
func NewGame(config Config, newRace RaceFactory, profiler *Profiler, logger *log.Logger) (*Game, error) {
	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight))
	g := &Game{
		newRace:        newRace,
		renderer:       NewRenderer(camera),
		camera:         camera,
		config:         config,
		logger:         logger,
		profiler:       profiler,
		lastUpdateTime: time.Now(),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart throws the current race away and builds a new one
func (g *Game) restart() error {
	race, err := g.newRace()
	if err != nil {
		return fmt.Errorf("new race: %w", err)
	}
	g.race = race
	g.menuOpen = false
	g.camera.X = race.Player.Body.Position.X
	g.camera.Y = race.Player.Body.Position.Y
	return nil
}

// Race is the race being played
func (g *Game) Race() *Race {
	return g.race
}

// Update updates the game state
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	g.handleDebugKeys()

	timeline := g.race.Timeline
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.menuOpen = !g.menuOpen
		if g.menuOpen {
			timeline.Pause(PauseMenu)
		} else {
			timeline.Resume(PauseMenu)
		}
	}
	if ebiten.IsFocused() {
		timeline.Resume(PauseWindowChange)
	} else {
		timeline.Pause(PauseWindowChange)
	}

	if g.race.Finished() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}

	start := time.Now()
	g.race.Update(deltaTime)
	if g.profiler != nil {
		g.profiler.ObserveTick(time.Since(start), g.config.TickBudget)
	}

	g.camera.Follow(g.race.Player.Body.Position, cameraFollow)
	return nil
}

// handleDebugKeys toggles the overlays: F1 paths, F2 hidden surfaces,
// F3 grid, F4 opponent decisions
func (g *Game) handleDebugKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.debug.ShowPaths = !g.debug.ShowPaths
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.debug.ShowHidden = !g.debug.ShowHidden
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.debug.ShowGrid = !g.debug.ShowGrid
	case inpututil.IsKeyJustPressed(ebiten.KeyF4):
		g.debug.ShowActions = !g.debug.ShowActions
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 40, 255})
	g.renderer.Render(screen, g.race, &g.debug)
	if g.menuOpen {
		ebitenutil.DebugPrintAt(screen, "PAUSED (Esc to resume)", g.config.ScreenWidth/2-70, g.config.ScreenHeight/2+40)
	}
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
