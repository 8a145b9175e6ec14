package game

import (
	"math"
	"time"

	"topdownracer/track"
)

// Config holds race configuration constants
type Config struct {
	// CellSize is the size of each broadphase cell in world units
	CellSize float64

	// WorldMinX is the minimum X coordinate of the world
	WorldMinX float64

	// WorldMinY is the minimum Y coordinate of the world
	WorldMinY float64

	// WorldWidth is the total width of the race area in world units
	WorldWidth float64

	// WorldHeight is the total height of the race area in world units
	WorldHeight float64

	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// Laps needed to finish the race
	Laps int

	// ObstaclesPerDifficulty scales the number of obstacles placed at start
	ObstaclesPerDifficulty int

	// Perks placed at start; one respawns after each pickup
	Perks int

	// TickBudget is the simulation time after which a tick counts as slow
	TickBudget time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		CellSize:               128.0,
		WorldMinX:              0,
		WorldMinY:              0,
		WorldWidth:             2048.0,
		WorldHeight:            2048.0,
		ScreenWidth:            1024,
		ScreenHeight:           768,
		Laps:                   3,
		ObstaclesPerDifficulty: 3,
		Perks:                  2,
		TickBudget:             8 * time.Millisecond,
	}
}

// ForTrack sizes the world to cover the track mask
func (c Config) ForTrack(t *track.Track) Config {
	mask := t.Mask()
	c.WorldMinX = 0
	c.WorldMinY = 0
	c.WorldWidth = math.Max(float64(mask.Width())*mask.Scale, c.CellSize)
	c.WorldHeight = math.Max(float64(mask.Height())*mask.Scale, c.CellSize)
	return c
}

// CellCountX returns the number of cells in the X direction
func (c Config) CellCountX() int {
	return int(math.Ceil(c.WorldWidth / c.CellSize))
}

// CellCountY returns the number of cells in the Y direction
func (c Config) CellCountY() int {
	return int(math.Ceil(c.WorldHeight / c.CellSize))
}
