package track

import (
	"time"

	"topdownracer/geom"
	"topdownracer/vec"
)

const (
	shortcutSwitchInterval     = 5000 * time.Millisecond
	shortcutTransitionDuration = 1000 * time.Millisecond
)

// Difficulty ranks maps from 1 to 3
type Difficulty int

// DifficultyForMap maps a surface name to its difficulty. Unknown maps are 1.
func DifficultyForMap(name string) Difficulty {
	switch name {
	case "gravel":
		return 1
	case "grass":
		return 2
	case "snow":
		return 3
	default:
		return 1
	}
}

// StartPosition is a grid slot
type StartPosition struct {
	Position vec.Vec2D
	Angle    float64
}

// Track bundles the checkpoint path, occupancy masks and per-map
// parameters of one race
type Track struct {
	Name       string
	Map        string
	Traction   float64
	Difficulty Difficulty
	IsRainy    bool
	Start      []StartPosition
	Path       *TrackPath

	masks      []*geom.Mask
	current    int
	lastSwitch time.Duration
}

// New builds a track. shortcut may be nil for tracks without togglable
// shortcuts. All start slots share the first checkpoint position and keep
// their own angle.
func New(name, mapName string, traction float64, path *TrackPath, base, shortcut *geom.Mask, starts []StartPosition) *Track {
	masks := []*geom.Mask{base}
	if shortcut != nil {
		masks = append(masks, shortcut)
	}
	slots := make([]StartPosition, len(starts))
	for i, s := range starts {
		slots[i] = StartPosition{Angle: s.Angle, Position: s.Position}
		if path != nil && path.Len() > 0 {
			slots[i].Position = path.Points[0].Point
		}
	}
	return &Track{
		Name:       name,
		Map:        mapName,
		Traction:   traction,
		Difficulty: DifficultyForMap(mapName),
		Start:      slots,
		Path:       path,
		masks:      masks,
		lastSwitch: -time.Millisecond,
	}
}

// Mask returns the occupancy grid currently in effect
func (t *Track) Mask() *geom.Mask {
	return t.masks[t.current]
}

// ShortcutsOpen reports whether the shortcut mask is active
func (t *Track) ShortcutsOpen() bool {
	return t.current == 1
}

// HasShortcuts reports whether the track toggles between two masks
func (t *Track) HasShortcuts() bool {
	return len(t.masks) > 1
}

// Update toggles the mask once the switch interval elapsed. It reports
// whether a switch happened.
func (t *Track) Update(now time.Duration) bool {
	if now <= t.lastSwitch+shortcutSwitchInterval {
		return false
	}
	prev := t.current
	t.current = (t.current + 1) % len(t.masks)
	t.lastSwitch = now
	return prev != t.current
}

// TransitionFraction goes from 0 to 1 during the last second before the
// next mask switch and is 0 otherwise
func (t *Track) TransitionFraction(now time.Duration) float64 {
	elapsed := now - t.lastSwitch - shortcutSwitchInterval + shortcutTransitionDuration
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed) / float64(shortcutTransitionDuration)
}
