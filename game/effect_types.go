package game

import (
	"fmt"
	"image/color"

	"topdownracer/track"
)

// EffectKind identifies an obstacle, perk or surface patch on the track
type EffectKind int

const (
	EffectPothole EffectKind = iota
	EffectPuddle
	EffectBananaPeel
	EffectSpikes
	EffectOilSpill
	EffectIce
	EffectGravel
	EffectBoostStar
	EffectWrench
	EffectIceCube
	EffectInvisible
	EffectNoCollision
	EffectKindCount // Total number of effect kinds
)

// EffectCategory groups effect kinds by how they are placed
type EffectCategory int

const (
	CategoryObstacle EffectCategory = iota
	CategoryPerk
	CategorySurface // Large invisible areas added per map
)

// EffectConfig holds configuration for each effect kind
type EffectConfig struct {
	Kind      EffectKind
	Name      string
	Category  EffectCategory
	Level     int     // Lowest track difficulty the kind appears on, 0 for surfaces
	Width     float64 // Collider size
	Height    float64
	SpeedGate float64 // Minimum speed for the hit to count, 0 for always
	Hidden    bool    // Not drawn
	Color     color.RGBA
}

// Speed below which impact obstacles are driven over harmlessly
const impactSpeedGate = 80.0

// GetEffectConfig returns configuration for an effect kind
func GetEffectConfig(kind EffectKind) EffectConfig {
	switch kind {
	case EffectPothole:
		return EffectConfig{Kind: kind, Name: "pothole", Category: CategoryObstacle, Level: 1, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{60, 60, 60, 255}}
	case EffectPuddle:
		return EffectConfig{Kind: kind, Name: "puddle", Category: CategoryObstacle, Level: 1, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{40, 90, 200, 255}}
	case EffectBananaPeel:
		return EffectConfig{Kind: kind, Name: "banana_peel", Category: CategoryObstacle, Level: 1, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{250, 220, 40, 255}}
	case EffectSpikes:
		return EffectConfig{Kind: kind, Name: "spikes", Category: CategoryObstacle, Level: 2, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{180, 180, 190, 255}}
	case EffectOilSpill:
		return EffectConfig{Kind: kind, Name: "oil_spill", Category: CategoryObstacle, Level: 3, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{20, 20, 20, 255}}
	case EffectIce:
		return EffectConfig{Kind: kind, Name: "ice", Category: CategorySurface, Width: 200, Height: 200, Hidden: true, Color: color.RGBA{200, 240, 255, 80}}
	case EffectGravel:
		return EffectConfig{Kind: kind, Name: "gravel", Category: CategorySurface, Width: 150, Height: 150, Hidden: true, Color: color.RGBA{150, 120, 90, 80}}
	case EffectBoostStar:
		return EffectConfig{Kind: kind, Name: "boost_star", Category: CategoryPerk, Level: 1, Width: 24, Height: 24, Color: color.RGBA{255, 200, 0, 255}}
	case EffectWrench:
		return EffectConfig{Kind: kind, Name: "wrench", Category: CategoryPerk, Level: 1, Width: 24, Height: 24, Color: color.RGBA{120, 200, 120, 255}}
	case EffectIceCube:
		return EffectConfig{Kind: kind, Name: "ice_cube", Category: CategoryPerk, Level: 2, Width: 24, Height: 24, SpeedGate: impactSpeedGate, Color: color.RGBA{160, 220, 255, 255}}
	case EffectInvisible:
		return EffectConfig{Kind: kind, Name: "invisible", Category: CategoryPerk, Level: 3, Width: 24, Height: 24, Color: color.RGBA{200, 120, 255, 255}}
	case EffectNoCollision:
		return EffectConfig{Kind: kind, Name: "no_collision", Category: CategoryPerk, Level: 3, Width: 24, Height: 24, Color: color.RGBA{255, 120, 200, 255}}
	default:
		return GetEffectConfig(EffectPothole)
	}
}

// maxEffectExtent is the longest side of any effect kind
func maxEffectExtent() float64 {
	extent := 0.0
	for kind := EffectKind(0); kind < EffectKindCount; kind++ {
		cfg := GetEffectConfig(kind)
		extent = max(extent, cfg.Width, cfg.Height)
	}
	return extent
}

func (k EffectKind) String() string {
	return GetEffectConfig(k).Name
}

// EffectKindByName looks an effect kind up by its sprite name
func EffectKindByName(name string) (EffectKind, error) {
	for kind := EffectKind(0); kind < EffectKindCount; kind++ {
		if GetEffectConfig(kind).Name == name {
			return kind, nil
		}
	}
	return 0, &track.ConfigurationError{Op: "lookup effect", Name: name, Err: fmt.Errorf("unknown effect kind %q", name)}
}

// KindsForLevel lists the kinds of a category available on a difficulty
func KindsForLevel(category EffectCategory, difficulty track.Difficulty) []EffectKind {
	var kinds []EffectKind
	for kind := EffectKind(0); kind < EffectKindCount; kind++ {
		cfg := GetEffectConfig(kind)
		if cfg.Category == category && cfg.Level > 0 && cfg.Level <= int(difficulty) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
