package game

import (
	"image/color"
)

// VehicleType defines the kinds of cars on the grid
type VehicleType int

const (
	VehicleTypePlayer VehicleType = iota
	VehicleTypeOpponent
	VehicleTypeCount // Total number of vehicle types
)

// VehicleConfig holds the default caps for a vehicle type
type VehicleConfig struct {
	Type                 VehicleType
	Name                 string
	MaxSpeedForward      float64
	MaxSpeedBackward     float64
	AccelerationForward  float64
	AccelerationBackward float64
	Adhesion             float64
	Width                float64 // Collider length along the heading
	Height               float64 // Collider width across the heading
	Color                color.RGBA
}

// GetVehicleConfig returns configuration for a vehicle type
func GetVehicleConfig(vehicleType VehicleType) VehicleConfig {
	switch vehicleType {
	case VehicleTypePlayer:
		return VehicleConfig{
			Type:                 VehicleTypePlayer,
			Name:                 "Player",
			MaxSpeedForward:      240.0,
			MaxSpeedBackward:     180.0,
			AccelerationForward:  9.0,
			AccelerationBackward: 7.0,
			Adhesion:             1.0,
			Width:                30.0,
			Height:               14.0,
			Color:                color.RGBA{0, 200, 255, 255}, // Cyan
		}
	case VehicleTypeOpponent:
		return VehicleConfig{
			Type:                 VehicleTypeOpponent,
			Name:                 "Opponent",
			MaxSpeedForward:      500.0,
			MaxSpeedBackward:     180.0,
			AccelerationForward:  9.0,
			AccelerationBackward: 7.0,
			Adhesion:             1.0,
			Width:                30.0,
			Height:               14.0,
			Color:                color.RGBA{255, 80, 0, 255}, // Orange
		}
	default:
		return GetVehicleConfig(VehicleTypePlayer)
	}
}

// RosterEntry describes one opponent on the starting grid
type RosterEntry struct {
	Name        string
	Tier        PolicyTier
	LaneOffset  float64
	Ghost       bool    // Never collides and never avoids obstacles
	ExtraAccel  float64 // Added to the forward acceleration
	StartSlot   int
	ShouldAvoid bool
}

// ghostChance is the probability of the straight driver being replaced by
// the ghost on snow maps
const ghostChance = 0.2

// GetRoster returns the opponents for a map. roll is a uniform sample in
// [0, 1) used for the ghost draw.
func GetRoster(mapName string, roll float64) []RosterEntry {
	avoid := mapName == "snow"

	straight := RosterEntry{Name: "Straight Jack", Tier: PolicyStraight, LaneOffset: 10, StartSlot: 1, ShouldAvoid: avoid}
	if mapName == "snow" && roll < ghostChance {
		straight = RosterEntry{Name: "Ghost", Tier: PolicyStraight, LaneOffset: 20, StartSlot: 1, Ghost: true}
	}

	return []RosterEntry{
		straight,
		{Name: "Bob", Tier: PolicyMiddle, LaneOffset: 20, ExtraAccel: 10, StartSlot: 2, ShouldAvoid: avoid},
		{Name: "Norman", Tier: PolicyAggressive, LaneOffset: -20, StartSlot: 3, ShouldAvoid: avoid},
		{Name: "Seba", Tier: PolicySuperAggressive, LaneOffset: -10, StartSlot: 4, ShouldAvoid: avoid},
	}
}
