package game

import (
	"time"

	"topdownracer/vec"
)

// PolicyTier selects an opponent driving style
type PolicyTier int

const (
	PolicyStraight PolicyTier = iota
	PolicyMiddle
	PolicyAggressive
	PolicySuperAggressive
	PolicyTierCount // Total number of tiers
)

func (t PolicyTier) String() string {
	return GetPolicyTierConfig(t).Name
}

// PolicyTierConfig carries the tunables of a tier
type PolicyTierConfig struct {
	Tier           PolicyTier
	Name           string
	MaxSpeed       float64
	CorneringSpeed float64

	// Threshold is the checkpoint crossing distance while following the path
	Threshold float64

	// AttackThreshold replaces Threshold while ramming the player
	AttackThreshold float64

	// Attack settings, zero for tiers that never attack
	AttackRange  float64
	AttackDwell  time.Duration
	HornRange    float64
	HornCooldown time.Duration

	// MaxRotation is the heading correction limit per decision in radians
	MaxRotation float64
}

// Attacks reports whether the tier can switch to ramming the player
func (c PolicyTierConfig) Attacks() bool {
	return c.AttackRange > 0
}

// GetPolicyTierConfig returns configuration for a policy tier
func GetPolicyTierConfig(tier PolicyTier) PolicyTierConfig {
	switch tier {
	case PolicyStraight:
		return PolicyTierConfig{
			Tier:           PolicyStraight,
			Name:           "straight",
			MaxSpeed:       260.0,
			CorneringSpeed: 220.0, // Barely slows down for corners
			Threshold:      25.0,
			MaxRotation:    vec.Radians(12),
		}
	case PolicyMiddle:
		return PolicyTierConfig{
			Tier:           PolicyMiddle,
			Name:           "middle",
			MaxSpeed:       200.0,
			CorneringSpeed: 200.0,
			Threshold:      20.0,
			MaxRotation:    vec.Radians(12),
		}
	case PolicyAggressive:
		return PolicyTierConfig{
			Tier:            PolicyAggressive,
			Name:            "aggressive",
			MaxSpeed:        350.0,
			CorneringSpeed:  60.0,
			Threshold:       20.0,
			AttackThreshold: 30.0,
			AttackRange:     70.0,
			AttackDwell:     2000 * time.Millisecond,
			HornRange:       40.0,
			HornCooldown:    3000 * time.Millisecond,
			MaxRotation:     vec.Radians(12),
		}
	case PolicySuperAggressive:
		return PolicyTierConfig{
			Tier:            PolicySuperAggressive,
			Name:            "super aggressive",
			MaxSpeed:        420.0,
			CorneringSpeed:  90.0,
			Threshold:       20.0,
			AttackThreshold: 35.0,
			AttackRange:     110.0,
			AttackDwell:     1000 * time.Millisecond,
			HornRange:       60.0,
			HornCooldown:    3000 * time.Millisecond,
			MaxRotation:     vec.Radians(12),
		}
	default:
		return GetPolicyTierConfig(PolicyMiddle)
	}
}
