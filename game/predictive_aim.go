package game

import (
	"math"

	"topdownracer/vec"
)

// PredictIntercept returns where a chaser at from moving at speed meets a
// target moving with velocity. Slow targets and chasers are aimed at
// directly.
func PredictIntercept(from, target, velocity vec.Vec2D, speed float64) vec.Vec2D {
	if math.Abs(velocity.X) < 0.1 && math.Abs(velocity.Y) < 0.1 {
		return target
	}
	distance := vec.Distance(from, target)
	if distance < 1.0 || speed <= 0 {
		return target
	}

	// Refine the meeting time t where distance(from, target + velocity*t) = speed*t
	t := distance / speed
	for i := 0; i < 5; i++ {
		predicted := vec.Add(target, vec.New(velocity.X*t, velocity.Y*t))
		newT := vec.Distance(from, predicted) / speed
		if math.Abs(newT-t) < 0.001 {
			break
		}
		t = newT
	}
	return vec.Add(target, vec.New(velocity.X*t, velocity.Y*t))
}
