package game

import (
	"math"
	"time"

	"topdownracer/geom"
	"topdownracer/track"
	"topdownracer/vec"
)

const (
	nitroDuration  = 500 * time.Millisecond
	nitroCooldown  = 3000 * time.Millisecond
	nitroSpeedMult = 2.0
	nitroAccelMult = 4.0

	traceInterval = 100 * time.Millisecond
	traceLifetime = 2000 * time.Millisecond

	// Below this speed braking stops the car outright
	stopSpeed = 0.05
	// brakingForce is the one tick friction addend of a brake
	brakingForce = 0.05
)

// NitroState is the phase of the nitro state machine
type NitroState int

const (
	NitroIdle NitroState = iota
	NitroActive
	NitroCooldown
)

// TracePoint is one pair of skid marks left behind by a body
type TracePoint struct {
	Left  vec.Vec2D
	Right vec.Vec2D
	At    time.Duration
}

// Alpha fades a trace linearly over its lifetime
func (p TracePoint) Alpha(now time.Duration) float64 {
	age := float64(now - p.At)
	return math.Max(0, 1-age/float64(traceLifetime))
}

// Body is the physical state of one car. Angles are radians.
type Body struct {
	Name               string
	Type               VehicleType
	IsPlayerControlled bool

	// Ghost bodies pass through cars and obstacles
	Ghost bool

	Position     vec.Vec2D
	ActualForce  vec.Vec2D
	Velocity     vec.Vec2D // Only used while resolving car to car hits
	Acceleration vec.Vec2D // One tick accumulator
	Angle        float64

	SteeringForce float64 // In [-1, 1]
	BrakingForce  float64 // One tick friction addend
	IsTurning     bool

	Traction float64
	Adhesion float64

	DefaultMaxSpeedForward      float64
	MaxSpeedForward             float64
	DefaultMaxSpeedBackward     float64
	MaxSpeedBackward            float64
	DefaultAccelerationForward  float64
	AccelerationForward         float64
	DefaultAccelerationBackward float64
	AccelerationBackward        float64

	Width  float64
	Height float64

	// Frozen drops both speed caps to zero, see SpeedCaps
	Frozen      bool
	Invisible   bool
	NoCollision bool

	Effects  *TimedEffects
	Progress Progress
	Traces   []TracePoint

	// Current broadphase cell
	CellX, CellY int

	lockedUntil time.Duration
	nitro       NitroState
	nitroSince  time.Duration
	lastTrace   time.Duration
	now         time.Duration
}

// NewBody places a car of vehicleType on a start slot
func NewBody(name string, vehicleType VehicleType, start track.StartPosition, traction float64) *Body {
	cfg := GetVehicleConfig(vehicleType)
	return &Body{
		Name:                        name,
		Type:                        vehicleType,
		IsPlayerControlled:          vehicleType == VehicleTypePlayer,
		Position:                    start.Position,
		Angle:                       start.Angle,
		Traction:                    traction,
		Adhesion:                    cfg.Adhesion,
		DefaultMaxSpeedForward:      cfg.MaxSpeedForward,
		MaxSpeedForward:             cfg.MaxSpeedForward,
		DefaultMaxSpeedBackward:     cfg.MaxSpeedBackward,
		MaxSpeedBackward:            cfg.MaxSpeedBackward,
		DefaultAccelerationForward:  cfg.AccelerationForward,
		AccelerationForward:         cfg.AccelerationForward,
		DefaultAccelerationBackward: cfg.AccelerationBackward,
		AccelerationBackward:        cfg.AccelerationBackward,
		Width:                       cfg.Width,
		Height:                      cfg.Height,
		Effects:                     NewTimedEffects(),
		lastTrace:                   -traceInterval,
	}
}

// CollisionObject is the oriented collider of the body
func (b *Body) CollisionObject() geom.CollisionObject {
	return geom.CollisionObject{X: b.Position.X, Y: b.Position.Y, Width: b.Width, Height: b.Height, Angle: b.Angle}
}

// Corners of the collider, front-left first
func (b *Body) Corners() [4]vec.Vec2D {
	return geom.OrientedCorners(b.CollisionObject())
}

// Speed is the magnitude of the force
func (b *Body) Speed() float64 {
	return vec.Length(b.ActualForce)
}

// Heading is the unit vector the car faces
func (b *Body) Heading() vec.Vec2D {
	return vec.FromAngle(1, b.Angle)
}

// ForwardSpeed projects the force on the heading
func (b *Body) ForwardSpeed() float64 {
	return vec.Dot(b.ActualForce, b.Heading())
}

// Collides reports whether the body takes part in car to car contact
func (b *Body) Collides() bool {
	return !b.Ghost && !b.NoCollision
}

// SpeedCaps returns the forward and backward speed limits in effect. A frozen
// car has none.
func (b *Body) SpeedCaps() (forward, backward float64) {
	if b.Frozen {
		return 0, 0
	}
	return b.MaxSpeedForward, b.MaxSpeedBackward
}

// AccelerateForward requests forward thrust for this tick
func (b *Body) AccelerateForward() {
	if forward, _ := b.SpeedCaps(); b.Speed() < forward {
		b.Acceleration = vec.FromAngle(b.AccelerationForward, b.Angle)
	}
}

// Brake slows the car and reverses it once it moves backwards or stands
func (b *Body) Brake() {
	speed := b.Speed()
	if speed < stopSpeed {
		b.ActualForce = vec.Zero
		speed = 0
	}

	reversing := speed == 0
	if !reversing {
		if diff, err := vec.DegreesBetween(b.ActualForce, b.Heading()); err == nil && diff > 90 {
			reversing = true
		}
	}
	if reversing {
		if _, backward := b.SpeedCaps(); speed < backward {
			b.Acceleration = vec.FromAngle(-b.AccelerationBackward, b.Angle)
		}
		return
	}
	b.BrakingForce = brakingForce
}

// Steer adds delta to the steering force and marks the body as turning
func (b *Body) Steer(delta float64) {
	b.SteeringForce = vec.Clamp(b.SteeringForce+delta, -1, 1)
	b.IsTurning = true
}

// Lock skips integration until the given time
func (b *Body) Lock(until time.Duration) {
	b.lockedUntil = until
}

// Locked reports whether a collision lockout is running
func (b *Body) Locked(now time.Duration) bool {
	return now < b.lockedUntil
}

// Nitro returns the nitro phase
func (b *Body) Nitro() NitroState {
	return b.nitro
}

// ActivateNitro starts a nitro burst when idle. Reports whether it started.
func (b *Body) ActivateNitro(now time.Duration) bool {
	if b.nitro != NitroIdle {
		return false
	}
	installed := b.Effects.Add(TagNitro, &TimedEffect{
		Start:    now,
		Duration: nitroDuration,
		Finish: func() {
			b.MaxSpeedForward /= nitroSpeedMult
			b.MaxSpeedBackward /= nitroSpeedMult
			b.AccelerationForward /= nitroAccelMult
			b.AccelerationBackward /= nitroAccelMult
			b.nitro = NitroCooldown
			b.nitroSince = b.now
		},
	})
	if !installed {
		return false
	}
	b.MaxSpeedForward *= nitroSpeedMult
	b.MaxSpeedBackward *= nitroSpeedMult
	b.AccelerationForward *= nitroAccelMult
	b.AccelerationBackward *= nitroAccelMult
	b.nitro = NitroActive
	b.nitroSince = now
	return true
}

// Update runs the per tick bookkeeping shared by every controller: nitro
// cooldown and skid traces
func (b *Body) Update(now time.Duration) {
	b.now = now

	if b.nitro == NitroCooldown && now-b.nitroSince >= nitroCooldown {
		b.nitro = NitroIdle
	}

	if now-b.lastTrace >= traceInterval {
		side := vec.FromAngle(b.Height/2, b.Angle+math.Pi/2)
		b.Traces = append(b.Traces, TracePoint{
			Left:  vec.Subtract(b.Position, side),
			Right: vec.Add(b.Position, side),
			At:    now,
		})
		b.lastTrace = now
	}
	drop := 0
	for drop < len(b.Traces) && now-b.Traces[drop].At > traceLifetime {
		drop++
	}
	if drop > 0 {
		b.Traces = append(b.Traces[:0], b.Traces[drop:]...)
	}
}
