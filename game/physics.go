package game

import (
	"math"
	"time"

	"topdownracer/geom"
	"topdownracer/vec"
)

const (
	// Every per tick quantity is tuned for 60 ticks per second
	baseTickRate = 60.0

	forceBlend      = 0.05
	frictionScale   = 0.03
	frictionFloor   = 0.002
	engineBraking   = 2.0
	steeringDecay   = 0.05
	turnThreshold   = 10.0
	turnRateDegrees = 3.0

	wallRestitution    = 0.7
	vehicleRestitution = 0.8
	wallSpinFactor     = 3.0
	wallNudge          = 2.0
	vehicleSeparation  = 1.0
	collisionLockout   = 50 * time.Millisecond
)

// Integrator advances bodies and resolves their collisions
type Integrator struct {
	WallRestitution    float64
	VehicleRestitution float64
	Lockout            time.Duration
}

// NewIntegrator returns an integrator with the standard tuning
func NewIntegrator() *Integrator {
	return &Integrator{
		WallRestitution:    wallRestitution,
		VehicleRestitution: vehicleRestitution,
		Lockout:            collisionLockout,
	}
}

// Step advances b by dt seconds. Bodies in a collision lockout only drop
// their one tick inputs.
func (in *Integrator) Step(b *Body, dt float64, now time.Duration) {
	if b.Locked(now) {
		b.Acceleration = vec.Zero
		b.BrakingForce = 0
		b.IsTurning = false
		return
	}
	ticks := dt * baseTickRate

	b.ActualForce = vec.Add(b.ActualForce, vec.New(b.Acceleration.X*ticks, b.Acceleration.Y*ticks))
	b.ActualForce = normalizeForceToAngle(b.ActualForce, b.Angle, forceBlend)
	b.Acceleration = vec.Zero

	if speed := b.Speed(); speed > 0 {
		f := frictionFloor + b.Traction*b.Adhesion*frictionAmount(b.ActualForce, b.Angle)*frictionScale + b.BrakingForce
		b.ActualForce = vec.SubtractFromLength(b.ActualForce, speed*f*ticks)
	}
	b.BrakingForce = 0

	b.ActualForce = vec.SubtractFromLength(b.ActualForce, b.Adhesion*b.Traction*engineBraking*ticks)

	b.Position = vec.Add(b.Position, vec.New(b.ActualForce.X*dt, b.ActualForce.Y*dt))

	if !b.IsTurning {
		b.SteeringForce = decaySteering(b.SteeringForce, ticks)
	}

	if speed := b.Speed(); speed > turnThreshold && b.MaxSpeedForward > 0 {
		scale := (speed + b.MaxSpeedForward) / (b.MaxSpeedForward * 2)
		b.Angle += vec.Radians(turnRateDegrees * b.SteeringForce * scale * ticks)
	}
	b.IsTurning = false
}

// normalizeForceToAngle pulls the force direction towards heading by ratio
// while keeping most of its magnitude
func normalizeForceToAngle(force vec.Vec2D, heading, ratio float64) vec.Vec2D {
	length := vec.Length(force)
	if length == 0 {
		return force
	}
	return vec.Add(vec.Scale(force, 1-ratio), vec.FromAngle(length*ratio, heading))
}

// frictionAmount is 0 when sliding along the heading and 1 when sliding
// sideways, quantized to hundredths
func frictionAmount(force vec.Vec2D, heading float64) float64 {
	diff := math.Abs(vec.WrapAngle(vec.Angle(force)-heading)) / math.Pi
	diff = math.Floor(diff*100) / 100
	return math.Round(math.Max(0, math.Sin(diff*math.Pi))*100) / 100
}

func decaySteering(s, ticks float64) float64 {
	step := ticks * steeringDecay
	if math.Abs(s) <= step {
		return 0
	}
	s -= step * math.Copysign(1, s)
	return math.Round(s*100) / 100
}

// ReflectAcrossNormal mirrors force across the line with the given unit
// normal and scales it by restitution
func ReflectAcrossNormal(force, normal vec.Vec2D, restitution float64) vec.Vec2D {
	d := 2 * vec.Dot(force, normal)
	r := vec.Subtract(force, vec.New(normal.X*d, normal.Y*d))
	return vec.New(r.X*restitution, r.Y*restitution)
}

// WallNormal estimates the normal of the wall around the occupied cell at
// cellPos by fitting a line through the neighbouring wall cells. The normal
// points against approach, the direction from the wall to the body.
func WallNormal(cellPos, approach vec.Vec2D, mask *geom.Mask) vec.Vec2D {
	gx := int(math.Round(cellPos.X / mask.Scale))
	gy := int(math.Round(cellPos.Y / mask.Scale))

	samples := make([]vec.Vec2D, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if mask.IsWall(gx+dx, gy+dy) {
				samples = append(samples, vec.New(float64(gx+dx)*mask.Scale, float64(gy+dy)*mask.Scale))
			}
		}
	}

	var normal vec.Vec2D
	if len(samples) < 2 {
		n, err := vec.Normalize(approach)
		if err != nil {
			return vec.New(-1, 0)
		}
		return vec.New(-n.X, -n.Y)
	}
	slope, _ := geom.LinearRegression(samples)
	if math.IsInf(slope, 0) {
		normal = vec.New(1, 0)
	} else {
		normal, _ = vec.Normalize(vec.New(-slope, 1))
	}
	if vec.Dot(normal, approach) > 0 {
		normal = vec.New(-normal.X, -normal.Y)
	}
	return normal
}

// ResolveTrackCollision bounces b off the wall cell at cellPos. Reports
// false while b is still locked out from its previous hit.
func (in *Integrator) ResolveTrackCollision(b *Body, cellPos vec.Vec2D, mask *geom.Mask, now time.Duration) bool {
	if b.Locked(now) {
		return false
	}
	approach := vec.Subtract(b.Position, cellPos)
	normal := WallNormal(cellPos, approach, mask)

	before := b.ActualForce
	b.ActualForce = ReflectAcrossNormal(before, normal, in.WallRestitution)

	if b.Speed() > 0 {
		deflection := vec.Degrees(vec.WrapAngle(vec.Angle(b.ActualForce) - vec.Angle(before)))
		b.Angle = vec.WrapAngle(b.Angle + vec.Radians(deflection*wallSpinFactor))
	}

	if away, err := vec.Normalize(approach); err == nil {
		b.Position = vec.Add(b.Position, vec.New(away.X*wallNudge, away.Y*wallNudge))
	}
	b.Lock(now + in.Lockout)
	return true
}

// ResolveVehicleCollision exchanges an impulse between two approaching cars
// and pushes them one unit apart
func (in *Integrator) ResolveVehicleCollision(a, b *Body) bool {
	normal, err := vec.Normalize(vec.Subtract(a.Position, b.Position))
	if err != nil {
		normal = vec.New(1, 0)
	}

	a.Velocity = a.ActualForce
	b.Velocity = b.ActualForce
	relative := vec.Subtract(a.Velocity, b.Velocity)
	along := vec.Dot(relative, normal)
	if along > 0 {
		return false
	}

	impulse := -(1 + in.VehicleRestitution) * along / 2
	a.Velocity = vec.Add(a.Velocity, vec.New(normal.X*impulse, normal.Y*impulse))
	b.Velocity = vec.Subtract(b.Velocity, vec.New(normal.X*impulse, normal.Y*impulse))
	a.ActualForce = a.Velocity
	b.ActualForce = b.Velocity

	a.Position = vec.Add(a.Position, vec.New(normal.X*vehicleSeparation, normal.Y*vehicleSeparation))
	b.Position = vec.Subtract(b.Position, vec.New(normal.X*vehicleSeparation, normal.Y*vehicleSeparation))
	return true
}
