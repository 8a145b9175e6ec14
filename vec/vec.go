package vec

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vec2D is an immutable 2D vector. Every operation returns a new value.
type Vec2D struct {
	X, Y float64
}

// Zero is the zero vector
var Zero = Vec2D{}

// New creates a vector from its components
func New(x, y float64) Vec2D {
	return Vec2D{X: x, Y: y}
}

// Add returns v1 + v2
func Add(v1, v2 Vec2D) Vec2D {
	return Vec2D{X: v1.X + v2.X, Y: v1.Y + v2.Y}
}

// Subtract returns v1 - v2
func Subtract(v1, v2 Vec2D) Vec2D {
	return Vec2D{X: v1.X - v2.X, Y: v1.Y - v2.Y}
}

// Scale multiplies v by scalar and truncates each component to 3 decimals.
// Truncation (not rounding) keeps replays of the physics bit-compatible.
func Scale(v Vec2D, scalar float64) Vec2D {
	return Vec2D{
		X: math.Floor(v.X*1000*scalar) / 1000,
		Y: math.Floor(v.Y*1000*scalar) / 1000,
	}
}

// Length returns the euclidean norm of v
func Length(v Vec2D) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the distance between two points
func Distance(v1, v2 Vec2D) float64 {
	return Length(Subtract(v1, v2))
}

// Dot returns the dot product
func Dot(v1, v2 Vec2D) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// Normalize returns the unit vector pointing along v.
func Normalize(v Vec2D) (Vec2D, error) {
	length := Length(v)
	if length == 0 {
		return Zero, &DegenerateVectorError{Op: "normalize"}
	}
	return Vec2D{X: v.X / length, Y: v.Y / length}, nil
}

// Angle returns the heading of v in radians, in (-π, π]
func Angle(v Vec2D) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle builds a vector of the given magnitude pointing at angle (radians)
func FromAngle(magnitude, angle float64) Vec2D {
	return Vec2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Lerp interpolates linearly between v1 and v2
func Lerp(v1, v2 Vec2D, t float64) Vec2D {
	return Vec2D{
		X: v1.X + (v2.X-v1.X)*t,
		Y: v1.Y + (v2.Y-v1.Y)*t,
	}
}

// Perpendicular rotates v by 90 degrees counter-clockwise
func Perpendicular(v Vec2D) Vec2D {
	return Vec2D{X: -v.Y, Y: v.X}
}

// AngleBetween returns the signed direction (radians) of the segment from v1 to v2
func AngleBetween(v1, v2 Vec2D) float64 {
	return math.Atan2(v2.Y-v1.Y, v2.X-v1.X)
}

// Equals reports exact component equality
func Equals(v1, v2 Vec2D) bool {
	return v1.X == v2.X && v1.Y == v2.Y
}

// Round rounds both components to the nearest integer
func Round(v Vec2D) Vec2D {
	return Vec2D{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// MaxLength caps the length of v, keeping its direction
func MaxLength(v Vec2D, maxLength float64) Vec2D {
	if Length(v) > maxLength {
		return FromAngle(maxLength, Angle(v))
	}
	return v
}

// DistanceToLine returns the distance from point to the infinite line through
// the origin along line. A zero line gives NaN.
func DistanceToLine(line, point Vec2D) float64 {
	cross := math.Abs(line.X*point.Y - line.Y*point.X)
	return cross / Length(line)
}

// SubtractFromLength shortens v by amount without flipping it. Zero vectors
// are returned unchanged.
func SubtractFromLength(v Vec2D, amount float64) Vec2D {
	length := Length(v)
	if length == 0 {
		return v
	}
	newLength := math.Max(0, length-amount)
	unit := Vec2D{X: v.X / length, Y: v.Y / length}
	return Scale(unit, newLength)
}

// CosineSimilarity returns cos of the angle between a and b
func CosineSimilarity(a, b Vec2D) (float64, error) {
	magA := Length(a)
	magB := Length(b)
	if magA == 0 || magB == 0 {
		return 0, &DegenerateVectorError{Op: "cosine similarity"}
	}
	return Dot(a, b) / (magA * magB), nil
}

// DegreesBetween returns the unsigned angle between a and b in degrees (0..180)
func DegreesBetween(a, b Vec2D) (float64, error) {
	cosTheta, err := CosineSimilarity(a, b)
	if err != nil {
		return 0, &DegenerateVectorError{Op: "degrees between"}
	}
	cosTheta = Clamp(cosTheta, -1, 1)
	return Degrees(math.Acos(cosTheta)), nil
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// NormalizeAngle wraps an angle in radians into [0, 2π)
func NormalizeAngle(angle float64) float64 {
	normalized := math.Mod(angle, 2*math.Pi)
	if normalized < 0 {
		normalized += 2 * math.Pi
	}
	return normalized
}

// WrapAngle wraps an angle difference in radians into [-π, π]. Infinite
// input yields NaN.
func WrapAngle(angle float64) float64 {
	return math.Remainder(angle, 2*math.Pi)
}

// Clamp limits x to [low, high]
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}
