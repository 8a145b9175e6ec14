package track

import (
	"math"
	"slices"

	"topdownracer/vec"
)

const (
	defaultLaneOffset   = 10
	defaultPathOffset   = 6
	defaultSafeDistance = 45
	defaultMaxLength    = 500
	minWindowPoints     = 4
	avoidanceStep       = 10
)

// PathIntersection is a run of lookahead segments passing close to an
// obstacle. Start and End index into the lookahead window.
type PathIntersection struct {
	Corners  [4]vec.Vec2D
	Start    int
	End      int
	Distance float64
}

// ObstacleCenter is the midpoint of the obstacle's diagonal
func (pi PathIntersection) ObstacleCenter() vec.Vec2D {
	return vec.Lerp(pi.Corners[0], pi.Corners[2], 0.5)
}

// Navigator answers whether a circle touches a non-navigable cell
type Navigator interface {
	CircleOverlaps(center vec.Vec2D, radius float64) bool
}

// EnemyPath is a lane-offset copy of a track path plus the rolling
// lookahead window an opponent steers against
type EnemyPath struct {
	TrackPath

	// ActualPath is the lookahead window
	ActualPath []CheckPoint

	// VisitedCheckpoints is the global progress counter into Points
	VisitedCheckpoints int

	PathOffset   int
	SafeDistance float64
	MaxLength    float64

	length float64
	cursor int
}

// NewEnemyPath offsets every checkpoint of base sideways by laneOffset along
// its tangent normal and fills the first lookahead window. A zero laneOffset
// uses the default lane.
func NewEnemyPath(base *TrackPath, laneOffset float64) *EnemyPath {
	if laneOffset == 0 {
		laneOffset = defaultLaneOffset
	}
	points := make([]CheckPoint, len(base.Points))
	for i, cp := range base.Points {
		angle := vec.Angle(cp.Tangent) + math.Pi/2
		cp.Point = vec.Add(cp.Point, vec.FromAngle(laneOffset, angle))
		points[i] = cp
	}

	e := &EnemyPath{
		TrackPath:          TrackPath{Raw: base.Raw, Points: points},
		VisitedCheckpoints: 1,
		PathOffset:         defaultPathOffset,
		SafeDistance:       defaultSafeDistance,
		MaxLength:          defaultMaxLength,
	}
	e.generate()
	return e
}

// ActualLength is the arc length of the lookahead window
func (e *EnemyPath) ActualLength() float64 {
	return e.length
}

// CurrentTarget is the checkpoint the opponent steers towards
func (e *EnemyPath) CurrentTarget() (CheckPoint, bool) {
	i := e.PathOffset - 1
	if i < 0 || i >= len(e.ActualPath) {
		return CheckPoint{}, false
	}
	return e.ActualPath[i], true
}

// NextTarget follows CurrentTarget
func (e *EnemyPath) NextTarget() (CheckPoint, bool) {
	i := e.PathOffset
	if i < 0 || i >= len(e.ActualPath) {
		return CheckPoint{}, false
	}
	return e.ActualPath[i], true
}

// DistanceToActualPoint measures pos against the gate through the current
// target. Returns 0 when the window is too short to have one.
func (e *EnemyPath) DistanceToActualPoint(pos vec.Vec2D) float64 {
	current, ok := e.CurrentTarget()
	if !ok {
		return 0
	}
	next, ok := e.NextTarget()
	if !ok {
		return 0
	}
	return gateDistance(pos, current.Point, next.Point)
}

// Advance consumes n points from the front of the window and refills it
// from the master sequence, wrapping at the end of the lap
func (e *EnemyPath) Advance(n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(e.ActualPath))
	e.length -= ArcLength(e.ActualPath[:min(n+1, len(e.ActualPath))])
	e.length = math.Max(e.length, 0)
	e.ActualPath = slices.Clone(e.ActualPath[n:])
	e.fill()
}

func (e *EnemyPath) generate() {
	e.ActualPath = nil
	e.length = 0
	e.fill()
}

// fill appends master points while the window holds too few points or the
// next segment still fits under MaxLength
func (e *EnemyPath) fill() {
	total := len(e.Points)
	if total == 0 {
		return
	}
	for added := 0; ; added++ {
		next := e.Points[e.cursor%total]
		segment := 0.0
		if last := len(e.ActualPath) - 1; last >= 0 {
			segment = vec.Distance(e.ActualPath[last].Point, next.Point)
		}
		if len(e.ActualPath) > minWindowPoints && (e.length+segment > e.MaxLength || added >= total) {
			return
		}
		e.ActualPath = append(e.ActualPath, next)
		e.length += segment
		e.cursor++
	}
}

// AvoidObstacles replaces every intersecting run of the window with points
// pushed away from the obstacle until they are SafeDistance from its center.
// Pushing happens in steps and stops before a step that would leave the
// navigable area. Points already off the navigable area stay where they are.
func (e *EnemyPath) AvoidObstacles(intersections []PathIntersection, nav Navigator) {
	for _, in := range intersections {
		start, end := in.Start, in.End
		if start < 0 || end <= start || end >= len(e.ActualPath) {
			continue
		}
		center := in.ObstacleCenter()
		endPoint := e.ActualPath[end].Point

		moved := make([]vec.Vec2D, 0, end-start)
		for _, cp := range e.ActualPath[start:end] {
			moved = append(moved, e.push(cp.Point, center, nav))
		}

		replacement := make([]CheckPoint, len(moved))
		for i, p := range moved {
			next := endPoint
			if i+1 < len(moved) {
				next = moved[i+1]
			}
			tangent, err := vec.Normalize(vec.Subtract(next, p))
			if err != nil {
				tangent = e.ActualPath[start+i].Tangent
			}
			previous := tangent
			if i > 0 {
				if t, err := vec.Normalize(vec.Subtract(p, moved[i-1])); err == nil {
					previous = t
				}
			}
			replacement[i] = CheckPoint{
				Point:     p,
				Tangent:   tangent,
				Curvature: vec.AngleBetween(tangent, previous),
			}
		}

		e.ActualPath = slices.Replace(e.ActualPath, start, end, replacement...)
		e.length = ArcLength(e.ActualPath)
	}
}

func (e *EnemyPath) push(p, center vec.Vec2D, nav Navigator) vec.Vec2D {
	if nav != nil && nav.CircleOverlaps(p, 1) {
		return p
	}
	away, err := vec.Normalize(vec.Subtract(p, center))
	if err != nil {
		return p
	}
	want := math.Max(e.SafeDistance-vec.Distance(p, center), 0)

	final := p
	for pushed := 0.0; pushed < want; {
		pushed = math.Min(pushed+avoidanceStep, want)
		candidate := vec.Add(p, vec.Vec2D{X: away.X * pushed, Y: away.Y * pushed})
		if nav != nil && nav.CircleOverlaps(candidate, 1) {
			break
		}
		final = candidate
	}
	return final
}
