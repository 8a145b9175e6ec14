package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"topdownracer/vec"
)

// CollisionObject describes an oriented rectangle. X, Y is the center, Width
// runs along the local x axis (the heading) and Height along the local y axis.
// Angle is in radians.
type CollisionObject struct {
	X, Y          float64
	Width, Height float64
	Angle         float64
}

// Center returns the rectangle center
func (o CollisionObject) Center() vec.Vec2D {
	return vec.Vec2D{X: o.X, Y: o.Y}
}

// OrientedCorners returns the rotated corners in winding order:
// front-left, front-right, rear-right, rear-left
func OrientedCorners(obj CollisionObject) [4]vec.Vec2D {
	halfW := obj.Width / 2
	halfH := obj.Height / 2
	rotation := mgl64.Rotate2D(obj.Angle)

	local := [4]mgl64.Vec2{
		{halfW, -halfH},
		{halfW, halfH},
		{-halfW, halfH},
		{-halfW, -halfH},
	}

	var corners [4]vec.Vec2D
	for i, c := range local {
		r := rotation.Mul2x1(c)
		corners[i] = vec.Vec2D{X: obj.X + r.X(), Y: obj.Y + r.Y()}
	}
	return corners
}

// Corners is OrientedCorners as a slice
func Corners(obj CollisionObject) []vec.Vec2D {
	c := OrientedCorners(obj)
	return c[:]
}

// SegmentIntersect intersects segments p1-p2 and q1-q2. Parallel (and
// collinear) segments never intersect. The solved point must lie in both
// segments' bounding boxes.
func SegmentIntersect(p1, p2, q1, q2 vec.Vec2D) (vec.Vec2D, bool) {
	a1 := p2.Y - p1.Y
	b1 := p1.X - p2.X
	c1 := a1*p1.X + b1*p1.Y

	a2 := q2.Y - q1.Y
	b2 := q1.X - q2.X
	c2 := a2*q1.X + b2*q1.Y

	det := a1*b2 - a2*b1
	if det == 0 {
		return vec.Zero, false
	}

	intersection := vec.Vec2D{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}
	if onSegment(p1, intersection, p2) && onSegment(q1, intersection, q2) {
		return intersection, true
	}
	return vec.Zero, false
}

// onSegment checks q against the bounding box of p-r
func onSegment(p, q, r vec.Vec2D) bool {
	return q.X <= math.Max(p.X, r.X) &&
		q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) &&
		q.Y >= math.Min(p.Y, r.Y)
}

// RayCast intersects the segment from-to with every edge of polygon and
// returns the hit nearest to from
func RayCast(from, to vec.Vec2D, polygon []vec.Vec2D) (vec.Vec2D, bool) {
	var closest vec.Vec2D
	found := false
	minDist := math.Inf(1)

	for i := range polygon {
		p1 := polygon[i]
		p2 := polygon[(i+1)%len(polygon)]
		hit, ok := SegmentIntersect(from, to, p1, p2)
		if !ok {
			continue
		}
		if d := vec.Distance(from, hit); d < minDist {
			minDist = d
			closest = hit
			found = true
		}
	}
	return closest, found
}

// SATOverlap tests two convex polygons for overlap with the separating axis
// theorem, using the edge normals of both as candidate axes
func SATOverlap(a, b []vec.Vec2D) bool {
	for _, polygon := range [][]vec.Vec2D{a, b} {
		for i := range polygon {
			p1 := polygon[i]
			p2 := polygon[(i+1)%len(polygon)]
			axis, err := vec.Normalize(vec.Perpendicular(vec.Subtract(p2, p1)))
			if err != nil {
				// repeated vertex, no axis to test
				continue
			}
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return true
}

func project(polygon []vec.Vec2D, axis vec.Vec2D) (float64, float64) {
	minP := math.Inf(1)
	maxP := math.Inf(-1)
	for _, p := range polygon {
		d := vec.Dot(p, axis)
		minP = math.Min(minP, d)
		maxP = math.Max(maxP, d)
	}
	return minP, maxP
}

// PointToSegmentDistance returns the distance from p to segment v-w
func PointToSegmentDistance(p, v, w vec.Vec2D) float64 {
	l2 := vec.Dot(vec.Subtract(w, v), vec.Subtract(w, v))
	if l2 == 0 {
		return vec.Distance(p, v)
	}
	t := vec.Dot(vec.Subtract(p, v), vec.Subtract(w, v)) / l2
	t = vec.Clamp(t, 0, 1)
	projection := vec.Lerp(v, w, t)
	return vec.Distance(p, projection)
}

// SegmentToSegmentDistance is 0 for intersecting segments, otherwise the
// smallest endpoint-to-segment distance
func SegmentToSegmentDistance(a1, a2, b1, b2 vec.Vec2D) float64 {
	if _, ok := SegmentIntersect(a1, a2, b1, b2); ok {
		return 0
	}
	return math.Min(
		math.Min(PointToSegmentDistance(a1, b1, b2), PointToSegmentDistance(a2, b1, b2)),
		math.Min(PointToSegmentDistance(b1, a1, a2), PointToSegmentDistance(b2, a1, a2)),
	)
}

// SegmentToPolygonDistance returns the minimum distance between segment
// from-to and any polygon edge
func SegmentToPolygonDistance(from, to vec.Vec2D, polygon []vec.Vec2D) float64 {
	minDist := math.Inf(1)
	for i := range polygon {
		p1 := polygon[i]
		p2 := polygon[(i+1)%len(polygon)]
		minDist = math.Min(minDist, SegmentToSegmentDistance(from, to, p1, p2))
	}
	return minDist
}

// LinearRegression fits y = slope*x + intercept through samples. A vertical
// fit returns slope=+Inf and intercept=mean x. Fewer than two samples give 0, 0.
func LinearRegression(samples []vec.Vec2D) (slope, intercept float64) {
	n := float64(len(samples))
	if len(samples) < 2 {
		return 0, 0
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	for _, s := range samples {
		sumX += s.X
		sumY += s.Y
		sumXX += s.X * s.X
		sumYY += s.Y * s.Y
		sumXY += s.X * s.Y
	}

	meanX := sumX / n
	meanY := sumY / n
	varianceX := sumXX/n - meanX*meanX
	varianceY := sumYY/n - meanY*meanY

	denominator := n*sumXX - sumX*sumX
	covariance := n*sumXY - sumX*sumY
	if denominator == 0 || (varianceY > varianceX && covariance == 0) {
		return math.Inf(1), meanX
	}

	slope = covariance / denominator
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
