package track

import (
	"math"

	"topdownracer/vec"
)

// CheckPoint is a sampled point on the track with its tangent and signed
// curvature
type CheckPoint struct {
	Point     vec.Vec2D
	Tangent   vec.Vec2D
	Curvature float64
}

// Sample walks the commands and produces n+1 checkpoints per drawing
// segment. Curves carry their derivative as tangent and signed curvature;
// lines carry their direction and zero curvature. A move contributes a single
// point.
func Sample(commands []Command, n int) []CheckPoint {
	if n < 1 {
		n = 1
	}
	var points []CheckPoint
	var pen vec.Vec2D

	for _, cmd := range commands {
		switch cmd.Kind {
		case Move:
			points = append(points, CheckPoint{Point: cmd.To})
		case Line:
			points = append(points, sampleLine(pen, cmd.To, n)...)
		case Quad:
			points = append(points, sampleCurve(quadratic{pen, cmd.Control1, cmd.To}, n)...)
		case Cubic:
			points = append(points, sampleCurve(cubic{pen, cmd.Control1, cmd.Control2, cmd.To}, n)...)
		case Close:
			continue
		}
		pen = cmd.To
	}

	fillTangents(points)
	return points
}

func sampleLine(from, to vec.Vec2D, n int) []CheckPoint {
	direction := vec.Subtract(to, from)
	out := make([]CheckPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, CheckPoint{Point: vec.Lerp(from, to, t), Tangent: direction})
	}
	return out
}

type curve interface {
	at(t float64) vec.Vec2D
	derivative(t float64) vec.Vec2D
	second(t float64) vec.Vec2D
}

func sampleCurve(c curve, n int) []CheckPoint {
	out := make([]CheckPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		d := c.derivative(t)
		out = append(out, CheckPoint{
			Point:     c.at(t),
			Tangent:   d,
			Curvature: curvature(d, c.second(t)),
		})
	}
	return out
}

// curvature returns (x'y'' - y'x'') / |B'|^3, zero where the derivative vanishes
func curvature(d, dd vec.Vec2D) float64 {
	q := d.X*d.X + d.Y*d.Y
	if q == 0 {
		return 0
	}
	return (d.X*dd.Y - d.Y*dd.X) / math.Pow(q, 1.5)
}

// fillTangents copies the following sample's tangent into zero tangents.
// A trailing zero tangent takes the preceding one.
func fillTangents(points []CheckPoint) {
	for i := len(points) - 2; i >= 0; i-- {
		if points[i].Tangent == vec.Zero {
			points[i].Tangent = points[i+1].Tangent
		}
	}
	if last := len(points) - 1; last > 0 && points[last].Tangent == vec.Zero {
		points[last].Tangent = points[last-1].Tangent
	}
}

func combine(weights []float64, pts ...vec.Vec2D) vec.Vec2D {
	var out vec.Vec2D
	for i, p := range pts {
		out.X += weights[i] * p.X
		out.Y += weights[i] * p.Y
	}
	return out
}

type quadratic struct {
	p0, p1, p2 vec.Vec2D
}

func (q quadratic) at(t float64) vec.Vec2D {
	mt := 1 - t
	return combine([]float64{mt * mt, 2 * mt * t, t * t}, q.p0, q.p1, q.p2)
}

func (q quadratic) derivative(t float64) vec.Vec2D {
	mt := 1 - t
	return combine([]float64{-2 * mt, 2*mt - 2*t, 2 * t}, q.p0, q.p1, q.p2)
}

func (q quadratic) second(float64) vec.Vec2D {
	return combine([]float64{2, -4, 2}, q.p0, q.p1, q.p2)
}

type cubic struct {
	p0, p1, p2, p3 vec.Vec2D
}

func (c cubic) at(t float64) vec.Vec2D {
	mt := 1 - t
	return combine([]float64{mt * mt * mt, 3 * mt * mt * t, 3 * mt * t * t, t * t * t}, c.p0, c.p1, c.p2, c.p3)
}

func (c cubic) derivative(t float64) vec.Vec2D {
	mt := 1 - t
	return combine([]float64{
		-3 * mt * mt,
		3*mt*mt - 6*mt*t,
		6*mt*t - 3*t*t,
		3 * t * t,
	}, c.p0, c.p1, c.p2, c.p3)
}

func (c cubic) second(t float64) vec.Vec2D {
	mt := 1 - t
	return combine([]float64{6 * mt, -12*mt + 6*t, 6*mt - 12*t, 6 * t}, c.p0, c.p1, c.p2, c.p3)
}
