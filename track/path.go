package track

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"

	"topdownracer/vec"
)

// DefaultSamples is the number of parameter steps per path segment
const DefaultSamples = 100

// gateHalfWidth is half the length of the line drawn across the track
// through a checkpoint when measuring progress
const gateHalfWidth = 100

// TrackPath is the ordered checkpoint sequence of a track
type TrackPath struct {
	Raw    string
	Points []CheckPoint
}

// PathOptions drive the construction pipeline of a loaded track path
type PathOptions struct {
	Samples      int
	CanvasWidth  float64
	CanvasHeight float64
	Offset       vec.Vec2D
	Scale        float64
	PointOffset  int
	ReduceStride int
}

// NewTrackPath samples the SVG path d
func NewTrackPath(d string, samples int) (*TrackPath, error) {
	commands, err := ParsePath(d)
	if err != nil {
		return nil, err
	}
	points := Sample(commands, samples)
	if len(points) == 0 {
		return nil, &ConfigurationError{Op: "sample path", Err: errEmptyPath}
	}
	return &TrackPath{Raw: d, Points: points}, nil
}

// NewTrackPathFromSVG builds, centers, reverses, reduces, scales and rotates
// the path so the finish line lines up with the authored end of the path
func NewTrackPathFromSVG(d string, opts PathOptions) (*TrackPath, error) {
	if opts.Samples == 0 {
		opts.Samples = DefaultSamples
	}
	if opts.ReduceStride == 0 {
		opts.ReduceStride = 10
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	path, err := NewTrackPath(d, opts.Samples)
	if err != nil {
		return nil, err
	}
	path.Center(opts.CanvasWidth, opts.CanvasHeight, opts.Offset)
	path.Reverse()
	path.Reduce(opts.ReduceStride)
	path.ScalePoints(opts.Scale)
	path.Rotate(opts.PointOffset)
	return path, nil
}

// Len returns the number of checkpoints
func (p *TrackPath) Len() int {
	return len(p.Points)
}

// Clone returns a deep copy
func (p *TrackPath) Clone() *TrackPath {
	return &TrackPath{Raw: p.Raw, Points: slices.Clone(p.Points)}
}

// Bounds returns the bounding box of all checkpoints
func (p *TrackPath) Bounds() r2.Rect {
	pts := make([]r2.Point, len(p.Points))
	for i, cp := range p.Points {
		pts[i] = r2.Point{X: cp.Point.X, Y: cp.Point.Y}
	}
	return r2.RectFromPoints(pts...)
}

// Center translates the path by (canvas - size)/2 + offset on each axis
func (p *TrackPath) Center(canvasWidth, canvasHeight float64, offset vec.Vec2D) {
	if len(p.Points) == 0 {
		return
	}
	size := p.Bounds().Size()
	shift := vec.Vec2D{
		X: (canvasWidth-size.X)/2 + offset.X,
		Y: (canvasHeight-size.Y)/2 + offset.Y,
	}
	for i := range p.Points {
		p.Points[i].Point = vec.Add(p.Points[i].Point, shift)
	}
}

// Reverse flips the travel order. Tangents are flipped with it so they keep
// pointing along the direction of travel.
func (p *TrackPath) Reverse() {
	slices.Reverse(p.Points)
	for i := range p.Points {
		p.Points[i].Tangent = vec.Vec2D{X: -p.Points[i].Tangent.X, Y: -p.Points[i].Tangent.Y}
		p.Points[i].Curvature = -p.Points[i].Curvature
	}
}

// Reduce drops checkpoints with an already seen position, then keeps every
// stride-th of the remaining ones
func (p *TrackPath) Reduce(stride int) {
	if stride < 1 {
		stride = 1
	}
	seen := make(map[vec.Vec2D]struct{}, len(p.Points))
	unique := make([]CheckPoint, 0, len(p.Points))
	for _, cp := range p.Points {
		if _, ok := seen[cp.Point]; ok {
			continue
		}
		seen[cp.Point] = struct{}{}
		unique = append(unique, cp)
	}

	reduced := make([]CheckPoint, 0, len(unique)/stride+1)
	for i, cp := range unique {
		if i%stride == 0 {
			reduced = append(reduced, cp)
		}
	}
	p.Points = reduced
}

// ScalePoints multiplies every position by s
func (p *TrackPath) ScalePoints(s float64) {
	for i := range p.Points {
		p.Points[i].Point = vec.Scale(p.Points[i].Point, s)
	}
}

// Rotate moves the last offset checkpoints to the front. A negative offset
// counts from the end, so -k moves all but the last k.
func (p *TrackPath) Rotate(offset int) {
	n := len(p.Points)
	if n == 0 {
		return
	}
	if offset < 0 {
		offset += n
	}
	offset = ((offset % n) + n) % n
	if offset == 0 {
		return
	}
	rotated := make([]CheckPoint, 0, n)
	rotated = append(rotated, p.Points[n-offset:]...)
	rotated = append(rotated, p.Points[:n-offset]...)
	p.Points = rotated
}

// DistanceToPoint returns the distance from pos to the gate line through
// checkpoint id, perpendicular to the direction from the previous checkpoint.
// Id 0 uses the last checkpoint as its predecessor. Degenerate geometry gives
// NaN.
func (p *TrackPath) DistanceToPoint(pos vec.Vec2D, id int) float64 {
	n := len(p.Points)
	if n < 2 || id < 0 || id >= n {
		return math.NaN()
	}
	prev := id - 1
	if prev < 0 {
		prev = n - 1
	}
	return gateDistance(pos, p.Points[id].Point, p.Points[prev].Point)
}

// gateDistance measures pos against the line through point perpendicular to
// point-from
func gateDistance(pos, point, from vec.Vec2D) float64 {
	dir, err := vec.Normalize(vec.Subtract(point, from))
	if err != nil {
		return math.NaN()
	}
	p1 := vec.Add(point, vec.Vec2D{X: -dir.Y * gateHalfWidth, Y: dir.X * gateHalfWidth})
	p2 := vec.Add(point, vec.Vec2D{X: dir.Y * gateHalfWidth, Y: -dir.X * gateHalfWidth})

	gate := vec.Subtract(p2, p1)
	w := vec.Subtract(pos, p1)
	t := vec.Dot(w, gate) / vec.Dot(gate, gate)
	closest := vec.Add(p1, vec.Vec2D{X: gate.X * t, Y: gate.Y * t})
	return vec.Length(vec.Subtract(pos, closest))
}

// ArcLength sums the segment lengths between consecutive points
func ArcLength(points []CheckPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += vec.Distance(points[i-1].Point, points[i].Point)
	}
	return total
}
