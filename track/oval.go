package track

import (
	"fmt"
	"math"

	"topdownracer/geom"
	"topdownracer/vec"
)

// kappa places cubic control points so four segments approximate an ellipse
const kappa = 0.5522847498

// OvalOptions describe a procedural elliptic circuit
type OvalOptions struct {
	Name         string
	Map          string
	CanvasWidth  float64
	CanvasHeight float64
	RadiusX      float64
	RadiusY      float64
	// HalfWidth is the distance from the centerline to each wall
	HalfWidth float64
	CellSize  float64
	Traction  float64
	// Shortcut adds a second mask with a straight cut through the infield
	Shortcut bool
	Samples  int
}

// DefaultOvalOptions is the oval used by the demo binaries
func DefaultOvalOptions() OvalOptions {
	return OvalOptions{
		Name:         "oval",
		Map:          "grass",
		CanvasWidth:  1024,
		CanvasHeight: 768,
		RadiusX:      380,
		RadiusY:      260,
		HalfWidth:    60,
		CellSize:     4,
		Traction:     0.9,
		Samples:      DefaultSamples,
	}
}

// OvalPath returns the SVG path of an ellipse with its bounding box at the
// origin
func OvalPath(rx, ry float64) string {
	cx, cy := rx, ry
	kx, ky := rx*kappa, ry*kappa
	return fmt.Sprintf(
		"M %g %g C %g %g %g %g %g %g C %g %g %g %g %g %g C %g %g %g %g %g %g C %g %g %g %g %g %g Z",
		cx+rx, cy,
		cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry,
		cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy,
		cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry,
		cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy,
	)
}

// NewOval builds the oval track with its checkpoint path centered on the
// canvas and a ring shaped mask around it
func NewOval(opts OvalOptions) (*Track, error) {
	if opts.RadiusX <= opts.HalfWidth || opts.RadiusY <= opts.HalfWidth {
		return nil, &ConfigurationError{Op: "build oval", Name: opts.Name, Err: fmt.Errorf("radii must exceed the half width %g", opts.HalfWidth)}
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 1
	}

	path, err := NewTrackPathFromSVG(OvalPath(opts.RadiusX, opts.RadiusY), PathOptions{
		Samples:      opts.Samples,
		CanvasWidth:  opts.CanvasWidth,
		CanvasHeight: opts.CanvasHeight,
		Scale:        1,
	})
	if err != nil {
		return nil, err
	}

	center := vec.Vec2D{X: opts.CanvasWidth / 2, Y: opts.CanvasHeight / 2}
	base := ringMask(opts, center, false)
	var shortcut *geom.Mask
	if opts.Shortcut {
		shortcut = ringMask(opts, center, true)
	}

	start := StartPosition{}
	if path.Len() > 1 {
		start.Angle = vec.AngleBetween(path.Points[0].Point, path.Points[1].Point)
	}
	starts := make([]StartPosition, 5)
	for i := range starts {
		starts[i] = start
	}

	return New(opts.Name, opts.Map, opts.Traction, path, base, shortcut, starts), nil
}

func ringMask(opts OvalOptions, center vec.Vec2D, cut bool) *geom.Mask {
	w := int(math.Ceil(opts.CanvasWidth / opts.CellSize))
	h := int(math.Ceil(opts.CanvasHeight / opts.CellSize))
	mask := geom.NewMask(w, h, opts.CellSize)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := vec.Vec2D{
				X: (float64(x)+0.5)*opts.CellSize - center.X,
				Y: (float64(y)+0.5)*opts.CellSize - center.Y,
			}
			outer := ellipseValue(p, opts.RadiusX+opts.HalfWidth, opts.RadiusY+opts.HalfWidth)
			inner := ellipseValue(p, opts.RadiusX-opts.HalfWidth, opts.RadiusY-opts.HalfWidth)
			free := outer <= 1 && inner >= 1
			if cut && math.Abs(p.Y) <= opts.HalfWidth && outer <= 1 {
				free = true
			}
			if !free {
				mask.Cells[y][x] = geom.CellWall
			}
		}
	}
	return mask
}

func ellipseValue(p vec.Vec2D, rx, ry float64) float64 {
	return (p.X*p.X)/(rx*rx) + (p.Y*p.Y)/(ry*ry)
}
