package game

import (
	"github.com/dhconnelly/rtreego"

	"topdownracer/geom"
	"topdownracer/vec"
)

// EffectObject is an obstacle, perk or surface patch lying on the track
type EffectObject struct {
	ID     int
	Kind   EffectKind
	Object geom.CollisionObject

	// Bodies that overlapped on the previous tick
	colliding map[*Body]bool
	// Bodies a puddle actually slowed down, restored on exit
	applied map[*Body]bool
	removed bool
}

// NewEffectObject creates an effect of kind centered at pos
func NewEffectObject(id int, kind EffectKind, pos vec.Vec2D) *EffectObject {
	cfg := GetEffectConfig(kind)
	return &EffectObject{
		ID:        id,
		Kind:      kind,
		Object:    geom.CollisionObject{X: pos.X, Y: pos.Y, Width: cfg.Width, Height: cfg.Height},
		colliding: make(map[*Body]bool),
		applied:   make(map[*Body]bool),
	}
}

// Config returns the configuration of the effect kind
func (e *EffectObject) Config() EffectConfig {
	return GetEffectConfig(e.Kind)
}

// Center of the effect
func (e *EffectObject) Center() vec.Vec2D {
	return e.Object.Center()
}

// Corners of the effect collider
func (e *EffectObject) Corners() [4]vec.Vec2D {
	return geom.OrientedCorners(e.Object)
}

// Extent is the larger side of the collider
func (e *EffectObject) Extent() float64 {
	return max(e.Object.Width, e.Object.Height)
}

// Bounds is the axis aligned box used by the spatial index
func (e *EffectObject) Bounds() rtreego.Rect {
	corners := e.Corners()
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		lo = vec.New(min(lo.X, c.X), min(lo.Y, c.Y))
		hi = vec.New(max(hi.X, c.X), max(hi.Y, c.Y))
	}
	rect, err := rtreego.NewRect(rtreego.Point{lo.X, lo.Y}, []float64{max(hi.X-lo.X, minExtent), max(hi.Y-lo.Y, minExtent)})
	if err != nil {
		// Lengths are clamped positive above
		panic(err)
	}
	return rect
}

// rtreego rejects zero lengths
const minExtent = 0.01
