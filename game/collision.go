package game

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"topdownracer/geom"
	"topdownracer/track"
	"topdownracer/vec"
)

// pathIntersectionThreshold is how close a lookahead segment must pass an
// obstacle to count as intersecting it
const pathIntersectionThreshold = 100.0

// RayHit is the nearest thing a ray from a body ran into
type RayHit struct {
	Point    vec.Vec2D
	Distance float64
	Body     *Body         // Set when a car was hit
	Effect   *EffectObject // Set when an effect was hit
}

// CollisionManager answers the geometric questions of one race: car against
// track, car against car, rays and the lookahead corridor against effects.
// Effects are kept in an R-tree.
type CollisionManager struct {
	track   *track.Track
	world   *World
	effects *rtreego.Rtree
}

// NewCollisionManager creates a collision manager for a race
func NewCollisionManager(t *track.Track, world *World) *CollisionManager {
	return &CollisionManager{
		track:   t,
		world:   world,
		effects: rtreego.NewTree(2, 25, 50),
	}
}

// Mask is the occupancy grid in effect
func (c *CollisionManager) Mask() *geom.Mask {
	return c.track.Mask()
}

// TrackCollision returns the world position of the occupied cell under one
// of the body's corners
func (c *CollisionManager) TrackCollision(b *Body) (vec.Vec2D, bool) {
	corners := b.Corners()
	return c.track.Mask().Collides(corners[:])
}

// Overlap tests two oriented rectangles
func (c *CollisionManager) Overlap(a, b [4]vec.Vec2D) bool {
	return geom.SATOverlap(a[:], b[:])
}

// VehicleCollisions lists the pairs of cars whose colliders overlap. Cars
// that do not collide are skipped.
func (c *CollisionManager) VehicleCollisions() [][2]*Body {
	var hits [][2]*Body
	for _, pair := range c.world.Pairs() {
		a, b := pair[0], pair[1]
		if !a.Collides() || !b.Collides() {
			continue
		}
		if c.Overlap(a.Corners(), b.Corners()) {
			hits = append(hits, pair)
		}
	}
	return hits
}

// Insert adds an effect to the index
func (c *CollisionManager) Insert(e *EffectObject) {
	c.effects.Insert(e)
}

// Remove drops an effect from the index
func (c *CollisionManager) Remove(e *EffectObject) bool {
	return c.effects.Delete(e)
}

// EffectCount is the number of indexed effects
func (c *CollisionManager) EffectCount() int {
	return c.effects.Size()
}

func (c *CollisionManager) search(lo, hi vec.Vec2D) []*EffectObject {
	rect, err := rtreego.NewRect(rtreego.Point{lo.X, lo.Y}, []float64{max(hi.X-lo.X, minExtent), max(hi.Y-lo.Y, minExtent)})
	if err != nil {
		return nil
	}
	found := c.effects.SearchIntersect(rect)
	out := make([]*EffectObject, 0, len(found))
	for _, s := range found {
		out = append(out, s.(*EffectObject))
	}
	return out
}

// EffectsNear returns the effects whose bounds come within radius of point
func (c *CollisionManager) EffectsNear(point vec.Vec2D, radius float64) []*EffectObject {
	return c.search(vec.New(point.X-radius, point.Y-radius), vec.New(point.X+radius, point.Y+radius))
}

// Crowded reports whether a live effect sits within twice its longer side
// of point
func (c *CollisionManager) Crowded(point vec.Vec2D) bool {
	for _, e := range c.EffectsNear(point, 2*maxEffectExtent()) {
		if !e.removed && vec.Distance(point, e.Center()) <= 2*e.Extent() {
			return true
		}
	}
	return false
}

// EffectsOverlapping returns the effects the body's collider overlaps
func (c *CollisionManager) EffectsOverlapping(b *Body) []*EffectObject {
	corners := b.Corners()
	lo, hi := bounds(corners[:])
	var out []*EffectObject
	for _, e := range c.search(lo, hi) {
		if c.Overlap(corners, e.Corners()) {
			out = append(out, e)
		}
	}
	return out
}

// RayCast shoots a ray of the given length from the body along its heading
// turned by angleOffset and returns the nearest car or visible effect hit
func (c *CollisionManager) RayCast(from *Body, length, angleOffset float64, bodies []*Body) (RayHit, bool) {
	start := from.Position
	end := vec.Add(start, vec.FromAngle(length, from.Angle+angleOffset))

	best := RayHit{Distance: math.Inf(1)}
	consider := func(polygon [4]vec.Vec2D) (vec.Vec2D, float64, bool) {
		p, ok := geom.RayCast(start, end, polygon[:])
		if !ok {
			return vec.Zero, 0, false
		}
		d := vec.Distance(start, p)
		return p, d, d < best.Distance
	}

	for _, b := range bodies {
		if b == from || b.Ghost {
			continue
		}
		if p, d, ok := consider(b.Corners()); ok {
			best = RayHit{Point: p, Distance: d, Body: b}
		}
	}

	lo, hi := bounds([]vec.Vec2D{start, end})
	for _, e := range c.search(lo, hi) {
		if e.Config().Hidden {
			continue
		}
		if p, d, ok := consider(e.Corners()); ok {
			best = RayHit{Point: p, Distance: d, Effect: e}
		}
	}

	if math.IsInf(best.Distance, 1) {
		return RayHit{}, false
	}
	return best, true
}

// PathIntersections scans the lookahead window against nearby obstacles.
// For each obstacle it reports the first contiguous run of window segments
// passing within the threshold; a run still open at the end of the window
// closes on the last point. Boost stars are not avoided.
func (c *CollisionManager) PathIntersections(window []track.CheckPoint) []track.PathIntersection {
	if len(window) < 2 {
		return nil
	}
	points := make([]vec.Vec2D, len(window))
	for i, cp := range window {
		points[i] = cp.Point
	}
	lo, hi := bounds(points)
	lo = vec.New(lo.X-pathIntersectionThreshold, lo.Y-pathIntersectionThreshold)
	hi = vec.New(hi.X+pathIntersectionThreshold, hi.Y+pathIntersectionThreshold)

	var out []track.PathIntersection
	for _, e := range c.search(lo, hi) {
		cfg := e.Config()
		if e.Kind == EffectBoostStar || cfg.Category == CategorySurface {
			continue
		}
		corners := e.Corners()

		start, closest := -1, math.Inf(1)
		for i := 0; i+1 < len(points); i++ {
			d := geom.SegmentToPolygonDistance(points[i], points[i+1], corners[:])
			if d < pathIntersectionThreshold {
				if start < 0 {
					start = i
				}
				closest = math.Min(closest, d)
				continue
			}
			if start >= 0 {
				out = append(out, track.PathIntersection{Corners: corners, Start: start, End: i, Distance: closest})
				start = -1
				break
			}
		}
		if start >= 0 {
			out = append(out, track.PathIntersection{Corners: corners, Start: start, End: len(points) - 1, Distance: closest})
		}
	}
	return out
}

func bounds(points []vec.Vec2D) (vec.Vec2D, vec.Vec2D) {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = vec.New(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = vec.New(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	return lo, hi
}
