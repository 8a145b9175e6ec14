package game

import (
	"math"
	"testing"

	"topdownracer/geom"
	"topdownracer/track"
	"topdownracer/vec"
)

// openTrack is a 1000x1000 free area without walls with a straight line of
// checkpoints across the middle
func openTrack(mapName string) *track.Track {
	mask := geom.NewMask(100, 100, 10)
	points := make([]track.CheckPoint, 9)
	for i := range points {
		points[i] = track.CheckPoint{Point: vec.New(float64(100+100*i), 500), Tangent: vec.New(1, 0)}
	}
	starts := make([]track.StartPosition, 5)
	return track.New("open", mapName, 1, &track.TrackPath{Points: points}, mask, nil, starts)
}

func newTestCollisions(bodies ...*Body) *CollisionManager {
	t := openTrack("test")
	world := NewWorld(DefaultConfig().ForTrack(t))
	for _, b := range bodies {
		world.RegisterBody(b)
	}
	return NewCollisionManager(t, world)
}

func TestEffectsOverlapping(t *testing.T) {
	b := testBody(50, 50)
	c := newTestCollisions(b)
	near := NewEffectObject(1, EffectPothole, vec.New(60, 50))
	far := NewEffectObject(2, EffectPothole, vec.New(400, 400))
	c.Insert(near)
	c.Insert(far)

	got := c.EffectsOverlapping(b)
	if len(got) != 1 || got[0] != near {
		t.Fatalf("expected only the near pothole, got=%v", got)
	}
	if !c.Remove(near) || c.EffectCount() != 1 {
		t.Fatalf("expected the pothole removed, got count=%d", c.EffectCount())
	}
	if got := c.EffectsOverlapping(b); len(got) != 0 {
		t.Fatalf("expected no overlap after removal, got=%v", got)
	}
}

func TestRayCastHitsNearest(t *testing.T) {
	from := testBody(20, 100)
	car := testBody(120, 100)
	ghost := testBody(60, 100)
	ghost.Ghost = true
	bodies := []*Body{from, car, ghost}
	c := newTestCollisions(bodies...)

	pothole := NewEffectObject(1, EffectPothole, vec.New(70, 100))
	c.Insert(pothole)
	c.Insert(NewEffectObject(2, EffectIce, vec.New(100, 100)))

	hit, ok := c.RayCast(from, 200, 0, bodies)
	if !ok || hit.Effect != pothole {
		t.Fatalf("expected the pothole in front, got=%+v", hit)
	}
	if math.Abs(hit.Distance-38) > 1e-6 {
		t.Fatalf("expected the near edge at 38, got=%f", hit.Distance)
	}

	c.Remove(pothole)
	hit, ok = c.RayCast(from, 200, 0, bodies)
	if !ok || hit.Body != car || math.Abs(hit.Distance-85) > 1e-6 {
		t.Fatalf("expected the car behind the ghost at 85, got=%+v", hit)
	}

	if _, ok := c.RayCast(from, 200, math.Pi/2, bodies); ok {
		t.Fatalf("expected nothing to the side")
	}
}

func TestPathIntersections(t *testing.T) {
	c := newTestCollisions()
	obstacle := NewEffectObject(1, EffectSpikes, vec.New(300, 100))
	c.Insert(obstacle)
	c.Insert(NewEffectObject(2, EffectBoostStar, vec.New(100, 100)))
	c.Insert(NewEffectObject(3, EffectGravel, vec.New(500, 100)))

	window := make([]track.CheckPoint, 31)
	for i := range window {
		window[i] = track.CheckPoint{Point: vec.New(float64(i)*20, 100)}
	}

	got := c.PathIntersections(window)
	if len(got) != 1 {
		t.Fatalf("expected only the spikes to be avoided, got=%d intersections", len(got))
	}
	in := got[0]
	if in.Start != 9 || in.End != 21 || in.Distance != 0 {
		t.Fatalf("expected segments 9 to 21 crossing the obstacle, got=%+v", in)
	}
	if in.ObstacleCenter() != obstacle.Center() {
		t.Fatalf("expected the obstacle center %v, got=%v", obstacle.Center(), in.ObstacleCenter())
	}

	if got := c.PathIntersections(window[:1]); got != nil {
		t.Fatalf("expected no intersections for a single point")
	}
}

func TestVehicleCollisionsAndPairs(t *testing.T) {
	a := testBody(100, 100)
	b := testBody(120, 100)
	far := testBody(900, 900)
	c := newTestCollisions(a, b, far)

	pairs := c.world.Pairs()
	if len(pairs) != 1 || pairs[0] != [2]*Body{a, b} {
		t.Fatalf("expected one neighbouring pair, got=%v", pairs)
	}
	if hits := c.VehicleCollisions(); len(hits) != 1 {
		t.Fatalf("expected the overlapping cars to collide, got=%d", len(hits))
	}

	b.NoCollision = true
	if hits := c.VehicleCollisions(); len(hits) != 0 {
		t.Fatalf("expected no contact with a no-collision car, got=%d", len(hits))
	}
}

func TestWorldMovesBodiesBetweenCells(t *testing.T) {
	w := NewWorld(DefaultConfig())
	b := testBody(10, 10)
	w.RegisterBody(b)
	if b.CellX != 0 || b.CellY != 0 {
		t.Fatalf("expected cell 0,0, got=%d,%d", b.CellX, b.CellY)
	}

	b.Position = vec.New(300, 10)
	w.UpdateBodyCell(b)
	if b.CellX != 2 || len(w.GetCell(0, 0).Bodies()) != 0 || len(w.GetCell(2, 0).Bodies()) != 1 {
		t.Fatalf("expected the body to move to cell 2,0, got=%d,%d", b.CellX, b.CellY)
	}

	// Moving within the same cell keeps a single entry
	b.Position = vec.New(310, 20)
	w.UpdateBodyCell(b)
	if got := w.GetCell(2, 0).Bodies(); len(got) != 1 || got[0] != b {
		t.Fatalf("expected one entry in cell 2,0, got=%d", len(got))
	}
}
