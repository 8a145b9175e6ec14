package geom

import (
	"math"
	"testing"

	"topdownracer/vec"
)

const epsilon = 1e-9

var square = []vec.Vec2D{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}

func closeTo(a, b vec.Vec2D) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestRayCast(t *testing.T) {
	hit, ok := RayCast(vec.Vec2D{}, vec.Vec2D{X: 10, Y: 10}, square)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !closeTo(hit, vec.Vec2D{X: 5, Y: 5}) {
		t.Fatalf("expected hit at (5,5), got=%v", hit)
	}

	if _, ok := RayCast(vec.Vec2D{}, vec.Vec2D{X: -10, Y: -10}, square); ok {
		t.Fatalf("expected no hit for a ray pointing away")
	}
}

func TestRayCastNearestEdge(t *testing.T) {
	hit, ok := RayCast(vec.Vec2D{X: 0, Y: 10}, vec.Vec2D{X: 30, Y: 10}, square)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if !closeTo(hit, vec.Vec2D{X: 5, Y: 10}) {
		t.Fatalf("expected nearest hit at (5,10), got=%v", hit)
	}
}

func TestSegmentIntersectParallel(t *testing.T) {
	_, ok := SegmentIntersect(vec.Vec2D{X: 0, Y: 0}, vec.Vec2D{X: 10, Y: 0}, vec.Vec2D{X: 2, Y: 0}, vec.Vec2D{X: 8, Y: 0})
	if ok {
		t.Fatalf("expected collinear segments to report no intersection")
	}
	_, ok = SegmentIntersect(vec.Vec2D{X: 0, Y: 0}, vec.Vec2D{X: 10, Y: 0}, vec.Vec2D{X: 0, Y: 1}, vec.Vec2D{X: 10, Y: 1})
	if ok {
		t.Fatalf("expected parallel segments to report no intersection")
	}
}

func TestOrientedCorners(t *testing.T) {
	corners := OrientedCorners(CollisionObject{X: 10, Y: 20, Width: 30, Height: 14})
	expected := [4]vec.Vec2D{
		{X: 25, Y: 13},
		{X: 25, Y: 27},
		{X: -5, Y: 27},
		{X: -5, Y: 13},
	}
	for i := range corners {
		if !closeTo(corners[i], expected[i]) {
			t.Fatalf("expected corner %d at %v, got=%v", i, expected[i], corners[i])
		}
	}

	rotated := OrientedCorners(CollisionObject{Width: 30, Height: 14, Angle: math.Pi / 2})
	// heading +y: the front edge is at y=15
	if !closeTo(rotated[0], vec.Vec2D{X: 7, Y: 15}) {
		t.Fatalf("expected rotated front-left at (7,15), got=%v", rotated[0])
	}
	center := vec.Lerp(rotated[0], rotated[2], 0.5)
	if !closeTo(center, vec.Zero) {
		t.Fatalf("expected diagonal midpoint at the center, got=%v", center)
	}
}

func TestSATOverlapSymmetric(t *testing.T) {
	objects := []CollisionObject{
		{X: 0, Y: 0, Width: 30, Height: 14},
		{X: 20, Y: 5, Width: 30, Height: 14, Angle: 0.7},
		{X: 100, Y: 100, Width: 10, Height: 10},
		{X: 28, Y: 0, Width: 30, Height: 14, Angle: math.Pi / 4},
		{X: 0, Y: 30, Width: 30, Height: 14, Angle: -1.2},
	}
	for i := range objects {
		for j := range objects {
			a := Corners(objects[i])
			b := Corners(objects[j])
			if SATOverlap(a, b) != SATOverlap(b, a) {
				t.Fatalf("expected symmetric result for %d/%d", i, j)
			}
		}
	}

	if !SATOverlap(Corners(objects[0]), Corners(objects[1])) {
		t.Fatalf("expected overlapping rectangles to overlap")
	}
	if SATOverlap(Corners(objects[0]), Corners(objects[2])) {
		t.Fatalf("expected distant rectangles not to overlap")
	}
}

func TestSegmentToPolygonDistance(t *testing.T) {
	if d := SegmentToPolygonDistance(vec.Vec2D{X: 0, Y: 10}, vec.Vec2D{X: 30, Y: 10}, square); d != 0 {
		t.Fatalf("expected 0 for a crossing segment, got=%f", d)
	}
	d := SegmentToPolygonDistance(vec.Vec2D{X: 0, Y: 0}, vec.Vec2D{X: 20, Y: 0}, square)
	if math.Abs(d-5) > epsilon {
		t.Fatalf("expected 5, got=%f", d)
	}
	if d := PointToSegmentDistance(vec.Vec2D{X: 3, Y: 4}, vec.Zero, vec.Zero); math.Abs(d-5) > epsilon {
		t.Fatalf("expected point distance for a degenerate segment, got=%f", d)
	}
}

func TestLinearRegression(t *testing.T) {
	slope, intercept := LinearRegression([]vec.Vec2D{{X: 1, Y: 0}, {X: 1, Y: 2}, {X: 1, Y: 1}})
	if !math.IsInf(slope, 1) || intercept != 1 {
		t.Fatalf("expected vertical fit (Inf, 1), got=(%f, %f)", slope, intercept)
	}

	slope, intercept = LinearRegression([]vec.Vec2D{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 5}})
	if math.Abs(slope-2) > epsilon || math.Abs(intercept-1) > epsilon {
		t.Fatalf("expected y=2x+1, got=(%f, %f)", slope, intercept)
	}

	slope, intercept = LinearRegression([]vec.Vec2D{{X: 4, Y: 4}})
	if slope != 0 || intercept != 0 {
		t.Fatalf("expected (0, 0) for a single sample, got=(%f, %f)", slope, intercept)
	}
}
