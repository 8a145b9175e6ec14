package geom

import (
	"testing"

	"topdownracer/vec"
)

func ringMask() *Mask {
	m := NewMask(10, 10, 10)
	for i := 0; i < 10; i++ {
		m.Cells[0][i] = CellWall
		m.Cells[9][i] = CellWall
		m.Cells[i][0] = CellWall
		m.Cells[i][9] = CellWall
	}
	return m
}

func TestLookupOutOfBounds(t *testing.T) {
	m := ringMask()
	cases := []vec.Vec2D{{X: -0.5, Y: 50}, {X: 50, Y: -1}, {X: 100, Y: 50}, {X: 50, Y: 100}, {X: 1e9, Y: 1e9}}
	for _, pos := range cases {
		if _, ok := m.Lookup(pos); ok {
			t.Fatalf("expected %v out of bounds", pos)
		}
		if !m.Occupied(pos) {
			t.Fatalf("expected %v to be reported as occupied", pos)
		}
		if _, hit := m.Collides([]vec.Vec2D{pos}); !hit {
			t.Fatalf("expected %v to collide", pos)
		}
	}
}

func TestCollidesReturnsCellPosition(t *testing.T) {
	m := ringMask()
	corners := []vec.Vec2D{{X: 50, Y: 50}, {X: 55, Y: 50}, {X: 95, Y: 43}}
	cell, hit := m.Collides(corners)
	if !hit {
		t.Fatalf("expected the third corner to collide")
	}
	if cell != (vec.Vec2D{X: 90, Y: 40}) {
		t.Fatalf("expected cell at (90,40), got=%v", cell)
	}

	if _, hit := m.Collides([]vec.Vec2D{{X: 50, Y: 50}, {X: 60, Y: 60}}); hit {
		t.Fatalf("expected free corners not to collide")
	}
}

func TestCircleOverlaps(t *testing.T) {
	m := ringMask()
	if m.CircleOverlaps(vec.Vec2D{X: 50, Y: 50}, 20) {
		t.Fatalf("expected a small circle in the middle to be clear")
	}
	if !m.CircleOverlaps(vec.Vec2D{X: 50, Y: 50}, 45) {
		t.Fatalf("expected a large circle to touch the walls")
	}
	if m.CircleOverlaps(vec.Vec2D{X: 15, Y: 50}, 1) {
		t.Fatalf("expected radius 1 to check only the center cell")
	}
	if !m.CircleOverlaps(vec.Vec2D{X: -5, Y: 50}, 3) {
		t.Fatalf("expected an out of bounds center to overlap")
	}
	// samples along x must see the wall even if y points at free cells
	if !m.CircleOverlaps(vec.Vec2D{X: 20, Y: 50}, 12) {
		t.Fatalf("expected the left wall to be sampled")
	}
}

func TestMapPixelToCollisionType(t *testing.T) {
	tests := []struct {
		r, g, b, a uint8
		expected   uint8
	}{
		{255, 0, 0, 0, CellFree},
		{255, 0, 0, 255, CellWall},
		{0, 200, 10, 255, CellGrass},
		{0, 10, 200, 255, CellWater},
		{100, 100, 100, 255, CellOther},
	}
	for _, tt := range tests {
		if got := MapPixelToCollisionType(tt.r, tt.g, tt.b, tt.a); got != tt.expected {
			t.Fatalf("expected %d for %v, got=%d", tt.expected, tt, got)
		}
	}
}
