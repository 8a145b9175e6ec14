package geom

import (
	"math"

	"topdownracer/vec"
)

// Collision types stored in a Mask cell
const (
	CellFree uint8 = iota
	CellWall
	CellGrass
	CellWater
	CellOther
)

const circleSamples = 16

// Mask is a 2D occupancy grid over the track. Cells are indexed [y][x] and
// Scale is the number of world units covered by one cell.
type Mask struct {
	Cells [][]uint8
	Scale float64
}

// NewMask allocates an all-free mask of the given size
func NewMask(width, height int, scale float64) *Mask {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &Mask{Cells: cells, Scale: scale}
}

// Width in cells
func (m *Mask) Width() int {
	if len(m.Cells) == 0 {
		return 0
	}
	return len(m.Cells[0])
}

// Height in cells
func (m *Mask) Height() int {
	return len(m.Cells)
}

// GridPosition maps a world position to its cell by floor division
func (m *Mask) GridPosition(pos vec.Vec2D) (int, int) {
	return int(math.Floor(pos.X / m.Scale)), int(math.Floor(pos.Y / m.Scale))
}

func (m *Mask) inBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cy < m.Height() && cx < m.Width()
}

// Cell returns the value at grid coordinates; ok is false out of bounds
func (m *Mask) Cell(cx, cy int) (uint8, bool) {
	if !m.inBounds(cx, cy) {
		return 0, false
	}
	return m.Cells[cy][cx], true
}

// Lookup returns the value of the cell containing pos
func (m *Mask) Lookup(pos vec.Vec2D) (uint8, bool) {
	return m.Cell(m.GridPosition(pos))
}

// Occupied reports whether pos is on a non-free cell. Out of bounds counts
// as occupied.
func (m *Mask) Occupied(pos vec.Vec2D) bool {
	value, ok := m.Lookup(pos)
	return !ok || value != CellFree
}

// IsWall reports whether the grid cell holds a wall
func (m *Mask) IsWall(cx, cy int) bool {
	value, ok := m.Cell(cx, cy)
	return ok && value == CellWall
}

// Collides returns the world position of the first cell under any corner
// that is occupied or out of bounds
func (m *Mask) Collides(corners []vec.Vec2D) (vec.Vec2D, bool) {
	for _, c := range corners {
		cx, cy := m.GridPosition(c)
		value, ok := m.Cell(cx, cy)
		if !ok || value != CellFree {
			return vec.Vec2D{X: float64(cx) * m.Scale, Y: float64(cy) * m.Scale}, true
		}
	}
	return vec.Zero, false
}

// CircleOverlaps samples the circle edge and reports whether any sample
// lands on an occupied cell. A radius of 1 checks the center cell only.
func (m *Mask) CircleOverlaps(center vec.Vec2D, radius float64) bool {
	if !m.inBounds(m.GridPosition(center)) {
		return true
	}
	if radius == 1 {
		return m.Occupied(center)
	}

	step := 2 * math.Pi / circleSamples
	for i := 0; i < circleSamples; i++ {
		angle := float64(i) * step
		edge := vec.Vec2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		if m.Occupied(edge) {
			return true
		}
	}
	return false
}

// MapPixelToCollisionType classifies a collider image pixel. Channels are
// 8-bit.
func MapPixelToCollisionType(r, g, b, a uint8) uint8 {
	switch {
	case a == 0:
		return CellFree
	case r > g && r > b:
		return CellWall
	case g > r && g > b:
		return CellGrass
	case b > r && b > g:
		return CellWater
	default:
		return CellOther
	}
}
