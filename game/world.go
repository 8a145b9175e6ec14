package game

import "slices"

// Cell is the set of bodies whose centre lies in one grid square
type Cell struct {
	bodies []*Body
}

func (c *Cell) add(b *Body) {
	if !slices.Contains(c.bodies, b) {
		c.bodies = append(c.bodies, b)
	}
}

func (c *Cell) remove(b *Body) {
	if i := slices.Index(c.bodies, b); i >= 0 {
		c.bodies = slices.Delete(c.bodies, i, i+1)
	}
}

// Bodies returns the bodies in the cell
func (c *Cell) Bodies() []*Body {
	return c.bodies
}

// World buckets the cars of a race into a uniform grid so car to car tests
// only look at neighbouring cells
type World struct {
	// Preallocated 2D grid of cells
	Cells [][]*Cell

	// Configuration
	Config Config

	// All bodies in the world (for iteration)
	Bodies []*Body
}

// NewWorld creates a new world with preallocated cells
func NewWorld(config Config) *World {
	cellCountX := config.CellCountX()
	cellCountY := config.CellCountY()

	cells := make([][]*Cell, cellCountX)
	for x := 0; x < cellCountX; x++ {
		cells[x] = make([]*Cell, cellCountY)
		for y := 0; y < cellCountY; y++ {
			cells[x][y] = &Cell{}
		}
	}

	return &World{
		Cells:  cells,
		Config: config,
		Bodies: make([]*Body, 0, 8),
	}
}

// WorldToCell converts world coordinates to cell coordinates
func (w *World) WorldToCell(x, y float64) (int, int) {
	cellX := int((x - w.Config.WorldMinX) / w.Config.CellSize)
	cellY := int((y - w.Config.WorldMinY) / w.Config.CellSize)

	// Clamp to valid cell range
	cellX = max(0, min(cellX, w.Config.CellCountX()-1))
	cellY = max(0, min(cellY, w.Config.CellCountY()-1))

	return cellX, cellY
}

// GetCell returns the cell at the given cell coordinates
func (w *World) GetCell(cellX, cellY int) *Cell {
	if cellX < 0 || cellX >= w.Config.CellCountX() ||
		cellY < 0 || cellY >= w.Config.CellCountY() {
		return nil
	}
	return w.Cells[cellX][cellY]
}

// RegisterBody adds a body to the world and assigns it to the correct cell
func (w *World) RegisterBody(body *Body) {
	cellX, cellY := w.WorldToCell(body.Position.X, body.Position.Y)
	body.CellX = cellX
	body.CellY = cellY

	if cell := w.GetCell(cellX, cellY); cell != nil {
		cell.add(body)
	}
	w.Bodies = append(w.Bodies, body)
}

// UpdateBodyCell updates a body's cell membership if it moved
func (w *World) UpdateBodyCell(body *Body) {
	newCellX, newCellY := w.WorldToCell(body.Position.X, body.Position.Y)
	if newCellX == body.CellX && newCellY == body.CellY {
		return
	}

	if oldCell := w.GetCell(body.CellX, body.CellY); oldCell != nil {
		oldCell.remove(body)
	}
	body.CellX = newCellX
	body.CellY = newCellY
	if newCell := w.GetCell(newCellX, newCellY); newCell != nil {
		newCell.add(body)
	}
}

// GetCellsForBody returns the 3x3 block of cells around a body. Bodies are
// stored in their center cell only, so neighbours must be checked too.
func (w *World) GetCellsForBody(body *Body) []*Cell {
	cells := make([]*Cell, 0, 9)
	centerX, centerY := w.WorldToCell(body.Position.X, body.Position.Y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if cell := w.GetCell(centerX+dx, centerY+dy); cell != nil {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Pairs returns every pair of bodies sharing a neighbourhood, each pair once,
// in registration order
func (w *World) Pairs() [][2]*Body {
	order := make(map[*Body]int, len(w.Bodies))
	for i, b := range w.Bodies {
		order[b] = i
	}

	var pairs [][2]*Body
	for i, body := range w.Bodies {
		for _, cell := range w.GetCellsForBody(body) {
			for _, other := range cell.Bodies() {
				// Visit each pair from its earlier body only
				if j, ok := order[other]; ok && j > i {
					pairs = append(pairs, [2]*Body{body, other})
				}
			}
		}
	}
	return pairs
}
