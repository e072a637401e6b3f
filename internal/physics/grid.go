package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection in a
// bounded playfield. Objects are inserted by position and index, then nearby
// objects can be queried via a 3x3 neighborhood lookup.
//
// Cell size must be >= the largest sum of half-extents of any two colliding
// objects so that every overlap is found within the neighborhood.
// Positions outside the field are clamped into the edge cells.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
}

// NewSpatialGrid creates a spatial grid covering a w x h field.
func NewSpatialGrid(w, h, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(w/cellSize)), 1)
	rows := max(int(math.Ceil(h/cellSize)), 1)

	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.posToCell(x, y)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c] {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(Clamp(x*g.invCellSize, 0, float64(g.cols-1))))
	row = int(math.Floor(Clamp(y*g.invCellSize, 0, float64(g.rows-1))))
	return col, row
}
