package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(g *SpatialGrid, x, y float64) []int {
	var out []int
	g.QueryAround(x, y, func(i int) bool {
		out = append(out, i)
		return false
	})
	return out
}

func TestGridFindsNeighbours(t *testing.T) {
	g := NewSpatialGrid(800, 600, 64)
	g.Insert(100, 100, 1)
	g.Insert(150, 120, 2)
	g.Insert(700, 500, 3)

	found := collect(g, 110, 110)
	assert.ElementsMatch(t, []int{1, 2}, found)
}

func TestGridDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(800, 600, 64)
	g.Insert(790, 300, 1)

	assert.Empty(t, collect(g, 5, 300))
}

func TestGridClampsOutsideField(t *testing.T) {
	g := NewSpatialGrid(800, 600, 64)
	g.Insert(400, -20, 1)

	assert.Equal(t, []int{1}, collect(g, 400, 10))
	assert.Equal(t, []int{1}, collect(g, 400, -45))
}

func TestGridClear(t *testing.T) {
	g := NewSpatialGrid(800, 600, 64)
	g.Insert(100, 100, 1)
	g.Clear()
	assert.Empty(t, collect(g, 100, 100))
}

func TestGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(800, 600, 64)
	g.Insert(100, 100, 1)
	g.Insert(101, 101, 2)

	calls := 0
	g.QueryAround(100, 100, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)
}
