package fractal

import "fmt"

// Grid holds the iteration values of one pass.
// Rows are allocated by the worker whose row partition covers them; the
// row index itself belongs to worker 0.
type Grid struct {
	Width, Height int

	rows [][]uint8
}

func allocGrid(a Allocator, width, height int) (*Grid, error) {
	index, err := a.AllocIndex(height)
	if err != nil {
		return nil, fmt.Errorf("grid index %d rows: %w", height, err)
	}
	return &Grid{Width: width, Height: height, rows: index}, nil
}

// allocRows fills the rows in r with one segment from a.
func (g *Grid) allocRows(a Allocator, r Range) error {
	if r.Len() == 0 {
		return nil
	}
	rows, err := a.AllocRows(r.Len(), g.Width)
	if err != nil {
		return fmt.Errorf("grid rows [%d,%d): %w", r.Start, r.End, err)
	}
	copy(g.rows[r.Start:r.End], rows)
	return nil
}

func (g *Grid) freeRows(a Allocator, r Range) {
	if r.Len() == 0 {
		return
	}
	a.FreeRows(g.rows[r.Start:r.End])
	clear(g.rows[r.Start:r.End])
}

func (g *Grid) free(a Allocator) {
	a.FreeIndex(g.rows)
	g.rows = nil
}

// release hands back everything still held after an aborted run.
func (g *Grid) release(a Allocator) {
	var held [][]uint8
	for _, r := range g.rows {
		if r != nil {
			held = append(held, r)
		}
	}
	if len(held) > 0 {
		a.FreeRows(held)
	}
	g.free(a)
}

// Row returns row y. The slice aliases the grid.
func (g *Grid) Row(y int) []uint8 {
	return g.rows[y]
}

// At returns the value at row y, column x.
func (g *Grid) At(x, y int) uint8 {
	return g.rows[y][x]
}

func (g *Grid) set(x, y int, v uint8) {
	g.rows[y][x] = v
}
