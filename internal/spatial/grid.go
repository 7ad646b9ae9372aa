// Package spatial buckets entities into a uniform grid over the canvas so a
// point query only has to look at the entities sharing one cell.
package spatial

import (
	"cmp"
	"math"
	"slices"
)

// Item is an entity the grid can hold. Items are compared by identity, so
// pointer types are the usual choice.
type Item interface {
	comparable
	Entity
}

type cellRange struct {
	minCol, minRow int
	maxCol, maxRow int
}

type member struct {
	cells cellRange
	seq   uint64
}

// Grid is a cellRatio x cellRatio grid over a width x height region. Each
// cell keeps the items whose bounding box overlaps it, in insertion order.
// An item may sit in several cells.
type Grid[E Item] struct {
	width, height float64
	ratio         int
	cellWidth     float64
	cellHeight    float64
	cells         [][]E
	members       map[E]member
	seq           uint64
}

// New returns an empty grid. A ratio below one is treated as one.
func New[E Item](width, height float64, ratio int) *Grid[E] {
	if ratio < 1 {
		ratio = 1
	}
	g := &Grid[E]{
		ratio:   ratio,
		members: make(map[E]member),
	}
	g.setDimensions(width, height)
	return g
}

func (g *Grid[E]) setDimensions(width, height float64) {
	g.width = math.Max(width, 0)
	g.height = math.Max(height, 0)
	g.cellWidth = g.width / float64(g.ratio)
	g.cellHeight = g.height / float64(g.ratio)
	g.cells = make([][]E, g.ratio*g.ratio)
}

// Width returns the region width.
func (g *Grid[E]) Width() float64 { return g.width }

// Height returns the region height.
func (g *Grid[E]) Height() float64 { return g.height }

// Ratio returns the number of cells along each axis.
func (g *Grid[E]) Ratio() int { return g.ratio }

// CellSize returns the width and height of one cell.
func (g *Grid[E]) CellSize() (float64, float64) { return g.cellWidth, g.cellHeight }

// Len returns the number of items in the grid.
func (g *Grid[E]) Len() int { return len(g.members) }

// Has reports whether e is in the grid.
func (g *Grid[E]) Has(e E) bool {
	_, ok := g.members[e]
	return ok
}

// Add inserts e into every cell its bounding box overlaps. Adding an item
// that is already present refreshes its cells.
func (g *Grid[E]) Add(e E) {
	if _, ok := g.members[e]; ok {
		g.Remove(e)
	}
	b := e.Bounds()
	minCol, minRow := g.cellOf(b.Min.X, b.Min.Y)
	maxCol, maxRow := g.cellOf(b.Max.X, b.Max.Y)
	r := cellRange{minCol, minRow, maxCol, maxRow}
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			i := g.index(col, row)
			g.cells[i] = append(g.cells[i], e)
		}
	}
	g.seq++
	g.members[e] = member{cells: r, seq: g.seq}
}

// Remove takes e out of the cells it was inserted into. It reports whether e
// was present.
func (g *Grid[E]) Remove(e E) bool {
	m, ok := g.members[e]
	if !ok {
		return false
	}
	r := m.cells
	for row := r.minRow; row <= r.maxRow; row++ {
		for col := r.minCol; col <= r.maxCol; col++ {
			i := g.index(col, row)
			g.cells[i] = without(g.cells[i], e)
		}
	}
	delete(g.members, e)
	return true
}

// Update re-buckets e after its bounding box changed.
func (g *Grid[E]) Update(e E) {
	g.Remove(e)
	g.Add(e)
}

// At returns the first item whose bounding box contains (x, y).
func (g *Grid[E]) At(x, y float64) (E, bool) {
	col, row := g.cellOf(x, y)
	for _, e := range g.cells[g.index(col, row)] {
		if e.Bounds().Contains(x, y) {
			return e, true
		}
	}
	// Float rounding at a cell border can leave the owning cell short, so
	// look at its neighbours too.
	for r := max(row-1, 0); r <= min(row+1, g.ratio-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.ratio-1); c++ {
			if c == col && r == row {
				continue
			}
			for _, e := range g.cells[g.index(c, r)] {
				if e.Bounds().Contains(x, y) {
					return e, true
				}
			}
		}
	}
	var zero E
	return zero, false
}

// Resize re-derives the cell size from the new region and re-inserts every
// item in the order it was last added.
func (g *Grid[E]) Resize(width, height float64) {
	items := make([]E, 0, len(g.members))
	for e := range g.members {
		items = append(items, e)
	}
	slices.SortFunc(items, func(a, b E) int {
		return cmp.Compare(g.members[a].seq, g.members[b].seq)
	})
	g.members = make(map[E]member, len(items))
	g.setDimensions(width, height)
	for _, e := range items {
		g.Add(e)
	}
}

// Cell returns the items bucketed at (col, row).
func (g *Grid[E]) Cell(col, row int) []E {
	if col < 0 || row < 0 || col >= g.ratio || row >= g.ratio {
		return nil
	}
	return g.cells[g.index(col, row)]
}

func (g *Grid[E]) cellOf(x, y float64) (int, int) {
	return clampCell(x, g.cellWidth, g.ratio), clampCell(y, g.cellHeight, g.ratio)
}

func (g *Grid[E]) index(col, row int) int {
	return row*g.ratio + col
}

func clampCell(v, size float64, ratio int) int {
	if size <= 0 || math.IsNaN(v) {
		return 0
	}
	c := int(math.Floor(v / size))
	if c < 0 {
		return 0
	}
	if c >= ratio {
		return ratio - 1
	}
	return c
}

func without[E comparable](items []E, e E) []E {
	for i, item := range items {
		if item == e {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
