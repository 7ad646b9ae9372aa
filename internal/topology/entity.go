package topology

import (
	"fmt"

	"graphed/internal/spatial"
)

// Symbol is the unique label of a vertex.
type Symbol string

// EdgeKey addresses an edge by its ordered endpoints.
type EdgeKey struct {
	From, To Symbol
}

func (k EdgeKey) Reverse() EdgeKey {
	return EdgeKey{From: k.To, To: k.From}
}

func (k EdgeKey) String() string {
	return fmt.Sprintf("%s->%s", k.From, k.To)
}

// Vertex is a labeled circle on the canvas. Its bounding box is the square of
// half-size radius + outline width around its position.
type Vertex struct {
	symbol    Symbol
	pos       spatial.Point
	halfSize  float64
	bounds    spatial.Rect
	neighbors []Symbol
}

// NewVertex returns a vertex at (x, y) with the given half-size.
func NewVertex(sym Symbol, x, y, halfSize float64) *Vertex {
	v := &Vertex{symbol: sym, halfSize: halfSize}
	v.MoveTo(x, y)
	return v
}

func (v *Vertex) Symbol() Symbol { return v.symbol }
func (v *Vertex) Position() spatial.Point { return v.pos }
func (v *Vertex) Bounds() spatial.Rect { return v.bounds }
func (v *Vertex) String() string { return string(v.symbol) }
func (v *Vertex) HasNeighbor(sym Symbol) bool { return indexOf(v.neighbors, sym) >= 0 }

// Neighbors returns the symbols this vertex shares an edge with, in the order
// the first edge to each was inserted.
func (v *Vertex) Neighbors() []Symbol {
	return append([]Symbol(nil), v.neighbors...)
}

// MoveTo sets the position and recomputes the bounding box.
func (v *Vertex) MoveTo(x, y float64) {
	v.pos = spatial.Point{X: x, Y: y}
	v.bounds = spatial.RectAround(v.pos, v.halfSize)
}

func (v *Vertex) addNeighbor(sym Symbol) {
	if !v.HasNeighbor(sym) {
		v.neighbors = append(v.neighbors, sym)
	}
}

func (v *Vertex) removeNeighbor(sym Symbol) {
	if i := indexOf(v.neighbors, sym); i >= 0 {
		v.neighbors = append(v.neighbors[:i], v.neighbors[i+1:]...)
	}
}

// Edge joins two vertices. Its hit box is a square of side boxSize centred on
// the midpoint of its endpoints, so it has to be recomputed whenever either
// endpoint moves.
type Edge struct {
	from, to  Symbol
	weight    float64
	boxSize   float64
	fromPoint spatial.Point
	toPoint   spatial.Point
	center    spatial.Point
	bounds    spatial.Rect
}

// NewEdge returns an edge between from and to placed at the given endpoints.
func NewEdge(from, to *Vertex, weight, boxSize float64) *Edge {
	e := &Edge{from: from.symbol, to: to.symbol, weight: weight, boxSize: boxSize}
	e.Reposition(from.pos, to.pos)
	return e
}

func (e *Edge) From() Symbol { return e.from }
func (e *Edge) To() Symbol { return e.to }
func (e *Edge) Key() EdgeKey { return EdgeKey{e.from, e.to} }
func (e *Edge) Weight() float64 { return e.weight }
func (e *Edge) FromPoint() spatial.Point { return e.fromPoint }
func (e *Edge) ToPoint() spatial.Point { return e.toPoint }
func (e *Edge) Center() spatial.Point { return e.center }
func (e *Edge) Bounds() spatial.Rect { return e.bounds }
func (e *Edge) String() string { return e.Key().String() }

// Other returns the endpoint opposite sym.
func (e *Edge) Other(sym Symbol) Symbol {
	if e.from == sym {
		return e.to
	}
	return e.from
}

// Reposition recomputes the midpoint and hit box from the endpoint positions.
func (e *Edge) Reposition(from, to spatial.Point) {
	e.fromPoint = from
	e.toPoint = to
	e.center = spatial.Midpoint(from, to)
	e.bounds = spatial.RectAround(e.center, e.boxSize/2)
}

// TrackingEdge is the line that follows the cursor while an edge is being
// drawn. It never enters the store.
type TrackingEdge struct {
	Start, End spatial.Point
}

func (t *TrackingEdge) Bounds() spatial.Rect {
	return spatial.Rect{
		Min: spatial.Point{X: min(t.Start.X, t.End.X), Y: min(t.Start.Y, t.End.Y)},
		Max: spatial.Point{X: max(t.Start.X, t.End.X), Y: max(t.Start.Y, t.End.Y)},
	}
}

func indexOf(syms []Symbol, sym Symbol) int {
	for i, s := range syms {
		if s == sym {
			return i
		}
	}
	return -1
}
