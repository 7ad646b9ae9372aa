package graph

import (
	"fmt"
	"strings"

	"graphed/internal/spatial"
	"graphed/internal/topology"
)

// Selection, hover and the tracking edge are interaction state. They are not
// part of the topology and never enter a command log.

// SelectVertex makes sym the single current selection. Any hover is cleared,
// since hovering is suppressed while a vertex is selected.
func (e *Engine) SelectVertex(sym topology.Symbol) error {
	v := e.store.Vertex(sym)
	if v == nil {
		return fmt.Errorf("select %q: %w", sym, ErrMissingVertex)
	}
	if e.selected == v {
		return nil
	}
	e.DeselectVertex()
	e.HoverNothing()
	e.selected = v
	e.Events.VertexSelected.Notify(vertexEvent(v))
	return nil
}

// DeselectVertex clears the selection, dropping the tracking edge with it.
func (e *Engine) DeselectVertex() {
	if e.selected == nil {
		return
	}
	e.RemoveTrackingEdge()
	v := e.selected
	e.selected = nil
	e.Events.VertexDeselected.Notify(vertexEvent(v))
}

// Selected returns the selected vertex, or nil.
func (e *Engine) Selected() *topology.Vertex { return e.selected }

// HoverVertex marks sym as hovered. It does nothing while a vertex is
// selected.
func (e *Engine) HoverVertex(sym topology.Symbol) error {
	v := e.store.Vertex(sym)
	if v == nil {
		return fmt.Errorf("hover %q: %w", sym, ErrMissingVertex)
	}
	if e.selected != nil || e.hoveredVertex == v {
		return nil
	}
	e.HoverNothing()
	e.hoveredVertex = v
	e.Events.VertexHovered.Notify(vertexEvent(v))
	return nil
}

// HoverEdge marks the edge addressed by (from, to) as hovered. It does
// nothing while a vertex is selected.
func (e *Engine) HoverEdge(from, to topology.Symbol) error {
	edge := e.store.Edge(from, to)
	if edge == nil {
		return fmt.Errorf("hover %s->%s: %w", from, to, ErrUnknownEdge)
	}
	if e.selected != nil || e.hoveredEdge == edge {
		return nil
	}
	e.HoverNothing()
	e.hoveredEdge = edge
	e.Events.EdgeHovered.Notify(edgeEvent(edge))
	return nil
}

// HoverNothing clears whatever is hovered.
func (e *Engine) HoverNothing() {
	if v := e.hoveredVertex; v != nil {
		e.hoveredVertex = nil
		e.Events.VertexUnhovered.Notify(vertexEvent(v))
	}
	if edge := e.hoveredEdge; edge != nil {
		e.hoveredEdge = nil
		e.Events.EdgeUnhovered.Notify(edgeEvent(edge))
	}
}

// HoverAt hovers whatever lies under (x, y). A vertex under the cursor wins
// over an edge.
func (e *Engine) HoverAt(x, y float64) {
	if e.selected != nil {
		e.HoverNothing()
		return
	}
	if v := e.VertexAt(x, y); v != nil {
		e.HoverVertex(v.Symbol())
		return
	}
	if edge := e.EdgeAt(x, y); edge != nil {
		e.HoverEdge(edge.From(), edge.To())
		return
	}
	e.HoverNothing()
}

// Hovered returns the hovered vertex or edge. At most one is non-nil.
func (e *Engine) Hovered() (*topology.Vertex, *topology.Edge) {
	return e.hoveredVertex, e.hoveredEdge
}

// AddTrackingEdge starts a line from the selected vertex to (x, y). If one
// is already showing it is moved instead.
func (e *Engine) AddTrackingEdge(x, y float64) error {
	if e.selected == nil {
		return fmt.Errorf("tracking edge: %w", ErrNoSelection)
	}
	if e.tracking != nil {
		e.MoveTrackingEdge(x, y)
		return nil
	}
	e.tracking = &topology.TrackingEdge{
		Start: e.selected.Position(),
		End:   spatial.Point{X: x, Y: y},
	}
	e.Events.TrackingEdgeAdded.Notify(trackingEvent(e.tracking))
	return nil
}

// MoveTrackingEdge moves the loose end of the tracking edge. It does nothing
// when there is no tracking edge.
func (e *Engine) MoveTrackingEdge(x, y float64) {
	if e.tracking == nil {
		return
	}
	e.tracking.End = spatial.Point{X: x, Y: y}
	e.Events.TrackingEdgeMoved.Notify(trackingEvent(e.tracking))
}

func (e *Engine) RemoveTrackingEdge() {
	if e.tracking == nil {
		return
	}
	t := e.tracking
	e.tracking = nil
	e.Events.TrackingEdgeRemoved.Notify(trackingEvent(t))
}

// TrackingEdge returns the line being drawn, or nil.
func (e *Engine) TrackingEdge() *topology.TrackingEdge { return e.tracking }

// Dump renders the adjacency list, one vertex per line:
//
//	A => [10, 10] -> B, C
func (e *Engine) Dump() string {
	var b strings.Builder
	e.store.ForEachVertex(func(v *topology.Vertex) {
		p := v.Position()
		fmt.Fprintf(&b, "%s => [%g, %g]", v.Symbol(), p.X, p.Y)
		if n := v.Neighbors(); len(n) > 0 {
			names := make([]string, len(n))
			for i, sym := range n {
				names[i] = string(sym)
			}
			fmt.Fprintf(&b, " -> %s", strings.Join(names, ", "))
		}
		b.WriteByte('\n')
	})
	return b.String()
}
