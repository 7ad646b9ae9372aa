// Package render draws what the graph engine announces. A Scene listens to
// the engine's notifications and keeps its own copy of everything drawable;
// the rasterizers only ever read the Scene.
package render

import (
	"graphed/internal/graph"
	"graphed/internal/spatial"
	"graphed/internal/topology"
)

type VertexShape struct {
	Symbol   topology.Symbol
	Center   spatial.Point
	Selected bool
	Hovered  bool
}

type EdgeShape struct {
	Key       topology.EdgeKey
	FromPoint spatial.Point
	ToPoint   spatial.Point
	Center    spatial.Point
	Weight    float64
	Hovered   bool
}

type Scene struct {
	vertexOrder []topology.Symbol
	vertices    map[topology.Symbol]*VertexShape
	edgeOrder   []topology.EdgeKey
	edges       map[topology.EdgeKey]*EdgeShape
	tracking    *graph.TrackingEvent
}

func NewScene() *Scene {
	return &Scene{
		vertices: make(map[topology.Symbol]*VertexShape),
		edges:    make(map[topology.EdgeKey]*EdgeShape),
	}
}

// Attach registers the scene on every channel of ev under id.
func (s *Scene) Attach(ev *graph.Events, id string) {
	ev.VertexAdded.Attach(id, s.vertexAdded)
	ev.VertexRemoved.Attach(id, s.vertexRemoved)
	ev.VertexMoved.Attach(id, s.vertexMoved)
	ev.VertexSelected.Attach(id, func(e graph.VertexEvent) { s.markVertex(e, func(v *VertexShape) { v.Selected = true }) })
	ev.VertexDeselected.Attach(id, func(e graph.VertexEvent) { s.markVertex(e, func(v *VertexShape) { v.Selected = false }) })
	ev.VertexHovered.Attach(id, func(e graph.VertexEvent) { s.markVertex(e, func(v *VertexShape) { v.Hovered = true }) })
	ev.VertexUnhovered.Attach(id, func(e graph.VertexEvent) { s.markVertex(e, func(v *VertexShape) { v.Hovered = false }) })

	ev.EdgeAdded.Attach(id, s.edgeAdded)
	ev.EdgeRemoved.Attach(id, s.edgeRemoved)
	ev.EdgeMoved.Attach(id, s.edgeMoved)
	ev.EdgeHovered.Attach(id, func(e graph.EdgeEvent) { s.markEdge(e, true) })
	ev.EdgeUnhovered.Attach(id, func(e graph.EdgeEvent) { s.markEdge(e, false) })

	ev.TrackingEdgeAdded.Attach(id, s.trackingChanged)
	ev.TrackingEdgeMoved.Attach(id, s.trackingChanged)
	ev.TrackingEdgeRemoved.Attach(id, func(graph.TrackingEvent) { s.tracking = nil })
}

// Detach removes every listener Attach registered under id.
func (s *Scene) Detach(ev *graph.Events, id string) {
	ev.VertexAdded.Detach(id)
	ev.VertexRemoved.Detach(id)
	ev.VertexMoved.Detach(id)
	ev.VertexSelected.Detach(id)
	ev.VertexDeselected.Detach(id)
	ev.VertexHovered.Detach(id)
	ev.VertexUnhovered.Detach(id)
	ev.EdgeAdded.Detach(id)
	ev.EdgeRemoved.Detach(id)
	ev.EdgeMoved.Detach(id)
	ev.EdgeHovered.Detach(id)
	ev.EdgeUnhovered.Detach(id)
	ev.TrackingEdgeAdded.Detach(id)
	ev.TrackingEdgeMoved.Detach(id)
	ev.TrackingEdgeRemoved.Detach(id)
}

func (s *Scene) vertexAdded(e graph.VertexEvent) {
	if _, ok := s.vertices[e.Symbol]; !ok {
		s.vertexOrder = append(s.vertexOrder, e.Symbol)
	}
	s.vertices[e.Symbol] = &VertexShape{Symbol: e.Symbol, Center: e.Center}
}

func (s *Scene) vertexRemoved(e graph.VertexEvent) {
	if _, ok := s.vertices[e.Symbol]; !ok {
		return
	}
	delete(s.vertices, e.Symbol)
	for i, sym := range s.vertexOrder {
		if sym == e.Symbol {
			s.vertexOrder = append(s.vertexOrder[:i], s.vertexOrder[i+1:]...)
			break
		}
	}
}

func (s *Scene) vertexMoved(e graph.VertexEvent) {
	s.markVertex(e, func(v *VertexShape) { v.Center = e.Center })
}

func (s *Scene) markVertex(e graph.VertexEvent, set func(*VertexShape)) {
	if v, ok := s.vertices[e.Symbol]; ok {
		set(v)
	}
}

func (s *Scene) edgeAdded(e graph.EdgeEvent) {
	key := e.Key()
	if _, ok := s.edges[key]; !ok {
		s.edgeOrder = append(s.edgeOrder, key)
	}
	s.edges[key] = &EdgeShape{
		Key:       key,
		FromPoint: e.FromPoint,
		ToPoint:   e.ToPoint,
		Center:    e.Center,
		Weight:    e.Weight,
	}
}

func (s *Scene) edgeRemoved(e graph.EdgeEvent) {
	key := e.Key()
	if _, ok := s.edges[key]; !ok {
		return
	}
	delete(s.edges, key)
	for i, k := range s.edgeOrder {
		if k == key {
			s.edgeOrder = append(s.edgeOrder[:i], s.edgeOrder[i+1:]...)
			break
		}
	}
}

func (s *Scene) edgeMoved(e graph.EdgeEvent) {
	if edge, ok := s.edges[e.Key()]; ok {
		edge.FromPoint, edge.ToPoint, edge.Center = e.FromPoint, e.ToPoint, e.Center
	}
}

func (s *Scene) markEdge(e graph.EdgeEvent, hovered bool) {
	if edge, ok := s.edges[e.Key()]; ok {
		edge.Hovered = hovered
	}
}

func (s *Scene) trackingChanged(e graph.TrackingEvent) {
	s.tracking = &e
}

// Vertices returns copies of the vertex shapes in the order they appeared.
func (s *Scene) Vertices() []VertexShape {
	out := make([]VertexShape, 0, len(s.vertexOrder))
	for _, sym := range s.vertexOrder {
		out = append(out, *s.vertices[sym])
	}
	return out
}

// Edges returns copies of the edge shapes in the order they appeared.
func (s *Scene) Edges() []EdgeShape {
	out := make([]EdgeShape, 0, len(s.edgeOrder))
	for _, key := range s.edgeOrder {
		out = append(out, *s.edges[key])
	}
	return out
}

// Tracking returns the line being drawn, if any.
func (s *Scene) Tracking() (graph.TrackingEvent, bool) {
	if s.tracking == nil {
		return graph.TrackingEvent{}, false
	}
	return *s.tracking, true
}

func (s *Scene) Empty() bool {
	return len(s.vertices) == 0 && len(s.edges) == 0
}

// Bounds is the smallest rectangle holding every vertex disc of the given
// radius and every edge. It reports false for an empty scene.
func (s *Scene) Bounds(radius float64) (spatial.Rect, bool) {
	var (
		r     spatial.Rect
		found bool
	)
	grow := func(box spatial.Rect) {
		if !found {
			r, found = box, true
			return
		}
		r.Min.X, r.Min.Y = min(r.Min.X, box.Min.X), min(r.Min.Y, box.Min.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, box.Max.X), max(r.Max.Y, box.Max.Y)
	}
	for _, sym := range s.vertexOrder {
		grow(spatial.RectAround(s.vertices[sym].Center, radius))
	}
	for _, key := range s.edgeOrder {
		edge := s.edges[key]
		grow(spatial.RectAround(edge.FromPoint, 0))
		grow(spatial.RectAround(edge.ToPoint, 0))
	}
	return r, found
}
