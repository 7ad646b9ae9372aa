package graph

import (
	"graphed/internal/event"
	"graphed/internal/spatial"
	"graphed/internal/topology"
)

// VertexEvent carries what a renderer needs to draw or drop a vertex.
type VertexEvent struct {
	Symbol topology.Symbol
	Center spatial.Point
}

// EdgeEvent carries an edge's endpoints, hit-box centre and weight. From and
// To are the edge's own ordering, whichever way it was addressed.
type EdgeEvent struct {
	From, To  topology.Symbol
	FromPoint spatial.Point
	ToPoint   spatial.Point
	Center    spatial.Point
	Weight    float64
}

func (e EdgeEvent) Key() topology.EdgeKey {
	return topology.EdgeKey{From: e.From, To: e.To}
}

// TrackingEvent is the current line of the edge being drawn.
type TrackingEvent struct {
	Start, End spatial.Point
}

// Events has one channel per lifecycle transition. Notifications for one
// command are all delivered before the command returns; a cascade delivers
// every edge removal before the vertex removal.
type Events struct {
	VertexAdded      event.Channel[VertexEvent]
	VertexRemoved    event.Channel[VertexEvent]
	VertexMoved      event.Channel[VertexEvent]
	VertexSelected   event.Channel[VertexEvent]
	VertexDeselected event.Channel[VertexEvent]
	VertexHovered    event.Channel[VertexEvent]
	VertexUnhovered  event.Channel[VertexEvent]

	EdgeAdded     event.Channel[EdgeEvent]
	EdgeRemoved   event.Channel[EdgeEvent]
	EdgeMoved     event.Channel[EdgeEvent]
	EdgeHovered   event.Channel[EdgeEvent]
	EdgeUnhovered event.Channel[EdgeEvent]

	TrackingEdgeAdded   event.Channel[TrackingEvent]
	TrackingEdgeMoved   event.Channel[TrackingEvent]
	TrackingEdgeRemoved event.Channel[TrackingEvent]
}

func vertexEvent(v *topology.Vertex) VertexEvent {
	return VertexEvent{Symbol: v.Symbol(), Center: v.Position()}
}

func edgeEvent(e *topology.Edge) EdgeEvent {
	return EdgeEvent{
		From:      e.From(),
		To:        e.To(),
		FromPoint: e.FromPoint(),
		ToPoint:   e.ToPoint(),
		Center:    e.Center(),
		Weight:    e.Weight(),
	}
}

func trackingEvent(t *topology.TrackingEdge) TrackingEvent {
	return TrackingEvent{Start: t.Start, End: t.End}
}
