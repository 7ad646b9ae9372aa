package main

import (
	"graphed/internal/cmdlog"
	"graphed/internal/graph"
)

// clearPointerListeners detaches everything the current mode registered. A
// grab in progress is dropped where it is and recorded as one move.
func (ed *editor) clearPointerListeners() {
	if g := ed.grab; g != nil && g.moved {
		if v := ed.engine.Vertex(g.symbol); v != nil {
			pos := v.Position()
			ed.commitGrab(g, pos.X, pos.Y)
		}
	}
	ed.pressed, ed.dragged, ed.keyGrab = false, false, false
	for _, id := range ed.attached {
		ed.pointer.Click.Detach(id)
		ed.pointer.Down.Detach(id)
		ed.pointer.Up.Detach(id)
		ed.pointer.Drag.Detach(id)
		ed.pointer.Move.Detach(id)
	}
	ed.attached = ed.attached[:0]
	ed.grab = nil
}

func (ed *editor) track(id string) {
	for _, seen := range ed.attached {
		if seen == id {
			return
		}
	}
	ed.attached = append(ed.attached, id)
}

func (ed *editor) setMode(mode Mode) {
	ed.engine.DeselectVertex()
	ed.engine.HoverNothing()
	switch mode {
	case ModeEdge:
		ed.edgeMode()
	default:
		ed.vertexMode()
	}
	ed.logger.Debug("mode", "mode", modeName(mode))
}

// vertexMode: click empty space to add a vertex, click a vertex to remove
// it, press and drag to move one.
func (ed *editor) vertexMode() {
	ed.clearPointerListeners()
	ed.mode = ModeVertex

	ed.track(listenClickVertex)
	ed.pointer.Click.Attach(listenClickVertex, func(p pointerEvent) {
		if v := ed.engine.VertexAt(p.X, p.Y); v != nil {
			ed.dispatch(graph.RemoveVertex(&graph.VertexArgs{Symbol: v.Symbol(), Symbols: ed.symbols}))
			return
		}
		if ed.symbols.Available() == 0 {
			ed.logger.Info("no symbols left")
			return
		}
		ed.dispatch(graph.AddVertex(&graph.VertexArgs{X: p.X, Y: p.Y, Symbols: ed.symbols}))
	})

	ed.track(listenDragVertex)
	ed.pointer.Down.Attach(listenDragVertex, func(p pointerEvent) {
		v := ed.engine.VertexAt(p.X, p.Y)
		if v == nil {
			return
		}
		pos := v.Position()
		g := &grab{
			symbol:  v.Symbol(),
			offsetX: pos.X - p.X,
			offsetY: pos.Y - p.Y,
			startX:  pos.X,
			startY:  pos.Y,
		}
		ed.grab = g

		ed.track(listenStick)
		ed.pointer.Drag.Attach(listenStick, func(p pointerEvent) {
			g.moved = true
			// Intermediate positions stay out of the history.
			ed.dispatchTo(graph.NoLog, graph.MoveVertex(&graph.MoveArgs{Symbol: g.symbol, X: p.X + g.offsetX, Y: p.Y + g.offsetY}))
		})
		ed.track(listenRelease)
		ed.pointer.Up.Attach(listenRelease, func(p pointerEvent) {
			ed.pointer.Drag.Detach(listenStick)
			ed.pointer.Up.Detach(listenRelease)
			ed.grab = nil
			if g.moved {
				ed.commitGrab(g, p.X+g.offsetX, p.Y+g.offsetY)
			}
		})
	})

	ed.track(listenHover)
	ed.pointer.Move.Attach(listenHover, func(p pointerEvent) {
		ed.engine.HoverAt(p.X, p.Y)
	})
}

// edgeMode: click a vertex to select it and start a tracking edge, click a
// second vertex to connect them, click empty space to drop the selection.
// Clicking an edge while nothing is selected removes it.
func (ed *editor) edgeMode() {
	ed.clearPointerListeners()
	ed.mode = ModeEdge

	ed.track(listenCreateEdge)
	ed.pointer.Click.Attach(listenCreateEdge, func(p pointerEvent) {
		v := ed.engine.VertexAt(p.X, p.Y)
		selected := ed.engine.Selected()
		switch {
		case v != nil && selected == nil:
			if err := ed.engine.SelectVertex(v.Symbol()); err != nil {
				ed.fail(err)
				return
			}
			if err := ed.engine.AddTrackingEdge(p.X, p.Y); err != nil {
				ed.fail(err)
			}
		case v != nil && v != selected:
			from := selected.Symbol()
			ed.engine.DeselectVertex()
			ed.dispatch(graph.AddEdge(&graph.EdgeArgs{From: from, To: v.Symbol(), Weight: defaultWeight}))
		case selected != nil:
			ed.engine.DeselectVertex()
		default:
			if edge := ed.engine.EdgeAt(p.X, p.Y); edge != nil {
				ed.dispatch(graph.RemoveEdge(&graph.EdgeArgs{From: edge.From(), To: edge.To()}))
			}
		}
	})

	ed.track(listenTrackEdge)
	ed.pointer.Move.Attach(listenTrackEdge, func(p pointerEvent) {
		if ed.engine.Selected() != nil {
			ed.engine.MoveTrackingEdge(p.X, p.Y)
			return
		}
		ed.engine.HoverAt(p.X, p.Y)
	})
}

// commitGrab puts the grabbed vertex back where the grab started and
// records a single move to (x, y), so one undo reverts the whole drag.
func (ed *editor) commitGrab(g *grab, x, y float64) {
	ed.dispatchTo(graph.NoLog, graph.MoveVertex(&graph.MoveArgs{Symbol: g.symbol, X: g.startX, Y: g.startY}))
	ed.dispatch(graph.MoveVertex(&graph.MoveArgs{Symbol: g.symbol, X: x, Y: y}))
}

func (ed *editor) dispatch(cmd cmdlog.Command) {
	ed.dispatchTo(graph.UserLog, cmd)
}

func (ed *editor) dispatchTo(l graph.Log, cmd cmdlog.Command) {
	if err := ed.engine.Dispatch(l, cmd); err != nil {
		ed.fail(err)
	}
}

func (ed *editor) fail(err error) {
	ed.lastErr = err
	ed.logger.Warn("command failed", "error", err)
}

func modeName(mode Mode) string {
	switch mode {
	case ModeVertex:
		return "VERTEX"
	case ModeEdge:
		return "EDGE"
	default:
		return "UNKNOWN"
	}
}
