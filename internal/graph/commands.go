package graph

import (
	"fmt"

	"graphed/internal/cmdlog"
	"graphed/internal/topology"
)

// Command names understood by Dispatch.
const (
	CmdAddVertex    = "addVertex"
	CmdRemoveVertex = "removeVertex"
	CmdAddEdge      = "addEdge"
	CmdRemoveEdge   = "removeEdge"
	CmdMoveVertex   = "moveVertex"
	CmdUnmoveVertex = "unmoveVertex"
)

// SymbolPool allocates and releases vertex symbols. Acquire with an empty
// want hands out the next free symbol.
type SymbolPool interface {
	Acquire(want topology.Symbol) (topology.Symbol, error)
	Release(sym topology.Symbol)
}

// VertexArgs is shared by addVertex and removeVertex so either can undo the
// other. removeVertex writes the vertex position and its cascade size back
// into the payload; addVertex writes the allocated symbol.
type VertexArgs struct {
	Symbol   topology.Symbol
	X, Y     float64
	NumEdges int
	Symbols  SymbolPool
}

// EdgeArgs is shared by addEdge and removeEdge. removeEdge writes the edge's
// own endpoints and weight back so the inverse restores it exactly.
type EdgeArgs struct {
	From, To topology.Symbol
	Weight   float64
}

// MoveArgs is shared by moveVertex and unmoveVertex. moveVertex records the
// position it moved the vertex away from.
type MoveArgs struct {
	Symbol       topology.Symbol
	X, Y         float64
	PrevX, PrevY float64
}

func AddVertex(args *VertexArgs) cmdlog.Command {
	return cmdlog.Command{Type: CmdAddVertex, Data: args, Undo: CmdRemoveVertex}
}

func RemoveVertex(args *VertexArgs) cmdlog.Command {
	return cmdlog.Command{Type: CmdRemoveVertex, Data: args, Undo: CmdAddVertex}
}

func AddEdge(args *EdgeArgs) cmdlog.Command {
	return cmdlog.Command{Type: CmdAddEdge, Data: args, Undo: CmdRemoveEdge}
}

func RemoveEdge(args *EdgeArgs) cmdlog.Command {
	return cmdlog.Command{Type: CmdRemoveEdge, Data: args, Undo: CmdAddEdge}
}

func MoveVertex(args *MoveArgs) cmdlog.Command {
	return cmdlog.Command{Type: CmdMoveVertex, Data: args, Undo: CmdUnmoveVertex}
}

// handler applies one command. applied is false when the command was a
// no-op and must not be recorded.
type handler func(data any) (applied bool, err error)

func (e *Engine) registerHandlers() {
	e.handlers = map[string]handler{
		CmdAddVertex:    e.addVertex,
		CmdRemoveVertex: e.removeVertex,
		CmdAddEdge:      e.addEdge,
		CmdRemoveEdge:   e.removeEdge,
		CmdMoveVertex:   e.moveVertex,
		CmdUnmoveVertex: e.unmoveVertex,
	}
}

func vertexArgs(data any) (*VertexArgs, error) {
	args, ok := data.(*VertexArgs)
	if !ok || args == nil {
		return nil, fmt.Errorf("vertex payload %T: %w", data, ErrMissingArgument)
	}
	if args.NumEdges < 0 {
		return nil, fmt.Errorf("negative edge count %d: %w", args.NumEdges, ErrMissingArgument)
	}
	return args, nil
}

func edgeArgs(data any) (*EdgeArgs, error) {
	args, ok := data.(*EdgeArgs)
	if !ok || args == nil {
		return nil, fmt.Errorf("edge payload %T: %w", data, ErrMissingArgument)
	}
	if args.From == "" || args.To == "" {
		return nil, fmt.Errorf("edge endpoints %q, %q: %w", args.From, args.To, ErrMissingArgument)
	}
	return args, nil
}

func moveArgs(data any) (*MoveArgs, error) {
	args, ok := data.(*MoveArgs)
	if !ok || args == nil {
		return nil, fmt.Errorf("move payload %T: %w", data, ErrMissingArgument)
	}
	if args.Symbol == "" {
		return nil, fmt.Errorf("move symbol: %w", ErrMissingArgument)
	}
	return args, nil
}

// addVertex inserts a vertex and then replays NumEdges entries of the
// indirect log. When this runs as the undo of removeVertex those entries are
// the edge removals that removal cascaded into, so the edges come back in
// their original order. A replay that fails part way leaves nothing behind.
func (e *Engine) addVertex(data any) (bool, error) {
	args, err := vertexArgs(data)
	if err != nil {
		return false, err
	}
	if args.Symbol == "" && args.Symbols == nil {
		return false, fmt.Errorf("symbol or symbol pool: %w", ErrMissingArgument)
	}
	if args.Symbol != "" && e.store.VertexExists(args.Symbol) {
		return false, fmt.Errorf("vertex %q: %w", args.Symbol, ErrDuplicateVertex)
	}
	if e.indirect.Len() < args.NumEdges {
		return false, fmt.Errorf("replay %d edges, have %d: %w", args.NumEdges, e.indirect.Len(), ErrCascadeUnderflow)
	}

	want, sym := args.Symbol, args.Symbol
	if args.Symbols != nil {
		if sym, err = args.Symbols.Acquire(args.Symbol); err != nil {
			return false, err
		}
		if e.store.VertexExists(sym) {
			args.Symbols.Release(sym)
			return false, fmt.Errorf("vertex %q: %w", sym, ErrDuplicateVertex)
		}
	}
	args.Symbol = sym

	v := topology.NewVertex(sym, args.X, args.Y, e.halfSize())
	e.store.InsertVertex(v)
	e.vertices.Add(v)
	e.Events.VertexAdded.Notify(vertexEvent(v))

	for i := 0; i < args.NumEdges; i++ {
		if _, err := e.undo(IndirectLog); err != nil {
			e.unwindAdd(v, i, args.Symbols)
			args.Symbol = want
			return false, fmt.Errorf("restore edge %d of %d for %q: %w", i+1, args.NumEdges, sym, err)
		}
	}
	return true, nil
}

// unwindAdd takes back a partly applied addVertex: the restored edges go
// back onto the indirect log's applied stack and the vertex is removed.
func (e *Engine) unwindAdd(v *topology.Vertex, restored int, symbols SymbolPool) {
	for i := 0; i < restored; i++ {
		if _, err := e.Redo(IndirectLog); err != nil {
			e.logger.Error("unwind restored edge", "symbol", string(v.Symbol()), "error", err)
		}
	}
	e.store.DeleteVertex(v.Symbol())
	e.vertices.Remove(v)
	if symbols != nil {
		symbols.Release(v.Symbol())
	}
	e.Events.VertexRemoved.Notify(vertexEvent(v))
}

// removeVertex removes every incident edge through the indirect log, last
// edge first, then the vertex itself.
func (e *Engine) removeVertex(data any) (bool, error) {
	args, err := vertexArgs(data)
	if err != nil {
		return false, err
	}
	if args.Symbol == "" {
		return false, fmt.Errorf("vertex symbol: %w", ErrMissingArgument)
	}
	v := e.store.Vertex(args.Symbol)
	if v == nil {
		return false, fmt.Errorf("vertex %q: %w", args.Symbol, ErrMissingVertex)
	}

	if e.selected == v {
		e.DeselectVertex()
	}
	if e.hoveredVertex == v {
		e.HoverNothing()
	}

	incident := e.store.IncidentEdges(v.Symbol())
	for i := len(incident) - 1; i >= 0; i-- {
		edge := incident[i]
		cascade := RemoveEdge(&EdgeArgs{From: edge.From(), To: edge.To(), Weight: edge.Weight()})
		if err := e.dispatch(IndirectLog, cascade); err != nil {
			return true, fmt.Errorf("cascade from %q: %w", v.Symbol(), err)
		}
	}

	pos := v.Position()
	args.X, args.Y = pos.X, pos.Y
	args.NumEdges = len(incident)

	e.store.DeleteVertex(v.Symbol())
	e.vertices.Remove(v)
	if args.Symbols != nil {
		args.Symbols.Release(v.Symbol())
	}
	e.Events.VertexRemoved.Notify(vertexEvent(v))
	return true, nil
}

// addEdge is a no-op when the edge already exists.
func (e *Engine) addEdge(data any) (bool, error) {
	args, err := edgeArgs(data)
	if err != nil {
		return false, err
	}
	from, to := e.store.Vertex(args.From), e.store.Vertex(args.To)
	if from == nil || to == nil {
		return false, fmt.Errorf("edge %s->%s: %w", args.From, args.To, ErrMissingVertex)
	}
	if e.store.EdgeExists(args.From, args.To) {
		return false, nil
	}

	edge := topology.NewEdge(from, to, args.Weight, e.opts.EdgeBoxSize)
	e.store.InsertEdge(edge)
	e.edges.Add(edge)
	e.Events.EdgeAdded.Notify(edgeEvent(edge))
	return true, nil
}

func (e *Engine) removeEdge(data any) (bool, error) {
	args, err := edgeArgs(data)
	if err != nil {
		return false, err
	}
	edge := e.store.Edge(args.From, args.To)
	if edge == nil {
		return false, fmt.Errorf("edge %s->%s: %w", args.From, args.To, ErrUnknownEdge)
	}
	args.From, args.To, args.Weight = edge.From(), edge.To(), edge.Weight()

	if e.hoveredEdge == edge {
		e.HoverNothing()
	}
	e.store.DeleteEdge(edge.From(), edge.To())
	e.edges.Remove(edge)
	e.Events.EdgeRemoved.Notify(edgeEvent(edge))
	return true, nil
}

func (e *Engine) moveVertex(data any) (bool, error) {
	args, err := moveArgs(data)
	if err != nil {
		return false, err
	}
	v := e.store.Vertex(args.Symbol)
	if v == nil {
		return false, fmt.Errorf("vertex %q: %w", args.Symbol, ErrMissingVertex)
	}
	prev := v.Position()
	args.PrevX, args.PrevY = prev.X, prev.Y
	e.moveTo(v, args.X, args.Y)
	return true, nil
}

func (e *Engine) unmoveVertex(data any) (bool, error) {
	args, err := moveArgs(data)
	if err != nil {
		return false, err
	}
	v := e.store.Vertex(args.Symbol)
	if v == nil {
		return false, fmt.Errorf("vertex %q: %w", args.Symbol, ErrMissingVertex)
	}
	e.moveTo(v, args.PrevX, args.PrevY)
	return true, nil
}

// moveTo repositions v and every incident edge, since an edge's midpoint
// depends on both endpoints.
func (e *Engine) moveTo(v *topology.Vertex, x, y float64) {
	v.MoveTo(x, y)
	e.vertices.Update(v)
	e.Events.VertexMoved.Notify(vertexEvent(v))

	for _, edge := range e.store.IncidentEdges(v.Symbol()) {
		edge.Reposition(e.store.Vertex(edge.From()).Position(), e.store.Vertex(edge.To()).Position())
		e.edges.Update(edge)
		e.Events.EdgeMoved.Notify(edgeEvent(edge))
	}

	if e.tracking != nil && e.selected == v {
		e.tracking.Start = v.Position()
		e.Events.TrackingEdgeMoved.Notify(trackingEvent(e.tracking))
	}
}
