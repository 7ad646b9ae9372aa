// Package graph is the state engine behind the diagram editor. It owns the
// topology store, one spatial index for vertices and one for edges, and two
// command logs: the user's undo history and an indirect log holding the edge
// removals cascaded from vertex removals. Every change is announced on
// Engine.Events.
//
// Removing a vertex with k edges records k removeEdge commands on the
// indirect log and writes k into the removal's payload as NumEdges. The
// inverse, addVertex, undoes exactly NumEdges entries of the indirect log, so
// a vertex and its edges come back as one step of the user's history.
//
// An Engine is not safe for concurrent use.
package graph

import (
	"fmt"
	"log/slog"

	"graphed/internal/cmdlog"
	"graphed/internal/spatial"
	"graphed/internal/topology"
)

// Log selects which command log Dispatch, Undo and Redo work on.
type Log int

const (
	NoLog Log = iota
	UserLog
	IndirectLog
)

func (l Log) String() string {
	switch l {
	case UserLog:
		return "user"
	case IndirectLog:
		return "indirect"
	default:
		return "none"
	}
}

// Options are supplied once by the configuration loader.
type Options struct {
	VertexRadius  float64
	VertexOutline float64
	EdgeBoxSize   float64
	CellRatio     int
	Undirected    bool
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		VertexRadius:  25,
		VertexOutline: 0,
		EdgeBoxSize:   10,
		CellRatio:     5,
		Undirected:    true,
	}
}

type Engine struct {
	Events Events

	opts   Options
	logger *slog.Logger
	width  float64
	height float64

	store    *topology.Store
	vertices *spatial.Grid[*topology.Vertex]
	edges    *spatial.Grid[*topology.Edge]
	user     *cmdlog.Log
	indirect *cmdlog.Log
	handlers map[string]handler

	selected      *topology.Vertex
	hoveredVertex *topology.Vertex
	hoveredEdge   *topology.Edge
	tracking      *topology.TrackingEdge
}

// New returns an empty engine over a width x height drawing region.
func New(width, height float64, opts Options) *Engine {
	if opts.CellRatio < 1 {
		opts.CellRatio = DefaultOptions().CellRatio
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		opts:     opts,
		logger:   logger,
		store:    topology.NewStore(opts.Undirected),
		vertices: spatial.New[*topology.Vertex](width, height, opts.CellRatio),
		edges:    spatial.New[*topology.Edge](width, height, opts.CellRatio),
		user:     cmdlog.New(),
		indirect: cmdlog.New(),
		width:    width,
		height:   height,
	}
	e.registerHandlers()
	return e
}

func (e *Engine) halfSize() float64 {
	return e.opts.VertexRadius + e.opts.VertexOutline
}

func (e *Engine) logFor(l Log) *cmdlog.Log {
	switch l {
	case UserLog:
		return e.user
	case IndirectLog:
		return e.indirect
	default:
		return nil
	}
}

// Dispatch applies cmd and, unless l is NoLog, records it on that log. A
// command that turned out to be a no-op (a duplicate edge) is not recorded.
// Nothing is mutated when validation fails.
func (e *Engine) Dispatch(l Log, cmd cmdlog.Command) error {
	return e.dispatch(l, cmd)
}

func (e *Engine) dispatch(l Log, cmd cmdlog.Command) error {
	h, ok := e.handlers[cmd.Type]
	if !ok {
		return fmt.Errorf("dispatch %q: %w", cmd.Type, ErrUnknownCommand)
	}
	log := e.logFor(l)
	if log != nil {
		if _, ok := e.handlers[cmd.Undo]; !ok {
			return fmt.Errorf("dispatch %q: inverse %q: %w", cmd.Type, cmd.Undo, ErrUnknownCommand)
		}
	}

	applied, err := h(cmd.Data)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Type, err)
	}
	if applied && log != nil {
		log.Record(cmd)
	}
	e.logger.Debug("dispatch", "command", cmd.Type, "log", l.String(), "applied", applied)
	return nil
}

// Undo runs the inverse of the most recent command on l. It reports false
// when there was nothing to undo. If the inverse fails the command stays on
// the applied stack.
func (e *Engine) Undo(l Log) (bool, error) {
	return e.undo(l)
}

func (e *Engine) undo(l Log) (bool, error) {
	log := e.logFor(l)
	if log == nil {
		return false, nil
	}
	cmd, ok := log.Undo()
	if !ok {
		return false, nil
	}
	h, ok := e.handlers[cmd.Undo]
	if !ok {
		log.Redo()
		return false, fmt.Errorf("undo %q: inverse %q: %w", cmd.Type, cmd.Undo, ErrUnknownCommand)
	}
	if _, err := h(cmd.Data); err != nil {
		log.Redo()
		return false, fmt.Errorf("undo %s: %s: %w", cmd.Type, cmd.Undo, err)
	}
	e.logger.Debug("undo", "command", cmd.Type, "inverse", cmd.Undo, "log", l.String())
	return true, nil
}

// Redo re-applies the most recently undone command on l through the same
// handler Dispatch uses. If it fails the command stays on the undone stack.
func (e *Engine) Redo(l Log) (bool, error) {
	log := e.logFor(l)
	if log == nil {
		return false, nil
	}
	cmd, ok := log.Redo()
	if !ok {
		return false, nil
	}
	h, ok := e.handlers[cmd.Type]
	if !ok {
		log.Undo()
		return false, fmt.Errorf("redo %q: %w", cmd.Type, ErrUnknownCommand)
	}
	if _, err := h(cmd.Data); err != nil {
		log.Undo()
		return false, fmt.Errorf("redo %s: %w", cmd.Type, err)
	}
	e.logger.Debug("redo", "command", cmd.Type, "log", l.String())
	return true, nil
}

func (e *Engine) CanUndo(l Log) bool {
	log := e.logFor(l)
	return log != nil && log.CanUndo()
}

func (e *Engine) CanRedo(l Log) bool {
	log := e.logFor(l)
	return log != nil && log.CanRedo()
}

// History returns the number of applied and undone commands on l.
func (e *Engine) History(l Log) (applied, undone int) {
	log := e.logFor(l)
	if log == nil {
		return 0, 0
	}
	return log.Len(), log.UndoneLen()
}

// Resize re-buckets both spatial indices over a new drawing region.
func (e *Engine) Resize(width, height float64) {
	e.width, e.height = width, height
	e.vertices.Resize(width, height)
	e.edges.Resize(width, height)
	e.logger.Debug("resize", "width", width, "height", height,
		"vertices", e.vertices.Len(), "edges", e.edges.Len())
}

func (e *Engine) Size() (float64, float64) { return e.width, e.height }

func (e *Engine) Options() Options { return e.opts }

// CellRatio returns the number of spatial cells along each axis.
func (e *Engine) CellRatio() int { return e.vertices.Ratio() }

// VertexAt returns the vertex whose bounding box contains (x, y), or nil.
func (e *Engine) VertexAt(x, y float64) *topology.Vertex {
	v, _ := e.vertices.At(x, y)
	return v
}

// EdgeAt returns the edge whose hit box contains (x, y), or nil.
func (e *Engine) EdgeAt(x, y float64) *topology.Edge {
	edge, _ := e.edges.At(x, y)
	return edge
}

func (e *Engine) EdgeExists(from, to topology.Symbol) bool {
	return e.store.EdgeExists(from, to)
}

func (e *Engine) VertexExists(sym topology.Symbol) bool {
	return e.store.VertexExists(sym)
}

func (e *Engine) Vertex(sym topology.Symbol) *topology.Vertex {
	return e.store.Vertex(sym)
}

func (e *Engine) Edge(from, to topology.Symbol) *topology.Edge {
	return e.store.Edge(from, to)
}

// Vertices returns every vertex in insertion order.
func (e *Engine) Vertices() []*topology.Vertex { return e.store.Vertices() }

// Edges returns every edge once, in insertion order.
func (e *Engine) Edges() []*topology.Edge { return e.store.Edges() }

func (e *Engine) Undirected() bool { return e.store.Undirected() }
