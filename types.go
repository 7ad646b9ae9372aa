package main

import (
	"log/slog"

	"graphed/internal/config"
	"graphed/internal/event"
	"graphed/internal/graph"
	"graphed/internal/render"
	"graphed/internal/symbol"
	"graphed/internal/topology"
)

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	help           bool
	helpScroll     int
	errorMessage   string
	successMessage string
	ed             *editor
}

// editor is the state shared by every copy of model. Pointer listeners
// registered by the interaction modes close over it.
type editor struct {
	cfg     *config.Config
	logger  *slog.Logger
	engine  *graph.Engine
	scene   *render.Scene
	term    *render.Terminal
	symbols *symbol.Pool
	pointer pointerEvents

	mode     Mode
	attached []string
	grab     *grab
	pressed  bool
	dragged  bool
	keyGrab  bool
	showGrid bool
	lastErr  error
}

type pointerEvent struct {
	X, Y float64
}

// pointerEvents are the canvas input events, in canvas units.
type pointerEvents struct {
	Click event.Channel[pointerEvent]
	Down  event.Channel[pointerEvent]
	Up    event.Channel[pointerEvent]
	Drag  event.Channel[pointerEvent]
	Move  event.Channel[pointerEvent]
}

// grab is a vertex stuck to the pointer.
type grab struct {
	symbol         topology.Symbol
	offsetX        float64
	offsetY        float64
	startX, startY float64
	moved          bool
}
