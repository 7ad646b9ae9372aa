package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"

	"graphed/internal/config"
	"graphed/internal/graph"
	"graphed/internal/render"
	"graphed/internal/symbol"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func newEditor(cfg *config.Config, logger *slog.Logger) *editor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	term := render.NewTerminal(
		float64(cfg.Canvas.CellWidth),
		float64(cfg.Canvas.CellHeight),
		cfg.Graph.VertexRadius+cfg.Graph.VertexOutline,
	)
	// The drawing region follows the terminal once its size is known.
	width, height := term.CanvasSize(80, 24)
	ed := &editor{
		cfg:      cfg,
		logger:   logger,
		engine:   graph.New(width, height, cfg.GraphOptions(logger)),
		scene:    render.NewScene(),
		term:     term,
		symbols:  symbol.NewPool(symbol.Alphabet),
		showGrid: cfg.Canvas.ShowGrid,
	}
	ed.scene.Attach(&ed.engine.Events, sceneListener)
	ed.vertexMode()
	return ed
}

func (m *model) copyDump() error {
	dump := m.ed.engine.Dump()
	if dump == "" {
		return fmt.Errorf("graph is empty")
	}
	if err := writeClipboard(dump); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	m.successMessage = "Copied adjacency list"
	return nil
}

// resize keeps the engine's drawing region equal to the visible canvas.
func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	m.ensureCursorInBounds()
	w, h := m.ed.term.CanvasSize(max(width, 1), m.canvasRows())
	m.ed.engine.Resize(w, h)
}

func (m *model) overlay() *render.Overlay {
	if !m.ed.showGrid {
		return nil
	}
	w, h := m.ed.engine.Size()
	return &render.Overlay{Ratio: m.ed.engine.CellRatio(), Width: w, Height: h}
}

// openLogger writes to path since the terminal belongs to the UI. The
// returned closer must be closed on exit.
func openLogger(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}
