package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphed/internal/config"
	"graphed/internal/graph"
	"graphed/internal/spatial"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Directory = t.TempDir()
	m := initialModel(cfg, nil)
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 25})
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func keys(s ...string) []tea.Msg {
	msgs := make([]tea.Msg, len(s))
	for i, k := range s {
		switch k {
		case "enter":
			msgs[i] = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msgs[i] = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msgs[i] = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
	}
	return msgs
}

func hover(col, row int) tea.Msg {
	return tea.MouseMsg{X: col, Y: row, Type: tea.MouseMotion}
}

// clickAt moves the cursor to (col, row) and presses enter there.
func clickAt(t *testing.T, m model, col, row int) model {
	t.Helper()
	return send(t, m, hover(col, row), tea.KeyMsg{Type: tea.KeyEnter})
}

func TestVertexMode(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine

	m = clickAt(t, m, 10, 5)
	require.True(t, e.VertexExists("A"))
	assert.Equal(t, spatial.Point{X: 84, Y: 88}, e.Vertex("A").Position())
	assert.Equal(t, 25, m.ed.symbols.Available())

	m = clickAt(t, m, 10, 5)
	assert.False(t, e.VertexExists("A"))
	assert.Equal(t, 26, m.ed.symbols.Available())

	m = send(t, m, keys("u")...)
	assert.True(t, e.VertexExists("A"))
	m = send(t, m, keys("U")...)
	assert.False(t, e.VertexExists("A"))

	m = send(t, m, keys("U")...)
	assert.Equal(t, "Nothing to redo", m.errorMessage)
	assert.Contains(t, m.View(), "Nothing to redo")
}

func TestEdgeMode(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)
	m = clickAt(t, m, 30, 5)

	m = send(t, m, keys("e")...)
	m = clickAt(t, m, 10, 5)
	require.NotNil(t, e.Selected())
	assert.Equal(t, "A", string(e.Selected().Symbol()))
	require.NotNil(t, e.TrackingEdge())

	m = send(t, m, hover(20, 8))
	assert.Equal(t, m.ed.term.ToCanvas(20, 8), e.TrackingEdge().End)

	m = clickAt(t, m, 30, 5)
	assert.True(t, e.EdgeExists("A", "B"))
	assert.Nil(t, e.Selected())
	assert.Nil(t, e.TrackingEdge())

	// Clicking the edge's box removes it.
	m = clickAt(t, m, 20, 5)
	assert.False(t, e.EdgeExists("A", "B"))
	m = send(t, m, keys("u")...)
	assert.True(t, e.EdgeExists("A", "B"))

	m = clickAt(t, m, 10, 5)
	require.NotNil(t, e.Selected())
	m = clickAt(t, m, 60, 20)
	assert.Nil(t, e.Selected())

	m = clickAt(t, m, 10, 5)
	send(t, m, keys("esc")...)
	assert.Nil(t, e.Selected())
}

func TestRemovingVertexTakesEdges(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)
	m = clickAt(t, m, 30, 5)
	m = send(t, m, keys("e")...)
	m = clickAt(t, m, 10, 5)
	m = clickAt(t, m, 30, 5)
	require.True(t, e.EdgeExists("A", "B"))

	m = send(t, m, keys("v")...)
	m = clickAt(t, m, 10, 5)
	assert.False(t, e.VertexExists("A"))
	assert.False(t, e.EdgeExists("A", "B"))
	assert.Empty(t, m.ed.scene.Edges())

	send(t, m, keys("u")...)
	assert.True(t, e.EdgeExists("A", "B"))
	assert.Len(t, m.ed.scene.Edges(), 1)
}

func TestMouseDrag(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)

	m = send(t, m,
		tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseLeft},
		tea.MouseMsg{X: 12, Y: 6, Type: tea.MouseMotion},
		tea.MouseMsg{X: 15, Y: 8, Type: tea.MouseLeft},
		tea.MouseMsg{X: 15, Y: 8, Type: tea.MouseRelease},
	)
	assert.True(t, e.VertexExists("A"), "a drag is not a click")
	assert.Equal(t, spatial.Point{X: 124, Y: 136}, e.Vertex("A").Position())
	applied, _ := e.History(graph.UserLog)
	assert.Equal(t, 2, applied, "one add and one move")

	send(t, m, keys("u")...)
	assert.Equal(t, spatial.Point{X: 84, Y: 88}, e.Vertex("A").Position())
}

func TestMouseClick(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		tea.MouseMsg{X: 3, Y: 3, Type: tea.MouseLeft},
		tea.MouseMsg{X: 3, Y: 3, Type: tea.MouseRelease},
	)
	assert.True(t, m.ed.engine.VertexExists("A"))
	assert.Equal(t, 3, m.cursorX)
}

func TestKeyboardGrab(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)

	m = send(t, m, keys("m", "l", "l", "l", "m")...)
	assert.Equal(t, spatial.Point{X: 108, Y: 88}, e.Vertex("A").Position())
	assert.False(t, m.ed.keyGrab)

	send(t, m, keys("u")...)
	assert.Equal(t, spatial.Point{X: 84, Y: 88}, e.Vertex("A").Position())
}

func TestModeSwitchDuringKeyboardGrab(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)

	m = send(t, m, keys("m", "l", "l", "l", "e")...)
	assert.Equal(t, ModeEdge, m.ed.mode)
	assert.False(t, m.ed.keyGrab)
	assert.Nil(t, m.ed.grab)
	assert.Equal(t, spatial.Point{X: 108, Y: 88}, e.Vertex("A").Position())
	applied, _ := e.History(graph.UserLog)
	assert.Equal(t, 2, applied, "one add and one move")

	// Cursor moves no longer drag anything.
	m = send(t, m, keys("l")...)
	assert.Equal(t, spatial.Point{X: 108, Y: 88}, e.Vertex("A").Position())

	m = send(t, m, keys("u")...)
	assert.Equal(t, spatial.Point{X: 84, Y: 88}, e.Vertex("A").Position())
	send(t, m, keys("u")...)
	assert.False(t, e.VertexExists("A"))
}

func TestModeSwitchDuringMouseDrag(t *testing.T) {
	m := newTestModel(t)
	e := m.ed.engine
	m = clickAt(t, m, 10, 5)

	m = send(t, m,
		tea.MouseMsg{X: 10, Y: 5, Type: tea.MouseLeft},
		tea.MouseMsg{X: 13, Y: 5, Type: tea.MouseMotion},
	)
	m = send(t, m, keys("e")...)
	assert.False(t, m.ed.pressed)
	assert.False(t, m.ed.dragged)
	assert.Equal(t, spatial.Point{X: 108, Y: 88}, e.Vertex("A").Position())

	// The next press and release is a plain click again.
	m = send(t, m,
		tea.MouseMsg{X: 13, Y: 5, Type: tea.MouseLeft},
		tea.MouseMsg{X: 13, Y: 5, Type: tea.MouseRelease},
	)
	require.NotNil(t, e.Selected())
	assert.Equal(t, "A", string(e.Selected().Symbol()))

	send(t, m, keys("esc", "u")...)
	assert.Equal(t, spatial.Point{X: 84, Y: 88}, e.Vertex("A").Position())
}

func TestModeListeners(t *testing.T) {
	m := newTestModel(t)
	p := &m.ed.pointer
	assert.Equal(t, 1, p.Click.Len())
	assert.Equal(t, 1, p.Down.Len())
	assert.Equal(t, 1, p.Move.Len())

	m = send(t, m, keys("e")...)
	assert.Equal(t, ModeEdge, m.ed.mode)
	assert.Equal(t, 1, p.Click.Len())
	assert.Zero(t, p.Down.Len())
	assert.Zero(t, p.Up.Len())
	assert.Zero(t, p.Drag.Len())
	assert.Contains(t, m.View(), "EDGE")

	m = send(t, m, keys("v")...)
	assert.Equal(t, ModeVertex, m.ed.mode)
	assert.Equal(t, 1, p.Down.Len())
}

func TestCopyDump(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t)
	m = send(t, m, keys("y")...)
	assert.Equal(t, "graph is empty", m.errorMessage)

	m = clickAt(t, m, 10, 5)
	m = send(t, m, keys("y")...)
	assert.Equal(t, "A => [84, 88]\n", copied)
	assert.Equal(t, "Copied adjacency list", m.successMessage)
}

func TestExport(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("S")...)
	assert.Contains(t, m.errorMessage, "nothing to export")

	m = clickAt(t, m, 10, 5)
	m = send(t, m, keys("S")...)
	assert.Empty(t, m.errorMessage)
	assert.FileExists(t, filepath.Join(m.ed.cfg.Export.Directory, exportPNGName))

	send(t, m, keys("T")...)
	data, err := os.ReadFile(filepath.Join(m.ed.cfg.Export.Directory, exportTXTName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "A")
}

func TestResize(t *testing.T) {
	m := newTestModel(t)
	w, h := m.ed.engine.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 41})
	w, h = m.ed.engine.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 640.0, h)
}

func TestHelp(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("?")...)
	assert.Contains(t, m.View(), "graphed Help")
	m = send(t, m, keys("j")...)
	assert.Equal(t, 1, m.helpScroll)
	m = send(t, m, keys("x")...)
	assert.False(t, m.help)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
