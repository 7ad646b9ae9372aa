package main

import tea "github.com/charmbracelet/bubbletea"

// handleNavigation moves the cursor and reports it as a pointer move, or as
// a drag while a vertex is grabbed.
func (m *model) handleNavigation(key string, speed int) {
	m.handleCursorMove(key, speed)
	p := m.cursorPoint()
	if m.ed.keyGrab {
		m.ed.pointer.Drag.Notify(p)
	} else {
		m.ed.pointer.Move.Notify(p)
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return fastMoveFactor
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	m.cursorX = max(m.cursorX, 0)
	m.cursorY = max(m.cursorY, 0)
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	m.cursorY = min(m.cursorY, max(m.canvasRows()-1, 0))
}

func (m *model) canvasRows() int {
	return max(m.height-statusLines, 1)
}

// cursorPoint is the canvas point under the keyboard cursor.
func (m *model) cursorPoint() pointerEvent {
	p := m.ed.term.ToCanvas(m.cursorX, m.cursorY)
	return pointerEvent{X: p.X, Y: p.Y}
}

// click sends a full press, release and click at the cursor.
func (m *model) click() {
	p := m.cursorPoint()
	m.ed.pointer.Down.Notify(p)
	m.ed.pointer.Up.Notify(p)
	m.ed.pointer.Click.Notify(p)
}

// toggleGrab presses at the cursor, or releases if already pressed. Cursor
// moves in between are drags.
func (m *model) toggleGrab() {
	p := m.cursorPoint()
	if m.ed.keyGrab {
		m.ed.keyGrab = false
		m.ed.pointer.Up.Notify(p)
		return
	}
	m.ed.keyGrab = true
	m.ed.pointer.Down.Notify(p)
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	m.cursorX, m.cursorY = msg.X, msg.Y
	m.ensureCursorInBounds()
	p := m.cursorPoint()
	ed := m.ed

	switch msg.Type {
	case tea.MouseLeft:
		if !ed.pressed {
			ed.pressed, ed.dragged = true, false
			ed.pointer.Down.Notify(p)
			return
		}
		ed.dragged = true
		ed.pointer.Drag.Notify(p)
	case tea.MouseMotion:
		if ed.pressed {
			ed.dragged = true
			ed.pointer.Drag.Notify(p)
			return
		}
		ed.pointer.Move.Notify(p)
	case tea.MouseRelease:
		if !ed.pressed {
			return
		}
		ed.pressed = false
		ed.pointer.Up.Notify(p)
		if !ed.dragged {
			ed.pointer.Click.Notify(p)
		}
	}
}
