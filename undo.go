package main

import "graphed/internal/graph"

func (m *model) undo() {
	ok, err := m.ed.engine.Undo(graph.UserLog)
	if err != nil {
		m.ed.logger.Error("undo failed", "error", err)
		m.errorMessage = "Undo failed: " + err.Error()
		return
	}
	if !ok {
		m.errorMessage = "Nothing to undo"
	}
}

func (m *model) redo() {
	ok, err := m.ed.engine.Redo(graph.UserLog)
	if err != nil {
		m.ed.logger.Error("redo failed", "error", err)
		m.errorMessage = "Redo failed: " + err.Error()
		return
	}
	if !ok {
		m.errorMessage = "Nothing to redo"
	}
}
