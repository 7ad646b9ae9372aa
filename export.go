package main

import (
	"fmt"
	"os"

	"graphed/internal/render"
)

func (m *model) exportPNG() error {
	path, err := m.ed.cfg.ExportPath(exportPNGName)
	if err != nil {
		return err
	}
	opts := render.DefaultPNGOptions()
	opts.VertexRadius = m.ed.cfg.Graph.VertexRadius + m.ed.cfg.Graph.VertexOutline
	opts.EdgeBoxSize = m.ed.cfg.Graph.EdgeBoxSize
	opts.Directed = !m.ed.engine.Undirected()
	opts.Weights = true
	if err := render.ExportPNG(m.ed.scene, path, opts); err != nil {
		return err
	}
	m.ed.logger.Info("exported png", "path", path)
	m.successMessage = "Exported " + path
	return nil
}

// exportVisualTXT writes the canvas exactly as it appears, without cursor
// or styling.
func (m *model) exportVisualTXT() error {
	if m.ed.scene.Empty() {
		return render.ErrNothingToExport
	}
	path, err := m.ed.cfg.ExportPath(exportTXTName)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	width := m.width
	if width < 1 {
		width = 80
	}
	grid := m.ed.term.Raster(m.ed.scene, width, m.canvasRows(), nil)
	if _, err := fmt.Fprintln(file, render.Plain(grid)); err != nil {
		return err
	}
	m.ed.logger.Info("exported text", "path", path)
	m.successMessage = "Exported " + path
	return nil
}
