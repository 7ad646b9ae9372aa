package main

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"graphed/internal/config"
	"graphed/internal/graph"
)

func main() {
	cfg, path, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, closer, err := openLogger(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	logger.Info("starting", "config", path)

	p := tea.NewProgram(
		initialModel(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(cfg *config.Config, logger *slog.Logger) model {
	return model{ed: newEditor(cfg, logger)}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		m.clearMessages()
		m.handleMouse(msg)
		m.reportFailure()
		return m, nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "j", "down":
				if m.helpScroll < max(len(helpLines)-m.canvasRows(), 0) {
					m.helpScroll++
				}
			case "k", "up":
				if m.helpScroll > 0 {
					m.helpScroll--
				}
			default:
				m.help = false
				m.helpScroll = 0
			}
			return m, nil
		}

		m.clearMessages()
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.help = true
		case "h", "j", "k", "l", "left", "right", "up", "down",
			"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
			m.handleNavigation(key, m.getMoveSpeed(key))
		case "enter", " ":
			m.click()
		case "m":
			if m.ed.mode == ModeVertex {
				m.toggleGrab()
			}
		case "v":
			m.ed.setMode(ModeVertex)
		case "e":
			m.ed.setMode(ModeEdge)
		case "esc":
			m.ed.engine.DeselectVertex()
		case "u":
			m.undo()
		case "U":
			m.redo()
		case "g":
			m.ed.showGrid = !m.ed.showGrid
		case "y":
			if err := m.copyDump(); err != nil {
				m.errorMessage = err.Error()
			}
		case "S":
			if err := m.exportPNG(); err != nil {
				m.errorMessage = "Export failed: " + err.Error()
			}
		case "T":
			if err := m.exportVisualTXT(); err != nil {
				m.errorMessage = "Export failed: " + err.Error()
			}
		}
		m.reportFailure()
		return m, nil
	}
	return m, nil
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
	m.ed.lastErr = nil
}

// reportFailure surfaces the last error a pointer listener hit.
func (m *model) reportFailure() {
	if m.ed.lastErr != nil {
		m.errorMessage = m.ed.lastErr.Error()
		m.ed.lastErr = nil
	}
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#262626")).Background(lipgloss.Color("#ff9a00"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#55ff55"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	width := max(m.width, 1)
	grid := m.ed.term.Raster(m.ed.scene, width, m.canvasRows(), m.overlay())
	canvas := m.ed.term.RenderGrid(grid, m.cursorX, m.cursorY)
	return canvas + "\n" + m.statusLine(width)
}

func (m model) statusLine(width int) string {
	applied, undone := m.ed.engine.History(graph.UserLog)
	status := fmt.Sprintf(" %s | %d/%d | symbols %d | undo %d redo %d ",
		modeName(m.ed.mode), m.cursorX, m.cursorY, m.ed.symbols.Available(), applied, undone)
	if v := m.ed.engine.Selected(); v != nil {
		status += "| selected " + string(v.Symbol()) + " "
	}
	line := statusStyle.Render(status)
	switch {
	case m.errorMessage != "":
		line += " " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		line += " " + okStyle.Render(m.successMessage)
	default:
		line += " ? for help"
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

var helpLines = []string{
	"graphed Help",
	"============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor around the screen",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  Mouse            Click, drag and hover work as expected",
	"",
	"Modes:",
	"------",
	"  v                Vertex mode",
	"                   - Enter/Space on empty space adds a vertex",
	"                   - Enter/Space on a vertex removes it with its edges",
	"                   - m grabs the vertex under the cursor, m again drops it",
	"  e                Edge mode",
	"                   - Enter/Space on a vertex selects it",
	"                   - Enter/Space on a second vertex connects the two",
	"                   - Enter/Space on an edge removes it",
	"  Esc              Drop the selection",
	"",
	"Files:",
	"------",
	"  S                Export as PNG image",
	"  T                Export as text",
	"  y                Copy the adjacency list to the clipboard",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  g                Toggle the spatial grid overlay",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visible := m.canvasRows()
	start := min(m.helpScroll, max(len(helpLines)-1, 0))
	end := min(start+visible, len(helpLines))
	return strings.Join(helpLines[start:end], "\n")
}
