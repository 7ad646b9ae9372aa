package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"graphed/internal/spatial"
)

// Class says what occupies a terminal cell. Later classes draw over earlier
// ones.
type Class uint8

const (
	Blank Class = iota
	GridLine
	EdgeLine
	TrackLine
	EdgeBox
	VertexBody
	VertexLabel
)

type Cell struct {
	Rune  rune
	Class Class
	// Hot marks a hovered or selected entity.
	Hot bool
}

// Overlay describes the spatial index grid drawn under the scene.
type Overlay struct {
	Ratio         int
	Width, Height float64
}

// Terminal maps canvas units onto a grid of character cells. One cell covers
// CellWidth by CellHeight canvas units.
type Terminal struct {
	CellWidth    float64
	CellHeight   float64
	VertexRadius float64

	styles map[Class]lipgloss.Style
	hot    map[Class]lipgloss.Style
}

func NewTerminal(cellWidth, cellHeight, vertexRadius float64) *Terminal {
	base := lipgloss.NewStyle()
	orange := lipgloss.Color("#ff9a00")
	yellow := lipgloss.Color("#ffff64")
	return &Terminal{
		CellWidth:    max(cellWidth, 1),
		CellHeight:   max(cellHeight, 1),
		VertexRadius: vertexRadius,
		styles: map[Class]lipgloss.Style{
			GridLine:    base.Foreground(lipgloss.Color("#444444")),
			EdgeLine:    base.Foreground(yellow),
			TrackLine:   base.Foreground(yellow).Faint(true),
			EdgeBox:     base.Foreground(yellow),
			VertexBody:  base.Foreground(lipgloss.Color("#dd6900")),
			VertexLabel: base.Foreground(orange).Bold(true),
		},
		hot: map[Class]lipgloss.Style{
			EdgeLine:    base.Foreground(lipgloss.Color("#fffc55")).Bold(true),
			EdgeBox:     base.Foreground(lipgloss.Color("#fffc55")).Bold(true),
			VertexBody:  base.Foreground(lipgloss.Color("#fffc55")),
			VertexLabel: base.Foreground(lipgloss.Color("#fffc55")).Bold(true),
		},
	}
}

// ToCanvas returns the canvas point at the centre of cell (col, row).
func (t *Terminal) ToCanvas(col, row int) spatial.Point {
	return spatial.Point{
		X: (float64(col) + 0.5) * t.CellWidth,
		Y: (float64(row) + 0.5) * t.CellHeight,
	}
}

// ToCell returns the cell holding canvas point p.
func (t *Terminal) ToCell(p spatial.Point) (int, int) {
	return int(math.Floor(p.X / t.CellWidth)), int(math.Floor(p.Y / t.CellHeight))
}

// CanvasSize is the canvas extent covered by cols x rows cells.
func (t *Terminal) CanvasSize(cols, rows int) (float64, float64) {
	return float64(cols) * t.CellWidth, float64(rows) * t.CellHeight
}

// Raster lays the scene out on a cols x rows grid. overlay may be nil.
func (t *Terminal) Raster(s *Scene, cols, rows int, overlay *Overlay) [][]Cell {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
		for c := range grid[r] {
			grid[r][c] = Cell{Rune: ' '}
		}
	}
	set := func(col, row int, ch rune, class Class, hot bool) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		if grid[row][col].Class > class {
			return
		}
		grid[row][col] = Cell{Rune: ch, Class: class, Hot: hot}
	}

	if overlay != nil && overlay.Ratio > 1 {
		t.drawOverlay(set, cols, rows, overlay)
	}

	for _, edge := range s.Edges() {
		t.drawLine(set, edge.FromPoint, edge.ToPoint, '·', EdgeLine, edge.Hovered)
	}
	if tr, ok := s.Tracking(); ok {
		t.drawLine(set, tr.Start, tr.End, '.', TrackLine, false)
	}
	for _, edge := range s.Edges() {
		col, row := t.ToCell(edge.Center)
		set(col, row, '■', EdgeBox, edge.Hovered)
	}

	for _, v := range s.Vertices() {
		hot := v.Selected || v.Hovered
		body := '░'
		if v.Selected {
			body = '▓'
		}
		minCol, minRow := t.ToCell(spatial.Point{X: v.Center.X - t.VertexRadius, Y: v.Center.Y - t.VertexRadius})
		maxCol, maxRow := t.ToCell(spatial.Point{X: v.Center.X + t.VertexRadius, Y: v.Center.Y + t.VertexRadius})
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				p := t.ToCanvas(col, row)
				if math.Hypot(p.X-v.Center.X, p.Y-v.Center.Y) <= t.VertexRadius {
					set(col, row, body, VertexBody, hot)
				}
			}
		}
		label := []rune(string(v.Symbol))
		col, row := t.ToCell(v.Center)
		col -= len(label) / 2
		for i, ch := range label {
			set(col+i, row, ch, VertexLabel, hot)
		}
	}
	return grid
}

func (t *Terminal) drawOverlay(set func(int, int, rune, Class, bool), cols, rows int, o *Overlay) {
	cellW, cellH := o.Width/float64(o.Ratio), o.Height/float64(o.Ratio)
	isBorder := func(lo, hi, size float64) bool {
		if size <= 0 {
			return false
		}
		k := math.Ceil(lo / size)
		return k > 0 && k < float64(o.Ratio) && k*size < hi
	}
	for row := 0; row < rows; row++ {
		rowLine := isBorder(float64(row)*t.CellHeight, float64(row+1)*t.CellHeight, cellH)
		for col := 0; col < cols; col++ {
			colLine := isBorder(float64(col)*t.CellWidth, float64(col+1)*t.CellWidth, cellW)
			switch {
			case rowLine && colLine:
				set(col, row, '┼', GridLine, false)
			case rowLine:
				set(col, row, '─', GridLine, false)
			case colLine:
				set(col, row, '│', GridLine, false)
			}
		}
	}
}

// drawLine steps from a to b one half cell at a time.
func (t *Terminal) drawLine(set func(int, int, rune, Class, bool), a, b spatial.Point, ch rune, class Class, hot bool) {
	c1, r1 := t.ToCell(a)
	c2, r2 := t.ToCell(b)
	steps := 2 * max(abs(c2-c1), abs(r2-r1))
	if steps == 0 {
		set(c1, r1, ch, class, hot)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		col, row := t.ToCell(spatial.Point{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f})
		set(col, row, ch, class, hot)
	}
}

// Render draws the scene as styled lines, one per row.
func (t *Terminal) Render(s *Scene, cols, rows int, overlay *Overlay) string {
	return t.RenderGrid(t.Raster(s, cols, rows, overlay), -1, -1)
}

// RenderGrid styles a raster. The cell at (cursorCol, cursorRow), if any,
// is drawn in reverse video.
func (t *Terminal) RenderGrid(grid [][]Cell, cursorCol, cursorRow int) string {
	var b strings.Builder
	for r, line := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for c := 1; c <= len(line); c++ {
			if c < len(line) && c != cursorCol && c-1 != cursorCol &&
				line[c].Class == line[start].Class && line[c].Hot == line[start].Hot {
				continue
			}
			st := t.style(line[start])
			if r == cursorRow && start == cursorCol {
				st = st.Reverse(true)
			}
			b.WriteString(st.Render(runes(line[start:c])))
			start = c
		}
	}
	return b.String()
}

func (t *Terminal) style(cell Cell) lipgloss.Style {
	if cell.Hot {
		if st, ok := t.hot[cell.Class]; ok {
			return st
		}
	}
	if st, ok := t.styles[cell.Class]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Plain returns the raster as unstyled text.
func Plain(grid [][]Cell) string {
	lines := make([]string, len(grid))
	for i, line := range grid {
		lines[i] = runes(line)
	}
	return strings.Join(lines, "\n")
}

func runes(cells []Cell) string {
	out := make([]rune, len(cells))
	for i, cell := range cells {
		out[i] = cell.Rune
	}
	return string(out)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
