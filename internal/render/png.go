package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"graphed/internal/spatial"
)

var ErrNothingToExport = errors.New("nothing to export")

type PNGOptions struct {
	VertexRadius float64
	EdgeBoxSize  float64
	// Padding is added around the drawing, in canvas units.
	Padding float64
	// Scale is pixels per canvas unit.
	Scale    float64
	FontSize float64
	Directed bool
	Weights  bool
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		VertexRadius: 25,
		EdgeBoxSize:  10,
		Padding:      16,
		Scale:        1,
		FontSize:     12,
	}
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

func labelFace(size float64) (font.Face, error) {
	f, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderPNG draws the scene onto a white image cropped to its contents.
// Edges go first so vertices sit on top of them.
func RenderPNG(s *Scene, opts PNGOptions) (image.Image, error) {
	bounds, ok := s.Bounds(opts.VertexRadius)
	if !ok {
		return nil, ErrNothingToExport
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultPNGOptions().FontSize
	}
	minX, minY := bounds.Min.X-opts.Padding, bounds.Min.Y-opts.Padding
	imageWidth := int(math.Ceil((bounds.Max.X + opts.Padding - minX) * opts.Scale))
	imageHeight := int(math.Ceil((bounds.Max.Y + opts.Padding - minY) * opts.Scale))

	dc := gg.NewContext(max(imageWidth, 1), max(imageHeight, 1))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	face, err := labelFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	toPixel := func(p spatial.Point) (float64, float64) {
		return (p.X - minX) * opts.Scale, (p.Y - minY) * opts.Scale
	}
	radius := opts.VertexRadius * opts.Scale
	box := opts.EdgeBoxSize * opts.Scale

	for _, edge := range s.Edges() {
		x1, y1 := toPixel(edge.FromPoint)
		x2, y2 := toPixel(edge.ToPoint)
		dc.SetLineWidth(1.0)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()

		cx, cy := toPixel(edge.Center)
		dc.DrawRectangle(cx-box/2, cy-box/2, box, box)
		dc.Fill()
		if opts.Directed {
			drawArrow(dc, x1, y1, x2, y2, radius)
		}
		if opts.Weights {
			dc.DrawStringAnchored(strconv.FormatFloat(edge.Weight, 'g', -1, 64), cx, cy-box, 0.5, 0)
		}
	}

	for _, v := range s.Vertices() {
		x, y := toPixel(v.Center)
		dc.DrawCircle(x, y, radius)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1.0)
		if v.Selected {
			dc.SetLineWidth(3.0)
		}
		dc.Stroke()
		dc.DrawStringAnchored(string(v.Symbol), x, y, 0.5, 0.35)
	}

	return dc.Image(), nil
}

// ExportPNG renders the scene and writes it to path.
func ExportPNG(s *Scene, path string, opts PNGOptions) error {
	img, err := RenderPNG(s, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

// drawArrow puts an arrow head on the line from (fx, fy) to (tx, ty) where
// it meets the rim of the target vertex.
func drawArrow(dc *gg.Context, fx, fy, tx, ty, radius float64) {
	dx := tx - fx
	dy := ty - fy
	length := math.Sqrt(dx*dx + dy*dy)
	if length <= radius {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 6.0
	arrowAngle := 0.5 // radians

	tipX := tx - radius*dx
	tipY := ty - radius*dy
	baseX1 := tipX - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := tipY - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := tipX - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := tipY - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(tipX, tipY)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}
