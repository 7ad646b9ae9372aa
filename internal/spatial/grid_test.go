package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blob struct {
	name string
	rect Rect
}

func (b *blob) Bounds() Rect { return b.rect }

func newBlob(name string, x, y, h float64) *blob {
	return &blob{name: name, rect: RectAround(Point{x, y}, h)}
}

func TestNew(t *testing.T) {
	g := New[*blob](500, 250, 5)
	require.NotNil(t, g)
	assert.Equal(t, 5, g.Ratio())
	w, h := g.CellSize()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)
	assert.Zero(t, g.Len())

	g = New[*blob](100, 100, 0)
	assert.Equal(t, 1, g.Ratio())
}

func TestAddSpansCells(t *testing.T) {
	g := New[*blob](100, 100, 5) // 20x20 cells
	b := newBlob("a", 20, 20, 5) // 15..25 on both axes

	g.Add(b)
	assert.Equal(t, 1, g.Len())
	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		assert.Contains(t, g.Cell(c[0], c[1]), b, "cell %v", c)
	}
	assert.Empty(t, g.Cell(2, 2))

	g.Add(b)
	assert.Len(t, g.Cell(1, 1), 1, "re-adding must not duplicate")
}

func TestRemove(t *testing.T) {
	g := New[*blob](100, 100, 5)
	a := newBlob("a", 20, 20, 5)
	b := newBlob("b", 22, 22, 5)
	g.Add(a)
	g.Add(b)

	assert.True(t, g.Remove(a))
	assert.False(t, g.Remove(a))
	assert.False(t, g.Has(a))
	assert.Equal(t, []*blob{b}, g.Cell(1, 1))

	got, ok := g.At(20, 20)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestAt(t *testing.T) {
	g := New[*blob](200, 200, 5)
	a := newBlob("a", 10, 10, 25)
	g.Add(a)

	t.Run("inside the box", func(t *testing.T) {
		for _, p := range []Point{{10, 10}, {-15, -15}, {35, 35}, {35, -15}, {0, 30}} {
			got, ok := g.At(p.X, p.Y)
			require.True(t, ok, "point %v", p)
			assert.Same(t, a, got)
		}
	})

	t.Run("outside every box", func(t *testing.T) {
		for _, p := range []Point{{36, 10}, {10, 35.5}, {150, 150}, {-100, -100}} {
			_, ok := g.At(p.X, p.Y)
			assert.False(t, ok, "point %v", p)
		}
	})

	t.Run("first inserted wins on overlap", func(t *testing.T) {
		b := newBlob("b", 20, 20, 25)
		g.Add(b)
		got, ok := g.At(15, 15)
		require.True(t, ok)
		assert.Same(t, a, got)
	})
}

func TestUpdate(t *testing.T) {
	g := New[*blob](100, 100, 5)
	b := newBlob("a", 10, 10, 2)
	g.Add(b)

	b.rect = RectAround(Point{90, 90}, 2)
	g.Update(b)

	_, ok := g.At(10, 10)
	assert.False(t, ok)
	got, ok := g.At(90, 90)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Empty(t, g.Cell(0, 0))
	assert.Contains(t, g.Cell(4, 4), b)
}

func TestResize(t *testing.T) {
	g := New[*blob](100, 100, 5)
	a := newBlob("a", 90, 90, 2)
	b := newBlob("b", 150, 150, 2) // beyond the region, clamped to the last cell
	g.Add(a)
	g.Add(b)
	assert.Contains(t, g.Cell(4, 4), b)

	g.Resize(1000, 1000)
	assert.Equal(t, 2, g.Len())
	w, h := g.CellSize()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 200.0, h)
	assert.Equal(t, []*blob{a, b}, g.Cell(0, 0))

	got, ok := g.At(150, 150)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestResizeKeepsAddOrder(t *testing.T) {
	g := New[*blob](100, 100, 5) // 20x20 cells
	right := newBlob("right", 40, 10, 8) // cols 1-2
	left := newBlob("left", 20, 10, 14)  // cols 0-1
	g.Add(right)
	g.Add(left)

	g.Resize(100, 100)
	assert.Equal(t, []*blob{right, left}, g.Cell(1, 0))
	for i := 0; i < 10; i++ {
		got, ok := g.At(33, 10)
		require.True(t, ok)
		assert.Same(t, right, got)
	}

	g.Update(right)
	g.Resize(200, 200)
	assert.Equal(t, []*blob{left, right}, g.Cell(0, 0))
	got, ok := g.At(33, 10)
	require.True(t, ok)
	assert.Same(t, left, got)
}

func TestAtChecksNeighbouringCells(t *testing.T) {
	g := New[*blob](100, 100, 5) // 20x20 cells
	b := newBlob("b", 10, 10, 5)
	g.Add(b)

	// Moved without re-bucketing: still only listed in cell (0,0).
	b.rect = RectAround(Point{25, 10}, 5)
	got, ok := g.At(25, 10)
	require.True(t, ok)
	assert.Same(t, b, got)

	// Too far from its cell to be found.
	b.rect = RectAround(Point{90, 90}, 5)
	_, ok = g.At(90, 90)
	assert.False(t, ok)
}

func TestZeroSizedRegion(t *testing.T) {
	g := New[*blob](0, 0, 5)
	b := newBlob("a", 10, 10, 5)
	g.Add(b)
	assert.Contains(t, g.Cell(0, 0), b)

	got, ok := g.At(12, 8)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Point{0, 0}, Max: Point{10, 5}}
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{10, 5, true},
		{5, 2.5, true},
		{-0.1, 2, false},
		{10.1, 2, false},
		{5, 5.01, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Contains(tt.x, tt.y), "(%v,%v)", tt.x, tt.y)
	}
	assert.Equal(t, Point{5, 2.5}, r.Center())
}
