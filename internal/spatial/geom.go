package spatial

// Point is a position on the canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box. Both corners are inside the box.
type Rect struct {
	Min, Max Point
}

// RectAround returns the square of half-size h centred on p.
func RectAround(p Point, h float64) Rect {
	return Rect{
		Min: Point{p.X - h, p.Y - h},
		Max: Point{p.X + h, p.Y + h},
	}
}

// Contains reports whether (x, y) lies inside r, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Midpoint(r.Min, r.Max)
}

func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Entity is anything with a bounding box that the grid can bucket.
type Entity interface {
	Bounds() Rect
}
