// Package geom holds the float geometry shared by the graph model and the
// viewport: points, sizes and axis-aligned rectangles.
package geom

// Point is a 2-D position. Whether it is in diagram or screen space
// depends on the caller.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Div returns p divided by k.
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }

// In reports whether p lies inside r (min inclusive, max exclusive).
func (p Point) In(r Rect) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// RectAt returns the rectangle with top-left p and size s.
func RectAt(p Point, s Size) Rect {
	return Rect{Min: p, Max: Point{p.X + s.W, p.Y + s.H}}
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}
