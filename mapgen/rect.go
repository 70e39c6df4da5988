package mapgen

import "codeberg.org/anaseto/gruid"

// Rect is a rectangular room. Floor occupies [X1, X2) x [Y1, Y2), so X2 and
// Y2 are exclusive upper bounds, like in gruid.Range.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect returns a rectangle of size w x h with its upper-left corner at
// (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Intersects reports whether both rectangles share any tile.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 < o.X2 && o.X1 < r.X2 && r.Y1 < o.Y2 && o.Y1 < r.Y2
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() gruid.Point {
	return gruid.Point{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

// Width returns the number of columns.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the number of lines.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Area returns the number of tiles.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Contains reports whether p is inside the rectangle.
func (r Rect) Contains(p gruid.Point) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// Range returns the rectangle as a gruid.Range.
func (r Rect) Range() gruid.Range {
	return gruid.NewRange(r.X1, r.Y1, r.X2, r.Y2)
}

// Grow returns the rectangle extended by n tiles on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{r.X1 - n, r.Y1 - n, r.X2 + n, r.Y2 + n}
}

// Points calls fn for each position inside the rectangle.
func (r Rect) Points(fn func(gruid.Point)) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			fn(gruid.Point{x, y})
		}
	}
}
