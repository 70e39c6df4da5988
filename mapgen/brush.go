package mapgen

import "codeberg.org/anaseto/gruid"

// Symmetry describes how digging is mirrored across the map center.
type Symmetry int

const (
	SymmetryNone Symmetry = iota
	SymmetryHorizontal
	SymmetryVertical
	SymmetryBoth
)

// paint digs floor with the given brush size at p and its mirrored
// positions. Border tiles are never dug. It returns the number of tiles that
// became floor.
func paint(m *Map, sym Symmetry, brush int, p gruid.Point) int {
	mx := gruid.Point{m.Width - 1 - p.X, p.Y}
	my := gruid.Point{p.X, m.Height - 1 - p.Y}
	n := dig(m, brush, p)
	switch sym {
	case SymmetryHorizontal:
		n += dig(m, brush, mx)
	case SymmetryVertical:
		n += dig(m, brush, my)
	case SymmetryBoth:
		n += dig(m, brush, mx)
		n += dig(m, brush, my)
		n += dig(m, brush, gruid.Point{mx.X, my.Y})
	}
	return n
}

func dig(m *Map, brush int, p gruid.Point) int {
	n := 0
	set := func(q gruid.Point) {
		if m.InMap(q) && !m.OnBorder(q) && m.At(q) != Floor {
			m.Set(q, Floor)
			n++
		}
	}
	if brush <= 1 {
		set(p)
		return n
	}
	half := brush / 2
	for y := p.Y - half; y <= p.Y+half; y++ {
		for x := p.X - half; x <= p.X+half; x++ {
			set(gruid.Point{x, y})
		}
	}
	return n
}

// clampInterior keeps p at least margin tiles away from the map edges.
func clampInterior(m *Map, p gruid.Point, margin int) gruid.Point {
	p.X = max(margin, min(p.X, m.Width-1-margin))
	p.Y = max(margin, min(p.Y, m.Height-1-margin))
	return p
}
