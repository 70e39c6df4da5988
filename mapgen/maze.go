package mapgen

import "codeberg.org/anaseto/gruid"

// MazeBuilder digs a perfect maze with a randomized backtracker. Each maze
// cell is a floor tile at odd coordinates, and passages open the walls in
// between.
type MazeBuilder struct{}

func (MazeBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	w := max(1, m.Width/2-2)
	h := max(1, m.Height/2-2)
	tile := func(c gruid.Point) gruid.Point {
		return gruid.Point{2*c.X + 1, 2*c.Y + 1}
	}
	visited := NewCacheGrid[bool](w, h)
	inMaze := func(c gruid.Point) bool {
		return c.X >= 0 && c.Y >= 0 && c.X < w && c.Y < h
	}
	stack := []gruid.Point{{0, 0}}
	visited.Set(gruid.Point{}, true)
	m.Set(tile(gruid.Point{}), Floor)
	steps := 0
	nbs := make([]gruid.Point, 0, 4)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		nbs = nbs[:0]
		for _, d := range cardinalDirs {
			if q := c.Add(d); inMaze(q) && !visited.At(q) {
				nbs = append(nbs, q)
			}
		}
		if len(nbs) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := nbs[rng.IntN(len(nbs))]
		visited.Set(next, true)
		a, b := tile(c), tile(next)
		m.Set(gruid.Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}, Floor)
		m.Set(b, Floor)
		stack = append(stack, next)
		steps++
		if steps%10 == 0 {
			bs.TakeSnapshot()
		}
	}
	return nil
}
