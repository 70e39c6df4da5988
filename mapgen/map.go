// This file contains map-related code.

package mapgen

import (
	"iter"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// InvalidPos is a position that does not belong to any map. It is used to
// mark absent positions, like a starting position not chosen yet.
var InvalidPos = gruid.Point{-1, -1}

// Map represents a level's tile grid with its per-tile flags.
type Map struct {
	Width    int             // number of columns
	Height   int             // number of lines
	Depth    int             // dungeon depth (1 is the surface town)
	Name     string          // display name of the level
	Terrain  rl.Grid         // tile kinds
	Revealed CacheGrid[bool] // tiles already seen by the player
	Visible  CacheGrid[bool] // tiles currently in view
	Blocked  CacheGrid[bool] // tiles blocking movement
	Content  [][]int         // entity references by tile index (maintained outside mapgen)
}

// NewMap returns a new map of the given size filled with walls.
func NewMap(depth, width, height int, name string) *Map {
	if width <= 0 || height <= 0 {
		panic("mapgen: invalid map size")
	}
	m := &Map{
		Width:    width,
		Height:   height,
		Depth:    depth,
		Name:     name,
		Terrain:  rl.NewGrid(width, height),
		Revealed: NewCacheGrid[bool](width, height),
		Visible:  NewCacheGrid[bool](width, height),
		Blocked:  NewCacheGrid[bool](width, height),
		Content:  make([][]int, width*height),
	}
	m.Terrain.Fill(Wall)
	return m
}

// Len returns the number of tiles in the map.
func (m *Map) Len() int {
	return m.Width * m.Height
}

// Idx returns the tile index of a map position. It is the only mapping from
// positions to indices.
func (m *Map) Idx(p gruid.Point) int {
	return p.Y*m.Width + p.X
}

// Point returns the map position of a tile index.
func (m *Map) Point(i int) gruid.Point {
	return gruid.Point{i % m.Width, i / m.Width}
}

// InMap reports whether the position is within the map.
func (m *Map) InMap(p gruid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// InIdx reports whether the index is a valid tile index.
func (m *Map) InIdx(i int) bool {
	return i >= 0 && i < m.Len()
}

// OnBorder reports whether the position is on the outer ring of the map.
func (m *Map) OnBorder(p gruid.Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == m.Width-1 || p.Y == m.Height-1
}

// At returns the tile kind at the given position. Out of range positions are
// walls.
func (m *Map) At(p gruid.Point) rl.Cell {
	return m.Terrain.At(p)
}

// Set changes the tile kind at the given position. It does nothing for out of
// range positions.
func (m *Map) Set(p gruid.Point, c rl.Cell) {
	m.Terrain.Set(p, c)
}

// AtIdx returns the tile kind at the given tile index.
func (m *Map) AtIdx(i int) rl.Cell {
	return m.Terrain.At(m.Point(i))
}

// SetIdx changes the tile kind at the given tile index.
func (m *Map) SetIdx(i int, c rl.Cell) {
	m.Terrain.Set(m.Point(i), c)
}

// Passable reports whether the position is in the map and can be walked on.
func (m *Map) Passable(p gruid.Point) bool {
	return m.InMap(p) && Passable(m.Terrain.At(p))
}

// Fill sets every tile to the given kind.
func (m *Map) Fill(c rl.Cell) {
	m.Terrain.Fill(c)
}

// Count returns the number of tiles of the given kind.
func (m *Map) Count(c rl.Cell) int {
	n := 0
	for _, t := range m.Terrain.All() {
		if t == c {
			n++
		}
	}
	return n
}

// PassableCount returns the number of passable tiles.
func (m *Map) PassableCount() int {
	n := 0
	for _, t := range m.Terrain.All() {
		if Passable(t) {
			n++
		}
	}
	return n
}

// Points returns an iterator over all map positions, line by line.
func (m *Map) Points() iter.Seq[gruid.Point] {
	return func(yield func(gruid.Point) bool) {
		for y := range m.Height {
			for x := range m.Width {
				if !yield(gruid.Point{x, y}) {
					return
				}
			}
		}
	}
}

// Neighbors returns an iterator over in-map cardinal neighbors of p.
func (m *Map) Neighbors(p gruid.Point) iter.Seq[gruid.Point] {
	return NeighborsFunc(p, m.InMap)
}

// PassableNeighbors returns an iterator over passable cardinal neighbors of
// p.
func (m *Map) PassableNeighbors(p gruid.Point) iter.Seq[gruid.Point] {
	return NeighborsFunc(p, m.Passable)
}

// NeighborsFunc returns an iterator over cardinal neighbors of the given
// position that statisfy the given predicate.
func NeighborsFunc(p gruid.Point, f func(gruid.Point) bool) iter.Seq[gruid.Point] {
	return func(yield func(gruid.Point) bool) {
		for i := -1; i <= 1; i += 2 {
			q := p.Shift(i, 0)
			if f(q) && !yield(q) {
				return
			}
			q = p.Shift(0, i)
			if f(q) && !yield(q) {
				return
			}
		}
	}
}

// countWallNeighbors returns the number of walls among the 8 neighbors of p.
// Out of range neighbors count as walls.
func (m *Map) countWallNeighbors(p gruid.Point) int {
	n := 0
	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if m.At(p.Shift(x, y)) == Wall {
				n++
			}
		}
	}
	return n
}

// SealBorder turns the outer ring of the map into walls.
func (m *Map) SealBorder() {
	for x := range m.Width {
		m.Set(gruid.Point{x, 0}, Wall)
		m.Set(gruid.Point{x, m.Height - 1}, Wall)
	}
	for y := range m.Height {
		m.Set(gruid.Point{0, y}, Wall)
		m.Set(gruid.Point{m.Width - 1, y}, Wall)
	}
}

// PopulateBlocked recomputes the Blocked layer from terrain.
func (m *Map) PopulateBlocked() {
	for p, t := range m.Terrain.All() {
		m.Blocked.Set(p, !Passable(t))
	}
}

// RevealAll marks every tile as revealed.
func (m *Map) RevealAll() {
	m.Revealed.Fill(true)
}

// ClearContent resets the per-tile entity references.
func (m *Map) ClearContent() {
	for i := range m.Content {
		m.Content[i] = m.Content[i][:0]
	}
}

// Clone returns a deep copy of the map. The copy shares no memory with m.
func (m *Map) Clone() *Map {
	c := &Map{
		Width:    m.Width,
		Height:   m.Height,
		Depth:    m.Depth,
		Name:     m.Name,
		Terrain:  rl.NewGrid(m.Width, m.Height),
		Revealed: m.Revealed.Clone(),
		Visible:  m.Visible.Clone(),
		Blocked:  m.Blocked.Clone(),
		Content:  make([][]int, len(m.Content)),
	}
	for p, t := range m.Terrain.All() {
		c.Terrain.Set(p, t)
	}
	for i, ids := range m.Content {
		if len(ids) > 0 {
			c.Content[i] = append([]int(nil), ids...)
		}
	}
	return c
}

// String returns an ASCII dump of the terrain.
func (m *Map) String() string {
	buf := make([]rune, 0, (m.Width+1)*m.Height)
	for y := range m.Height {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for x := range m.Width {
			buf = append(buf, MapRune(m.At(gruid.Point{x, y})))
		}
	}
	return string(buf)
}

// CacheGrid represents a map-sized grid of any type.
type CacheGrid[T any] struct {
	width int
	cells []T
}

// NewCacheGrid returns a zeroed grid of the given size.
func NewCacheGrid[T any](width, height int) CacheGrid[T] {
	return CacheGrid[T]{width: width, cells: make([]T, width*height)}
}

// Len returns the number of cells.
func (cg CacheGrid[T]) Len() int {
	return len(cg.cells)
}

// At returns the value in the grid at a given position.
func (cg CacheGrid[T]) At(p gruid.Point) T {
	var zero T
	i := p.Y*cg.width + p.X
	if i >= 0 && i < len(cg.cells) && p.X >= 0 && p.X < cg.width {
		return cg.cells[i]
	}
	return zero
}

// AtIdx returns the value at the given tile index. It doesn't check
// boundaries.
func (cg CacheGrid[T]) AtIdx(i int) T {
	return cg.cells[i]
}

// Set puts a value at the given position in the grid.
func (cg CacheGrid[T]) Set(p gruid.Point, v T) {
	i := p.Y*cg.width + p.X
	if i < 0 || i >= len(cg.cells) || p.X < 0 || p.X >= cg.width {
		return
	}
	cg.cells[i] = v
}

// SetIdx puts a value at the given tile index.
func (cg CacheGrid[T]) SetIdx(i int, v T) {
	cg.cells[i] = v
}

// Fill sets every cell to v.
func (cg CacheGrid[T]) Fill(v T) {
	for i := range cg.cells {
		cg.cells[i] = v
	}
}

// Clone returns an independent copy of the grid.
func (cg CacheGrid[T]) Clone() CacheGrid[T] {
	return CacheGrid[T]{width: cg.width, cells: append([]T(nil), cg.cells...)}
}
