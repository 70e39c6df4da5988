// This file contains random walk cave builders.

package mapgen

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// CaveBuilder digs a cave with repeated random walks, favoring horizontal
// moves. The map border is always wall.
type CaveBuilder struct {
	FloorPercent float64
	Walks        int
}

// NewCaveBuilder returns a random walk cave builder with stock settings.
func NewCaveBuilder() *CaveBuilder {
	return &CaveBuilder{FloorPercent: 0.45, Walks: 8}
}

func (cb *CaveBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	// The walk runs on the interior so that the border stays sealed.
	inner := m.Terrain.Slice(gruid.NewRange(1, 1, m.Width-1, m.Height-1))
	mgen := rl.MapGen{Rand: rng.Rand(), Grid: inner}
	mgen.RandomWalkCave(walker{rng: rng}, Floor, cb.FloorPercent, max(cb.Walks, 1))
	return nil
}

// walker implements rl.RandomWalker.
type walker struct {
	rng *RNG
}

// Neighbor returns a random neighbor position, favoring horizontal directions
// (because the maps we use are longer in that direction).
func (w walker) Neighbor(p gruid.Point) gruid.Point {
	switch w.rng.IntN(6) {
	case 0, 1:
		return p.Shift(1, 0)
	case 2, 3:
		return p.Shift(-1, 0)
	case 4:
		return p.Shift(0, 1)
	default:
		return p.Shift(0, -1)
	}
}

// TreeCaveBuilder grows a cave from a central chamber by digging blocks from
// random walls until they touch the existing cave. Used as a MetaBuilder,
// it grows the existing passable area instead.
type TreeCaveBuilder struct {
	FloorPercent float64
}

// NewTreeCaveBuilder returns a tree cave builder with stock settings.
func NewTreeCaveBuilder() *TreeCaveBuilder {
	return &TreeCaveBuilder{FloorPercent: 0.35}
}

// Digging budgets.
const (
	maxDigIterations = 10000
	maxDigBlocks     = 5000
)

func (tb *TreeCaveBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	center := gruid.Point{m.Width / 2, m.Height / 2}
	center.X += -2 + rng.IntN(3)
	center.Y += -1 + rng.IntN(2)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			dig(m, 1, center.Shift(x, y))
		}
	}
	return tb.grow(rng, bs)
}

func (tb *TreeCaveBuilder) BuildMeta(rng *RNG, bs *BuildState) error {
	return tb.grow(rng, bs)
}

func (tb *TreeCaveBuilder) grow(rng *RNG, bs *BuildState) error {
	m := bs.Map
	cells := 0
	for _, t := range m.Terrain.All() {
		if Passable(t) {
			cells++
		}
	}
	if cells == 0 {
		return fmt.Errorf("tree cave: %w", ErrNoFloor)
	}
	maxCells := int(tb.FloorPercent * float64(m.Len()))
	block := make([]gruid.Point, 0, 64)
	for i := 0; cells < maxCells; i++ {
		if i >= maxDigBlocks {
			return fmt.Errorf("tree cave: %w", ErrExhausted)
		}
		block = digBlock(rng, m, block)
		for _, p := range block {
			cells += dig(m, 1, p)
		}
		if i%20 == 0 {
			bs.TakeSnapshot()
		}
	}
	return nil
}

// digBlock returns a random walk from a wall that ends next to a passable
// tile. It returns an empty block if no such walk was found.
func digBlock(rng *RNG, m *Map, block []gruid.Point) []gruid.Point {
	block = block[:0]
	p, ok := randomWall(rng, m)
	if !ok {
		return block
	}
	for count := 1; count <= maxDigIterations; count++ {
		if count%500 == 0 {
			// We haven't found a connected part yet, so try digging
			// again from another wall.
			block = block[:0]
			if p, ok = randomWall(rng, m); !ok {
				return block
			}
		}
		block = append(block, p)
		for range m.PassableNeighbors(p) {
			return block
		}
		p = walker{rng: rng}.Neighbor(p)
		if !m.InMap(p) || m.OnBorder(p) {
			block = block[:0]
			if p, ok = randomWall(rng, m); !ok {
				return block
			}
		}
	}
	return block[:0]
}

// randomWall returns a random interior wall position.
func randomWall(rng *RNG, m *Map) (gruid.Point, bool) {
	for range maxDigIterations {
		p := gruid.Point{rng.Range(1, m.Width-1), rng.Range(1, m.Height-1)}
		if m.At(p) == Wall {
			return p, true
		}
	}
	return InvalidPos, false
}
