package mapgen

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// CAWallProbability is the stock initial wall density of cellular automata
// caves.
const CAWallProbability = 0.45

// CellularAutomataBuilder generates a cave from random noise smoothed by
// cellular automata rules. The map border is always wall.
//
// Used as a MetaBuilder, it runs Generations extra smoothing passes over
// the existing map instead.
type CellularAutomataBuilder struct {
	WallProbability float64
	Rules           []rl.CellularAutomataRule
	Generations     int // smoothing passes as a meta builder
}

// NewCellularAutomataBuilder returns a cave builder with stock rules.
func NewCellularAutomataBuilder() *CellularAutomataBuilder {
	return &CellularAutomataBuilder{
		WallProbability: CAWallProbability,
		Rules: []rl.CellularAutomataRule{
			{WCutoff1: 5, WCutoff2: 2, Reps: 4, WallsOutOfRange: true},
			{WCutoff1: 5, WCutoff2: 25, Reps: 3, WallsOutOfRange: true},
		},
		Generations: 1,
	}
}

func (cb *CellularAutomataBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	mgen := rl.MapGen{Rand: rng.Rand(), Grid: m.Terrain}
	mgen.CellularAutomataCave(Wall, Floor, cb.WallProbability, cb.Rules)
	m.SealBorder()
	return nil
}

func (cb *CellularAutomataBuilder) BuildMeta(rng *RNG, bs *BuildState) error {
	for range max(cb.Generations, 1) {
		smooth(bs.Map)
		bs.TakeSnapshot()
	}
	return nil
}

// smooth runs one generation of the 8-neighbor wall rule over the map
// interior: a tile becomes wall with more than 4 or no wall neighbors, floor
// otherwise. Tiles that are neither wall nor floor are kept.
func smooth(m *Map) {
	next := make([]rl.Cell, m.Len())
	for i := range next {
		next[i] = m.AtIdx(i)
	}
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := gruid.Point{x, y}
			t := m.At(p)
			if t != Wall && t != Floor {
				continue
			}
			n := m.countWallNeighbors(p)
			if n > 4 || n == 0 {
				next[m.Idx(p)] = Wall
			} else {
				next[m.Idx(p)] = Floor
			}
		}
	}
	for i, t := range next {
		m.SetIdx(i, t)
	}
}
