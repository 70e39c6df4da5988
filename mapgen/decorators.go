// This file contains terrain decoration meta builders.

package mapgen

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/aquilax/go-perlin"
)

// CaveDecorator scatters gravel and puddles on cave floor and turns exposed
// walls into cave formations. Passability of floor tiles is preserved.
type CaveDecorator struct{}

func (CaveDecorator) BuildMeta(rng *RNG, bs *BuildState) error {
	m := bs.Map
	for p, t := range m.Terrain.All() {
		if m.OnBorder(p) || p == bs.Start {
			continue
		}
		walls := m.countWallNeighbors(p)
		switch t {
		case Floor:
			switch {
			case rng.IntN(6) == 0:
				m.Set(p, Gravel)
			case walls > 0 && rng.IntN(10) == 0:
				m.Set(p, ShallowWater)
			}
		case Wall:
			if walls <= 5 && rng.IntN(3) == 0 {
				if rng.IntN(2) == 0 {
					m.Set(p, Stalactite)
				} else {
					m.Set(p, Stalagmite)
				}
			}
		}
	}
	return nil
}

// NoiseDecorator repaints tiles of one kind where Perlin noise exceeds a
// threshold. From and To should be both passable or both impassable.
type NoiseDecorator struct {
	From, To  rl.Cell
	Scale     float64 // noise coordinates per tile
	Threshold float64
}

// Perlin noise parameters.
const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

func (nd NoiseDecorator) BuildMeta(rng *RNG, bs *BuildState) error {
	if Passable(nd.From) != Passable(nd.To) {
		return fmt.Errorf("noise decorator: %s to %s changes passability",
			TerrainName(nd.From), TerrainName(nd.To))
	}
	m := bs.Map
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, int64(rng.Uint64()>>1))
	for p, t := range m.Terrain.All() {
		if t != nd.From || p == bs.Start {
			continue
		}
		if noise.Noise2D(float64(p.X)*nd.Scale, float64(p.Y)*nd.Scale) > nd.Threshold {
			m.Set(p, nd.To)
		}
	}
	return nil
}

// walkPath is an A* pather over passable tiles with uniform cost.
type walkPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (wp *walkPath) Neighbors(p gruid.Point) []gruid.Point {
	return wp.nbs.Cardinal(p, wp.m.Passable)
}

func (wp *walkPath) Cost(from, to gruid.Point) int {
	if wp.m.At(to) == Road {
		return 1
	}
	return 2
}

func (wp *walkPath) Estimation(from, to gruid.Point) int {
	return paths.DistanceManhattan(from, to)
}

// streamPath is an A* pather through any interior tile, preferring to follow
// open ground.
type streamPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (sp *streamPath) Neighbors(p gruid.Point) []gruid.Point {
	return sp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return sp.m.InMap(q) && !sp.m.OnBorder(q)
	})
}

func (sp *streamPath) Cost(from, to gruid.Point) int {
	if sp.m.At(to) == Wall {
		return 3
	}
	return 1
}

func (sp *streamPath) Estimation(from, to gruid.Point) int {
	return paths.DistanceManhattan(from, to)
}

// YellowBrickRoad paves a road from the start to the exit on the east side
// of the map, then lets a stream cross the map from north to south, with
// bridges where it meets the road. Run CullUnreachable afterwards.
type YellowBrickRoad struct{}

func (YellowBrickRoad) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireStart("yellow brick road"); err != nil {
		return err
	}
	m := bs.Map
	bs.reachable(bs.Start)
	end, ok := nearestTile(m, gruid.Point{m.Width - 2, m.Height / 2}, func(q gruid.Point) bool {
		return q != bs.Start && m.At(q) == Floor && bs.isReached(q)
	})
	if !ok {
		return fmt.Errorf("yellow brick road: %w", ErrNoExit)
	}
	road := bs.PR.AstarPath(&walkPath{m: m}, bs.Start, end)
	for _, p := range road {
		if p != bs.Start {
			m.Set(p, Road)
		}
	}
	bs.SetExit(end)
	bs.TakeSnapshot()
	from := gruid.Point{rng.Range(1, m.Width-1), 1}
	to := gruid.Point{rng.Range(1, m.Width-1), m.Height - 2}
	for _, p := range bs.PR.AstarPath(&streamPath{m: m}, from, to) {
		switch m.At(p) {
		case Road:
			m.Set(p, Bridge)
		case DownStairs:
		default:
			if p != bs.Start {
				m.Set(p, ShallowWater)
			}
		}
	}
	return nil
}
