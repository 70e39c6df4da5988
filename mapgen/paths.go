package mapgen

import (
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// MapPath implements the paths.Pather interface and is used to provide
// pathing information over passable tiles during map generation.
type MapPath struct {
	passable func(gruid.Point) bool
	nbs      paths.Neighbors
}

// Neighbors returns the passable cardinal neighbors of p.
func (mp *MapPath) Neighbors(p gruid.Point) []gruid.Point {
	return mp.nbs.Cardinal(p, mp.passable)
}

// passPath returns a pather over the passable tiles of m.
func passPath(m *Map) *MapPath {
	return &MapPath{passable: m.Passable}
}

// reachable computes the connected component containing p over passable
// tiles, using cardinal adjacency. Results are queried with PR.CCMapAt.
func (bs *BuildState) reachable(p gruid.Point) {
	bs.PR.CCMap(passPath(bs.Map), p)
}

// isReached reports whether q was reached by the last call to reachable.
func (bs *BuildState) isReached(q gruid.Point) bool {
	return bs.PR.CCMapAt(q) != -1
}

// distanceMap returns the reachable tiles from p with their walking distance,
// ordered by increasing distance.
func (bs *BuildState) distanceMap(p gruid.Point) []paths.Node {
	maxCost := bs.Map.Len()
	nodes := bs.PR.BreadthFirstMap(passPath(bs.Map), []gruid.Point{p}, maxCost)
	nodes = slices.Clone(nodes)
	slices.SortStableFunc(nodes, func(a, b paths.Node) int {
		if a.Cost != b.Cost {
			return a.Cost - b.Cost
		}
		return bs.Map.Idx(a.P) - bs.Map.Idx(b.P)
	})
	return nodes
}

// roadPath computes road paths with A*. Existing roads and bridges are cheap,
// water is expensive, walls are avoided.
type roadPath struct {
	m   *Map
	nbs paths.Neighbors
}

func (rp *roadPath) Neighbors(p gruid.Point) []gruid.Point {
	return rp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return rp.m.InMap(q) && !rp.m.OnBorder(q) && rp.m.At(q) != Wall
	})
}

func (rp *roadPath) Cost(from, to gruid.Point) int {
	switch rp.m.At(to) {
	case Road, Bridge:
		return 1
	case WoodFloor, DownStairs:
		return 50
	case ShallowWater, DeepWater:
		return 20
	default:
		return 3
	}
}

func (rp *roadPath) Estimation(from, to gruid.Point) int {
	return paths.DistanceManhattan(from, to)
}
