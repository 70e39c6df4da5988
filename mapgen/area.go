// This file contains meta builders choosing positions by area and distance.

package mapgen

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
)

// XAnchor is a coarse horizontal map position.
type XAnchor int

const (
	XLeft XAnchor = iota
	XCenter
	XRight
)

// YAnchor is a coarse vertical map position.
type YAnchor int

const (
	YTop YAnchor = iota
	YCenter
	YBottom
)

// anchor returns the map position of a coarse anchor.
func anchor(m *Map, x XAnchor, y YAnchor) gruid.Point {
	var p gruid.Point
	switch x {
	case XLeft:
		p.X = 1
	case XCenter:
		p.X = m.Width / 2
	default:
		p.X = m.Width - 2
	}
	switch y {
	case YTop:
		p.Y = 1
	case YCenter:
		p.Y = m.Height / 2
	default:
		p.Y = m.Height - 2
	}
	return p
}

// nearestTile returns the position closest to target among those satisfying
// ok, by Pythagorean distance. Ties go to the lowest tile index.
func nearestTile(m *Map, target gruid.Point, ok func(gruid.Point) bool) (gruid.Point, bool) {
	best, bestd := InvalidPos, -1
	for p := range m.Points() {
		if !ok(p) {
			continue
		}
		if d := distance2(p, target); bestd < 0 || d < bestd {
			best, bestd = p, d
		}
	}
	return best, bestd >= 0
}

// AreaStartingPosition starts the level on the floor tile nearest to an
// anchor. Any passable tile is used if there is no floor.
type AreaStartingPosition struct {
	X XAnchor
	Y YAnchor
}

func (as AreaStartingPosition) BuildMeta(rng *RNG, bs *BuildState) error {
	m := bs.Map
	target := anchor(m, as.X, as.Y)
	p, ok := nearestTile(m, target, func(q gruid.Point) bool { return m.At(q) == Floor })
	if !ok {
		p, ok = nearestTile(m, target, func(q gruid.Point) bool {
			return m.Passable(q) && m.At(q) != DownStairs
		})
	}
	if !ok {
		return fmt.Errorf("area starting position: %w", ErrNoFloor)
	}
	bs.SetStart(p)
	return nil
}

// MinExitSeparation is the minimal walking distance between start and exit
// for AreaEndingPosition.
const MinExitSeparation = 2

// AreaEndingPosition places the down stairs on the reachable floor tile
// nearest to an anchor, away from the start.
type AreaEndingPosition struct {
	X XAnchor
	Y YAnchor
}

func (ae AreaEndingPosition) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireStart("area ending position"); err != nil {
		return err
	}
	m := bs.Map
	dist := make(map[gruid.Point]int)
	for _, n := range bs.distanceMap(bs.Start) {
		dist[n.P] = n.Cost
	}
	far := func(q gruid.Point) bool {
		d, ok := dist[q]
		return ok && d >= MinExitSeparation
	}
	target := anchor(m, ae.X, ae.Y)
	p, ok := nearestTile(m, target, func(q gruid.Point) bool { return m.At(q) == Floor && far(q) })
	if !ok {
		p, ok = nearestTile(m, target, func(q gruid.Point) bool { return q != bs.Start && dist[q] > 0 })
	}
	if !ok {
		return fmt.Errorf("area ending position: %w", ErrNoExit)
	}
	bs.SetExit(p)
	return nil
}

// CullUnreachable turns every passable tile that cannot be reached from the
// starting position into wall. It then records the farthest reachable tile.
type CullUnreachable struct{}

func (CullUnreachable) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireStart("cull unreachable"); err != nil {
		return err
	}
	m := bs.Map
	if !m.Passable(bs.Start) {
		return fmt.Errorf("cull unreachable: start %v: %w", bs.Start, ErrNoFloor)
	}
	bs.reachable(bs.Start)
	for p, t := range m.Terrain.All() {
		if Passable(t) && !bs.isReached(p) {
			m.Set(p, Wall)
		}
	}
	if bs.Exit != InvalidPos && m.At(bs.Exit) != DownStairs {
		bs.Exit = InvalidPos
	}
	bs.Farthest = bs.Start
	if nodes := bs.distanceMap(bs.Start); len(nodes) > 0 {
		bs.Farthest = nodes[len(nodes)-1].P
	}
	return nil
}

// DistantExit places the down stairs on the reachable tile farthest from the
// starting position. The farthest tile recorded by CullUnreachable is used
// when it is still a floor tile at maximal distance.
type DistantExit struct {
	IfMissing bool // keep an existing exit
}

func (de DistantExit) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireStart("distant exit"); err != nil {
		return err
	}
	m := bs.Map
	if de.IfMissing && bs.Exit != InvalidPos && m.At(bs.Exit) == DownStairs && bs.Exit != bs.Start {
		return nil
	}
	nodes := bs.distanceMap(bs.Start)
	if f := bs.Farthest; f != InvalidPos && f != bs.Start && m.At(f) == Floor && len(nodes) > 0 {
		maxCost := nodes[len(nodes)-1].Cost
		for _, n := range nodes {
			if n.P == f && n.Cost == maxCost {
				bs.SetExit(f)
				return nil
			}
		}
	}
	exit := InvalidPos
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.P == bs.Start {
			continue
		}
		if m.At(n.P) == Floor || m.At(n.P) == DownStairs {
			exit = n.P
			break
		}
		if exit == InvalidPos {
			exit = n.P
		}
	}
	if exit == InvalidPos {
		return fmt.Errorf("distant exit: %w", ErrNoExit)
	}
	bs.SetExit(exit)
	return nil
}
