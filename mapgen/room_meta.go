// This file contains meta builders operating on the room list.

package mapgen

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"
)

// RoomDrawer redraws a part of the rooms as circles inscribed in their
// rectangle.
type RoomDrawer struct {
	CircleChance int // one in CircleChance rooms becomes a circle, 0 for none
}

func (rd RoomDrawer) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room drawer"); err != nil {
		return err
	}
	m := bs.Map
	for _, r := range bs.Rooms {
		if rd.CircleChance <= 0 || rng.IntN(rd.CircleChance) != 0 {
			continue
		}
		c := r.Center()
		radius := min(r.Width(), r.Height()) / 2
		r.Points(func(p gruid.Point) {
			if distance2(p, c) <= radius*radius {
				m.Set(p, Floor)
			} else {
				m.Set(p, Wall)
			}
		})
		bs.TakeSnapshot()
	}
	return nil
}

// RoomBasedStartingPosition starts the level in the center of the first
// room.
type RoomBasedStartingPosition struct{}

func (RoomBasedStartingPosition) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room based starting position"); err != nil {
		return err
	}
	for _, r := range bs.Rooms {
		if c := r.Center(); bs.Map.Passable(c) {
			bs.SetStart(c)
			return nil
		}
	}
	return fmt.Errorf("room based starting position: %w", ErrNoFloor)
}

// RoomBasedStairs places the down stairs in the center of the last room
// whose center is passable and different from the start. When no such room
// exists, as with a single room, it uses the floor tile of the last room
// farthest from the start.
type RoomBasedStairs struct{}

func (RoomBasedStairs) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room based stairs"); err != nil {
		return err
	}
	for i := len(bs.Rooms) - 1; i >= 0; i-- {
		c := bs.Rooms[i].Center()
		if c != bs.Start && bs.Map.Passable(c) {
			bs.SetExit(c)
			return nil
		}
	}
	m := bs.Map
	for i := len(bs.Rooms) - 1; i >= 0; i-- {
		exit, best := InvalidPos, 0
		bs.Rooms[i].Points(func(p gruid.Point) {
			if p == bs.Start || !m.InMap(p) || m.At(p) != Floor {
				return
			}
			if d := paths.DistanceManhattan(p, bs.Start); d > best {
				exit, best = p, d
			}
		})
		if exit != InvalidPos {
			bs.SetExit(exit)
			return nil
		}
	}
	return fmt.Errorf("room based stairs: %w", ErrNoExit)
}

// RoomCornerRounder walls room corners that have walls on two sides.
type RoomCornerRounder struct{}

func (RoomCornerRounder) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room corner rounder"); err != nil {
		return err
	}
	m := bs.Map
	for _, r := range bs.Rooms {
		if r.Width() < 3 || r.Height() < 3 {
			continue
		}
		corners := []gruid.Point{{r.X1, r.Y1}, {r.X2 - 1, r.Y1}, {r.X1, r.Y2 - 1}, {r.X2 - 1, r.Y2 - 1}}
		for _, p := range corners {
			walls := 0
			for q := range m.Neighbors(p) {
				if m.At(q) == Wall {
					walls++
				}
			}
			if walls == 2 && p != bs.Start {
				m.Set(p, Wall)
			}
		}
		bs.TakeSnapshot()
	}
	return nil
}

// RoomExploder releases short-lived diggers from room centers.
type RoomExploder struct{}

const (
	exploderDice     = 20 // 1dexploderDice-5 diggers per room
	exploderLifetime = 20
)

func (RoomExploder) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room exploder"); err != nil {
		return err
	}
	m := bs.Map
	for _, r := range bs.Rooms {
		n := rng.RollDice(1, exploderDice) - 5
		for range n {
			p := r.Center()
			for range exploderLifetime {
				m.Set(p, Floor)
				q := p.Add(cardinalDirs[rng.IntN(len(cardinalDirs))])
				if q.X >= 2 && q.Y >= 2 && q.X < m.Width-2 && q.Y < m.Height-2 {
					p = q
				}
			}
		}
		bs.TakeSnapshot()
	}
	return nil
}

var cardinalDirs = []gruid.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// DoorPlacement adds door spawns where corridors leave rooms, or at random
// chokepoints when there are no corridors.
type DoorPlacement struct{}

func (DoorPlacement) BuildMeta(rng *RNG, bs *BuildState) error {
	m := bs.Map
	taken := mapset.New[int]()
	for _, s := range bs.Spawns {
		taken.Put(s.Idx)
	}
	if bs.Start != InvalidPos {
		taken.Put(m.Idx(bs.Start))
	}
	possible := func(i int) bool {
		if taken.Has(i) || m.AtIdx(i) != Floor {
			return false
		}
		p := m.Point(i)
		l, r := m.At(p.Shift(-1, 0)), m.At(p.Shift(1, 0))
		u, d := m.At(p.Shift(0, -1)), m.At(p.Shift(0, 1))
		return (l == Wall && r == Wall && Passable(u) && Passable(d)) ||
			(u == Wall && d == Wall && Passable(l) && Passable(r))
	}
	add := func(i int) {
		bs.AddSpawn(i, "Door")
		taken.Put(i)
	}
	if bs.Corridors != nil {
		for _, c := range bs.Corridors {
			if len(c) > 2 && possible(c[0]) {
				add(c[0])
			}
		}
		return nil
	}
	for i := range m.Len() {
		if possible(i) && rng.IntN(3) == 0 {
			add(i)
		}
	}
	return nil
}
