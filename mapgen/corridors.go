// This file contains corridor drawing between rooms.

package mapgen

import (
	"cmp"
	"fmt"
	"slices"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"
)

// carve turns p into floor if it is an interior non-floor tile and appends its
// index to corridor in that case.
func carve(m *Map, p gruid.Point, corridor []int) []int {
	if !m.InMap(p) || m.OnBorder(p) {
		return corridor
	}
	if m.At(p) != Floor {
		m.Set(p, Floor)
		corridor = append(corridor, m.Idx(p))
	}
	return corridor
}

// horizontalTunnel carves floor from x1 to x2 on line y.
func horizontalTunnel(m *Map, x1, x2, y int, corridor []int) []int {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		corridor = carve(m, gruid.Point{x, y}, corridor)
	}
	return corridor
}

// verticalTunnel carves floor from y1 to y2 on column x.
func verticalTunnel(m *Map, y1, y2, x int, corridor []int) []int {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		corridor = carve(m, gruid.Point{x, y}, corridor)
	}
	return corridor
}

// doglegTunnel carves an L-shaped corridor between two points, starting
// horizontally or vertically at random.
func doglegTunnel(m *Map, rng *RNG, from, to gruid.Point) []int {
	var corridor []int
	if rng.IntN(2) == 0 {
		corridor = horizontalTunnel(m, from.X, to.X, from.Y, corridor)
		corridor = verticalTunnel(m, from.Y, to.Y, to.X, corridor)
	} else {
		corridor = verticalTunnel(m, from.Y, to.Y, from.X, corridor)
		corridor = horizontalTunnel(m, from.X, to.X, to.Y, corridor)
	}
	return corridor
}

// walkTunnel carves a corridor by stepping first along x and then along y.
func walkTunnel(m *Map, from, to gruid.Point) []int {
	var corridor []int
	p := from
	for p != to {
		switch {
		case p.X < to.X:
			p.X++
		case p.X > to.X:
			p.X--
		case p.Y < to.Y:
			p.Y++
		default:
			p.Y--
		}
		corridor = carve(m, p, corridor)
	}
	return corridor
}

// lineTunnel carves a straight line between two points.
func lineTunnel(m *Map, from, to gruid.Point) []int {
	var corridor []int
	for _, p := range bresenham(from, to) {
		corridor = carve(m, p, corridor)
	}
	return corridor
}

// bresenham returns the points of the line between a and b, both included.
// Diagonal steps are split in two orthogonal ones, so that consecutive
// points are cardinal neighbors.
func bresenham(a, b gruid.Point) []gruid.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	ps := []gruid.Point{a}
	for a != b {
		e2 := 2 * e
		stepX, stepY := e2 >= dy, e2 <= dx
		if stepX {
			e += dy
			a.X += sx
			if stepY {
				ps = append(ps, a)
			}
		}
		if stepY {
			e += dx
			a.Y += sy
		}
		ps = append(ps, a)
	}
	return ps
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// randomPoint returns a random position inside the room.
func (r Rect) randomPoint(rng *RNG) gruid.Point {
	return gruid.Point{rng.Range(r.X1, r.X2), rng.Range(r.Y1, r.Y2)}
}

// randomFloor returns a random floor position of the room, or its center if
// none is found in a few tries.
func (r Rect) randomFloor(rng *RNG, m *Map) gruid.Point {
	for range r.Area() {
		if p := r.randomPoint(rng); m.At(p) == Floor {
			return p
		}
	}
	return r.Center()
}

// DoglegCorridors connects consecutive rooms with L-shaped corridors.
type DoglegCorridors struct{}

func (DoglegCorridors) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("dogleg corridors"); err != nil {
		return err
	}
	corridors := [][]int{}
	for i := 1; i < len(bs.Rooms); i++ {
		c := doglegTunnel(bs.Map, rng, bs.Rooms[i-1].Center(), bs.Rooms[i].Center())
		corridors = append(corridors, c)
		bs.TakeSnapshot()
	}
	bs.Corridors = corridors
	return nil
}

// BspCorridors connects consecutive rooms from a random point of the first
// to a random point of the second.
type BspCorridors struct{}

func (BspCorridors) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("bsp corridors"); err != nil {
		return err
	}
	corridors := [][]int{}
	for i := 1; i < len(bs.Rooms); i++ {
		from := bs.Rooms[i-1].randomFloor(rng, bs.Map)
		to := bs.Rooms[i].randomFloor(rng, bs.Map)
		corridors = append(corridors, walkTunnel(bs.Map, from, to))
		bs.TakeSnapshot()
	}
	bs.Corridors = corridors
	return nil
}

// nearestRooms returns for each room the nearest room not yet connected, by
// Pythagorean distance between centers. A room without candidate gets -1.
func nearestRooms(rooms []Rect) []int {
	connected := mapset.New[int]()
	nearest := make([]int, len(rooms))
	for i, r := range rooms {
		nearest[i] = -1
		best := 0
		for j, o := range rooms {
			if i == j || connected.Has(j) {
				continue
			}
			d := distance2(r.Center(), o.Center())
			if nearest[i] < 0 || d < best {
				nearest[i], best = j, d
			}
		}
		if nearest[i] >= 0 {
			connected.Put(i)
		}
	}
	return nearest
}

// distance2 returns the squared Pythagorean distance between two points.
func distance2(p, q gruid.Point) int {
	d := p.Sub(q)
	return d.X*d.X + d.Y*d.Y
}

// NearestCorridors connects every room to its nearest not yet connected
// room with a corridor walking along x then y.
type NearestCorridors struct{}

func (NearestCorridors) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("nearest corridors"); err != nil {
		return err
	}
	corridors := [][]int{}
	for i, j := range nearestRooms(bs.Rooms) {
		if j < 0 {
			continue
		}
		corridors = append(corridors, walkTunnel(bs.Map, bs.Rooms[i].Center(), bs.Rooms[j].Center()))
		bs.TakeSnapshot()
	}
	bs.Corridors = corridors
	return nil
}

// StraightLineCorridors connects every room to its nearest not yet connected
// room with a straight line.
type StraightLineCorridors struct{}

func (StraightLineCorridors) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("straight line corridors"); err != nil {
		return err
	}
	corridors := [][]int{}
	for i, j := range nearestRooms(bs.Rooms) {
		if j < 0 {
			continue
		}
		corridors = append(corridors, lineTunnel(bs.Map, bs.Rooms[i].Center(), bs.Rooms[j].Center()))
		bs.TakeSnapshot()
	}
	bs.Corridors = corridors
	return nil
}

// CorridorSpawner rolls spawns along each corridor.
type CorridorSpawner struct{}

func (CorridorSpawner) BuildMeta(rng *RNG, bs *BuildState) error {
	if bs.Corridors == nil {
		return fmt.Errorf("corridor spawner: %w", ErrMissingCorridors)
	}
	table := bs.Config.spawnTable(bs.Depth())
	for _, c := range bs.Corridors {
		spawnRegion(rng, bs, table, c)
	}
	return nil
}

// RoomSort represents the ordering criteria of RoomSorter.
type RoomSort int

const (
	SortLeftmost RoomSort = iota
	SortRightmost
	SortTopmost
	SortBottommost
	SortCentral
)

// RoomSorter reorders the room list, which changes how consecutive room
// corridors look.
type RoomSorter struct {
	Sort RoomSort
}

func (rs RoomSorter) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room sorter"); err != nil {
		return err
	}
	center := gruid.Point{bs.Map.Width / 2, bs.Map.Height / 2}
	slices.SortStableFunc(bs.Rooms, func(a, b Rect) int {
		switch rs.Sort {
		case SortRightmost:
			return cmp.Compare(b.X1, a.X1)
		case SortTopmost:
			return cmp.Compare(a.Y1, b.Y1)
		case SortBottommost:
			return cmp.Compare(b.Y2, a.Y2)
		case SortCentral:
			return cmp.Compare(distance2(a.Center(), center), distance2(b.Center(), center))
		default:
			return cmp.Compare(a.X1, b.X1)
		}
	})
	return nil
}
