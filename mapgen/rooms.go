// This file contains room-based starting builders.

package mapgen

import (
	"codeberg.org/anaseto/gruid"
)

// carveRoom turns every tile of the room into floor.
func carveRoom(m *Map, r Rect) {
	r.Points(func(p gruid.Point) {
		m.Set(p, Floor)
	})
}

// fitsRoom reports whether r is inside the map interior and neither overlaps
// nor touches any of the rooms.
func fitsRoom(m *Map, rooms []Rect, r Rect) bool {
	if r.X1 < 1 || r.Y1 < 1 || r.X2 > m.Width-1 || r.Y2 > m.Height-1 {
		return false
	}
	g := r.Grow(1)
	for _, o := range rooms {
		if g.Intersects(o) {
			return false
		}
	}
	return true
}

// centerRoom returns a room centered in the map, used when random placement
// found no space.
func centerRoom(m *Map, size int) Rect {
	w := max(1, min(size, m.Width-2))
	h := max(1, min(size, m.Height-2))
	return NewRect((m.Width-w)/2, (m.Height-h)/2, w, h)
}

// SimpleMapBuilder places random non-overlapping rectangular rooms.
type SimpleMapBuilder struct {
	MaxRooms int // placement attempts
	MinSize  int
	MaxSize  int
	// Standalone connects consecutive rooms and places stairs in the last
	// room, so that the map is complete without further builders.
	Standalone bool
}

// NewSimpleMapBuilder returns a simple map builder with stock settings.
func NewSimpleMapBuilder() *SimpleMapBuilder {
	return &SimpleMapBuilder{MaxRooms: 30, MinSize: 6, MaxSize: 10}
}

func (sb *SimpleMapBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	rooms := []Rect{}
	for range sb.MaxRooms {
		w := rng.Range(sb.MinSize, sb.MaxSize+1)
		h := rng.Range(sb.MinSize, sb.MaxSize+1)
		x := rng.Range(1, m.Width-w-1)
		y := rng.Range(1, m.Height-h-1)
		r := NewRect(x, y, w, h)
		if !fitsRoom(m, rooms, r) {
			continue
		}
		carveRoom(m, r)
		rooms = append(rooms, r)
		bs.TakeSnapshot()
	}
	if len(rooms) == 0 {
		r := centerRoom(m, sb.MinSize)
		carveRoom(m, r)
		rooms = append(rooms, r)
	}
	bs.Rooms = rooms
	if !sb.Standalone {
		return nil
	}
	corridors := [][]int{}
	for i := 1; i < len(rooms); i++ {
		corridors = append(corridors, doglegTunnel(m, rng, rooms[i-1].Center(), rooms[i].Center()))
	}
	bs.Corridors = corridors
	bs.SetStart(rooms[0].Center())
	last := rooms[len(rooms)-1]
	exit := last.Center()
	if exit == bs.Start {
		exit = gruid.Point{last.X2 - 1, last.Y2 - 1}
	}
	if exit != bs.Start {
		bs.SetExit(exit)
	}
	return nil
}

// BspDungeonBuilder partitions the map into a binary tree of rectangles and
// carves a room in every leaf big enough for one.
type BspDungeonBuilder struct {
	MinLeaf     int // minimum size of a partition
	MinRoomSize int
	Margin      int // space kept between a room and its partition edges
	// ConnectSiblings carves a corridor between sibling subtrees at each
	// merge step.
	ConnectSiblings bool
}

// NewBspDungeonBuilder returns a BSP dungeon builder with stock settings.
func NewBspDungeonBuilder() *BspDungeonBuilder {
	return &BspDungeonBuilder{MinLeaf: 8, MinRoomSize: 4, Margin: 1}
}

// bspNode is a node of the partition tree.
type bspNode struct {
	area        Rect
	left, right *bspNode
	room        *Rect
}

func (b *BspDungeonBuilder) split(rng *RNG, n *bspNode) {
	w, h := n.area.Width(), n.area.Height()
	canW, canH := w >= 2*b.MinLeaf, h >= 2*b.MinLeaf
	var vertical bool
	switch {
	case canW && canH:
		switch {
		case w > h+h/2:
			vertical = true
		case h > w+w/2:
			vertical = false
		default:
			vertical = rng.IntN(2) == 0
		}
	case canW:
		vertical = true
	case canH:
		vertical = false
	default:
		return
	}
	a := n.area
	if vertical {
		s := a.X1 + rng.Range(b.MinLeaf, w-b.MinLeaf+1)
		n.left = &bspNode{area: Rect{a.X1, a.Y1, s, a.Y2}}
		n.right = &bspNode{area: Rect{s, a.Y1, a.X2, a.Y2}}
	} else {
		s := a.Y1 + rng.Range(b.MinLeaf, h-b.MinLeaf+1)
		n.left = &bspNode{area: Rect{a.X1, a.Y1, a.X2, s}}
		n.right = &bspNode{area: Rect{a.X1, s, a.X2, a.Y2}}
	}
	b.split(rng, n.left)
	b.split(rng, n.right)
}

// placeRooms carves rooms in leaves and, when requested, connects siblings.
// It returns a room of the subtree, used as connection point.
func (b *BspDungeonBuilder) placeRooms(rng *RNG, bs *BuildState, n *bspNode, rooms *[]Rect) *Rect {
	if n.left == nil {
		inner := n.area.Grow(-b.Margin)
		if inner.Width() < b.MinRoomSize || inner.Height() < b.MinRoomSize {
			// Too small partitions are dropped.
			return nil
		}
		w := rng.Range(b.MinRoomSize, inner.Width()+1)
		h := rng.Range(b.MinRoomSize, inner.Height()+1)
		r := NewRect(rng.Range(inner.X1, inner.X2-w+1), rng.Range(inner.Y1, inner.Y2-h+1), w, h)
		carveRoom(bs.Map, r)
		*rooms = append(*rooms, r)
		bs.TakeSnapshot()
		n.room = &r
		return n.room
	}
	l := b.placeRooms(rng, bs, n.left, rooms)
	r := b.placeRooms(rng, bs, n.right, rooms)
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	}
	if b.ConnectSiblings {
		c := doglegTunnel(bs.Map, rng, l.Center(), r.Center())
		bs.Corridors = append(bs.Corridors, c)
	}
	if rng.IntN(2) == 0 {
		return l
	}
	return r
}

func (b *BspDungeonBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	root := &bspNode{area: Rect{1, 1, m.Width - 1, m.Height - 1}}
	b.split(rng, root)
	rooms := []Rect{}
	b.placeRooms(rng, bs, root, &rooms)
	if len(rooms) == 0 {
		r := centerRoom(m, b.MinRoomSize)
		carveRoom(m, r)
		rooms = append(rooms, r)
	}
	bs.Rooms = rooms
	if b.ConnectSiblings && bs.Corridors == nil {
		bs.Corridors = [][]int{}
	}
	return nil
}

// BspInteriorBuilder partitions the whole map interior into adjoining rooms
// separated by one tile walls, and connects consecutive rooms.
type BspInteriorBuilder struct {
	MinRoomSize int
}

// NewBspInteriorBuilder returns a BSP interior builder with stock settings.
func NewBspInteriorBuilder() *BspInteriorBuilder {
	return &BspInteriorBuilder{MinRoomSize: 8}
}

func (b *BspInteriorBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	var rooms []Rect
	var partition func(r Rect)
	partition = func(r Rect) {
		w, h := r.Width(), r.Height()
		half := Rect{}
		var other Rect
		switch {
		case w >= 2*b.MinRoomSize && (w >= h || h < 2*b.MinRoomSize) && rng.IntN(4) != 0:
			half = Rect{r.X1, r.Y1, r.X1 + w/2, r.Y2}
			other = Rect{r.X1 + w/2, r.Y1, r.X2, r.Y2}
		case h >= 2*b.MinRoomSize && rng.IntN(4) != 0:
			half = Rect{r.X1, r.Y1, r.X2, r.Y1 + h/2}
			other = Rect{r.X1, r.Y1 + h/2, r.X2, r.Y2}
		default:
			rooms = append(rooms, r)
			return
		}
		partition(half)
		partition(other)
	}
	partition(Rect{1, 1, m.Width - 1, m.Height - 1})
	// Leave a one tile wall on the right and bottom of every room.
	for i, r := range rooms {
		r.X2 = max(r.X1+1, r.X2-1)
		r.Y2 = max(r.Y1+1, r.Y2-1)
		rooms[i] = r
		carveRoom(m, r)
		bs.TakeSnapshot()
	}
	corridors := [][]int{}
	for i := 1; i < len(rooms); i++ {
		from := rooms[i-1].randomPoint(rng)
		to := rooms[i].randomPoint(rng)
		corridors = append(corridors, walkTunnel(m, from, to))
	}
	bs.Rooms = rooms
	bs.Corridors = corridors
	return nil
}
