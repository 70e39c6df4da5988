// This file contains the surface town builder.

package mapgen

import (
	"cmp"
	"math"
	"slices"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"
)

// BuildingKind is the role given to a town building.
type BuildingKind int

const (
	Pub BuildingKind = iota
	Temple
	Blacksmith
	Clothier
	Alchemist
	PlayerHouse
	Hovel
	AbandonedHouse
)

// buildingContents lists the curated spawns of each building kind. They are
// placed in order on random floor tiles.
var buildingContents = map[BuildingKind][]string{
	Pub:         {"Barkeep", "Shady Salesman", "Patron", "Patron", "Keg", "Table", "Chair", "Table", "Chair"},
	Temple:      {"Priest", "Parishioner", "Parishioner", "Chair", "Chair", "Candle", "Candle"},
	Blacksmith:  {"Blacksmith", "Anvil", "Water Trough", "Weapon Rack", "Armor Stand"},
	Clothier:    {"Clothier", "Cabinet", "Table", "Loom", "Hide Rack"},
	Alchemist:   {"Alchemist", "Chemistry Set", "Dead Thing", "Chair", "Table"},
	PlayerHouse: {"Mom", "Bed", "Cabinet", "Chair", "Table"},
	Hovel:       {"Peasant", "Bed", "Chair", "Table"},
}

var dockers = []string{"Dock Worker", "Wannabe Pirate", "Fisher"}

var townsfolk = []string{"Peasant", "Drunk", "Dock Worker", "Fisher"}

// Town layout constants.
const (
	maxTownBuildings        = 12
	maxTownBuildingAttempts = 2000
	townWallGap             = 4 // half height of the gap in the town walls
)

// Building is a town building footprint, walls included.
type Building struct {
	Rect
	Kind BuildingKind
	Door gruid.Point
}

// TownBuilder lays out the surface town: a shore with piers on the west,
// town walls with a gap for the main road, walled buildings with doors,
// roads, and the way down on the east. The level starts in the pub.
type TownBuilder struct {
	Buildings []Building // filled by BuildInitial
}

func (tb *TownBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Grass)
	m.SealBorder()
	bs.TakeSnapshot()
	water := tb.waterAndPiers(rng, bs)
	gapY, available := tb.townWalls(rng, bs, water)
	tb.buildings(rng, bs, available)
	tb.doors(rng, bs, gapY)
	tb.roads(bs, gapY)
	exit := gruid.Point{m.Width - 2, gapY}
	bs.SetExit(exit)
	tb.populate(rng, bs, gapY, available)
	bs.Rooms = make([]Rect, 0, len(tb.Buildings))
	for _, b := range tb.Buildings {
		bs.Rooms = append(bs.Rooms, b.Grow(-1))
	}
	return nil
}

// waterAndPiers draws the western shore and returns the deep water width of
// each line.
func (tb *TownBuilder) waterAndPiers(rng *RNG, bs *BuildState) []int {
	m := bs.Map
	n := float64(rng.RollDice(1, 65535)) / 65535
	water := make([]int, m.Height)
	for y := range m.Height {
		w := int(math.Sin(n)*10) + 14 + rng.RollDice(1, 6)
		w = max(1, min(w, m.Width/3))
		water[y] = w
		n += 0.1
		for x := range w {
			m.Set(gruid.Point{x, y}, DeepWater)
		}
		for x := w; x < w+4; x++ {
			m.Set(gruid.Point{x, y}, ShallowWater)
		}
	}
	m.SealBorder()
	bs.TakeSnapshot()
	for range rng.RollDice(1, 4) + 6 {
		y := rng.Range(1, m.Height-1)
		for x := 2 + rng.RollDice(1, 6); x < water[y]+4; x++ {
			m.Set(gruid.Point{x, y}, Bridge)
		}
	}
	bs.TakeSnapshot()
	return water
}

// townWalls draws the town walls and returns the line of the main road with
// the set of tiles available for buildings.
func (tb *TownBuilder) townWalls(rng *RNG, bs *BuildState, water []int) (int, *mapset.Set[int]) {
	m := bs.Map
	available := mapset.New[int]()
	gapY := rng.Range(townWallGap+2, m.Height-townWallGap-2)
	for y := 1; y < m.Height-1; y++ {
		inGap := y > gapY-townWallGap && y < gapY+townWallGap
		left := water[y] + 5
		if !inGap {
			m.Set(gruid.Point{left, y}, Wall)
			m.Set(gruid.Point{m.Width - 2, y}, Wall)
		}
		if y < 2 || y > m.Height-3 || (y >= gapY-1 && y <= gapY+1) {
			continue
		}
		for x := left + 2; x < m.Width-3; x++ {
			p := gruid.Point{x, y}
			if m.At(p) == Grass {
				m.Set(p, Gravel)
				available.Put(m.Idx(p))
			}
		}
	}
	bs.TakeSnapshot()
	return gapY, &available
}

// buildings places walled buildings on available tiles and assigns their
// kinds by decreasing size.
func (tb *TownBuilder) buildings(rng *RNG, bs *BuildState, available *mapset.Set[int]) {
	m := bs.Map
	tb.Buildings = tb.Buildings[:0]
	for range maxTownBuildingAttempts {
		if len(tb.Buildings) >= maxTownBuildings {
			break
		}
		w := rng.RollDice(1, 8) + 4
		h := rng.RollDice(1, 8) + 4
		r := NewRect(rng.Range(1, m.Width-w), rng.Range(1, m.Height-h), w, h)
		fits := true
		r.Points(func(p gruid.Point) {
			if fits && !available.Has(m.Idx(p)) {
				fits = false
			}
		})
		if !fits {
			continue
		}
		r.Grow(2).Points(func(p gruid.Point) {
			if m.InMap(p) {
				available.Remove(m.Idx(p))
			}
		})
		r.Points(func(p gruid.Point) {
			if p.X == r.X1 || p.Y == r.Y1 || p.X == r.X2-1 || p.Y == r.Y2-1 {
				m.Set(p, Wall)
			} else {
				m.Set(p, WoodFloor)
			}
		})
		tb.Buildings = append(tb.Buildings, Building{Rect: r})
		bs.TakeSnapshot()
	}
	slices.SortStableFunc(tb.Buildings, func(a, b Building) int {
		return cmp.Compare(b.Area(), a.Area())
	})
	for i := range tb.Buildings {
		kind := Hovel
		if i < int(Hovel) {
			kind = BuildingKind(i)
		}
		if i == len(tb.Buildings)-1 && i > int(PlayerHouse) {
			kind = AbandonedHouse
		}
		tb.Buildings[i].Kind = kind
	}
}

// doors opens every building on the side facing the main road.
func (tb *TownBuilder) doors(rng *RNG, bs *BuildState, gapY int) {
	m := bs.Map
	for i, b := range tb.Buildings {
		x := rng.Range(b.X1+1, b.X2-1)
		y := b.Y2 - 1
		if b.Center().Y > gapY {
			y = b.Y1
		}
		door := gruid.Point{x, y}
		m.Set(door, Floor)
		bs.AddSpawn(m.Idx(door), "Door")
		tb.Buildings[i].Door = door
	}
	bs.TakeSnapshot()
}

// roads paves the main road along the wall gap and a road from every door
// to it.
func (tb *TownBuilder) roads(bs *BuildState, gapY int) {
	m := bs.Map
	for x := 1; x < m.Width-1; x++ {
		p := gruid.Point{x, gapY}
		if t := m.At(p); t == Grass || t == Gravel {
			m.Set(p, Road)
		}
	}
	rp := &roadPath{m: m}
	for _, b := range tb.Buildings {
		from := b.Door.Shift(0, 1)
		if b.Door.Y == b.Y1 {
			from = b.Door.Shift(0, -1)
		}
		to := gruid.Point{from.X, gapY}
		for _, p := range bs.PR.AstarPath(rp, from, to) {
			if t := m.At(p); t == Grass || t == Gravel {
				m.Set(p, Road)
			}
		}
	}
	bs.TakeSnapshot()
}

// populate places the start, building contents, dockers and townsfolk.
func (tb *TownBuilder) populate(rng *RNG, bs *BuildState, gapY int, available *mapset.Set[int]) {
	m := bs.Map
	bs.SetStart(gruid.Point{m.Width / 2, gapY})
	for _, b := range tb.Buildings {
		if b.Kind == Pub {
			bs.SetStart(b.Center())
		}
	}
	start := m.Idx(bs.Start)
	for _, b := range tb.Buildings {
		inner := b.Grow(-1)
		if b.Kind == AbandonedHouse {
			inner.Points(func(p gruid.Point) {
				if i := m.Idx(p); m.At(p) == WoodFloor && i != start && rng.RollDice(1, 2) == 1 {
					bs.AddSpawn(i, "Rat")
				}
			})
			continue
		}
		toPlace := slices.Clone(buildingContents[b.Kind])
		inner.Points(func(p gruid.Point) {
			if i := m.Idx(p); len(toPlace) > 0 && m.At(p) == WoodFloor && i != start && rng.RollDice(1, 3) == 1 {
				bs.AddSpawn(i, toPlace[0])
				toPlace = toPlace[1:]
			}
		})
	}
	for p, t := range m.Terrain.All() {
		if t == Bridge && rng.RollDice(1, 6) == 1 {
			bs.AddSpawn(m.Idx(p), dockers[rng.IntN(len(dockers))])
		}
	}
	// Iterate by index, so that spawns are reproducible.
	for i := range m.Len() {
		if available.Has(i) && Passable(m.AtIdx(i)) && rng.RollDice(1, 10) == 1 {
			bs.AddSpawn(i, townsfolk[rng.IntN(len(townsfolk))])
		}
	}
	bs.TakeSnapshot()
}
