package mapgen

import (
	"slices"

	"codeberg.org/anaseto/gruid"
)

// MaxMonsters is the base number of spawns rolled for a region.
const MaxMonsters = 4

// spawnRegion rolls a depth dependent number of entities from the table and
// spreads them over distinct tiles of area. The starting tile is never used.
// Nothing is spawned if the table is empty.
func spawnRegion(rng *RNG, bs *BuildState, table *RandomTable, area []int) {
	m := bs.Map
	tiles := slices.DeleteFunc(slices.Clone(area), func(i int) bool {
		return !m.InIdx(i) || (bs.Start != InvalidPos && i == m.Idx(bs.Start))
	})
	n := min(len(tiles), rng.RollDice(1, MaxMonsters+3)+bs.Depth()-1-3)
	for range n {
		tag, err := table.Roll(rng)
		if err != nil {
			return
		}
		i := rng.IntN(len(tiles))
		bs.AddSpawn(tiles[i], tag)
		tiles[i] = tiles[len(tiles)-1]
		tiles = tiles[:len(tiles)-1]
	}
}

// RoomBasedSpawner spawns entities in every room except the first one, which
// usually holds the starting position.
type RoomBasedSpawner struct{}

func (RoomBasedSpawner) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireRooms("room based spawner"); err != nil {
		return err
	}
	table := bs.Config.spawnTable(bs.Depth())
	for _, r := range bs.Rooms[min(1, len(bs.Rooms)):] {
		var area []int
		r.Points(func(p gruid.Point) {
			if bs.Map.At(p) == Floor {
				area = append(area, bs.Map.Idx(p))
			}
		})
		spawnRegion(rng, bs, table, area)
	}
	return nil
}
