package mapgen

import (
	"errors"
	"testing"

	"codeberg.org/anaseto/gruid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainNoStarter(t *testing.T) {
	bc := NewBuilderChain(1, testWidth, testHeight, "empty", Config{})
	assert.Equal(t, ChainEmpty, bc.State())
	assert.ErrorIs(t, bc.Build(NewRNG(1)), ErrNoStarter)
}

func TestChainMultipleStarters(t *testing.T) {
	bc := NewBuilderChain(1, testWidth, testHeight, "two", Config{}).
		StartWith(floorStarter{}).
		StartWith(MazeBuilder{})
	assert.ErrorIs(t, bc.Err(), ErrMultipleStarters)
	assert.ErrorIs(t, bc.Build(NewRNG(1)), ErrMultipleStarters)
	assert.Equal(t, ChainHasStarter, bc.State())
}

func TestChainAlreadyBuilt(t *testing.T) {
	bc := NewBuilderChain(1, testWidth, testHeight, "once", Config{}).StartWith(floorStarter{})
	require.NoError(t, bc.Build(NewRNG(1)))
	assert.Equal(t, ChainBuilt, bc.State())
	assert.ErrorIs(t, bc.Build(NewRNG(1)), ErrAlreadyBuilt)
}

func TestChainOrder(t *testing.T) {
	var order []int
	stage := func(i int) MetaBuilder {
		return stageFunc(func(rng *RNG, bs *BuildState) error {
			order = append(order, i)
			return nil
		})
	}
	bc := NewBuilderChain(1, testWidth, testHeight, "order", Config{}).
		StartWith(floorStarter{}).
		With(stage(1)).With(stage(2)).With(stage(3))
	assert.Equal(t, 4, bc.Len())
	require.NoError(t, bc.Build(NewRNG(1)))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestChainStageError(t *testing.T) {
	boom := errors.New("boom")
	ran := false
	bc := NewBuilderChain(1, testWidth, testHeight, "fail", Config{}).
		StartWith(floorStarter{}).
		With(stageFunc(func(rng *RNG, bs *BuildState) error { return boom })).
		With(stageFunc(func(rng *RNG, bs *BuildState) error { ran = true; return nil }))
	assert.ErrorIs(t, bc.Build(NewRNG(1)), boom)
	assert.False(t, ran)
}

func TestChainVisualize(t *testing.T) {
	for _, visualize := range []bool{false, true} {
		bc := NewBuilderChain(1, 20, 10, "snap", Config{Visualize: visualize}).
			StartWith(floorStarter{}).
			With(stageFunc(func(rng *RNG, bs *BuildState) error {
				bs.Map.Set(gruid.Point{5, 5}, Wall)
				return nil
			}))
		require.NoError(t, bc.Build(NewRNG(1)))
		hist := bc.BuildState().History
		if !visualize {
			assert.Empty(t, hist)
			continue
		}
		require.Len(t, hist, 2)
		assert.Equal(t, Floor, hist[0].At(gruid.Point{5, 5}))
		assert.Equal(t, Wall, hist[1].At(gruid.Point{5, 5}))
		assert.True(t, hist[0].Revealed.At(gruid.Point{0, 0}))
		// snapshots are deep copies
		bc.BuildState().Map.Set(gruid.Point{3, 3}, DeepWater)
		assert.Equal(t, Floor, hist[1].At(gruid.Point{3, 3}))
	}
}

func TestChainPrerequisites(t *testing.T) {
	cases := []struct {
		name string
		b    MetaBuilder
		err  error
	}{
		{"sorter", RoomSorter{}, ErrMissingRooms},
		{"doglegs", DoglegCorridors{}, ErrMissingRooms},
		{"room start", RoomBasedStartingPosition{}, ErrMissingRooms},
		{"cull", CullUnreachable{}, ErrMissingStart},
		{"distant exit", DistantExit{}, ErrMissingStart},
		{"voronoi", VoronoiSpawning{}, ErrMissingStart},
		{"road", YellowBrickRoad{}, ErrMissingStart},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bc := NewBuilderChain(1, testWidth, testHeight, c.name, Config{}).
				StartWith(floorStarter{}).
				With(c.b)
			assert.ErrorIs(t, bc.Build(NewRNG(1)), c.err)
		})
	}
	bc := NewBuilderChain(1, testWidth, testHeight, "spawner", Config{}).
		StartWith(NewSimpleMapBuilder()).
		With(CorridorSpawner{})
	assert.ErrorIs(t, bc.Build(NewRNG(1)), ErrMissingCorridors)
}

func TestChainValidateSpawns(t *testing.T) {
	bc := NewBuilderChain(1, 20, 10, "spawns", Config{}).
		StartWith(floorStarter{}).
		With(stageFunc(func(rng *RNG, bs *BuildState) error {
			m := bs.Map
			bs.SetStart(gruid.Point{1, 1})
			bs.AddSpawn(m.Idx(gruid.Point{1, 1}), "on start")
			bs.AddSpawn(m.Idx(gruid.Point{0, 0}), "in wall")
			bs.AddSpawn(-1, "out of range")
			bs.AddSpawn(m.Idx(gruid.Point{4, 4}), "Goblin")
			bs.AddSpawn(m.Idx(gruid.Point{4, 4}), "Orc")
			bs.AddSpawn(m.Idx(gruid.Point{5, 4}), "Rat")
			return nil
		}))
	require.NoError(t, bc.Build(NewRNG(1)))
	spawns := bc.BuildState().Spawns
	require.Len(t, spawns, 2)
	assert.Equal(t, "Goblin", spawns[0].Tag)
	assert.Equal(t, "Rat", spawns[1].Tag)
}

func TestSpawnEntities(t *testing.T) {
	bc := NewBuilderChain(1, 20, 10, "spawns", Config{}).
		StartWith(floorStarter{}).
		With(stageFunc(func(rng *RNG, bs *BuildState) error {
			bs.AddSpawn(bs.Map.Idx(gruid.Point{2, 2}), "Goblin")
			bs.AddSpawn(bs.Map.Idx(gruid.Point{3, 2}), "Unknown")
			bs.AddSpawn(bs.Map.Idx(gruid.Point{4, 2}), "Orc")
			return nil
		}))
	var got []string
	sp := SpawnerFunc(func(idx int, tag string) error {
		if tag == "Unknown" {
			return errors.New("no such entity")
		}
		got = append(got, tag)
		return nil
	})
	assert.ErrorIs(t, bc.SpawnEntities(sp), ErrNotBuilt)
	require.NoError(t, bc.Build(NewRNG(1)))
	err := bc.SpawnEntities(sp)
	assert.ErrorContains(t, err, "Unknown")
	assert.Equal(t, []string{"Goblin", "Orc"}, got)
}

func TestSetExit(t *testing.T) {
	bs := newTestState(t)
	bs.Map.Fill(Floor)
	bs.SetExit(gruid.Point{3, 3})
	bs.SetExit(gruid.Point{4, 4})
	assert.Equal(t, 1, bs.Map.Count(DownStairs))
	assert.Equal(t, gruid.Point{4, 4}, bs.Exit)
	bs.SetStart(gruid.Point{4, 4})
	assert.Equal(t, InvalidPos, bs.Exit)
}

func TestStageName(t *testing.T) {
	assert.Equal(t, "CullUnreachable", stageName(CullUnreachable{}))
	assert.Equal(t, "SimpleMapBuilder", stageName(NewSimpleMapBuilder()))
}
