package mapgen

import (
	"errors"
	"fmt"
	"testing"

	"codeberg.org/anaseto/gruid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeBuilders(t *testing.T) {
	for i, newb := range shapeBuilders {
		b := newb()
		t.Run(fmt.Sprintf("%d-%s", i, stageName(b)), func(t *testing.T) {
			built := 0
			for seed := range uint64(rounds / 4) {
				rng := NewRNG(seed)
				bc := NewBuilderChain(5, testWidth, testHeight, "shape", Config{}).
					StartWith(newb()).
					With(AreaStartingPosition{XCenter, YCenter}).
					With(CullUnreachable{}).
					With(DistantExit{})
				err := bc.Build(rng)
				if errors.Is(err, ErrExhausted) {
					continue
				}
				require.NoError(t, err)
				bs := bc.BuildState()
				m := bs.Map
				if !sealed(m) {
					t.Errorf("open border:\n%s", m)
				}
				if !connex(m, bs.Start) {
					t.Errorf("not connex:\n%s", m)
				}
				assert.NotEqual(t, bs.Start, bs.Exit)
				assert.Equal(t, DownStairs, m.At(bs.Exit))
				built++
			}
			assert.Positive(t, built)
		})
	}
}

func TestDrunkardFloorPercent(t *testing.T) {
	bs := newTestState(t)
	b := &DrunkardsWalkBuilder{Settings: OpenArea}
	require.NoError(t, b.BuildInitial(NewRNG(3), bs))
	floor := bs.Map.Len() - bs.Map.Count(Wall)
	assert.GreaterOrEqual(t, floor, int(OpenArea.FloorPercent*float64(bs.Map.Len())))
}

func TestMazeConnex(t *testing.T) {
	for seed := range uint64(rounds) {
		bs := newTestState(t)
		require.NoError(t, MazeBuilder{}.BuildInitial(NewRNG(seed), bs))
		m := bs.Map
		require.Equal(t, Floor, m.At(gruid.Point{1, 1}))
		if !connex(m, gruid.Point{1, 1}) {
			t.Errorf("maze not connex:\n%s", m)
		}
		assert.True(t, sealed(m))
	}
}

func TestRoomBuilders(t *testing.T) {
	builders := []InitialBuilder{
		NewSimpleMapBuilder(),
		NewBspDungeonBuilder(),
		NewBspInteriorBuilder(),
	}
	for _, b := range builders {
		t.Run(stageName(b), func(t *testing.T) {
			for seed := range uint64(rounds) {
				bs := newTestState(t)
				require.NoError(t, b.BuildInitial(NewRNG(seed), bs))
				require.NotEmpty(t, bs.Rooms)
				for i, r := range bs.Rooms {
					assert.True(t, r.X1 >= 1 && r.Y1 >= 1 && r.X2 <= testWidth-1 && r.Y2 <= testHeight-1,
						"room %v out of interior", r)
					for _, o := range bs.Rooms[i+1:] {
						assert.False(t, r.Intersects(o), "rooms %v and %v overlap", r, o)
					}
					assert.Equal(t, Floor, bs.Map.At(r.Center()))
				}
			}
		})
	}
}

func TestSimpleMapStandalone(t *testing.T) {
	for seed := range uint64(rounds) {
		bc := NewBuilderChain(2, testWidth, testHeight, "standalone", Config{}).
			StartWith(&SimpleMapBuilder{MaxRooms: 30, MinSize: 6, MaxSize: 10, Standalone: true})
		require.NoError(t, bc.Build(NewRNG(seed)))
		bs := bc.BuildState()
		if len(bs.Rooms) < 2 {
			continue
		}
		assert.Equal(t, bs.Rooms[0].Center(), bs.Start)
		assert.Equal(t, DownStairs, bs.Map.At(bs.Exit))
		assert.Len(t, bs.Corridors, len(bs.Rooms)-1)
		if !connex(bs.Map, bs.Start) {
			t.Errorf("not connex:\n%s", bs.Map)
		}
	}
}

func TestRoomChain(t *testing.T) {
	corridors := []MetaBuilder{DoglegCorridors{}, BspCorridors{}, NearestCorridors{}, StraightLineCorridors{}}
	for _, cb := range corridors {
		t.Run(stageName(cb), func(t *testing.T) {
			for seed := range uint64(rounds / 2) {
				bc := NewBuilderChain(4, testWidth, testHeight, "rooms", Config{}).
					StartWith(NewBspDungeonBuilder()).
					With(RoomSorter{Sort: SortCentral}).
					With(RoomDrawer{CircleChance: 2}).
					With(cb).
					With(CorridorSpawner{}).
					With(RoomCornerRounder{}).
					With(RoomBasedStartingPosition{}).
					With(CullUnreachable{}).
					With(RoomBasedStairs{}).
					With(RoomBasedSpawner{}).
					With(DoorPlacement{})
				require.NoError(t, bc.Build(NewRNG(seed)))
				checkLevel(t, 4, bc.Level())
				bs := bc.BuildState()
				assert.NotEmpty(t, bs.Corridors)
				for _, r := range bs.Rooms {
					assert.True(t, bs.Map.Passable(r.Center()), "seed %d: room %v culled", seed, r)
				}
			}
		})
	}
}

func TestLineTunnel(t *testing.T) {
	ends := [][2]gruid.Point{
		{{2, 2}, {12, 7}},
		{{12, 7}, {2, 2}},
		{{3, 15}, {25, 1}},
		{{5, 1}, {6, 18}},
		{{1, 10}, {28, 10}},
		{{4, 4}, {4, 4}},
	}
	for _, e := range ends {
		m := NewMap(1, 30, 20, "line")
		lineTunnel(m, e[0], e[1])
		assert.True(t, m.Passable(e[0]) && m.Passable(e[1]), "%v: ends not carved", e)
		if !connex(m, e[0]) {
			t.Errorf("%v: line not connex:\n%s", e, m)
		}
	}
}

func TestStraightLineCorridorsCull(t *testing.T) {
	for seed := range uint64(rounds) {
		bc := NewBuilderChain(3, testWidth, testHeight, "lines", Config{}).
			StartWith(NewSimpleMapBuilder()).
			With(StraightLineCorridors{}).
			With(RoomBasedStartingPosition{}).
			With(CullUnreachable{})
		require.NoError(t, bc.Build(NewRNG(seed)))
		bs := bc.BuildState()
		for _, r := range bs.Rooms {
			assert.Equal(t, Floor, bs.Map.At(r.Center()), "seed %d: room %v culled", seed, r)
		}
	}
}

func TestRoomSorter(t *testing.T) {
	bs := newTestState(t)
	bs.Rooms = []Rect{NewRect(30, 5, 4, 4), NewRect(2, 20, 4, 4), NewRect(60, 2, 4, 4)}
	require.NoError(t, RoomSorter{Sort: SortLeftmost}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, []int{2, 30, 60}, []int{bs.Rooms[0].X1, bs.Rooms[1].X1, bs.Rooms[2].X1})
	require.NoError(t, RoomSorter{Sort: SortTopmost}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, 2, bs.Rooms[0].Y1)
	require.NoError(t, RoomSorter{Sort: SortCentral}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, 30, bs.Rooms[0].X1)
}

func TestCellularAutomataMeta(t *testing.T) {
	bc := NewBuilderChain(3, testWidth, testHeight, "smooth", Config{}).
		StartWith(NewCellularAutomataBuilder()).
		With(NewCellularAutomataBuilder())
	require.NoError(t, bc.Build(NewRNG(11)))
	assert.True(t, sealed(bc.BuildState().Map))
}

func TestTreeCave(t *testing.T) {
	bs := newTestState(t)
	tb := NewTreeCaveBuilder()
	require.NoError(t, tb.BuildInitial(NewRNG(5), bs))
	m := bs.Map
	assert.GreaterOrEqual(t, m.Len()-m.Count(Wall), int(tb.FloorPercent*float64(m.Len())))
	assert.True(t, sealed(m))
	var p gruid.Point
	for q := range m.Points() {
		if m.Passable(q) {
			p = q
			break
		}
	}
	assert.True(t, connex(m, p))
}

func checkerboard(t *testing.T, w, h int) *BuildState {
	t.Helper()
	bs := newBuildState(1, w, h, "checker", Config{})
	for p := range bs.Map.Points() {
		if (p.X+p.Y)%2 == 0 {
			bs.Map.Set(p, Floor)
		}
	}
	return bs
}

func TestWaveformCollapseTiny(t *testing.T) {
	for seed := range uint64(rounds) {
		bs := checkerboard(t, 4, 4)
		wb := &WaveformCollapseBuilder{ChunkSize: 2, MaxAttempts: 3}
		err := wb.BuildMeta(NewRNG(seed), bs)
		if err != nil {
			assert.ErrorIs(t, err, ErrExhausted)
			continue
		}
		assert.True(t, sealed(bs.Map))
		assert.Equal(t, InvalidPos, bs.Start)
	}
}

func TestWaveformCollapseTooSmall(t *testing.T) {
	bs := checkerboard(t, 4, 4)
	err := NewWaveformCollapseBuilder().BuildMeta(NewRNG(1), bs)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestWaveformCollapse(t *testing.T) {
	built := 0
	for seed := range uint64(rounds / 2) {
		bc := NewBuilderChain(5, testWidth, testHeight, "wfc", Config{}).
			StartWith(NewWaveformCollapseStarter(NewCellularAutomataBuilder())).
			With(AreaStartingPosition{XCenter, YCenter}).
			With(CullUnreachable{}).
			With(DistantExit{})
		err := bc.Build(NewRNG(seed))
		if errors.Is(err, ErrExhausted) || errors.Is(err, ErrNoExit) {
			continue
		}
		require.NoError(t, err, "seed %d", seed)
		checkLevel(t, 5, bc.Level())
		built++
	}
	assert.GreaterOrEqual(t, built, rounds/4)
}

func TestWaveformCollapseFloorShare(t *testing.T) {
	for seed := range uint64(rounds) {
		rng := NewRNG(seed)
		bs := newTestState(t)
		require.NoError(t, NewCellularAutomataBuilder().BuildInitial(rng, bs))
		wb := NewWaveformCollapseBuilder()
		err := wb.BuildMeta(rng, bs)
		if err != nil {
			require.ErrorIs(t, err, ErrExhausted)
			continue
		}
		n := bs.Map.PassableCount()
		assert.Positive(t, n, "seed %d: all wall output", seed)
		assert.GreaterOrEqual(t, float64(n), wb.MinFloorShare*float64(bs.Map.Len()), "seed %d", seed)
	}
}

func TestDecorators(t *testing.T) {
	bc := NewBuilderChain(3, testWidth, testHeight, "decor", Config{}).
		StartWith(&DrunkardsWalkBuilder{Settings: WindingPassages}).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{}).
		With(CaveDecorator{}).
		With(NoiseDecorator{From: Floor, To: Gravel, Scale: 0.15, Threshold: 0})
	require.NoError(t, bc.Build(NewRNG(8)))
	lvl := bc.Level()
	checkLevel(t, 3, lvl)
	assert.True(t, sealed(lvl.Map))
}

func TestNoiseDecoratorPassability(t *testing.T) {
	bs := newTestState(t)
	err := NoiseDecorator{From: Floor, To: Wall}.BuildMeta(NewRNG(1), bs)
	assert.Error(t, err)
}
