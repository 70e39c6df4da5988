package mapgen

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoCaves returns a state with two separate open areas: a large one on the
// left and a small one on the right.
func twoCaves(t *testing.T) *BuildState {
	t.Helper()
	bs := newBuildState(2, 30, 10, "caves", Config{})
	NewRect(1, 1, 18, 8).Points(func(p gruid.Point) { bs.Map.Set(p, Floor) })
	NewRect(24, 3, 4, 4).Points(func(p gruid.Point) { bs.Map.Set(p, Floor) })
	return bs
}

func TestAreaStartingPosition(t *testing.T) {
	bs := twoCaves(t)
	require.NoError(t, AreaStartingPosition{XLeft, YTop}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{1, 1}, bs.Start)
	require.NoError(t, AreaStartingPosition{XRight, YCenter}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, 27, bs.Start.X)
	empty := newBuildState(2, 10, 10, "walls", Config{})
	assert.ErrorIs(t, AreaStartingPosition{XCenter, YCenter}.BuildMeta(NewRNG(1), empty), ErrNoFloor)
}

func TestCullUnreachable(t *testing.T) {
	bs := twoCaves(t)
	bs.SetStart(gruid.Point{2, 2})
	bs.SetExit(gruid.Point{25, 4})
	require.NoError(t, CullUnreachable{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, Wall, bs.Map.At(gruid.Point{25, 4}))
	assert.Equal(t, InvalidPos, bs.Exit)
	assert.Equal(t, 18*8, bs.Map.Count(Floor))
	assert.Equal(t, gruid.Point{18, 8}, bs.Farthest)
	assert.True(t, connex(bs.Map, bs.Start))
}

func TestCullUnreachableBadStart(t *testing.T) {
	bs := twoCaves(t)
	bs.SetStart(gruid.Point{0, 0})
	assert.ErrorIs(t, CullUnreachable{}.BuildMeta(NewRNG(1), bs), ErrNoFloor)
}

func TestDistantExit(t *testing.T) {
	bs := twoCaves(t)
	bs.SetStart(gruid.Point{1, 1})
	require.NoError(t, DistantExit{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{18, 8}, bs.Exit)
	assert.Equal(t, DownStairs, bs.Map.At(bs.Exit))
	// an existing exit is kept
	bs.SetExit(gruid.Point{5, 5})
	require.NoError(t, DistantExit{IfMissing: true}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{5, 5}, bs.Exit)
	assert.Equal(t, 1, bs.Map.Count(DownStairs))
}

func TestDistantExitAlone(t *testing.T) {
	bs := newBuildState(2, 10, 10, "alone", Config{})
	bs.Map.Set(gruid.Point{4, 4}, Floor)
	bs.SetStart(gruid.Point{4, 4})
	assert.ErrorIs(t, DistantExit{}.BuildMeta(NewRNG(1), bs), ErrNoExit)
}

func TestAreaEndingPosition(t *testing.T) {
	bs := twoCaves(t)
	bs.SetStart(gruid.Point{18, 4})
	require.NoError(t, AreaEndingPosition{XLeft, YCenter}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, 1, bs.Exit.X)
	assert.Equal(t, DownStairs, bs.Map.At(bs.Exit))
}

func TestVoronoiSpawning(t *testing.T) {
	bs := twoCaves(t)
	bs.SetStart(gruid.Point{1, 1})
	bs.Config.SpawnTable = func(int) *RandomTable { return NewRandomTable().Add("Rat", 1) }
	bs.Map.Depth = 8
	require.NoError(t, VoronoiSpawning{}.BuildMeta(NewRNG(2), bs))
	require.NotEmpty(t, bs.Spawns)
	for _, s := range bs.Spawns {
		p := bs.Map.Point(s.Idx)
		assert.Less(t, p.X, 19, "spawn in unreachable area")
		assert.NotEqual(t, bs.Start, p)
	}
}

func TestRoomBasedStairs(t *testing.T) {
	bs := newTestState(t)
	bs.Rooms = []Rect{NewRect(2, 2, 5, 5), NewRect(20, 2, 5, 5)}
	for _, r := range bs.Rooms {
		carveRoom(bs.Map, r)
	}
	require.NoError(t, RoomBasedStartingPosition{}.BuildMeta(NewRNG(1), bs))
	require.NoError(t, RoomBasedStairs{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, bs.Rooms[0].Center(), bs.Start)
	assert.Equal(t, bs.Rooms[1].Center(), bs.Exit)
	// a single room gets its stairs on the floor tile farthest from the
	// start
	bs.Rooms = bs.Rooms[:1]
	require.NoError(t, RoomBasedStairs{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{2, 2}, bs.Exit)
	assert.Equal(t, DownStairs, bs.Map.At(bs.Exit))
	assert.Equal(t, 1, bs.Map.Count(DownStairs))

	bs = newTestState(t)
	bs.Rooms = []Rect{NewRect(5, 5, 1, 1)}
	carveRoom(bs.Map, bs.Rooms[0])
	bs.SetStart(gruid.Point{5, 5})
	assert.ErrorIs(t, RoomBasedStairs{}.BuildMeta(NewRNG(1), bs), ErrNoExit)
}

func TestDistantExitFarthest(t *testing.T) {
	bs := newBuildState(2, 11, 11, "square", Config{})
	NewRect(1, 1, 9, 9).Points(func(p gruid.Point) { bs.Map.Set(p, Floor) })
	bs.SetStart(gruid.Point{5, 5})
	require.NoError(t, CullUnreachable{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{9, 9}, bs.Farthest)
	bs.Farthest = gruid.Point{1, 1}
	require.NoError(t, DistantExit{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{1, 1}, bs.Exit)
	// a recorded tile that is not at maximal distance is ignored
	bs.Farthest = gruid.Point{3, 3}
	require.NoError(t, DistantExit{}.BuildMeta(NewRNG(1), bs))
	assert.Equal(t, gruid.Point{9, 9}, bs.Exit)
}
