package mapgen

import (
	"fmt"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for depth := 1; depth <= 12; depth++ {
		t.Run(fmt.Sprintf("depth-%d", depth), func(t *testing.T) {
			for seed := range uint64(rounds / 2) {
				lvl, err := Generate(depth, testWidth, testHeight, NewRNG(seed), Config{})
				require.NoError(t, err)
				checkLevel(t, depth, lvl)
			}
		})
	}
}

// buildRandom builds random chains from the seed, selecting a new chain
// after a recoverable failure like Generate does. It returns the level and
// the number of failed chains.
func buildRandom(t *testing.T, depth, w, h int, seed uint64) (*Level, int) {
	t.Helper()
	rng := NewRNG(seed)
	for try := range MaxLevelAttempts {
		bc := RandomBuilder(depth, w, h, rng, Config{})
		require.NoError(t, bc.Err())
		require.Equal(t, ChainHasStarter, bc.State())
		err := bc.Build(rng)
		if err == nil {
			return bc.Level(), try
		}
		require.True(t, recoverable(err), "seed %d: %v", seed, err)
	}
	t.Fatalf("seed %d: no level after %d chains", seed, MaxLevelAttempts)
	return nil, MaxLevelAttempts
}

func TestRandomBuilder(t *testing.T) {
	failed := 0
	for seed := range uint64(rounds * 2) {
		lvl, n := buildRandom(t, 8, testWidth, testHeight, seed)
		failed += n
		checkLevel(t, 8, lvl)
	}
	assert.LessOrEqual(t, failed, rounds/4)
}

func TestRandomBuilderScenario(t *testing.T) {
	const w, h = 80, 50
	lvl, _ := buildRandom(t, 1, w, h, 42)
	m := lvl.Map
	assert.Equal(t, w, m.Width)
	assert.Equal(t, h, m.Height)
	assert.Equal(t, Floor, m.At(lvl.Start))
	assert.Equal(t, DownStairs, m.At(lvl.Exit))
	pr := paths.NewPathRange(gruid.NewRange(0, 0, w, h))
	reached := false
	for _, n := range pr.BreadthFirstMap(passPath(m), []gruid.Point{lvl.Start}, m.Len()) {
		if n.P == lvl.Exit {
			reached = true
		}
	}
	assert.True(t, reached, "exit not reachable from start")
	assert.Less(t, len(lvl.Spawns), w*h/4)
	checkLevel(t, 1, lvl)
}

func TestGenerateDeterministic(t *testing.T) {
	for _, depth := range []int{1, 2, 5, 9} {
		a, err := Generate(depth, testWidth, testHeight, NewRNG(42), Config{})
		require.NoError(t, err)
		b, err := Generate(depth, testWidth, testHeight, NewRNG(42), Config{})
		require.NoError(t, err)
		assert.Equal(t, a.Map.String(), b.Map.String())
		assert.Equal(t, a.Start, b.Start)
		assert.Equal(t, a.Exit, b.Exit)
		assert.Equal(t, a.Spawns, b.Spawns)
	}
}

func TestGenerateHistory(t *testing.T) {
	lvl, err := Generate(3, testWidth, testHeight, NewRNG(42), Config{Visualize: true})
	require.NoError(t, err)
	require.NotEmpty(t, lvl.History)
	last := lvl.History[len(lvl.History)-1]
	assert.Equal(t, lvl.Map.String(), last.String())
	lvl, err = Generate(3, testWidth, testHeight, NewRNG(42), Config{})
	require.NoError(t, err)
	assert.Empty(t, lvl.History)
}

func TestTown(t *testing.T) {
	for seed := range uint64(rounds / 2) {
		bc := TownChain(1, testWidth, testHeight, Config{})
		require.NoError(t, bc.Build(NewRNG(seed)))
		lvl := bc.Level()
		checkLevel(t, 1, lvl)
		assert.Equal(t, NameTown, lvl.Name)
		assert.Positive(t, lvl.Map.Count(DeepWater))
		assert.Positive(t, lvl.Map.Count(Road))
		assert.NotEmpty(t, bc.BuildState().Rooms)
		doors := 0
		for _, s := range lvl.Spawns {
			if s.Tag == "Door" {
				doors++
			}
		}
		assert.Positive(t, doors)
	}
}

func TestLevelNames(t *testing.T) {
	rng := NewRNG(1)
	names := map[int]string{1: NameTown, 2: NameForest, 3: NameLimestone, 4: NameDeepLimestone,
		5: NameMushroom, 6: NameMushroom, 7: NameMushroom, 8: NameRandom}
	for depth, name := range names {
		assert.Equal(t, name, LevelBuilder(depth, testWidth, testHeight, rng, Config{}).Name())
	}
}

func TestSpawnTableConfig(t *testing.T) {
	cfg := Config{SpawnTable: func(depth int) *RandomTable {
		return NewRandomTable().Add("Slime", 1)
	}}
	lvl, err := Generate(3, testWidth, testHeight, NewRNG(4), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, lvl.Spawns)
	for _, s := range lvl.Spawns {
		assert.Equal(t, "Slime", s.Tag)
	}
}
