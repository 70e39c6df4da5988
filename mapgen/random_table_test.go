package mapgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTableRoll(t *testing.T) {
	rt := NewRandomTable().Add("A", 5).Add("B", 0).Add("C", 15)
	assert.Equal(t, 3, rt.Len())
	assert.Equal(t, 20, rt.TotalWeight())
	rng := NewRNG(7)
	counts := map[string]int{}
	for range 10000 {
		name, err := rt.Roll(rng)
		require.NoError(t, err)
		counts[name]++
	}
	assert.Zero(t, counts["B"])
	ratio := float64(counts["C"]) / float64(counts["A"])
	assert.InDelta(t, 3.0, ratio, 0.35, "counts: %v", counts)
}

func TestRandomTableEmpty(t *testing.T) {
	rng := NewRNG(1)
	_, err := NewRandomTable().Roll(rng)
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = NewRandomTable().Add("A", 0).Add("B", -3).Roll(rng)
	assert.ErrorIs(t, err, ErrEmptyTable)
	var rt *RandomTable
	_, err = rt.Roll(rng)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestRandomTableSingle(t *testing.T) {
	rt := NewRandomTable().Add("Z", -1).Add("Orc", 1)
	rng := NewRNG(3)
	for range 100 {
		name, err := rt.Roll(rng)
		require.NoError(t, err)
		assert.Equal(t, "Orc", name)
	}
}

func TestTableForDepth(t *testing.T) {
	assert.Zero(t, DefaultSpawnCatalog.TableForDepth(1).TotalWeight())
	assert.Positive(t, DefaultSpawnCatalog.TableForDepth(2).TotalWeight())
	sc := SpawnCatalog{
		{Name: "Orc", Weight: 1, MinDepth: 1, MaxDepth: 100, AddDepth: true},
		{Name: "Rat", Weight: 4, MinDepth: 1, MaxDepth: 2},
	}
	assert.Equal(t, 1+5, sc.TableForDepth(5).TotalWeight())
	assert.Equal(t, 1+2+4, sc.TableForDepth(2).TotalWeight())
}

const testCatalog = `
- name: Goblin
  weight: 10
  min_depth: 2
- name: Orc
  weight: 1
  min_depth: 3
  max_depth: 8
  add_depth: true
`

func TestParseSpawnCatalog(t *testing.T) {
	sc, err := ParseSpawnCatalog([]byte(testCatalog))
	require.NoError(t, err)
	require.Len(t, sc, 2)
	assert.Equal(t, SpawnEntry{Name: "Goblin", Weight: 10, MinDepth: 2, MaxDepth: 100}, sc[0])
	assert.Equal(t, SpawnEntry{Name: "Orc", Weight: 1, MinDepth: 3, MaxDepth: 8, AddDepth: true}, sc[1])
	_, err = ParseSpawnCatalog([]byte("- weight: 3\n"))
	assert.Error(t, err)
	_, err = ParseSpawnCatalog([]byte("name: ["))
	assert.Error(t, err)
}

func TestLoadSpawnCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))
	sc, err := LoadSpawnCatalog(path)
	require.NoError(t, err)
	assert.Len(t, sc, 2)
	_, err = LoadSpawnCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
