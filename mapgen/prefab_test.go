package mapgen

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefabTemplates(t *testing.T) {
	for _, sec := range []PrefabSection{UndergroundFort, OrcCamp, DrowEntry} {
		v, err := parseTemplate(sec.Template, sec.Width, sec.Height)
		require.NoError(t, err)
		assert.Equal(t, gruid.Point{sec.Width, sec.Height}, v.Size())
	}
	for _, pr := range RoomVaults {
		v, err := parseTemplate(pr.Template, pr.Width, pr.Height)
		require.NoError(t, err)
		assert.Equal(t, gruid.Point{pr.Width, pr.Height}, v.Size())
	}
}

func TestPrefabBadTemplate(t *testing.T) {
	_, err := parseTemplate("#####\n#...#", 3, 2)
	assert.ErrorIs(t, err, ErrBadPrefab)
	_, err = parseTemplate("#\n#\n#", 1, 2)
	assert.ErrorIs(t, err, ErrBadPrefab)
	v, err := parseTemplate("##\n#", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, gruid.Point{3, 3}, v.Size())
}

const testLevel = `
##########
#@...g...#
#..~~~...#
#...≈≈..>#
##########
`

func TestPrefabConstant(t *testing.T) {
	bc := NewBuilderChain(3, 20, 10, "constant", Config{}).
		StartWith(NewPrefabConstant(PrefabLevel{Template: testLevel, Width: 10, Height: 5}))
	require.NoError(t, bc.Build(NewRNG(1)))
	bs := bc.BuildState()
	m := bs.Map
	assert.Equal(t, gruid.Point{1, 1}, bs.Start)
	assert.Equal(t, gruid.Point{8, 3}, bs.Exit)
	assert.Equal(t, DeepWater, m.At(gruid.Point{4, 3}))
	assert.Equal(t, ShallowWater, m.At(gruid.Point{3, 2}))
	assert.Equal(t, Floor, m.At(gruid.Point{1, 1}))
	require.Len(t, bs.Spawns, 1)
	assert.Equal(t, Spawn{Idx: m.Idx(gruid.Point{5, 1}), Tag: "Goblin"}, bs.Spawns[0])
	assert.Equal(t, Wall, m.At(gruid.Point{15, 5}))
}

func TestPrefabConstantTooLarge(t *testing.T) {
	bc := NewBuilderChain(3, 8, 8, "small", Config{}).
		StartWith(NewPrefabConstant(PrefabLevel{Template: testLevel, Width: 10, Height: 5}))
	assert.ErrorIs(t, bc.Build(NewRNG(1)), ErrBadPrefab)
}

func TestPrefabSectional(t *testing.T) {
	bs := newTestState(t)
	bs.Map.Fill(Floor)
	bs.Map.SealBorder()
	center := gruid.Point{testWidth / 2, testHeight / 2}
	bs.SetStart(center)
	bs.AddSpawn(bs.Map.Idx(center.Shift(1, 0)), "Rat")
	bs.AddSpawn(bs.Map.Idx(gruid.Point{2, 2}), "Rat")
	require.NoError(t, NewPrefabSectional(DrowEntry).BuildMeta(NewRNG(1), bs))
	assert.Equal(t, InvalidPos, bs.Start)
	assert.NotEqual(t, InvalidPos, bs.Exit)
	assert.Equal(t, DownStairs, bs.Map.At(bs.Exit))
	elves := 0
	for _, s := range bs.Spawns {
		assert.NotEqual(t, bs.Map.Idx(center.Shift(1, 0)), s.Idx)
		if s.Tag == "Dark Elf" {
			elves++
		}
	}
	assert.Equal(t, 3, elves)
}

func TestPrefabSectionalBorder(t *testing.T) {
	bs := newTestState(t)
	bs.Map.Fill(Floor)
	bs.Map.SealBorder()
	require.NoError(t, NewPrefabSectional(UndergroundFort).BuildMeta(NewRNG(1), bs))
	assert.True(t, sealed(bs.Map))
	assert.Equal(t, "Orc Leader", func() string {
		for _, s := range bs.Spawns {
			if s.Tag == "Orc Leader" {
				return s.Tag
			}
		}
		return ""
	}())
}

func TestPrefabVaults(t *testing.T) {
	for seed := range uint64(rounds) {
		bs := newBuildState(5, testWidth, testHeight, "vaults", Config{})
		bs.Map.Fill(Floor)
		bs.Map.SealBorder()
		bs.SetStart(gruid.Point{1, 1})
		require.NoError(t, NewPrefabVaults().BuildMeta(NewRNG(seed), bs))
		assert.True(t, connex(bs.Map, bs.Start))
		assert.Equal(t, Floor, bs.Map.At(bs.Start))
	}
}

func TestPrefabVaultsDepth(t *testing.T) {
	bs := newBuildState(1, testWidth, testHeight, "vaults", Config{})
	bs.Map.Fill(Floor)
	bs.Map.SealBorder()
	before := bs.Map.Clone()
	require.NoError(t, NewPrefabVaults().BuildMeta(NewRNG(1), bs))
	assert.Equal(t, before.String(), bs.Map.String())
}

func TestParsePrefabLevel(t *testing.T) {
	pl, err := ParsePrefabLevel(testLevel)
	require.NoError(t, err)
	assert.Equal(t, 10, pl.Width)
	assert.Equal(t, 5, pl.Height)
	_, err = ParsePrefabLevel("\n\n")
	assert.ErrorIs(t, err, ErrBadPrefab)
	_, err = LoadPrefabLevel("testdata/missing.txt")
	assert.Error(t, err)
}

func TestPrefabLevelChain(t *testing.T) {
	pl, err := ParsePrefabLevel(testLevel)
	require.NoError(t, err)
	lvl, err := GeneratePrefab(3, 20, 10, pl, NewRNG(1), Config{})
	require.NoError(t, err)
	assert.Equal(t, NamePrefab, lvl.Name)
	assert.Equal(t, gruid.Point{1, 1}, lvl.Start)
	assert.Equal(t, gruid.Point{8, 3}, lvl.Exit)
	checkLevel(t, 3, lvl)

	// without start nor exit
	pl, err = ParsePrefabLevel("#######\n#.....#\n#.....#\n#######")
	require.NoError(t, err)
	lvl, err = GeneratePrefab(3, 7, 4, pl, NewRNG(1), Config{})
	require.NoError(t, err)
	assert.True(t, lvl.Map.Passable(lvl.Start))
	checkLevel(t, 3, lvl)
}
