package mapgen

import (
	"fmt"
	"log"

	"codeberg.org/anaseto/gruid"
)

// DrunkSpawn describes where new diggers start.
type DrunkSpawn int

const (
	DrunkSpawnCenter DrunkSpawn = iota
	DrunkSpawnRandom
)

// DrunkardSettings parametrizes a drunkard's walk.
type DrunkardSettings struct {
	Spawn        DrunkSpawn
	Lifetime     int     // steps per digger
	FloorPercent float64 // target proportion of floor tiles
	Brush        int     // 1 for single tile, 2 for 3x3
	Symmetry     Symmetry
}

// Drunkard's walk presets.
var (
	OpenArea        = DrunkardSettings{Spawn: DrunkSpawnCenter, Lifetime: 400, FloorPercent: 0.5, Brush: 1}
	OpenHalls       = DrunkardSettings{Spawn: DrunkSpawnRandom, Lifetime: 400, FloorPercent: 0.5, Brush: 1}
	WindingPassages = DrunkardSettings{Spawn: DrunkSpawnRandom, Lifetime: 100, FloorPercent: 0.4, Brush: 1}
	FatPassages     = DrunkardSettings{Spawn: DrunkSpawnRandom, Lifetime: 100, FloorPercent: 0.4, Brush: 2}
	FearfulSymmetry = DrunkardSettings{Spawn: DrunkSpawnRandom, Lifetime: 100, FloorPercent: 0.4, Brush: 1, Symmetry: SymmetryBoth}
)

// Generation budgets shared by random digging algorithms.
const (
	MaxDiggers           = 2000
	MaxGenerationRetries = 3
)

// DrunkardsWalkBuilder digs a cave with random walking diggers until enough
// of the map is floor.
type DrunkardsWalkBuilder struct {
	Settings DrunkardSettings
}

func (db *DrunkardsWalkBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	for try := range MaxGenerationRetries {
		if db.walk(rng, bs) {
			return nil
		}
		log.Printf("mapgen: drunkard's walk exhausted its diggers (try %d)", try+1)
	}
	return fmt.Errorf("drunkard's walk: %w", ErrExhausted)
}

func (db *DrunkardsWalkBuilder) walk(rng *RNG, bs *BuildState) bool {
	m := bs.Map
	st := db.Settings
	m.Fill(Wall)
	center := gruid.Point{m.Width / 2, m.Height / 2}
	floor := paint(m, st.Symmetry, st.Brush, center)
	desired := int(st.FloorPercent * float64(m.Len()))
	for diggers := 0; floor < desired; diggers++ {
		if diggers >= MaxDiggers {
			return false
		}
		p := center
		if st.Spawn == DrunkSpawnRandom && diggers > 0 {
			p = gruid.Point{rng.Range(2, m.Width-2), rng.Range(2, m.Height-2)}
		}
		for range st.Lifetime {
			floor += paint(m, st.Symmetry, st.Brush, p)
			p = clampInterior(m, p.Add(cardinalDirs[rng.IntN(len(cardinalDirs))]), 2)
		}
		if diggers%10 == 0 {
			bs.TakeSnapshot()
		}
	}
	return true
}
