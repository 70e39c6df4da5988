package mapgen

import (
	"fmt"
	"log"

	"codeberg.org/anaseto/gruid"
)

// DLAAlgorithm describes how diffusion-limited aggregation particles move.
type DLAAlgorithm int

const (
	// DLAWalkInwards releases particles at random wall positions; they stick
	// where they first touch floor.
	DLAWalkInwards DLAAlgorithm = iota
	// DLAWalkOutwards releases particles from the center; they dig where
	// they first leave floor.
	DLAWalkOutwards
	// DLACentralAttractor moves particles in a straight line toward the
	// center.
	DLACentralAttractor
)

// DLASettings parametrizes diffusion-limited aggregation.
type DLASettings struct {
	Algorithm    DLAAlgorithm
	Brush        int
	Symmetry     Symmetry
	FloorPercent float64
}

// DLA tuning constants.
const (
	DLAFloorPercent   = 0.25
	MaxDLAParticles   = 20000
	MaxParticleSteps  = 5000
	dlaSnapshotPeriod = 50
)

// DLA presets.
var (
	WalkInwards      = DLASettings{Algorithm: DLAWalkInwards, Brush: 1, FloorPercent: DLAFloorPercent}
	WalkOutwards     = DLASettings{Algorithm: DLAWalkOutwards, Brush: 2, FloorPercent: DLAFloorPercent}
	CentralAttractor = DLASettings{Algorithm: DLACentralAttractor, Brush: 2, FloorPercent: DLAFloorPercent}
	// Insectoid is a central attractor mirrored horizontally, which gives
	// bodies with legs.
	Insectoid = DLASettings{Algorithm: DLACentralAttractor, Brush: 2, Symmetry: SymmetryHorizontal, FloorPercent: DLAFloorPercent}
)

// DLABuilder grows a connected floor region from the center with
// diffusion-limited aggregation.
type DLABuilder struct {
	Settings DLASettings
}

func (db *DLABuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	for try := range MaxGenerationRetries {
		if db.grow(rng, bs) {
			return nil
		}
		log.Printf("mapgen: aggregation exhausted its particles (try %d)", try+1)
	}
	return fmt.Errorf("diffusion-limited aggregation: %w", ErrExhausted)
}

func (db *DLABuilder) grow(rng *RNG, bs *BuildState) bool {
	m := bs.Map
	st := db.Settings
	m.Fill(Wall)
	center := gruid.Point{m.Width / 2, m.Height / 2}
	floor := paint(m, st.Symmetry, 1, center)
	for _, d := range cardinalDirs {
		floor += paint(m, st.Symmetry, 1, center.Add(d))
	}
	desired := int(st.FloorPercent * float64(m.Len()))
	for i := 0; floor < desired; i++ {
		if i >= MaxDLAParticles {
			return false
		}
		var p gruid.Point
		var ok bool
		switch st.Algorithm {
		case DLAWalkOutwards:
			p, ok = db.walkOutwards(rng, m, center)
		case DLACentralAttractor:
			p, ok = db.attract(rng, m, center)
		default:
			p, ok = db.walkInwards(rng, m)
		}
		if ok {
			floor += paint(m, st.Symmetry, st.Brush, p)
		}
		if i%dlaSnapshotPeriod == 0 {
			bs.TakeSnapshot()
		}
	}
	return true
}

func (db *DLABuilder) randomInterior(rng *RNG, m *Map) gruid.Point {
	return gruid.Point{rng.Range(1, m.Width-1), rng.Range(1, m.Height-1)}
}

func (db *DLABuilder) step(rng *RNG, m *Map, p gruid.Point) gruid.Point {
	return clampInterior(m, p.Add(cardinalDirs[rng.IntN(len(cardinalDirs))]), 2)
}

// walkInwards returns the last wall position of a particle walking randomly
// until it reaches floor.
func (db *DLABuilder) walkInwards(rng *RNG, m *Map) (gruid.Point, bool) {
	p := db.randomInterior(rng, m)
	prev := p
	for range MaxParticleSteps {
		if m.At(p) == Floor {
			return prev, prev != p
		}
		prev = p
		p = db.step(rng, m, p)
	}
	return p, false
}

// walkOutwards returns the first wall position of a particle walking
// randomly from the center.
func (db *DLABuilder) walkOutwards(rng *RNG, m *Map, center gruid.Point) (gruid.Point, bool) {
	p := center
	for range MaxParticleSteps {
		if m.At(p) == Wall {
			return p, true
		}
		p = db.step(rng, m, p)
	}
	return p, false
}

// attract returns the last wall position of a particle moving in a straight
// line from a random position toward the center.
func (db *DLABuilder) attract(rng *RNG, m *Map, center gruid.Point) (gruid.Point, bool) {
	start := db.randomInterior(rng, m)
	line := bresenham(start, center)
	prev := start
	for _, p := range line {
		if m.At(p) == Floor {
			if prev == p {
				return prev, false
			}
			return prev, true
		}
		prev = p
	}
	return prev, false
}
