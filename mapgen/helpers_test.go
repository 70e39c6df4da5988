package mapgen

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

const rounds = 20

const (
	testWidth  = 80
	testHeight = 50
)

// connex reports whether every passable tile can be reached from p.
func connex(m *Map, p gruid.Point) bool {
	pr := paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height))
	pr.CCMap(passPath(m), p)
	for q, t := range m.Terrain.All() {
		if Passable(t) && pr.CCMapAt(q) == -1 {
			return false
		}
	}
	return true
}

// sealed reports whether the border of the map is made of walls only.
func sealed(m *Map) bool {
	for p := range m.Points() {
		if m.OnBorder(p) && Passable(m.At(p)) {
			return false
		}
	}
	return true
}

// floorStarter fills the interior of the map with floor.
type floorStarter struct{}

func (floorStarter) BuildInitial(rng *RNG, bs *BuildState) error {
	bs.Map.Fill(Floor)
	bs.Map.SealBorder()
	return nil
}

// stageFunc adapts a function to the MetaBuilder interface.
type stageFunc func(rng *RNG, bs *BuildState) error

func (f stageFunc) BuildMeta(rng *RNG, bs *BuildState) error {
	return f(rng, bs)
}

func newTestState(t *testing.T) *BuildState {
	t.Helper()
	return newBuildState(3, testWidth, testHeight, "test", Config{})
}

func checkLevel(t *testing.T, depth int, lvl *Level) {
	t.Helper()
	m := lvl.Map
	if !m.InMap(lvl.Start) || !m.Passable(lvl.Start) {
		t.Errorf("depth %d: bad start %v:\n%s", depth, lvl.Start, m)
		return
	}
	if !m.InMap(lvl.Exit) || m.At(lvl.Exit) != DownStairs || lvl.Exit == lvl.Start {
		t.Errorf("depth %d: bad exit %v (start %v):\n%s", depth, lvl.Exit, lvl.Start, m)
	}
	if !connex(m, lvl.Start) {
		t.Errorf("depth %d: not connex map:\n%s", depth, m)
	}
	used := map[int]bool{m.Idx(lvl.Start): true}
	for _, s := range lvl.Spawns {
		if !m.InIdx(s.Idx) || !Passable(m.AtIdx(s.Idx)) {
			t.Errorf("depth %d: spawn %q on impassable tile %v", depth, s.Tag, m.Point(s.Idx))
		}
		if used[s.Idx] {
			t.Errorf("depth %d: spawn %q on used tile %v", depth, s.Tag, m.Point(s.Idx))
		}
		used[s.Idx] = true
	}
}
