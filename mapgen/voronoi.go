package mapgen

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"
)

// DistanceMetric selects the distance used for nearest-seed assignment.
type DistanceMetric int

const (
	Pythagoras DistanceMetric = iota
	Manhattan
	Chebyshev
)

// distance returns a distance under the metric. Pythagorean distances are
// squared, which keeps the ordering.
func (dm DistanceMetric) distance(p, q gruid.Point) int {
	switch dm {
	case Manhattan:
		return paths.DistanceManhattan(p, q)
	case Chebyshev:
		return paths.DistanceChebyshev(p, q)
	default:
		return distance2(p, q)
	}
}

// randomSeeds returns up to n distinct random interior positions.
func randomSeeds(rng *RNG, m *Map, n int) []gruid.Point {
	seen := mapset.New[gruid.Point]()
	seeds := make([]gruid.Point, 0, n)
	for range 10 * n {
		if len(seeds) == n {
			break
		}
		p := gruid.Point{rng.Range(1, m.Width-1), rng.Range(1, m.Height-1)}
		if seen.Has(p) {
			continue
		}
		seen.Put(p)
		seeds = append(seeds, p)
	}
	return seeds
}

// nearestSeed returns the index of the seed nearest to p. Ties go to the
// first seed.
func nearestSeed(dm DistanceMetric, seeds []gruid.Point, p gruid.Point) int {
	best, bestd := 0, -1
	for i, s := range seeds {
		if d := dm.distance(p, s); bestd < 0 || d < bestd {
			best, bestd = i, d
		}
	}
	return best
}

// VoronoiCellBuilder divides the map into Voronoi cells separated by walls.
type VoronoiCellBuilder struct {
	Seeds    int
	Distance DistanceMetric
}

// NewVoronoiCellBuilder returns a builder with 64 seeds and the given metric.
func NewVoronoiCellBuilder(dm DistanceMetric) *VoronoiCellBuilder {
	return &VoronoiCellBuilder{Seeds: 64, Distance: dm}
}

func (vb *VoronoiCellBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	m := bs.Map
	m.Fill(Wall)
	seeds := randomSeeds(rng, m, vb.Seeds)
	if len(seeds) == 0 {
		return ErrNoFloor
	}
	membership := make([]int, m.Len())
	for p := range m.Points() {
		membership[m.Idx(p)] = nearestSeed(vb.Distance, seeds, p)
	}
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := gruid.Point{x, y}
			seed := membership[m.Idx(p)]
			differ := 0
			for q := range m.Neighbors(p) {
				if membership[m.Idx(q)] != seed {
					differ++
				}
			}
			if differ < 2 {
				m.Set(p, Floor)
			}
		}
		if y%8 == 0 {
			bs.TakeSnapshot()
		}
	}
	return nil
}

// VoronoiSpawnArea is the approximate number of reachable floor tiles per
// spawn region of VoronoiSpawning.
const VoronoiSpawnArea = 144

// VoronoiSpawning partitions reachable floor into Voronoi regions and rolls
// spawns independently in each region.
type VoronoiSpawning struct {
	Distance DistanceMetric
}

func (vs VoronoiSpawning) BuildMeta(rng *RNG, bs *BuildState) error {
	if err := bs.RequireStart("voronoi spawning"); err != nil {
		return err
	}
	m := bs.Map
	bs.reachable(bs.Start)
	var floor []gruid.Point
	for p, t := range m.Terrain.All() {
		if t == Floor && p != bs.Start && bs.isReached(p) {
			floor = append(floor, p)
		}
	}
	if len(floor) == 0 {
		return nil
	}
	seeds := randomSeeds(rng, m, max(1, len(floor)/VoronoiSpawnArea))
	regions := make([][]int, len(seeds))
	for _, p := range floor {
		i := nearestSeed(vs.Distance, seeds, p)
		regions[i] = append(regions[i], m.Idx(p))
	}
	table := bs.Config.spawnTable(bs.Depth())
	for _, area := range regions {
		if len(area) > 0 {
			spawnRegion(rng, bs, table, area)
		}
	}
	return nil
}
