package mapgen

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Config gathers the options threaded through a builder chain.
type Config struct {
	// Visualize enables recording a map snapshot after every stage.
	Visualize bool
	// SpawnTable returns the spawn table for a depth. If nil,
	// DefaultSpawnCatalog is used.
	SpawnTable func(depth int) *RandomTable
}

func (cfg Config) spawnTable(depth int) *RandomTable {
	if cfg.SpawnTable != nil {
		return cfg.SpawnTable(depth)
	}
	return DefaultSpawnCatalog.TableForDepth(depth)
}

// Spawn is a request for the external spawner to create the entity
// identified by Tag at tile index Idx.
type Spawn struct {
	Idx int
	Tag string
}

// BuildState is the intermediate representation accumulated by a builder
// chain.
type BuildState struct {
	Map       *Map
	Rooms     []Rect  // nil until a room-based builder runs
	Corridors [][]int // nil until a corridor builder runs
	Start     gruid.Point
	Exit      gruid.Point
	Farthest  gruid.Point // farthest reachable tile from start, after culling
	Spawns    []Spawn
	History   []*Map
	Config    Config
	PR        *paths.PathRange
}

func newBuildState(depth, width, height int, name string, cfg Config) *BuildState {
	return &BuildState{
		Map:      NewMap(depth, width, height, name),
		Start:    InvalidPos,
		Exit:     InvalidPos,
		Farthest: InvalidPos,
		Config:   cfg,
		PR:       paths.NewPathRange(gruid.NewRange(0, 0, width, height)),
	}
}

// Depth returns the depth of the level being built.
func (bs *BuildState) Depth() int {
	return bs.Map.Depth
}

// TakeSnapshot records a deep copy of the map, with every tile revealed, when
// visualization is enabled.
func (bs *BuildState) TakeSnapshot() {
	if !bs.Config.Visualize {
		return
	}
	snap := bs.Map.Clone()
	snap.RevealAll()
	bs.History = append(bs.History, snap)
}

// RequireRooms returns ErrMissingRooms if no room-based builder ran before
// the named stage.
func (bs *BuildState) RequireRooms(stage string) error {
	if bs.Rooms == nil {
		return fmt.Errorf("%s: %w", stage, ErrMissingRooms)
	}
	return nil
}

// RequireStart returns ErrMissingStart if no starting position was chosen
// before the named stage.
func (bs *BuildState) RequireStart(stage string) error {
	if bs.Start == InvalidPos {
		return fmt.Errorf("%s: %w", stage, ErrMissingStart)
	}
	return nil
}

// AddSpawn appends a spawn request.
func (bs *BuildState) AddSpawn(idx int, tag string) {
	bs.Spawns = append(bs.Spawns, Spawn{Idx: idx, Tag: tag})
}

// RemoveSpawnsIn drops the spawn requests inside the given rectangle.
func (bs *BuildState) RemoveSpawnsIn(r Rect) {
	spawns := bs.Spawns[:0]
	for _, s := range bs.Spawns {
		if !r.Contains(bs.Map.Point(s.Idx)) {
			spawns = append(spawns, s)
		}
	}
	bs.Spawns = spawns
}

// SetStart changes the starting position. Previous exits on the new start are
// discarded.
func (bs *BuildState) SetStart(p gruid.Point) {
	bs.Start = p
	if bs.Exit == p {
		bs.Exit = InvalidPos
	}
}

// SetExit places down stairs at p and records it as the exit.
func (bs *BuildState) SetExit(p gruid.Point) {
	if bs.Exit != InvalidPos && bs.Map.At(bs.Exit) == DownStairs {
		bs.Map.Set(bs.Exit, Floor)
	}
	bs.Map.Set(p, DownStairs)
	bs.Exit = p
}

// locateExit finds down stairs placed directly on the terrain by a starter.
func (bs *BuildState) locateExit() {
	if bs.Exit != InvalidPos && bs.Map.At(bs.Exit) == DownStairs {
		return
	}
	bs.Exit = InvalidPos
	for p, t := range bs.Map.Terrain.All() {
		if t == DownStairs {
			bs.Exit = p
			return
		}
	}
}
