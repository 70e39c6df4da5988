package mapgen

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// InitialBuilder produces the initial map of a chain from nothing but the
// map dimensions and depth found in the build state.
type InitialBuilder interface {
	BuildInitial(rng *RNG, bs *BuildState) error
}

// MetaBuilder refines an existing build state.
type MetaBuilder interface {
	BuildMeta(rng *RNG, bs *BuildState) error
}

// Spawner instantiates entities from their tag. It is implemented outside
// mapgen by the raw-data system.
type Spawner interface {
	Spawn(idx int, tag string) error
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(idx int, tag string) error

// Spawn calls f(idx, tag).
func (f SpawnerFunc) Spawn(idx int, tag string) error {
	return f(idx, tag)
}

// ChainState represents the lifecycle of a builder chain.
type ChainState int

const (
	ChainEmpty ChainState = iota
	ChainHasStarter
	ChainBuilt
)

func (s ChainState) String() string {
	switch s {
	case ChainEmpty:
		return "empty"
	case ChainHasStarter:
		return "has starter"
	case ChainBuilt:
		return "built"
	default:
		return "unknown"
	}
}

// BuilderChain is a map generation pipeline: one starter followed by meta
// builders run in registration order.
type BuilderChain struct {
	starter  InitialBuilder
	builders []MetaBuilder
	bs       *BuildState
	state    ChainState
	err      error // first composition error, reported by Build
}

// NewBuilderChain returns an empty chain for a level of the given depth and
// size.
func NewBuilderChain(depth, width, height int, name string, cfg Config) *BuilderChain {
	return &BuilderChain{bs: newBuildState(depth, width, height, name, cfg)}
}

// StartWith sets the starting builder. Setting a second one is an error
// reported by Build and Err.
func (bc *BuilderChain) StartWith(b InitialBuilder) *BuilderChain {
	if bc.state != ChainEmpty {
		if bc.err == nil {
			bc.err = fmt.Errorf("%s: %w", stageName(b), ErrMultipleStarters)
		}
		return bc
	}
	bc.starter = b
	bc.state = ChainHasStarter
	return bc
}

// With appends a meta builder.
func (bc *BuilderChain) With(b MetaBuilder) *BuilderChain {
	bc.builders = append(bc.builders, b)
	return bc
}

// Err returns the first composition error, if any.
func (bc *BuilderChain) Err() error {
	return bc.err
}

// State returns the lifecycle state of the chain.
func (bc *BuilderChain) State() ChainState {
	return bc.state
}

// Name returns the level name.
func (bc *BuilderChain) Name() string {
	return bc.bs.Map.Name
}

// BuildState returns the chain's build state. The caller takes ownership of
// it once the chain is built.
func (bc *BuilderChain) BuildState() *BuildState {
	return bc.bs
}

// Len returns the number of stages, including the starter.
func (bc *BuilderChain) Len() int {
	n := len(bc.builders)
	if bc.starter != nil {
		n++
	}
	return n
}

// Build runs the starter and then every meta builder in order. A snapshot is
// recorded after each stage when visualization is enabled. The first failing
// stage aborts the build.
func (bc *BuilderChain) Build(rng *RNG) error {
	if bc.err != nil {
		return bc.err
	}
	switch bc.state {
	case ChainEmpty:
		return ErrNoStarter
	case ChainBuilt:
		return ErrAlreadyBuilt
	}
	bc.state = ChainBuilt
	bs := bc.bs
	if err := bc.starter.BuildInitial(rng, bs); err != nil {
		return fmt.Errorf("%s: %w", stageName(bc.starter), err)
	}
	bs.TakeSnapshot()
	for _, b := range bc.builders {
		if err := b.BuildMeta(rng, bs); err != nil {
			return fmt.Errorf("%s: %w", stageName(b), err)
		}
		bs.TakeSnapshot()
	}
	bs.locateExit()
	bc.validateSpawns()
	bs.Map.PopulateBlocked()
	return nil
}

// validateSpawns drops spawn requests that are out of range, on the starting
// position, on impassable terrain, or on an already used tile.
func (bc *BuilderChain) validateSpawns() {
	bs := bc.bs
	m := bs.Map
	used := mapset.New[int]()
	if bs.Start != InvalidPos {
		used.Put(m.Idx(bs.Start))
	}
	spawns := bs.Spawns[:0]
	dropped := 0
	for _, s := range bs.Spawns {
		if !m.InIdx(s.Idx) || used.Has(s.Idx) || !Passable(m.AtIdx(s.Idx)) {
			dropped++
			continue
		}
		used.Put(s.Idx)
		spawns = append(spawns, s)
	}
	bs.Spawns = spawns
	if dropped > 0 {
		log.Printf("mapgen: dropped %d invalid spawns in %q", dropped, m.Name)
	}
}

// SpawnEntities hands every spawn request to the spawner. It must be called
// after Build.
func (bc *BuilderChain) SpawnEntities(sp Spawner) error {
	if bc.state != ChainBuilt {
		return fmt.Errorf("spawning entities: %w", ErrNotBuilt)
	}
	var errs []error
	for _, s := range bc.bs.Spawns {
		if err := sp.Spawn(s.Idx, s.Tag); err != nil {
			errs = append(errs, fmt.Errorf("spawning %q at %d: %w", s.Tag, s.Idx, err))
		}
	}
	return errors.Join(errs...)
}

// stageName returns a short name for a builder, used in error messages.
func stageName(b any) string {
	if s, ok := b.(fmt.Stringer); ok {
		return s.String()
	}
	name := fmt.Sprintf("%T", b)
	name = strings.TrimPrefix(name, "*")
	return strings.TrimPrefix(name, "mapgen.")
}
