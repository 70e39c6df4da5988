// This file contains builder chain selection by depth.

package mapgen

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"codeberg.org/anaseto/gruid"
)

// Level names.
const (
	NameRandom        = "New Map"
	NameTown          = "The Town of Bracketon"
	NameForest        = "Into the Woods"
	NameLimestone     = "Limestone Caverns"
	NameDeepLimestone = "Deep Limestone Caverns"
	NameMushroom      = "Into The Mushroom Grove"
	NamePrefab        = "Hand-made Level"
)

// MaxLevelAttempts bounds the number of chains tried by Generate.
const MaxLevelAttempts = 10

// Level is the finished output of a builder chain.
type Level struct {
	Map     *Map
	Name    string
	Start   gruid.Point
	Exit    gruid.Point
	Spawns  []Spawn
	History []*Map
}

// Level returns the finished level of a built chain.
func (bc *BuilderChain) Level() *Level {
	bs := bc.bs
	return &Level{
		Map:     bs.Map,
		Name:    bs.Map.Name,
		Start:   bs.Start,
		Exit:    bs.Exit,
		Spawns:  bs.Spawns,
		History: bs.History,
	}
}

// Generate builds the level for the given depth. Chains failing with a
// recoverable generation error are replaced by a freshly selected chain, up
// to MaxLevelAttempts times. Composition errors are returned at once.
func Generate(depth, width, height int, rng *RNG, cfg Config) (*Level, error) {
	var err error
	for try := range MaxLevelAttempts {
		chain := LevelBuilder(depth, width, height, rng, cfg)
		err = chain.Build(rng)
		if err == nil {
			lvl := chain.Level()
			if lvl.Exit != InvalidPos && lvl.Exit != lvl.Start {
				return lvl, nil
			}
			err = fmt.Errorf("%s: %w", lvl.Name, ErrNoExit)
		}
		if !recoverable(err) {
			return nil, err
		}
		log.Printf("mapgen: depth %d attempt %d: %v", depth, try+1, err)
	}
	return nil, err
}

// PrefabLevelChain builds a map from a whole level template. Templates
// without a start tile start at the center, and the exit is placed far from
// the start when the template has none.
func PrefabLevelChain(depth, width, height int, level PrefabLevel, cfg Config) *BuilderChain {
	chain := NewBuilderChain(depth, width, height, NamePrefab, cfg).
		StartWith(NewPrefabConstant(level))
	if !strings.ContainsRune(level.Template, '@') {
		chain.With(AreaStartingPosition{XCenter, YCenter})
	}
	return chain.
		With(CullUnreachable{}).
		With(DistantExit{IfMissing: true})
}

// GeneratePrefab builds a level from a whole level template.
func GeneratePrefab(depth, width, height int, level PrefabLevel, rng *RNG, cfg Config) (*Level, error) {
	chain := PrefabLevelChain(depth, width, height, level, cfg)
	if err := chain.Build(rng); err != nil {
		return nil, err
	}
	return chain.Level(), nil
}

func recoverable(err error) bool {
	return errors.Is(err, ErrExhausted) || errors.Is(err, ErrNoExit) || errors.Is(err, ErrNoFloor)
}

// LevelBuilder returns the chain for a depth: fixed chains for the first
// levels, and random ones below.
func LevelBuilder(depth, width, height int, rng *RNG, cfg Config) *BuilderChain {
	switch depth {
	case 1:
		return TownChain(depth, width, height, cfg)
	case 2:
		return ForestChain(depth, width, height, cfg)
	case 3:
		return LimestoneCavernChain(depth, width, height, cfg)
	case 4:
		return DeepLimestoneCavernChain(depth, width, height, cfg)
	case 5:
		return MushroomEntranceChain(depth, width, height, cfg)
	case 6:
		return MushroomChain(depth, width, height, cfg)
	case 7:
		return MushroomExitChain(depth, width, height, cfg)
	default:
		return RandomBuilder(depth, width, height, rng, cfg)
	}
}

// TownChain builds the surface town.
func TownChain(depth, width, height int, cfg Config) *BuilderChain {
	return NewBuilderChain(depth, width, height, NameTown, cfg).
		StartWith(&TownBuilder{}).
		With(CullUnreachable{}).
		With(DistantExit{IfMissing: true})
}

// ForestChain builds a forest crossed by a road and a stream.
func ForestChain(depth, width, height int, cfg Config) *BuilderChain {
	return NewBuilderChain(depth, width, height, NameForest, cfg).
		StartWith(NewCellularAutomataBuilder()).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(AreaStartingPosition{XLeft, YCenter}).
		With(VoronoiSpawning{}).
		With(YellowBrickRoad{}).
		With(CullUnreachable{}).
		With(DistantExit{IfMissing: true}).
		With(NoiseDecorator{From: Floor, To: Grass, Scale: 0.1, Threshold: -0.1})
}

// LimestoneCavernChain builds winding limestone caves.
func LimestoneCavernChain(depth, width, height int, cfg Config) *BuilderChain {
	return NewBuilderChain(depth, width, height, NameLimestone, cfg).
		StartWith(&DrunkardsWalkBuilder{Settings: WindingPassages}).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(AreaStartingPosition{XLeft, YCenter}).
		With(VoronoiSpawning{}).
		With(DistantExit{}).
		With(CaveDecorator{})
}

// DeepLimestoneCavernChain builds random walk caves around an orc camp.
func DeepLimestoneCavernChain(depth, width, height int, cfg Config) *BuilderChain {
	return NewBuilderChain(depth, width, height, NameDeepLimestone, cfg).
		StartWith(&CaveBuilder{FloorPercent: 0.25, Walks: 8}).
		With(&TreeCaveBuilder{FloorPercent: 0.4}).
		With(NewPrefabSectional(OrcCamp)).
		With(AreaStartingPosition{XLeft, YCenter}).
		With(CullUnreachable{}).
		With(AreaStartingPosition{XCenter, YTop}).
		With(VoronoiSpawning{}).
		With(DistantExit{}).
		With(NoiseDecorator{From: Floor, To: Gravel, Scale: 0.15, Threshold: 0.2}).
		With(CaveDecorator{})
}

// mushroomChain returns the common part of the mushroom grove levels.
func mushroomChain(depth, width, height int, cfg Config) *BuilderChain {
	return NewBuilderChain(depth, width, height, NameMushroom, cfg).
		StartWith(NewCellularAutomataBuilder()).
		With(NewWaveformCollapseBuilder())
}

// MushroomEntranceChain builds the mushroom grove entrance, with an
// underground fort.
func MushroomEntranceChain(depth, width, height int, cfg Config) *BuilderChain {
	return mushroomChain(depth, width, height, cfg).
		With(NewPrefabSectional(UndergroundFort)).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(AreaStartingPosition{XRight, YCenter}).
		With(AreaEndingPosition{XLeft, YCenter}).
		With(VoronoiSpawning{})
}

// MushroomChain builds the mushroom grove.
func MushroomChain(depth, width, height int, cfg Config) *BuilderChain {
	return mushroomChain(depth, width, height, cfg).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(AreaStartingPosition{XRight, YCenter}).
		With(AreaEndingPosition{XLeft, YCenter}).
		With(VoronoiSpawning{})
}

// MushroomExitChain builds the mushroom grove exit, guarded by dark elves.
func MushroomExitChain(depth, width, height int, cfg Config) *BuilderChain {
	return mushroomChain(depth, width, height, cfg).
		With(AreaStartingPosition{XCenter, YCenter}).
		With(CullUnreachable{}).
		With(VoronoiSpawning{}).
		With(NewPrefabSectional(DrowEntry)).
		With(AreaStartingPosition{XRight, YCenter}).
		With(CullUnreachable{}).
		With(DistantExit{IfMissing: true})
}

// RandomBuilder assembles a random chain: room-based or shape-based with
// even odds, sometimes followed by wave function collapse or an underground
// fort, and always by room vaults.
func RandomBuilder(depth, width, height int, rng *RNG, cfg Config) *BuilderChain {
	chain := NewBuilderChain(depth, width, height, NameRandom, cfg)
	rooms := rng.RollDice(1, 2) == 1
	if rooms {
		randomRoomBuilder(rng, chain)
	} else {
		randomShapeBuilder(rng, chain)
	}
	if rng.RollDice(1, 3) == 1 {
		chain.With(NewWaveformCollapseBuilder())
		finishShape(rng, chain)
	}
	if rng.RollDice(1, 20) == 1 {
		chain.With(NewPrefabSectional(UndergroundFort))
		finishShape(rng, chain)
	}
	chain.With(NewPrefabVaults())
	chain.With(DistantExit{IfMissing: true})
	if rooms {
		chain.With(DoorPlacement{})
	}
	return chain
}

// randomAreaStart returns a starting position at one of the 9 anchors.
func randomAreaStart(rng *RNG) AreaStartingPosition {
	return AreaStartingPosition{X: XAnchor(rng.IntN(3)), Y: YAnchor(rng.IntN(3))}
}

func randomRoomBuilder(rng *RNG, chain *BuilderChain) {
	interior := false
	switch rng.RollDice(1, 3) {
	case 1:
		chain.StartWith(NewSimpleMapBuilder())
	case 2:
		chain.StartWith(NewBspDungeonBuilder())
	default:
		chain.StartWith(NewBspInteriorBuilder())
		interior = true
	}
	if !interior {
		chain.With(RoomDrawer{CircleChance: 4})
		chain.With(RoomSorter{Sort: RoomSort(rng.RollDice(1, 5) - 1)})
		switch rng.RollDice(1, 2) {
		case 1:
			// Consecutive rooms.
			if rng.RollDice(1, 2) == 1 {
				chain.With(DoglegCorridors{})
			} else {
				chain.With(BspCorridors{})
			}
		default:
			// Nearest rooms.
			if rng.RollDice(1, 2) == 1 {
				chain.With(NearestCorridors{})
			} else {
				chain.With(StraightLineCorridors{})
			}
		}
		if rng.RollDice(1, 2) == 1 {
			chain.With(CorridorSpawner{})
		}
		switch rng.RollDice(1, 6) {
		case 1:
			chain.With(RoomExploder{})
		case 2:
			chain.With(RoomCornerRounder{})
		}
	}
	if rng.RollDice(1, 2) == 1 {
		chain.With(RoomBasedStartingPosition{})
	} else {
		chain.With(randomAreaStart(rng))
	}
	chain.With(CullUnreachable{})
	if rng.RollDice(1, 2) == 1 {
		chain.With(RoomBasedStairs{})
	} else {
		chain.With(DistantExit{})
	}
	if rng.RollDice(1, 2) == 1 {
		chain.With(RoomBasedSpawner{})
	} else {
		chain.With(VoronoiSpawning{})
	}
}

// shapeBuilders lists the shape-based starters picked by RandomBuilder.
var shapeBuilders = []func() InitialBuilder{
	func() InitialBuilder { return NewCellularAutomataBuilder() },
	func() InitialBuilder { return &DrunkardsWalkBuilder{Settings: OpenArea} },
	func() InitialBuilder { return &DrunkardsWalkBuilder{Settings: OpenHalls} },
	func() InitialBuilder { return &DrunkardsWalkBuilder{Settings: WindingPassages} },
	func() InitialBuilder { return &DrunkardsWalkBuilder{Settings: FatPassages} },
	func() InitialBuilder { return &DrunkardsWalkBuilder{Settings: FearfulSymmetry} },
	func() InitialBuilder { return MazeBuilder{} },
	func() InitialBuilder { return &DLABuilder{Settings: WalkInwards} },
	func() InitialBuilder { return &DLABuilder{Settings: WalkOutwards} },
	func() InitialBuilder { return &DLABuilder{Settings: CentralAttractor} },
	func() InitialBuilder { return &DLABuilder{Settings: Insectoid} },
	func() InitialBuilder { return NewVoronoiCellBuilder(Pythagoras) },
	func() InitialBuilder { return NewVoronoiCellBuilder(Manhattan) },
	func() InitialBuilder { return NewCaveBuilder() },
}

func randomShapeBuilder(rng *RNG, chain *BuilderChain) {
	chain.StartWith(shapeBuilders[rng.IntN(len(shapeBuilders))]())
	finishShape(rng, chain)
}

// finishShape chooses positions and spawns on a map without rooms.
func finishShape(rng *RNG, chain *BuilderChain) {
	chain.With(AreaStartingPosition{XCenter, YCenter})
	chain.With(CullUnreachable{})
	chain.With(randomAreaStart(rng))
	chain.With(VoronoiSpawning{})
	chain.With(DistantExit{})
}
