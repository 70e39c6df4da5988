// This file contains tile-related code.

package mapgen

import "codeberg.org/anaseto/gruid/rl"

// These constants represent the different kind of map tiles. Wall is the zero
// value, so that out of range positions of a rl.Grid read as walls.
const (
	Wall         rl.Cell = iota // obstructing and blocks vision
	Floor                       // passable ground
	DownStairs                  // passable, leads to next level
	UpStairs                    // passable, leads to previous level
	Road                        // passable paved ground
	Grass                       // passable outdoor ground
	ShallowWater                // passable water
	DeepWater                   // impassable water, does not block vision
	WoodFloor                   // passable building floor
	Bridge                      // passable, over water
	Gravel                      // passable rough ground
	Stalactite                  // obstructing cave formation
	Stalagmite                  // obstructing cave formation
)

// TerrainName returns a short name for the given tile kind.
func TerrainName(t rl.Cell) string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case DownStairs:
		return "down stairs"
	case UpStairs:
		return "up stairs"
	case Road:
		return "road"
	case Grass:
		return "grass"
	case ShallowWater:
		return "shallow water"
	case DeepWater:
		return "deep water"
	case WoodFloor:
		return "wooden floor"
	case Bridge:
		return "bridge"
	case Gravel:
		return "gravel"
	case Stalactite:
		return "stalactite"
	case Stalagmite:
		return "stalagmite"
	default:
		return "unknown terrain"
	}
}

// MapRune returns the ASCII glyph used to dump the given tile kind.
func MapRune(t rl.Cell) rune {
	switch t {
	case Wall:
		return '#'
	case Floor:
		return '.'
	case DownStairs:
		return '>'
	case UpStairs:
		return '<'
	case Road:
		return '='
	case Grass:
		return '"'
	case ShallowWater:
		return '~'
	case DeepWater:
		return '≈'
	case WoodFloor:
		return '_'
	case Bridge:
		return '+'
	case Gravel:
		return ';'
	case Stalactite:
		return '╨'
	case Stalagmite:
		return '╥'
	default:
		return '?'
	}
}

// Passable reports whether a tile kind can be walked on.
func Passable(t rl.Cell) bool {
	switch t {
	case Wall, DeepWater, Stalactite, Stalagmite:
		return false
	default:
		return true
	}
}

// Opaque reports whether a tile kind blocks vision.
func Opaque(t rl.Cell) bool {
	switch t {
	case Wall, Stalactite, Stalagmite:
		return true
	default:
		return false
	}
}
