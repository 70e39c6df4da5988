package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"

	"codeberg.org/deepdelve/deepdelve/mapgen"
)

// Colors of the viewer palette. They use 16-palette color numbers compatible
// with terminals, and are mapped to RGB colors by the tile drivers.
const (
	ColorBackground          gruid.Color = gruid.ColorDefault
	ColorBackgroundSecondary gruid.Color = 1 + 0 // black
	ColorForeground          gruid.Color = gruid.ColorDefault
	ColorForegroundSecondary gruid.Color = 1 + 7  // white
	ColorForegroundEmph      gruid.Color = 1 + 15 // bright white
	ColorRed                 gruid.Color = 1 + 9  // bright red
	ColorGreen               gruid.Color = 1 + 2
	ColorYellow              gruid.Color = 1 + 3
	ColorBlue                gruid.Color = 1 + 4
	ColorMagenta             gruid.Color = 1 + 5
	ColorCyan                gruid.Color = 1 + 6
	ColorOrange              gruid.Color = 1 + 1  // red
	ColorViolet              gruid.Color = 1 + 12 // bright blue
)

// Styling attributes.
const (
	AttrInMap gruid.AttrMask = 1 << iota
	AttrReverse
	AttrBold
)

// tileColor returns the foreground color used for a terrain kind.
func tileColor(t rl.Cell) gruid.Color {
	switch t {
	case mapgen.Wall, mapgen.Stalactite, mapgen.Stalagmite:
		return ColorForegroundSecondary
	case mapgen.DownStairs, mapgen.UpStairs:
		return ColorMagenta
	case mapgen.Road, mapgen.Gravel:
		return ColorYellow
	case mapgen.Grass:
		return ColorGreen
	case mapgen.ShallowWater:
		return ColorCyan
	case mapgen.DeepWater:
		return ColorBlue
	case mapgen.WoodFloor, mapgen.Bridge:
		return ColorOrange
	default:
		return ColorForeground
	}
}

// tileStyle returns the map style of a terrain kind.
func tileStyle(t rl.Cell) gruid.Style {
	return gruid.Style{Fg: tileColor(t), Attrs: AttrInMap}
}

// rgb is a palette color in the selenized color scheme:
//
//	https://github.com/jan-warchol/selenized
type rgb struct {
	R, G, B uint8
}

// selenized holds the dark and light variants of every palette color.
var selenized = map[gruid.Color][2]rgb{
	ColorBackgroundSecondary: {{24, 73, 86}, {236, 227, 204}},
	ColorRed:                 {{250, 87, 80}, {210, 33, 45}},
	ColorGreen:               {{117, 185, 56}, {72, 145, 0}},
	ColorYellow:              {{219, 179, 45}, {173, 137, 0}},
	ColorBlue:                {{88, 163, 255}, {0, 114, 212}},
	ColorMagenta:             {{242, 117, 190}, {202, 72, 152}},
	ColorCyan:                {{65, 199, 185}, {0, 156, 143}},
	ColorOrange:              {{237, 134, 73}, {194, 93, 30}},
	ColorViolet:              {{175, 136, 235}, {135, 98, 198}},
	ColorForegroundEmph:      {{202, 216, 217}, {58, 77, 83}},
	ColorForegroundSecondary: {{114, 137, 143}, {144, 153, 149}},
}

// paletteRGB returns the RGB value of a palette color. The default color
// depends on whether it is used as foreground or background.
func paletteRGB(c gruid.Color, fg, dark bool) rgb {
	variant := 0
	if !dark {
		variant = 1
	}
	if cl, ok := selenized[c]; ok {
		return cl[variant]
	}
	if fg {
		return [2]rgb{{173, 188, 188}, {83, 103, 109}}[variant]
	}
	return [2]rgb{{16, 60, 72}, {251, 243, 219}}[variant]
}
