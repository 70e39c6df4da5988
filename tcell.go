//go:build !sdl && !js

package main

import (
	"codeberg.org/anaseto/gruid"
	tcell "codeberg.org/anaseto/gruid-tcell"
	tc "github.com/gdamore/tcell/v2"
)

const Tiles = false

var driver gruid.Driver

func initDriver(cfg Config) {
	st := styler{mode: cfg.ColorMode, dark: cfg.DarkColors}
	driver = tcell.NewDriver(tcell.Config{StyleManager: st})
}

// styler implements the tcell.StyleManager interface.
type styler struct {
	mode string
	dark bool
}

func (sty styler) GetStyle(cst gruid.Style) tc.Style {
	st := tc.StyleDefault
	switch sty.mode {
	case "256":
		st = st.Foreground(color256(cst.Fg, true, sty.dark)).Background(color256(cst.Bg, false, sty.dark))
	case "truecolor":
		fg := paletteRGB(cst.Fg, true, sty.dark)
		bg := paletteRGB(cst.Bg, false, sty.dark)
		st = st.Foreground(tc.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
		st = st.Background(tc.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
	default:
		if cst.Bg == gruid.ColorDefault {
			st = st.Background(tc.ColorDefault)
		} else {
			st = st.Background(tc.ColorValid + tc.Color(cst.Bg) - 1)
		}
		if cst.Fg == gruid.ColorDefault {
			st = st.Foreground(tc.ColorDefault)
		} else {
			st = st.Foreground(tc.ColorValid + tc.Color(cst.Fg) - 1)
		}
	}
	if cst.Attrs&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if cst.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	return st
}

// solarized approximations in the xterm 256-color palette:
// http://ethanschoonover.com/solarized
var solarized256 = map[gruid.Color]int{
	ColorYellow:  136,
	ColorOrange:  166,
	ColorRed:     160,
	ColorMagenta: 125,
	ColorViolet:  61,
	ColorBlue:    33,
	ColorCyan:    37,
	ColorGreen:   64,
}

func color256(c gruid.Color, fg, dark bool) tc.Color {
	if n, ok := solarized256[c]; ok {
		return tc.PaletteColor(n)
	}
	switch c {
	case ColorBackgroundSecondary:
		if dark {
			return tc.PaletteColor(235)
		}
		return tc.PaletteColor(254)
	case ColorForegroundEmph:
		if dark {
			return tc.PaletteColor(245)
		}
		return tc.PaletteColor(240)
	case ColorForegroundSecondary:
		if dark {
			return tc.PaletteColor(240)
		}
		return tc.PaletteColor(245)
	}
	switch {
	case fg && dark:
		return tc.PaletteColor(244)
	case fg:
		return tc.PaletteColor(241)
	case dark:
		return tc.PaletteColor(234)
	default:
		return tc.PaletteColor(230)
	}
}
