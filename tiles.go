//go:build js || sdl

package main

import (
	"image"
	"image/color"
	"image/draw"

	"codeberg.org/anaseto/gruid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const Tiles = true

// asciiRunes replaces glyphs missing from the bitmap font.
var asciiRunes = map[rune]rune{
	'≈': '~',
	'╨': '^',
	'╥': '^',
	'←': '<',
	'→': '>',
}

// tileManager draws cells with a bitmap font.
type tileManager struct {
	dark bool
}

func (tm *tileManager) TileSize() gruid.Point {
	return gruid.Point{8, 16}
}

// ColorToRGBA returns the image color of a palette color.
func (tm *tileManager) ColorToRGBA(c gruid.Color, fg bool) color.Color {
	cl := paletteRGB(c, fg, tm.dark)
	return color.RGBA{cl.R, cl.G, cl.B, 255}
}

func (tm *tileManager) GetImage(gc gruid.Cell) image.Image {
	sz := tm.TileSize()
	img := image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y))
	fg := tm.ColorToRGBA(gc.Style.Fg, true)
	bg := tm.ColorToRGBA(gc.Style.Bg, false)
	if gc.Style.Attrs&AttrReverse != 0 {
		fg, bg = bg, fg
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	r := gc.Rune
	if a, ok := asciiRunes[r]; ok {
		r = a
	}
	if r == ' ' || r == 0 {
		return img
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(0, (sz.Y+face.Ascent)/2),
	}
	d.DrawString(string(r))
	if gc.Style.Attrs&AttrBold != 0 {
		d.Dot = fixed.P(1, (sz.Y+face.Ascent)/2)
		d.DrawString(string(r))
	}
	return img
}
