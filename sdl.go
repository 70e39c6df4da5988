//go:build sdl

package main

import (
	"codeberg.org/anaseto/gruid"
	sdl "codeberg.org/anaseto/gruid-sdl"
)

var driver gruid.Driver

func initDriver(cfg Config) {
	dr := sdl.NewDriver(sdl.Config{
		TileManager: &tileManager{dark: cfg.DarkColors},
		Fullscreen:  cfg.Fullscreen,
		WindowTitle: "deepdelve",
	})
	driver = dr
}
