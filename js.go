//go:build js

package main

import (
	"context"
	"log"
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
	jsd "codeberg.org/anaseto/gruid-js"
)

var driver gruid.Driver

func initDriver(cfg Config) {
	driver = jsd.NewDriver(jsd.Config{
		TileManager: &tileManager{dark: cfg.DarkColors},
		AppCanvasId: "appcanvas",
		AppDivId:    "appdiv",
	})
}

func main() {
	log.SetPrefix("deepdelve ")
	cfg := DefaultConfig()
	cfg.Visualize = true
	cfg.Depth = 1 + rand.IntN(10)
	initLocale("", cfg.Lang)
	initDriver(cfg)
	md, err := newModel(cfg)
	if err != nil {
		log.Fatal(err)
	}
	app := gruid.NewApp(gruid.AppConfig{
		Driver: driver,
		Model:  md,
	})
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
}
