//go:build !js

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"

	"codeberg.org/anaseto/gruid"
	"golang.org/x/term"
)

// Version is the command version.
const Version = "v0.3.0"

func main() {
	optConfig := flag.String("c", "", "path to config file (default: config.yaml in data directory)")
	optDepth := flag.Int("d", DefaultDepth, "dungeon depth")
	optSeed := flag.Uint64("s", 0, "random seed (0 for random)")
	optWidth := flag.Int("W", DefaultWidth, "map width")
	optHeight := flag.Int("H", DefaultHeight, "map height")
	optDump := flag.Bool("dump", false, "print the level as text and exit")
	optWrite := flag.Bool("o", false, "write the level dump to the data directory")
	optVisualize := flag.Bool("v", false, "replay the generation history")
	optLang := flag.String("lang", DefaultLang, "language of messages")
	optColors := flag.String("colors", "16", "color mode: 16, 256 or truecolor")
	optLevel := flag.String("level", "", "build the level from a hand-made template file")
	optVersion := flag.Bool("version", false, "print build info")
	optFullscreen := new(bool)
	if Tiles {
		optFullscreen = flag.Bool("F", false, "fullscreen")
	}
	flag.Parse()

	if *optVersion {
		fmt.Printf("deepdelve\t%v\n", Version)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Print(bi)
		}
		os.Exit(0)
	}
	log.SetPrefix("deepdelve ")
	path := *optConfig
	if path == "" {
		path = ConfigPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Depth = *optDepth
		case "s":
			cfg.Seed = *optSeed
		case "W":
			cfg.Width = *optWidth
		case "H":
			cfg.Height = *optHeight
		case "v":
			cfg.Visualize = *optVisualize
		case "lang":
			cfg.Lang = *optLang
		case "colors":
			cfg.ColorMode = *optColors
		case "level":
			cfg.LevelFile = *optLevel
		case "F":
			cfg.Fullscreen = *optFullscreen
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	initLocale(cfg.LocaleDir, cfg.Lang)
	if *optDump || *optWrite {
		if err := RunDump(cfg, *optDump, *optWrite); err != nil {
			log.Fatal(err)
		}
		return
	}
	RunViewer(cfg)
}

// RunDump generates a level and prints it and/or writes it to the data
// directory.
func RunDump(cfg Config, show, write bool) error {
	mcfg, err := cfg.MapgenConfig()
	if err != nil {
		return err
	}
	lvl, seed, err := generateLevel(cfg, mcfg, cfg.Seed)
	if err != nil {
		return err
	}
	ld := &levelDump{lvl: lvl, depth: cfg.Depth, seed: seed}
	if show {
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil && w < cfg.Width {
				log.Printf("terminal width %d is smaller than map width %d", w, cfg.Width)
			}
			fmt.Print(ld.Colored())
		} else {
			fmt.Print(ld.String())
		}
	}
	if write {
		msg, err := WriteDump(ld)
		if err != nil {
			return err
		}
		log.Print(msg)
	}
	return nil
}

// RunViewer starts the history viewer.
func RunViewer(cfg Config) {
	initDriver(cfg)
	md, err := newModel(cfg)
	if err != nil {
		log.Fatal(err)
	}
	app := gruid.NewApp(gruid.AppConfig{
		Driver: driver,
		Model:  md,
	})
	if f := setLogOutput(); f != nil {
		defer f.Close()
	}
	err = app.Start(context.Background())
	log.SetOutput(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
}

// setLogOutput sets standard log output to the logs file in the data
// directory, so that logs do not mess up the terminal.
func setLogOutput() *os.File {
	dataDir, err := DataDir()
	if err != nil {
		log.Print(err)
		return nil
	}
	f, err := os.Create(filepath.Join(dataDir, "logs.txt"))
	if err != nil {
		log.Print(err)
		return nil
	}
	if Tiles {
		log.SetOutput(io.MultiWriter(f, os.Stderr))
	} else {
		log.SetOutput(f)
	}
	return f
}
