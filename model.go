// This file defines the viewer model, which replays the recorded generation
// history of a level.

package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"

	"codeberg.org/deepdelve/deepdelve/mapgen"
)

// Number of lines below the map.
const statusLines = 2

// model is the gruid.Model of the history viewer.
type model struct {
	gd     gruid.Grid
	cfg    Config
	mcfg   mapgen.Config
	seed   uint64
	lvl    *mapgen.Level
	frames []*mapgen.Map
	frame  int
	paused bool
	tick   int // identifies the current frame timer
	status *ui.Label
	help   *ui.Label
	err    error
}

// msgTick is sent when the frame timer fires.
type msgTick int

// generateLevel builds a level with the given seed, choosing one if zero.
func generateLevel(cfg Config, mcfg mapgen.Config, seed uint64) (*mapgen.Level, uint64, error) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	var lvl *mapgen.Level
	var err error
	if cfg.LevelFile != "" {
		var pl mapgen.PrefabLevel
		pl, err = mapgen.LoadPrefabLevel(cfg.LevelFile)
		if err != nil {
			return nil, seed, err
		}
		lvl, err = mapgen.GeneratePrefab(cfg.Depth, cfg.Width, cfg.Height, pl, mapgen.NewRNG(seed), mcfg)
	} else {
		lvl, err = mapgen.Generate(cfg.Depth, cfg.Width, cfg.Height, mapgen.NewRNG(seed), mcfg)
	}
	if err != nil {
		return nil, seed, fmt.Errorf("generating depth %d (seed %d): %w", cfg.Depth, seed, err)
	}
	return lvl, seed, nil
}

func newModel(cfg Config) (*model, error) {
	mcfg, err := cfg.MapgenConfig()
	if err != nil {
		return nil, err
	}
	md := &model{
		gd:     gruid.NewGrid(cfg.Width, cfg.Height+statusLines),
		cfg:    cfg,
		mcfg:   mcfg,
		status: ui.NewLabel(ui.StyledText{}.WithStyle(gruid.Style{Fg: ColorForegroundEmph})),
		help:   ui.NewLabel(ui.StyledText{}.WithStyle(gruid.Style{Fg: ColorForegroundSecondary})),
	}
	md.status.AdjustWidth = false
	md.help.AdjustWidth = false
	if err := md.load(cfg.Seed); err != nil {
		return nil, err
	}
	return md, nil
}

// load generates a new level and resets the replay.
func (md *model) load(seed uint64) error {
	lvl, seed, err := generateLevel(md.cfg, md.mcfg, seed)
	md.seed = seed
	if err != nil {
		return err
	}
	md.lvl = lvl
	md.frames = lvl.History
	if len(md.frames) == 0 {
		md.frames = []*mapgen.Map{lvl.Map}
	}
	md.frame = 0
	md.paused = false
	return nil
}

// nextFrame returns a command firing after the frame delay.
func (md *model) nextFrame() gruid.Effect {
	md.tick++
	idx := md.tick
	d := time.Duration(md.cfg.FrameDelay) * time.Millisecond
	return gruid.Cmd(func() gruid.Msg {
		t := time.NewTimer(d)
		<-t.C
		return msgTick(idx)
	})
}

func (md *model) last() int {
	return len(md.frames) - 1
}

func (md *model) step(delta int) {
	md.paused = true
	md.frame = max(0, min(md.frame+delta, md.last()))
}

func (md *model) Update(msg gruid.Msg) gruid.Effect {
	switch msg := msg.(type) {
	case gruid.MsgInit:
		return md.nextFrame()
	case gruid.MsgQuit:
		return gruid.End()
	case msgTick:
		if int(msg) != md.tick || md.paused || md.frame >= md.last() {
			return nil
		}
		md.frame++
		return md.nextFrame()
	case gruid.MsgKeyDown:
		switch msg.Key {
		case gruid.KeyEscape, "q", "Q":
			return gruid.End()
		case gruid.KeySpace:
			md.paused = !md.paused
			if !md.paused {
				return md.nextFrame()
			}
		case gruid.KeyArrowRight, "l":
			md.step(1)
		case gruid.KeyArrowLeft, "h":
			md.step(-1)
		case gruid.KeyEnter, "G":
			md.step(md.last())
		case "r", "R":
			md.err = md.load(0)
			if md.err != nil {
				log.Print(md.err)
				return nil
			}
			return md.nextFrame()
		}
	}
	return nil
}

func (md *model) Draw() gruid.Grid {
	md.gd.Fill(gruid.Cell{Rune: ' '})
	m := md.frames[md.frame]
	for p, t := range m.Terrain.All() {
		md.gd.Set(p, gruid.Cell{Rune: mapgen.MapRune(t), Style: tileStyle(t)})
	}
	if md.frame == md.last() {
		for _, s := range md.lvl.Spawns {
			md.gd.Set(m.Point(s.Idx), gruid.Cell{Rune: entityRune(s.Tag), Style: gruid.Style{Fg: ColorRed, Attrs: AttrInMap}})
		}
		md.gd.Set(md.lvl.Start, gruid.Cell{Rune: '@', Style: gruid.Style{Fg: ColorForegroundEmph, Attrs: AttrInMap | AttrBold}})
	}
	text := fmt.Sprintf("%s  %s  seed %d", tr(md.lvl.Name), tr("Step %d/%d", md.frame+1, len(md.frames)), md.seed)
	if md.paused {
		text += "  " + tr("paused")
	}
	st := gruid.Style{Fg: ColorForegroundEmph}
	if md.err != nil {
		text = md.err.Error()
		st.Fg = ColorRed
	}
	md.status.Content = ui.Text(text).WithStyle(st)
	md.status.Draw(md.gd.Slice(md.gd.Range().Lines(md.cfg.Height, md.cfg.Height+1)))
	md.help.Content = ui.Text(tr("space: pause  ←/→: step  r: new level  q: quit")).
		WithStyle(gruid.Style{Fg: ColorForegroundSecondary})
	md.help.Draw(md.gd.Slice(md.gd.Range().Lines(md.cfg.Height+1, md.cfg.Height+2)))
	return md.gd
}
