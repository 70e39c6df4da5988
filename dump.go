package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"codeberg.org/anaseto/gruid"
	"github.com/gookit/color"

	"codeberg.org/deepdelve/deepdelve/mapgen"
)

// levelDump is a text rendering of a generated level.
type levelDump struct {
	lvl   *mapgen.Level
	depth int
	seed  uint64
}

// entityRune returns the glyph of a spawned entity.
func entityRune(tag string) rune {
	switch tag {
	case "Door":
		return '\''
	case "":
		return '?'
	}
	return []rune(tag)[0]
}

// runes returns the glyphs of the level, with the starting position and the
// spawned entities drawn over terrain.
func (ld *levelDump) runes() [][]rune {
	m := ld.lvl.Map
	lines := make([][]rune, m.Height)
	for y := range m.Height {
		lines[y] = make([]rune, m.Width)
		for x := range m.Width {
			lines[y][x] = mapgen.MapRune(m.At(gruid.Point{x, y}))
		}
	}
	for _, s := range ld.lvl.Spawns {
		p := m.Point(s.Idx)
		lines[p.Y][p.X] = entityRune(s.Tag)
	}
	if m.InMap(ld.lvl.Start) {
		lines[ld.lvl.Start.Y][ld.lvl.Start.X] = '@'
	}
	return lines
}

func (ld *levelDump) header() string {
	lvl := ld.lvl
	return fmt.Sprintf("%s\n%s\n", tr(lvl.Name),
		tr("Depth %d  Seed %d  Start %v  Exit %v", ld.depth, ld.seed, lvl.Start, lvl.Exit))
}

// spawnSummary returns the number of spawns per tag, in tag order.
func (ld *levelDump) spawnSummary() string {
	count := map[string]int{}
	for _, s := range ld.lvl.Spawns {
		count[s.Tag]++
	}
	var sb strings.Builder
	sb.WriteString(tr("Spawns:"))
	sb.WriteRune('\n')
	for _, tag := range slices.Sorted(maps.Keys(count)) {
		fmt.Fprintf(&sb, "  %-16s %d\n", tag, count[tag])
	}
	return sb.String()
}

// String returns the plain text dump.
func (ld *levelDump) String() string {
	var sb strings.Builder
	sb.WriteString(ld.header())
	for _, l := range ld.runes() {
		sb.WriteString(string(l))
		sb.WriteRune('\n')
	}
	sb.WriteString(ld.spawnSummary())
	return sb.String()
}

// dumpStyles maps palette colors to terminal styles.
var dumpStyles = map[gruid.Color]color.Style{
	ColorForeground:          {color.FgDefault},
	ColorForegroundSecondary: {color.FgGray},
	ColorMagenta:             {color.FgMagenta, color.OpBold},
	ColorYellow:              {color.FgYellow},
	ColorGreen:               {color.FgGreen},
	ColorCyan:                {color.FgCyan},
	ColorBlue:                {color.FgBlue},
	ColorOrange:              {color.FgRed},
}

var (
	styleHeader = color.Style{color.FgLightWhite, color.OpBold}
	stylePlayer = color.Style{color.FgLightWhite, color.OpBold}
	styleEntity = color.Style{color.FgLightRed}
)

// Colored returns the dump with terminal colors.
func (ld *levelDump) Colored() string {
	m := ld.lvl.Map
	spawned := map[gruid.Point]bool{}
	for _, s := range ld.lvl.Spawns {
		spawned[m.Point(s.Idx)] = true
	}
	var sb strings.Builder
	sb.WriteString(styleHeader.Sprint(ld.header()))
	for y, l := range ld.runes() {
		for x, r := range l {
			p := gruid.Point{x, y}
			switch {
			case p == ld.lvl.Start:
				sb.WriteString(stylePlayer.Sprint(string(r)))
			case spawned[p]:
				sb.WriteString(styleEntity.Sprint(string(r)))
			default:
				sb.WriteString(dumpStyles[tileColor(m.At(p))].Sprint(string(r)))
			}
		}
		sb.WriteRune('\n')
	}
	sb.WriteString(ld.spawnSummary())
	return sb.String()
}
