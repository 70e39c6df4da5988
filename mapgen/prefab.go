// This file contains hand-authored prefab templates and their placement.

package mapgen

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/zyedidia/generic/mapset"
)

// PrefabLevel is a template for a whole level.
type PrefabLevel struct {
	Template      string
	Width, Height int
}

// ParsePrefabLevel returns a level template sized after its text.
func ParsePrefabLevel(tpl string) (PrefabLevel, error) {
	tpl = strings.Trim(tpl, "\n")
	if strings.TrimSpace(tpl) == "" {
		return PrefabLevel{}, fmt.Errorf("%w: empty level", ErrBadPrefab)
	}
	lines := strings.Split(tpl, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	return PrefabLevel{Template: tpl, Width: w, Height: len(lines)}, nil
}

// LoadPrefabLevel reads a level template from a file.
func LoadPrefabLevel(path string) (PrefabLevel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PrefabLevel{}, fmt.Errorf("reading prefab level: %w", err)
	}
	lvl, err := ParsePrefabLevel(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if err != nil {
		return PrefabLevel{}, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// HAlign is the horizontal anchor of a sectional prefab.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical anchor of a sectional prefab.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// PrefabSection is a template stamped over a part of an existing map.
type PrefabSection struct {
	Template      string
	Width, Height int
	X             HAlign
	Y             VAlign
}

// PrefabRoom is a small vault template that may be placed on open floor at
// depths in [FirstDepth, LastDepth].
type PrefabRoom struct {
	Template              string
	Width, Height         int
	FirstDepth, LastDepth int
	Flips                 bool // random reflections and rotations allowed
}

// prefabGlyphs maps template glyphs that are not ASCII to placeholders
// before parsing.
var prefabGlyphs = strings.NewReplacer("≈", "w", "☼", "*", " ", ".")

// parseTemplate pads the template to the given size and parses it.
func parseTemplate(tpl string, w, h int) (*rl.Vault, error) {
	lines := strings.Split(strings.Trim(tpl, "\n"), "\n")
	if len(lines) > h {
		return nil, fmt.Errorf("%w: %d lines for height %d", ErrBadPrefab, len(lines), h)
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	for i, l := range lines {
		n := utf8.RuneCountInString(l)
		if n > w {
			return nil, fmt.Errorf("%w: line %d has %d glyphs for width %d", ErrBadPrefab, i, n, w)
		}
		lines[i] = prefabGlyphs.Replace(l + strings.Repeat(" ", w-n))
	}
	v := &rl.Vault{}
	if err := v.Parse(strings.Join(lines, "\n")); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPrefab, err)
	}
	return v, nil
}

// stampVault draws a parsed template at offset p, following the prefab
// legend.
func stampVault(bs *BuildState, v *rl.Vault, p gruid.Point) {
	m := bs.Map
	v.Iter(func(q gruid.Point, c rune) {
		q = q.Add(p)
		if !m.InMap(q) {
			return
		}
		spawn := ""
		t := Floor
		switch c {
		case '.':
		case '#':
			t = Wall
		case 'w':
			t = DeepWater
		case '~':
			t = ShallowWater
		case '>':
			t = DownStairs
		case '@':
			bs.SetStart(q)
		case 'g':
			spawn = "Goblin"
		case 'o':
			spawn = "Orc"
		case 'O':
			spawn = "Orc Leader"
		case 'e':
			spawn = "Dark Elf"
		case '^':
			spawn = "Bear Trap"
		case '%':
			spawn = "Rations"
		case '!':
			spawn = "Health Potion"
		case '*':
			spawn = "Watch Fire"
		default:
			log.Printf("mapgen: unknown prefab glyph %q", c)
		}
		if m.OnBorder(q) && t != Wall {
			// The map border stays sealed.
			t, spawn = Wall, ""
		}
		if t == DownStairs {
			bs.SetExit(q)
		} else {
			m.Set(q, t)
		}
		if spawn != "" {
			bs.AddSpawn(m.Idx(q), spawn)
		}
	})
}

// PrefabMode selects what a PrefabBuilder does.
type PrefabMode int

const (
	PrefabConstant PrefabMode = iota
	PrefabSectional
	PrefabRoomVaults
)

// PrefabBuilder places hand-authored templates. In PrefabConstant mode it
// is a starter drawing a whole level. PrefabSectional stamps a section over
// the current map, and PrefabRoomVaults places depth-appropriate vaults on
// open floor.
type PrefabBuilder struct {
	Mode    PrefabMode
	Level   PrefabLevel
	Section PrefabSection
	Vaults  []PrefabRoom
}

// NewPrefabConstant returns a starter for a whole level template.
func NewPrefabConstant(level PrefabLevel) *PrefabBuilder {
	return &PrefabBuilder{Mode: PrefabConstant, Level: level}
}

// NewPrefabSectional returns a meta builder stamping a section.
func NewPrefabSectional(section PrefabSection) *PrefabBuilder {
	return &PrefabBuilder{Mode: PrefabSectional, Section: section}
}

// NewPrefabVaults returns a meta builder placing the stock room vaults.
func NewPrefabVaults() *PrefabBuilder {
	return &PrefabBuilder{Mode: PrefabRoomVaults, Vaults: RoomVaults}
}

func (pb *PrefabBuilder) BuildInitial(rng *RNG, bs *BuildState) error {
	bs.Map.Fill(Wall)
	return pb.BuildMeta(rng, bs)
}

func (pb *PrefabBuilder) BuildMeta(rng *RNG, bs *BuildState) error {
	switch pb.Mode {
	case PrefabSectional:
		return pb.sectional(bs)
	case PrefabRoomVaults:
		return pb.roomVaults(rng, bs)
	default:
		return pb.constant(bs)
	}
}

func (pb *PrefabBuilder) constant(bs *BuildState) error {
	v, err := parseTemplate(pb.Level.Template, pb.Level.Width, pb.Level.Height)
	if err != nil {
		return err
	}
	if v.Size().X > bs.Map.Width || v.Size().Y > bs.Map.Height {
		return fmt.Errorf("%w: level %v larger than map", ErrBadPrefab, v.Size())
	}
	stampVault(bs, v, gruid.Point{})
	return nil
}

func (pb *PrefabBuilder) sectional(bs *BuildState) error {
	sec := pb.Section
	m := bs.Map
	v, err := parseTemplate(sec.Template, sec.Width, sec.Height)
	if err != nil {
		return err
	}
	sz := v.Size()
	if sz.X > m.Width || sz.Y > m.Height {
		return fmt.Errorf("%w: section %v larger than map", ErrBadPrefab, sz)
	}
	var p gruid.Point
	switch sec.X {
	case AlignLeft:
		p.X = 0
	case AlignCenter:
		p.X = m.Width/2 - sz.X/2
	default:
		p.X = m.Width - 1 - sz.X
	}
	switch sec.Y {
	case AlignTop:
		p.Y = 0
	case AlignMiddle:
		p.Y = m.Height/2 - sz.Y/2
	default:
		p.Y = m.Height - 1 - sz.Y
	}
	p.X, p.Y = max(p.X, 0), max(p.Y, 0)
	area := NewRect(p.X, p.Y, sz.X, sz.Y)
	bs.RemoveSpawnsIn(area)
	if area.Contains(bs.Start) {
		bs.Start = InvalidPos
	}
	if area.Contains(bs.Exit) {
		bs.Exit = InvalidPos
	}
	stampVault(bs, v, p)
	return nil
}

// maxVaults is the maximum number of room vaults per level.
const maxVaults = 3

func (pb *PrefabBuilder) roomVaults(rng *RNG, bs *BuildState) error {
	m := bs.Map
	var candidates []PrefabRoom
	for _, pr := range pb.Vaults {
		if bs.Depth() >= pr.FirstDepth && bs.Depth() <= pr.LastDepth {
			candidates = append(candidates, pr)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	used := mapset.New[int]()
	for _, s := range bs.Spawns {
		used.Put(s.Idx)
	}
	for _, q := range []gruid.Point{bs.Start, bs.Exit} {
		if m.InMap(q) {
			used.Put(m.Idx(q))
		}
	}
	placed := 0
	n := min(rng.RollDice(1, maxVaults), len(candidates))
	for range n {
		i := rng.IntN(len(candidates))
		pr := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)
		v, err := parseTemplate(pr.Template, pr.Width, pr.Height)
		if err != nil {
			return err
		}
		if pr.Flips {
			if rng.IntN(2) == 0 {
				v.Reflect()
			}
			v.Rotate(2 * rng.IntN(2))
		}
		sz := v.Size()
		var spots []gruid.Point
		for y := 1; y < m.Height-sz.Y; y++ {
			for x := 1; x < m.Width-sz.X; x++ {
				r := NewRect(x, y, sz.X, sz.Y)
				ok := true
				r.Points(func(q gruid.Point) {
					if ok && (m.At(q) != Floor || used.Has(m.Idx(q))) {
						ok = false
					}
				})
				if ok {
					spots = append(spots, gruid.Point{x, y})
				}
			}
		}
		if len(spots) == 0 {
			log.Printf("mapgen: found no space for vault")
			continue
		}
		p := spots[rng.IntN(len(spots))]
		area := NewRect(p.X, p.Y, sz.X, sz.Y)
		bs.RemoveSpawnsIn(area)
		stampVault(bs, v, p)
		area.Points(func(q gruid.Point) { used.Put(m.Idx(q)) })
		placed++
		bs.TakeSnapshot()
	}
	if placed > 0 && bs.Start != InvalidPos && m.Passable(bs.Start) {
		// Vault walls may have cut off some floor.
		return CullUnreachable{}.BuildMeta(rng, bs)
	}
	return nil
}
