// This file contains a wave function collapse resynthesis of maps.

package mapgen

import (
	"fmt"
	"log"
	"math/bits"
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// WFC defaults.
const (
	DefaultChunkSize     = 8
	DefaultWFCAttempts   = 20
	DefaultWFCFloorShare = 0.15 // minimum passable share of an output map
)

// Sides of a chunk, in the order used by exit tables.
const (
	sideNorth = iota
	sideSouth
	sideWest
	sideEast
)

var sideDirs = [4]gruid.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func opposite(side int) int {
	return side ^ 1
}

// chunk is a square tile pattern extracted from a source map.
type chunk struct {
	tiles []rl.Cell
	exits [4][]bool // passable edge tiles per side
	count int       // occurrences in the source, used as weight
}

func (c *chunk) hasExit(side int) bool {
	return slices.Contains(c.exits[side], true)
}

// compatible reports whether b may be placed next to a on the given side of
// a: either neither has exits on the shared edge, or at least one exit
// lines up.
func compatible(a, b *chunk, side int) bool {
	ea, eb := a.exits[side], b.exits[opposite(side)]
	if !slices.Contains(ea, true) && !slices.Contains(eb, true) {
		return true
	}
	for i := range ea {
		if ea[i] && eb[i] {
			return true
		}
	}
	return false
}

// extractChunks returns the distinct chunks of the source map plus an all
// wall chunk.
func extractChunks(m *Map, size int) []*chunk {
	index := map[string]*chunk{}
	var chunks []*chunk
	add := func(tiles []rl.Cell) {
		key := string(tilesKey(tiles))
		if c, ok := index[key]; ok {
			c.count++
			return
		}
		c := &chunk{tiles: tiles, count: 1}
		for i := range size {
			c.exits[sideNorth] = append(c.exits[sideNorth], Passable(tiles[i]))
			c.exits[sideSouth] = append(c.exits[sideSouth], Passable(tiles[(size-1)*size+i]))
			c.exits[sideWest] = append(c.exits[sideWest], Passable(tiles[i*size]))
			c.exits[sideEast] = append(c.exits[sideEast], Passable(tiles[i*size+size-1]))
		}
		index[key] = c
		chunks = append(chunks, c)
	}
	for cy := range m.Height / size {
		for cx := range m.Width / size {
			tiles := make([]rl.Cell, 0, size*size)
			for y := range size {
				for x := range size {
					tiles = append(tiles, m.At(gruid.Point{cx*size + x, cy*size + y}))
				}
			}
			add(tiles)
		}
	}
	add(make([]rl.Cell, size*size))
	return chunks
}

func tilesKey(tiles []rl.Cell) []rune {
	key := make([]rune, len(tiles))
	for i, t := range tiles {
		key[i] = rune(t)
	}
	return key
}

// domain is a bitset of chunk indices.
type domain []uint64

func newDomain(n int, full bool) domain {
	d := make(domain, (n+63)/64)
	if full {
		for i := range n {
			d.set(i)
		}
	}
	return d
}

func (d domain) set(i int)      { d[i/64] |= 1 << (i % 64) }
func (d domain) has(i int) bool { return d[i/64]&(1<<(i%64)) != 0 }

func (d domain) count() int {
	n := 0
	for _, w := range d {
		n += bits.OnesCount64(w)
	}
	return n
}

// intersect restricts d to o and reports whether d changed.
func (d domain) intersect(o domain) bool {
	changed := false
	for i := range d {
		w := d[i] & o[i]
		if w != d[i] {
			d[i] = w
			changed = true
		}
	}
	return changed
}

func (d domain) union(o domain) {
	for i := range d {
		d[i] |= o[i]
	}
}

// solver holds the state of one synthesis attempt.
type solver struct {
	chunks  []*chunk
	compat  [4][]domain // compat[side][a]: chunks allowed on that side of a
	w, h    int         // output size in chunks
	domains []domain
}

func newSolver(chunks []*chunk, w, h int) *solver {
	s := &solver{chunks: chunks, w: w, h: h}
	n := len(chunks)
	for side := range 4 {
		s.compat[side] = make([]domain, n)
		for a := range n {
			d := newDomain(n, false)
			for b := range n {
				if compatible(chunks[a], chunks[b], side) {
					d.set(b)
				}
			}
			s.compat[side][a] = d
		}
	}
	return s
}

func (s *solver) in(c gruid.Point) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.w && c.Y < s.h
}

func (s *solver) at(c gruid.Point) domain {
	return s.domains[c.Y*s.w+c.X]
}

// reset initializes domains: chunks on the output edges may not have exits
// leading out of the map.
func (s *solver) reset() {
	n := len(s.chunks)
	s.domains = make([]domain, s.w*s.h)
	for y := range s.h {
		for x := range s.w {
			c := gruid.Point{x, y}
			d := newDomain(n, false)
			for i, ch := range s.chunks {
				ok := true
				for side, dir := range sideDirs {
					if !s.in(c.Add(dir)) && ch.hasExit(side) {
						ok = false
						break
					}
				}
				if ok {
					d.set(i)
				}
			}
			s.domains[y*s.w+x] = d
		}
	}
}

// propagate restricts neighbor domains from the queued cells. It reports
// false on contradiction.
func (s *solver) propagate(queue []gruid.Point) bool {
	n := len(s.chunks)
	allowed := newDomain(n, false)
	for len(queue) > 0 {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		d := s.at(c)
		for side, dir := range sideDirs {
			q := c.Add(dir)
			if !s.in(q) {
				continue
			}
			clear(allowed)
			for i := range n {
				if d.has(i) {
					allowed.union(s.compat[side][i])
				}
			}
			nd := s.at(q)
			if nd.intersect(allowed) {
				if nd.count() == 0 {
					return false
				}
				queue = append(queue, q)
			}
		}
	}
	return true
}

// lowestEntropy returns an unresolved cell with the fewest candidates. Ties
// are broken at random.
func (s *solver) lowestEntropy(rng *RNG) (gruid.Point, bool) {
	best := 0
	var cands []gruid.Point
	for i, d := range s.domains {
		n := d.count()
		if n <= 1 {
			continue
		}
		c := gruid.Point{i % s.w, i / s.w}
		switch {
		case best == 0 || n < best:
			best = n
			cands = append(cands[:0], c)
		case n == best:
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return InvalidPos, false
	}
	return cands[rng.IntN(len(cands))], true
}

// collapse fixes the cell to one candidate, drawn by frequency.
func (s *solver) collapse(rng *RNG, c gruid.Point) {
	d := s.at(c)
	total := 0
	for i, ch := range s.chunks {
		if d.has(i) {
			total += ch.count
		}
	}
	roll := rng.IntN(total)
	pick := -1
	for i, ch := range s.chunks {
		if !d.has(i) {
			continue
		}
		if roll < ch.count {
			pick = i
			break
		}
		roll -= ch.count
	}
	clear(d)
	d.set(pick)
}

// solve runs one synthesis attempt.
func (s *solver) solve(rng *RNG) bool {
	s.reset()
	all := make([]gruid.Point, 0, s.w*s.h)
	for i, d := range s.domains {
		if d.count() == 0 {
			return false
		}
		all = append(all, gruid.Point{i % s.w, i / s.w})
	}
	if !s.propagate(all) {
		return false
	}
	for {
		c, ok := s.lowestEntropy(rng)
		if !ok {
			return true
		}
		s.collapse(rng, c)
		if !s.propagate([]gruid.Point{c}) {
			return false
		}
	}
}

// WaveformCollapseBuilder resynthesizes the current map from its own chunks
// with wave function collapse. Rooms, positions and spawns of the previous
// map are discarded.
//
// An output without any passable tile, or with a passable share below
// MinFloorShare, counts as a failed attempt.
type WaveformCollapseBuilder struct {
	ChunkSize     int
	MaxAttempts   int
	MinFloorShare float64
}

// NewWaveformCollapseBuilder returns a builder with stock settings.
func NewWaveformCollapseBuilder() *WaveformCollapseBuilder {
	return &WaveformCollapseBuilder{
		ChunkSize:     DefaultChunkSize,
		MaxAttempts:   DefaultWFCAttempts,
		MinFloorShare: DefaultWFCFloorShare,
	}
}

func (wb *WaveformCollapseBuilder) BuildMeta(rng *RNG, bs *BuildState) error {
	m := bs.Map
	size := wb.ChunkSize
	if size <= 0 || m.Width/size == 0 || m.Height/size == 0 {
		return fmt.Errorf("wave function collapse: chunk size %d for %dx%d map: %w",
			size, m.Width, m.Height, ErrExhausted)
	}
	chunks := extractChunks(m, size)
	s := newSolver(chunks, m.Width/size, m.Height/size)
	for try := range max(wb.MaxAttempts, 1) {
		if !s.solve(rng) {
			log.Printf("mapgen: wave function collapse contradiction (try %d)", try+1)
			continue
		}
		wb.render(bs, s)
		if n := m.PassableCount(); n > 0 && float64(n) >= wb.MinFloorShare*float64(m.Len()) {
			return nil
		}
		log.Printf("mapgen: wave function collapse output too closed (try %d)", try+1)
	}
	return fmt.Errorf("wave function collapse: %w", ErrExhausted)
}

func (wb *WaveformCollapseBuilder) render(bs *BuildState, s *solver) {
	m := bs.Map
	size := wb.ChunkSize
	m.Fill(Wall)
	for i, d := range s.domains {
		var ch *chunk
		for j := range s.chunks {
			if d.has(j) {
				ch = s.chunks[j]
				break
			}
		}
		cx, cy := i%s.w, i/s.w
		for y := range size {
			for x := range size {
				m.Set(gruid.Point{cx*size + x, cy*size + y}, ch.tiles[y*size+x])
			}
		}
	}
	m.SealBorder()
	bs.Rooms = nil
	bs.Corridors = nil
	bs.Spawns = nil
	bs.Start = InvalidPos
	bs.Exit = InvalidPos
	bs.Farthest = InvalidPos
	for p, t := range m.Terrain.All() {
		if t == DownStairs || t == UpStairs {
			m.Set(p, Floor)
		}
	}
}

// WaveformCollapseStarter runs a source builder and resynthesizes its output
// with wave function collapse.
type WaveformCollapseStarter struct {
	Source InitialBuilder
	WFC    *WaveformCollapseBuilder
}

// NewWaveformCollapseStarter returns a starter over the given source.
func NewWaveformCollapseStarter(source InitialBuilder) *WaveformCollapseStarter {
	return &WaveformCollapseStarter{Source: source, WFC: NewWaveformCollapseBuilder()}
}

func (ws *WaveformCollapseStarter) BuildInitial(rng *RNG, bs *BuildState) error {
	if err := ws.Source.BuildInitial(rng, bs); err != nil {
		return fmt.Errorf("%s: %w", stageName(ws.Source), err)
	}
	bs.TakeSnapshot()
	return ws.WFC.BuildMeta(rng, bs)
}
