package mapgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RandomTable is a weighted set of labels.
type RandomTable struct {
	entries []tableEntry
	total   int
}

type tableEntry struct {
	name   string
	weight int
}

// NewRandomTable returns an empty table.
func NewRandomTable() *RandomTable {
	return &RandomTable{}
}

// Add appends a label with the given weight and returns the table, so that
// calls can be chained. Negative weights are stored as zero.
func (rt *RandomTable) Add(name string, weight int) *RandomTable {
	weight = max(weight, 0)
	rt.entries = append(rt.entries, tableEntry{name: name, weight: weight})
	rt.total += weight
	return rt
}

// Len returns the number of labels in the table.
func (rt *RandomTable) Len() int {
	return len(rt.entries)
}

// TotalWeight returns the sum of all weights.
func (rt *RandomTable) TotalWeight() int {
	return rt.total
}

// Roll draws a label with probability proportional to its weight. It returns
// ErrEmptyTable if the total weight is zero.
func (rt *RandomTable) Roll(rng *RNG) (string, error) {
	if rt == nil || rt.total <= 0 {
		return "", ErrEmptyTable
	}
	roll := rng.IntN(rt.total)
	for _, e := range rt.entries {
		if roll < e.weight {
			return e.name, nil
		}
		roll -= e.weight
	}
	panic("mapgen: random table roll out of range")
}

// SpawnEntry describes how often an entity tag appears at a given depth.
type SpawnEntry struct {
	Name     string `yaml:"name"`
	Weight   int    `yaml:"weight"`
	MinDepth int    `yaml:"min_depth"`
	MaxDepth int    `yaml:"max_depth"`
	AddDepth bool   `yaml:"add_depth"` // add depth to weight
}

// SpawnCatalog is the list of spawnable entities used to build depth tables.
type SpawnCatalog []SpawnEntry

// TableForDepth returns the table of entities allowed at the given depth.
func (sc SpawnCatalog) TableForDepth(depth int) *RandomTable {
	rt := NewRandomTable()
	for _, e := range sc {
		if depth < e.MinDepth || depth > e.MaxDepth {
			continue
		}
		w := e.Weight
		if e.AddDepth {
			w += depth
		}
		rt.Add(e.Name, w)
	}
	return rt
}

// LoadSpawnCatalog reads a YAML spawn catalog from a file.
func LoadSpawnCatalog(path string) (SpawnCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spawn catalog: %w", err)
	}
	return ParseSpawnCatalog(data)
}

// ParseSpawnCatalog decodes a YAML spawn catalog.
func ParseSpawnCatalog(data []byte) (SpawnCatalog, error) {
	var sc SpawnCatalog
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing spawn catalog: %w", err)
	}
	for i, e := range sc {
		if e.Name == "" {
			return nil, fmt.Errorf("spawn catalog entry %d: missing name", i)
		}
		if e.MaxDepth == 0 {
			sc[i].MaxDepth = 100
		}
	}
	return sc, nil
}

// DefaultSpawnCatalog lists the stock monsters and items.
var DefaultSpawnCatalog = SpawnCatalog{
	{Name: "Goblin", Weight: 10, MinDepth: 2, MaxDepth: 100},
	{Name: "Orc", Weight: 1, MinDepth: 3, MaxDepth: 100, AddDepth: true},
	{Name: "Kobold", Weight: 15, MinDepth: 2, MaxDepth: 3},
	{Name: "Rat", Weight: 15, MinDepth: 2, MaxDepth: 4},
	{Name: "Wolf", Weight: 6, MinDepth: 2, MaxDepth: 3},
	{Name: "Deer", Weight: 6, MinDepth: 2, MaxDepth: 3},
	{Name: "Bandit", Weight: 9, MinDepth: 2, MaxDepth: 3},
	{Name: "Mountain Bear", Weight: 2, MinDepth: 2, MaxDepth: 2},
	{Name: "Dark Elf", Weight: 5, MinDepth: 6, MaxDepth: 100, AddDepth: true},
	{Name: "Health Potion", Weight: 7, MinDepth: 2, MaxDepth: 100},
	{Name: "Rations", Weight: 10, MinDepth: 2, MaxDepth: 100},
	{Name: "Magic Missile Scroll", Weight: 4, MinDepth: 2, MaxDepth: 100},
	{Name: "Fireball Scroll", Weight: 2, MinDepth: 2, MaxDepth: 100, AddDepth: true},
	{Name: "Magic Mapping Scroll", Weight: 2, MinDepth: 2, MaxDepth: 100},
	{Name: "Dagger", Weight: 3, MinDepth: 2, MaxDepth: 100},
	{Name: "Shield", Weight: 3, MinDepth: 2, MaxDepth: 100},
	{Name: "Longsword", Weight: 1, MinDepth: 3, MaxDepth: 100, AddDepth: true},
	{Name: "Bear Trap", Weight: 5, MinDepth: 2, MaxDepth: 100},
}
