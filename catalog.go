package look

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// The shipped look catalog. Static, versioned, embedded at build time;
// read-only for the process lifetime.
//
//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Version int      `yaml:"version"`
	Presets []Preset `yaml:"presets"`
}

var (
	catalogPresets []Preset
	catalogByID    map[string]Preset
)

func init() {
	presets, err := decodeCatalog(catalogYAML)
	if err != nil {
		// The catalog is compiled into the binary; failing to decode it
		// is a build defect, not a runtime condition.
		panic("look: embedded catalog: " + err.Error())
	}
	catalogPresets = presets
	catalogByID = make(map[string]Preset, len(presets))
	for _, p := range presets {
		catalogByID[p.ID] = p
	}
}

func decodeCatalog(raw []byte) ([]Preset, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported catalog version %d", f.Version)
	}
	seen := make(map[string]bool, len(f.Presets))
	for _, p := range f.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return f.Presets, nil
}

// PresetByID looks up a shipped preset. The returned Preset is a value
// copy; callers cannot mutate the catalog through it.
func PresetByID(id string) (Preset, bool) {
	p, ok := catalogByID[id]
	return p, ok
}

// Presets returns all shipped presets in catalog order.
func Presets() []Preset {
	out := make([]Preset, len(catalogPresets))
	copy(out, catalogPresets)
	return out
}

// PresetsByCategory returns the shipped presets in the given category,
// in catalog order.
func PresetsByCategory(category string) []Preset {
	var out []Preset
	for _, p := range catalogPresets {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct preset categories, sorted.
func Categories() []string {
	set := make(map[string]bool)
	for _, p := range catalogPresets {
		set[p.Category] = true
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
