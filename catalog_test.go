package look

import "testing"

func TestCatalogUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Presets() {
		if p.ID == "" {
			t.Errorf("preset %q has empty ID", p.Name)
		}
		if seen[p.ID] {
			t.Errorf("duplicate preset ID %q", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) < 20 {
		t.Errorf("catalog has only %d presets", len(seen))
	}
}

func TestCatalogRecipesResolve(t *testing.T) {
	// Every LUT name shipped in the catalog must resolve to a real
	// recipe, not fall through to the neutral fallback.
	for _, p := range Presets() {
		if p.Modules.LUT == "" {
			continue
		}
		if _, ok := recipes[p.Modules.LUT]; !ok {
			t.Errorf("preset %s references unknown recipe %q", p.ID, p.Modules.LUT)
		}
	}
}

func TestPresetByID(t *testing.T) {
	p, ok := PresetByID("portra400")
	if !ok {
		t.Fatal("portra400 missing from catalog")
	}
	if p.Modules.LUT != "portra_like" {
		t.Errorf("portra400 LUT = %q", p.Modules.LUT)
	}
	if _, ok := PresetByID("no-such-preset"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestPresetsByCategory(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("no categories")
	}
	total := 0
	for _, cat := range cats {
		ps := PresetsByCategory(cat)
		if len(ps) == 0 {
			t.Errorf("category %q is empty", cat)
		}
		for _, p := range ps {
			if p.Category != cat {
				t.Errorf("preset %s in wrong category bucket", p.ID)
			}
		}
		total += len(ps)
	}
	if total != len(Presets()) {
		t.Errorf("category buckets cover %d of %d presets", total, len(Presets()))
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	a := Presets()
	if len(a) == 0 {
		t.Fatal("empty catalog")
	}
	orig := a[0].Name
	a[0].Name = "mutated"
	if Presets()[0].Name != orig {
		t.Error("Presets() exposed internal storage")
	}
}
