package look

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestApplyInvalidInput(t *testing.T) {
	proc := NewProcessor()
	p, _ := PresetByID("portra400")

	if _, err := proc.Apply(p, nil); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("nil input: err = %v", err)
	}
	if _, err := proc.Apply(p, NewFramebuffer(0, 0)); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("empty input: err = %v", err)
	}
}

func TestApplyNeutralIsIdentity(t *testing.T) {
	proc := NewProcessor()
	src := testGradient(64, 48)
	out, err := proc.Apply(NeutralPreset(), src)
	if err != nil {
		t.Fatal(err)
	}
	if out == src {
		t.Fatal("Apply must return a copy, never the input")
	}
	for i := range out.Data() {
		if out.Data()[i] != src.Data()[i] {
			t.Fatal("neutral preset changed the image")
		}
	}
}

func TestApplyPreservesDimensionsAndOrientation(t *testing.T) {
	proc := NewProcessor()
	src := testGradient(61, 37)
	src.SetOrientation(OrientationRotate270)

	for _, p := range Presets() {
		out, err := proc.Apply(p, src)
		if err != nil {
			t.Fatalf("preset %s: %v", p.ID, err)
		}
		if out.Width() != 61 || out.Height() != 37 {
			t.Errorf("preset %s changed dimensions to %dx%d", p.ID, out.Width(), out.Height())
		}
		if out.Orientation() != OrientationRotate270 {
			t.Errorf("preset %s dropped orientation", p.ID)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	proc := NewProcessor()
	src := testGradient(32, 32)
	snapshot := src.Clone()

	p, _ := PresetByID("lomo")
	if _, err := proc.Apply(p, src); err != nil {
		t.Fatal(err)
	}
	for i := range src.Data() {
		if src.Data()[i] != snapshot.Data()[i] {
			t.Fatal("Apply mutated its input")
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	src := testGradient(64, 64)
	p, _ := PresetByID("superia400")

	a, err := NewProcessor(WithSeed(9)).Apply(p, src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewProcessor(WithSeed(9)).Apply(p, src)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatal("same seed and preset must reproduce identical output")
		}
	}
}

func TestApplyGrainVignetteLook(t *testing.T) {
	// A flat midtone frame through grain + vignette + a film recipe:
	// corners must come out darker than the center and the flat field
	// must pick up texture.
	src := testFlat(256, 256, RGB(0.55, 0.55, 0.55))
	preset := Preset{
		ID: "test-look",
		Modules: Modules{
			LUT:      "portra_like",
			Grain:    0.5,
			Vignette: 0.3,
		},
	}
	out, err := NewProcessor().Apply(preset, src)
	if err != nil {
		t.Fatal(err)
	}

	// Patch means, not single pixels: grain noise sits on top of the
	// vignette falloff.
	patch := func(x, y int) float64 {
		var sum float64
		for dy := 0; dy < 8; dy++ {
			for dx := 0; dx < 8; dx++ {
				sum += out.GetPixel(x+dx, y+dy).Luminance()
			}
		}
		return sum / 64
	}
	center := patch(124, 124)
	corners := []float64{patch(0, 0), patch(248, 0), patch(0, 248), patch(248, 248)}
	for i, c := range corners {
		if c >= center {
			t.Errorf("corner %d (%v) not darker than center (%v)", i, c, center)
		}
	}
	if luminanceStdDev(out) <= 0.5 {
		t.Error("flat field should show grain texture")
	}
}

func TestApplyRecipeNotDoubleCorrected(t *testing.T) {
	// When a preset sets a saturation delta alongside a recipe that
	// already encodes saturation, only the recipe's version runs.
	src := testFlat(32, 32, RGB(0.7, 0.4, 0.3))

	withDelta := Preset{Modules: Modules{LUT: "velvia_like", Saturation: 0.9}}
	withoutDelta := Preset{Modules: Modules{LUT: "velvia_like"}}

	proc := NewProcessor()
	a, err := proc.Apply(withDelta, src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := proc.Apply(withoutDelta, src)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatal("saturation applied twice on top of the recipe")
		}
	}
}

func TestApplyUnknownRecipeStillFiltered(t *testing.T) {
	// A preset referencing a missing recipe produces the neutral warm
	// lift, not an error and not a passthrough.
	src := testFlat(32, 32, RGB(0.5, 0.5, 0.5))
	preset := Preset{Modules: Modules{LUT: "does_not_exist"}}

	out, err := NewProcessor().Apply(preset, src)
	if err != nil {
		t.Fatal(err)
	}
	c := out.GetPixel(16, 16)
	if c.R <= c.B {
		t.Errorf("warm lift missing: %+v", c)
	}
}

func TestApplyTimestampUsesClock(t *testing.T) {
	fixed := time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)
	proc := NewProcessor(WithClock(func() time.Time { return fixed }))

	src := testFlat(160, 120, RGB(0.1, 0.1, 0.1))
	out, err := proc.Apply(Preset{Modules: Modules{Timestamp: true}}, src)
	if err != nil {
		t.Fatal(err)
	}
	same, err := proc.Apply(Preset{Modules: Modules{Timestamp: true}}, src)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out.Data() {
		if out.Data()[i] != same.Data()[i] {
			t.Fatal("fixed clock should make the imprint reproducible")
		}
	}
	changed := false
	for i := range out.Data() {
		if out.Data()[i] != src.Data()[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("timestamp module drew nothing")
	}
}

func TestApplyBasic(t *testing.T) {
	proc := NewProcessor()
	src := testFlat(16, 16, RGB(0.4, 0.4, 0.4))

	out, err := proc.ApplyBasic(BasicParams{Brightness: 0.5}, src)
	if err != nil {
		t.Fatal(err)
	}
	if meanLuminance(out) <= meanLuminance(src) {
		t.Error("brightness param should brighten")
	}

	if _, err := proc.ApplyBasic(BasicParams{}, nil); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("nil input: err = %v", err)
	}
}

func TestApplyGradesBeforeWarping(t *testing.T) {
	proc := NewProcessor()
	src := testGradient(64, 64)

	preset := Preset{ID: "warp", Modules: Modules{LUT: "velvia_like", Distortion: 0.8}}
	out, err := proc.Apply(preset, src)
	if err != nil {
		t.Fatal(err)
	}

	graded, err := ApplyRecipe(src, ResolveRecipe("velvia_like"))
	if err != nil {
		t.Fatal(err)
	}
	want, err := Distort(graded, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Data(), want.Data()) {
		t.Error("distortion did not run on the graded image")
	}

	// Warping first resamples the raw image through the tone curve and
	// produces a different composite.
	warped, err := Distort(src, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	wrong, err := ApplyRecipe(warped, ResolveRecipe("velvia_like"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(out.Data(), wrong.Data()) {
		t.Error("pipeline graded after warping")
	}
}

func TestApplyLeakWashesOverFrame(t *testing.T) {
	proc := NewProcessor(WithSeed(7))
	src := testFlat(96, 96, RGB(0.3, 0.3, 0.3))

	preset := Preset{ID: "framed", Modules: Modules{Frame: true, LightLeak: 0.8}}
	out, err := proc.Apply(preset, src)
	if err != nil {
		t.Fatal(err)
	}

	framed, err := FrameOverlay(src, "")
	if err != nil {
		t.Fatal(err)
	}
	want, err := LightLeak(framed, 0.8, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Data(), want.Data()) {
		t.Error("light leak did not wash over the frame border")
	}
}
