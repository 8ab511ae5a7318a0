package look

import (
	"image/color"
	"math"
	"testing"
)

func TestHexColors(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b float64
	}{
		{"#FF0000", 1, 0, 0},
		{"#00FF00", 0, 1, 0},
		{"#0000FF", 0, 0, 1},
		{"FFFFFF", 1, 1, 1},
		{"#000000", 0, 0, 0},
		{"#F00", 1, 0, 0},
		{"fff", 1, 1, 1},
	}
	for _, tt := range tests {
		c := Hex(tt.hex)
		if math.Abs(c.R-tt.r) > 0.01 || math.Abs(c.G-tt.g) > 0.01 || math.Abs(c.B-tt.b) > 0.01 {
			t.Errorf("Hex(%q) = %+v, want r=%v g=%v b=%v", tt.hex, c, tt.r, tt.g, tt.b)
		}
		if c.A != 1 {
			t.Errorf("Hex(%q) alpha = %v, want 1", tt.hex, c.A)
		}
	}
}

func TestHexInvalid(t *testing.T) {
	for _, s := range []string{"", "#12", "not-a-color", "#12345"} {
		c := Hex(s)
		if c != (RGBA{A: 1}) {
			t.Errorf("Hex(%q) = %+v, want opaque black", s, c)
		}
	}
}

func TestLuminance(t *testing.T) {
	if l := RGB(1, 1, 1).Luminance(); math.Abs(l-1) > 1e-9 {
		t.Errorf("white luminance = %v, want 1", l)
	}
	if l := RGB(0, 0, 0).Luminance(); l != 0 {
		t.Errorf("black luminance = %v, want 0", l)
	}
	// Green dominates the luminance response.
	if RGB(0, 1, 0).Luminance() <= RGB(1, 0, 0).Luminance() {
		t.Error("green should be brighter than red")
	}
	if RGB(1, 0, 0).Luminance() <= RGB(0, 0, 1).Luminance() {
		t.Error("red should be brighter than blue")
	}
}

func TestLerp(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(1, 1, 1)
	mid := a.Lerp(b, 0.5)
	if math.Abs(mid.R-0.5) > 1e-9 {
		t.Errorf("lerp midpoint = %+v", mid)
	}
	if a.Lerp(b, 0) != a {
		t.Error("t=0 should return the receiver")
	}
	if a.Lerp(b, 1) != b {
		t.Error("t=1 should return the target")
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	orig := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	c := FromColor(orig)
	back, ok := c.Color().(color.NRGBA)
	if !ok {
		t.Fatalf("Color() returned %T", c.Color())
	}
	if back != orig {
		t.Errorf("round trip = %+v, want %+v", back, orig)
	}
}
