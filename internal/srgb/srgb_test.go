package srgb

import (
	"math"
	"testing"
)

func TestToLinearEndpoints(t *testing.T) {
	if got := ToLinear(0); got != 0 {
		t.Errorf("ToLinear(0) = %v, want 0", got)
	}
	if got := ToLinear(255); math.Abs(float64(got)-1.0) > 1e-6 {
		t.Errorf("ToLinear(255) = %v, want 1.0", got)
	}
}

func TestToLinearMidGray(t *testing.T) {
	// sRGB 128 is not half linear light: the transfer function is
	// nonlinear. sRGB 128 ≈ 0.2158 linear.
	got := float64(ToLinear(128))
	if math.Abs(got-0.2158) > 0.001 {
		t.Errorf("ToLinear(128) = %v, want ≈0.2158", got)
	}
}

func TestFromLinearClamps(t *testing.T) {
	if got := FromLinear(-0.5); got != 0 {
		t.Errorf("FromLinear(-0.5) = %d, want 0", got)
	}
	if got := FromLinear(1.5); got != 255 {
		t.Errorf("FromLinear(1.5) = %d, want 255", got)
	}
}

func TestRoundTrip(t *testing.T) {
	// Every sRGB byte must survive a linear round trip exactly: the
	// 12-bit reverse table has enough precision for that.
	for i := 0; i < 256; i++ {
		s := uint8(i)
		if got := FromLinear(ToLinear(s)); got != s {
			t.Fatalf("round trip %d -> %v -> %d", s, ToLinear(s), got)
		}
	}
}

func TestToLinearMonotonic(t *testing.T) {
	prev := ToLinear(0)
	for i := 1; i < 256; i++ {
		cur := ToLinear(uint8(i))
		if cur <= prev {
			t.Fatalf("ToLinear not strictly increasing at %d: %v <= %v", i, cur, prev)
		}
		prev = cur
	}
}

func BenchmarkToLinear(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += ToLinear(uint8(i))
	}
	_ = sink
}
