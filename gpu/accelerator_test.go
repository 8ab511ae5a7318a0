//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/fotolab/look"
)

func TestKernelSourcesEmbedded(t *testing.T) {
	kernels := map[string]string{
		"grain":    grainKernelSource,
		"vignette": vignetteKernelSource,
		"halation": halationKernelSource,
	}
	for name, src := range kernels {
		if len(src) == 0 {
			t.Errorf("%s kernel source is empty", name)
		}
		if !strings.Contains(src, "fn main") {
			t.Errorf("%s kernel has no main entry point", name)
		}
		if !strings.Contains(src, "@workgroup_size(8, 8)") {
			t.Errorf("%s kernel workgroup size does not match the dispatch", name)
		}
	}
}

func TestGrainKernelMatchesCPUHash(t *testing.T) {
	// The WGSL hash must stay in lockstep with the CPU noise function.
	// Checking the constants is the best a host-side test can do.
	for _, c := range []string{"374761393u", "668265263u", "2147483647u", "1274126177u"} {
		if !strings.Contains(grainKernelSource, c) {
			t.Errorf("grain kernel lost hash constant %s", c)
		}
	}
}

func TestCanAccelerate(t *testing.T) {
	a := &ComputeAccelerator{}
	for _, op := range []look.AcceleratedOp{look.AccelGrain, look.AccelVignette, look.AccelHalation} {
		if !a.CanAccelerate(op) {
			t.Errorf("should accelerate %v", op)
		}
	}
	if a.CanAccelerate(look.AcceleratedOp(1 << 10)) {
		t.Error("unknown op reported as accelerable")
	}
}

func TestApplyStageNotReady(t *testing.T) {
	a := &ComputeAccelerator{}
	target := look.StageTarget{Data: make([]uint8, 16), Width: 2, Height: 2, Stride: 8}
	err := a.ApplyStage(target, look.AccelGrain, 0.5, 1)
	if !errors.Is(err, look.ErrFallbackToCPU) {
		t.Errorf("unready accelerator: err = %v, want ErrFallbackToCPU", err)
	}
}

func TestPackStageParams(t *testing.T) {
	buf := packStageParams(stageParams{Width: 640, Height: 480, Intensity: 0.5, Seed: 7})
	if len(buf) != stageParamsSize {
		t.Fatalf("params size = %d, want %d", len(buf), stageParamsSize)
	}
	if binary.LittleEndian.Uint32(buf[0:]) != 640 {
		t.Error("width misencoded")
	}
	if binary.LittleEndian.Uint32(buf[4:]) != 480 {
		t.Error("height misencoded")
	}
	if binary.LittleEndian.Uint32(buf[12:]) != 7 {
		t.Error("seed misencoded")
	}
}

func TestPackRowsStride(t *testing.T) {
	// 2x2 image with a 12-byte stride (4 bytes row padding).
	target := look.StageTarget{
		Data:   make([]uint8, 2*12),
		Width:  2,
		Height: 2,
		Stride: 12,
	}
	for i := range target.Data {
		target.Data[i] = uint8(i)
	}
	packed := packRows(target)
	if len(packed) != 16 {
		t.Fatalf("packed size = %d, want 16", len(packed))
	}
	// Second row starts at the stride, not at width*4.
	if packed[8] != target.Data[12] {
		t.Error("row 1 not taken from the stride offset")
	}

	// Round trip restores the padded layout.
	out := look.StageTarget{Data: make([]uint8, 2*12), Width: 2, Height: 2, Stride: 12}
	unpackRows(packed, out)
	for y := 0; y < 2; y++ {
		for b := 0; b < 8; b++ {
			if out.Data[y*12+b] != target.Data[y*12+b] {
				t.Fatalf("row %d byte %d mismatch", y, b)
			}
		}
	}
}
