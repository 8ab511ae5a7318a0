//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/fotolab/look"
)

//go:embed kernels/grain.wgsl
var grainKernelSource string

//go:embed kernels/vignette.wgsl
var vignetteKernelSource string

//go:embed kernels/halation.wgsl
var halationKernelSource string

// ComputeAccelerator runs the grain, vignette and halation stages as
// wgpu/hal compute shaders. It implements the look.StageAccelerator
// interface.
//
// Each ApplyStage call uploads the frame to a storage buffer, runs one
// compute pass and reads the result back. The pixel layout on the GPU
// matches the CPU framebuffer: packed RGBA, one u32 per pixel.
type ComputeAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	shaders    map[look.AcceleratedOp]hal.ShaderModule
	pipelines  map[look.AcceleratedOp]hal.ComputePipeline

	logger *slog.Logger
	ready  bool
}

var _ look.StageAccelerator = (*ComputeAccelerator)(nil)

func (a *ComputeAccelerator) Name() string { return "wgpu-compute" }

// SetLogger routes the accelerator's diagnostics through the engine
// logger. Called by look.SetLogger.
func (a *ComputeAccelerator) SetLogger(l *slog.Logger) {
	a.mu.Lock()
	a.logger = l
	a.mu.Unlock()
}

func (a *ComputeAccelerator) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return look.Logger()
}

func (a *ComputeAccelerator) CanAccelerate(op look.AcceleratedOp) bool {
	return op == look.AccelGrain || op == look.AccelVignette || op == look.AccelHalation
}

// Init opens the GPU device and compiles the stage kernels. A failure
// is logged, never returned: the accelerator stays registered with
// Ready() false and the engine keeps the CPU path.
func (a *ComputeAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		a.log().Warn("look-gpu: GPU init failed, CPU path stays active", "err", err)
	}
	return nil
}

func (a *ComputeAccelerator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready
}

func (a *ComputeAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyPipelines()
	if a.device != nil {
		a.device.Destroy()
		a.device = nil
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}
	a.queue = nil
	a.ready = false
}

// stageParams is the uniform block shared by all three kernels. Must
// match the Params struct in kernels/*.wgsl field for field.
type stageParams struct {
	Width     uint32
	Height    uint32
	Intensity float32
	Seed      uint32
}

const stageParamsSize = 16

func packStageParams(p stageParams) []byte {
	buf := make([]byte, stageParamsSize)
	binary.LittleEndian.PutUint32(buf[0:], p.Width)
	binary.LittleEndian.PutUint32(buf[4:], p.Height)
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(p.Intensity))
	binary.LittleEndian.PutUint32(buf[12:], p.Seed)
	return buf
}

// ApplyStage dispatches one stage kernel over the target in place.
func (a *ComputeAccelerator) ApplyStage(target look.StageTarget, op look.AcceleratedOp, intensity float64, seed uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return look.ErrFallbackToCPU
	}
	pipeline, ok := a.pipelines[op]
	if !ok {
		return look.ErrFallbackToCPU
	}
	if target.Width <= 0 || target.Height <= 0 || len(target.Data) == 0 {
		return fmt.Errorf("look-gpu: empty stage target")
	}

	w, h := uint32(target.Width), uint32(target.Height)
	pixelBufSize := uint64(w) * uint64(h) * 4

	paramsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "look_params", Size: stageParamsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	defer a.device.DestroyBuffer(paramsBuf)

	pixelBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "look_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create pixel buffer: %w", err)
	}
	defer a.device.DestroyBuffer(pixelBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "look_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(paramsBuf, 0, packStageParams(stageParams{
		Width: w, Height: h,
		Intensity: float32(intensity),
		Seed:      seed,
	}))
	a.queue.WriteBuffer(pixelBuf, 0, packRows(target))

	bindGroup, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "look_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: stageParamsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: pixelBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bindGroup)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "look_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("look_stage"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "look_pass"})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((w+7)/8, (h+7)/8, 1)
	pass.End()
	encoder.CopyBufferToBuffer(pixelBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackRows(readback, target)
	return nil
}

// packRows serializes the target's pixel rows into a tightly packed
// buffer for GPU upload. The byte order of an RGBA quad already matches
// a little-endian packed u32, so rows copy straight through; only a
// stride wider than the row needs per-row handling.
func packRows(target look.StageTarget) []byte {
	rowBytes := target.Width * 4
	if target.Stride == rowBytes {
		out := make([]byte, len(target.Data))
		copy(out, target.Data)
		return out
	}
	out := make([]byte, rowBytes*target.Height)
	for y := 0; y < target.Height; y++ {
		copy(out[y*rowBytes:(y+1)*rowBytes], target.Data[y*target.Stride:y*target.Stride+rowBytes])
	}
	return out
}

func unpackRows(packed []byte, target look.StageTarget) {
	rowBytes := target.Width * 4
	if target.Stride == rowBytes {
		copy(target.Data, packed)
		return
	}
	for y := 0; y < target.Height; y++ {
		copy(target.Data[y*target.Stride:y*target.Stride+rowBytes], packed[y*rowBytes:(y+1)*rowBytes])
	}
}

func (a *ComputeAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.ready = true
	a.log().Info("look-gpu: compute accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

var kernelSources = map[look.AcceleratedOp]struct {
	label  string
	source *string
}{
	look.AccelGrain:    {"look_grain", &grainKernelSource},
	look.AccelVignette: {"look_vignette", &vignetteKernelSource},
	look.AccelHalation: {"look_halation", &halationKernelSource},
}

func (a *ComputeAccelerator) createPipelines() error {
	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "look_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "look_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	a.shaders = make(map[look.AcceleratedOp]hal.ShaderModule, len(kernelSources))
	a.pipelines = make(map[look.AcceleratedOp]hal.ComputePipeline, len(kernelSources))
	for op, k := range kernelSources {
		// Validate through naga first: a malformed kernel surfaces as a
		// readable compile error instead of a driver-dependent failure
		// inside CreateShaderModule.
		if _, err := naga.Compile(*k.source); err != nil {
			return fmt.Errorf("validate %s kernel: %w", k.label, err)
		}
		module, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  k.label,
			Source: hal.ShaderSource{WGSL: *k.source},
		})
		if err != nil {
			return fmt.Errorf("compile %s kernel: %w", k.label, err)
		}
		a.shaders[op] = module

		pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
			Label: k.label + "_pipeline", Layout: a.pipeLayout,
			Compute: hal.ComputeState{Module: module, EntryPoint: "main"},
		})
		if err != nil {
			return fmt.Errorf("create %s pipeline: %w", k.label, err)
		}
		a.pipelines[op] = pipeline
	}
	return nil
}

func (a *ComputeAccelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	for _, p := range a.pipelines {
		if p != nil {
			a.device.DestroyComputePipeline(p)
		}
	}
	a.pipelines = nil
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	for _, s := range a.shaders {
		if s != nil {
			a.device.DestroyShaderModule(s)
		}
	}
	a.shaders = nil
}
