//go:build !nogpu

// Package gpu runs the stencil pass on a WebGPU device through the
// gogpu/wgpu HAL.
//
// A [Renderer] owns the compiled stencil shader, the bind group layouts for
// the coordinate matrix (group 0) and the primitive table (group 1), and one
// render pipeline per [FillRule]. Per draw, [Renderer.Upload] turns a
// validated [stencil.Batch] into GPU buffers and bind groups, and
// [Renderer.RecordDraw] records the draw into a render pass whose
// depth/stencil attachment accumulates coverage. [Target] manages a
// matching color and depth/stencil texture pair.
//
// Typical use inside a frame:
//
//	r, err := gpu.NewRenderer(device, queue)
//	...
//	res, err := r.Upload(batch)
//	...
//	rp := encoder.BeginRenderPass(target.RenderPassDescriptor())
//	r.RecordDraw(rp, res, gpu.NonZero)
//	// cover pass draws here, reading the stencil buffer
//	rp.End()
//	...
//	r.Release(res) // after the submission has completed
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencil"
)

var (
	// ErrNotInitialized is returned when a destroyed renderer is used.
	ErrNotInitialized = errors.New("stencil/gpu: renderer is not initialized")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrProviderNotHAL = errors.New("stencil/gpu: provider does not expose HAL types")
)

// Renderer holds the GPU state of the stencil pass that is shared by every
// draw: shader module, layouts and pipelines. It does not own the device.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	shader hal.ShaderModule

	// coordLayout is group(0): the coordinate matrix uniform.
	coordLayout hal.BindGroupLayout
	// primitiveLayout is group(1): the read-only primitive table.
	primitiveLayout hal.BindGroupLayout
	pipeLayout      hal.PipelineLayout

	// nonZeroPipeline increments on front faces and decrements on back faces.
	nonZeroPipeline hal.RenderPipeline
	// evenOddPipeline inverts on both faces.
	evenOddPipeline hal.RenderPipeline
}

// NewRenderer compiles the stencil shader and creates both fill-rule
// pipelines on device.
func NewRenderer(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newRenderer(device, queue, o)
}

// NewFromProvider creates a renderer on a device shared by a host
// application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. The provider's surface
// format becomes the default color format.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("HalDevice is not hal.Device: %w", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("HalQueue is not hal.Queue: %w", ErrProviderNotHAL)
	}

	o := defaultOptions()
	o.colorFormat = provider.SurfaceFormat()
	for _, opt := range opts {
		opt(&o)
	}
	return newRenderer(device, queue, o)
}

func newRenderer(device hal.Device, queue hal.Queue, o options) (*Renderer, error) {
	r := &Renderer{
		device: device,
		queue:  queue,
		opts:   o,
	}
	if err := r.createPipelines(); err != nil {
		r.destroyPipelines()
		return nil, err
	}
	stencil.Logger().Debug("stencil/gpu: renderer ready",
		"label", o.label,
		"samples", o.sampleCount,
		"color", o.colorFormat,
		"depthStencil", o.stencilFormat)
	return r, nil
}

// Destroy releases the shader, layouts and pipelines. Safe to call more
// than once. Draw resources from Upload must be released separately.
func (r *Renderer) Destroy() {
	r.destroyPipelines()
}

// Device returns the device the renderer was created on.
func (r *Renderer) Device() hal.Device {
	return r.device
}

// Pipeline returns the stencil pipeline for rule, or nil after Destroy.
func (r *Renderer) Pipeline(rule FillRule) hal.RenderPipeline {
	if rule == EvenOdd {
		return r.evenOddPipeline
	}
	return r.nonZeroPipeline
}
