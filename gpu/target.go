//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencil"
)

// Target is a color texture and depth/stencil texture pair sized for a
// canvas, with the sample count and formats the stencil pipelines expect.
// Textures are allocated by Ensure and recreated when the size changes.
type Target struct {
	device hal.Device
	opts   options

	colorTex  hal.Texture
	colorView hal.TextureView

	// stencilTex holds the per-pixel coverage counts. Its depth aspect is
	// unused but required by the format.
	stencilTex  hal.Texture
	stencilView hal.TextureView

	width, height uint32
}

// NewTarget creates an empty target. Options must match the renderer the
// target is drawn with.
func NewTarget(device hal.Device, opts ...Option) *Target {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Target{device: device, opts: o}
}

// Ensure allocates textures of the given size. No-op when the size is
// unchanged. On error, partially created textures are released.
func (t *Target) Ensure(width, height uint32) error {
	if t.width == width && t.height == height && t.colorTex != nil {
		return nil
	}
	t.destroyTextures()

	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	colorTex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.opts.label + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   t.opts.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        t.opts.colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	t.colorTex = colorTex

	colorView, err := t.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: t.opts.label + "_color_view",
	})
	if err != nil {
		t.destroyTextures()
		return fmt.Errorf("create color texture view: %w", err)
	}
	t.colorView = colorView

	stencilTex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.opts.label + "_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   t.opts.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        t.opts.stencilFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroyTextures()
		return fmt.Errorf("create depth/stencil texture: %w", err)
	}
	t.stencilTex = stencilTex

	stencilView, err := t.device.CreateTextureView(stencilTex, &hal.TextureViewDescriptor{
		Label: t.opts.label + "_depth_stencil_view",
	})
	if err != nil {
		t.destroyTextures()
		return fmt.Errorf("create depth/stencil texture view: %w", err)
	}
	t.stencilView = stencilView

	t.width = width
	t.height = height
	return nil
}

// RenderPassDescriptor returns a pass that clears color to transparent and
// stencil to zero and keeps the stencil contents for a following cover
// pass. Returns nil before Ensure.
func (t *Target) RenderPassDescriptor() *hal.RenderPassDescriptor {
	if t.colorView == nil || t.stencilView == nil {
		return nil
	}
	return &hal.RenderPassDescriptor{
		Label: t.opts.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       t.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	}
}

// Size returns the current texture size, or (0, 0) before Ensure.
func (t *Target) Size() (uint32, uint32) {
	return t.width, t.height
}

// Destroy releases the textures. Safe to call more than once.
func (t *Target) Destroy() {
	t.destroyTextures()
}

func (t *Target) destroyTextures() {
	if t.device == nil {
		if t.colorTex != nil || t.stencilTex != nil {
			stencil.Logger().Warn("stencil/gpu: target released without device, textures leaked",
				"width", t.width, "height", t.height)
		}
		return
	}
	if t.stencilView != nil {
		t.device.DestroyTextureView(t.stencilView)
		t.stencilView = nil
	}
	if t.stencilTex != nil {
		t.device.DestroyTexture(t.stencilTex)
		t.stencilTex = nil
	}
	if t.colorView != nil {
		t.device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		t.device.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
	t.width = 0
	t.height = 0
}
