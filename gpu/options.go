//go:build !nogpu

package gpu

import "github.com/gogpu/gputypes"

// Option configures a Renderer or Target during creation.
//
// Example:
//
//	r, err := gpu.NewRenderer(device, queue,
//	    gpu.WithSampleCount(1),
//	    gpu.WithColorFormat(gputypes.TextureFormatRGBA8Unorm))
type Option func(*options)

type options struct {
	label         string
	sampleCount   uint32
	colorFormat   gputypes.TextureFormat
	stencilFormat gputypes.TextureFormat
}

// defaultSampleCount is the MSAA sample count used unless overridden.
const defaultSampleCount = 4

func defaultOptions() options {
	return options{
		label:         "stencil",
		sampleCount:   defaultSampleCount,
		colorFormat:   gputypes.TextureFormatBGRA8Unorm,
		stencilFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

// WithLabel sets the prefix of every GPU object label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithSampleCount sets the MSAA sample count of the pipelines and target.
// Values below 1 are treated as 1.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		o.sampleCount = max(n, 1)
	}
}

// WithColorFormat sets the color attachment format. The stencil pass never
// writes color, but the pipeline must match the render pass it is drawn in.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.colorFormat = f
	}
}

// WithStencilFormat sets the depth/stencil attachment format.
func WithStencilFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.stencilFormat = f
	}
}
