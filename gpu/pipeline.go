//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencil"
	"github.com/gogpu/stencil/shaders"
)

// vertexBufferLayout is the interleaved vertex layout read by vs_main:
// float32x2 position at location(0), uint32 primitive index at location(1).
func vertexBufferLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: stencil.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{
					Format:         gputypes.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: shaders.PositionLocation,
				},
				{
					Format:         gputypes.VertexFormatUint32,
					Offset:         stencil.VertexPrimitiveIndexOffset,
					ShaderLocation: shaders.PrimitiveIndexLocation,
				},
			},
		},
	}
}

// createPipelines compiles the stencil shader and creates the bind group
// layouts, the pipeline layout and one render pipeline per fill rule.
// On error the caller destroys whatever was created.
func (r *Renderer) createPipelines() error {
	if shaders.StencilWGSL() == "" {
		return fmt.Errorf("stencil shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  r.opts.label + "_shader",
		Source: hal.ShaderSource{WGSL: shaders.StencilWGSL()},
	})
	if err != nil {
		return fmt.Errorf("compile stencil shader: %w", err)
	}
	r.shader = shader

	// group(0): coordinate matrix, read by the vertex stage only.
	coordLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.opts.label + "_coord_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    shaders.CoordMatrixBinding,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create coord matrix bind group layout: %w", err)
	}
	r.coordLayout = coordLayout

	// group(1): primitive table, read-only storage.
	primitiveLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.opts.label + "_primitive_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    shaders.PrimitivesBinding,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create primitive table bind group layout: %w", err)
	}
	r.primitiveLayout = primitiveLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            r.opts.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.coordLayout, r.primitiveLayout},
	})
	if err != nil {
		return fmt.Errorf("create stencil pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	nonZero, err := r.createStencilPipeline(NonZero)
	if err != nil {
		return err
	}
	r.nonZeroPipeline = nonZero

	evenOdd, err := r.createStencilPipeline(EvenOdd)
	if err != nil {
		return err
	}
	r.evenOddPipeline = evenOdd

	stencil.Logger().Debug("stencil/gpu: pipelines created", "label", r.opts.label)
	return nil
}

// createStencilPipeline creates the pipeline for one fill rule. Both rules
// share the shader and layout and differ only in their stencil operations.
// Color writes are masked off; fs_main exists because some backends reject
// pipelines without a fragment stage.
func (r *Renderer) createStencilPipeline(rule FillRule) (hal.RenderPipeline, error) {
	front, back := rule.stencilFaces()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s_pipeline", r.opts.label, rule),
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: shaders.VertexEntryPoint,
			Buffers:    vertexBufferLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.opts.colorFormat,
					WriteMask: gputypes.ColorWriteMaskNone,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            r.opts.stencilFormat,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront:      front,
			StencilBack:       back,
			StencilReadMask:   0xFF,
			StencilWriteMask:  0xFF,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.opts.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		// No culling: back faces carry the negative winding.
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s stencil pipeline: %w", rule, err)
	}
	return pipeline, nil
}

// destroyPipelines releases pipeline resources in reverse creation order.
// Safe on a renderer with no or partially created pipelines.
func (r *Renderer) destroyPipelines() {
	if r.device == nil {
		return
	}
	if r.evenOddPipeline != nil {
		r.device.DestroyRenderPipeline(r.evenOddPipeline)
		r.evenOddPipeline = nil
	}
	if r.nonZeroPipeline != nil {
		r.device.DestroyRenderPipeline(r.nonZeroPipeline)
		r.nonZeroPipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.primitiveLayout != nil {
		r.device.DestroyBindGroupLayout(r.primitiveLayout)
		r.primitiveLayout = nil
	}
	if r.coordLayout != nil {
		r.device.DestroyBindGroupLayout(r.coordLayout)
		r.coordLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
