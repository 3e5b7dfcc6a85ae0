//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/stencil"
)

// DrawResources holds the GPU buffers and bind groups of one uploaded batch.
// They must outlive every submission that records a draw with them.
type DrawResources struct {
	vertBuf  hal.Buffer
	coordBuf hal.Buffer
	primBuf  hal.Buffer

	coordGroup hal.BindGroup
	primGroup  hal.BindGroup

	vertCount uint32
}

// VertexCount returns the number of vertices the draw submits.
func (d *DrawResources) VertexCount() uint32 {
	if d == nil {
		return 0
	}
	return d.vertCount
}

// Upload validates batch and creates its vertex buffer, coordinate matrix
// uniform, primitive table storage buffer and bind groups.
//
// An empty batch returns (nil, nil); recording a nil DrawResources is a
// no-op.
func (r *Renderer) Upload(batch *stencil.Batch) (*DrawResources, error) {
	if r.nonZeroPipeline == nil {
		return nil, ErrNotInitialized
	}
	if err := batch.Validate(); err != nil {
		stencil.Logger().Warn("stencil/gpu: batch rejected", "err", err)
		return nil, err
	}
	if len(batch.Vertices) == 0 {
		return nil, nil //nolint:nilnil // empty batch is a valid no-op, not an error
	}

	vertexData := stencil.EncodeVertices(batch.Vertices)
	coordData := batch.Coords.Bytes()
	primData := batch.Primitives.Bytes()

	res := &DrawResources{
		vertCount: uint32(len(batch.Vertices)), //nolint:gosec // vertex count is bounded by buffer limits
	}
	var err error
	if res.vertBuf, err = r.createAndUploadBuffer(r.opts.label+"_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return nil, err
	}
	if res.coordBuf, err = r.createAndUploadBuffer(r.opts.label+"_coord", coordData,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst); err != nil {
		r.Release(res)
		return nil, err
	}
	if res.primBuf, err = r.createAndUploadBuffer(r.opts.label+"_primitives", primData,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst); err != nil {
		r.Release(res)
		return nil, err
	}

	res.coordGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.opts.label + "_coord_bind",
		Layout: r.coordLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.coordBuf.NativeHandle(), Offset: 0, Size: stencil.CoordMatrixSize,
			}},
		},
	})
	if err != nil {
		r.Release(res)
		return nil, fmt.Errorf("create coord matrix bind group: %w", err)
	}

	res.primGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.opts.label + "_primitive_bind",
		Layout: r.primitiveLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.primBuf.NativeHandle(), Offset: 0, Size: 0, // 0 = entire buffer
			}},
		},
	})
	if err != nil {
		r.Release(res)
		return nil, fmt.Errorf("create primitive table bind group: %w", err)
	}

	stencil.Logger().Debug("stencil/gpu: batch uploaded",
		"vertices", res.vertCount,
		"triangles", stencil.TriangleCount(len(batch.Vertices)),
		"primitives", len(batch.Primitives),
		"bytes", len(vertexData)+len(coordData)+len(primData))
	return res, nil
}

// RecordDraw records the stencil draw of res into rp using the pipeline
// for rule. The render pass must have a depth/stencil attachment in the
// renderer's stencil format. No-op if res is nil or empty.
func (r *Renderer) RecordDraw(rp hal.RenderPassEncoder, res *DrawResources, rule FillRule) {
	if res.VertexCount() == 0 {
		return
	}
	pipeline := r.Pipeline(rule)
	if pipeline == nil {
		stencil.Logger().Warn("stencil/gpu: draw skipped, renderer destroyed")
		return
	}
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, res.coordGroup, nil)
	rp.SetBindGroup(1, res.primGroup, nil)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	rp.Draw(res.vertCount, 1, 0, 0)
}

// held reports whether any GPU object is still owned by d.
func (d *DrawResources) held() bool {
	return d.vertBuf != nil || d.coordBuf != nil || d.primBuf != nil ||
		d.coordGroup != nil || d.primGroup != nil
}

// Release destroys the buffers and bind groups of res. Safe on nil and on
// partially built resources.
func (r *Renderer) Release(res *DrawResources) {
	if res == nil {
		return
	}
	if r.device == nil {
		if res.held() {
			stencil.Logger().Warn("stencil/gpu: release without device, resources leaked",
				"vertices", res.vertCount)
		}
		return
	}
	if res.primGroup != nil {
		r.device.DestroyBindGroup(res.primGroup)
		res.primGroup = nil
	}
	if res.coordGroup != nil {
		r.device.DestroyBindGroup(res.coordGroup)
		res.coordGroup = nil
	}
	if res.primBuf != nil {
		r.device.DestroyBuffer(res.primBuf)
		res.primBuf = nil
	}
	if res.coordBuf != nil {
		r.device.DestroyBuffer(res.coordBuf)
		res.coordBuf = nil
	}
	if res.vertBuf != nil {
		r.device.DestroyBuffer(res.vertBuf)
		res.vertBuf = nil
	}
	res.vertCount = 0
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
