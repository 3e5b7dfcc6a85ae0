// Package stencil implements the geometry stage of a stencil-then-cover
// path renderer.
//
// Paths are triangulated elsewhere into vertices that carry a local-space
// position and the index of the primitive (shape instance) that owns them.
// For each vertex the stage resolves the owning primitive's affine
// transform, maps the position to canvas space, lifts it to (x, y, 0, 1)
// and multiplies by the draw's coordinate matrix to get a clip-space
// position. Fragments covered by the resulting triangles emit transparent
// black; the stencil operations configured on the pipeline turn that
// coverage into winding counts or parity bits, which a later cover pass
// consumes.
//
// # Data layout
//
// The GPU bindings used by the shader in package shaders are:
//
//	group(0) binding(0)  uniform  CoordMatrix       64 bytes, column-major mat4x4<f32>
//	group(1) binding(0)  storage  array<Primitive>  48 bytes per record
//	location(0)          vertex   position          float32x2, offset 0
//	location(1)          vertex   primitive index   uint32,    offset 8
//
// A Primitive record is a mat3x2<f32> transform (24 bytes) followed by six
// reserved 32-bit words. The reserved words are carried verbatim and never
// read by the stage.
//
// # CPU reference
//
// [TransformVertex] and [CoverageColor] are pure functions with the same
// semantics as the shader entry points. They are used to check batches
// before upload, to debug geometry without a GPU, and in tests.
//
// Index validity is the caller's contract. [Batch.Validate] checks it at the
// host boundary; the per-vertex path performs no checks.
//
// # Logging
//
// By default nothing is logged. Use [SetLogger] to route diagnostics from
// this package and package gpu to a [log/slog.Logger].
package stencil
