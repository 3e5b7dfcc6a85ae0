package stencil

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// VertexStride is the byte stride of one interleaved vertex:
	// float32x2 position followed by a uint32 primitive index.
	VertexStride = 12

	// VertexPrimitiveIndexOffset is the byte offset of the primitive index
	// within a vertex.
	VertexPrimitiveIndexOffset = 8
)

// Vertex is a triangulated path vertex in its shape's local space.
type Vertex struct {
	Position       [2]float32
	PrimitiveIndex uint32
}

// EncodeVertices packs vertices into the interleaved vertex buffer layout.
func EncodeVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		b := buf[i*VertexStride:]
		binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.Position[0]))
		binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Position[1]))
		binary.LittleEndian.PutUint32(b[VertexPrimitiveIndexOffset:], v.PrimitiveIndex)
	}
	return buf
}

// DecodeVertices decodes the layout written by [EncodeVertices].
func DecodeVertices(b []byte) ([]Vertex, error) {
	if len(b)%VertexStride != 0 {
		return nil, fmt.Errorf("vertex buffer is %d bytes: %w", len(b), ErrShortBuffer)
	}
	out := make([]Vertex, len(b)/VertexStride)
	for i := range out {
		v := b[i*VertexStride:]
		out[i] = Vertex{
			Position: [2]float32{
				math.Float32frombits(binary.LittleEndian.Uint32(v[0:4])),
				math.Float32frombits(binary.LittleEndian.Uint32(v[4:8])),
			},
			PrimitiveIndex: binary.LittleEndian.Uint32(v[VertexPrimitiveIndexOffset:]),
		}
	}
	return out, nil
}

// TriangleCount returns how many whole triangles a triangle list of n
// vertices draws.
func TriangleCount(n int) int {
	return n / 3
}
