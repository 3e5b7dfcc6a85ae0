package stencil

import "fmt"

// Batch is everything one stencil draw reads: the vertex list, the
// primitive table and the coordinate matrix. None of it may change while a
// draw that references it is in flight.
type Batch struct {
	Vertices   []Vertex
	Primitives PrimitiveTable
	Coords     CoordMatrix
}

// NewBatch returns an empty batch with an identity coordinate matrix.
func NewBatch() *Batch {
	return &Batch{Coords: IdentityCoordMatrix()}
}

// AddPrimitive appends a primitive and returns its index.
func (b *Batch) AddPrimitive(p Primitive) uint32 {
	b.Primitives = append(b.Primitives, p)
	return uint32(len(b.Primitives) - 1) //nolint:gosec // table length is bounded by GPU buffer limits
}

// AddTriangles appends local-space positions as vertices owned by
// primitive idx. Positions are x, y pairs; every three pairs form one
// triangle.
func (b *Batch) AddTriangles(idx uint32, xy []float32) {
	for i := 0; i+1 < len(xy); i += 2 {
		b.Vertices = append(b.Vertices, Vertex{
			Position:       [2]float32{xy[i], xy[i+1]},
			PrimitiveIndex: idx,
		})
	}
}

// Validate checks that every vertex references a primitive in the table.
// It is the only place index validity is checked.
func (b *Batch) Validate() error {
	if len(b.Vertices) == 0 {
		return nil
	}
	if len(b.Primitives) == 0 {
		return ErrEmptyTable
	}
	n := uint32(len(b.Primitives)) //nolint:gosec // table length is bounded by GPU buffer limits
	for i, v := range b.Vertices {
		if v.PrimitiveIndex >= n {
			return fmt.Errorf("vertex %d references primitive %d of %d: %w",
				i, v.PrimitiveIndex, n, ErrPrimitiveIndexOutOfRange)
		}
	}
	return nil
}

// Transform validates b and returns the clip position of every vertex.
func (b *Batch) Transform() ([][4]float32, error) {
	if err := b.Validate(); err != nil {
		Logger().Warn("stencil: batch rejected", "err", err)
		return nil, err
	}
	Logger().Debug("stencil: transform batch",
		"vertices", len(b.Vertices),
		"triangles", TriangleCount(len(b.Vertices)),
		"primitives", len(b.Primitives))
	return TransformVertices(make([][4]float32, 0, len(b.Vertices)), b.Vertices, b.Primitives, b.Coords), nil
}
