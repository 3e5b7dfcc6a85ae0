package stencil

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// ReservedWords is the number of reserved 32-bit words after the
	// transform in each primitive record.
	ReservedWords = 6

	// PrimitiveSize is the byte size of one encoded primitive record:
	// 24 bytes of transform plus 24 bytes reserved.
	PrimitiveSize = 48

	// primitiveReservedOffset is where the reserved block starts in a record.
	primitiveReservedOffset = 24
)

// Primitive is the per-shape state read by the stencil stage.
//
// Reserved keeps the record at its 48-byte GPU layout. Its contents are
// copied through encoding untouched and never affect the computed position.
type Primitive struct {
	Transform Affine2D
	Reserved  [ReservedWords]uint32
}

// PutBytes encodes p into the first PrimitiveSize bytes of b.
// It panics if b is shorter than PrimitiveSize.
func (p Primitive) PutBytes(b []byte) {
	_ = b[PrimitiveSize-1]
	t := p.Transform
	for i, v := range [6]float32{t.R1[0], t.R1[1], t.R2[0], t.R2[1], t.R3[0], t.R3[1]} {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	for i, w := range p.Reserved {
		binary.LittleEndian.PutUint32(b[primitiveReservedOffset+i*4:], w)
	}
}

func decodePrimitive(b []byte) Primitive {
	f := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	var p Primitive
	p.Transform = Affine2D{
		R1: [2]float32{f(0), f(1)},
		R2: [2]float32{f(2), f(3)},
		R3: [2]float32{f(4), f(5)},
	}
	for i := range p.Reserved {
		p.Reserved[i] = binary.LittleEndian.Uint32(b[primitiveReservedOffset+i*4:])
	}
	return p
}

// PrimitiveTable is the ordered list of primitives for one draw. A vertex
// refers to its primitive by position in the table.
type PrimitiveTable []Primitive

// Bytes encodes the table as consecutive 48-byte records for the storage
// binding.
func (t PrimitiveTable) Bytes() []byte {
	buf := make([]byte, len(t)*PrimitiveSize)
	for i, p := range t {
		p.PutBytes(buf[i*PrimitiveSize:])
	}
	return buf
}

// DecodePrimitiveTable decodes the layout written by [PrimitiveTable.Bytes].
func DecodePrimitiveTable(b []byte) (PrimitiveTable, error) {
	if len(b)%PrimitiveSize != 0 {
		return nil, fmt.Errorf("primitive table is %d bytes: %w", len(b), ErrShortBuffer)
	}
	t := make(PrimitiveTable, len(b)/PrimitiveSize)
	for i := range t {
		t[i] = decodePrimitive(b[i*PrimitiveSize:])
	}
	return t, nil
}
