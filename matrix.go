package stencil

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// CoordMatrixSize is the byte size of an encoded CoordMatrix.
const CoordMatrixSize = 64

// CoordMatrix is the canvas-to-clip transform shared by every vertex of a
// draw. Elements are stored column-major, matching WGSL mat4x4<f32>:
// element (row r, column c) is at index c*4+r.
type CoordMatrix [16]float32

// IdentityCoordMatrix returns the 4x4 identity.
func IdentityCoordMatrix() CoordMatrix {
	return CoordMatrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns the matrix that maps a y-down canvas of the given size to
// clip space: (0, 0) lands on (-1, 1) and (width, height) on (1, -1).
// width and height must be non-zero; a zero size yields infinite scale
// terms.
func Ortho(width, height float32) CoordMatrix {
	return CoordMatrix{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m CoordMatrix) At(r, c int) float32 {
	return m[c*4+r]
}

// Apply multiplies m by the column vector v.
// Products are rounded before summation, see [Affine2D.Apply].
func (m CoordMatrix) Apply(v [4]float32) [4]float32 {
	var out [4]float32
	for r := range 4 {
		out[r] = float32(m[r]*v[0]) +
			float32(m[4+r]*v[1]) +
			float32(m[8+r]*v[2]) +
			float32(m[12+r]*v[3])
	}
	return out
}

// Mat4 converts m to the row-major layout of x/image.
func (m CoordMatrix) Mat4() f32.Mat4 {
	var out f32.Mat4
	for r := range 4 {
		for c := range 4 {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// CoordMatrixFromMat4 converts a row-major x/image matrix.
func CoordMatrixFromMat4(in f32.Mat4) CoordMatrix {
	var m CoordMatrix
	for r := range 4 {
		for c := range 4 {
			m[c*4+r] = in[r*4+c]
		}
	}
	return m
}

// Bytes encodes m as 64 little-endian bytes for the uniform binding.
func (m CoordMatrix) Bytes() []byte {
	buf := make([]byte, CoordMatrixSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// DecodeCoordMatrix decodes the layout written by [CoordMatrix.Bytes].
func DecodeCoordMatrix(b []byte) (CoordMatrix, error) {
	var m CoordMatrix
	if len(b) != CoordMatrixSize {
		return m, fmt.Errorf("coord matrix is %d bytes, want %d: %w", len(b), CoordMatrixSize, ErrShortBuffer)
	}
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return m, nil
}
