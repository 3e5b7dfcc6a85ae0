package stencil

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Affine2D is a 2D affine transform stored as three 2-component rows of a
// 3x2 matrix. A point (x, y) is treated as the row vector (x, y, 1):
//
//	x' = R1[0]*x + R2[0]*y + R3[0]
//	y' = R1[1]*x + R2[1]*y + R3[1]
//
// R1 and R2 hold the linear part and R3 the translation. In WGSL the three
// rows are the columns of a mat3x2<f32>. Any values are legal, including
// singular maps.
type Affine2D struct {
	R1, R2, R3 [2]float32
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine2D {
	return Affine2D{
		R1: [2]float32{1, 0},
		R2: [2]float32{0, 1},
	}
}

// TranslateAffine creates a translation.
func TranslateAffine(x, y float32) Affine2D {
	a := IdentityAffine()
	a.R3 = [2]float32{x, y}
	return a
}

// ScaleAffine creates a scale about the origin.
func ScaleAffine(x, y float32) Affine2D {
	return Affine2D{
		R1: [2]float32{x, 0},
		R2: [2]float32{0, y},
	}
}

// RotateAffine creates a rotation about the origin (angle in radians).
func RotateAffine(angle float64) Affine2D {
	sin, cos := math.Sincos(angle)
	return Affine2D{
		R1: [2]float32{float32(cos), float32(sin)},
		R2: [2]float32{float32(-sin), float32(cos)},
	}
}

// SkewAffine creates a shear: x' = x + sx*y, y' = sy*x + y.
func SkewAffine(sx, sy float32) Affine2D {
	return Affine2D{
		R1: [2]float32{1, sy},
		R2: [2]float32{sx, 1},
	}
}

// Apply maps the point (x, y) through the transform.
//
// Every product is rounded to float32 before it is summed. The explicit
// conversions stop the compiler from fusing multiply-adds, so the result is
// the same on every architecture.
func (a Affine2D) Apply(x, y float32) (float32, float32) {
	cx := float32(a.R1[0]*x) + float32(a.R2[0]*y) + a.R3[0]
	cy := float32(a.R1[1]*x) + float32(a.R2[1]*y) + a.R3[1]
	return cx, cy
}

// Then returns the transform that applies a first and b second.
func (a Affine2D) Then(b Affine2D) Affine2D {
	row := func(r [2]float32) [2]float32 {
		return [2]float32{
			r[0]*b.R1[0] + r[1]*b.R2[0],
			r[0]*b.R1[1] + r[1]*b.R2[1],
		}
	}
	t := row(a.R3)
	return Affine2D{
		R1: row(a.R1),
		R2: row(a.R2),
		R3: [2]float32{t[0] + b.R3[0], t[1] + b.R3[1]},
	}
}

// IsIdentity reports whether a is exactly the identity transform.
func (a Affine2D) IsIdentity() bool {
	return a == IdentityAffine()
}

// Aff3 converts a to the row-major [a b c; d e f] layout of x/image.
func (a Affine2D) Aff3() f32.Aff3 {
	return f32.Aff3{
		a.R1[0], a.R2[0], a.R3[0],
		a.R1[1], a.R2[1], a.R3[1],
	}
}

// AffineFromAff3 converts a row-major x/image affine matrix.
func AffineFromAff3(m f32.Aff3) Affine2D {
	return Affine2D{
		R1: [2]float32{m[0], m[3]},
		R2: [2]float32{m[1], m[4]},
		R3: [2]float32{m[2], m[5]},
	}
}
