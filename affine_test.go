package stencil

import (
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name   string
		a      Affine2D
		x, y   float32
		wx, wy float32
	}{
		{"identity", IdentityAffine(), 3, 4, 3, 4},
		{"translate", TranslateAffine(5, 7), 0, 0, 5, 7},
		{"scale", ScaleAffine(2, 3), 4, 5, 8, 15},
		{"rotate 90", RotateAffine(math.Pi / 2), 1, 0, 0, 1},
		{"rotate 180", RotateAffine(math.Pi), 1, 2, -1, -2},
		{"skew x", SkewAffine(0.5, 0), 2, 4, 4, 4},
		{"skew y", SkewAffine(0, 0.5), 2, 4, 2, 5},
		{"singular", Affine2D{R1: [2]float32{1, 1}, R2: [2]float32{1, 1}}, 2, 3, 5, 5},
		{"zero", Affine2D{}, 9, 9, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.a.Apply(tt.x, tt.y)
			if !approx(x, tt.wx) || !approx(y, tt.wy) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestAffineThen(t *testing.T) {
	scaleThenMove := ScaleAffine(2, 2).Then(TranslateAffine(1, 1))
	if x, y := scaleThenMove.Apply(1, 1); x != 3 || y != 3 {
		t.Errorf("scale then translate: (%v, %v), want (3, 3)", x, y)
	}

	moveThenScale := TranslateAffine(1, 1).Then(ScaleAffine(2, 2))
	if x, y := moveThenScale.Apply(1, 1); x != 4 || y != 4 {
		t.Errorf("translate then scale: (%v, %v), want (4, 4)", x, y)
	}

	a := RotateAffine(0.7).Then(SkewAffine(0.2, 0.1)).Then(TranslateAffine(-3, 8))
	if got := a.Then(IdentityAffine()); got != a {
		t.Errorf("a.Then(identity) = %+v, want %+v", got, a)
	}
	if got := IdentityAffine().Then(a); got != a {
		t.Errorf("identity.Then(a) = %+v, want %+v", got, a)
	}
}

func TestAffineIsIdentity(t *testing.T) {
	if !IdentityAffine().IsIdentity() {
		t.Error("IdentityAffine().IsIdentity() = false")
	}
	if !ScaleAffine(1, 1).IsIdentity() {
		t.Error("ScaleAffine(1, 1).IsIdentity() = false")
	}
	if TranslateAffine(0, 1).IsIdentity() {
		t.Error("TranslateAffine(0, 1).IsIdentity() = true")
	}
	if (Affine2D{}).IsIdentity() {
		t.Error("zero transform reported as identity")
	}
}

func TestAffineAff3(t *testing.T) {
	a := Affine2D{
		R1: [2]float32{1, 4},
		R2: [2]float32{2, 5},
		R3: [2]float32{3, 6},
	}
	want := f32.Aff3{1, 2, 3, 4, 5, 6}
	if got := a.Aff3(); got != want {
		t.Errorf("Aff3() = %v, want %v", got, want)
	}
	if got := AffineFromAff3(want); got != a {
		t.Errorf("AffineFromAff3() = %+v, want %+v", got, a)
	}

	// x' = a*x + b*y + c, y' = d*x + e*y + f in the x/image layout.
	x, y := AffineFromAff3(f32.Aff3{2, 0, 10, 0, 3, 20}).Apply(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Apply via Aff3 = (%v, %v), want (12, 23)", x, y)
	}
}
