package stencil

import (
	"errors"
	"testing"
)

func TestBatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		batch   Batch
		wantErr error
	}{
		{"empty", Batch{}, nil},
		{"primitives only", Batch{Primitives: PrimitiveTable{{}}}, nil},
		{"valid", Batch{
			Vertices:   []Vertex{{PrimitiveIndex: 0}, {PrimitiveIndex: 1}},
			Primitives: PrimitiveTable{{}, {}},
		}, nil},
		{"no primitives", Batch{Vertices: []Vertex{{}}}, ErrEmptyTable},
		{"index past end", Batch{
			Vertices:   []Vertex{{PrimitiveIndex: 0}, {PrimitiveIndex: 2}},
			Primitives: PrimitiveTable{{}, {}},
		}, ErrPrimitiveIndexOutOfRange},
		{"max index", Batch{
			Vertices:   []Vertex{{PrimitiveIndex: ^uint32(0)}},
			Primitives: PrimitiveTable{{}},
		}, ErrPrimitiveIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.batch.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBatchBuild(t *testing.T) {
	b := NewBatch()
	if b.Coords != IdentityCoordMatrix() {
		t.Fatal("NewBatch coords are not identity")
	}

	square := b.AddPrimitive(Primitive{Transform: TranslateAffine(10, 0)})
	moved := b.AddPrimitive(Primitive{Transform: TranslateAffine(0, 10)})
	if square != 0 || moved != 1 {
		t.Fatalf("AddPrimitive indices = %d, %d, want 0, 1", square, moved)
	}

	b.AddTriangles(square, []float32{0, 0, 1, 0, 1, 1})
	b.AddTriangles(moved, []float32{0, 0, 1, 1, 0, 1, 5}) // trailing odd value ignored
	if len(b.Vertices) != 6 {
		t.Fatalf("len(Vertices) = %d, want 6", len(b.Vertices))
	}
	if b.Vertices[3].PrimitiveIndex != moved {
		t.Errorf("vertex 3 owner = %d, want %d", b.Vertices[3].PrimitiveIndex, moved)
	}

	clip, err := b.Transform()
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := [][4]float32{
		{10, 0, 0, 1}, {11, 0, 0, 1}, {11, 1, 0, 1},
		{0, 10, 0, 1}, {1, 11, 0, 1}, {0, 11, 0, 1},
	}
	for i := range want {
		if clip[i] != want[i] {
			t.Errorf("clip[%d] = %v, want %v", i, clip[i], want[i])
		}
	}
}

func TestBatchTransformRejectsInvalid(t *testing.T) {
	b := NewBatch()
	b.AddTriangles(3, []float32{0, 0, 1, 0, 0, 1})
	if _, err := b.Transform(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Transform() error = %v, want ErrEmptyTable", err)
	}
}
