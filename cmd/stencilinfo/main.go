// Command stencilinfo inspects stencil pass inputs without a GPU.
//
// It prints the binding layout, optionally compiles the shader to SPIR-V,
// and maps vertices through the CPU reference of the vertex stage. Vertex
// and primitive data are read from raw binary files in the GPU buffer
// layout; without them a small demo batch is used.
//
//	stencilinfo -width 800 -height 600 -table prims.bin -vertices verts.bin
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/stencil"
	"github.com/gogpu/stencil/shaders"
)

func main() {
	var (
		width    = flag.Float64("width", 800, "canvas width")
		height   = flag.Float64("height", 600, "canvas height")
		table    = flag.String("table", "", "primitive table file (48-byte records)")
		vertices = flag.String("vertices", "", "vertex buffer file (12-byte vertices)")
		spirv    = flag.Bool("spirv", false, "compile the shader to SPIR-V and report its size")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		stencil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	batch, err := loadBatch(*table, *vertices)
	if err != nil {
		log.Fatalf("Failed to load batch: %v", err)
	}
	batch.Coords = stencil.Ortho(float32(*width), float32(*height))

	printLayout(os.Stdout)

	if *spirv {
		words, err := shaders.CompileSPIRV()
		if err != nil {
			log.Fatalf("Failed to compile shader: %v", err)
		}
		fmt.Printf("spir-v: %d words\n", len(words))
	}

	clip, err := batch.Transform()
	if err != nil {
		log.Fatalf("Invalid batch: %v", err)
	}
	fmt.Printf("\n%d vertices, %d triangles, %d primitives\n",
		len(batch.Vertices), stencil.TriangleCount(len(batch.Vertices)), len(batch.Primitives))
	for i, v := range batch.Vertices {
		c := clip[i]
		fmt.Printf("%4d  prim %-3d local (%8.2f, %8.2f)  clip (%7.4f, %7.4f, %g, %g)\n",
			i, v.PrimitiveIndex, v.Position[0], v.Position[1], c[0], c[1], c[2], c[3])
	}
}

func printLayout(w io.Writer) {
	fmt.Fprintf(w, "group(%d) binding(%d)  uniform  coord matrix     %d bytes\n",
		shaders.CoordMatrixGroup, shaders.CoordMatrixBinding, stencil.CoordMatrixSize)
	fmt.Fprintf(w, "group(%d) binding(%d)  storage  primitive table  %d bytes/record (%d reserved words)\n",
		shaders.PrimitivesGroup, shaders.PrimitivesBinding, stencil.PrimitiveSize, stencil.ReservedWords)
	fmt.Fprintf(w, "location(%d)          vertex   position         float32x2 @0\n", shaders.PositionLocation)
	fmt.Fprintf(w, "location(%d)          vertex   primitive index  uint32 @%d, stride %d\n",
		shaders.PrimitiveIndexLocation, stencil.VertexPrimitiveIndexOffset, stencil.VertexStride)
}

func loadBatch(tablePath, verticesPath string) (*stencil.Batch, error) {
	if tablePath == "" && verticesPath == "" {
		return demoBatch(), nil
	}
	if tablePath == "" || verticesPath == "" {
		return nil, fmt.Errorf("-table and -vertices must be given together")
	}

	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, err
	}
	table, err := stencil.DecodePrimitiveTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tablePath, err)
	}

	data, err = os.ReadFile(verticesPath)
	if err != nil {
		return nil, err
	}
	verts, err := stencil.DecodeVertices(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", verticesPath, err)
	}

	b := stencil.NewBatch()
	b.Primitives = table
	b.Vertices = verts
	return b, nil
}

// demoBatch is a unit square fan drawn twice: once scaled and moved, once
// rotated about the canvas center.
func demoBatch() *stencil.Batch {
	b := stencil.NewBatch()
	square := []float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	moved := b.AddPrimitive(stencil.Primitive{
		Transform: stencil.ScaleAffine(100, 100).Then(stencil.TranslateAffine(50, 50)),
	})
	rotated := b.AddPrimitive(stencil.Primitive{
		Transform: stencil.TranslateAffine(-0.5, -0.5).
			Then(stencil.ScaleAffine(120, 120)).
			Then(stencil.RotateAffine(0.5)).
			Then(stencil.TranslateAffine(400, 300)),
	})
	b.AddTriangles(moved, square)
	b.AddTriangles(rotated, square)
	return b
}
