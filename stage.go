package stencil

import (
	"runtime"
	"sync"
)

// parallelMinVertices is the smallest batch TransformVerticesParallel splits
// across goroutines. Smaller batches run on the calling goroutine.
const parallelMinVertices = 4096

// TransformVertex maps one vertex to clip space:
//
//	canvas = table[v.PrimitiveIndex].Transform applied to (x, y, 1)
//	clip   = m * (canvas.x, canvas.y, 0, 1)
//
// It mirrors vs_main in the stencil shader. The index is not checked beyond
// Go's own bounds check, which panics; validate batches with [Batch.Validate]
// before mapping them.
func TransformVertex(v Vertex, table PrimitiveTable, m CoordMatrix) [4]float32 {
	t := table[v.PrimitiveIndex].Transform
	cx, cy := t.Apply(v.Position[0], v.Position[1])
	return m.Apply([4]float32{cx, cy, 0, 1})
}

// CoverageColor is the output of the stencil pass fragment stage. It is
// always transparent black; the pass exists only for its stencil writes.
func CoverageColor() [4]float32 {
	return [4]float32{}
}

// TransformVertices appends the clip position of every vertex to dst and
// returns the extended slice.
func TransformVertices(dst [][4]float32, vertices []Vertex, table PrimitiveTable, m CoordMatrix) [][4]float32 {
	for _, v := range vertices {
		dst = append(dst, TransformVertex(v, table, m))
	}
	return dst
}

// TransformVerticesParallel is TransformVertices split across workers
// goroutines. Each worker writes a disjoint range of the result and only
// reads the table and matrix, so the output is identical to the sequential
// version. If workers is 0 or negative, GOMAXPROCS is used.
func TransformVerticesParallel(vertices []Vertex, table PrimitiveTable, m CoordMatrix, workers int) [][4]float32 {
	out := make([][4]float32, len(vertices))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(vertices) < parallelMinVertices {
		for i, v := range vertices {
			out[i] = TransformVertex(v, table, m)
		}
		return out
	}

	chunk := (len(vertices) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(vertices); start += chunk {
		end := min(start+chunk, len(vertices))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = TransformVertex(vertices[i], table, m)
			}
		}(start, end)
	}
	wg.Wait()
	return out
}
