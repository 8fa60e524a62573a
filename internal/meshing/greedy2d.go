package meshing

import "github.com/jonny2027/voxelmesh/internal/bitgrid"

// greedyMesh2D collapses one direction's face grid into a minimal set of
// rectangles, layer by layer. The grid is consumed: every emitted quad
// corresponds to a rectangle of bits that are 1 on entry and 0 on exit.
//
// Merging is deterministic: a seed extends along U as far as possible, then
// along V row by row. Row extension is all-or-nothing; a row that is not
// entirely solid over the quad's width is left untouched.
func greedyMesh2D(faces *bitgrid.Grid, n int, out *[]Quad) {
	for layer := 0; layer < n; layer++ {
		base := layer * n * n
		for u := 0; u < n; u++ {
			for v := 0; v < n; {
				// The seed bit is consumed here, so the seed row ends up
				// cleared along with the rest of the quad.
				if !faces.TestAndClear(base + v*n + u) {
					v++
					continue
				}

				width := 1
				for u+width < n && faces.TestAndClear(base+v*n+u+width) {
					width++
				}

				height := 1
				for v+height < n && faces.TestAndClearRange(base+(v+height)*n+u, width) {
					height++
				}

				*out = append(*out, Quad{
					Layer:  uint32(layer),
					StartU: uint32(u),
					StartV: uint32(v),
					SizeU:  uint32(width),
					SizeV:  uint32(height),
				})

				v += height
			}
		}
	}
}
