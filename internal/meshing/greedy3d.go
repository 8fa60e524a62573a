package meshing

import (
	"github.com/jonny2027/voxelmesh/internal/bitgrid"
	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// greedyMesh3D collapses the solid-voxel grid into a minimal set of
// axis-aligned boxes. The grid is consumed. A seed extends along X, then Y
// row by row, then Z slab by slab; the axis order is fixed, making the
// output deterministic.
func greedyMesh3D(g *bitgrid.Grid, n int, out *[]voxel.Box) {
	n2 := n * n

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; {
				if !g.TestAndClear(x + y*n + z*n2) {
					z++
					continue
				}

				sx := 1
				for x+sx < n && g.TestAndClear(x+sx+y*n+z*n2) {
					sx++
				}

				sy := 1
				for y+sy < n && g.TestAndClearRange(x+(y+sy)*n+z*n2, sx) {
					sy++
				}

				sz := 1
				for z+sz < n && testAndClearBlock(g, n, x, sx, y, sy, z+sz) {
					sz++
				}

				min := voxel.IntVec3{int32(x), int32(y), int32(z)}
				*out = append(*out, voxel.Box{
					Min: min,
					Max: min.Add(voxel.IntVec3{int32(sx), int32(sy), int32(sz)}),
				})

				z += sz
			}
		}
	}
}

// testAndClearBlock extends a box by one slab: the sx*sy rows at height z
// are consumed only if every one of them is entirely solid. The test pass
// runs to completion before any clearing so a partial slab leaves the grid
// untouched.
func testAndClearBlock(g *bitgrid.Grid, n, x, sx, y, sy, z int) bool {
	n2 := n * n
	for i := 0; i < sy; i++ {
		if !g.TestRange(x+(y+i)*n+z*n2, sx) {
			return false
		}
	}
	for i := 0; i < sy; i++ {
		g.SetRange(x+(y+i)*n+z*n2, sx, false)
	}
	return true
}
