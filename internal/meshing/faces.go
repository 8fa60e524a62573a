package meshing

import "github.com/jonny2027/voxelmesh/internal/profiling"

// Face directions. The layer axis of each face grid is the direction's
// normal axis; the (U, V) axes are chosen so that one layer occupies a
// contiguous index range.
//
//	dir  axes (U, V, Layer)   face index
//	0,1  (Y, Z, X)            y + z*n + x*n*n
//	2,3  (Z, X, Y)            z + x*n + y*n*n
//	4,5  (X, Y, Z)            x + y*n + z*n*n
const (
	DirNegX = iota
	DirPosX
	DirNegY
	DirPosY
	DirNegZ
	DirPosZ
)

// findFaces walks every chunk voxel and sets a face bit for each solid voxel
// whose neighbor in that direction is empty. The padded window supplies
// neighbors across chunk boundaries, so skirt faces are included.
func (m *Mesher) findFaces() {
	defer profiling.Track("meshing.FindFaces")()

	n := m.size
	n2 := n * n
	np := n + 2
	np2 := np * np

	for d := range m.faces {
		m.faces[d].Reset()
	}

	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			wi := m.windowIndex(0, y, z)
			for x := 0; x < n; x, wi = x+1, wi+1 {
				if !m.window.Test(wi) {
					continue
				}
				if !m.window.Test(wi - 1) {
					m.faces[DirNegX].Set(y+z*n+x*n2, true)
				}
				if !m.window.Test(wi + 1) {
					m.faces[DirPosX].Set(y+z*n+x*n2, true)
				}
				if !m.window.Test(wi - np) {
					m.faces[DirNegY].Set(z+x*n+y*n2, true)
				}
				if !m.window.Test(wi + np) {
					m.faces[DirPosY].Set(z+x*n+y*n2, true)
				}
				if !m.window.Test(wi - np2) {
					m.faces[DirNegZ].Set(x+y*n+z*n2, true)
				}
				if !m.window.Test(wi + np2) {
					m.faces[DirPosZ].Set(x+y*n+z*n2, true)
				}
			}
		}
	}
}
