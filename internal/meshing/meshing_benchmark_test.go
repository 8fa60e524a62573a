package meshing

import (
	"context"
	"testing"

	"github.com/jonny2027/voxelmesh/internal/voxel"
)

func benchmarkMeshChunk(b *testing.B, fill func(src *voxel.MapSource), opts Options) {
	src := voxel.NewMapSource()
	fill(src)

	m, err := NewMesher(32)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.MeshChunk(context.Background(), src, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMeshChunkTerrain(b *testing.B) {
	benchmarkMeshChunk(b, func(src *voxel.MapSource) {
		// A flat floor with a sphere on top, roughly half the chunk solid.
		src.FillBox(voxel.Box{Max: voxel.IntVec3{32, 8, 32}}, white)
		src.FillSphere(voxel.IntVec3{16, 14, 16}, 8, white)
	}, Options{Step: 1, Collision: true})
}

func BenchmarkMeshChunkSolid(b *testing.B) {
	benchmarkMeshChunk(b, func(src *voxel.MapSource) {
		src.FillBox(voxel.Box{Max: voxel.IntVec3{32, 32, 32}}, white)
	}, Options{Step: 1, Collision: true})
}

func BenchmarkMeshChunkCheckerboard(b *testing.B) {
	// Worst case for the 2D mesher: nothing merges.
	benchmarkMeshChunk(b, func(src *voxel.MapSource) {
		for z := int32(0); z < 32; z++ {
			for y := int32(0); y < 32; y++ {
				for x := int32(0); x < 32; x++ {
					if (x+y+z)%2 == 0 {
						src.Set(voxel.IntVec3{x, y, z}, white)
					}
				}
			}
		}
	}, Options{Step: 1})
}
