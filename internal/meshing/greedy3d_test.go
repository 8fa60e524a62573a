package meshing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonny2027/voxelmesh/internal/bitgrid"
	"github.com/jonny2027/voxelmesh/internal/voxel"
)

func setVoxel(g *bitgrid.Grid, n int, x, y, z int32) {
	g.Set(int(x)+int(y)*n+int(z)*n*n, true)
}

func TestGreedy3DFullCube(t *testing.T) {
	const n = 8
	g := bitgrid.New(n * n * n)
	g.SetRange(0, n*n*n, true)

	var boxes []voxel.Box
	greedyMesh3D(g, n, &boxes)

	require.Len(t, boxes, 1)
	assert.Equal(t, voxel.Box{Max: voxel.IntVec3{n, n, n}}, boxes[0])
	assert.Equal(t, 0, g.Count())
}

func TestGreedy3DPartialSlabLeavesGridIntact(t *testing.T) {
	// A 2x2x2 cube plus one voxel at (0,0,2). Extending the cube to z=2
	// tests a partial slab; the two-phase block test must not consume the
	// lone voxel during the failed extension.
	const n = 4
	g := bitgrid.New(n * n * n)
	for z := int32(0); z < 2; z++ {
		for y := int32(0); y < 2; y++ {
			for x := int32(0); x < 2; x++ {
				setVoxel(g, n, x, y, z)
			}
		}
	}
	setVoxel(g, n, 0, 0, 2)

	var boxes []voxel.Box
	greedyMesh3D(g, n, &boxes)

	require.Len(t, boxes, 2)
	assert.Equal(t, voxel.Box{Max: voxel.IntVec3{2, 2, 2}}, boxes[0])
	assert.Equal(t, voxel.Box{
		Min: voxel.IntVec3{0, 0, 2},
		Max: voxel.IntVec3{1, 1, 3},
	}, boxes[1])
	assert.Equal(t, 0, g.Count())
}

func TestGreedy3DAxisOrder(t *testing.T) {
	// An L-shaped solid: a 2x1x1 bar plus one voxel above the first column.
	// X is maximized first, so the bar merges before the vertical pair.
	const n = 4
	g := bitgrid.New(n * n * n)
	setVoxel(g, n, 0, 0, 0)
	setVoxel(g, n, 1, 0, 0)
	setVoxel(g, n, 0, 1, 0)

	var boxes []voxel.Box
	greedyMesh3D(g, n, &boxes)

	require.Len(t, boxes, 2)
	assert.Equal(t, voxel.Box{Max: voxel.IntVec3{2, 1, 1}}, boxes[0])
	assert.Equal(t, voxel.Box{
		Min: voxel.IntVec3{0, 1, 0},
		Max: voxel.IntVec3{1, 2, 1},
	}, boxes[1])
}

func TestGreedy3DCoverageRandom(t *testing.T) {
	// Property: boxes are pairwise disjoint and their union equals the set
	// of solid voxels.
	const n = 8
	rng := rand.New(rand.NewSource(7))
	g := bitgrid.New(n * n * n)
	for i := 0; i < g.Len(); i++ {
		g.Set(i, rng.Intn(3) != 0)
	}
	want := cloneGrid(g)

	var boxes []voxel.Box
	greedyMesh3D(g, n, &boxes)
	assert.Equal(t, 0, g.Count())

	got := bitgrid.New(n * n * n)
	for _, b := range boxes {
		for z := b.Min[2]; z < b.Max[2]; z++ {
			for y := b.Min[1]; y < b.Max[1]; y++ {
				for x := b.Min[0]; x < b.Max[0]; x++ {
					i := int(x) + int(y)*n + int(z)*n*n
					require.False(t, got.Test(i), "boxes overlap at voxel (%d,%d,%d)", x, y, z)
					got.Set(i, true)
				}
			}
		}
	}
	assert.Equal(t, want.Words(), got.Words(), "box union must equal solid voxels")
}

// loadWindow fills the mesher's padded window directly for cull tests.
func loadWindow(m *Mesher, solid func(x, y, z int) bool) {
	n := m.size
	for z := -1; z <= n; z++ {
		for y := -1; y <= n; y++ {
			for x := -1; x <= n; x++ {
				m.window.Set(m.windowIndex(x, y, z), solid(x, y, z))
			}
		}
	}
}

func TestCullDropsBuriedBox(t *testing.T) {
	m, err := NewMesher(4)
	require.NoError(t, err)
	loadWindow(m, func(x, y, z int) bool { return true })

	m.copySolid()
	var boxes []voxel.Box
	greedyMesh3D(m.solid, m.size, &boxes)
	require.Len(t, boxes, 1)

	kept := m.cullInterior(boxes)
	assert.Empty(t, kept, "a box with all six slabs solid is interior")
}

func TestCullKeepsExposedBox(t *testing.T) {
	m, err := NewMesher(4)
	require.NoError(t, err)
	// Everything solid except a single skirt voxel touching the +X slab.
	loadWindow(m, func(x, y, z int) bool {
		return !(x == 4 && y == 2 && z == 2)
	})

	m.copySolid()
	var boxes []voxel.Box
	greedyMesh3D(m.solid, m.size, &boxes)
	require.Len(t, boxes, 1)

	kept := m.cullInterior(boxes)
	assert.Len(t, kept, 1, "one empty voxel in an outward slab keeps the box")
}

func TestCullPreservesOrder(t *testing.T) {
	m, err := NewMesher(4)
	require.NoError(t, err)
	// Two solid pillars with empty space around them: both exposed.
	loadWindow(m, func(x, y, z int) bool {
		return (x == 0 || x == 3) && y >= 0 && y < 4 && z >= 0 && z < 4
	})

	m.copySolid()
	var boxes []voxel.Box
	greedyMesh3D(m.solid, m.size, &boxes)
	require.Len(t, boxes, 2)

	kept := m.cullInterior(boxes)
	require.Len(t, kept, 2)
	assert.Equal(t, int32(0), kept[0].Min[0])
	assert.Equal(t, int32(3), kept[1].Min[0])
}
