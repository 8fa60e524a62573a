package meshing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonny2027/voxelmesh/internal/voxel"
)

var (
	red  = voxel.MaterialFromColor(voxel.Color{R: 255, A: 255})
	blue = voxel.MaterialFromColor(voxel.Color{B: 255, A: 255})
)

func TestSingleVoxelQuadIsFlatColor(t *testing.T) {
	src := voxel.NewMapSource()
	src.Set(voxel.IntVec3{1, 1, 1}, red)

	m := newTestMesher(t, 4)
	res := mesh(t, m, src, Options{Step: 1, Materials: true})

	require.Len(t, res.Vertices, 24)
	assert.Empty(t, res.TextureData, "1x1 quads allocate no texture data")
	for _, v := range res.Vertices {
		assert.False(t, v.Material.UsesTexture())
		assert.Equal(t, voxel.Color{R: 255, A: 255}, v.Material.Color())
	}
}

func TestUniformQuadCollapsesToFlatColor(t *testing.T) {
	// A 2x2x1 slab of one color: the merged quads sample four identical
	// colors and collapse to the flat-color form.
	src := voxel.NewMapSource()
	src.FillBox(voxel.Box{Max: voxel.IntVec3{2, 2, 1}}, red)

	m := newTestMesher(t, 4)
	res := mesh(t, m, src, Options{Step: 1, Materials: true})

	assert.Empty(t, res.TextureData)
	for _, v := range res.Vertices {
		assert.False(t, v.Material.UsesTexture())
		assert.Equal(t, voxel.Color{R: 255, A: 255}, v.Material.Color())
	}
}

func TestMixedQuadAllocatesTextureData(t *testing.T) {
	// A 2x1x1 bar with two colors: the merged +Z quad (u=x fastest) must
	// store red then blue.
	src := voxel.NewMapSource()
	src.Set(voxel.IntVec3{0, 0, 0}, red)
	src.Set(voxel.IntVec3{1, 0, 0}, blue)

	m := newTestMesher(t, 4)
	res := mesh(t, m, src, Options{Step: 1, Materials: true})

	redC := voxel.Color{R: 255, A: 255}
	blueC := voxel.Color{B: 255, A: 255}

	// The two voxels merge on the four directions where X is an in-plane
	// axis; those quads sample red at x=0 first, then blue. The X faces
	// themselves stay 1x1 and flat.
	require.Len(t, res.TextureData, 8)
	for i := 0; i < len(res.TextureData); i += 2 {
		assert.Equal(t, redC, res.TextureData[i])
		assert.Equal(t, blueC, res.TextureData[i+1])
	}

	textured := 0
	for _, v := range res.Vertices {
		if v.Material.UsesTexture() {
			textured++
			// Quad width follows the direction's U axis: 2 when U is X,
			// 1 when the merge ran along V.
			assert.Contains(t, []uint32{1, 2}, v.Material.QuadWidth())
		}
	}
	// Four merged side quads, four vertices each.
	assert.Equal(t, 16, textured)
}

func TestTextureDataIndexAddressesQuadColors(t *testing.T) {
	src := voxel.NewMapSource()
	src.Set(voxel.IntVec3{0, 0, 0}, red)
	src.Set(voxel.IntVec3{1, 0, 0}, blue)
	src.Set(voxel.IntVec3{0, 1, 0}, blue)
	src.Set(voxel.IntVec3{1, 1, 0}, red)

	m := newTestMesher(t, 4)
	res := mesh(t, m, src, Options{Step: 1, Materials: true})

	for i := 0; i < len(res.Vertices); i += 4 {
		mat := res.Vertices[i].Material
		if !mat.UsesTexture() {
			continue
		}
		count := int(mat.QuadWidth())
		require.LessOrEqual(t, mat.TextureDataIndex()+count, len(res.TextureData),
			"texture data index must address allocated colors")
	}
}

func TestMaterialsOffEmitsDefaultMaterial(t *testing.T) {
	src := voxel.NewMapSource()
	src.Set(voxel.IntVec3{0, 0, 0}, red)

	m := newTestMesher(t, 4)
	res := mesh(t, m, src, Options{Step: 1})

	assert.Empty(t, res.TextureData)
	for _, v := range res.Vertices {
		assert.Equal(t, voxel.Material(0), v.Material)
	}
}
