package voxel

// Material is the packed 32-bit per-vertex material attribute.
//
// A plain material carries an opaque RGB color in the low 24 bits with the
// use-texture bit clear. When a merged quad needs per-voxel colors the same
// word is reinterpreted as a texture-data reference:
//
//	bits  0..22  index into MeshResult.TextureData
//	bits 23..30  quad width in voxels
//	bit  31      use-texture flag
//
// The shader reconstructs per-texel color from index + width + UV.
type Material uint32

const (
	materialUseTexture    = 1 << 31
	materialIndexBits     = 23
	materialIndexMask     = 1<<materialIndexBits - 1
	materialWidthMask     = 0xff
	materialWidthShift    = materialIndexBits
	materialWidthMaskHigh = Material(materialWidthMask) << materialWidthShift
)

// MaterialFromColor returns a plain (untextured) material with the given
// color. Alpha is dropped; cubic voxels are opaque.
func MaterialFromColor(c Color) Material {
	return Material(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// Color returns the material's flat color. Only meaningful when the material
// does not reference texture data.
func (m Material) Color() Color {
	return Color{
		R: uint8(m >> 16),
		G: uint8(m >> 8),
		B: uint8(m),
		A: 0xff,
	}
}

// UsesTexture reports whether the material references per-voxel texture data.
func (m Material) UsesTexture() bool {
	return m&materialUseTexture != 0
}

// SetQuadWidth records the merged quad's width and marks the material as
// texture-backed.
func (m *Material) SetQuadWidth(w uint32) {
	*m = (*m &^ materialWidthMaskHigh) |
		Material(w&materialWidthMask)<<materialWidthShift |
		materialUseTexture
}

// QuadWidth returns the width recorded by SetQuadWidth.
func (m Material) QuadWidth() uint32 {
	return uint32(m>>materialWidthShift) & materialWidthMask
}

// SetTextureDataIndex records the offset of the quad's first color in the
// texture-data buffer.
func (m *Material) SetTextureDataIndex(i int) {
	*m = (*m &^ materialIndexMask) | Material(uint32(i)&materialIndexMask)
}

// TextureDataIndex returns the offset recorded by SetTextureDataIndex.
func (m Material) TextureDataIndex() int {
	return int(m & materialIndexMask)
}

// SetUseTextureFalse marks the material as a flat color, keeping the color
// bits intact.
func (m *Material) SetUseTextureFalse() {
	*m &^= materialUseTexture
}
