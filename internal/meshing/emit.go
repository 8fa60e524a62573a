package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// quadCorners enumerates the four quad corners in emission order:
//
//	3 --- 2
//	|  /  |
//	0 --- 1
//
// Triangles: 0 1 2, 0 2 3 on inverted faces; 2 1 0, 3 2 0 otherwise.
var quadCorners = [4][2]uint32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// addFace turns one merged quad into four vertices and six indices. Material
// sampling happens here, while the source read lock is still held.
func (m *Mesher) addFace(res *MeshResult, dir int, q Quad, src voxel.Source, opts Options) {
	zAxis := dir / 2
	inverted := dir&1 == 1
	xAxis := (zAxis + 1) % 3
	yAxis := (zAxis + 2) % 3

	// Counter-clockwise front faces: corners run (0,0) (1,0) (1,1) (0,1) in
	// the (xAxis, yAxis) plane, which is CCW seen from +zAxis. Inverted
	// faces look down +zAxis, non-inverted faces down -zAxis.
	base := uint32(len(res.Vertices))
	if inverted {
		res.Indices = append(res.Indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3)
	} else {
		res.Indices = append(res.Indices,
			base+2, base+1, base+0,
			base+3, base+2, base+0)
	}

	var material voxel.Material
	if opts.Materials {
		material = m.sampleQuadMaterial(res, xAxis, yAxis, zAxis, q, src, opts)
	}

	var normal, tangent mgl32.Vec3
	if inverted {
		normal[zAxis] = 1
	} else {
		normal[zAxis] = -1
	}
	tangent[xAxis] = 1

	layer := q.Layer
	if inverted {
		layer++
	}

	step := float32(opts.Step)
	for _, c := range quadCorners {
		var pos mgl32.Vec3
		pos[xAxis] = float32(q.StartU + q.SizeU*c[0])
		pos[yAxis] = float32(q.StartV + q.SizeV*c[1])
		pos[zAxis] = float32(layer)
		// Scale to world units and shift onto voxel centers.
		pos = pos.Mul(step).Sub(mgl32.Vec3{0.5, 0.5, 0.5})

		res.Vertices = append(res.Vertices, Vertex{
			Position: pos,
			Normal:   normal,
			Tangent:  tangent,
			UV:       mgl32.Vec2{float32(q.SizeU * c[0]), float32(q.SizeV * c[1])},
			Material: material,
		})
	}
}

// sampleQuadMaterial reads the quad's materials from the source. A 1x1 quad
// takes the single voxel's flat color. A merged quad samples every covered
// voxel in u-fastest order into the texture-data buffer, unless all samples
// share one color, in which case it collapses to the flat-color form and
// allocates nothing.
func (m *Mesher) sampleQuadMaterial(res *MeshResult, xAxis, yAxis, zAxis int, q Quad, src voxel.Source, opts Options) voxel.Material {
	at := func(du, dv uint32) voxel.Material {
		var p voxel.IntVec3
		p[xAxis] = int32(q.StartU + du)
		p[yAxis] = int32(q.StartV + dv)
		p[zAxis] = int32(q.Layer)
		return src.QueryMaterial(p.Scale(opts.Step).Add(opts.Origin), opts.LOD)
	}

	if q.SizeU == 1 && q.SizeV == 1 {
		mat := at(0, 0)
		mat.SetUseTextureFalse()
		return mat
	}

	m.colors = m.colors[:0]
	uniform := true
	var first voxel.Color
	for dv := uint32(0); dv < q.SizeV; dv++ {
		for du := uint32(0); du < q.SizeU; du++ {
			c := at(du, dv).Color()
			if len(m.colors) == 0 {
				first = c
			} else if c != first {
				uniform = false
			}
			m.colors = append(m.colors, c)
		}
	}

	if uniform {
		mat := voxel.MaterialFromColor(first)
		mat.SetUseTextureFalse()
		return mat
	}

	var mat voxel.Material
	mat.SetTextureDataIndex(len(res.TextureData))
	mat.SetQuadWidth(q.SizeU)
	res.TextureData = append(res.TextureData, m.colors...)
	return mat
}
