// Package export serializes mesh results to glTF 2.0.
package export

import (
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/jonny2027/voxelmesh/internal/meshing"
	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// Chunk pairs one chunk's mesh with its world-space placement. Mesh vertices
// are origin-relative, so the node translation is the chunk origin.
type Chunk struct {
	Mesh        *meshing.MeshResult
	Translation mgl32.Vec3
}

// meshExtras carries the mesher outputs glTF has no core slot for: the
// per-texel colors referenced by texture-backed vertex materials, and the
// collision boxes.
type meshExtras struct {
	TextureData    [][4]uint8      `json:"textureData,omitempty"`
	CollisionBoxes [][2][3]float32 `json:"collisionBoxes,omitempty"`
}

// Document builds a single-scene glTF document from named chunks. Empty
// meshes are skipped; the document is valid even when every chunk is empty.
func Document(chunks map[string]Chunk) *gltf.Document {
	doc := gltf.NewDocument()

	for _, name := range sortedNames(chunks) {
		chunk := chunks[name]
		res := chunk.Mesh
		if res == nil || len(res.Vertices) == 0 {
			continue
		}

		positions := make([][3]float32, len(res.Vertices))
		normals := make([][3]float32, len(res.Vertices))
		tangents := make([][4]float32, len(res.Vertices))
		uvs := make([][2]float32, len(res.Vertices))
		colors := make([][4]uint8, len(res.Vertices))
		for i, v := range res.Vertices {
			positions[i] = [3]float32{v.Position.X(), v.Position.Y(), v.Position.Z()}
			normals[i] = [3]float32{v.Normal.X(), v.Normal.Y(), v.Normal.Z()}
			tangents[i] = [4]float32{v.Tangent.X(), v.Tangent.Y(), v.Tangent.Z(), 1}
			uvs[i] = [2]float32{v.UV.X(), v.UV.Y()}
			// A texture-backed material packs an index and width, not a
			// color; write opaque white and let the shader resolve the real
			// colors from the texture data in extras.
			c := voxel.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			if !v.Material.UsesTexture() {
				c = v.Material.Color()
			}
			colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
		}

		primitive := &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, res.Indices)),
			Attributes: map[string]uint32{
				gltf.POSITION:   modeler.WritePosition(doc, positions),
				gltf.NORMAL:     modeler.WriteNormal(doc, normals),
				gltf.TANGENT:    modeler.WriteTangent(doc, tangents),
				gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
				gltf.COLOR_0:    modeler.WriteColor(doc, colors),
			},
		}

		mesh := &gltf.Mesh{
			Name:       name,
			Primitives: []*gltf.Primitive{primitive},
		}
		if len(res.TextureData) > 0 || len(res.CollisionBoxes) > 0 {
			extras := meshExtras{}
			if len(res.TextureData) > 0 {
				extras.TextureData = make([][4]uint8, len(res.TextureData))
				for i, c := range res.TextureData {
					extras.TextureData[i] = [4]uint8{c.R, c.G, c.B, c.A}
				}
			}
			if len(res.CollisionBoxes) > 0 {
				extras.CollisionBoxes = make([][2][3]float32, len(res.CollisionBoxes))
				for i, b := range res.CollisionBoxes {
					extras.CollisionBoxes[i] = [2][3]float32{
						{b.Min.X(), b.Min.Y(), b.Min.Z()},
						{b.Max.X(), b.Max.Y(), b.Max.Z()},
					}
				}
			}
			mesh.Extras = extras
		}
		doc.Meshes = append(doc.Meshes, mesh)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
			Translation: [3]float32{
				chunk.Translation.X(),
				chunk.Translation.Y(),
				chunk.Translation.Z(),
			},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	return doc
}

// Write saves the chunks to path. A .glb extension selects the binary
// container, anything else the JSON form.
func Write(chunks map[string]Chunk, path string) error {
	doc := Document(chunks)

	var err error
	if strings.HasSuffix(path, ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	return errors.Wrapf(err, "export: save %s", path)
}

func sortedNames(chunks map[string]Chunk) []string {
	names := make([]string, 0, len(chunks))
	for name := range chunks {
		names = append(names, name)
	}
	// Deterministic node order regardless of map iteration.
	sort.Strings(names)
	return names
}
