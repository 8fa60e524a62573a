// Package meshing converts dense voxel occupancy into a minimal set of
// axis-aligned quads for rendering and axis-aligned boxes for simple cubic
// collision, using bitwise greedy merging.
package meshing

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/jonny2027/voxelmesh/internal/bitgrid"
	"github.com/jonny2027/voxelmesh/internal/collision"
	"github.com/jonny2027/voxelmesh/internal/profiling"
	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// ErrCanceled is returned when a mesh job observes cancellation between
// phases. No partial output is published.
var ErrCanceled = errors.New("meshing: job canceled")

// Quad is a merged rectangle in a single face plane. StartU/StartV/SizeU/SizeV
// are in the direction-specific (U, V) axes; Layer is the coordinate along the
// face normal axis.
type Quad struct {
	Layer  uint32
	StartU uint32
	StartV uint32
	SizeU  uint32
	SizeV  uint32
}

// Vertex is one corner of an emitted quad.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
	UV       mgl32.Vec2
	Material voxel.Material
}

// MeshResult is the full output of one chunk job. Each quad contributes four
// vertices and six indices; indices are monotonically increasing in
// allocation order.
type MeshResult struct {
	Vertices       []Vertex
	Indices        []uint32
	TextureData    []voxel.Color
	CollisionBoxes []collision.AABB
}

// Options are the per-job parameters of MeshChunk.
type Options struct {
	Origin    voxel.IntVec3 // world coordinate of the chunk's min corner
	Step      int32         // LOD stride applied to voxel coordinates
	LOD       int32
	Materials bool // sample per-voxel materials into vertex data
	Collision bool // emit greedy collision boxes
}

// Validate reports the first invalid option. It runs before any work begins.
func (o Options) Validate() error {
	if o.Step < 1 {
		return errors.Errorf("meshing: step must be >= 1, got %d", o.Step)
	}
	if o.LOD < 0 {
		return errors.Errorf("meshing: lod must be >= 0, got %d", o.LOD)
	}
	return nil
}

// BoundsToLock returns the padded query window in world coordinates: one
// voxel of skirt on every side, scaled by step. Sources lock this region for
// the duration of the job's data reads.
func BoundsToLock(origin voxel.IntVec3, size, step int32) voxel.Box {
	min := origin.Sub(voxel.Splat(step))
	return voxel.Box{
		Min: min,
		Max: min.Add(voxel.Splat((size + 2) * step)),
	}
}

// Mesher holds the working buffers of a single chunk job, sized once at
// construction and reused across jobs. A Mesher is not safe for concurrent
// use; each pool worker owns one.
type Mesher struct {
	size   int
	window *bitgrid.Grid // (size+2)^3 padded occupancy
	faces  [6]*bitgrid.Grid
	solid  *bitgrid.Grid // size^3, consumed by the 3D mesher
	values []bool
	quads  []Quad
	boxes  []voxel.Box
	colors []voxel.Color
}

// NewMesher returns a mesher for chunks of the given edge length. size must
// be a power of two and at least 2.
func NewMesher(size int32) (*Mesher, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, errors.Errorf("meshing: chunk size must be a power of two >= 2, got %d", size)
	}
	n := int(size)
	padded := (n + 2) * (n + 2) * (n + 2)
	m := &Mesher{
		size:   n,
		window: bitgrid.New(padded),
		solid:  bitgrid.New(n * n * n),
		values: make([]bool, padded),
		quads:  make([]Quad, 0, n*n),
		boxes:  make([]voxel.Box, 0, n*n),
	}
	for d := range m.faces {
		m.faces[d] = bitgrid.New(n * n * n)
	}
	return m, nil
}

// Size returns the chunk edge length the mesher was built for.
func (m *Mesher) Size() int32 { return int32(m.size) }

// MeshChunk runs the full pipeline for one chunk: sample the padded window,
// extract faces, greedy-merge and emit quads per direction, then (when
// requested and any face was produced) greedy-merge collision boxes and cull
// the fully enclosed ones. The result is either complete or nil.
func (m *Mesher) MeshChunk(ctx context.Context, src voxel.Source, opts Options) (*MeshResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	bounds := BoundsToLock(opts.Origin, int32(m.size), opts.Step)
	release := src.AcquireReadLock(bounds)
	locked := true
	defer func() {
		if locked {
			release()
		}
	}()

	if err := m.queryWindow(src, bounds, opts); err != nil {
		return nil, errors.Wrap(err, "meshing: query voxel values")
	}

	m.findFaces()

	res := &MeshResult{}
	for dir := 0; dir < 6; dir++ {
		if ctx.Err() != nil {
			return nil, ErrCanceled
		}
		stop := profiling.Track("meshing.Greedy2D")
		m.quads = m.quads[:0]
		greedyMesh2D(m.faces[dir], m.size, &m.quads)
		for _, q := range m.quads {
			m.addFace(res, dir, q, src, opts)
		}
		stop()
	}

	// All data reads are done: material sampling happens during quad
	// emission. Release before collision meshing and final assembly.
	release()
	locked = false

	if opts.Collision && len(res.Indices) > 0 {
		// A chunk with no faces is fully interior and invisible; it gets no
		// collision either.
		defer profiling.Track("meshing.Collision")()
		m.copySolid()
		m.boxes = m.boxes[:0]
		greedyMesh3D(m.solid, m.size, &m.boxes)
		if ctx.Err() != nil {
			return nil, ErrCanceled
		}
		kept := m.cullInterior(m.boxes)
		res.CollisionBoxes = scaleBoxes(kept, opts.Step)
	}

	return res, nil
}

// queryWindow issues the job's single QueryValues call and loads the result
// into the padded window grid. The padded window and the query share the same
// x-fastest layout, so indices line up one to one.
func (m *Mesher) queryWindow(src voxel.Source, bounds voxel.Box, opts Options) error {
	defer profiling.Track("meshing.QueryValues")()

	shape := voxel.Splat(int32(m.size) + 2)
	if err := src.QueryValues(bounds.Min, shape, opts.Step, opts.LOD, m.values); err != nil {
		return err
	}
	for i, solid := range m.values {
		m.window.Set(i, solid)
	}
	return nil
}

// windowIndex maps local voxel coordinates in [-1, size] to the padded
// window bit index.
func (m *Mesher) windowIndex(x, y, z int) int {
	np := m.size + 2
	return (x + 1) + (y+1)*np + (z+1)*np*np
}

// solidAt reads the padded window; x, y, z in [-1, size].
func (m *Mesher) solidAt(x, y, z int) bool {
	return m.window.Test(m.windowIndex(x, y, z))
}

// copySolid extracts the window interior into the dedicated 3D grid the box
// mesher consumes, leaving the window intact for the interior cull.
func (m *Mesher) copySolid() {
	n := m.size
	i := 0
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				m.solid.Set(i, m.solidAt(x, y, z))
				i++
			}
		}
	}
}

// scaleBoxes converts integer chunk-local boxes to world-scale float AABBs:
// scale by step, then shift by -0.5 for the voxel-center convention.
func scaleBoxes(boxes []voxel.Box, step int32) []collision.AABB {
	if len(boxes) == 0 {
		return nil
	}
	out := make([]collision.AABB, len(boxes))
	s := float32(step)
	for i, b := range boxes {
		out[i] = collision.AABB{
			Min: mgl32.Vec3{
				float32(b.Min[0])*s - 0.5,
				float32(b.Min[1])*s - 0.5,
				float32(b.Min[2])*s - 0.5,
			},
			Max: mgl32.Vec3{
				float32(b.Max[0])*s - 0.5,
				float32(b.Max[1])*s - 0.5,
				float32(b.Max[2])*s - 0.5,
			},
		}
	}
	return out
}
