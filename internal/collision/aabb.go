// Package collision provides the float axis-aligned boxes the mesher emits
// for simple cubic collision, plus the queries physics callers run against
// them.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is a float axis-aligned box, min-inclusive, max-exclusive.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Intersects reports whether the two boxes overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() < b.Max.X() && a.Max.X() > b.Min.X() &&
		a.Min.Y() < b.Max.Y() && a.Max.Y() > b.Min.Y() &&
		a.Min.Z() < b.Max.Z() && a.Max.Z() > b.Min.Z()
}

// Contains reports whether p lies inside the box.
func (a AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() < a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() < a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() < a.Max.Z()
}

// Size returns the box extent per axis.
func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Collides reports whether a box of the given half extents centered at pos
// overlaps any box in the list.
func Collides(pos, halfExtents mgl32.Vec3, boxes []AABB) bool {
	probe := AABB{Min: pos.Sub(halfExtents), Max: pos.Add(halfExtents)}
	for _, b := range boxes {
		if probe.Intersects(b) {
			return true
		}
	}
	return false
}

// RaycastResult stores the result of a raycast against a box list.
type RaycastResult struct {
	Box      int // index of the box hit
	Distance float32
	Hit      bool
}

// Raycast finds the nearest box hit by the ray start + t*direction with
// t in [0, maxDist]. direction need not be normalized but must be non-zero.
func Raycast(start, direction mgl32.Vec3, maxDist float32, boxes []AABB) RaycastResult {
	result := RaycastResult{Hit: false}
	best := maxDist
	for i, b := range boxes {
		if t, ok := rayBox(start, direction, b); ok && t <= best {
			best = t
			result = RaycastResult{Box: i, Distance: t, Hit: true}
		}
	}
	return result
}

// rayBox is the slab test; returns the entry distance along the ray.
func rayBox(start, dir mgl32.Vec3, b AABB) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if start[axis] < b.Min[axis] || start[axis] >= b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[axis]
		t0 := (b.Min[axis] - start[axis]) * inv
		t1 := (b.Max[axis] - start[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
