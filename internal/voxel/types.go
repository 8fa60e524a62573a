// Package voxel defines the domain types shared by the mesher and its data
// collaborators: integer vectors and boxes, packed vertex materials, and the
// Source interface the mesher pulls occupancy and materials from.
package voxel

// IntVec3 is an integer 3-vector in voxel space.
type IntVec3 [3]int32

// Add returns v + o.
func (v IntVec3) Add(o IntVec3) IntVec3 {
	return IntVec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v IntVec3) Sub(o IntVec3) IntVec3 {
	return IntVec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v IntVec3) Scale(s int32) IntVec3 {
	return IntVec3{v[0] * s, v[1] * s, v[2] * s}
}

// Splat returns the vector (s, s, s).
func Splat(s int32) IntVec3 {
	return IntVec3{s, s, s}
}

// Box is a half-open integer axis-aligned box: Min inclusive, Max exclusive.
type Box struct {
	Min, Max IntVec3
}

// Size returns the box extent per axis.
func (b Box) Size() IntVec3 {
	return b.Max.Sub(b.Min)
}

// Volume returns the number of voxels inside the box.
func (b Box) Volume() int {
	s := b.Size()
	return int(s[0]) * int(s[1]) * int(s[2])
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p IntVec3) bool {
	return p[0] >= b.Min[0] && p[0] < b.Max[0] &&
		p[1] >= b.Min[1] && p[1] < b.Max[1] &&
		p[2] >= b.Min[2] && p[2] < b.Max[2]
}

// Color is a 32-bit RGBA color as stored in mesh texture data.
type Color struct {
	R, G, B, A uint8
}
