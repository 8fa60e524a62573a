package voxel

// Source supplies voxel occupancy and materials to the mesher. The mesher
// issues exactly one QueryValues call per chunk job, over the padded window
// bounds, and holds the read lock from before that call until after the last
// QueryMaterial read.
type Source interface {
	// QueryValues fills out with shape[0]*shape[1]*shape[2] occupancy bits in
	// x-fastest order, sampling at min + (ix,iy,iz)*stride. lod is a hint for
	// sources that store data per mip level.
	QueryValues(min, shape IntVec3, stride, lod int32, out []bool) error

	// QueryMaterial returns the material of the voxel at pos.
	QueryMaterial(pos IntVec3, lod int32) Material

	// AcquireReadLock locks bounds for reading and returns the release
	// callback. The callback is invoked exactly once.
	AcquireReadLock(bounds Box) (release func())
}
