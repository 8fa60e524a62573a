package voxel

import "sync"

// MapSource is an in-memory voxel store backed by a sparse map, usable from
// multiple mesh workers at once. It implements Source; the scene builder and
// the tests use it as the world behind the mesher.
type MapSource struct {
	mu     sync.RWMutex
	voxels map[IntVec3]Material
}

// NewMapSource returns an empty store.
func NewMapSource() *MapSource {
	return &MapSource{voxels: make(map[IntVec3]Material)}
}

// Set makes the voxel at p solid with the given material.
func (s *MapSource) Set(p IntVec3, m Material) {
	s.mu.Lock()
	s.voxels[p] = m
	s.mu.Unlock()
}

// Clear makes the voxel at p empty.
func (s *MapSource) Clear(p IntVec3) {
	s.mu.Lock()
	delete(s.voxels, p)
	s.mu.Unlock()
}

// Get reports whether the voxel at p is solid.
func (s *MapSource) Get(p IntVec3) bool {
	s.mu.RLock()
	_, ok := s.voxels[p]
	s.mu.RUnlock()
	return ok
}

// Count returns the number of solid voxels.
func (s *MapSource) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.voxels)
}

// FillBox makes every voxel in the half-open box solid.
func (s *MapSource) FillBox(b Box, m Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for z := b.Min[2]; z < b.Max[2]; z++ {
		for y := b.Min[1]; y < b.Max[1]; y++ {
			for x := b.Min[0]; x < b.Max[0]; x++ {
				s.voxels[IntVec3{x, y, z}] = m
			}
		}
	}
}

// FillSphere makes every voxel whose center lies within radius of center
// solid.
func (s *MapSource) FillSphere(center IntVec3, radius int32, m Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r2 := int64(radius) * int64(radius)
	for z := center[2] - radius; z <= center[2]+radius; z++ {
		for y := center[1] - radius; y <= center[1]+radius; y++ {
			for x := center[0] - radius; x <= center[0]+radius; x++ {
				dx := int64(x - center[0])
				dy := int64(y - center[1])
				dz := int64(z - center[2])
				if dx*dx+dy*dy+dz*dz <= r2 {
					s.voxels[IntVec3{x, y, z}] = m
				}
			}
		}
	}
}

// QueryValues implements Source. Callers hold the read lock from
// AcquireReadLock for the queried bounds; re-locking here could deadlock
// against a waiting writer.
func (s *MapSource) QueryValues(min, shape IntVec3, stride, lod int32, out []bool) error {
	i := 0
	for iz := int32(0); iz < shape[2]; iz++ {
		for iy := int32(0); iy < shape[1]; iy++ {
			for ix := int32(0); ix < shape[0]; ix++ {
				p := IntVec3{min[0] + ix*stride, min[1] + iy*stride, min[2] + iz*stride}
				_, ok := s.voxels[p]
				out[i] = ok
				i++
			}
		}
	}
	return nil
}

// QueryMaterial implements Source. Empty voxels report the zero material.
// Like QueryValues, it runs under the caller's read lock.
func (s *MapSource) QueryMaterial(pos IntVec3, lod int32) Material {
	return s.voxels[pos]
}

// AcquireReadLock implements Source. The whole store is locked; bounds are
// accepted for interface compatibility with range-locking sources.
func (s *MapSource) AcquireReadLock(bounds Box) func() {
	s.mu.RLock()
	var once sync.Once
	return func() {
		once.Do(s.mu.RUnlock)
	}
}
