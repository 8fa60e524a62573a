package meshing

import "github.com/jonny2027/voxelmesh/internal/voxel"

// cullInterior filters out boxes whose six outward one-voxel slabs are
// entirely solid: they are enclosed by other solids and contribute no
// surface. It reads the padded window, which the box mesher never touches,
// so skirt voxels participate. The kept boxes stay in emission order.
func (m *Mesher) cullInterior(boxes []voxel.Box) []voxel.Box {
	kept := boxes[:0]
	for _, b := range boxes {
		if !m.boxIsInterior(b) {
			kept = append(kept, b)
		}
	}
	return kept
}

func (m *Mesher) boxIsInterior(b voxel.Box) bool {
	for x := int(b.Min[0]); x < int(b.Max[0]); x++ {
		for y := int(b.Min[1]); y < int(b.Max[1]); y++ {
			if !m.solidAt(x, y, int(b.Min[2])-1) || !m.solidAt(x, y, int(b.Max[2])) {
				return false
			}
		}
	}
	for x := int(b.Min[0]); x < int(b.Max[0]); x++ {
		for z := int(b.Min[2]); z < int(b.Max[2]); z++ {
			if !m.solidAt(x, int(b.Min[1])-1, z) || !m.solidAt(x, int(b.Max[1]), z) {
				return false
			}
		}
	}
	for y := int(b.Min[1]); y < int(b.Max[1]); y++ {
		for z := int(b.Min[2]); z < int(b.Max[2]); z++ {
			if !m.solidAt(int(b.Min[0])-1, y, z) || !m.solidAt(int(b.Max[0]), y, z) {
				return false
			}
		}
	}
	return true
}
