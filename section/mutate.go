package section

import "github.com/voxforge/voxstore/format"

// Insert stores name at (x, y, z), assigning it a fresh internal ID and
// promoting the section to a wider tag if the current one has no spare
// capacity. Existing (x,y,z) -> name mappings elsewhere in the grid are
// preserved across promotion (spec.md §8 scenario 6).
func (s *Section) Insert(x, y, z int, name string) {
	id, ok := s.names[name]
	if !ok {
		id = s.admit(name)
	}

	pos := FlatIndex(x, y, z)

	if s.Tag == format.TagEmpty {
		if id == 0 {
			return // already air, nothing changes
		}
	} else if old := readVoxel(s.Tag, s.voxels, pos); old == id {
		return
	} else if e, ok := s.palette[old]; ok && e.Count > 0 {
		e.Count--
		s.palette[old] = e
	}

	writeVoxel(s.Tag, s.voxels, pos, id)

	e := s.palette[id]
	e.Count++
	s.palette[id] = e
}

// admit assigns name a fresh internal ID, promoting the section's tag
// first if the current tag has no room for one more live entry.
func (s *Section) admit(name string) uint16 {
	want := len(s.palette) + 1
	if want > s.Tag.Capacity() {
		s.promote(minimalTagForCapacity(want))
	}

	id := uint16(len(s.palette))
	s.palette[id] = PaletteEntry{Name: name}
	s.names[name] = id

	return id
}

// minimalTagForCapacity returns the smallest tag whose Capacity() >= want.
func minimalTagForCapacity(want int) format.PaletteTag {
	switch {
	case want <= format.TagEmpty.Capacity():
		return format.TagEmpty
	case want <= format.TagHalfByte.Capacity():
		return format.TagHalfByte
	case want <= format.TagByte.Capacity():
		return format.TagByte
	default:
		return format.TagShort
	}
}

// promote widens the section to newTag, rewriting the voxel array at the
// new width while preserving every internal ID already in use. Promotion
// is monotone: newTag is always wider than s.Tag.
func (s *Section) promote(newTag format.PaletteTag) {
	newVoxels := make([]byte, newTag.VoxelArrayLen())

	if s.Tag != format.TagEmpty {
		for i := 0; i < Cells; i++ {
			id := readVoxel(s.Tag, s.voxels, i)
			writeVoxel(newTag, newVoxels, i, id)
		}
	}
	// If s.Tag was TagEmpty, newVoxels is zero-filled, and 0 is the air
	// entry's internal ID (New's invariant), so every position already
	// correctly reads as air at the new width.

	s.Tag = newTag
	s.voxels = newVoxels
}

// Compact drops palette entries no longer referenced by any voxel,
// reassigns internal IDs densely in ascending old-ID order, and demotes
// the section's tag if the live unique count has fallen to the matching
// tier threshold (spec.md §3/§4.3, const.go's demote thresholds).
func (s *Section) Compact() {
	if s.Tag == format.TagEmpty {
		return
	}

	referenced := make(map[uint16]int, len(s.palette))
	for i := 0; i < Cells; i++ {
		referenced[readVoxel(s.Tag, s.voxels, i)]++
	}

	live := s.sortedIDs()
	newPalette := make(map[uint16]PaletteEntry, len(referenced))
	newNames := make(map[string]uint16, len(referenced))
	remap := make(map[uint16]uint16, len(referenced))

	nextID := uint16(0)
	airOnly := true
	for _, oldID := range live {
		count, ok := referenced[oldID]
		if !ok || count == 0 {
			continue
		}
		e := s.palette[oldID]
		if e.Name != AirName {
			airOnly = false
		}
		e.Count = uint16(count)
		remap[oldID] = nextID
		newPalette[nextID] = e
		newNames[e.Name] = nextID
		nextID++
	}

	newTag := minimalTagForDemotion(len(newPalette), airOnly)
	if newTag > s.Tag {
		newTag = s.Tag // Compact never widens; the current tag already fits the live entries
	}

	newVoxels := make([]byte, newTag.VoxelArrayLen())
	for i := 0; i < Cells; i++ {
		oldID := readVoxel(s.Tag, s.voxels, i)
		writeVoxel(newTag, newVoxels, i, remap[oldID])
	}

	s.palette = newPalette
	s.names = newNames
	s.Tag = newTag
	if newTag == format.TagEmpty {
		s.voxels = nil
	} else {
		s.voxels = newVoxels
	}
}

// minimalTagForDemotion returns the smallest tag Compact should settle on
// for a live unique count, damping flutter by demoting a tier below its
// own maximum capacity rather than exactly at it.
func minimalTagForDemotion(live int, airOnly bool) format.PaletteTag {
	switch {
	case live <= 1 && airOnly:
		return format.TagEmpty
	case live <= byteDemoteThreshold:
		return format.TagHalfByte
	case live <= shortDemoteThreshold:
		return format.TagByte
	default:
		return format.TagShort
	}
}
