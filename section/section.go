package section

import (
	"github.com/voxforge/voxstore/format"
)

// PaletteEntry is one dictionary entry: the block name and a decorative
// reference count (not required for correctness, kept for diagnostics per
// spec.md §4.3).
type PaletteEntry struct {
	Name  string
	Count uint16
}

// Section is a 32x32x32 voxel grid with a palette-based block-name
// dictionary. The zero value is not usable; construct with New or Deserialize.
type Section struct {
	MigrationCount uint32
	Tag            format.PaletteTag

	palette map[uint16]PaletteEntry
	names   map[string]uint16
	voxels  []byte // raw, per-voxel internal IDs at the width s.Tag implies; nil for TagEmpty
}

// New creates an Empty-tag section whose every voxel is Air.
func New() *Section {
	return &Section{
		Tag:     format.TagEmpty,
		palette: map[uint16]PaletteEntry{0: {Name: AirName, Count: Cells}},
		names:   map[string]uint16{AirName: 0},
	}
}

// FlatIndex returns the voxel array position for (x, y, z), Y-major then Z
// then X: ((y&31)<<10) | ((z&31)<<5) | (x&31).
func FlatIndex(x, y, z int) int {
	return ((y & (Side - 1)) << 10) | ((z & (Side - 1)) << 5) | (x & (Side - 1))
}

// Lookup returns the block name stored at (x, y, z).
func (s *Section) Lookup(x, y, z int) string {
	if s.Tag == format.TagEmpty {
		if e, ok := s.palette[0]; ok {
			return e.Name
		}
		return AirName
	}

	id := readVoxel(s.Tag, s.voxels, FlatIndex(x, y, z))
	if e, ok := s.palette[id]; ok {
		return e.Name
	}

	return MissingSentinel
}

// PaletteSize returns the number of live dictionary entries.
func (s *Section) PaletteSize() int {
	return len(s.palette)
}

// readVoxel reads the raw internal ID at flat position idx from buf, at the width tag implies.
func readVoxel(tag format.PaletteTag, buf []byte, idx int) uint16 {
	switch tag {
	case format.TagEmpty:
		return 0
	case format.TagHalfByte:
		b := buf[idx/2]
		if idx%2 == 0 {
			return uint16(b & 0x0F)
		}
		return uint16(b >> 4)
	case format.TagByte:
		return uint16(buf[idx])
	case format.TagShort:
		return uint16(buf[idx*2])<<8 | uint16(buf[idx*2+1])
	default:
		return 0
	}
}

// writeVoxel writes internal ID v at flat position idx into buf, at the width tag implies.
func writeVoxel(tag format.PaletteTag, buf []byte, idx int, v uint16) {
	switch tag {
	case format.TagEmpty:
		// no backing array; every position is implicitly the sole entry.
	case format.TagHalfByte:
		byteIdx := idx / 2
		if idx%2 == 0 {
			buf[byteIdx] = (buf[byteIdx] &^ 0x0F) | byte(v&0x0F)
		} else {
			buf[byteIdx] = (buf[byteIdx] &^ 0xF0) | byte((v&0x0F)<<4)
		}
	case format.TagByte:
		buf[idx] = byte(v)
	case format.TagShort:
		buf[idx*2] = byte(v >> 8)
		buf[idx*2+1] = byte(v)
	}
}
