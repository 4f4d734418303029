package section

import (
	"slices"

	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/format"
)

// idWidth returns the on-disk width of the internalId field. spec.md §3
// specifies a fixed U8 internalId field for every palette entry; that is
// followed literally for Empty/HalfByte/Byte, whose capacities (1/16/256)
// fit in a byte. For Short (up to 65536 entries) a U8 id cannot address
// the tag's own stated capacity, so this codec widens the field to BE16
// for Short sections only, a choice made without a reference
// implementation to check against.
func idWidth(tag format.PaletteTag) int {
	if tag == format.TagShort {
		return 2
	}
	return 1
}

// Deserialize decodes a Section from its serialised byte form.
func Deserialize(data []byte) (*Section, error) {
	if len(data) < HeaderSize {
		return nil, errs.ErrUnexpectedEOF
	}

	be := endian.BE()
	migrationCount := be.Uint32(data[0:4])
	tag := format.PaletteTag(data[4])
	paletteSize := int(be.Uint16(data[5:7]))

	if tag > format.TagShort {
		return nil, errs.ErrUnknownPaletteTag
	}

	off := HeaderSize
	width := idWidth(tag)

	palette := make(map[uint16]PaletteEntry, paletteSize)
	names := make(map[string]uint16, paletteSize)

	for i := 0; i < paletteSize; i++ {
		if off+width+2 > len(data) {
			return nil, errs.ErrUnexpectedEOF
		}

		var id uint16
		if width == 1 {
			id = uint16(data[off])
		} else {
			id = be.Uint16(data[off : off+2])
		}
		off += width

		nameLen := int(be.Uint16(data[off : off+2]))
		off += 2
		if off+nameLen+2 > len(data) {
			return nil, errs.ErrUnexpectedEOF
		}

		name := string(data[off : off+nameLen])
		off += nameLen

		count := be.Uint16(data[off : off+2])
		off += 2

		palette[id] = PaletteEntry{Name: name, Count: count}
		names[name] = id
	}

	voxLen := tag.VoxelArrayLen()
	if off+voxLen > len(data) {
		return nil, errs.ErrUnexpectedEOF
	}

	var voxels []byte
	if voxLen > 0 {
		voxels = make([]byte, voxLen)
		copy(voxels, data[off:off+voxLen])
	}

	return &Section{
		MigrationCount: migrationCount,
		Tag:            tag,
		palette:        palette,
		names:          names,
		voxels:         voxels,
	}, nil
}

// Serialize encodes the section as the big-endian header, palette entries, then the voxel array.
func (s *Section) Serialize() []byte {
	be := endian.BE()
	width := idWidth(s.Tag)

	size := HeaderSize
	for id, e := range s.palette {
		_ = id
		size += width + 2 + len(e.Name) + 2
	}
	size += len(s.voxels)

	buf := make([]byte, size)
	be.PutUint32(buf[0:4], s.MigrationCount)
	buf[4] = byte(s.Tag)
	be.PutUint16(buf[5:7], uint16(len(s.palette)))

	off := HeaderSize
	for _, id := range s.sortedIDs() {
		e := s.palette[id]
		if width == 1 {
			buf[off] = byte(id)
		} else {
			be.PutUint16(buf[off:off+2], id)
		}
		off += width

		be.PutUint16(buf[off:off+2], uint16(len(e.Name)))
		off += 2
		copy(buf[off:], e.Name)
		off += len(e.Name)

		be.PutUint16(buf[off:off+2], e.Count)
		off += 2
	}

	copy(buf[off:], s.voxels)

	return buf
}

// sortedIDs returns the live internal IDs in ascending order, for
// deterministic serialisation output.
func (s *Section) sortedIDs() []uint16 {
	ids := make([]uint16, 0, len(s.palette))
	for id := range s.palette {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
