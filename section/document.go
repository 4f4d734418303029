package section

import (
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/palette2d"
)

// BlockChunkData is the typed Go shape of a BlockChunk's
// Components.Block.Data blob (spec.md §6): a little-endian
// needsPhysics:U8 flag followed by a heightmap and a tint grid, both
// P2D-encoded. voxstore never decodes the surrounding BSON document; this
// type just gives a caller's own document decoder a typed place to put
// the three fields once it has located the blob.
type BlockChunkData struct {
	NeedsPhysics bool
	Heights      *palette2d.Heights
	Tints        *palette2d.Tints
}

// SerializeBlockChunkData encodes d as needsPhysics:U8 | heights | tints.
func SerializeBlockChunkData(d BlockChunkData) []byte {
	h := d.Heights.Serialize()
	t := d.Tints.Serialize()

	buf := make([]byte, 1+len(h)+len(t))
	if d.NeedsPhysics {
		buf[0] = 1
	}
	copy(buf[1:], h)
	copy(buf[1+len(h):], t)

	return buf
}

// DeserializeBlockChunkData decodes the structure SerializeBlockChunkData writes.
func DeserializeBlockChunkData(data []byte) (BlockChunkData, error) {
	if len(data) < 1 {
		return BlockChunkData{}, errs.ErrUnexpectedEOF
	}

	needsPhysics := data[0] != 0
	rest := data[1:]

	hLen, err := palette2d.HeightsByteLen(rest)
	if err != nil {
		return BlockChunkData{}, err
	}
	heights, err := palette2d.DeserializeHeights(rest[:hLen])
	if err != nil {
		return BlockChunkData{}, err
	}

	tRest := rest[hLen:]
	tLen, err := palette2d.TintsByteLen(tRest)
	if err != nil {
		return BlockChunkData{}, err
	}
	tints, err := palette2d.DeserializeTints(tRest[:tLen])
	if err != nil {
		return BlockChunkData{}, err
	}

	return BlockChunkData{
		NeedsPhysics: needsPhysics,
		Heights:      heights,
		Tints:        tints,
	}, nil
}
