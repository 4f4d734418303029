package region

import "github.com/voxforge/voxstore/section"

// SectionDocument is the typed Go shape of one entry in a ChunkColumn's
// Sections[10] array (spec.md §6): Components.Block.Data holds one
// section.Section, serialised. voxstore does not parse the surrounding
// BSON document itself — this type gives a caller's own document decoder
// a typed place to put a section's bytes once it has located them.
type SectionDocument struct {
	Block []byte // section.Section.Serialize() output
}

// DecodeSection decodes d's block bytes into a *section.Section.
func (d SectionDocument) DecodeSection() (*section.Section, error) {
	return section.Deserialize(d.Block)
}

// NewSectionDocument wraps a section's serialised bytes for storage in a
// ChunkColumn's Sections array.
func NewSectionDocument(s *section.Section) SectionDocument {
	return SectionDocument{Block: s.Serialize()}
}

// ChunkColumn mirrors the conventional document shape spec.md §6 names:
// ten vertically-stacked sections plus the chunk-wide block-data blob
// (needsPhysics/heights/tints, see section.BlockChunkData).
type ChunkColumn struct {
	Sections  [10]SectionDocument
	BlockData section.BlockChunkData
}
