// Package errs collects the sentinel errors returned across voxstore's
// codecs. Call sites wrap these with additional context via fmt.Errorf's
// %w verb; callers compare with errors.Is.
package errs

import "errors"

var (
	// Region file (IRF) errors.
	ErrInvalidMagic       = errors.New("voxstore: invalid region file magic")
	ErrUnsupportedVersion = errors.New("voxstore: unsupported region file version")
	ErrInvalidBlobCount   = errors.New("voxstore: blobCount must be > 0")
	ErrInvalidSegmentSize = errors.New("voxstore: segmentSize must be > 0")
	ErrSlotOutOfRange     = errors.New("voxstore: blob key out of range")
	ErrNoFreeSegments     = errors.New("voxstore: no free contiguous segment run available")
	ErrCorruptBlob        = errors.New("voxstore: corrupt blob payload")
	ErrUnexpectedEOF      = errors.New("voxstore: unexpected end of file reading a known-length payload")
	ErrMigrationFailed    = errors.New("voxstore: v0 to v1 migration failed")
	ErrAlreadyClosed      = errors.New("voxstore: region file is closed")

	// Section palette (SP) errors.
	ErrInvalidSectionHeader = errors.New("voxstore: invalid section header")
	ErrPaletteOverflow      = errors.New("voxstore: section palette exceeds tag capacity")
	ErrUnknownPaletteTag    = errors.New("voxstore: unknown palette tag")
	ErrMissingPaletteEntry  = errors.New("voxstore: voxel references unknown internal id")

	// 2D palette (P2D) errors.
	ErrPalette2DOverflow = errors.New("voxstore: 2D palette exceeds 1024 distinct values")

	// Bit-packed index array (BPI) errors.
	ErrBitWidthRange = errors.New("voxstore: bit width must be within [1,16]")
	ErrValueOverflow = errors.New("voxstore: value does not fit in the configured bit width")
	ErrIndexOutOfRange = errors.New("voxstore: index out of range")

	// Compression codec errors.
	ErrUnsupportedCodec  = errors.New("voxstore: unsupported compression type")
	ErrDecompressedSize  = errors.New("voxstore: decompressed length does not match recorded source length")
)
