package region

// Magic is the fixed 20-byte ASCII marker at the start of every region
// file, with no NUL terminator and no length prefix.
const Magic = "HytaleIndexedStorage"

// Header layout (big-endian, 32 bytes total):
//
//	magic[20] | version:BE32 | blobCount:BE32 | segmentSize:BE32
const (
	magicLen     = 20
	HeaderSize   = 32
	blobHeaderSize = 8 // srcLen:BE32 | compLen:BE32
)

// DefaultBlobCount and DefaultSegmentSize are the region file defaults
// recorded in the header when not overridden by region.Open options.
// They are not required to match across opens of the same file; the
// values actually on disk always win.
const (
	DefaultBlobCount  = 1024
	DefaultSegmentSize = 4096
)

// v0 legacy layout constants, used only by migrateV0.
const (
	v0SegmentHeaderSize = 4 // nextSeg:BE32, INT_MIN sentinel marks chain end
	v0ChainEnd          = int32(-2147483648)
)
