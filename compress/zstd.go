package compress

// DefaultZstdLevel matches the region file format's documented default
// compression level (spec.md §6: default 3, valid range [1, 22]).
const DefaultZstdLevel = 3

// MinZstdLevel and MaxZstdLevel bound the level accepted by
// NewZstdCodecLevel, matching the canonical zstd level range even though
// the pure-Go encoder only implements four internal speed presets.
const (
	MinZstdLevel = 1
	MaxZstdLevel = 22
)

// ZstdCodec compresses blob payloads with Zstandard, via the pure-Go
// klauspost/compress/zstd implementation. This is region.Open's default
// codec: the best ratio of the registry at a moderate CPU cost, and the
// only one spec.md's voxel section/heightmap/tint payloads need — the
// teacher's cgo-only gozstd path is dropped entirely (see DESIGN.md).
type ZstdCodec struct {
	level int
}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstd codec at DefaultZstdLevel.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{level: DefaultZstdLevel}
}

// NewZstdCodecLevel creates a Zstd codec at the given zstd-scale level
// ([1,22]), mapped onto the pure-Go encoder's speed presets via
// zstd.EncoderLevelFromZstd.
func NewZstdCodecLevel(level int) ZstdCodec {
	if level < MinZstdLevel {
		level = MinZstdLevel
	}
	if level > MaxZstdLevel {
		level = MaxZstdLevel
	}
	return ZstdCodec{level: level}
}
