package compress

import (
	"github.com/klauspost/compress/s2"

	"github.com/voxforge/voxstore/errs"
)

// S2Codec compresses blob payloads with S2, the Snappy-compatible
// algorithm from klauspost/compress — kept in the registry for parity with
// the teacher's codec set and available via region.WithCodec for callers
// who'd rather trade ratio for speed than use the Zstd default.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return s2.Encode(nil, data), nil
}

func (c S2Codec) Decompress(data []byte, srcLen int) ([]byte, error) {
	if len(data) == 0 {
		if srcLen != 0 {
			return nil, errs.ErrDecompressedSize
		}
		return nil, nil
	}

	decompressed, err := s2.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	if len(decompressed) != srcLen {
		return nil, errs.ErrDecompressedSize
	}

	return decompressed, nil
}
