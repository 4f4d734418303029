package compress

import (
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/voxforge/voxstore/errs"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse; the type
// carries internal hash-table state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses blob payloads with LZ4 block compression, kept in
// the registry for parity with the teacher's codec set.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses LZ4 block data. Since a region blob's header
// records its exact decompressed length, the buffer can be sized
// precisely up front rather than the teacher's grow-and-retry loop.
func (c LZ4Codec) Decompress(data []byte, srcLen int) ([]byte, error) {
	if len(data) == 0 {
		if srcLen != 0 {
			return nil, errs.ErrDecompressedSize
		}
		return nil, nil
	}

	buf := make([]byte, srcLen)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n != srcLen {
		return nil, errs.ErrDecompressedSize
	}

	return buf[:n], nil
}
