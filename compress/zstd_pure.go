package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/voxforge/voxstore/errs"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation
// overhead. klauspost/compress/zstd is explicitly designed for this: the
// decoder operates without allocations after a warmup. Decoders aren't
// parameterized by level (only encoders are), so one pool serves every
// ZstdCodec regardless of its configured level.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPools holds one sync.Pool per encoder speed preset, built
// lazily since most processes only ever use DefaultZstdLevel.
var (
	zstdEncoderPoolsMu sync.Mutex
	zstdEncoderPools   = map[zstd.EncoderLevel]*sync.Pool{}
)

func zstdEncoderPoolFor(level zstd.EncoderLevel) *sync.Pool {
	zstdEncoderPoolsMu.Lock()
	defer zstdEncoderPoolsMu.Unlock()

	if p, ok := zstdEncoderPools[level]; ok {
		return p
	}

	p := &sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}
			return encoder
		},
	}
	zstdEncoderPools[level] = p

	return p
}

// Compress compresses data using a pooled Zstandard encoder at c's level.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	level := zstd.EncoderLevelFromZstd(c.level)

	pool := zstdEncoderPoolFor(level)
	encoder := pool.Get().(*zstd.Encoder)
	defer pool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data using a pooled decoder and
// verifies the result matches srcLen.
func (c ZstdCodec) Decompress(data []byte, srcLen int) ([]byte, error) {
	if len(data) == 0 {
		if srcLen != 0 {
			return nil, errs.ErrDecompressedSize
		}
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, make([]byte, 0, srcLen))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", errs.ErrCorruptBlob, err)
	}
	if len(decompressed) != srcLen {
		return nil, errs.ErrDecompressedSize
	}

	return decompressed, nil
}
