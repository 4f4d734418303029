package compress

import "github.com/voxforge/voxstore/errs"

// NoOpCodec passes blob payloads through unmodified.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a codec that performs no compression.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) Decompress(data []byte, srcLen int) ([]byte, error) {
	if len(data) != srcLen {
		return nil, errs.ErrDecompressedSize
	}
	return data, nil
}
