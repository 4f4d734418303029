package compress

import (
	"fmt"

	"github.com/voxforge/voxstore/format"
)

// Codec compresses and decompresses blob payloads for a region file.
//
// Decompress takes the uncompressed length recorded alongside the blob (its
// "source length") and must return errs.ErrDecompressedSize if the actual
// decompressed length disagrees, so callers can tell a truncated/corrupt
// segment run apart from a codec-level decode error.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte, srcLen int) ([]byte, error)
}

// CreateCodec is a factory function that creates a Codec for the given
// compression type.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
