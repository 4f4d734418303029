package compress

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCodec(),
		"LZ4":  NewLZ4Codec(),
		"S2":   NewS2Codec(),
		"Zstd": NewZstdCodec(),
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "small_text", data: []byte("Hello, voxel world!")},
		{name: "repeated_pattern", data: bytes.Repeat([]byte("STONE"), 100)},
		{name: "binary_data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{name: "single_byte", data: []byte{0x42}},
		{name: "section_sized", data: bytes.Repeat([]byte{0xAB}, 32768)},
		{name: "highly_compressible", data: make([]byte, 1<<20)},
	}

	codecs := getAllCodecs()

	for codecName, codec := range codecs {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed, len(tc.data))
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	codecs := getAllCodecs()

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil, 0)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_DecompressedSizeMismatch(t *testing.T) {
	codecs := getAllCodecs()
	data := bytes.Repeat([]byte("block-palette-entry"), 50)

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			if name == "NoOp" {
				t.Skip("NoOp's Decompress only checks length equality, covered separately")
			}

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, len(data)+1)
			require.ErrorIs(t, err, errs.ErrDecompressedSize)
		})
	}
}

func TestNoOpCodec_DecompressedSizeMismatch(t *testing.T) {
	codec := NewNoOpCodec()
	data := []byte("passthrough")

	_, err := codec.Decompress(data, len(data)+3)
	require.ErrorIs(t, err, errs.ErrDecompressedSize)
}

func TestAllCodecs_InterfaceCompliance(t *testing.T) {
	codecs := getAllCodecs()
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			var _ Codec = codec
			require.NotNil(t, codec)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "region")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0xFF), "region")
	require.Error(t, err)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	require.IsType(t, ZstdCodec{}, codec)

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		cType    format.CompressionType
		expected string
	}{
		{format.CompressionNone, "None"},
		{format.CompressionZstd, "Zstd"},
		{format.CompressionS2, "S2"},
		{format.CompressionLZ4, "LZ4"},
		{format.CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.cType), func(t *testing.T) {
			require.Equal(t, tt.expected, tt.cType.String())
		})
	}
}
