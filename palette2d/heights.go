package palette2d

import "github.com/voxforge/voxstore/endian"

var heightCodec = entryCodec[int16]{
	width: 2,
	put:   func(buf []byte, v int16) { endian.LE().PutUint16(buf, uint16(v)) },
	get:   func(buf []byte) int16 { return int16(endian.LE().Uint16(buf)) },
}

// Heights is a 32x32 heightmap grid, entries are little-endian int16.
type Heights = Grid[int16]

// NewHeights creates an empty heightmap grid ready for Set calls.
func NewHeights() *Heights {
	return newGrid(heightCodec)
}

// DeserializeHeights decodes a heightmap grid from its serialised form.
func DeserializeHeights(data []byte) (*Heights, error) {
	return deserialize(data, heightCodec)
}

// HeightsByteLen reports how many leading bytes of data a serialised
// Heights grid occupies, for callers splitting a buffer that holds more
// than one grid back to back.
func HeightsByteLen(data []byte) (int, error) {
	return byteLen(data, heightCodec.width)
}
