package palette2d

import "github.com/voxforge/voxstore/endian"

var tintCodec = entryCodec[int32]{
	width: 4,
	put:   func(buf []byte, v int32) { endian.LE().PutUint32(buf, uint32(v)) },
	get:   func(buf []byte) int32 { return int32(endian.LE().Uint32(buf)) },
}

// Tints is a 32x32 biome-tint grid. Entries are little-endian int32 holding
// a 24-bit RGB value packed as (R<<16)|(G<<8)|B.
type Tints = Grid[int32]

// NewTints creates an empty tint grid ready for Set/SetRGB calls.
func NewTints() *Tints {
	return newGrid(tintCodec)
}

// DeserializeTints decodes a tint grid from its serialised form.
func DeserializeTints(data []byte) (*Tints, error) {
	return deserialize(data, tintCodec)
}

// TintsByteLen reports how many leading bytes of data a serialised Tints
// grid occupies, for callers splitting a buffer that holds more than one
// grid back to back.
func TintsByteLen(data []byte) (int, error) {
	return byteLen(data, tintCodec.width)
}

// PackRGB combines 8-bit components into the grid's 24-bit packed tint value.
func PackRGB(r, g, b uint8) int32 {
	return int32(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// UnpackRGB splits a packed tint value back into its 8-bit components.
func UnpackRGB(v int32) (r, g, b uint8) {
	u := uint32(v)
	return uint8(u >> 16 & 0xFF), uint8(u >> 8 & 0xFF), uint8(u & 0xFF)
}

// SetRGB stores an RGB tint at grid coordinate (x, z).
//
// Tints is an alias for Grid[int32], and Go does not allow declaring new
// methods on an instantiated generic type, so this is a free function
// rather than a method.
func SetRGB(g *Tints, x, z int, r, g8, b uint8) {
	g.Set(x, z, PackRGB(r, g8, b))
}

// GetRGB returns the RGB components stored at grid coordinate (x, z).
func GetRGB(g *Tints, x, z int) (r, gr, b uint8) {
	return UnpackRGB(g.Get(x, z))
}
