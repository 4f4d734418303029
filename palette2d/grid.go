// Package palette2d implements the dictionary-compressed 32x32 grid codec
// used for heightmap (int16) and biome-tint (int32 packed RGB) layers.
// Both share the generic core in this file; heights.go and tints.go supply
// the entry width and little-endian put/get pair for each variant.
//
// The wire format is always little-endian, independent of the section
// codec's big-endian framing (spec.md §9): count:LE16, count entries,
// packedLen:LE32, packed bytes. The packed stream is a bitpack.Array at
// B=10, N=1024, so a grid can hold up to min(1024, 32767) distinct values
// before recompaction (and eventually encoding) fails.
package palette2d

import (
	"github.com/voxforge/voxstore/bitpack"
	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
)

const (
	// Side is the width and height of the grid in cells.
	Side = 32
	// Cells is the total number of addressable grid positions (32*32).
	Cells = Side * Side
	// bitWidth is the fixed BPI bit width used for the packed index stream.
	bitWidth = 10
	// maxPalette is the hard upper bound on distinct values a grid may hold.
	maxPalette = 1024
)

// FlatIndex returns the flat array position for grid coordinate (x, z).
func FlatIndex(x, z int) int {
	return x + Side*z
}

// entryCodec describes how to read and write one palette entry of a
// specific width, so Grid[T] stays generic over int16 (heights) and
// int32 (tints) without reflection.
type entryCodec[T comparable] struct {
	width int
	put   func(buf []byte, v T)
	get   func(buf []byte) T
}

// Grid is a dictionary-compressed 32x32 grid of T (int16 heights or int32
// tints), backed by a bitpack.Array of 10-bit indices.
type Grid[T comparable] struct {
	codec   entryCodec[T]
	values  [Cells]T
	palette []T
	index   map[T]uint16
	packed  *bitpack.Array
}

func newGrid[T comparable](codec entryCodec[T]) *Grid[T] {
	packed, _ := bitpack.New(bitWidth, Cells) // bitWidth/Cells are fixed constants, never invalid
	return &Grid[T]{
		codec:  codec,
		index:  make(map[T]uint16, 16),
		packed: packed,
	}
}

// Get returns the value stored at grid coordinate (x, z).
func (g *Grid[T]) Get(x, z int) T {
	return g.values[FlatIndex(x, z)]
}

// Set stores v at grid coordinate (x, z), growing the palette if v is new.
//
// If the palette has reached its 1024-entry capacity and v is new, Set
// writes v into the cell first and then recompacts (dropping values no
// longer referenced by the grid). The grid has exactly 1024 cells, so the
// rebuilt palette always contains v and never exceeds capacity; the
// ErrPalette2DOverflow panic below is a guard that this path does not reach.
func (g *Grid[T]) Set(x, z int, v T) {
	pos := FlatIndex(x, z)
	idx, ok := g.index[v]
	if !ok {
		if len(g.palette) >= maxPalette {
			g.values[pos] = v
			g.recompact()
			idx, ok = g.index[v]
		}
		if !ok {
			if len(g.palette) >= maxPalette {
				panic(errs.ErrPalette2DOverflow)
			}
			idx = uint16(len(g.palette))
			g.palette = append(g.palette, v)
			g.index[v] = idx
		}
	}

	g.values[pos] = v
	g.packed.Set(pos, uint32(idx))
}

// recompact rebuilds the palette and packed stream from only the values
// currently referenced by the grid, in first-seen order. Triggered
// automatically by Set when the palette reaches 1024 entries (spec.md §9).
func (g *Grid[T]) recompact() {
	newPalette := make([]T, 0, len(g.palette))
	newIndex := make(map[T]uint16, len(g.palette))

	for i := 0; i < Cells; i++ {
		v := g.values[i]
		if _, ok := newIndex[v]; !ok {
			newIndex[v] = uint16(len(newPalette))
			newPalette = append(newPalette, v)
		}
	}

	g.palette = newPalette
	g.index = newIndex
	g.packed, _ = bitpack.New(bitWidth, Cells)
	for i := 0; i < Cells; i++ {
		g.packed.Set(i, uint32(g.index[g.values[i]]))
	}
}

// Serialize encodes the grid as count:LE16 | entries[count] | packedLen:LE32 | packed.
func (g *Grid[T]) Serialize() []byte {
	le := endian.LE()

	packedBytes := g.packed.Bytes()
	size := 2 + len(g.palette)*g.codec.width + 4 + len(packedBytes)
	buf := make([]byte, size)

	off := 0
	le.PutUint16(buf[off:], uint16(len(g.palette)))
	off += 2
	for _, v := range g.palette {
		g.codec.put(buf[off:off+g.codec.width], v)
		off += g.codec.width
	}
	le.PutUint32(buf[off:], uint32(len(packedBytes)))
	off += 4
	copy(buf[off:], packedBytes)

	return buf
}

// byteLen reports how many bytes of data a serialised grid of the given
// entry width occupies, without fully decoding it — used by callers (e.g.
// section.DeserializeBlockChunkData) that concatenate a heights grid and a
// tints grid back to back and need to find the split point.
func byteLen(data []byte, entryWidth int) (int, error) {
	le := endian.LE()

	if len(data) < 2 {
		return 0, errs.ErrUnexpectedEOF
	}
	count := int(le.Uint16(data[0:2]))
	off := 2 + count*entryWidth

	if off+4 > len(data) {
		return 0, errs.ErrUnexpectedEOF
	}
	packedLen := int(le.Uint32(data[off:]))
	off += 4 + packedLen

	if off > len(data) {
		return 0, errs.ErrUnexpectedEOF
	}
	return off, nil
}

// deserialize decodes a grid from its serialised byte form.
func deserialize[T comparable](data []byte, codec entryCodec[T]) (*Grid[T], error) {
	le := endian.LE()

	if len(data) < 2 {
		return nil, errs.ErrUnexpectedEOF
	}
	count := int(le.Uint16(data[0:2]))
	off := 2

	if count > maxPalette {
		return nil, errs.ErrPalette2DOverflow
	}

	palette := make([]T, count)
	for i := 0; i < count; i++ {
		if off+codec.width > len(data) {
			return nil, errs.ErrUnexpectedEOF
		}
		palette[i] = codec.get(data[off : off+codec.width])
		off += codec.width
	}

	if off+4 > len(data) {
		return nil, errs.ErrUnexpectedEOF
	}
	packedLen := int(le.Uint32(data[off:]))
	off += 4

	if off+packedLen > len(data) {
		return nil, errs.ErrUnexpectedEOF
	}
	packedBuf := make([]byte, packedLen)
	copy(packedBuf, data[off:off+packedLen])

	packed, err := bitpack.Wrap(packedBuf, bitWidth, Cells)
	if err != nil {
		return nil, err
	}

	index := make(map[T]uint16, count)
	for i, v := range palette {
		index[v] = uint16(i)
	}

	g := &Grid[T]{
		codec:   codec,
		palette: palette,
		index:   index,
		packed:  packed,
	}
	if count == 0 {
		// An all-zero-value grid (never Set) has an empty palette; leave
		// g.values at its zero value instead of indexing an empty slice.
		return g, nil
	}
	for i := 0; i < Cells; i++ {
		g.values[i] = palette[packed.Get(i)]
	}

	return g, nil
}
