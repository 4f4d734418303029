// Package endian centralizes the byte-order accessors voxstore's codecs use.
//
// Unlike a typical binary format, voxstore's layers do not negotiate
// endianness: the region file header, index table, blob headers, and the
// section codec are always big-endian, while the 2D palette codec is
// always little-endian (spec.md §9: "mixed endianness is intentional").
// This package exists so call sites never spell out binary.BigEndian /
// binary.LittleEndian directly — a stray choice of the wrong one in the
// wrong package is a silent on-disk format break, not a compile error.
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder from encoding/binary into a
// single interface, satisfied by binary.BigEndian and binary.LittleEndian.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// BE is the fixed engine used by the region file and the section codec.
func BE() Engine { return binary.BigEndian }

// LE is the fixed engine used by the 2D palette codec.
func LE() Engine { return binary.LittleEndian }
