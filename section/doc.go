// Package section implements the section palette (SP) codec: the 32x32x32
// voxel grid format with four auto-promoting/demoting storage shapes
// (Empty, HalfByte, Byte, Short), a small block-name dictionary, and
// direct (non-bit-packed) internal IDs in the voxel array.
//
// Framing is always big-endian (spec.md §9); the voxel array stores the
// palette-local internal ID directly at the width its tag implies, trading
// a small density loss for branch-free lookup.
package section
