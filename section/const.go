package section

// Section geometry.
const (
	Side  = 32           // side length of the voxel cube
	Cells = Side * Side * Side // total addressable voxel positions (32768)
)

// HeaderSize is the fixed big-endian header: migrationCount(4) | paletteType(1) | paletteSize(2).
const HeaderSize = 7

// AirName is the conventional block name for the implicit Empty-tag entry.
const AirName = "Air"

// MissingSentinel is returned by Lookup when a voxel references an internal
// ID that has no corresponding palette entry (should not happen on
// well-formed data, but spec.md requires a defined fallback).
const MissingSentinel = "Empty"

// byteDemoteThreshold and shortDemoteThreshold are the live-unique-count
// cutoffs Compact uses to decide whether to drop down a tier. They sit
// slightly below the tier's maximum capacity (16 and 256 respectively) to
// damp flutter around the boundary, per spec.md §3/§4.3.
const (
	byteDemoteThreshold  = 14
	shortDemoteThreshold = 254
)
