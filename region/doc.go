// Package region implements the indexed region file (IRF): a single file
// holding up to blobCount opaque, independently addressable blobs backed
// by fixed-size segments, a memory-mapped index table, and per-slot
// optimistic-read locking. Region files store compressed chunk-section
// and heightmap/tint payloads; the codec and document shape above the
// blob boundary are the caller's concern (see compress.Codec and
// section/palette2d for the two payload formats this repository defines).
package region
