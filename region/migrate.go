package region

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voxforge/voxstore/compress"
	"github.com/voxforge/voxstore/diag"
	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/format"
	"github.com/voxforge/voxstore/internal/hash"
)

// migrateV0 rewrites a legacy v0 region file at path into the current v1
// layout, per spec.md §4.4.M: the legacy file is preserved at path+".old"
// until every blob has been re-read and re-written; it is only removed
// once the new file is complete, so a failed migration always leaves a
// readable copy behind.
func migrateV0(path string, codec compress.Codec, logger diag.Logger) error {
	oldPath := path + ".old"
	if err := os.Rename(path, oldPath); err != nil {
		return fmt.Errorf("region: rename %s for migration: %w", path, err)
	}

	if err := runV0Migration(oldPath, path, codec, logger); err != nil {
		return err
	}

	if err := os.Remove(oldPath); err != nil {
		logger.Warn("migration completed but the legacy file could not be removed",
			zap.String("path", oldPath), zap.Error(err))
	}

	return nil
}

func runV0Migration(oldPath, newPath string, codec compress.Codec, logger diag.Logger) error {
	oldFile, err := os.OpenFile(oldPath, os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("region: open legacy file %s: %w", oldPath, err)
	}
	defer oldFile.Close()

	hdr, err := readHeader(oldFile)
	if err != nil {
		return err
	}
	if hdr.version != format.VersionLegacy {
		return errs.ErrUnsupportedVersion
	}

	dst, err := Open(newPath, WithBlobCount(hdr.blobCount), WithSegmentSize(hdr.segmentSize), WithCodec(codec))
	if err != nil {
		return fmt.Errorf("region: create migration target %s: %w", newPath, err)
	}
	defer dst.Close()

	migrated := 0
	for k := 0; k < hdr.blobCount; k++ {
		payload, err := readV0Chain(oldFile, hdr.blobCount, hdr.segmentSize, k, codec)
		if err != nil {
			return fmt.Errorf("region: read legacy slot %d: %w", k, err)
		}
		if payload == nil {
			continue
		}

		if err := dst.WriteBlob(k, payload); err != nil {
			return fmt.Errorf("region: migrate slot %d: %w", k, err)
		}
		migrated++
		logger.Debug("migrated legacy blob",
			zap.Int("slot", k), zap.Uint64("digest", hash.Digest(payload)))
	}

	logger.Info("v0 migration rewrote blobs", zap.Int("count", migrated))

	return dst.Force(true)
}

// v0SegmentsBase and v0SegmentPos mirror segmentsBase/segmentPos but for
// the legacy layout, whose segment area sits after both the primary and
// the (here, ignored — §9 Open Question a) "temp" index table.
func v0SegmentsBase(blobCount int) int64 {
	return int64(HeaderSize) + 8*int64(blobCount)
}

func v0SegmentPos(blobCount, segmentSize, seg int) int64 {
	return v0SegmentsBase(blobCount) + int64(seg-1)*int64(segmentSize)
}

func readV0IndexEntry(f *os.File, k int) (int32, error) {
	buf := make([]byte, 4)
	if _, err := f.ReadAt(buf, int64(HeaderSize+4*k)); err != nil {
		return 0, fmt.Errorf("%w: legacy index entry %d: %w", errs.ErrUnexpectedEOF, k, err)
	}
	return int32(endian.BE().Uint32(buf)), nil
}

// readV0Chain reads and decompresses the payload chained from slot k's
// first segment, following nextSeg headers until v0ChainEnd, using codec
// to decompress (the same codec the migration target was opened with).
// Segments in the chain need not be contiguous. Returns (nil, nil) if the
// slot is unallocated.
func readV0Chain(f *os.File, blobCount, segmentSize, k int, codec compress.Codec) ([]byte, error) {
	first, err := readV0IndexEntry(f, k)
	if err != nil {
		return nil, err
	}
	if first == 0 {
		return nil, nil
	}

	be := endian.BE()

	var srcLen, compLen uint32
	var payload []byte
	seg := first
	firstSeg := true

	for {
		pos := v0SegmentPos(blobCount, segmentSize, int(seg))

		hdrBuf := make([]byte, v0SegmentHeaderSize)
		if _, err := f.ReadAt(hdrBuf, pos); err != nil {
			return nil, fmt.Errorf("%w: legacy segment %d header: %w", errs.ErrUnexpectedEOF, seg, err)
		}
		next := int32(be.Uint32(hdrBuf))

		bodyOffset := pos + v0SegmentHeaderSize
		bodyLen := segmentSize - v0SegmentHeaderSize

		if firstSeg {
			lenBuf := make([]byte, 8)
			if _, err := f.ReadAt(lenBuf, bodyOffset); err != nil {
				return nil, fmt.Errorf("%w: legacy blob header at slot %d: %w", errs.ErrUnexpectedEOF, k, err)
			}
			srcLen = be.Uint32(lenBuf[0:4])
			compLen = be.Uint32(lenBuf[4:8])
			payload = make([]byte, 0, compLen)
			bodyOffset += 8
			bodyLen -= 8
			firstSeg = false
		}

		remaining := int(compLen) - len(payload)
		take := bodyLen
		if take > remaining {
			take = remaining
		}
		if take > 0 {
			chunk := make([]byte, take)
			if _, err := f.ReadAt(chunk, bodyOffset); err != nil {
				return nil, fmt.Errorf("%w: legacy segment %d body: %w", errs.ErrUnexpectedEOF, seg, err)
			}
			payload = append(payload, chunk...)
		}

		if next == v0ChainEnd {
			break
		}
		if next <= 0 {
			return nil, errs.ErrCorruptBlob
		}
		seg = next
	}

	if len(payload) != int(compLen) {
		return nil, errs.ErrCorruptBlob
	}

	return codec.Decompress(payload, int(srcLen))
}
