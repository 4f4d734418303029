package region

import (
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/zap"

	"github.com/voxforge/voxstore/compress"
	"github.com/voxforge/voxstore/diag"
	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/format"
	"github.com/voxforge/voxstore/internal/options"
)

// Region is an open handle on an indexed region file (IRF): blobCount
// independently addressable blobs backed by fixed-size segments, with a
// memory-mapped index table and per-slot optimistic-read locking.
//
// A *Region is safe for concurrent use by multiple goroutines.
type Region struct {
	path        string
	file        *os.File
	blobCount   int
	segmentSize int

	indexMmap mmap.MMap // [0, HeaderSize+4*blobCount); index table lives at [HeaderSize, HeaderSize+4*blobCount), big-endian uint32 per slot

	slotLocks []slotLock
	segLocks  *segLockTable
	used      *segmentSet

	extendMu     sync.Mutex
	maxSegment   int // highest segment number currently addressable within the file

	codec        compress.Codec
	flushOnWrite bool
	logger       diag.Logger
	fileLocked   bool

	closeMu sync.Mutex
	closed  bool
}

// Stats summarizes a region file's segment allocation, for callers
// deciding whether fragmentation warrants a rebuild (spec.md's "callers
// that care must rebuild via full iteration of keys()" design note).
type Stats struct {
	SegmentCount    int
	UsedSegments    int
	LargestFreeRun  int
}

func segmentsBase(blobCount int) int64 {
	return int64(HeaderSize) + 4*int64(blobCount)
}

func segmentPos(blobCount, segmentSize, seg int) int64 {
	return segmentsBase(blobCount) + int64(seg-1)*int64(segmentSize)
}

// Open opens (creating if necessary) the region file at path.
func Open(path string, opts ...Option) (*Region, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.blobCount <= 0 {
		return nil, errs.ErrInvalidBlobCount
	}
	if cfg.segmentSize <= 0 {
		return nil, errs.ErrInvalidSegmentSize
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("region: stat %s: %w", path, err)
	}

	blobCount, segmentSize := cfg.blobCount, cfg.segmentSize

	if info.Size() == 0 {
		if err := initEmptyFile(file, blobCount, segmentSize); err != nil {
			file.Close()
			return nil, err
		}
	} else {
		hdr, err := readHeader(file)
		if err != nil {
			file.Close()
			return nil, err
		}

		blobCount, segmentSize = hdr.blobCount, hdr.segmentSize

		if hdr.version == format.VersionLegacy {
			cfg.logger.Info("migrating legacy v0 region file", zap.String("path", path))
			file.Close()

			if err := migrateV0(path, cfg.codec, cfg.logger); err != nil {
				cfg.logger.Error("v0 migration failed", zap.String("path", path), zap.Error(err))
				return nil, fmt.Errorf("%w: %w", errs.ErrMigrationFailed, err)
			}

			file, err = os.OpenFile(path, os.O_RDWR, 0o644)
			if err != nil {
				return nil, fmt.Errorf("region: reopen migrated %s: %w", path, err)
			}
			cfg.logger.Info("migration complete", zap.String("path", path))
		} else if hdr.version != format.VersionCurrent {
			file.Close()
			return nil, errs.ErrUnsupportedVersion
		}
	}

	r := &Region{
		path:        path,
		file:        file,
		blobCount:   blobCount,
		segmentSize: segmentSize,
		slotLocks:   newSlotLocks(blobCount),
		codec:       cfg.codec,
		flushOnWrite: cfg.flushOnWrite,
		logger:      cfg.logger,
	}

	if cfg.fileLock {
		if err := r.lockFile(); err != nil {
			file.Close()
			return nil, err
		}
		r.fileLocked = true
	}

	// mmap-go requires the mapping offset to be a multiple of the system
	// page size; HeaderSize (32) never is, so the header and index table
	// are mapped together starting at file offset 0, and readIndex/
	// writeIndex address the index table at its real HeaderSize+4*k offset
	// within that mapping.
	idx, err := mmap.MapRegion(file, HeaderSize+4*blobCount, mmap.RDWR, 0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("region: mmap index table: %w", err)
	}
	r.indexMmap = idx

	info, err = file.Stat()
	if err != nil {
		r.Close()
		return nil, err
	}
	extent := info.Size() - segmentsBase(blobCount)
	if extent < 0 {
		extent = 0
	}
	r.maxSegment = int(extent / int64(segmentSize))

	r.segLocks = newSegLockTable(r.maxSegment)
	r.used = newSegmentSet(r.maxSegment)

	if err := r.reconstructUsedSegments(); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *Region) readIndex(k int) uint32 {
	off := HeaderSize + 4*k
	return endian.BE().Uint32(r.indexMmap[off : off+4])
}

func (r *Region) writeIndex(k int, seg uint32) {
	off := HeaderSize + 4*k
	endian.BE().PutUint32(r.indexMmap[off:off+4], seg)
}

// reconstructUsedSegments walks every slot's current segment, per spec's
// open protocol step 6, rebuilding the in-memory free-segment bitset from
// the on-disk index and blob headers.
func (r *Region) reconstructUsedSegments() error {
	for k := 0; k < r.blobCount; k++ {
		s := r.readIndex(k)
		if s == 0 {
			continue
		}

		hdr, err := r.readBlobHeader(int(s))
		if err != nil {
			return err
		}

		need := segmentsNeeded(blobHeaderSize+int(hdr.compLen), r.segmentSize)
		r.used.setRange(int(s), need)
	}

	return nil
}

func segmentsNeeded(totalBytes, segmentSize int) int {
	return (totalBytes + segmentSize - 1) / segmentSize
}

// Stats reports the region file's segment allocation.
func (r *Region) Stats() Stats {
	return Stats{
		SegmentCount:   r.maxSegment,
		UsedSegments:   r.used.usedCount(r.maxSegment),
		LargestFreeRun: r.used.largestFreeRun(r.maxSegment),
	}
}
