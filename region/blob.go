package region

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/internal/hash"
	"github.com/voxforge/voxstore/internal/pool"
)

const optimisticReadAttempts = 1

func (r *Region) checkSlot(k int) error {
	if k < 0 || k >= r.blobCount {
		return errs.ErrSlotOutOfRange
	}
	return nil
}

// ReadBlob returns the decompressed payload stored at slot k, or (nil, nil)
// if the slot is empty. It first attempts a lock-free optimistic read and
// falls back to a real read lock only if a concurrent write invalidates the
// optimistic attempt (spec.md §4.4's stamped-read semantics).
func (r *Region) ReadBlob(k int) ([]byte, error) {
	if err := r.checkSlot(k); err != nil {
		return nil, err
	}

	for i := 0; i < optimisticReadAttempts; i++ {
		if data, ok, err := r.tryOptimisticRead(k); ok {
			return data, err
		}
	}

	r.logger.Debug("optimistic read invalidated, falling back to read lock", zap.Int("slot", k))

	return r.lockedRead(k)
}

func (r *Region) tryOptimisticRead(k int) (data []byte, ok bool, err error) {
	sl := &r.slotLocks[k]

	tok := sl.beginRead()
	if tok%2 == 1 {
		return nil, false, nil // a writer currently holds the slot
	}

	s := r.readIndex(k)
	if s == 0 {
		if sl.validRead(tok) {
			return nil, true, nil
		}
		return nil, false, nil
	}

	data, err = r.readBlobAt(int(s))
	if !sl.validRead(tok) {
		return nil, false, nil
	}
	return data, true, err
}

func (r *Region) lockedRead(k int) ([]byte, error) {
	sl := &r.slotLocks[k]
	sl.rLock()
	defer sl.rUnlock()

	s := r.readIndex(k)
	if s == 0 {
		return nil, nil
	}
	return r.readBlobAt(int(s))
}

func (r *Region) readBlobAt(seg int) ([]byte, error) {
	hdr, err := r.readBlobHeader(seg)
	if err != nil {
		return nil, err
	}

	pos := segmentPos(r.blobCount, r.segmentSize, seg) + blobHeaderSize

	bb := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(bb)
	bb.ExtendOrGrow(int(hdr.compLen))

	if _, err := r.file.ReadAt(bb.Bytes(), pos); err != nil {
		return nil, fmt.Errorf("%w: blob payload at segment %d: %w", errs.ErrUnexpectedEOF, seg, err)
	}

	data, err := r.codec.Decompress(bb.Bytes(), int(hdr.srcLen))
	if err != nil {
		r.logger.Warn("corrupt blob payload",
			zap.Int("segment", seg), zap.Uint64("digest", hash.Digest(bb.Bytes())), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// WriteBlob compresses src and stores it at slot k, allocating a fresh
// contiguous segment run, writing it, flipping the index entry, and only
// then freeing the slot's previous segment run (spec.md §4.4 step order:
// old bytes stay readable until the index store that makes them orphaned).
func (r *Region) WriteBlob(k int, src []byte) error {
	if err := r.checkSlot(k); err != nil {
		return err
	}

	comp, err := r.codec.Compress(src)
	if err != nil {
		return fmt.Errorf("region: compress blob %d: %w", k, err)
	}
	need := segmentsNeeded(blobHeaderSize+len(comp), r.segmentSize)

	sl := &r.slotLocks[k]
	sl.lockWrite()
	defer sl.unlockWrite()

	oldS := r.readIndex(k)

	newS, err := r.allocateRun(need)
	if err != nil {
		return err
	}

	if err := r.writeBlobAt(newS, uint32(len(src)), comp); err != nil {
		r.used.clearRange(newS, need)
		r.segLocks.unlockRange(newS, need)
		return err
	}

	if r.flushOnWrite {
		if err := r.file.Sync(); err != nil {
			r.used.clearRange(newS, need)
			r.segLocks.unlockRange(newS, need)
			return fmt.Errorf("region: sync payload: %w", err)
		}
	}

	r.logger.Debug("wrote blob",
		zap.Int("slot", k), zap.Int("segment", newS), zap.Uint64("digest", hash.Digest(src)))

	r.writeIndex(k, uint32(newS))

	if r.flushOnWrite {
		if err := r.indexMmap.Flush(); err != nil {
			r.segLocks.unlockRange(newS, need)
			return fmt.Errorf("region: flush index: %w", err)
		}
	}

	r.segLocks.unlockRange(newS, need)

	if oldS != 0 {
		if oldHdr, err := r.readBlobHeader(int(oldS)); err == nil {
			oldNeed := segmentsNeeded(blobHeaderSize+int(oldHdr.compLen), r.segmentSize)
			r.used.clearRange(int(oldS), oldNeed)
		}
	}

	return nil
}

// allocateRun finds (or creates, by extending the file) a contiguous run of
// need free segments and takes their per-segment write locks, retrying from
// just past any range it loses the lock race on. Callers must release the
// locks via r.segLocks.unlockRange once the new range is no longer needed.
func (r *Region) allocateRun(need int) (int, error) {
	searchFrom := 1

	for {
		maxSeg := r.currentMaxSegment()

		start := r.used.reserveFreeRun(need, maxSeg, searchFrom)
		if start == 0 {
			var err error
			start, err = r.extendForRun(need)
			if err != nil {
				return 0, err
			}
		}

		if r.segLocks.tryLockRange(start, need) {
			return start, nil
		}

		r.used.clearRange(start, need)
		searchFrom = start + need
	}
}

func (r *Region) currentMaxSegment() int {
	r.extendMu.Lock()
	defer r.extendMu.Unlock()
	return r.maxSegment
}

// extendForRun grows the file to accommodate need additional segments at
// the tail, growing the lock table and free-segment bitset to match, and
// reserves the new range for the caller.
func (r *Region) extendForRun(need int) (int, error) {
	r.extendMu.Lock()
	defer r.extendMu.Unlock()

	start := r.maxSegment + 1
	newMax := r.maxSegment + need

	newSize := segmentsBase(r.blobCount) + int64(newMax)*int64(r.segmentSize)
	if err := r.file.Truncate(newSize); err != nil {
		return 0, fmt.Errorf("region: extend file: %w", err)
	}

	r.used.grow(newMax)
	r.segLocks.grow(newMax)
	r.maxSegment = newMax
	r.used.setRange(start, need)

	return start, nil
}

func (r *Region) writeBlobAt(seg int, srcLen uint32, comp []byte) error {
	be := endian.BE()

	bb := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(bb)
	bb.ExtendOrGrow(blobHeaderSize + len(comp))

	buf := bb.Bytes()
	be.PutUint32(buf[0:4], srcLen)
	be.PutUint32(buf[4:8], uint32(len(comp)))
	copy(buf[8:], comp)

	pos := segmentPos(r.blobCount, r.segmentSize, seg)
	if _, err := r.file.WriteAt(buf, pos); err != nil {
		return fmt.Errorf("region: write blob payload at segment %d: %w", seg, err)
	}
	return nil
}

// RemoveBlob zeroes slot k's index entry and frees its segment run. It is
// a no-op if the slot is already empty. Orphaned bytes are left on disk
// (spec.md's explicit policy choice, §9 Open Questions).
func (r *Region) RemoveBlob(k int) error {
	if err := r.checkSlot(k); err != nil {
		return err
	}

	sl := &r.slotLocks[k]
	sl.lockWrite()
	defer sl.unlockWrite()

	s := r.readIndex(k)
	if s == 0 {
		return nil
	}

	hdr, err := r.readBlobHeader(int(s))
	if err != nil {
		return err
	}
	need := segmentsNeeded(blobHeaderSize+int(hdr.compLen), r.segmentSize)

	r.writeIndex(k, 0)
	if r.flushOnWrite {
		if err := r.indexMmap.Flush(); err != nil {
			return fmt.Errorf("region: flush index: %w", err)
		}
	}

	r.used.clearRange(int(s), need)
	return nil
}
