package region

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/voxforge/voxstore/errs"
)

// lockFile takes an advisory, cross-process exclusive flock on the
// region file for the lifetime of the handle (region.WithFileLock).
func (r *Region) lockFile() error {
	if err := unix.Flock(int(r.file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return fmt.Errorf("region: flock %s: %w", r.path, err)
	}
	return nil
}

func (r *Region) unlockFile() {
	_ = unix.Flock(int(r.file.Fd()), unix.LOCK_UN)
}

// Keys returns a best-effort snapshot of the slots currently holding a
// blob. Per spec.md, this is an optimistic scan of the mmapped index with
// no cross-slot atomicity: a concurrent remove racing the scan can cause
// a false negative; callers must treat the result as a snapshot, not a
// transactionally consistent view.
func (r *Region) Keys() []int {
	keys := make([]int, 0)
	for k := 0; k < r.blobCount; k++ {
		if r.readIndex(k) != 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Force flushes the region file to stable storage: the file's payload
// and, if metaData is true, the memory-mapped index table.
func (r *Region) Force(metaData bool) error {
	if err := r.file.Sync(); err != nil {
		return fmt.Errorf("region: sync %s: %w", r.path, err)
	}
	if metaData {
		if err := r.indexMmap.Flush(); err != nil {
			return fmt.Errorf("region: flush index table: %w", err)
		}
	}
	return nil
}

// Close unmaps the index table and closes the underlying file. Close is
// idempotent; a second call returns errs.ErrAlreadyClosed.
func (r *Region) Close() error {
	r.closeMu.Lock()
	defer r.closeMu.Unlock()

	if r.closed {
		return errs.ErrAlreadyClosed
	}
	r.closed = true

	var firstErr error
	if r.indexMmap != nil {
		if err := r.indexMmap.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("region: unmap index table: %w", err)
		}
	}
	if r.fileLocked {
		r.unlockFile()
	}
	if err := r.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("region: close %s: %w", r.path, err)
	}

	return firstErr
}
