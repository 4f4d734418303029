package region

import (
	"bytes"
	"fmt"
	"os"

	"github.com/voxforge/voxstore/endian"
	"github.com/voxforge/voxstore/errs"
	"github.com/voxforge/voxstore/format"
	"github.com/voxforge/voxstore/internal/pool"
)

type header struct {
	version     format.Version
	blobCount   int
	segmentSize int
}

// initEmptyFile writes the 32-byte header and a zeroed index table for a
// freshly created region file, per spec.md's open protocol step 2.
func initEmptyFile(file *os.File, blobCount, segmentSize int) error {
	be := endian.BE()

	buf := make([]byte, HeaderSize+4*blobCount)
	copy(buf[0:magicLen], Magic)
	be.PutUint32(buf[magicLen:magicLen+4], uint32(format.VersionCurrent))
	be.PutUint32(buf[magicLen+4:magicLen+8], uint32(blobCount))
	be.PutUint32(buf[magicLen+8:magicLen+12], uint32(segmentSize))
	// index table (buf[32:]) is already zero-valued.

	if _, err := file.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("region: write initial header: %w", err)
	}

	return file.Sync()
}

// readHeader reads and validates the 32-byte header of an existing file.
func readHeader(file *os.File) (header, error) {
	be := endian.BE()

	bb := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(bb)
	bb.ExtendOrGrow(HeaderSize)
	buf := bb.Bytes()

	if _, err := file.ReadAt(buf, 0); err != nil {
		return header{}, fmt.Errorf("%w: region header: %w", errs.ErrUnexpectedEOF, err)
	}

	if !bytes.Equal(buf[0:magicLen], []byte(Magic)) {
		return header{}, errs.ErrInvalidMagic
	}

	version := format.Version(be.Uint32(buf[magicLen : magicLen+4]))
	if version != format.VersionLegacy && version != format.VersionCurrent {
		return header{}, errs.ErrUnsupportedVersion
	}

	return header{
		version:     version,
		blobCount:   int(be.Uint32(buf[magicLen+4 : magicLen+8])),
		segmentSize: int(be.Uint32(buf[magicLen+8 : magicLen+12])),
	}, nil
}

type blobHeader struct {
	srcLen  uint32
	compLen uint32
}

// readBlobHeader reads the 8-byte (srcLen, compLen) pair at segment seg.
func (r *Region) readBlobHeader(seg int) (blobHeader, error) {
	bb := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(bb)
	bb.ExtendOrGrow(blobHeaderSize)
	buf := bb.Bytes()

	pos := segmentPos(r.blobCount, r.segmentSize, seg)
	if _, err := r.file.ReadAt(buf, pos); err != nil {
		return blobHeader{}, fmt.Errorf("%w: blob header at segment %d: %w", errs.ErrUnexpectedEOF, seg, err)
	}

	be := endian.BE()
	return blobHeader{
		srcLen:  be.Uint32(buf[0:4]),
		compLen: be.Uint32(buf[4:8]),
	}, nil
}
