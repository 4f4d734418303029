package region

import (
	"github.com/voxforge/voxstore/compress"
	"github.com/voxforge/voxstore/diag"
	"github.com/voxforge/voxstore/internal/options"
)

// config collects Open's settings, built up by applying Options before a
// new file is created. An existing file's header always wins over
// blobCount/segmentSize for a file that already exists.
type config struct {
	blobCount            int
	segmentSize          int
	flushOnWrite         bool
	fileLock             bool
	codec                compress.Codec
	logger               diag.Logger
}

func newConfig() *config {
	return &config{
		blobCount:   DefaultBlobCount,
		segmentSize: DefaultSegmentSize,
		codec:       compress.NewZstdCodec(),
		logger:      diag.NewNop(),
	}
}

// Option configures region.Open.
type Option = options.Option[*config]

// WithBlobCount sets the slot count used when creating a new region file.
// Ignored when opening an existing file.
func WithBlobCount(n int) Option {
	return options.NoError(func(c *config) {
		if n > 0 {
			c.blobCount = n
		}
	})
}

// WithSegmentSize sets the segment size used when creating a new region
// file. Ignored when opening an existing file.
func WithSegmentSize(n int) Option {
	return options.NoError(func(c *config) {
		if n > 0 {
			c.segmentSize = n
		}
	})
}

// WithFlushOnWrite switches to write-through mode: every WriteBlob and
// RemoveBlob flushes payload and index before returning.
func WithFlushOnWrite(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.flushOnWrite = enabled
	})
}

// WithCompressionLevel selects the Zstd codec at the given zstd-scale
// level ([1,22], default 3). Options are applied in order, so when this is
// combined with WithCodec, whichever of the two comes last sets the codec.
func WithCompressionLevel(level int) Option {
	return options.NoError(func(c *config) {
		c.codec = compress.NewZstdCodecLevel(level)
	})
}

// WithCodec overrides the default Zstd codec with any compress.Codec,
// e.g. compress.NewS2Codec() or compress.NewLZ4Codec().
func WithCodec(codec compress.Codec) Option {
	return options.NoError(func(c *config) {
		if codec != nil {
			c.codec = codec
		}
	})
}

// WithLogger attaches a diag.Logger for migration, corruption, and
// lock-contention diagnostics. Defaults to a no-op logger.
func WithLogger(logger diag.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}

// WithFileLock requests an advisory, cross-process exclusive flock on the
// region file for the lifetime of the handle.
func WithFileLock(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.fileLock = enabled
	})
}
