// Package compress provides the compression codecs used for a region
// file's blob payloads: Zstandard (the default), S2, LZ4, and a no-op
// passthrough. A codec compresses a blob before it is written to a
// segment run and decompresses it on read, checking the decompressed
// length against the source length recorded in the blob's 8-byte header.
package compress
