package blockcompress

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
)

// newRawInflater opens b as a raw DEFLATE stream with no zlib or gzip
// framing, the second of the three window-bit configurations the reference
// decoder cycles through.
func newRawInflater(b []byte) io.ReadCloser {
	return flate.NewReader(bytes.NewReader(b))
}

// newGzipReader opens b as a gzip stream, the third configuration
// (MAX_WBITS+32, zlib's "auto-detect gzip or zlib" mode). Real PSARC chunks
// never carry gzip framing; this exists only to exhaust the same fallback
// ladder the original decoder walks before giving up.
func newGzipReader(b []byte) (io.ReadCloser, error) {
	return gzip.NewReader(bytes.NewReader(b))
}
