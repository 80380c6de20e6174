// Package blockcompress implements the two per-chunk compression codecs a
// PSARC archive's TOC can declare: zlib and LZMA-alone. Both entry points
// never return an error for a malformed stream — an empty slice signals
// failure, matching the container reader's raw-fallback policy (a handful
// of chunks in real archives are stored uncompressed despite a nonzero
// z_len, and the reader falls back to treating them as literal bytes).
package blockcompress

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// InflateZlib tries, in order, a standard zlib header, raw deflate, and
// gzip auto-detection, matching the three window-bit configurations the
// original reference decoder attempts (MAX_WBITS, -MAX_WBITS,
// MAX_WBITS+32). The first configuration that reaches end-of-stream wins.
// The result is capped at expectedSize; a stream that yields fewer bytes
// than expected is returned as-is (short writes are legal — see the
// container reader's cap-to-total handling).
func InflateZlib(data []byte, expectedSize int) []byte {
	if len(data) == 0 {
		return nil
	}

	type variant struct {
		name string
		open func([]byte) (io.ReadCloser, error)
	}
	variants := []variant{
		{"zlib", func(b []byte) (io.ReadCloser, error) { return zlib.NewReader(bytes.NewReader(b)) }},
		{"raw-deflate", func(b []byte) (io.ReadCloser, error) {
			return io.NopCloser(newRawInflater(b)), nil
		}},
		{"gzip", func(b []byte) (io.ReadCloser, error) { return newGzipReader(b) }},
	}

	for _, v := range variants {
		zr, err := v.open(data)
		if err != nil || zr == nil {
			continue
		}
		out := make([]byte, 0, expectedSize)
		buf := &limitedCollector{limit: expectedSize}
		n, err := io.Copy(buf, zr)
		zr.Close()
		if err == nil && n > 0 {
			out = buf.buf
			if expectedSize > 0 && len(out) > expectedSize {
				out = out[:expectedSize]
			}
			return out
		}
	}
	return nil
}

// limitedCollector accumulates written bytes without ever growing past
// limit (when limit > 0), so a corrupt stream claiming an enormous size
// can't exhaust memory.
type limitedCollector struct {
	buf   []byte
	limit int
}

func (c *limitedCollector) Write(p []byte) (int, error) {
	if c.limit > 0 && len(c.buf) >= c.limit {
		return len(p), nil
	}
	c.buf = append(c.buf, p...)
	return len(p), nil
}

// DecompressLZMA runs the single-shot LZMA-alone (.lzma container-less)
// decoder. The resulting length is expectedSize minus whatever the decoder
// left unread, mirroring the reference implementation's
// `uncompressed_size - strm.avail_out` accounting.
func DecompressLZMA(data []byte, expectedSize int) []byte {
	if len(data) == 0 {
		return nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	out := make([]byte, 0, expectedSize)
	buf := &limitedCollector{limit: expectedSize}
	if _, err := io.Copy(buf, r); err != nil && len(buf.buf) == 0 {
		return nil
	}
	out = buf.buf
	if expectedSize > 0 && len(out) > expectedSize {
		out = out[:expectedSize]
	}
	return out
}
