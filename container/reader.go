// Package container implements the PSARC archive reader: header and TOC
// parsing, chunk-index-driven assembly of an entry's bytes, and the names
// manifest that assigns file names to entries.
package container

import (
	"os"

	"github.com/mogaika/open-psarc/blockcompress"
	"github.com/mogaika/open-psarc/cryptoutil"
	"github.com/mogaika/open-psarc/sng"
	"github.com/pkg/errors"
)

// Reader holds an open archive: its file handle, parsed header, entry
// table, and the chunk-length table the extraction loop walks. It mutates
// its file handle on every extract call and is not safe for concurrent
// extraction; concurrent read-only queries (FileList, EntryByIndex,
// EntryByName, FileCount) are safe.
type Reader struct {
	f        *os.File
	h        *header
	entries  []Entry
	zLengths []uint16
}

// Open parses an archive's header, TOC, and names manifest eagerly. Entry
// bytes are produced lazily by ExtractByIndex.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenFailed{Path: path, Err: err}
	}

	r := &Reader{f: f}
	if err := r.parse(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) parse() error {
	hb := make([]byte, headerSize)
	if _, err := r.f.ReadAt(hb, 0); err != nil {
		return errors.Wrap(err, "reading archive header")
	}

	h, err := parseHeader(hb)
	if err != nil {
		return err
	}
	r.h = h

	tocRest := int(h.TotalTOCSize) - headerSize
	if tocRest < 0 {
		return &TruncatedTOC{Want: headerSize, Got: int(h.TotalTOCSize)}
	}

	tocBuf := make([]byte, tocRest)
	if _, err := r.f.ReadAt(tocBuf, headerSize); err != nil {
		return errors.Wrap(err, "reading toc")
	}

	if h.tocEncrypted() {
		dec, err := cryptoutil.DecryptTOC(tocBuf)
		if err != nil {
			return err
		}
		tocBuf = dec
	}

	width, err := h.fieldWidth()
	if err != nil {
		return err
	}

	entries, zLengths, err := parseEntries(tocBuf, int(h.FileCount), width)
	if err != nil {
		return err
	}
	r.entries = entries
	r.zLengths = zLengths

	if len(entries) == 0 {
		return nil
	}

	manifest, err := r.extractRaw(0)
	if err != nil {
		return errors.Wrap(err, "extracting names manifest")
	}
	assignNames(r.entries, manifest)
	return nil
}

// Close releases the file handle; it is idempotent.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	r.entries = nil
	r.zLengths = nil
	return err
}

// FileCount returns the number of entries, including the names manifest
// at index 0.
func (r *Reader) FileCount() int { return len(r.entries) }

// FileList returns every entry's assigned name in TOC order.
func (r *Reader) FileList() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// FileExists reports whether any entry carries the given name.
func (r *Reader) FileExists(name string) bool {
	_, ok := r.indexOf(name)
	return ok
}

// EntryByIndex returns the entry at index i.
func (r *Reader) EntryByIndex(i int) (Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[i], true
}

// EntryByName returns the entry with the given name.
func (r *Reader) EntryByName(name string) (Entry, bool) {
	if i, ok := r.indexOf(name); ok {
		return r.entries[i], true
	}
	return Entry{}, false
}

func (r *Reader) indexOf(name string) (int, bool) {
	for i, e := range r.entries {
		if e.Name == name {
			return i, true
		}
	}
	return 0, false
}

// extractRaw runs the chunk-assembly loop without the SNG-path
// post-processing step, used internally to pull the names manifest itself.
func (r *Reader) extractRaw(i int) ([]byte, error) {
	e := r.entries[i]
	needed := e.UncompressedSize
	if needed == 0 {
		return nil, nil
	}

	out := make([]byte, 0, needed)
	chunkIdx := int(e.StartChunkIndex)
	offset := e.Offset

	for int64(len(out)) < needed {
		if chunkIdx >= len(r.zLengths) {
			return nil, &ChunkIndexOutOfRange{Index: chunkIdx, Len: len(r.zLengths)}
		}
		z := r.zLengths[chunkIdx]
		chunkIdx++

		remaining := needed - int64(len(out))
		expected := remaining
		if int64(r.h.BlockSize) < expected {
			expected = int64(r.h.BlockSize)
		}

		if z == 0 {
			want := int64(r.h.BlockSize)
			if want == 0 {
				want = expected
			}
			buf := make([]byte, want)
			n, err := r.f.ReadAt(buf, offset)
			if n == 0 && err != nil {
				return nil, &ShortRead{Want: int(want), Got: n}
			}
			buf = buf[:n]
			offset += int64(n)
			out = append(out, buf...)
			continue
		}

		raw := make([]byte, z)
		n, err := r.f.ReadAt(raw, offset)
		if err != nil || n != int(z) {
			return nil, &ShortRead{Want: int(z), Got: n}
		}
		offset += int64(z)

		decoded := decompressChunk(r.h.Compression, raw, int(expected))
		if decoded == nil {
			decoded = raw
		}
		out = append(out, decoded...)
	}

	if int64(len(out)) > needed {
		out = out[:needed]
	}
	return out, nil
}

// decompressChunk dispatches to the codec named by the archive's
// compression tag, trying both when the tag is unrecognized.
func decompressChunk(tag string, raw []byte, expectedSize int) []byte {
	switch tag {
	case compressionZlib:
		return blockcompress.InflateZlib(raw, expectedSize)
	case compressionLZMA:
		return blockcompress.DecompressLZMA(raw, expectedSize)
	default:
		if out := blockcompress.InflateZlib(raw, expectedSize); len(out) > 0 {
			return out
		}
		return blockcompress.DecompressLZMA(raw, expectedSize)
	}
}

// ExtractByIndex runs the chunk-assembly loop for entry i and, if its name
// matches the SNG path convention, strips and decrypts the SNG wrapper
// before returning.
func (r *Reader) ExtractByIndex(i int) ([]byte, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, &ChunkIndexOutOfRange{Index: i, Len: len(r.entries)}
	}

	out, err := r.extractRaw(i)
	if err != nil {
		return nil, err
	}

	if isSngPath(r.entries[i].Name) {
		decoded, err := sng.Decode(out)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
	return out, nil
}

// ExtractByName resolves name to an entry and extracts it.
func (r *Reader) ExtractByName(name string) ([]byte, error) {
	i, ok := r.indexOf(name)
	if !ok {
		return nil, os.ErrNotExist
	}
	return r.ExtractByIndex(i)
}
