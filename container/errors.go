package container

import "fmt"

// OpenFailed wraps a filesystem-level failure to open an archive.
type OpenFailed struct {
	Path string
	Err  error
}

func (e *OpenFailed) Error() string { return fmt.Sprintf("open %s: %v", e.Path, e.Err) }
func (e *OpenFailed) Unwrap() error { return e.Err }

// InvalidMagic is returned when the header's first four bytes aren't "PSAR".
type InvalidMagic struct {
	Got uint32
}

func (e *InvalidMagic) Error() string {
	return fmt.Sprintf("invalid magic: got 0x%08X, expected 0x%08X", e.Got, magicPSAR)
}

// UnsupportedVersion is returned for anything other than 1.4.
type UnsupportedVersion struct {
	Major, Minor uint16
}

func (e *UnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported version %d.%d, only 1.4 is accepted", e.Major, e.Minor)
}

// TruncatedTOC is returned when fewer bytes are available than the header's
// declared TOC length.
type TruncatedTOC struct {
	Want, Got int
}

func (e *TruncatedTOC) Error() string {
	return fmt.Sprintf("truncated toc: wanted %d bytes, have %d", e.Want, e.Got)
}

// InvalidTocEntrySize is returned when the header's toc_entry_size can't
// produce a valid archive-wide length/offset field width.
type InvalidTocEntrySize struct {
	Size int
}

func (e *InvalidTocEntrySize) Error() string {
	return fmt.Sprintf("invalid toc entry size %d", e.Size)
}

// ChunkIndexOutOfRange is returned during extraction when an entry's chunk
// walk runs past the end of the chunk-length table.
type ChunkIndexOutOfRange struct {
	Index, Len int
}

func (e *ChunkIndexOutOfRange) Error() string {
	return fmt.Sprintf("chunk index %d out of range (have %d chunks)", e.Index, e.Len)
}

// ShortRead is returned when the underlying file yields fewer bytes than a
// chunk declares, outside the EOF-tolerant raw-block case.
type ShortRead struct {
	Want, Got int
}

func (e *ShortRead) Error() string {
	return fmt.Sprintf("short read: wanted %d bytes, got %d", e.Want, e.Got)
}

// DecompressionFailure describes a decompression error with no raw-fallback.
// Nothing in this package returns it: container-level chunk failures fall
// back silently to raw passthrough, and the SNG wrapper's inner zlib stream
// is reported by sng.Decode as its own sng.DecompressionFailure.
type DecompressionFailure struct {
	Context string
}

func (e *DecompressionFailure) Error() string { return "decompression failed: " + e.Context }

// WriteFailed wraps a filesystem-level failure writing extracted output.
type WriteFailed struct {
	Path string
	Err  error
}

func (e *WriteFailed) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteFailed) Unwrap() error { return e.Err }

// EntryFailure pairs one entry's name with the error extracting or
// converting it, the unit aggregated by PartialExtraction.
type EntryFailure struct {
	Name string
	Err  error
}

func (f EntryFailure) Error() string { return fmt.Sprintf("%s: %v", f.Name, f.Err) }

// PartialExtraction aggregates per-entry failures from ExtractAll /
// ConvertSng; the operation otherwise completed for every other entry.
type PartialExtraction struct {
	Failures []EntryFailure
}

func (e *PartialExtraction) Error() string {
	return fmt.Sprintf("partial extraction: %d entries failed", len(e.Failures))
}
