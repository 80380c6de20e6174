package container

import "encoding/binary"

// Entry is one file's logical identity inside the archive: its assigned
// name (resolved from the names manifest), byte geometry, and starting
// position in the chunk-length table.
type Entry struct {
	Name             string
	Offset           int64
	UncompressedSize int64
	StartChunkIndex  uint32
}

// tocEntryFixedSize is the portion of every TOC entry before the
// archive-wide length/offset fields: 16-byte MD5 (ignored) + 4-byte
// start-chunk index.
const tocEntryFixedSize = 20

// parseEntries reads fileCount fixed-size TOC entries from b using the
// archive-wide field width for the length and offset, then the trailing
// big-endian u16 chunk-length table occupying the rest of b.
func parseEntries(b []byte, fileCount int, width int) ([]Entry, []uint16, error) {
	entrySize := tocEntryFixedSize + 2*width
	need := entrySize * fileCount
	if len(b) < need {
		return nil, nil, &TruncatedTOC{Want: need, Got: len(b)}
	}

	entries := make([]Entry, fileCount)
	for i := 0; i < fileCount; i++ {
		rec := b[i*entrySize : (i+1)*entrySize]
		entries[i] = Entry{
			StartChunkIndex:  binary.BigEndian.Uint32(rec[16:20]),
			UncompressedSize: int64(readUintBE(rec[20 : 20+width])),
			Offset:           int64(readUintBE(rec[20+width : 20+2*width])),
		}
	}

	rest := b[need:]
	zLengths := make([]uint16, len(rest)/2)
	for i := range zLengths {
		zLengths[i] = binary.BigEndian.Uint16(rest[i*2 : i*2+2])
	}
	return entries, zLengths, nil
}

// readUintBE reads a big-endian unsigned integer of arbitrary width
// (1..8 bytes), generalizing the fixed 24/40-bit helpers a 1.4 archive can
// need depending on its negotiated toc_entry_size.
func readUintBE(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// blocksNeeded returns how many chunk-length entries an entry of the given
// uncompressed size requires, given the archive's block size.
func blocksNeeded(uncompressedSize int64, blockSize uint32) int {
	if uncompressedSize <= 0 {
		return 0
	}
	if blockSize == 0 {
		return 1
	}
	n := uncompressedSize / int64(blockSize)
	if uncompressedSize%int64(blockSize) != 0 {
		n++
	}
	return int(n)
}
