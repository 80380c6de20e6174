package container

import "encoding/binary"

const (
	headerSize  = 32
	magicPSAR   = 0x50534152
	wantVersion = 0x00010004 // major 1, minor 4 packed as two big-endian 16-bit halves
)

// compressionZlib and compressionLZMA are the two four-byte tags the header
// may carry; any other tag means "try zlib, then lzma" per entry chunk.
const (
	compressionZlib = "zlib"
	compressionLZMA = "lzma"
)

// tocEncryptedFlag marks the TOC as AES-256-CFB128 encrypted.
const tocEncryptedFlag = 0x04

// header is the fixed 32-byte, big-endian archive header.
type header struct {
	Magic         uint32
	VersionMajor  uint16
	VersionMinor  uint16
	Compression   string
	TotalTOCSize  uint32
	TOCEntrySize  uint32
	FileCount     uint32
	BlockSize     uint32
	ArchiveFlags  uint32
}

func parseHeader(b []byte) (*header, error) {
	if len(b) < headerSize {
		return nil, &TruncatedTOC{Want: headerSize, Got: len(b)}
	}

	h := &header{
		Magic:        binary.BigEndian.Uint32(b[0:4]),
		VersionMajor: binary.BigEndian.Uint16(b[4:6]),
		VersionMinor: binary.BigEndian.Uint16(b[6:8]),
		Compression:  string(b[8:12]),
		TotalTOCSize: binary.BigEndian.Uint32(b[12:16]),
		TOCEntrySize: binary.BigEndian.Uint32(b[16:20]),
		FileCount:    binary.BigEndian.Uint32(b[20:24]),
		BlockSize:    binary.BigEndian.Uint32(b[24:28]),
		ArchiveFlags: binary.BigEndian.Uint32(b[28:32]),
	}

	if h.Magic != magicPSAR {
		return nil, &InvalidMagic{Got: h.Magic}
	}
	if h.VersionMajor != 1 || h.VersionMinor != 4 {
		return nil, &UnsupportedVersion{Major: h.VersionMajor, Minor: h.VersionMinor}
	}
	return h, nil
}

// tocEncrypted reports whether the TOC's flag bit 0x04 is set.
func (h *header) tocEncrypted() bool {
	return h.ArchiveFlags&tocEncryptedFlag != 0
}

// fieldWidth computes the archive-wide TOC entry length/offset field width
// b = (toc_entry_size - 20) / 2, validating the (mod 2) and range
// invariants.
func (h *header) fieldWidth() (int, error) {
	size := int(h.TOCEntrySize)
	if size < 20 || (size-20)%2 != 0 {
		return 0, &InvalidTocEntrySize{Size: size}
	}
	b := (size - 20) / 2
	if b < 1 || b > 8 {
		return 0, &InvalidTocEntrySize{Size: size}
	}
	return b, nil
}
