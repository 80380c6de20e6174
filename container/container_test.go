package container

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// The helpers below assemble a minimal version-1.4 PSARC file: a 32-byte
// header, fileCount fixed+variable TOC entries (4-byte length/offset
// fields), a trailing BE16 chunk-length table, then the payload bytes in
// order. Every entry here occupies at most one chunk.
type fixtureEntry struct {
	startChunk uint32
	size       int64
	offset     int64
}

func packHeader(compression string, totalTOC, tocEntrySize, fileCount, blockSize, flags uint32) []byte {
	b := make([]byte, headerSize)
	binary.BigEndian.PutUint32(b[0:4], magicPSAR)
	binary.BigEndian.PutUint16(b[4:6], 1)
	binary.BigEndian.PutUint16(b[6:8], 4)
	copy(b[8:12], compression)
	binary.BigEndian.PutUint32(b[12:16], totalTOC)
	binary.BigEndian.PutUint32(b[16:20], tocEntrySize)
	binary.BigEndian.PutUint32(b[20:24], fileCount)
	binary.BigEndian.PutUint32(b[24:28], blockSize)
	binary.BigEndian.PutUint32(b[28:32], flags)
	return b
}

func packEntries(entries []fixtureEntry, width int) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		rec := make([]byte, 20+2*width)
		binary.BigEndian.PutUint32(rec[16:20], e.startChunk)
		putUintBE(rec[20:20+width], uint64(e.size))
		putUintBE(rec[20+width:20+2*width], uint64(e.offset))
		buf.Write(rec)
	}
	return buf.Bytes()
}

func putUintBE(b []byte, v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func packZLengths(zs []uint16) []byte {
	b := make([]byte, len(zs)*2)
	for i, z := range zs {
		binary.BigEndian.PutUint16(b[i*2:i*2+2], z)
	}
	return b
}

// tinyArchiveBytes builds the scenario-1 fixture: two entries (the names
// manifest and "file-a.txt"), one uncompressed chunk holding the manifest
// text "file-a.txt\n"; the second entry is empty.
func tinyArchiveBytes() []byte {
	const width = 4
	tocEntrySize := uint32(20 + 2*width)
	entries := []fixtureEntry{
		{startChunk: 0, size: 11, offset: 0}, // offset patched below
		{startChunk: 1, size: 0, offset: 0},
	}
	entryBytes := packEntries(entries, width)
	zBytes := packZLengths([]uint16{0})

	totalTOC := uint32(headerSize + len(entryBytes) + len(zBytes))
	payloadOffset := int64(totalTOC)
	entries[0].offset = payloadOffset
	entryBytes = packEntries(entries, width)

	header := packHeader(compressionZlib, totalTOC, tocEntrySize, uint32(len(entries)), 16, 0)

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(entryBytes)
	buf.Write(zBytes)
	buf.WriteString("file-a.txt\n")
	return buf.Bytes()
}

func writeTempArchive(t *testing.T, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.psarc")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpenTinyArchive(t *testing.T) {
	path := writeTempArchive(t, tinyArchiveBytes())
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.FileCount() != 2 {
		t.Fatalf("FileCount() = %d; expected 2", r.FileCount())
	}
	want := []string{"NamesBlock.bin", "file-a.txt"}
	got := r.FileList()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("FileList() = %v; expected %v", got, want)
	}

	data, err := r.ExtractByName("NamesBlock.bin")
	if err != nil {
		t.Fatalf("ExtractByName: %v", err)
	}
	if string(data) != "file-a.txt\n" {
		t.Errorf("extracted manifest = %q; expected %q", data, "file-a.txt\n")
	}
}

// tocTestKey/tocTestIV mirror the fixed archive-wide TOC key and IV
// (see cryptoutil.psarcTOCKey/psarcTOCIV) so this test can construct a
// genuinely-encrypted fixture without exporting those constants.
var tocTestKey = []byte{
	0xC5, 0x3D, 0xB2, 0x38, 0x70, 0xA1, 0xA2, 0xF7, 0x1C, 0xAE, 0x64, 0x06, 0x1F, 0xDD, 0x0E, 0x11,
	0x57, 0x30, 0x9D, 0xC8, 0x52, 0x04, 0xD4, 0xC5, 0xBF, 0xDF, 0x25, 0x09, 0x0D, 0xF2, 0x57, 0x2C,
}

var tocTestIV = []byte{
	0xE9, 0x15, 0xAA, 0x01, 0x8F, 0xEF, 0x71, 0xFC, 0x50, 0x81, 0x32, 0xE4, 0xBB, 0x4C, 0xEB, 0x42,
}

func encryptTOCFixture(plain []byte) []byte {
	block, err := aes.NewCipher(tocTestKey)
	if err != nil {
		panic(err)
	}
	padded := ((len(plain) + 15) / 16) * 16
	in := make([]byte, padded)
	copy(in, plain)
	out := make([]byte, padded)
	cipher.NewCFBEncrypter(block, tocTestIV).XORKeyStream(out, in)
	return out[:len(plain)]
}

func TestOpenEncryptedTOC(t *testing.T) {
	const width = 4
	tocEntrySize := uint32(20 + 2*width)
	entries := []fixtureEntry{
		{startChunk: 0, size: 11, offset: 0},
		{startChunk: 1, size: 0, offset: 0},
	}
	entryBytes := packEntries(entries, width)
	zBytes := packZLengths([]uint16{0})
	tocPlain := append(append([]byte{}, entryBytes...), zBytes...)

	totalTOC := uint32(headerSize + len(tocPlain))
	payloadOffset := int64(totalTOC)
	entries[0].offset = payloadOffset
	entryBytes = packEntries(entries, width)
	tocPlain = append(append([]byte{}, entryBytes...), zBytes...)

	tocCipher := encryptTOCFixture(tocPlain)

	header := packHeader(compressionZlib, totalTOC, tocEntrySize, uint32(len(entries)), 16, tocEncryptedFlag)

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(tocCipher)
	buf.WriteString("file-a.txt\n")

	path := writeTempArchive(t, buf.Bytes())
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	want := []string{"NamesBlock.bin", "file-a.txt"}
	got := r.FileList()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("FileList() = %v; expected %v", got, want)
	}
}

func TestExtractRawFallbackOnBadChunk(t *testing.T) {
	const width = 4
	tocEntrySize := uint32(20 + 2*width)
	garbage := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	entries := []fixtureEntry{
		{startChunk: 0, size: 0, offset: 0},
		{startChunk: 0, size: int64(len(garbage)), offset: 0},
	}
	entryBytes := packEntries(entries, width)
	zBytes := packZLengths([]uint16{uint16(len(garbage))})

	totalTOC := uint32(headerSize + len(entryBytes) + len(zBytes))
	payloadOffset := int64(totalTOC)
	entries[1].offset = payloadOffset
	entryBytes = packEntries(entries, width)

	header := packHeader(compressionZlib, totalTOC, tocEntrySize, uint32(len(entries)), 64, 0)

	var buf bytes.Buffer
	buf.Write(header)
	buf.Write(entryBytes)
	buf.Write(zBytes)
	buf.Write(garbage)

	path := writeTempArchive(t, buf.Bytes())
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	data, err := r.ExtractByIndex(1)
	if err != nil {
		t.Fatalf("ExtractByIndex(1): %v", err)
	}
	if !bytes.Equal(data, garbage) {
		t.Errorf("raw-fallback data = %v; expected %v", data, garbage)
	}
}
