package sng

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func bytesFromInts(vals []int) []byte {
	b := make([]byte, len(vals))
	for i, v := range vals {
		b[i] = byte(v)
	}
	return b
}

// minimalEmptySong is a well-formed SNG buffer with every section empty:
// fourteen zero counts, no vocals (so the three conditional sections are
// skipped), and an all-zero Metadata record.
var minimalEmptySong = bytesFromInts([]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0,
})

// vocalsSong has two Vocal entries ("la" at t=1.0 note 60, "la2" at t=2.0
// note 62), exercising the three vocals-conditional sections.
var vocalsSong = bytesFromInts([]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 128, 63, 60, 0, 0, 0, 0, 0, 0, 63, 108, 97, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 64, 62, 0, 0, 0, 0, 0, 0, 63, 108, 97, 50, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
})

func TestParseMinimalEmptySong(t *testing.T) {
	got, err := Parse(minimalEmptySong)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.IsVocalsFile() {
		t.Errorf("IsVocalsFile() = true; expected false for empty vocals")
	}
	if len(got.Phrases) != 0 || len(got.Arrangements) != 0 {
		t.Errorf("expected every section empty, got:\n%s", spew.Sdump(got))
	}
}

func TestParseTrailingByte(t *testing.T) {
	withExtra := append(append([]byte{}, minimalEmptySong...), 0xAB)
	_, err := Parse(withExtra)
	if err == nil {
		t.Fatalf("expected TrailingBytes error")
	}
	tb, ok := err.(*TrailingBytes)
	if !ok {
		t.Fatalf("expected *TrailingBytes, got %T: %v", err, err)
	}
	if tb.Remaining != 1 {
		t.Errorf("Remaining = %d; expected 1", tb.Remaining)
	}
}

func TestParseReadPastEndOnTruncatedCount(t *testing.T) {
	// Declare one phrase but supply no bytes for it.
	buf := append([]byte{}, minimalEmptySong[:4]...) // bpms count = 0
	buf = append(buf, 1, 0, 0, 0)                    // phrases count = 1, no phrase data follows
	if _, err := Parse(buf); err == nil {
		t.Fatalf("expected a read-past-end style error")
	}
}

func TestParseVocalsFile(t *testing.T) {
	got, err := Parse(vocalsSong)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.IsVocalsFile() {
		t.Fatalf("IsVocalsFile() = false; expected true")
	}
	if len(got.Vocals) != 2 {
		t.Fatalf("len(Vocals) = %d; expected 2", len(got.Vocals))
	}
	if got.Vocals[0].Lyric != "la" {
		t.Errorf("Vocals[0].Lyric = %q; expected %q", got.Vocals[0].Lyric, "la")
	}
	if got.Vocals[1].Lyric != "la2" {
		t.Errorf("Vocals[1].Lyric = %q; expected %q", got.Vocals[1].Lyric, "la2")
	}
	if len(got.SymbolsHeaders) != 0 || len(got.SymbolsTextures) != 0 || len(got.SymbolDefinitions) != 0 {
		t.Errorf("expected the three vocals-conditional sections to be empty but present")
	}
}

func TestChordSentinelFretMapping(t *testing.T) {
	raw := [6]uint8{0xFF, 0, 2, 2, 2, 0xFF}
	var c Chord
	for i, b := range raw {
		c.Frets[i] = sentinelByteToInt8(b)
	}
	if c.Frets[0] != -1 || c.Frets[5] != -1 {
		t.Fatalf("expected sentinel frets to decode to -1")
	}
}

func TestMaskHas(t *testing.T) {
	m := Mask(0x80000002) // CHORD | CHORDPANEL
	if !m.Has(MaskChord) || !m.Has(MaskChordPanel) {
		t.Errorf("Has() missed set bits in mask %#x", uint32(m))
	}
	if m.Has(MaskHammerOn) {
		t.Errorf("Has() reported unset bit as set")
	}
}
