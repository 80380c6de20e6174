package binreader

import (
	"encoding/binary"
	"testing"
)

func TestU32BigEndian(t *testing.T) {
	r := New([]byte{0x00, 0x00, 0x00, 0x2a, 0xff})
	v, err := r.U32(binary.BigEndian)
	if err != nil {
		t.Fatalf("U32: %v", err)
	}
	if v != 42 {
		t.Errorf("U32() = %d; expected 42", v)
	}
	if r.Position() != 4 {
		t.Errorf("Position() = %d; expected 4", r.Position())
	}
}

func TestReadPastEnd(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	if _, err := r.U32(binary.BigEndian); err == nil {
		t.Fatalf("expected ReadPastEnd, got nil")
	} else if _, ok := err.(*ReadPastEnd); !ok {
		t.Errorf("expected *ReadPastEnd, got %T", err)
	}
}

func TestFixedStringStopsAtNul(t *testing.T) {
	r := New([]byte{'h', 'i', 0, 'X', 'X'})
	s, err := r.FixedString(5)
	if err != nil {
		t.Fatalf("FixedString: %v", err)
	}
	if s != "hi" {
		t.Errorf("FixedString() = %q; expected %q", s, "hi")
	}
	if r.Position() != 5 {
		t.Errorf("Position() = %d; expected 5 (advances full field width)", r.Position())
	}
}

func TestFixedStringNoNul(t *testing.T) {
	r := New([]byte{'a', 'b', 'c'})
	s, err := r.FixedString(3)
	if err != nil {
		t.Fatalf("FixedString: %v", err)
	}
	if s != "abc" {
		t.Errorf("FixedString() = %q; expected %q", s, "abc")
	}
}

func TestSkipAndRemaining(t *testing.T) {
	r := New(make([]byte, 10))
	if err := r.Skip(4); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Remaining() != 6 {
		t.Errorf("Remaining() = %d; expected 6", r.Remaining())
	}
	if err := r.Skip(100); err == nil {
		t.Errorf("expected error skipping past end")
	}
}

func TestF32LERoundTrip(t *testing.T) {
	// 1.5f little-endian = 0x3FC00000 -> bytes 00 00 C0 3F
	r := New([]byte{0x00, 0x00, 0xC0, 0x3F})
	f, err := r.F32LE()
	if err != nil {
		t.Fatalf("F32LE: %v", err)
	}
	if f != 1.5 {
		t.Errorf("F32LE() = %v; expected 1.5", f)
	}
}
