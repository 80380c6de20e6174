// Package binreader provides a bounds-checked cursor over an in-memory byte
// buffer, the cursor primitive shared by the PSARC TOC parser and the SNG
// section parser.
package binreader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ReadPastEnd is returned when a read would advance the cursor past the end
// of the underlying buffer.
type ReadPastEnd struct {
	Offset    int
	Need      int
	Available int
}

func (e *ReadPastEnd) Error() string {
	return fmt.Sprintf("read past end at offset %d (need %d bytes, %d available)",
		e.Offset, e.Need, e.Available)
}

// Reader is a forward-only cursor over b. It is owned by a single parse
// call; its mutation never escapes the function that created it.
type Reader struct {
	b   []byte
	pos int
}

// New wraps b for sequential reads starting at offset 0.
func New(b []byte) *Reader {
	return &Reader{b: b}
}

// Position returns the current cursor offset.
func (r *Reader) Position() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.b) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.pos }

func (r *Reader) ensure(n int) error {
	if r.pos+n > len(r.b) {
		return &ReadPastEnd{Offset: r.pos, Need: n, Available: len(r.b) - r.pos}
	}
	return nil
}

func (r *Reader) take(n int) []byte {
	s := r.b[r.pos : r.pos+n]
	r.pos += n
	return s
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.ensure(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.ensure(1); err != nil {
		return 0, err
	}
	return r.take(1)[0], nil
}

// I8 reads one signed byte.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads a 2-byte unsigned integer in the given byte order.
func (r *Reader) U16(order binary.ByteOrder) (uint16, error) {
	if err := r.ensure(2); err != nil {
		return 0, err
	}
	return order.Uint16(r.take(2)), nil
}

// I16 reads a 2-byte signed integer in the given byte order.
func (r *Reader) I16(order binary.ByteOrder) (int16, error) {
	v, err := r.U16(order)
	return int16(v), err
}

// U32 reads a 4-byte unsigned integer in the given byte order.
func (r *Reader) U32(order binary.ByteOrder) (uint32, error) {
	if err := r.ensure(4); err != nil {
		return 0, err
	}
	return order.Uint32(r.take(4)), nil
}

// I32 reads a 4-byte signed integer in the given byte order.
func (r *Reader) I32(order binary.ByteOrder) (int32, error) {
	v, err := r.U32(order)
	return int32(v), err
}

// U64 reads an 8-byte unsigned integer in the given byte order.
func (r *Reader) U64(order binary.ByteOrder) (uint64, error) {
	if err := r.ensure(8); err != nil {
		return 0, err
	}
	return order.Uint64(r.take(8)), nil
}

// F32LE reads a little-endian IEEE-754 32-bit float. SNG and PSARC data is
// always little-endian at the field level for this format family; callers
// never rely on host byte order.
func (r *Reader) F32LE() (float32, error) {
	v, err := r.U32(binary.LittleEndian)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64LE reads a little-endian IEEE-754 64-bit float.
func (r *Reader) F64LE() (float64, error) {
	v, err := r.U64(binary.LittleEndian)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// FixedString reads an n-byte fixed field and returns the UTF-8 bytes up to
// the first NUL, advancing the cursor by exactly n regardless of where the
// NUL (if any) falls.
func (r *Reader) FixedString(n int) (string, error) {
	if err := r.ensure(n); err != nil {
		return "", err
	}
	raw := r.take(n)
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// Bytes reads n raw bytes and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	return r.take(n), nil
}
