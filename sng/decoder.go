package sng

import (
	"encoding/binary"

	"github.com/mogaika/open-psarc/blockcompress"
	"github.com/mogaika/open-psarc/cryptoutil"
)

const (
	wrapperMagic       = 0x0000004A
	wrapperHeaderSize  = 24 // magic(4) + flags(4) + iv(16)
	wrapperFlagZlib    = 0x01
)

// InvalidWrapper is returned when the SNG wrapper's magic doesn't match or
// the buffer is too short to hold the fixed header.
type InvalidWrapper struct {
	Reason string
}

func (e *InvalidWrapper) Error() string { return "invalid sng wrapper: " + e.Reason }

// DecompressionFailure is used for the SNG wrapper's inner zlib stream,
// the one place decompression has no raw-fallback to drop back to.
type DecompressionFailure struct {
	Context string
}

func (e *DecompressionFailure) Error() string { return "decompression failed: " + e.Context }

// Decode strips the 24-byte SNG wrapper, decrypts the AES-256-CTR payload,
// and — if the wrapper's zlib flag is set — inflates the result, returning
// the plaintext ready for Parse.
func Decode(data []byte) ([]byte, error) {
	if len(data) < wrapperHeaderSize {
		return nil, &InvalidWrapper{Reason: "shorter than 24-byte header"}
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != wrapperMagic {
		return nil, &InvalidWrapper{Reason: "bad magic"}
	}
	flags := binary.LittleEndian.Uint32(data[4:8])
	iv := data[8:24]

	plain, err := cryptoutil.DecryptSNG(iv, data[wrapperHeaderSize:])
	if err != nil {
		return nil, err
	}

	if flags&wrapperFlagZlib == 0 {
		return plain, nil
	}

	if len(plain) < 4 {
		return nil, &InvalidWrapper{Reason: "compressed payload missing size prefix"}
	}
	uncompressedSize := int(binary.LittleEndian.Uint32(plain[0:4]))
	out := blockcompress.InflateZlib(plain[4:], uncompressedSize)
	if len(out) == 0 {
		return nil, &DecompressionFailure{Context: "sng inner zlib stream"}
	}
	return out, nil
}
