// Package cryptoutil holds the fixed AES keys and IV used by the Rocksmith
// 2014 PSARC/SNG formats, and the two cipher modes the container format
// needs: AES-256-CFB128 for the table of contents and AES-256-CTR for SNG
// entry payloads. Both are process-wide, read-only constants, mirroring the
// teacher's pattern of package-level immutable lookup tables
// (utils.GameStringHashNodes, config.cuurentCharMap) rather than values
// threaded through every call.
package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pkg/errors"
)

// psarcTOCKey and psarcTOCIV decrypt the table of contents when the
// archive's flag bit 0x04 is set.
var psarcTOCKey = []byte{
	0xC5, 0x3D, 0xB2, 0x38, 0x70, 0xA1, 0xA2, 0xF7, 0x1C, 0xAE, 0x64, 0x06, 0x1F, 0xDD, 0x0E, 0x11,
	0x57, 0x30, 0x9D, 0xC8, 0x52, 0x04, 0xD4, 0xC5, 0xBF, 0xDF, 0x25, 0x09, 0x0D, 0xF2, 0x57, 0x2C,
}

var psarcTOCIV = []byte{
	0xE9, 0x15, 0xAA, 0x01, 0x8F, 0xEF, 0x71, 0xFC, 0x50, 0x81, 0x32, 0xE4, 0xBB, 0x4C, 0xEB, 0x42,
}

// sngKey decrypts an SNG entry's payload; the IV travels with the entry
// itself (see sng.Decode).
var sngKey = []byte{
	0xCB, 0x64, 0x8D, 0xF3, 0xD1, 0x2A, 0x16, 0xBF, 0x71, 0x70, 0x14, 0x14, 0xE6, 0x96, 0x19, 0xEC,
	0x17, 0x1C, 0xCA, 0x5D, 0x2A, 0x14, 0x2E, 0x3E, 0x59, 0xDE, 0x7A, 0xDD, 0xA1, 0x8A, 0x3A, 0x30,
}

// CryptoFailure wraps an AES setup failure; stage names the cipher step
// that failed ("toc-cfb" or "sng-ctr").
type CryptoFailure struct {
	Stage string
	Err   error
}

func (e *CryptoFailure) Error() string {
	return "crypto failure during " + e.Stage + ": " + e.Err.Error()
}

func (e *CryptoFailure) Unwrap() error { return e.Err }

// DecryptTOC decrypts PSARC table-of-contents bytes with AES-256-CFB128 and
// no padding. The ciphertext is zero-padded up to a 16-byte multiple before
// decryption and the output is truncated back to len(data).
func DecryptTOC(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	block, err := aes.NewCipher(psarcTOCKey)
	if err != nil {
		return nil, &CryptoFailure{Stage: "toc-cfb", Err: err}
	}

	padded := ((len(data) + 15) / 16) * 16
	in := make([]byte, padded)
	copy(in, data)

	out := make([]byte, padded)
	stream := cipher.NewCFBDecrypter(block, psarcTOCIV)
	stream.XORKeyStream(out, in)

	return out[:len(data)], nil
}

// DecryptSNG decrypts an SNG payload (the bytes after the 24-byte wrapper
// header) with AES-256-CTR using the IV carried in that wrapper.
func DecryptSNG(iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != 16 {
		return nil, errors.Errorf("sng iv must be 16 bytes, got %d", len(iv))
	}

	block, err := aes.NewCipher(sngKey)
	if err != nil {
		return nil, &CryptoFailure{Stage: "sng-ctr", Err: err}
	}

	out := make([]byte, len(ciphertext))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, ciphertext)
	return out, nil
}
