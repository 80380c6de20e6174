package blockcompress

import "testing"

func bytesFromInts(vals []int) []byte {
	b := make([]byte, len(vals))
	for i, v := range vals {
		b[i] = byte(v)
	}
	return b
}

func TestInflateZlibStandardHeader(t *testing.T) {
	want := "hello world, this is test payload data for blockcompress"
	compressed := bytesFromInts([]int{120, 156, 13, 194, 129, 9, 128, 48, 12, 4, 192, 85, 126, 0, 151, 138, 77, 164, 226, 203, 151, 36, 32, 110, 175, 199, 205, 32, 133, 71, 73, 223, 208, 243, 44, 252, 59, 170, 177, 236, 165, 204, 225, 214, 134, 67, 137, 157, 26, 215, 208, 189, 50, 170, 62, 75, 176, 20, 255})

	got := InflateZlib(compressed, len(want))
	if string(got) != want {
		t.Fatalf("InflateZlib() = %q; expected %q", got, want)
	}
}

func TestInflateZlibRawDeflateFallback(t *testing.T) {
	want := "hello world, this is test payload data for blockcompress"
	raw := bytesFromInts([]int{13, 194, 129, 9, 128, 48, 12, 4, 192, 85, 126, 0, 151, 138, 77, 164, 226, 203, 151, 36, 32, 110, 175, 199, 205, 32, 133, 71, 73, 223, 208, 243, 44, 252, 59, 170, 177, 236, 165, 204, 225, 214, 134, 67, 137, 157, 26, 215, 208, 189, 50, 170, 62})

	got := InflateZlib(raw, len(want))
	if string(got) != want {
		t.Fatalf("InflateZlib() = %q; expected %q", got, want)
	}
}

func TestInflateZlibGarbageReturnsEmpty(t *testing.T) {
	garbage := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	got := InflateZlib(garbage, 64)
	if len(got) != 0 {
		t.Errorf("InflateZlib(garbage) = %v; expected empty result, not an error", got)
	}
}

func TestInflateZlibEmptyInput(t *testing.T) {
	if got := InflateZlib(nil, 10); got != nil {
		t.Errorf("InflateZlib(nil) = %v; expected nil", got)
	}
}

func TestDecompressLZMARoundTrip(t *testing.T) {
	want := "hello world, this is test payload data for blockcompress lzma"
	compressed := bytesFromInts([]int{93, 0, 0, 128, 0, 255, 255, 255, 255, 255, 255, 255, 255, 0, 52, 25, 73, 238, 141, 233, 23, 137, 58, 51, 95, 253, 246, 68, 230, 19, 24, 22, 242, 46, 133, 137, 58, 85, 63, 70, 253, 15, 249, 114, 44, 234, 100, 27, 79, 237, 0, 232, 249, 189, 35, 183, 91, 172, 129, 124, 255, 242, 225, 197, 188, 21, 142, 101, 131, 137, 186, 93, 25, 136, 255, 255, 16, 60, 0, 0})

	got := DecompressLZMA(compressed, len(want))
	if string(got) != want {
		t.Fatalf("DecompressLZMA() = %q; expected %q", got, want)
	}
}

func TestDecompressLZMAGarbageReturnsEmpty(t *testing.T) {
	garbage := []byte{0xff, 0xff, 0xff, 0xff}
	got := DecompressLZMA(garbage, 64)
	if len(got) != 0 {
		t.Errorf("DecompressLZMA(garbage) = %v; expected empty result", got)
	}
}

func TestDecompressLZMAEmptyInput(t *testing.T) {
	if got := DecompressLZMA(nil, 10); got != nil {
		t.Errorf("DecompressLZMA(nil) = %v; expected nil", got)
	}
}
