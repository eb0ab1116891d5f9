package stego

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// makeBMP builds a 24-bit bottom-up BMP with a 54-byte header. A negative
// height produces a top-down bitmap header.
func makeBMP(width, height int) []byte {
	rows := height
	if rows < 0 {
		rows = -rows
	}
	rowSize := (width*3 + 3) &^ 3
	pixels := rowSize * rows
	buf := make([]byte, 54+pixels)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(buf)))
	binary.LittleEndian.PutUint32(buf[10:14], 54)
	binary.LittleEndian.PutUint32(buf[14:18], 40)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(int32(width)))
	binary.LittleEndian.PutUint32(buf[22:26], uint32(int32(height)))
	binary.LittleEndian.PutUint16(buf[26:28], 1)
	binary.LittleEndian.PutUint16(buf[28:30], 24)
	binary.LittleEndian.PutUint32(buf[34:38], uint32(pixels))
	for i := 54; i < len(buf); i++ {
		buf[i] = byte(i * 37)
	}
	return buf
}

func makePPM(header string, width, height int) []byte {
	buf := []byte(header)
	for i := 0; i < width*height*3; i++ {
		buf = append(buf, byte(i*53+11))
	}
	return buf
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func readBack(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// fixtures returns one writable container per supported format.
func fixtures(t *testing.T) map[string][]byte {
	t.Helper()
	return map[string][]byte{
		"img.bmp": makeBMP(16, 16),
		"img.ppm": makePPM("P6\n# created for tests\n16 16\n255\n", 16, 16),
		"img.png": makePNG(t, 8, 8),
	}
}

func mustBits(t *testing.T, s string) Bits {
	t.Helper()
	out := make(Bits, len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			out[i] = 1
		default:
			panic(fmt.Sprintf("bad bit %q", c))
		}
	}
	return out
}
