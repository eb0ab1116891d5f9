package stego

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// A 4x6 bitmap offers exactly 72 bits.
func scenarioBMP() []byte { return makeBMP(4, 6) }

func TestBitPlaneEmptyMessage(t *testing.T) {
	e := newBMPEmbedder()
	buf := scenarioBMP()
	ok, err := e.CanEmbed(buf, nil)
	if err != nil || !ok {
		t.Fatalf("CanEmbed: %v %v", ok, err)
	}
	buf, err = e.Embed(buf, nil, []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	bits, err := e.Extract(buf, []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if got := BitsToBytes(bits); len(got) != 0 {
		t.Fatalf("got %q", got)
	}
}

func TestBitPlaneEmptyKey(t *testing.T) {
	e := newBMPEmbedder()
	buf, err := e.Embed(scenarioBMP(), []byte("HI"), nil)
	if err != nil {
		t.Fatal(err)
	}
	bits, err := e.Extract(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := BitsToBytes(bits); string(got) != "HI" {
		t.Fatalf("got %q", got)
	}
	bits, err = e.Extract(buf, []byte("other"))
	if err != nil {
		t.Fatal(err)
	}
	if got := BitsToBytes(bits); string(got) == "HI" {
		t.Fatal("wrong key recovered the message")
	}
}

func TestBitPlaneOnlyLowBitsChange(t *testing.T) {
	orig := makeBMP(8, 8)
	e := newBMPEmbedder()
	out, err := e.Embed(append([]byte(nil), orig...), []byte("payload"), []byte("key"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out[:54], orig[:54]) {
		t.Fatal("header modified")
	}
	for i := 54; i < len(orig); i++ {
		if out[i]&^1 != orig[i]&^1 {
			t.Fatalf("byte %d changed beyond its low bit", i)
		}
	}
}

func TestBitPlaneCapacityBoundary(t *testing.T) {
	// 4x6x3 = 72 bits: 32 prefix + 40 payload bits, so 5 bytes fit and 6 do not.
	e := newBMPEmbedder()
	buf := scenarioBMP()
	if c, err := e.Capacity(buf); err != nil || c != 40 {
		t.Fatalf("capacity %d, %v", c, err)
	}
	if ok, _ := e.CanEmbed(buf, []byte("12345")); !ok {
		t.Fatal("5 bytes should fit")
	}
	if ok, _ := e.CanEmbed(buf, []byte("123456")); ok {
		t.Fatal("6 bytes should not fit")
	}
	before := append([]byte(nil), buf...)
	_, err := e.Embed(buf, []byte("123456"), nil)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if !bytes.Equal(buf, before) {
		t.Fatal("buffer mutated on capacity failure")
	}
	if _, err := e.Embed(buf, []byte("12345"), nil); err != nil {
		t.Fatal(err)
	}
}

func TestBitPlaneCapacityBoundedByFileLength(t *testing.T) {
	// Header claims 16x16 but the pixel data is cut to 40 bytes.
	buf := makeBMP(16, 16)[:54+40]
	e := newBMPEmbedder()
	if ok, _ := e.CanEmbed(buf, []byte("a")); !ok {
		t.Fatal("1 byte should fit in 40 bits")
	}
	if ok, _ := e.CanEmbed(buf, []byte("ab")); ok {
		t.Fatal("2 bytes need 48 bits")
	}
}

func TestBitPlaneCorruptPrefix(t *testing.T) {
	e := newBMPEmbedder()
	buf := scenarioBMP()
	// Length prefix of 2^31 bits, far beyond the 40 remaining.
	for i := 0; i < 32; i++ {
		buf[54+i] = SetLowBit(buf[54+i], boolBit(i == 0))
	}
	if _, err := e.Extract(buf, nil); !errors.Is(err, ErrCorruption) {
		t.Fatalf("expected ErrCorruption, got %v", err)
	}
	if err := e.Verify(buf); !errors.Is(err, ErrCorruption) {
		t.Fatalf("Verify: expected ErrCorruption, got %v", err)
	}
	// Fewer than 32 payload bytes.
	short := scenarioBMP()
	binary.LittleEndian.PutUint32(short[10:14], uint32(len(short)-10))
	if _, err := e.Extract(short, nil); !errors.Is(err, ErrCorruption) {
		t.Fatalf("short region: expected ErrCorruption, got %v", err)
	}
}

func TestPPMRoundTrip(t *testing.T) {
	e := newPPMEmbedder()
	header := "P6\n# note\n4 4\n255\n"
	buf := makePPM(header, 4, 4)
	d, err := e.Dimensions(buf)
	if err != nil || d != (Dimensions{Width: 4, Height: 4}) {
		t.Fatalf("dimensions %+v, %v", d, err)
	}
	out, err := e.Embed(buf, []byte("ok"), []byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte(header)) {
		t.Fatal("header modified")
	}
	bits, err := e.Extract(out, []byte("pw"))
	if err != nil {
		t.Fatal(err)
	}
	if got := BitsToBytes(bits); string(got) != "ok" {
		t.Fatalf("got %q", got)
	}
}

func TestPPMRoundTripWithoutComment(t *testing.T) {
	e := newPPMEmbedder()
	header := "P6\n6 6\n255\n"
	buf := makePPM(header, 6, 6)
	buf[len(header)+2] = '\n'
	start := len(header) + 3
	orig := append([]byte(nil), buf[:start]...)

	out, err := e.Embed(buf, []byte("hey"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out[:start], orig) {
		t.Fatal("bytes before the 4th newline modified")
	}
	want := uint32Bits(24)
	for i, b := range want {
		if LowBit(out[start+i]) != b {
			t.Fatalf("length prefix bit %d not at the 4th newline offset", i)
		}
	}
	bits, err := e.Extract(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := BitsToBytes(bits); string(got) != "hey" {
		t.Fatalf("got %q", got)
	}
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
