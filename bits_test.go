package stego

import (
	"bytes"
	"testing"
)

func TestBytesToBitsMSBFirst(t *testing.T) {
	got := BytesToBits([]byte("HI")).String()
	if got != "0100100001001001" {
		t.Fatalf("got %s", got)
	}
	if len(BytesToBits(nil)) != 0 {
		t.Fatal("expected empty")
	}
}

func TestBitsToBytes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"aligned", "0100100001001001", []byte("HI")},
		{"empty", "", []byte{}},
		// 10 bits: the trailing "01" is padded to 01000000, not dropped.
		{"pad not truncate", "0100000101", []byte{'A', 0x40}},
		{"single bit", "1", []byte{0x80}},
		{"cut at first NUL", "010000010000000001000010", []byte("A")},
		{"leading NUL", "00000000", []byte{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BitsToBytes(mustBits(t, tc.in))
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestPackBitsKeepsNUL(t *testing.T) {
	in := []byte{0x41, 0x00, 0x42}
	if got := packBits(BytesToBits(in)); !bytes.Equal(got, in) {
		t.Fatalf("got %v", got)
	}
}

func TestLowBit(t *testing.T) {
	cases := []struct {
		in   byte
		bit  uint8
		want byte
	}{
		{0x00, 1, 0x01},
		{0x01, 0, 0x00},
		{0xFF, 0, 0xFE},
		{0xFE, 1, 0xFF},
		{0x80, 1, 0x81},
		{0x7F, 1, 0x7F},
	}
	for _, tc := range cases {
		got := SetLowBit(tc.in, tc.bit)
		if got != tc.want {
			t.Fatalf("SetLowBit(%#x, %d) = %#x, want %#x", tc.in, tc.bit, got, tc.want)
		}
		if LowBit(got) != tc.bit {
			t.Fatalf("LowBit(%#x) = %d", got, LowBit(got))
		}
		if got&^1 != tc.in&^1 {
			t.Fatalf("upper bits changed: %#x -> %#x", tc.in, got)
		}
	}
}

func TestUint32Bits(t *testing.T) {
	if got := uint32Bits(16).String(); got != "00000000000000000000000000010000" {
		t.Fatalf("got %s", got)
	}
}
