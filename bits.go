package stego

import (
	"bytes"
	"strings"
)

// Bits is an ordered sequence of bit values. Every element is 0 or 1.
type Bits []uint8

// String renders the sequence as '0'/'1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + v&1)
	}
	return sb.String()
}

// Len and Bit let a Bits value serve directly as a frame source.
func (b Bits) Len() int        { return len(b) }
func (b Bits) Bit(i int) uint8 { return b[i] & 1 }

// BytesToBits expands each byte into 8 bits, most significant bit first.
func BytesToBits(p []byte) Bits {
	out := make(Bits, 0, len(p)*8)
	for _, c := range p {
		for shift := 7; shift >= 0; shift-- {
			out = append(out, (c>>uint(shift))&1)
		}
	}
	return out
}

// BitsToBytes packs bits into bytes, most significant bit first.
//
// A trailing partial group is zero-padded to a full byte rather than dropped.
// The result is cut at the first NUL byte, so NUL cannot be carried inside a
// text message.
func BitsToBytes(b Bits) []byte {
	out := packBits(b)
	if i := bytes.IndexByte(out, 0); i >= 0 {
		out = out[:i]
	}
	return out
}

// packBits is BitsToBytes without the NUL cut, for binary payloads.
func packBits(b Bits) []byte {
	out := make([]byte, (len(b)+7)/8)
	for i, v := range b {
		if v&1 == 1 {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// SetLowBit returns v with its least significant bit replaced by bit.
func SetLowBit(v byte, bit uint8) byte {
	return v&^1 | bit&1
}

// LowBit returns the least significant bit of v.
func LowBit(v byte) uint8 {
	return v & 1
}

// uint32Bits renders v as 32 bits, big-endian.
func uint32Bits(v uint32) Bits {
	out := make(Bits, lengthPrefixBits)
	for i := range out {
		out[i] = uint8(v>>uint(lengthPrefixBits-1-i)) & 1
	}
	return out
}
