package stego

import (
	"fmt"
	"math"
)

// bitSource is a read-only view of a bit sequence: a Bits value, or the low
// bits of a container's payload region.
type bitSource interface {
	Len() int
	Bit(i int) uint8
}

// BuildFrame enciphers msg under key and prefixes it with the 32-bit
// big-endian count of payload bits.
func BuildFrame(msg, key []byte) (Bits, error) {
	if uint64(len(msg))*8 > math.MaxUint32 {
		return nil, fmt.Errorf("%w: message of %d bytes overflows the length prefix", ErrCapacity, len(msg))
	}
	data := BytesToBits(msg)
	frame := make(Bits, 0, lengthPrefixBits+len(data))
	frame = append(frame, uint32Bits(uint32(len(data)))...)
	return append(frame, ApplyKeystream(data, key)...), nil
}

// ParseFrame reads a frame from the start of bits and returns the deciphered message.
func ParseFrame(bits Bits, key []byte) ([]byte, error) {
	payload, err := readFrame(bits, key)
	if err != nil {
		return nil, err
	}
	return BitsToBytes(payload), nil
}

// readFrame decodes the length prefix, checks it against the bits that remain
// and returns the deciphered payload bits. A zero length is a valid empty
// message, not corruption: rejecting it would break the empty-message round
// trip.
func readFrame(src bitSource, key []byte) (Bits, error) {
	if src.Len() < lengthPrefixBits {
		return nil, fmt.Errorf("%w: %d bits available, need %d for the length prefix", ErrCorruption, src.Len(), lengthPrefixBits)
	}
	var n uint32
	for i := 0; i < lengthPrefixBits; i++ {
		n = n<<1 | uint32(src.Bit(i))
	}
	remaining := int64(src.Len() - lengthPrefixBits)
	if int64(n) > remaining {
		return nil, fmt.Errorf("%w: length prefix %d exceeds %d remaining bits", ErrCorruption, n, remaining)
	}
	payload := make(Bits, n)
	for i := range payload {
		payload[i] = src.Bit(lengthPrefixBits + i)
	}
	return ApplyKeystream(payload, key), nil
}

// frameBits is the number of bits a frame for an n-byte message occupies.
func frameBits(n int) int64 {
	return int64(n)*8 + lengthPrefixBits
}
