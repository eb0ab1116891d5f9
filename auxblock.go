package stego

import (
	"bytes"
	"fmt"
)

// auxBlock stores the frame, packed eight bits per byte, as the data of a
// dedicated ancillary PNG chunk placed right after IHDR. Pixel data is never
// touched.
type auxBlock struct {
	maxMessageLen int
	verifyCRC     bool
}

func newPNGEmbedder(maxMessageLen int, verifyCRC bool) *auxBlock {
	return &auxBlock{maxMessageLen: maxMessageLen, verifyCRC: verifyCRC}
}

func (e *auxBlock) Format() Format { return FormatPNG }

func (e *auxBlock) Dimensions([]byte) (Dimensions, error) {
	return Dimensions{}, fmt.Errorf("%w: dimensions are not read from %s containers", ErrUnsupportedFormat, FormatPNG)
}

func (e *auxBlock) Capacity(buf []byte) (int64, error) {
	if !hasPNGSignature(buf) {
		return 0, fmt.Errorf("%w: missing PNG signature", ErrFormat)
	}
	return int64(e.maxMessageLen) * 8, nil
}

func (e *auxBlock) CanEmbed(buf, msg []byte) (bool, error) {
	if !hasPNGSignature(buf) {
		return false, fmt.Errorf("%w: missing PNG signature", ErrFormat)
	}
	return len(msg) <= e.maxMessageLen, nil
}

func (e *auxBlock) Embed(buf, msg, key []byte) ([]byte, error) {
	if len(msg) > e.maxMessageLen {
		return nil, fmt.Errorf("%w: message of %d bytes exceeds the %d byte chunk ceiling", ErrCapacity, len(msg), e.maxMessageLen)
	}
	buf, err := removeChunks(buf, ChunkTypeStego)
	if err != nil {
		return nil, err
	}
	at, err := locatePNGInsertion(buf)
	if err != nil {
		return nil, err
	}
	frame, err := BuildFrame(msg, key)
	if err != nil {
		return nil, err
	}
	// The 32-bit prefix is byte aligned, so the packed frame is exactly
	// bitlen:u32be followed by the ciphertext bytes.
	c, err := encodeChunk(ChunkTypeStego, packBits(frame))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(buf)+len(c))
	out = append(out, buf[:at]...)
	out = append(out, c...)
	return append(out, buf[at:]...), nil
}

func (e *auxBlock) Extract(buf, key []byte) (Bits, error) {
	if !hasPNGSignature(buf) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrFormat)
	}
	c, ok, err := findChunk(buf, ChunkTypeStego)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no %s chunk", ErrFormat, ChunkTypeStego)
	}
	if e.verifyCRC && c.computedCRC(buf) != c.CRC {
		return nil, fmt.Errorf("%w: %s chunk CRC %08x, computed %08x", ErrCorruption, ChunkTypeStego, c.CRC, c.computedCRC(buf))
	}
	return readFrame(BytesToBits(c.data(buf)), key)
}

// Verify checks bounds and CRC of every chunk, then the stEg frame if present.
func (e *auxBlock) Verify(buf []byte) error {
	if _, err := locatePNGInsertion(buf); err != nil {
		return err
	}
	var bad error
	err := walkChunks(buf, func(c chunk) bool {
		if got := c.computedCRC(buf); got != c.CRC {
			bad = fmt.Errorf("%w: chunk %q at offset %d CRC %08x, computed %08x", ErrCorruption, c.typeName(), c.Offset, c.CRC, got)
			return false
		}
		if c.typeName() == ChunkTypeStego {
			if _, err := readFrame(BytesToBits(c.data(buf)), nil); err != nil {
				bad = err
				return false
			}
		}
		return true
	})
	if bad != nil {
		return bad
	}
	return err
}

// removeChunks drops every chunk of type typ, leaving the rest byte for byte.
func removeChunks(buf []byte, typ string) ([]byte, error) {
	if !hasPNGSignature(buf) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrFormat)
	}
	var spans [][2]int
	err := scanChunks(buf, func(c chunk) bool {
		if c.typeName() == typ {
			spans = append(spans, [2]int{c.Offset, c.end()})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return buf, nil
	}
	var out bytes.Buffer
	out.Grow(len(buf))
	prev := 0
	for _, s := range spans {
		out.Write(buf[prev:s[0]])
		prev = s[1]
	}
	out.Write(buf[prev:])
	return out.Bytes(), nil
}
