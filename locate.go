package stego

import (
	"fmt"
	"strconv"
)

// region is the writable part of a bit-plane container.
type region struct {
	Offset int
	Dims   Dimensions
}

// capacity is the number of frame bits that fit: bounded by both the header's
// dimensions and the bytes actually present after Offset.
func (r region) capacity(bufLen int) int64 {
	avail := r.Dims.AvailableBits()
	if tail := int64(bufLen - r.Offset); tail < avail {
		avail = tail
	}
	if avail < 0 {
		return 0
	}
	return avail
}

func locateBMP(buf []byte) (region, error) {
	h, err := readBMPHeader(buf)
	if err != nil {
		return region{}, err
	}
	if uint64(h.PixelOffset) > uint64(len(buf)) {
		return region{}, fmt.Errorf("%w: pixel data offset %d beyond end of file (%d bytes)", ErrFormat, h.PixelOffset, len(buf))
	}
	height := int64(h.Height)
	if height < 0 {
		height = -height
	}
	return region{
		Offset: int(h.PixelOffset),
		Dims:   Dimensions{Width: int(h.Width), Height: int(height)},
	}, nil
}

type ppmHeader struct {
	Magic  string
	Width  int
	Height int
	MaxVal int
	// DataOffset is the first byte after the 4th newline in the file, or -1
	// if there are fewer than four.
	DataOffset int
}

// parsePPMHeader tokenises the ASCII header. A token starting with '#' opens a
// comment that runs to the end of its line.
func parsePPMHeader(buf []byte) (ppmHeader, error) {
	tokens := make([]string, 0, 4)
	pos := 0
	for len(tokens) < 4 && pos < len(buf) {
		switch c := buf[pos]; {
		case isPPMSpace(c):
			pos++
		case c == '#':
			for pos < len(buf) && buf[pos] != '\n' {
				pos++
			}
		default:
			start := pos
			for pos < len(buf) && !isPPMSpace(buf[pos]) {
				pos++
			}
			tokens = append(tokens, string(buf[start:pos]))
		}
	}
	if len(tokens) < 3 {
		return ppmHeader{}, fmt.Errorf("%w: PPM header has %d of 3 required fields", ErrFormat, len(tokens))
	}
	if tokens[0] != "P6" {
		return ppmHeader{}, fmt.Errorf("%w: PPM magic %q, want P6", ErrFormat, tokens[0])
	}
	h := ppmHeader{Magic: tokens[0], DataOffset: ppmDataOffset(buf)}
	var err error
	if h.Width, err = parsePPMField("width", tokens[1]); err != nil {
		return ppmHeader{}, err
	}
	if h.Height, err = parsePPMField("height", tokens[2]); err != nil {
		return ppmHeader{}, err
	}
	// maxval is informational; only magic and size are required.
	if len(tokens) == 4 {
		if v, err := parsePPMField("maxval", tokens[3]); err == nil {
			h.MaxVal = v
		}
	}
	return h, nil
}

// ppmDataOffset is the position just past the 4th '\n' in buf, which is where
// samples start for a magic, comment, size and maxval header. Other header
// layouts use the same position even when it falls inside the samples.
func ppmDataOffset(buf []byte) int {
	lines := 0
	for i, c := range buf {
		if c != '\n' {
			continue
		}
		if lines++; lines == 4 {
			return i + 1
		}
	}
	return -1
}

func parsePPMField(name, tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: PPM %s %q is not a non-negative integer", ErrFormat, name, tok)
	}
	return v, nil
}

func isPPMSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func locatePPM(buf []byte) (region, error) {
	h, err := parsePPMHeader(buf)
	if err != nil {
		return region{}, err
	}
	if h.DataOffset < 0 {
		return region{}, fmt.Errorf("%w: PPM file has fewer than 4 newlines", ErrFormat)
	}
	return region{Offset: h.DataOffset, Dims: Dimensions{Width: h.Width, Height: h.Height}}, nil
}

// locatePNGInsertion returns the offset just past the IHDR chunk, where a new
// ancillary chunk can be spliced in.
func locatePNGInsertion(buf []byte) (int, error) {
	if len(buf) < pngMinLen {
		return 0, fmt.Errorf("%w: PNG needs at least %d bytes, file has %d", ErrFormat, pngMinLen, len(buf))
	}
	if !hasPNGSignature(buf) {
		return 0, fmt.Errorf("%w: missing PNG signature", ErrFormat)
	}
	ihdr, err := readChunk(buf, len(PNGSignature))
	if err != nil {
		return 0, err
	}
	if ihdr.typeName() != chunkTypeIHDR {
		return 0, fmt.Errorf("%w: first chunk is %q, want %s", ErrFormat, ihdr.typeName(), chunkTypeIHDR)
	}
	return ihdr.end(), nil
}

// findChunk returns the first chunk of type typ, searching past IEND as well.
func findChunk(buf []byte, typ string) (chunk, bool, error) {
	var (
		found chunk
		ok    bool
	)
	err := scanChunks(buf, func(c chunk) bool {
		if c.typeName() == typ {
			found, ok = c, true
			return false
		}
		return true
	})
	if ok {
		return found, true, nil
	}
	return chunk{}, false, err
}
