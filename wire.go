package stego

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

type bmpHeader struct {
	PixelOffset uint32
	Width       int32
	Height      int32
}

func readBMPHeader(buf []byte) (bmpHeader, error) {
	if len(buf) < bmpMinHeaderLen {
		return bmpHeader{}, fmt.Errorf("%w: BMP header needs %d bytes, file has %d", ErrFormat, bmpMinHeaderLen, len(buf))
	}
	var h bmpHeader
	h.PixelOffset = binary.LittleEndian.Uint32(buf[bmpPixelOffsetField : bmpPixelOffsetField+4])
	h.Width = int32(binary.LittleEndian.Uint32(buf[bmpWidthField : bmpWidthField+4]))
	h.Height = int32(binary.LittleEndian.Uint32(buf[bmpHeightField : bmpHeightField+4]))
	return h, nil
}

// chunk is the position and header of one PNG chunk inside a buffer.
type chunk struct {
	Offset int // offset of the length field
	Length uint32
	Type   [4]byte
	CRC    uint32
}

func (c chunk) typeName() string { return string(c.Type[:]) }

func (c chunk) dataStart() int { return c.Offset + 8 }

// end is the offset just past the CRC field.
func (c chunk) end() int { return c.Offset + pngChunkOverhead + int(c.Length) }

func (c chunk) data(buf []byte) []byte {
	return buf[c.dataStart() : c.dataStart()+int(c.Length)]
}

// computedCRC is the CRC32 over type and data as found in buf.
func (c chunk) computedCRC(buf []byte) uint32 {
	return crc32.ChecksumIEEE(buf[c.Offset+4 : c.dataStart()+int(c.Length)])
}

func readChunk(buf []byte, off int) (chunk, error) {
	if off < 0 || len(buf)-off < pngChunkOverhead {
		return chunk{}, fmt.Errorf("%w: truncated chunk header at offset %d", ErrFormat, off)
	}
	var c chunk
	c.Offset = off
	c.Length = binary.BigEndian.Uint32(buf[off : off+4])
	copy(c.Type[:], buf[off+4:off+8])
	if uint64(c.Length) > uint64(len(buf)-off-pngChunkOverhead) {
		return chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes past end of file", ErrFormat, c.typeName(), off, c.Length)
	}
	c.CRC = binary.BigEndian.Uint32(buf[c.end()-4 : c.end()])
	return c, nil
}

// walkChunks visits every chunk after the signature until fn returns false,
// the IEND chunk has been visited, or the buffer is exhausted.
func walkChunks(buf []byte, fn func(chunk) bool) error {
	return chunkWalk(buf, false, fn)
}

// scanChunks is walkChunks that carries on past IEND until the buffer is
// exhausted. Trailing bytes after IEND that do not form a complete chunk end
// the scan without error.
func scanChunks(buf []byte, fn func(chunk) bool) error {
	return chunkWalk(buf, true, fn)
}

func chunkWalk(buf []byte, pastIEND bool, fn func(chunk) bool) error {
	off := len(PNGSignature)
	seenIEND := false
	for off < len(buf) {
		c, err := readChunk(buf, off)
		if err != nil {
			if seenIEND {
				return nil
			}
			return err
		}
		if !fn(c) {
			return nil
		}
		if c.typeName() == chunkTypeIEND {
			if !pastIEND {
				return nil
			}
			seenIEND = true
		}
		off = c.end()
	}
	return nil
}

func chunkCRC(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = io.WriteString(h, typ)
	_, _ = h.Write(data)
	return h.Sum32()
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	if len(typ) != 4 {
		return fmt.Errorf("%w: chunk type %q must be 4 bytes", ErrFormat, typ)
	}
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:8], typ)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], chunkCRC(typ, data))
	_, err := w.Write(crc[:])
	return err
}

func encodeChunk(typ string, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(pngChunkOverhead + len(data))
	if err := writeChunk(&buf, typ, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hasPNGSignature(buf []byte) bool {
	return len(buf) >= len(PNGSignature) && bytes.Equal(buf[:len(PNGSignature)], PNGSignature[:])
}
