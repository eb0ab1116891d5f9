package stego

import "fmt"

// Format identifies a container file format.
type Format uint8

const (
	FormatUnsupported Format = iota
	FormatBMP
	FormatPPM
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "BMP"
	case FormatPPM:
		return "PPM"
	case FormatPNG:
		return "PNG"
	default:
		return "UNSUPPORTED"
	}
}

// PNGSignature is the fixed 8-byte PNG file signature.
var PNGSignature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

const (
	// ChunkTypeStego is the PNG chunk type carrying an embedded message.
	ChunkTypeStego = "stEg"
	chunkTypeIHDR  = "IHDR"
	chunkTypeIEND  = "IEND"

	// lengthPrefixBits is the width of the frame's bit-length prefix.
	lengthPrefixBits = 32

	bmpPixelOffsetField = 10
	bmpWidthField       = 18
	bmpHeightField      = 22
	bmpMinHeaderLen     = 26

	pngChunkOverhead = 12 // length + type + crc
	pngIHDRDataLen   = 13
	// pngMinLen is the signature followed by a complete IHDR chunk.
	pngMinLen = len(PNGSignature) + pngChunkOverhead + pngIHDRDataLen
)

// Compression selects an optional codec applied to the message before framing.
type Compression uint8

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression maps a codec name as printed by Compression.String back to its value.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompNone, nil
	case "zip":
		return CompZIP, nil
	case "zstd":
		return CompZSTD, nil
	case "lz4":
		return CompLZ4, nil
	case "brotli", "br":
		return CompBR, nil
	}
	return CompNone, fmt.Errorf("unknown compression %q", name)
}

// Dimensions holds the pixel size of an image as recorded in its header.
type Dimensions struct {
	Width  int
	Height int
}

// AvailableBits is the bit-plane capacity of a 24-bit image: one bit per color byte.
func (d Dimensions) AvailableBits() int64 {
	return int64(d.Width) * int64(d.Height) * 3
}
