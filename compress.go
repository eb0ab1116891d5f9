package stego

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

const (
	zipEntryName = "message.bin"
	// compressedHeaderLen is the codec byte plus the uncompressed length.
	compressedHeaderLen = 9
)

// compressMessage replaces msg with codec:u8 ‖ len(msg):u64le ‖ compressed bytes.
// CompNone returns msg unchanged so the stored frame stays plain text.
func compressMessage(comp Compression, msg []byte) ([]byte, error) {
	if comp == CompNone {
		return msg, nil
	}
	var (
		compressed []byte
		err        error
	)
	switch comp {
	case CompZIP:
		compressed, err = zipCompress(msg)
	case CompZSTD:
		compressed, err = zstdCompress(msg)
	case CompLZ4:
		compressed, err = lz4Compress(msg)
	case CompBR:
		compressed, err = brotliCompress(msg)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrFormat, comp)
	}
	if err != nil {
		return nil, err
	}
	out := make([]byte, compressedHeaderLen, compressedHeaderLen+len(compressed))
	out[0] = byte(comp)
	binary.LittleEndian.PutUint64(out[1:compressedHeaderLen], uint64(len(msg)))
	return append(out, compressed...), nil
}

// decompressMessage reverses compressMessage. It enforces maxUncompressed
// before inflating anything.
func decompressMessage(comp Compression, payload []byte, maxUncompressed uint64) ([]byte, error) {
	if comp == CompNone {
		return payload, nil
	}
	if len(payload) < compressedHeaderLen {
		return nil, fmt.Errorf("%w: compressed message shorter than its %d byte header", ErrCorruption, compressedHeaderLen)
	}
	if got := Compression(payload[0]); got != comp {
		return nil, fmt.Errorf("%w: message compressed with %s, expected %s", ErrCorruption, got, comp)
	}
	uncompressedLen := binary.LittleEndian.Uint64(payload[1:compressedHeaderLen])
	if uncompressedLen > maxUncompressed {
		return nil, fmt.Errorf("%w: uncompressed length %d exceeds limit", ErrLimitExceeded, uncompressedLen)
	}
	compressed := payload[compressedHeaderLen:]

	var (
		out []byte
		err error
	)
	switch comp {
	case CompZIP:
		out, err = zipDecompress(compressed, uncompressedLen)
	case CompZSTD:
		out, err = zstdDecompress(compressed, uncompressedLen)
	case CompLZ4:
		out, err = lz4Decompress(compressed, uncompressedLen)
	case CompBR:
		out, err = brotliDecompress(compressed, uncompressedLen)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrFormat, comp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruption, comp, err)
	}
	if uint64(len(out)) != uncompressedLen {
		return nil, fmt.Errorf("%w: decompressed length %d != expected %d", ErrCorruption, len(out), uncompressedLen)
	}
	return out, nil
}

func zipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := zipCompressNamed(&buf, zipEntryName, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the single message entry from a ZIP archive.
func zipDecompress(zipBytes []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("zip must contain exactly one entry, has %d", len(zr.File))
	}
	zf := zr.File[0]
	if zf.Name != zipEntryName {
		return nil, fmt.Errorf("zip entry name must be %s", zipEntryName)
	}
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("zip entry must be a file")
	}
	if zf.UncompressedSize64 != expected {
		return nil, fmt.Errorf("zip uncompressed size %d != expected %d", zf.UncompressedSize64, expected)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readAll(io.LimitReader(rc, int64(expected)))
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("zstd expanded beyond expected size")
	}
	return out, nil
}

func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lz4CompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	b, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("lz4 expanded beyond expected size")
	}
	return b, nil
}

func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("brotli expanded beyond expected size")
	}
	return b, nil
}
