// Package stego hides short messages inside BMP, PPM and PNG files and
// recovers them with a shared key.
//
// # Container Formats
//
// BMP and PPM files carry the message in the least significant bit of each
// byte of pixel data, one bit per byte, starting at the pixel data offset. A
// 24-bit image of width W and height H holds W*H*3 bits, of which 32 are
// taken by the length prefix. For PPM the pixel data offset is the byte after
// the 4th newline in the file.
//
// PNG files carry the message in an ancillary "stEg" chunk spliced in right
// after IHDR. Pixel data is untouched and the chunk has a standard CRC32, so
// the file stays readable by ordinary decoders. The chunk is bounded by
// [Limits].MaxMessageLen rather than by the image size.
//
// # Frame
//
// Every message is stored as a frame:
//
//	bitlen:u32be ‖ ciphertext
//
// where bitlen counts payload bits and the ciphertext is the message bits
// XORed with the key's bits repeated cyclically. The keystream is
// obfuscation, not encryption: there is no integrity check, and decoding with
// the wrong key returns wrong bytes instead of an error. An empty key stores
// the message in clear.
//
// Decoded text is cut at its first NUL byte. Pass [WithCompression] and
// [WithDecompression] to store arbitrary binary messages.
//
// # Basic Usage
//
//	reg := stego.NewRegistry()
//	if err := reg.Encode("cover.bmp", []byte("meet at noon"), []byte("key")); err != nil {
//		return err
//	}
//	msg, err := reg.Decode("cover.bmp", []byte("key"))
//
// Files are read fully, modified in memory and rewritten in place. The
// rewrite is not atomic.
//
// # Errors
//
// Failures wrap one of [ErrIO], [ErrFormat], [ErrCapacity], [ErrCorruption],
// [ErrUnsupportedFormat] or [ErrLimitExceeded]; test with errors.Is.
package stego
