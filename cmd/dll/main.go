// Package main provides C-compatible exports for the stego library.
// Build with: go build -buildmode=c-shared -o stego.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} StegoResult;
*/
import "C"

import (
	"unsafe"

	"github.com/logicossoftware/go-stego"
	"github.com/sirupsen/logrus"
)

// registry is shared by all exports. Its limits are fixed at load time, so
// callers cannot use different limits from concurrent C threads.
var registry = newRegistry()

func newRegistry() *stego.Registry {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return stego.NewRegistry(stego.WithLogger(logger))
}

func main() {}

// StegoFreeResult frees memory allocated by other Stego functions.
// Must be called to avoid memory leaks.
//
//export StegoFreeResult
func StegoFreeResult(result C.StegoResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// StegoFreeString frees a C string allocated by Go.
//
//export StegoFreeString
func StegoFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.StegoResult {
	var result C.StegoResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.StegoResult {
	var result C.StegoResult
	result.error = C.CString(err.Error())
	return result
}

func goBytes(p *C.char, n C.int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), n)
}

// StegoDetectFormat maps a file name to a format code
// (0=unsupported, 1=BMP, 2=PPM, 3=PNG).
//
//export StegoDetectFormat
func StegoDetectFormat(path *C.char) C.int {
	return C.int(stego.DetectFormat(C.GoString(path)))
}

// StegoEncode hides msg in an in-memory container.
// Parameters:
//   - format: format code as returned by StegoDetectFormat
//   - image, imageLen: container bytes
//   - msg, msgLen: message bytes
//   - key, keyLen: key bytes (can be NULL for no key)
//   - compression: 0=None, 1=ZIP, 2=ZSTD, 3=LZ4, 4=Brotli
//
// Returns StegoResult with the new container bytes or error. Call StegoFreeResult when done.
//
//export StegoEncode
func StegoEncode(
	format C.int,
	image *C.char, imageLen C.int,
	msg *C.char, msgLen C.int,
	key *C.char, keyLen C.int,
	compression C.uint8_t,
) C.StegoResult {
	out, err := registry.EncodeBytes(
		stego.Format(format),
		goBytes(image, imageLen),
		goBytes(msg, msgLen),
		goBytes(key, keyLen),
		stego.WithCompression(stego.Compression(compression)),
	)
	if err != nil {
		return makeError(err)
	}
	return makeResult(out)
}

// StegoDecode recovers a message from an in-memory container.
// compression must match the value used to encode.
//
// Returns StegoResult with the message bytes or error. Call StegoFreeResult when done.
//
//export StegoDecode
func StegoDecode(
	format C.int,
	image *C.char, imageLen C.int,
	key *C.char, keyLen C.int,
	compression C.uint8_t,
) C.StegoResult {
	msg, err := registry.DecodeBytes(
		stego.Format(format),
		goBytes(image, imageLen),
		goBytes(key, keyLen),
		stego.WithDecompression(stego.Compression(compression)),
	)
	if err != nil {
		return makeError(err)
	}
	return makeResult(msg)
}

// StegoCapacity returns the number of message bits a container can hold.
// Returns -1 on error.
//
//export StegoCapacity
func StegoCapacity(format C.int, image *C.char, imageLen C.int) C.int64_t {
	e, err := registry.Resolve(stego.Format(format))
	if err != nil {
		return -1
	}
	n, err := e.Capacity(goBytes(image, imageLen))
	if err != nil {
		return -1
	}
	return C.int64_t(n)
}

// StegoVerify checks container structure and the embedded frame.
// Returns NULL on success, or an error message string on failure.
// Call StegoFreeString on the result if non-NULL.
//
//export StegoVerify
func StegoVerify(format C.int, image *C.char, imageLen C.int) *C.char {
	e, err := registry.Resolve(stego.Format(format))
	if err != nil {
		return C.CString(err.Error())
	}
	if err := e.Verify(goBytes(image, imageLen)); err != nil {
		return C.CString(err.Error())
	}
	return nil
}
