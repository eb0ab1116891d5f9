package stego

import (
	"fmt"
	"io"
	"os"
)

// Function variables for testing injection.
var (
	openFile       = os.Open
	openForRewrite = func(path string) (*os.File, error) {
		return os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	}
)

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// readContainer loads the whole file at path, refusing files over maxLen bytes.
func readContainer(path string, maxLen int64) ([]byte, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, ioError("open", path, err)
	}
	defer f.Close()
	if st, err := f.Stat(); err == nil && st.Size() > maxLen {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrLimitExceeded, path, st.Size(), maxLen)
	}
	buf, err := io.ReadAll(io.LimitReader(f, maxLen+1))
	if err != nil {
		return nil, ioError("read", path, err)
	}
	if int64(len(buf)) > maxLen {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrLimitExceeded, path, maxLen)
	}
	return buf, nil
}

// writeContainer truncates path and rewrites it with buf. There is no atomic
// replace: a failure part way leaves a short file behind.
func writeContainer(path string, buf []byte) error {
	f, err := openForRewrite(path)
	if err != nil {
		return ioError("open", path, err)
	}
	if _, err := f.Write(buf); err != nil {
		_ = f.Close()
		return ioError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return ioError("close", path, err)
	}
	return nil
}
