package stego

import "errors"

var (
	ErrIO                = errors.New("stego: i/o failure")
	ErrFormat            = errors.New("stego: invalid container format")
	ErrCapacity          = errors.New("stego: insufficient capacity")
	ErrCorruption        = errors.New("stego: corrupted payload")
	ErrUnsupportedFormat = errors.New("stego: unsupported format")
	ErrLimitExceeded     = errors.New("stego: limit exceeded")
)
