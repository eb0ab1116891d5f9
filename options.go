package stego

import "github.com/sirupsen/logrus"

type registryConfig struct {
	limits    Limits
	logger    logrus.FieldLogger
	verifyCRC bool
}

type RegistryOption func(*registryConfig)

func WithLimits(l Limits) RegistryOption {
	return func(c *registryConfig) { c.limits = l }
}

// WithLogger routes debug output of file operations to l.
func WithLogger(l logrus.FieldLogger) RegistryOption {
	return func(c *registryConfig) { c.logger = l }
}

// WithVerifyCRC controls whether the PNG strategy rejects a stEg chunk whose
// CRC does not match its contents. Enabled by default.
func WithVerifyCRC(v bool) RegistryOption {
	return func(c *registryConfig) { c.verifyCRC = v }
}

type writeConfig struct {
	compression Compression
}

type WriteOption func(*writeConfig)

// WithCompression compresses the message before it is framed. The reader must
// pass the same codec to WithDecompression.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

type readConfig struct {
	compression Compression
}

type ReadOption func(*readConfig)

func WithDecompression(comp Compression) ReadOption {
	return func(c *readConfig) { c.compression = comp }
}
