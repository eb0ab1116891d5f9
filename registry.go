package stego

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry maps formats to embedders and runs the file-level operations.
//
// Embedders are built on first use and kept for the lifetime of the Registry.
// A Registry is safe for concurrent use, but concurrent operations on the same
// file are not coordinated.
type Registry struct {
	cfg registryConfig

	mu        sync.Mutex
	embedders map[Format]Embedder
}

func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{
		limits:    defaultLimits(),
		logger:    logrus.StandardLogger(),
		verifyCRC: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.logger == nil {
		cfg.logger = logrus.StandardLogger()
	}
	return &Registry{cfg: cfg, embedders: make(map[Format]Embedder)}
}

// Limits returns the effective limits after defaults were applied.
func (r *Registry) Limits() Limits { return r.cfg.limits }

// Resolve returns the embedder for f, creating it on first request.
func (r *Registry) Resolve(f Format) (Embedder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.embedders[f]; ok {
		return e, nil
	}
	var e Embedder
	switch f {
	case FormatBMP:
		e = newBMPEmbedder()
	case FormatPPM:
		e = newPPMEmbedder()
	case FormatPNG:
		e = newPNGEmbedder(r.cfg.limits.MaxMessageLen, r.cfg.verifyCRC)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	r.embedders[f] = e
	return e, nil
}

func (r *Registry) open(path string) (Embedder, []byte, error) {
	e, err := r.Resolve(DetectFormat(path))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	buf, err := readContainer(path, r.cfg.limits.MaxContainerLen)
	if err != nil {
		return nil, nil, err
	}
	return e, buf, nil
}

// Encode hides msg in the file at path, rewriting it in place.
func (r *Registry) Encode(path string, msg, key []byte, opts ...WriteOption) error {
	e, buf, err := r.open(path)
	if err != nil {
		return err
	}
	out, stored, err := r.embed(e, buf, msg, key, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := writeContainer(path, out); err != nil {
		return err
	}
	r.cfg.logger.WithFields(logrus.Fields{
		"format": e.Format(),
		"path":   path,
		"bits":   len(stored) * 8,
	}).Debug("embedded message")
	return nil
}

// Decode recovers the message hidden in the file at path. The file is not modified.
func (r *Registry) Decode(path string, key []byte, opts ...ReadOption) ([]byte, error) {
	e, buf, err := r.open(path)
	if err != nil {
		return nil, err
	}
	msg, err := r.extract(e, buf, key, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.cfg.logger.WithFields(logrus.Fields{
		"format": e.Format(),
		"path":   path,
		"bytes":  len(msg),
	}).Debug("extracted message")
	return msg, nil
}

// CanEncode reports whether msg, after any compression selected by opts, fits
// in the file at path.
func (r *Registry) CanEncode(path string, msg []byte, opts ...WriteOption) (bool, error) {
	e, buf, err := r.open(path)
	if err != nil {
		return false, err
	}
	stored, err := compressMessage(newWriteConfig(opts).compression, msg)
	if err != nil {
		return false, err
	}
	ok, err := e.CanEmbed(buf, stored)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return ok, nil
}

// ImageDimensions reads width and height from a BMP or PPM header.
func (r *Registry) ImageDimensions(path string) (Dimensions, error) {
	e, buf, err := r.open(path)
	if err != nil {
		return Dimensions{}, err
	}
	d, err := e.Dimensions(buf)
	if err != nil {
		return Dimensions{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Capacity returns the largest message, in bits, the file at path accepts.
func (r *Registry) Capacity(path string) (int64, error) {
	e, buf, err := r.open(path)
	if err != nil {
		return 0, err
	}
	c, err := e.Capacity(buf)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Verify checks the container structure and the embedded frame of the file at path.
func (r *Registry) Verify(path string) error {
	e, buf, err := r.open(path)
	if err != nil {
		return err
	}
	if err := e.Verify(buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// EncodeBytes is Encode over an in-memory container. The returned slice may
// alias buf.
func (r *Registry) EncodeBytes(f Format, buf, msg, key []byte, opts ...WriteOption) ([]byte, error) {
	e, err := r.Resolve(f)
	if err != nil {
		return nil, err
	}
	out, _, err := r.embed(e, buf, msg, key, opts)
	return out, err
}

// DecodeBytes is Decode over an in-memory container.
func (r *Registry) DecodeBytes(f Format, buf, key []byte, opts ...ReadOption) ([]byte, error) {
	e, err := r.Resolve(f)
	if err != nil {
		return nil, err
	}
	return r.extract(e, buf, key, opts)
}

func (r *Registry) embed(e Embedder, buf, msg, key []byte, opts []WriteOption) (out, stored []byte, err error) {
	stored, err = compressMessage(newWriteConfig(opts).compression, msg)
	if err != nil {
		return nil, nil, err
	}
	ok, err := e.CanEmbed(buf, stored)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		c, _ := e.Capacity(buf)
		return nil, nil, fmt.Errorf("%w: %s message needs %d bits, container holds %d", ErrCapacity, e.Format(), len(stored)*8, c)
	}
	out, err = e.Embed(buf, stored, key)
	if err != nil {
		return nil, nil, err
	}
	return out, stored, nil
}

func (r *Registry) extract(e Embedder, buf, key []byte, opts []ReadOption) ([]byte, error) {
	bits, err := e.Extract(buf, key)
	if err != nil {
		return nil, err
	}
	comp := newReadConfig(opts).compression
	if comp == CompNone {
		return BitsToBytes(bits), nil
	}
	return decompressMessage(comp, packBits(bits), r.cfg.limits.MaxUncompressed)
}

func newWriteConfig(opts []WriteOption) writeConfig {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func newReadConfig(opts []ReadOption) readConfig {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
