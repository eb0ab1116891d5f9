package stego

// Embedder hides and recovers a message inside one container format.
//
// All methods operate on the full file contents held in memory. Embed may
// mutate buf in place and returns the buffer to write back, which for formats
// that grow the file is a new slice.
type Embedder interface {
	Format() Format
	// CanEmbed reports whether msg fits. A false result with a nil error means
	// the container is valid but too small.
	CanEmbed(buf, msg []byte) (bool, error)
	Embed(buf, msg, key []byte) ([]byte, error)
	// Extract returns the deciphered payload bits of the embedded frame.
	Extract(buf, key []byte) (Bits, error)
	// Capacity is the largest message, in bits, that CanEmbed would accept.
	Capacity(buf []byte) (int64, error)
	Dimensions(buf []byte) (Dimensions, error)
	// Verify checks the structural integrity of the container and its payload.
	Verify(buf []byte) error
}
