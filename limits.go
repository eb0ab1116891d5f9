package stego

type Limits struct {
	MaxMessageLen   int    // stored message bytes accepted by the PNG chunk strategy
	MaxContainerLen int64  // container file size read into memory
	MaxUncompressed uint64 // message bytes after decompression
}

func defaultLimits() Limits {
	return Limits{
		MaxMessageLen:   1 << 20,   // 1 MiB
		MaxContainerLen: 256 << 20, // 256 MiB
		MaxUncompressed: 16 << 20,  // 16 MiB
	}
}

// DefaultLimits returns the limits applied when none are configured.
func DefaultLimits() Limits { return defaultLimits() }

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxMessageLen <= 0 {
		l.MaxMessageLen = d.MaxMessageLen
	}
	if l.MaxContainerLen <= 0 {
		l.MaxContainerLen = d.MaxContainerLen
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	return l
}
