package conf

import (
	"fmt"

	"github.com/logicossoftware/go-stego"
)

type Limits struct {
	MaxMessageBytes      int    `yaml:"max_message_bytes"`
	MaxContainerBytes    int64  `yaml:"max_container_bytes"`
	MaxUncompressedBytes uint64 `yaml:"max_uncompressed_bytes"`
}

func (l *Limits) setDefaults() {
	d := stego.DefaultLimits()
	if l.MaxMessageBytes == 0 {
		l.MaxMessageBytes = d.MaxMessageLen
	}
	if l.MaxContainerBytes == 0 {
		l.MaxContainerBytes = d.MaxContainerLen
	}
	if l.MaxUncompressedBytes == 0 {
		l.MaxUncompressedBytes = d.MaxUncompressed
	}
}

func (l *Limits) validate() []error {
	var errors []error
	if l.MaxMessageBytes < 0 {
		errors = append(errors, fmt.Errorf("limits.max_message_bytes must be positive"))
	}
	if l.MaxContainerBytes < 0 {
		errors = append(errors, fmt.Errorf("limits.max_container_bytes must be positive"))
	}
	return errors
}

func (l Limits) toStego() stego.Limits {
	return stego.Limits{
		MaxMessageLen:   l.MaxMessageBytes,
		MaxContainerLen: l.MaxContainerBytes,
		MaxUncompressed: l.MaxUncompressedBytes,
	}
}
