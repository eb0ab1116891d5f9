package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/logicossoftware/go-stego"
	"github.com/sirupsen/logrus"
)

type Conf struct {
	Log         Log    `yaml:"log"`
	Key         string `yaml:"key"`
	KeyFile     string `yaml:"key_file"`
	Compression string `yaml:"compression"`
	VerifyCRC   *bool  `yaml:"verify_crc"`
	Limits      Limits `yaml:"limits"`

	comp stego.Compression
}

// Default is the configuration used when no file is given.
func Default() *Conf {
	c := &Conf{}
	c.setDefaults()
	return c
}

func LoadFromFile(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Conf, error) {
	var conf Conf
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	conf.setDefaults()
	if err := conf.validate(); err != nil {
		return &conf, err
	}
	return &conf, nil
}

func (c *Conf) setDefaults() {
	c.Log.setDefaults()
	c.Limits.setDefaults()
	if c.Compression == "" {
		c.Compression = "none"
	}
	if c.VerifyCRC == nil {
		v := true
		c.VerifyCRC = &v
	}
}

func (c *Conf) validate() error {
	var allErrors []error

	allErrors = append(allErrors, c.Log.validate()...)
	allErrors = append(allErrors, c.Limits.validate()...)

	comp, err := stego.ParseCompression(c.Compression)
	if err != nil {
		allErrors = append(allErrors, err)
	}
	c.comp = comp

	if c.Key != "" && c.KeyFile != "" {
		allErrors = append(allErrors, fmt.Errorf("key and key_file are mutually exclusive"))
	}
	return writeErr(allErrors)
}

// KeyBytes returns the configured key, reading key_file if set. Trailing
// newlines in the file are dropped.
func (c *Conf) KeyBytes() ([]byte, error) {
	if c.KeyFile == "" {
		return []byte(c.Key), nil
	}
	b, err := os.ReadFile(c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("read key_file: %w", err)
	}
	return []byte(strings.TrimRight(string(b), "\r\n")), nil
}

func (c *Conf) Comp() stego.Compression { return c.comp }

// SetCompression overrides the configured codec by name.
func (c *Conf) SetCompression(name string) error {
	comp, err := stego.ParseCompression(name)
	if err != nil {
		return err
	}
	c.Compression, c.comp = name, comp
	return nil
}

func (c *Conf) RegistryOptions(logger logrus.FieldLogger) []stego.RegistryOption {
	return []stego.RegistryOption{
		stego.WithLogger(logger),
		stego.WithLimits(c.Limits.toStego()),
		stego.WithVerifyCRC(*c.VerifyCRC),
	}
}

func writeErr(allErrors []error) error {
	if len(allErrors) > 0 {
		var messages []string
		for _, err := range allErrors {
			messages = append(messages, err.Error())
		}
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(messages, "\n  - "))
	}
	return nil
}
