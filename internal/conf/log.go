package conf

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

func (l *Log) setDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func (l *Log) validate() []error {
	var errors []error
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		errors = append(errors, fmt.Errorf("log.level: %v", err))
	}
	if l.Format != "text" && l.Format != "json" {
		errors = append(errors, fmt.Errorf("log.format must be 'text' or 'json'"))
	}
	return errors
}

// Apply configures logger from l. Call only after validation.
func (l *Log) Apply(logger *logrus.Logger) {
	if lvl, err := logrus.ParseLevel(l.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}
