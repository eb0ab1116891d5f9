// Command stego hides and recovers messages in BMP, PPM and PNG files.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("stego failed")
		os.Exit(1)
	}
}
