package stego

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

var formatsByExt = map[string]Format{
	".bmp": FormatBMP,
	".ppm": FormatPPM,
	".png": FormatPNG,
}

// DetectFormat picks the container format from the file extension, ignoring case.
func DetectFormat(path string) Format {
	if f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatUnsupported
}

// SupportedFormats lists every format with an embedder, in declaration order.
func SupportedFormats() []Format {
	return []Format{FormatBMP, FormatPPM, FormatPNG}
}

// SupportedExtensions lists the recognised file extensions, sorted.
func SupportedExtensions() []string {
	exts := lo.Keys(formatsByExt)
	sort.Strings(exts)
	return exts
}
