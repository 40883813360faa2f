// Package book extracts text from uploaded e-book files.
//
// Supported formats are selected by file extension:
//   - .pdf: one segment per page with text
//   - .epub: one segment per XHTML document in manifest order
//   - .fb2: one segment per <body> element
//   - .txt: the whole file as a single string
package book

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported e-book format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatEPUB Format = "epub"
	FormatFB2  Format = "fb2"
	FormatTXT  Format = "txt"
)

// ErrUnsupportedFormat is returned for extensions outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var formatsByExtension = map[string]Format{
	".pdf":  FormatPDF,
	".epub": FormatEPUB,
	".fb2":  FormatFB2,
	".txt":  FormatTXT,
}

// Name returns the upper-case display name used in messages.
func (f Format) Name() string {
	return strings.ToUpper(string(f))
}

// Extension returns the lowercased extension of name, including the dot.
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// DetectFormat maps the extension of name to a Format.
func DetectFormat(name string) (Format, error) {
	ext := Extension(name)
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// IsSupported reports whether name carries a supported extension.
func IsSupported(name string) bool {
	_, ok := formatsByExtension[Extension(name)]
	return ok
}

// SupportedExtensions returns the accepted extensions in a stable order.
func SupportedExtensions() []string {
	return []string{".pdf", ".epub", ".fb2", ".txt"}
}
