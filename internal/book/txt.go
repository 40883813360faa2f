package book

import (
	"errors"
	"os"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// extractTXT returns the file verbatim. No trimming or segmentation.
func extractTXT(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, err
	}

	if !utf8.Valid(data) {
		return Content{}, errInvalidUTF8
	}

	return TextContent(string(data)), nil
}
