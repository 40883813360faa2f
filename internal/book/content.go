package book

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Content is the text extracted from a book: either ordered segments
// (pages, chapters, bodies) or a single plain string.
type Content struct {
	segments []string
	text     string
	plain    bool
}

// SegmentedContent returns content made of ordered segments.
func SegmentedContent(segments []string) Content {
	return Content{segments: append([]string{}, segments...)}
}

// TextContent returns content made of a single string.
func TextContent(text string) Content {
	return Content{text: text, plain: true}
}

// IsText reports whether the content is a single string.
func (c Content) IsText() bool {
	return c.plain
}

// Segments returns a copy of the segments. It is empty for plain text content.
func (c Content) Segments() []string {
	return append([]string{}, c.segments...)
}

// Text returns the plain string. It is empty for segmented content.
func (c Content) Text() string {
	return c.text
}

// TotalPages is the segment count, or 1 for plain text.
func (c Content) TotalPages() int {
	if c.plain {
		return 1
	}
	return len(c.segments)
}

// MarshalJSON encodes plain text as a JSON string and segments as an array.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.plain {
		return json.Marshal(c.text)
	}
	if c.segments == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.segments)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return errors.New("empty content")
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*c = TextContent(text)
	case trimmed[0] == '[':
		var segments []string
		if err := json.Unmarshal(trimmed, &segments); err != nil {
			return err
		}
		*c = SegmentedContent(segments)
	case bytes.Equal(trimmed, []byte("null")):
		*c = SegmentedContent(nil)
	default:
		return errors.New("content must be a string or an array of strings")
	}
	return nil
}
