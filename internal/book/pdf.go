package book

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF returns the trimmed text of every page that has any.
func extractPDF(path string) (content Content, err error) {
	// The reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			content = Content{}
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return Content{}, err
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return Content{}, fmt.Errorf("page %d: %w", i, err)
		}

		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return SegmentedContent(pages), nil
}
