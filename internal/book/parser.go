package book

import (
	"log/slog"
	"time"
)

// Extractor reads the file at path and returns its text.
type Extractor func(path string) (Content, error)

// Parser dispatches files to the extractor registered for their format.
type Parser struct {
	logger     *slog.Logger
	extractors map[Format]Extractor
}

// NewParser creates a parser with the built-in PDF, EPUB, FB2 and TXT extractors.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{
		logger: logger,
		extractors: map[Format]Extractor{
			FormatPDF:  extractPDF,
			FormatEPUB: extractEPUB,
			FormatFB2:  extractFB2,
			FormatTXT:  extractTXT,
		},
	}
}

// Parse extracts the text of the book at path.
// Unknown extensions return ErrUnsupportedFormat; extractor failures
// are returned as *ParseError.
func (p *Parser) Parse(path string) (Content, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Content{}, err
	}

	extract, ok := p.extractors[format]
	if !ok {
		return Content{}, &ParseError{Format: format, Err: ErrUnsupportedFormat}
	}

	start := time.Now()
	content, err := extract(path)
	if err != nil {
		p.logger.Warn("book extraction failed",
			"path", path,
			"format", format,
			"error", err,
		)
		return Content{}, &ParseError{Format: format, Err: err}
	}

	p.logger.Debug("book extracted",
		"path", path,
		"format", format,
		"total_pages", content.TotalPages(),
		"elapsed", time.Since(start),
	)

	return content, nil
}
