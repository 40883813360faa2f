package book

import "fmt"

// ParseError reports a failure inside a format extractor.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s: %v", e.Format.Name(), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
