package mtl

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a model or material file cannot be opened.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedLine is returned when a directive has too few or unparsable fields.
	ErrMalformedLine = errors.New("malformed line")
)

// ParseError locates a failure at a line of a source file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
