package huffpack

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by BuildTree when the frequency table has no
// symbols.  Compress returns an empty Container for empty input before
// building a tree, so only direct callers of BuildTree can see it.
var ErrEmptyInput = errors.New("huffpack: empty input")

// ErrFormat matches any *FormatError under errors.Is.
var ErrFormat = errors.New("huffpack: invalid container format")

// ErrMalformedStream matches any *MalformedStreamError under errors.Is.
var ErrMalformedStream = errors.New("huffpack: malformed payload")

// FormatError reports a malformed or truncated container header or code
// table.
type FormatError struct {
	// Offset is the byte offset within the container where parsing failed.
	Offset int

	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("huffpack: invalid container format at byte %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// MalformedStreamError reports a payload whose bits do not resolve to the
// declared sequence of symbols.
type MalformedStreamError struct {
	// BitOffset is the payload bit position where decoding failed.
	BitOffset uint64

	Reason string
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("huffpack: malformed payload at bit %d: %s", e.BitOffset, e.Reason)
}

// Is reports whether target is ErrMalformedStream.
func (e *MalformedStreamError) Is(target error) bool {
	return target == ErrMalformedStream
}

func formatErrorf(offset int, format string, args ...interface{}) error {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func malformedf(bitOffset uint64, format string, args ...interface{}) error {
	return &MalformedStreamError{BitOffset: bitOffset, Reason: fmt.Sprintf(format, args...)}
}
