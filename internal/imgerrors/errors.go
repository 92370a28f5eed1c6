// Package imgerrors provides structured error types for imgresize operations.
package imgerrors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindFileNotFound means the input file is missing or unreadable.
	KindFileNotFound ErrorKind = iota
	// KindUnsupportedFormat means no codec is registered for the extension.
	KindUnsupportedFormat
	// KindInvalidOptions means the caller's ResizeOptions are invalid.
	KindInvalidOptions
	// KindDecodeError means the codec rejected the input bytes.
	KindDecodeError
	// KindResizeError means the resize kernel failed.
	KindResizeError
	// KindEncodeError means the codec rejected the pixel buffer.
	KindEncodeError
	// KindWriteError means the filesystem refused the output.
	KindWriteError
)

// String returns a short phrase describing the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFileNotFound:
		return "file not found"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindInvalidOptions:
		return "invalid options"
	case KindDecodeError:
		return "decode error"
	case KindResizeError:
		return "resize error"
	case KindEncodeError:
		return "encode error"
	case KindWriteError:
		return "write error"
	default:
		return "unknown error"
	}
}

// CoreError is the error type returned by single-image pipeline stages.
// Path carries the path the failure concerns: the input path for
// input-side failures, the output path for output-side ones (unsupported
// output format, encode, write).
type CoreError struct {
	Kind       ErrorKind
	Path       string
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Report formats the error as "<path>: <kind phrase>" for batch reporting,
// per spec §7 ("Error strings include the input path and a short phrase
// derived from the error kind").
func (e *CoreError) Report() string {
	phrase := e.Message
	if phrase == "" {
		phrase = e.Kind.String()
	}
	if e.Path == "" {
		return phrase
	}
	return fmt.Sprintf("%s: %s", e.Path, phrase)
}

func newErr(kind ErrorKind, path, message string, underlying error) *CoreError {
	return &CoreError{Kind: kind, Path: path, Message: message, Underlying: underlying}
}

// NewFileNotFound creates a file-not-found error.
func NewFileNotFound(path string, underlying error) *CoreError {
	return newErr(KindFileNotFound, path, "file not found", underlying)
}

// NewUnsupportedFormat creates an unsupported-format error.
func NewUnsupportedFormat(path, message string) *CoreError {
	return newErr(KindUnsupportedFormat, path, message, nil)
}

// NewInvalidOptions creates an invalid-options error.
func NewInvalidOptions(path, message string) *CoreError {
	return newErr(KindInvalidOptions, path, message, nil)
}

// NewDecodeError creates a decode-error.
func NewDecodeError(path string, underlying error) *CoreError {
	return newErr(KindDecodeError, path, "decode error", underlying)
}

// NewResizeError creates a resize-error.
func NewResizeError(path string, underlying error) *CoreError {
	return newErr(KindResizeError, path, "resize error", underlying)
}

// NewEncodeError creates an encode-error.
func NewEncodeError(path string, underlying error) *CoreError {
	return newErr(KindEncodeError, path, "encode error", underlying)
}

// NewWriteError creates a write-error.
func NewWriteError(path string, underlying error) *CoreError {
	return newErr(KindWriteError, path, "write error", underlying)
}

// IsKind checks if err's kind matches the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}
