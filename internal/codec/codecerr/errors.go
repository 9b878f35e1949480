// Package codecerr defines the error kinds shared by the codec packages.
//
// Every fallible codec operation returns an *Error carrying the operation name,
// one of the kind sentinels below and, when there is one, the underlying cause.
// Callers match with errors.Is against either the kind or the cause:
//
//	if errors.Is(err, codecerr.ErrIO) && errors.Is(err, io.ErrUnexpectedEOF) { ... }
package codecerr

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrIO indicates a short read or write, end of stream, or a transport failure.
	ErrIO = errors.New("i/o error")

	// ErrInvalidPattern indicates a malformed pattern token.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidEncoding indicates a payload that is not valid text where text is required.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrLengthOverflow indicates a length that does not fit the chosen prefix width.
	ErrLengthOverflow = errors.New("length overflow")

	// ErrLengthExceeded indicates a delimiter was not found within a bound.
	ErrLengthExceeded = errors.New("length exceeded")

	// ErrBadVarint indicates a malformed or overflowing varint.
	ErrBadVarint = errors.New("attempted to deserialize bad varint")

	// ErrTypeMismatch indicates a tagged value conversion to the wrong variant.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ErrEndOfStream is returned by searches that run off the end of a stream.
// It is an I/O condition and also matches io.ErrUnexpectedEOF.
var ErrEndOfStream = &Error{Op: "scan", Kind: ErrIO, Err: endOfStream}

var endOfStream = fmt.Errorf("unexpected end of stream: %w", io.ErrUnexpectedEOF)

// Error wraps a codec failure with the operation that produced it.
type Error struct {
	Op   string // The operation that failed
	Kind error  // One of the kind sentinels
	Err  error  // The underlying error, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind, or ErrEndOfStream when the
// cause is the end-of-stream condition.
func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	if t, ok := target.(*Error); ok && t == ErrEndOfStream {
		return errors.Is(e.Err, endOfStream)
	}
	return false
}

// New creates a new *Error.
func New(op string, kind error, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

// Newf creates a new *Error whose cause is a formatted message.
func Newf(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// IO wraps an I/O failure. A nil err returns nil.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Op: op, Kind: ErrIO, Err: err}
}

// EndOfStream returns an end-of-stream error attributed to op.
func EndOfStream(op string) error {
	return &Error{Op: op, Kind: ErrIO, Err: endOfStream}
}

// IsIO reports whether err is an I/O error.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsEndOfStream reports whether err reports running off the end of a stream.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}

// IsTypeMismatch reports whether err is a tagged value conversion failure.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
