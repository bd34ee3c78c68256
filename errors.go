package hspicewave

import (
	"github.com/pkg/errors"

	"github.com/hspicewave/hspicewave/internal/blockio"
	"github.com/hspicewave/hspicewave/internal/header"
	"github.com/hspicewave/hspicewave/internal/sample"
)

// ErrorKind classifies a failure surfaced by the fallible decode/convert
// variants, independent of the Go error type that carries it.
type ErrorKind int

// Supported error kinds.
const (
	IoError ErrorKind = iota
	FramingErrorKind
	FormatErrorKind
	ConsistencyErrorKind
	OutputError
)

func (k ErrorKind) String() string {
	switch k {
	case IoError:
		return "io"
	case FramingErrorKind:
		return "framing"
	case FormatErrorKind:
		return "format"
	case ConsistencyErrorKind:
		return "consistency"
	case OutputError:
		return "output"
	default:
		return "unknown"
	}
}

// Kind classifies err by inspecting the package-level error types the
// lower layers raise. An err of a type this package does not recognise
// classifies as IoError, the most conservative default.
func Kind(err error) ErrorKind {
	switch {
	case asFramingError(err):
		return FramingErrorKind
	case asFormatError(err):
		return FormatErrorKind
	case asConsistencyError(err):
		return ConsistencyErrorKind
	case asOutputErr(err):
		return OutputError
	case asIoError(err):
		return IoError
	default:
		return IoError
	}
}

// outputError reports a failure on the write side of ConvertFile: the
// destination file could not be created, or the rawfile encoding could not
// be written to it. Unwrap lets Kind see through the pkg/errors.Wrap
// applied at the facade boundary down to this marker.
type outputError struct {
	msg string
	err error
}

func (e *outputError) Error() string { return "hspicewave: output: " + e.msg + ": " + e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

func asOutputErr(err error) bool {
	var e *outputError
	return errors.As(err, &e)
}

func asFramingError(err error) bool {
	var e *blockio.FramingError
	return errors.As(err, &e)
}

func asFormatError(err error) bool {
	var e *header.FormatError
	return errors.As(err, &e)
}

func asConsistencyError(err error) bool {
	var e *sample.ConsistencyError
	return errors.As(err, &e)
}

func asIoError(err error) bool {
	var e *sample.IoError
	return errors.As(err, &e)
}

// wrap attaches stack context at a facade boundary, in the manner of
// pkg/errors.Wrap.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
