// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package uncompress

import "fmt"

// Kind classifies the terminal failure of an uncompress run. Every failure
// is terminal; there are no retries and no fallback to another decompressor.
type Kind int

const (
	// KindSourceUnavailable indicates that the source file is absent,
	// unreadable, or failed to transfer.
	KindSourceUnavailable Kind = iota

	// KindSourceEmpty indicates a zero-byte source file.
	KindSourceEmpty

	// KindDestinationInvalid indicates that the parent of the resolved
	// destination path is not a directory.
	KindDestinationInvalid

	// KindDownloadFailed indicates a non-200 status or transport error
	// while fetching a URL source.
	KindDownloadFailed

	// KindUnsupportedFormat indicates that the detected content type matches
	// none of the supported compression signatures.
	KindUnsupportedFormat

	// KindDecompressionFailed indicates a decoder error during decompression,
	// including truncated streams and exceeded size limits.
	KindDecompressionFailed

	// KindFinalizationFailed indicates an I/O error while applying file
	// attributes to the destination after successful materialization.
	KindFinalizationFailed
)

// String returns the name of the failure kind.
func (k Kind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source unavailable"
	case KindSourceEmpty:
		return "source empty"
	case KindDestinationInvalid:
		return "destination invalid"
	case KindDownloadFailed:
		return "download failed"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindDecompressionFailed:
		return "decompression failed"
	case KindFinalizationFailed:
		return "finalization failed"
	default:
		return "unknown"
	}
}

// Error is the single terminal failure reported for an uncompress run. It
// carries an enumerated [Kind] so callers can assert on the class of failure
// instead of matching message text.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// newError returns an [*Error] of kind k with the given message.
func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// wrapError returns an [*Error] of kind k wrapping err.
func wrapError(k Kind, err error, format string, args ...interface{}) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...), err: err}
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}
