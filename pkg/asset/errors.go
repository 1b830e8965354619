package asset

import (
	"errors"
	"fmt"
)

// Asset errors. Every error returned by Load and Merge wraps one of these.
var (
	ErrMissingBinaryBuffer    = errors.New("missing binary buffer")
	ErrAmbiguousBinaryBuffer  = errors.New("ambiguous binary buffer")
	ErrImageReferenceNotFound = errors.New("image reference not found")
	ErrInvalidLayout          = errors.New("invalid buffer layout")
	ErrInvalidTexture         = errors.New("invalid texture")
)

// Error describes a failure while loading or merging an asset.
// Kind is one of the package sentinel errors; use errors.Is to test it.
type Error struct {
	Kind   error
	Path   string // file or source name involved, if any
	Index  int    // image or bufferView index, -1 if not applicable
	Detail string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" (index %d)", e.Index)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func layoutError(index int, format string, args ...any) error {
	return &Error{Kind: ErrInvalidLayout, Index: index, Detail: fmt.Sprintf(format, args...)}
}
