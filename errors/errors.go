// Package errors provides error handling for tspoet.
//
// This package re-exports github.com/cockroachdb/errors, so generator code
// gets stack traces, wrapping and user-facing hints from one import:
//
//	// Reject a malformed code block at construction time
//	return errors.Wrapf(errors.ErrMalformedCode, "unexpected directive %q", d)
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'tspoet render' to regenerate")
//
//	// Check errors
//	if errors.Is(err, errors.ErrOutOfDate) {
//	    // exit with status 1
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Marking lets an error answer Is() for a second sentinel
var (
	Mark = crdb.Mark
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf   = crdb.AssertionFailedf
	IsAssertionFailure = crdb.IsAssertionFailure
)

// Sentinel errors shared by the emitter packages.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedCode indicates a code block or declaration that was built
	// incorrectly: directive/argument mismatch, invalid identifier, a
	// duplicate initializer or an illegal modifier.
	ErrMalformedCode = New("malformed code")

	// ErrWriterProtocol indicates a code writer was driven incorrectly:
	// unindent below zero or unbalanced statement markers.
	ErrWriterProtocol = New("code writer protocol violation")

	// ErrInvalidManifest indicates a declaration manifest that cannot be
	// turned into a file.
	ErrInvalidManifest = New("invalid manifest")

	// ErrUnsupportedType indicates a Go type expression with no TypeScript
	// counterpart.
	ErrUnsupportedType = New("unsupported type")

	// ErrOutOfDate indicates generated files differ from a fresh render.
	ErrOutOfDate = New("generated files are out of date")
)

// IsMalformedCode checks if an error is or wraps ErrMalformedCode
func IsMalformedCode(err error) bool {
	return err != nil && Is(err, ErrMalformedCode)
}

// IsWriterProtocol checks if an error is or wraps ErrWriterProtocol
func IsWriterProtocol(err error) bool {
	return err != nil && Is(err, ErrWriterProtocol)
}

// IsInvalidManifest checks if an error is or wraps ErrInvalidManifest
func IsInvalidManifest(err error) bool {
	return err != nil && Is(err, ErrInvalidManifest)
}

// IsOutOfDate checks if an error is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewMalformedCodef creates a malformed-code error with a formatted message
func NewMalformedCodef(format string, args ...interface{}) error {
	return Wrapf(ErrMalformedCode, format, args...)
}

// NewWriterProtocolf creates a writer protocol error with a formatted message
func NewWriterProtocolf(format string, args ...interface{}) error {
	return Wrapf(ErrWriterProtocol, format, args...)
}

// MarkInvalidManifest keeps err's own identity and also makes it match ErrInvalidManifest
func MarkInvalidManifest(err error) error {
	if err == nil {
		return nil
	}
	return Mark(err, ErrInvalidManifest)
}

// NewInvalidManifestf creates an invalid-manifest error with a formatted message
func NewInvalidManifestf(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidManifest, format, args...)
}
