package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the generation and edit pipelines. Callers attach
// detail with Newf or Wrapf and classify with errors.Is.
var (
	ErrConfigLoad             = errors.New("failed to load prompt configuration")
	ErrUnsupportedPlatform    = errors.New("unsupported platform")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrInvalidPlatform        = errors.New("invalid platform")
	ErrInvalidContentType     = errors.New("invalid content type")
	ErrMissingCredential      = errors.New("missing credential")
	ErrAllModelsRateLimited   = errors.New("all models are rate-limited")
	ErrUpstream               = errors.New("upstream request failed")
	ErrCancelled              = errors.New("request cancelled")
	ErrInvalidRequest         = errors.New("invalid request body")
)

// Error carries a display message for one error kind, optionally wrapping the
// underlying cause. errors.Is matches both the kind and the cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

// Newf builds an *Error of the given kind.
func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrapf builds an *Error of the given kind around cause.
func Wrapf(kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// ErrorCode is a stable machine-readable name for an error kind.
type ErrorCode string

const (
	CodeConfigLoad             ErrorCode = "CONFIG_LOAD_ERROR"
	CodeUnsupportedPlatform    ErrorCode = "UNSUPPORTED_PLATFORM"
	CodeUnsupportedContentType ErrorCode = "UNSUPPORTED_CONTENT_TYPE"
	CodeInvalidPlatform        ErrorCode = "INVALID_PLATFORM"
	CodeInvalidContentType     ErrorCode = "INVALID_CONTENT_TYPE"
	CodeMissingCredential      ErrorCode = "MISSING_CREDENTIAL"
	CodeAllModelsRateLimited   ErrorCode = "ALL_MODELS_RATE_LIMITED"
	CodeUpstream               ErrorCode = "UPSTREAM_ERROR"
	CodeCancelled              ErrorCode = "CANCELLED"
	CodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	CodeInternal               ErrorCode = "INTERNAL_ERROR"
)

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrConfigLoad, CodeConfigLoad},
	{ErrUnsupportedPlatform, CodeUnsupportedPlatform},
	{ErrUnsupportedContentType, CodeUnsupportedContentType},
	{ErrInvalidPlatform, CodeInvalidPlatform},
	{ErrInvalidContentType, CodeInvalidContentType},
	{ErrMissingCredential, CodeMissingCredential},
	{ErrAllModelsRateLimited, CodeAllModelsRateLimited},
	{ErrUpstream, CodeUpstream},
	{ErrCancelled, CodeCancelled},
	{ErrInvalidRequest, CodeInvalidRequest},
}

// CodeOf returns the code of the first known kind err wraps, or CodeInternal.
func CodeOf(err error) ErrorCode {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}

// IsInputError reports whether err was caused by caller-supplied values.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrUnsupportedPlatform) ||
		errors.Is(err, ErrUnsupportedContentType) ||
		errors.Is(err, ErrInvalidPlatform) ||
		errors.Is(err, ErrInvalidContentType)
}
