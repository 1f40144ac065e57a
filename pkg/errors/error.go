package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure that callers are expected to branch on.
type Code string

const (
	// CodeInvalidTick represents a malformed or out-of-range tick (price <= 0, negative size, missing fields).
	CodeInvalidTick Code = "invalid_tick"
	// CodeUnknownSymbol represents a tick or query referencing a symbol outside the tracked set.
	CodeUnknownSymbol Code = "unknown_symbol"
	// CodeInsufficientData represents too few valid observations for a statistic.
	CodeInsufficientData Code = "insufficient_data"
	// CodeNoData represents a query leg with no stored ticks at all.
	CodeNoData Code = "no_data"
	// CodeInvalidInterval represents an unsupported bucket width or an oversized bucket range.
	CodeInvalidInterval Code = "invalid_interval"
	// CodeUpstreamDisconnected represents a lost upstream feed connection.
	CodeUpstreamDisconnected Code = "upstream_disconnected"
	// CodeRepository represents a storage-layer failure.
	CodeRepository Code = "repository_error"
)

// DomainError is a typed error carrying one of the codes above.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

// NewDomain creates a DomainError with the given code and message.
func NewDomain(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewDomainf creates a DomainError with a formatted message.
func NewDomainf(code Code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapDomain attaches a code to an underlying error.
func WrapDomain(code Code, err error, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsCode reports whether any error in err's chain is a DomainError with the given code.
func IsCode(err error, code Code) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// CodeOf returns the code of the first DomainError in err's chain, or "" if none.
func CodeOf(err error) Code {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
