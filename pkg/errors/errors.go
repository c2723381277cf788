package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies orchestration errors by the phase that produced them.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeDiscovery    ErrorType = "discovery"
	ErrorTypeTermination  ErrorType = "termination"
	ErrorTypePort         ErrorType = "port"
	ErrorTypeBootstrap    ErrorType = "bootstrap"
	ErrorTypeLaunch       ErrorType = "launch"
	ErrorTypeVerification ErrorType = "verification"
	ErrorTypeProcess      ErrorType = "process"
	ErrorTypeIO           ErrorType = "io"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// DomainError is a structured error with a type tag and optional context.
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func (e *DomainError) Is(target error) bool {
	if other, ok := target.(*DomainError); ok {
		return e.Type == other.Type
	}
	return false
}

// WithContext attaches a key/value pair to the error for diagnostics.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func NewDomainError(errorType ErrorType, message string, cause error) *DomainError {
	return &DomainError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, cause)
}

func NewDiscoveryError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeDiscovery, message, cause)
}

func NewTerminationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeTermination, message, cause)
}

func NewPortError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypePort, message, cause)
}

func NewBootstrapError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeBootstrap, message, cause)
}

func NewLaunchError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeLaunch, message, cause)
}

func NewVerificationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeVerification, message, cause)
}

func NewProcessError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeProcess, message, cause)
}

func NewIOError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeIO, message, cause)
}

func NewTimeoutError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeTimeout, message, cause)
}

func isType(err error, errorType ErrorType) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Type == errorType
}

func IsValidationError(err error) bool   { return isType(err, ErrorTypeValidation) }
func IsDiscoveryError(err error) bool    { return isType(err, ErrorTypeDiscovery) }
func IsTerminationError(err error) bool  { return isType(err, ErrorTypeTermination) }
func IsPortError(err error) bool         { return isType(err, ErrorTypePort) }
func IsBootstrapError(err error) bool    { return isType(err, ErrorTypeBootstrap) }
func IsLaunchError(err error) bool       { return isType(err, ErrorTypeLaunch) }
func IsVerificationError(err error) bool { return isType(err, ErrorTypeVerification) }
func IsProcessError(err error) bool      { return isType(err, ErrorTypeProcess) }
func IsIOError(err error) bool           { return isType(err, ErrorTypeIO) }
func IsTimeoutError(err error) bool      { return isType(err, ErrorTypeTimeout) }

// ErrorCollection aggregates non-fatal errors from batch operations.
// The orchestrator downgrades per-probe and per-handle failures into a
// collection of warnings that the run as a whole can survive.
type ErrorCollection struct {
	Errors []error
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

func (e *ErrorCollection) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v", len(e.Errors), e.Errors[0])
}

func (e *ErrorCollection) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ErrorCollection) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ErrorCollection) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
