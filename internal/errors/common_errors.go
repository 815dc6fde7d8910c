package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDataLoad    ErrorType = "DATA_LOAD"
	ErrTypeEmptySeries ErrorType = "EMPTY_SERIES"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeRender      ErrorType = "RENDER"
)

// Sentinel causes. Wrapped inside AppError so callers can use errors.Is.
var (
	ErrInputNotFound  = stderrors.New("input not found")
	ErrNoObservations = stderrors.New("no valid observations")
	ErrEmptySeries    = stderrors.New("series is empty")
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDataLoadError reports that the input could not be turned into a series:
// it is missing, unreadable, or yielded zero valid observations.
func NewDataLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataLoad, message, cause)
}

// NewEmptySeriesError reports a summary requested on an empty series.
func NewEmptySeriesError() *AppError {
	return NewAppError(ErrTypeEmptySeries, "cannot summarize series", ErrEmptySeries)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewRenderError creates a chart rendering error
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// IsType reports whether any error in err's chain is an AppError of errType.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// IsDataLoad reports whether err is a DataLoadError.
func IsDataLoad(err error) bool {
	return IsType(err, ErrTypeDataLoad)
}

// IsEmptySeries reports whether err is an EmptySeriesError.
func IsEmptySeries(err error) bool {
	return IsType(err, ErrTypeEmptySeries)
}
