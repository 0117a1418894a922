package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError for transport-level mapping.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindBadRequest
	KindForbidden
	KindConflict
)

// AppError is a business-rule or caller error. All kinds are terminal and
// must not be retried.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id %s not found", entity, id),
	}
}

// NewBadRequestError reports an invalid request or violated business rule.
func NewBadRequestError(format string, args ...any) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewForbiddenError reports that the caller is not allowed to perform the
// requested operation.
func NewForbiddenError(format string, args ...any) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(format string, args ...any) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the error kind from an error chain.
func KindOf(err error) (ErrorKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether the error chain contains a not-found AppError.
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}
