package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAdminAlreadyGranted is returned by the store when a second admin record would be created.
var ErrAdminAlreadyGranted = errors.New("admin already granted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrVerificationFailed indicates the human verification check rejected the request.
var ErrVerificationFailed = errors.New("human verification failed")

// ErrInvalidToken indicates a verification token that is malformed, expired or signed with another key.
var ErrInvalidToken = errors.New("invalid token")

// AppError is an error carrying the HTTP status it should be reported with.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, nil)
}

// DuplicateError reports which unique field a write collided on.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// AuthFailure is a rejected authentication attempt. Messages are shown to the user
// as flash messages (or returned as JSON), never logged as server errors.
type AuthFailure struct {
	Messages []string
	Err      error
}

// NewAuthFailure creates an AuthFailure with the given user-facing messages.
func NewAuthFailure(messages ...string) *AuthFailure {
	return &AuthFailure{Messages: messages}
}

// NewAuthFailureWithCause creates an AuthFailure that also matches cause with errors.Is.
func NewAuthFailureWithCause(cause error, messages ...string) *AuthFailure {
	return &AuthFailure{Messages: messages, Err: cause}
}

func (f *AuthFailure) Error() string {
	return "authentication failed: " + strings.Join(f.Messages, "; ")
}

func (f *AuthFailure) Unwrap() error {
	return f.Err
}

// AsAuthFailure reports whether err is (or wraps) an AuthFailure.
func AsAuthFailure(err error) (*AuthFailure, bool) {
	var failure *AuthFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}
