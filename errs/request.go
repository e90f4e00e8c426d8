package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrExpiredToken = errors.New("expired access token")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValidation       = errors.New("validation error")
)

func Malformed(payloadName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New(payloadName + " malformed"),
		kind:       ErrMalformedPayload,
	}
}

func BadRequest(message string) *ApiErr {
	return NewBadRequestError(message)
}

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        errors.New("Access token required"),
		kind:       ErrMissingToken,
		Field:      "authorization",
	}
}

// NewInvalidTokenError covers both bad signatures and expired tokens; the
// cause keeps the distinction for logs.
func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        errors.New("Invalid or expired token"),
		kind:       ErrInvalidToken,
		Field:      "authorization",
		Cause:      cause,
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

// ValidationError carries one message per offending field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError wraps field messages into a 400.
func NewValidationError(messages ...string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        errors.New("Validation error"),
		kind:       &ValidationError{Messages: messages},
	}
}

// ValidationMessages returns the field messages carried by err, if any.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
