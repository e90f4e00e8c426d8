package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API & LLM Specific Errors
var (
	ErrLLMGeneration = errors.New("failed to generate AI response")
	ErrEmptyResponse = errors.New("empty model response")
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewLLMError hides the provider error from the caller; the cause is only
// logged.
func NewLLMError(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        errors.New(message),
		kind:       ErrLLMGeneration,
		Cause:      cause,
	}
}

func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s", ErrConfigMissing, key)
}

func NewConfigInvalidError(key, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfigInvalid, key, reason)
}

func IsLLMError(err error) bool {
	return errors.Is(err, ErrLLMGeneration)
}
