package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Learning pipeline errors
	ErrQuotaExceeded       ErrorCode = "QUOTA_EXCEEDED"
	ErrGenerationFailed    ErrorCode = "GENERATION_FAILED"
	ErrAnswerCountMismatch ErrorCode = "ANSWER_COUNT_MISMATCH"
	ErrLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"
	ErrInvalidTopic        ErrorCode = "INVALID_TOPIC"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewInvalidTopicError(topic string) *DomainError {
	return NewError(ErrInvalidTopic, fmt.Sprintf("Invalid topic: %s", topic), nil)
}

// NewQuotaExceededError wraps a backend rate-limit failure. The message tells
// the caller to retry later rather than immediately.
func NewQuotaExceededError(err error) *DomainError {
	return NewError(ErrQuotaExceeded, "Generation quota exceeded, please try again later", err)
}

func NewGenerationFailedError(message string, err error) *DomainError {
	return NewError(ErrGenerationFailed, message, err)
}

func NewAnswerCountMismatchError(got, want int) *DomainError {
	return NewError(ErrAnswerCountMismatch,
		fmt.Sprintf("Expected %d answers, got %d", want, got), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

// quotaSignals are the substrings the generative backend uses to report
// rate/quota exhaustion.
var quotaSignals = []string{"quota", "429", "too many requests"}

// IsQuotaSignal reports whether err looks like a quota/rate-limit failure
// from the generative backend.
func IsQuotaSignal(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range quotaSignals {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// IsQuotaExceeded reports whether err carries the QUOTA_EXCEEDED code.
func IsQuotaExceeded(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrQuotaExceeded
}
