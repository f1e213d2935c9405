package api

import (
	"errors"
	"fmt"

	"lineagehub/internal/models"
)

// Kind is the closed taxonomy of gateway failures. Downstream code switches
// on it instead of inspecting payloads or status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is the single error type the gateway surfaces. Message carries the
// server's localized text when present.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Path    string
	Details *models.ErrorDetails
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("%s error (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the failure kind from any error returned by the gateway
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

func kindForStatus(status int) Kind {
	switch status {
	case 401:
		return KindAuth
	case 403:
		return KindForbidden
	case 400, 422:
		return KindValidation
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	default:
		return KindUnknown
	}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "", cause: err}
}

func fromEnvelope(status int, env models.ErrorEnvelope) *Error {
	return &Error{
		Kind:    kindForStatus(status),
		Status:  status,
		Message: env.Message,
		Path:    env.Path,
		Details: env.Details,
	}
}
