package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindAuth       Kind = "auth"
	KindAPI        Kind = "api"
	KindNetwork    Kind = "network"
	KindValidation Kind = "validation"
	KindConfig     Kind = "config"
	KindRealtime   Kind = "realtime"
	KindUnknown    Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}

// APIError is a KindAPI error that keeps the HTTP status and whatever the
// backend sent as its error body, so callers can surface the server's own
// detail message.
// baseError aliases Error so it can be embedded without the field name
// shadowing the promoted Error() method.
type baseError = Error

type APIError struct {
	baseError
	Status int
	Detail map[string]any
}

// NewAPI builds an APIError for a non-2xx backend response. The message is
// the backend's `detail` field, then `message`, then a generic fallback.
func NewAPI(op string, status int, detail map[string]any) *APIError {
	msg := "request failed"
	if detail != nil {
		if d, ok := detail["detail"].(string); ok && d != "" {
			msg = d
		} else if m, ok := detail["message"].(string); ok && m != "" {
			msg = m
		}
	}
	return &APIError{
		baseError: Error{Kind: KindAPI, Op: op, Message: msg},
		Status: status,
		Detail: detail,
	}
}

// AsAPI extracts an APIError from the chain.
func AsAPI(err error) (*APIError, bool) {
	var target *APIError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
