// Package api defines the uniform response envelope every endpoint returns.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"usersvc/internal/services"
)

// Success wraps a payload verbatim. T is whatever the endpoint returns: a
// view, a slice of views, or a bool.
type Success[T any] struct {
	Status int `json:"status"`
	Data   T   `json:"data"`
}

func OK[T any](data T) Success[T] {
	return Success[T]{Status: fiber.StatusOK, Data: data}
}

// Error is the uniform error payload. It doubles as a Go error so handlers and
// middleware can pass it around before serializing.
type Error struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// ValidationError reports field-level input failures as a 400.
func ValidationError(fields map[string]string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// FromDomain maps a service error onto an HTTP status. NotFound is the only
// client-distinguishable kind; database and unknown failures both surface
// as 500 with the diagnostic message preserved.
func FromDomain(err error) *Error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case services.KindNotFound:
			return NewError(fiber.StatusNotFound, svcErr.Message)
		case services.KindDatabase:
			return NewError(fiber.StatusInternalServerError, svcErr.Message)
		}
	}
	return NewError(fiber.StatusInternalServerError, err.Error())
}
