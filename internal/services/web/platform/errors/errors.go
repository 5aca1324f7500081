// Package errors defines typed web errors and their HTTP status mapping.
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/louisbranch/planboard/internal/services/web/storage"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// HTTPStatus maps an error to an HTTP status code. Catalog sentinel errors
// map like their typed equivalents.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		switch {
		case stderrors.Is(err, storage.ErrNotFound):
			return http.StatusNotFound
		case stderrors.Is(err, storage.ErrAlreadyExists):
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
