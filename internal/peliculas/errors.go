package peliculas

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/samsarahq/go/oops"
)

// ErrNotFound reports a read of a record that is not in the table.
var ErrNotFound = errors.New("pelicula no encontrada")

// ErrorType names the failure kinds a create can end in. The values are
// wire-visible: they travel as tipo_error in responses and logs.
type ErrorType string

const (
	ErrValidation    ErrorType = "ValidationError"
	ErrMissingField  ErrorType = "MissingFieldError"
	ErrConfiguration ErrorType = "ConfigurationError"
	ErrStoreClient   ErrorType = "StoreClientError"
	ErrUnexpected    ErrorType = "UnexpectedError"
)

var statusByType = map[ErrorType]int{
	ErrValidation:    http.StatusBadRequest,
	ErrMissingField:  http.StatusBadRequest,
	ErrConfiguration: http.StatusBadRequest,
	ErrStoreClient:   http.StatusBadRequest,
	ErrUnexpected:    http.StatusInternalServerError,
}

// Error is a classified failure with a caller-facing message and a wrapped
// cause carrying the stack it was raised on.
type Error struct {
	Tipo    ErrorType
	Mensaje string
	cause   error
}

func NewError(tipo ErrorType, mensaje string) *Error {
	return &Error{Tipo: tipo, Mensaje: mensaje, cause: oops.Errorf("%s", mensaje)}
}

func WrapError(tipo ErrorType, mensaje string, cause error) *Error {
	return &Error{Tipo: tipo, Mensaje: mensaje, cause: oops.Wrapf(cause, "%s", mensaje)}
}

func (e *Error) Error() string { return e.Mensaje }

func (e *Error) Unwrap() error { return e.cause }

// Status maps the error kind to a response status code. Kinds missing from
// the table count as server errors.
func (e *Error) Status() int {
	if s, ok := statusByType[e.Tipo]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Traceback renders the wrapped cause and its stack, truncated to at most
// limit lines.
func (e *Error) Traceback(limit int) string {
	lines := strings.Split(fmt.Sprintf("%+v", e.cause), "\n")
	if len(lines) > limit {
		lines = lines[:limit]
	}
	return strings.Join(lines, "\n")
}

// Classify returns err as an *Error, wrapping anything unclassified as an
// UnexpectedError.
func Classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return WrapError(ErrUnexpected, err.Error(), err)
}
