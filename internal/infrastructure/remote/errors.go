package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any *Error with a 401 status
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the backend
type Error struct {
	Status  int
	Message string
}

// newError builds an Error from the response status and the body's
// "message" field, falling back to "Erreur <status>".
func newError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("Erreur %d", status)
	}
	return &Error{Status: status, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 response
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
