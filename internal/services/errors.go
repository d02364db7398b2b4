package services

import "net/http"

// Error is a request-scoped failure carrying the HTTP status and the
// envelope type code surfaced to the client.
type Error struct {
	Status  int
	Type    string
	Message string
	Extra   map[string]any
}

func (e *Error) Error() string { return e.Message }

// Envelope builds the JSON response body for the error.
func (e *Error) Envelope() map[string]any {
	body := map[string]any{
		"status":  false,
		"type":    e.Type,
		"message": e.Message,
	}
	for k, v := range e.Extra {
		body[k] = v
	}
	return body
}

func badRequest(errType, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Type: errType, Message: message}
}
