// Package httpjson holds the JSON response conventions shared by every
// feature handler: all bodies are JSON, and every error is rendered as
// {"error": "<message>"}.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// errBody is the uniform error envelope.
type errBody struct {
	Error string `json:"error"`
}

// msgBody is the uniform acknowledgement envelope for actions that return
// no entity.
type msgBody struct {
	Message string `json:"message"`
}

// Write encodes v with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} with the given status code.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, msgBody{Message: msg})
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errBody{Error: msg})
}

// BadRequest writes a 400 with the validation message surfaced verbatim.
func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// Unauthorized writes the generic 401. No distinction is leaked between
// missing, malformed, and expired credentials.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound writes a 404. Wrong-actor failures use the same rendering as
// genuinely absent records to avoid existence leaks.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Internal writes the generic 500. The caller is expected to have logged
// the underlying error already.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}

// ErrEmptyBody is returned by Decode when the request has no body.
var ErrEmptyBody = errors.New("request body is required")

// Decode reads the request body into v. An empty body is an error; unknown
// fields are tolerated (the original API ignored extras).
func Decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}
