package respond

import (
	"encoding/json"
	"net/http"
)

type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes v with status. Responses describe the live store, so they are
// never cached.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Created(w http.ResponseWriter, location string, v any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, http.StatusCreated, v)
}

func Error(w http.ResponseWriter, status int, code, message string) {
	ErrorWithID(w, status, code, message, "")
}

func ErrorWithID(w http.ResponseWriter, status int, code, message, reqID string) {
	JSON(w, status, ErrorBody{
		Error:     code,
		Message:   message,
		RequestID: reqID,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
