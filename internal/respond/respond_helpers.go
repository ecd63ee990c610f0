package respond

import "net/http"

func BadRequest(w http.ResponseWriter, msg, reqID string) {
	ErrorWithID(w, http.StatusBadRequest, "bad_request", msg, reqID)
}
func NotFound(w http.ResponseWriter, msg, reqID string) {
	ErrorWithID(w, http.StatusNotFound, "not_found", msg, reqID)
}
func MethodNotAllowed(w http.ResponseWriter, reqID string) {
	ErrorWithID(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", reqID)
}
func Internal(w http.ResponseWriter, msg, reqID string) {
	ErrorWithID(w, http.StatusInternalServerError, "internal", msg, reqID)
}
func BadGateway(w http.ResponseWriter, msg, reqID string) {
	ErrorWithID(w, http.StatusBadGateway, "bad_gateway", msg, reqID)
}
func Unavailable(w http.ResponseWriter, msg, reqID string) {
	ErrorWithID(w, http.StatusServiceUnavailable, "unavailable", msg, reqID)
}
