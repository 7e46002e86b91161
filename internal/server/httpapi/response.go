package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the body of resource-handler failures.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the body of auth and mutation failures.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON marshals v and writes it with the given status code. If
// marshaling fails, a generic 500 body is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON failure body with an "error" field.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeMessage writes a JSON failure body with a "message" field.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}
