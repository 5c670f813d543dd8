package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON encodes before writing the status so an unencodable
// body becomes a 500 instead of a truncated 200
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
