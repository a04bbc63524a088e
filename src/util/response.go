package util

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"expensy-server/src/logging"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationResponse struct {
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors"`
}

// WriteJSON encodes body before writing the status, so an unencodable body
// becomes a 500 with a message instead of an empty response.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		slog.Error("failed to encode response body", logging.FieldError, err)
		status = http.StatusInternalServerError
		payload = []byte(`{"message":"Server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		slog.Debug("failed to write response body", logging.FieldError, err)
	}
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteValidation answers 400 with the first violated rule as message and the
// full list under "errors".
func WriteValidation(w http.ResponseWriter, errs ValidationErrors) {
	message := "Invalid request"
	if len(errs) > 0 {
		message = errs[0].Message
	}
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{Message: message, Errors: errs})
}
