package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "brainpin/pkg/errors"
)

// errorResponse is the wire shape of every error body.
type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	if appErr := apperrors.GetAppError(err); appErr != nil {
		message = appErr.Message
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
	}

	respondJSON(w, status, errorResponse{Message: message})
}

func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}
