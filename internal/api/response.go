package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/OPRYAN90/robodog-request-system/internal/models/dtos"
	"github.com/OPRYAN90/robodog-request-system/internal/repository"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondWithDomainError maps the two recoverable domain error kinds onto
// HTTP statuses: bad input is 400, a stale id is 404, anything else 500.
func respondWithDomainError(w http.ResponseWriter, err error) {
	var ve *repository.ValidationError
	var nfe *repository.NotFoundError
	switch {
	case errors.As(err, &ve):
		respondWithError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &nfe):
		respondWithError(w, http.StatusNotFound, nfe.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
