package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/galaxyhq/galaxy/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps service and repository errors onto the API error envelope.
// Unknown errors are logged and reported as a generic 500 so internals never
// leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var limited *service.RateLimitedError
	if errors.As(err, &limited) {
		w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfter))
		writeErrorCode(w, http.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		return
	}

	switch {
	case errors.Is(err, service.ErrSignInRequired):
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "sign in required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, repository.ErrPhotoNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, service.ErrCommentRejected):
		writeErrorCode(w, http.StatusUnprocessableEntity, "moderation_rejected", err.Error())
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrSelfReport),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidVisibility),
		errors.Is(err, service.ErrInvalidUpload),
		errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPassword):
		writeErrorCode(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, repository.ErrDuplicateEdge):
		writeErrorCode(w, http.StatusConflict, "conflict", "already exists")
	default:
		slog.Error("request failed", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// decodeJSON reads a JSON request body with a size cap
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
