package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, status, errorBody{Detail: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Detail: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", apperrors.ErrInvalidInput)
	}
	return nil
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", apperrors.ErrInvalidInput, name)
	}
	return id, nil
}

// auctionID reads the X-Auction-Id header every room-scoped endpoint requires.
func auctionID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-Auction-Id")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing auction id", apperrors.ErrInvalidInput)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid auction id", apperrors.ErrInvalidInput)
	}
	return id, nil
}
