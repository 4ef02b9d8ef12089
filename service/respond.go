package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/artkachenko/wenmoon"
)

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response failed")
	}
}

// writeError maps engine error classes to HTTP statuses and hides internals
// behind the user-facing message.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wenmoon.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, wenmoon.ErrFetch):
		status = http.StatusBadGateway
	}
	s.log.Warn().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": wenmoon.UserMessage(err)})
}
