package server

import (
	"encoding/json"
	"net/http"

	"instructorhub/pkg/types"
)

type errorResponse struct {
	Error string          `json:"error"`
	Kind  types.ErrorKind `json:"kind,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

func (s *Service) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps workflow error kinds onto HTTP statuses. Untyped errors are
// never exposed to the caller.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	kind := types.KindOf(err)

	var status int
	switch kind {
	case types.ErrorKindValidation:
		status = http.StatusBadRequest
	case types.ErrorKindConflict, types.ErrorKindInvalidState:
		status = http.StatusConflict
	case types.ErrorKindNotFound:
		status = http.StatusNotFound
	case types.ErrorKindDependency:
		status = http.StatusBadGateway
	default:
		s.logger.WithError(err).Error("unhandled error")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func (s *Service) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
