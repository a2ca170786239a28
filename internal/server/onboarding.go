package server

import (
	"net/http"

	"instructorhub/internal/onboarding"
	"instructorhub/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleStartOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var req onboarding.StartRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.onboarding.Start(ctx, userID, req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Service) handleGetOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := s.onboarding.Latest(ctx, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleSubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	result, err := s.onboarding.Submit(ctx, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

type addDocumentRequest struct {
	Purpose string `json:"purpose"`
	Side    string `json:"side"`
}

type addDocumentResponse struct {
	Document *types.Document     `json:"document"`
	Upload   *types.UploadTarget `json:"upload"`
}

func (s *Service) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var req addDocumentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	purpose, err := onboarding.ParsePurpose(req.Purpose)
	if err != nil {
		s.writeError(w, err)
		return
	}
	side, err := onboarding.ParseSide(req.Side)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, upload, err := s.onboarding.AddDocument(ctx, userID, purpose, side)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, addDocumentResponse{Document: doc, Upload: upload})
}

type confirmUploadRequest struct {
	OriginalFilename string `json:"originalFilename"`
}

func (s *Service) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var req confirmUploadRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	doc, err := s.onboarding.ConfirmUpload(ctx, userID, flow.Param(ctx, "documentID"), req.OriginalFilename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Service) handleRemoveDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := s.onboarding.RemoveDocument(ctx, userID, flow.Param(ctx, "documentID")); err != nil {
		s.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
