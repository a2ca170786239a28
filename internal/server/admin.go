package server

import (
	"net/http"

	"instructorhub/internal/onboarding"
	"instructorhub/pkg/types"

	"github.com/alexedwards/flow"
)

type listOnboardingsQuery struct {
	Status string `form:"status"`
}

func (s *Service) handleListOnboardings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var query listOnboardingsQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	var status *types.OnboardingStatus
	if query.Status != "" {
		parsed, err := onboarding.ParseStatus(query.Status)
		if err != nil {
			s.writeError(w, err)
			return
		}
		status = &parsed
	}

	results, err := s.onboarding.List(ctx, status)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Service) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.onboarding.ReviewQueue(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Service) handleOnboardingByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.onboarding.ByID(ctx, flow.Param(ctx, "onboardingID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleOnboardingDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	downloads, err := s.onboarding.DocumentDownloads(ctx, flow.Param(ctx, "onboardingID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, downloads)
}

type reviewOnboardingRequest struct {
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason"`
	RejectionKind   string `json:"rejectionKind"`
}

func (s *Service) handleReviewOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewerID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var req reviewOnboardingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.onboarding.Review(
		ctx,
		flow.Param(ctx, "onboardingID"),
		reviewerID,
		req.Approved,
		req.RejectionReason,
		types.RejectionKind(req.RejectionKind),
	)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

type reviewDocumentRequest struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

func (s *Service) handleReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reviewerID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var req reviewDocumentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	doc, err := s.onboarding.ReviewDocument(ctx, flow.Param(ctx, "documentID"), reviewerID, req.Approved, req.Reason)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}
