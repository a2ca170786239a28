package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"instructorhub/internal/onboarding"
	"instructorhub/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger     *logrus.Logger
	config     *types.Config
	onboarding *onboarding.Service

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	onboardingService *onboarding.Service,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger:     logger,
		config:     config,
		onboarding: onboardingService,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/onboarding", s.handleStartOnboarding, http.MethodPost)
		r.HandleFunc("/onboarding", s.handleGetOnboarding, http.MethodGet)
		r.HandleFunc("/onboarding/submit", s.handleSubmitOnboarding, http.MethodPost)
		r.HandleFunc("/onboarding/documents", s.handleAddDocument, http.MethodPost)
		r.HandleFunc("/onboarding/documents/:documentID/confirm", s.handleConfirmUpload, http.MethodPost)
		r.HandleFunc("/onboarding/documents/:documentID", s.handleRemoveDocument, http.MethodDelete)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAdmin)

			r.HandleFunc("/admin/onboardings", s.handleListOnboardings, http.MethodGet)
			r.HandleFunc("/admin/onboardings/pending", s.handleReviewQueue, http.MethodGet)
			r.HandleFunc("/admin/onboardings/:onboardingID", s.handleOnboardingByID, http.MethodGet)
			r.HandleFunc("/admin/onboardings/:onboardingID/documents", s.handleOnboardingDocuments, http.MethodGet)
			r.HandleFunc("/admin/onboardings/:onboardingID/review", s.handleReviewOnboarding, http.MethodPost)
			r.HandleFunc("/admin/documents/:documentID/review", s.handleReviewDocument, http.MethodPost)
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
