package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"instructorhub/internal/utils"
	"instructorhub/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config carries the tunable workflow knobs. Passed in at construction, never
// read ambiently.
type Config struct {
	StorageBucket    string
	RetryCooldown    time.Duration
	MaxFileSizeBytes int64
	RequiredPurposes []types.DocumentPurpose
}

// Service is the workflow engine: it loads entities, asks the gate and the
// validator for permission, mutates state inside one transaction per call,
// and triggers side effects on the collaborators.
type Service struct {
	logger      *logrus.Logger
	cfg         Config
	tx          TxRunner
	onboardings OnboardingStore
	documents   DocumentStore
	users       UserStore
	storage     Storage
	notifier    Notifier

	gate      *Gate
	validator *Validator

	now func() time.Time
}

func NewService(
	logger *logrus.Logger,
	cfg Config,
	tx TxRunner,
	onboardings OnboardingStore,
	documents DocumentStore,
	users UserStore,
	storage Storage,
	notifier Notifier,
) *Service {
	return &Service{
		logger:      logger,
		cfg:         cfg,
		tx:          tx,
		onboardings: onboardings,
		documents:   documents,
		users:       users,
		storage:     storage,
		notifier:    notifier,
		gate:        NewGate(onboardings),
		validator:   NewValidator(cfg.RequiredPurposes),
		now:         time.Now,
	}
}

// StartRequest is the personal and professional payload for a new onboarding.
type StartRequest struct {
	FullName  string     `json:"fullName"`
	BirthDate *time.Time `json:"birthDate"`
	Phone     string     `json:"phone"`

	AddressStreet       string  `json:"addressStreet"`
	AddressNumber       string  `json:"addressNumber"`
	AddressComplement   *string `json:"addressComplement"`
	AddressNeighborhood string  `json:"addressNeighborhood"`
	AddressCity         string  `json:"addressCity"`
	AddressState        string  `json:"addressState"`
	AddressZipCode      string  `json:"addressZipCode"`

	ExpertiseAreas    []types.ExpertiseArea `json:"expertiseAreas"`
	YearsOfExperience int                   `json:"yearsOfExperience"`
	Bio               string                `json:"bio"`
}

func (r StartRequest) validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return types.NewValidation("full name is required")
	}
	for _, area := range r.ExpertiseAreas {
		switch area {
		case types.ExpertiseAreaCar, types.ExpertiseAreaMoto, types.ExpertiseAreaBus, types.ExpertiseAreaTruck:
		default:
			return types.NewValidation(fmt.Sprintf("unknown expertise area %q", area))
		}
	}
	return nil
}

// Start creates a new PENDING onboarding for the user. Creation is serialized
// per user so two concurrent calls cannot both pass the eligibility check.
func (s *Service) Start(ctx context.Context, userID string, req StartRequest) (*types.Onboarding, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	areas := make([]string, 0, len(req.ExpertiseAreas))
	for _, area := range req.ExpertiseAreas {
		areas = append(areas, string(area))
	}

	onboarding := &types.Onboarding{
		UserID:              userID,
		Status:              types.OnboardingStatusPending,
		FullName:            req.FullName,
		BirthDate:           req.BirthDate,
		Phone:               req.Phone,
		AddressStreet:       req.AddressStreet,
		AddressNumber:       req.AddressNumber,
		AddressComplement:   req.AddressComplement,
		AddressNeighborhood: req.AddressNeighborhood,
		AddressCity:         req.AddressCity,
		AddressState:        req.AddressState,
		AddressZipCode:      req.AddressZipCode,
		ExpertiseAreas:      areas,
		YearsOfExperience:   req.YearsOfExperience,
		Bio:                 req.Bio,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.onboardings.LockUser(ctx, userID); err != nil {
			return err
		}
		if err := s.gate.CanStart(ctx, userID, s.now()); err != nil {
			return err
		}
		return s.onboardings.CreateOnboarding(ctx, onboarding)
	})
	if err != nil {
		return nil, err
	}

	onboarding.Documents = []*types.Document{}
	return onboarding, nil
}

// AddDocument reserves a document slot: it allocates a storage key, persists a
// PENDING_UPLOAD record, and returns a presigned upload handle.
func (s *Service) AddDocument(ctx context.Context, userID string, purpose types.DocumentPurpose, side types.DocumentSide) (*types.Document, *types.UploadTarget, error) {
	var (
		doc    *types.Document
		target *types.UploadTarget
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.activeOnboarding(ctx, userID)
		if err != nil {
			return err
		}
		if active.Status != types.OnboardingStatusPending {
			return types.NewInvalidState("cannot add documents to a submitted onboarding")
		}

		existing, err := s.documents.DocumentsByOnboardingAndPurpose(ctx, active.ID, purpose)
		if err != nil {
			return err
		}
		if err := s.validator.CanAdd(existing, side); err != nil {
			return err
		}

		key := fmt.Sprintf("onboarding/%s/%s/%s/%s/%s",
			userID,
			active.ID,
			strings.ToLower(string(purpose)),
			strings.ToLower(string(side)),
			uuid.NewString(),
		)

		doc = &types.Document{
			OnboardingID:  active.ID,
			Purpose:       purpose,
			Side:          side,
			StorageBucket: s.cfg.StorageBucket,
			StorageKey:    key,
			Status:        types.DocumentStatusPendingUpload,
		}
		if err := s.documents.CreateDocument(ctx, doc); err != nil {
			return err
		}

		target, err = s.storage.PresignUpload(ctx, key)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return doc, target, nil
}

// ConfirmUpload marks a reserved document as uploaded. Size and MIME type come
// from storage, not from the caller.
func (s *Service) ConfirmUpload(ctx context.Context, userID, documentID, originalFilename string) (*types.Document, error) {
	var doc *types.Document

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.documents.Document(ctx, documentID)
		if err != nil {
			return err
		}

		owner, err := s.onboardings.Onboarding(ctx, doc.OnboardingID)
		if err != nil {
			return err
		}
		if owner.UserID != userID {
			return types.NewInvalidState("document does not belong to caller")
		}
		if doc.Status != types.DocumentStatusPendingUpload {
			return types.NewInvalidState("document is not awaiting upload")
		}

		info, err := s.storage.StatObject(ctx, doc.StorageKey)
		if err != nil {
			return err
		}
		if s.cfg.MaxFileSizeBytes > 0 && info.SizeBytes > s.cfg.MaxFileSizeBytes {
			return types.NewValidation(fmt.Sprintf("uploaded file exceeds the %d byte limit", s.cfg.MaxFileSizeBytes))
		}

		doc.OriginalFilename = utils.StringPtr(originalFilename)
		doc.FileSizeBytes = utils.Int64Ptr(info.SizeBytes)
		doc.MimeType = utils.StringPtr(info.MimeType)
		doc.UploadedAt = utils.TimePtr(s.now())
		doc.Status = types.DocumentStatusUploaded

		return s.documents.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// RemoveDocument deletes a reserved or uploaded document. Only legal while the
// owning onboarding is still PENDING; the stored object is left to the storage
// lifecycle policy.
func (s *Service) RemoveDocument(ctx context.Context, userID, documentID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.activeOnboarding(ctx, userID)
		if err != nil {
			return err
		}

		doc, err := s.documents.Document(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.OnboardingID != active.ID {
			return types.NewInvalidState("document does not belong to caller's onboarding")
		}
		if active.Status != types.OnboardingStatusPending {
			return types.NewInvalidState("documents can only be removed while the onboarding is pending")
		}

		return s.documents.DeleteDocument(ctx, documentID)
	})
}

// Submit moves a PENDING onboarding to IN_REVIEW once every required purpose
// has a complete document set.
func (s *Service) Submit(ctx context.Context, userID string) (*types.Onboarding, error) {
	var onboarding *types.Onboarding

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.activeOnboarding(ctx, userID)
		if err != nil {
			return err
		}
		if active.Status != types.OnboardingStatusPending {
			return types.NewInvalidState("onboarding has already been submitted")
		}

		docs, err := s.documents.DocumentsByOnboarding(ctx, active.ID)
		if err != nil {
			return err
		}
		if missing := s.validator.MissingPurposes(docs); len(missing) > 0 {
			names := make([]string, 0, len(missing))
			for _, purpose := range missing {
				names = append(names, string(purpose))
			}
			return types.NewValidation("missing required documents: " + strings.Join(names, ", "))
		}

		active.Status = types.OnboardingStatusInReview
		active.SubmittedAt = utils.TimePtr(s.now())
		if err := s.onboardings.UpdateOnboarding(ctx, active); err != nil {
			return err
		}

		active.Documents = docs
		onboarding = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, EventSubmitted, onboarding.UserID, map[string]string{
		"onboardingId": onboarding.ID,
	})

	return onboarding, nil
}

// Review resolves an IN_REVIEW onboarding. Approval grants the INSTRUCTOR role
// (idempotent); a retryable rejection opens a retry window after the
// configured cooldown.
func (s *Service) Review(ctx context.Context, onboardingID, reviewerID string, approved bool, rejectionReason string, rejectionKind types.RejectionKind) (*types.Onboarding, error) {
	if !approved {
		switch rejectionKind {
		case types.RejectionKindRetryable, types.RejectionKindPermanent:
		default:
			return nil, types.NewValidation(fmt.Sprintf("unknown rejection kind %q", rejectionKind))
		}
	}

	var onboarding *types.Onboarding

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.onboardings.Onboarding(ctx, onboardingID)
		if err != nil {
			return err
		}
		if o.Status != types.OnboardingStatusInReview {
			return types.NewInvalidState("onboarding is not under review")
		}

		now := s.now()
		o.ReviewerID = utils.StringPtr(reviewerID)
		o.ReviewedAt = utils.TimePtr(now)

		if approved {
			o.Status = types.OnboardingStatusApproved
			if err := s.users.GrantRole(ctx, o.UserID, types.RoleInstructor); err != nil {
				return err
			}
		} else {
			kind := rejectionKind
			o.RejectionReason = utils.StringPtr(rejectionReason)
			o.RejectionKind = &kind
			if kind == types.RejectionKindPermanent {
				o.Status = types.OnboardingStatusPermanentlyRejected
			} else {
				o.Status = types.OnboardingStatusRejected
				o.CanRetryAfter = utils.TimePtr(now.Add(s.cfg.RetryCooldown))
			}
		}

		if err := s.onboardings.UpdateOnboarding(ctx, o); err != nil {
			return err
		}

		onboarding = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approved {
		s.notifier.Notify(ctx, EventApproved, onboarding.UserID, map[string]string{
			"onboardingId": onboarding.ID,
		})
	} else {
		payload := map[string]string{
			"onboardingId": onboarding.ID,
			"reason":       rejectionReason,
		}
		if onboarding.CanRetryAfter != nil {
			payload["canRetryAfter"] = onboarding.CanRetryAfter.UTC().Format(time.RFC3339)
		}
		s.notifier.Notify(ctx, EventRejected, onboarding.UserID, payload)
	}

	return onboarding, nil
}

// ReviewDocument adjudicates one uploaded document while its onboarding is
// under review.
func (s *Service) ReviewDocument(ctx context.Context, documentID, reviewerID string, approved bool, reason string) (*types.Document, error) {
	var doc *types.Document

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.documents.Document(ctx, documentID)
		if err != nil {
			return err
		}
		if doc.Status != types.DocumentStatusUploaded {
			return types.NewInvalidState("document is not awaiting review")
		}

		owner, err := s.onboardings.Onboarding(ctx, doc.OnboardingID)
		if err != nil {
			return err
		}
		if owner.Status != types.OnboardingStatusInReview {
			return types.NewInvalidState("documents can only be reviewed while the onboarding is under review")
		}

		if approved {
			doc.Status = types.DocumentStatusVerified
		} else {
			doc.Status = types.DocumentStatusRejected
		}
		if reason != "" {
			doc.ReviewNote = utils.StringPtr(reason)
		}

		s.logger.WithFields(logrus.Fields{
			"document_id": doc.ID,
			"reviewer_id": reviewerID,
			"status":      doc.Status,
		}).Info("document reviewed")

		return s.documents.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Latest returns the user's most recent onboarding with its documents.
func (s *Service) Latest(ctx context.Context, userID string) (*types.Onboarding, error) {
	onboarding, err := s.onboardings.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withDocuments(ctx, onboarding)
}

// ByID returns one onboarding with its documents.
func (s *Service) ByID(ctx context.Context, onboardingID string) (*types.Onboarding, error) {
	onboarding, err := s.onboardings.Onboarding(ctx, onboardingID)
	if err != nil {
		return nil, err
	}
	return s.withDocuments(ctx, onboarding)
}

// List returns all onboardings, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *types.OnboardingStatus) ([]*types.Onboarding, error) {
	if status != nil {
		return s.onboardings.OnboardingsByStatus(ctx, *status)
	}
	return s.onboardings.AllOnboardings(ctx)
}

// ReviewQueue returns summaries of onboardings waiting for review.
func (s *Service) ReviewQueue(ctx context.Context) ([]*types.OnboardingSummary, error) {
	return s.onboardings.InReviewSummaries(ctx)
}

// DocumentDownloads returns short-lived download URLs for the onboarding's
// uploaded or verified documents.
func (s *Service) DocumentDownloads(ctx context.Context, onboardingID string) ([]*types.DocumentDownload, error) {
	if _, err := s.onboardings.Onboarding(ctx, onboardingID); err != nil {
		return nil, err
	}

	docs, err := s.documents.DocumentsByOnboarding(ctx, onboardingID)
	if err != nil {
		return nil, err
	}

	downloads := make([]*types.DocumentDownload, 0, len(docs))
	for _, doc := range docs {
		if doc.Status != types.DocumentStatusUploaded && doc.Status != types.DocumentStatusVerified {
			continue
		}

		url, err := s.storage.PresignDownload(ctx, doc.StorageKey, utils.PtrString(doc.MimeType))
		if err != nil {
			return nil, err
		}

		downloads = append(downloads, &types.DocumentDownload{
			DocumentID:       doc.ID,
			Purpose:          doc.Purpose,
			Side:             doc.Side,
			OriginalFilename: doc.OriginalFilename,
			MimeType:         doc.MimeType,
			Status:           doc.Status,
			UploadedAt:       doc.UploadedAt,
			DownloadURL:      url,
		})
	}

	return downloads, nil
}

func (s *Service) withDocuments(ctx context.Context, onboarding *types.Onboarding) (*types.Onboarding, error) {
	docs, err := s.documents.DocumentsByOnboarding(ctx, onboarding.ID)
	if err != nil {
		return nil, err
	}
	onboarding.Documents = docs
	return onboarding, nil
}

func (s *Service) activeOnboarding(ctx context.Context, userID string) (*types.Onboarding, error) {
	active, err := s.onboardings.LatestByUserInStatus(ctx, userID, types.ActiveOnboardingStatuses)
	if err != nil {
		if errors.Is(err, types.ErrOnboardingNotFound) {
			return nil, types.ErrNoActiveOnboarding
		}
		return nil, err
	}
	return active, nil
}
