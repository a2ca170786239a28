package onboarding

import (
	"context"

	"instructorhub/pkg/types"
)

// OnboardingStore is the persistence surface for onboarding records.
type OnboardingStore interface {
	Onboarding(ctx context.Context, onboardingID string) (*types.Onboarding, error)
	LatestByUser(ctx context.Context, userID string) (*types.Onboarding, error)
	LatestByUserInStatus(ctx context.Context, userID string, statuses []types.OnboardingStatus) (*types.Onboarding, error)
	OnboardingsByStatus(ctx context.Context, status types.OnboardingStatus) ([]*types.Onboarding, error)
	AllOnboardings(ctx context.Context) ([]*types.Onboarding, error)
	InReviewSummaries(ctx context.Context) ([]*types.OnboardingSummary, error)
	CreateOnboarding(ctx context.Context, onboarding *types.Onboarding) error
	UpdateOnboarding(ctx context.Context, onboarding *types.Onboarding) error
	LockUser(ctx context.Context, userID string) error
}

type DocumentStore interface {
	Document(ctx context.Context, documentID string) (*types.Document, error)
	DocumentsByOnboarding(ctx context.Context, onboardingID string) ([]*types.Document, error)
	DocumentsByOnboardingAndPurpose(ctx context.Context, onboardingID string, purpose types.DocumentPurpose) ([]*types.Document, error)
	CreateDocument(ctx context.Context, doc *types.Document) error
	UpdateDocument(ctx context.Context, doc *types.Document) error
	DeleteDocument(ctx context.Context, documentID string) error
}

type UserStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	GrantRole(ctx context.Context, userID string, role types.Role) error
}

// Storage is the object-store collaborator. StatObject is authoritative for
// object size and MIME type; callers are never trusted for either.
type Storage interface {
	PresignUpload(ctx context.Context, key string) (*types.UploadTarget, error)
	StatObject(ctx context.Context, key string) (*types.ObjectInfo, error)
	PresignDownload(ctx context.Context, key, mimeType string) (string, error)
}

type Event string

const (
	EventSubmitted Event = "onboarding_submitted"
	EventApproved  Event = "onboarding_approved"
	EventRejected  Event = "onboarding_rejected"
)

// Notifier delivers user-facing notifications. Implementations must not block
// the workflow; failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, event Event, userID string, payload map[string]string)
}

// TxRunner wraps one workflow operation in a transaction so load-check-mutate-
// save is atomic.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
