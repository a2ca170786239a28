package types

import (
	"time"
)

type OnboardingStatus string

const (
	OnboardingStatusPending             OnboardingStatus = "PENDING"
	OnboardingStatusInReview            OnboardingStatus = "IN_REVIEW"
	OnboardingStatusApproved            OnboardingStatus = "APPROVED"
	OnboardingStatusRejected            OnboardingStatus = "REJECTED"
	OnboardingStatusPermanentlyRejected OnboardingStatus = "PERMANENTLY_REJECTED"
)

// ActiveOnboardingStatuses are the non-terminal statuses. At most one
// onboarding per user may hold one of these at any time.
var ActiveOnboardingStatuses = []OnboardingStatus{
	OnboardingStatusPending,
	OnboardingStatusInReview,
}

// IsTerminal reports whether no further transition is defined for this record.
// REJECTED is terminal for the record but permits a fresh onboarding once the
// retry cooldown elapses.
func (s OnboardingStatus) IsTerminal() bool {
	switch s {
	case OnboardingStatusApproved, OnboardingStatusRejected, OnboardingStatusPermanentlyRejected:
		return true
	}
	return false
}

type RejectionKind string

const (
	RejectionKindRetryable RejectionKind = "RETRYABLE"
	RejectionKindPermanent RejectionKind = "PERMANENT"
)

// ExpertiseArea is the vehicle class an instructor teaches.
type ExpertiseArea string

const (
	ExpertiseAreaCar   ExpertiseArea = "CARRO"
	ExpertiseAreaMoto  ExpertiseArea = "MOTO"
	ExpertiseAreaBus   ExpertiseArea = "ONIBUS"
	ExpertiseAreaTruck ExpertiseArea = "CAMINHAO"
)

type Onboarding struct {
	ID     string `db:"id" json:"id"`
	UserID string `db:"user_id" json:"userId"`

	Status OnboardingStatus `db:"status" json:"status"`

	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	SubmittedAt *time.Time `db:"submitted_at" json:"submittedAt,omitempty"`
	ReviewedAt  *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewerID  *string    `db:"reviewer_id" json:"reviewerId,omitempty"`

	RejectionReason *string        `db:"rejection_reason" json:"rejectionReason,omitempty"`
	RejectionKind   *RejectionKind `db:"rejection_kind" json:"rejectionKind,omitempty"`
	CanRetryAfter   *time.Time     `db:"can_retry_after" json:"canRetryAfter,omitempty"`

	FullName  string     `db:"full_name" json:"fullName"`
	BirthDate *time.Time `db:"birth_date" json:"birthDate,omitempty"`
	Phone     string     `db:"phone" json:"phone"`

	AddressStreet       string  `db:"address_street" json:"addressStreet"`
	AddressNumber       string  `db:"address_number" json:"addressNumber"`
	AddressComplement   *string `db:"address_complement" json:"addressComplement,omitempty"`
	AddressNeighborhood string  `db:"address_neighborhood" json:"addressNeighborhood"`
	AddressCity         string  `db:"address_city" json:"addressCity"`
	AddressState        string  `db:"address_state" json:"addressState"`
	AddressZipCode      string  `db:"address_zip_code" json:"addressZipCode"`

	ExpertiseAreas    []string `db:"expertise_areas" json:"expertiseAreas"`
	YearsOfExperience int      `db:"years_of_experience" json:"yearsOfExperience"`
	Bio               string   `db:"bio" json:"bio"`

	// Documents are owned exclusively by this onboarding and are loaded
	// separately; never persisted through this struct.
	Documents []*Document `db:"-" json:"documents,omitempty"`
}

// OnboardingSummary is the reviewer queue line item.
type OnboardingSummary struct {
	ID          string           `db:"id" json:"id"`
	UserID      string           `db:"user_id" json:"userId"`
	FullName    string           `db:"full_name" json:"fullName"`
	UserEmail   *string          `db:"email" json:"userEmail,omitempty"`
	Status      OnboardingStatus `db:"status" json:"status"`
	SubmittedAt *time.Time       `db:"submitted_at" json:"submittedAt,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}
