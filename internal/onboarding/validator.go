package onboarding

import (
	"fmt"

	"instructorhub/pkg/types"
)

// DefaultRequiredPurposes is the document set every submission must cover.
func DefaultRequiredPurposes() []types.DocumentPurpose {
	return []types.DocumentPurpose{
		types.DocumentPurposeIdentification,
		types.DocumentPurposeInstructorLicense,
		types.DocumentPurposeProofOfResidency,
	}
}

// Validator enforces which purpose/side combinations may coexist and whether
// the required document set is complete. Pure logic, no I/O.
type Validator struct {
	required []types.DocumentPurpose
}

func NewValidator(required []types.DocumentPurpose) *Validator {
	if len(required) == 0 {
		required = DefaultRequiredPurposes()
	}
	return &Validator{required: required}
}

func (v *Validator) Required() []types.DocumentPurpose {
	return v.required
}

// CanAdd decides whether a document with the given side may join the existing
// documents for one purpose. The side set for a purpose is either {SINGLE} or
// a subset of {FRONT, BACK}, never mixed.
func (v *Validator) CanAdd(existing []*types.Document, side types.DocumentSide) error {
	for _, doc := range existing {
		if doc.Side == side {
			return types.NewConflict("a document with this purpose and side already exists, remove it first")
		}
		if doc.Side == types.DocumentSideSingle {
			return types.NewConflict("a single-sided document already exists for this purpose")
		}
		if side == types.DocumentSideSingle {
			return types.NewConflict("cannot add a single-sided document when front or back already exists")
		}
	}
	return nil
}

// Complete reports whether the side set contains SINGLE, or both FRONT and
// BACK. Only FRONT or only BACK is incomplete.
func (v *Validator) Complete(docs []*types.Document) bool {
	sides := map[types.DocumentSide]bool{}
	for _, doc := range docs {
		sides[doc.Side] = true
	}
	return sides[types.DocumentSideSingle] ||
		(sides[types.DocumentSideFront] && sides[types.DocumentSideBack])
}

// MissingPurposes returns the required purposes that are not complete in docs,
// in required order.
func (v *Validator) MissingPurposes(docs []*types.Document) []types.DocumentPurpose {
	byPurpose := map[types.DocumentPurpose][]*types.Document{}
	for _, doc := range docs {
		byPurpose[doc.Purpose] = append(byPurpose[doc.Purpose], doc)
	}

	var missing []types.DocumentPurpose
	for _, purpose := range v.required {
		if !v.Complete(byPurpose[purpose]) {
			missing = append(missing, purpose)
		}
	}
	return missing
}

// ParseSide validates caller-provided side values against the closed enum.
func ParseSide(s string) (types.DocumentSide, error) {
	switch types.DocumentSide(s) {
	case types.DocumentSideSingle, types.DocumentSideFront, types.DocumentSideBack:
		return types.DocumentSide(s), nil
	}
	return "", types.NewValidation(fmt.Sprintf("unknown document side %q", s))
}

// ParsePurpose validates caller-provided purpose values against the closed enum.
func ParsePurpose(s string) (types.DocumentPurpose, error) {
	switch types.DocumentPurpose(s) {
	case types.DocumentPurposeIdentification,
		types.DocumentPurposeInstructorLicense,
		types.DocumentPurposeProofOfResidency:
		return types.DocumentPurpose(s), nil
	}
	return "", types.NewValidation(fmt.Sprintf("unknown document purpose %q", s))
}

// ParseStatus validates caller-provided onboarding status filters.
func ParseStatus(s string) (types.OnboardingStatus, error) {
	switch types.OnboardingStatus(s) {
	case types.OnboardingStatusPending,
		types.OnboardingStatusInReview,
		types.OnboardingStatusApproved,
		types.OnboardingStatusRejected,
		types.OnboardingStatusPermanentlyRejected:
		return types.OnboardingStatus(s), nil
	}
	return "", types.NewValidation(fmt.Sprintf("unknown onboarding status %q", s))
}

// ParseRejectionKind validates the rejection kind supplied with a review decision.
func ParseRejectionKind(s string) (types.RejectionKind, error) {
	switch types.RejectionKind(s) {
	case types.RejectionKindRetryable, types.RejectionKindPermanent:
		return types.RejectionKind(s), nil
	}
	return "", types.NewValidation(fmt.Sprintf("unknown rejection kind %q", s))
}
