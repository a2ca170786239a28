package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"instructorhub/pkg/types"
)

// Gate decides whether a user may start a new onboarding, based on the state
// of their previous attempts. Refusal messages stay generic on purpose.
type Gate struct {
	onboardings OnboardingStore
}

func NewGate(onboardings OnboardingStore) *Gate {
	return &Gate{onboardings: onboardings}
}

func (g *Gate) CanStart(ctx context.Context, userID string, now time.Time) error {
	_, err := g.onboardings.LatestByUserInStatus(ctx, userID, types.ActiveOnboardingStatuses)
	if err == nil {
		return types.NewConflict("an onboarding is already in progress")
	}
	if !errors.Is(err, types.ErrOnboardingNotFound) {
		return err
	}

	last, err := g.onboardings.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrOnboardingNotFound) {
			return nil
		}
		return err
	}

	switch last.Status {
	case types.OnboardingStatusPermanentlyRejected:
		return types.NewConflict("a new onboarding cannot be started for this account")
	case types.OnboardingStatusRejected:
		if last.CanRetryAfter != nil && now.Before(*last.CanRetryAfter) {
			return types.NewConflict(fmt.Sprintf(
				"a new onboarding can be started after %s",
				last.CanRetryAfter.UTC().Format(time.RFC3339),
			))
		}
	}

	return nil
}
