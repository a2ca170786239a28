package onboarding

import (
	"context"
	"testing"
	"time"

	"instructorhub/internal/utils"
	"instructorhub/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateCanStart(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no history", func(t *testing.T) {
		gate := NewGate(newFakeOnboardingStore())
		require.NoError(t, gate.CanStart(ctx, "user-1", now))
	})

	t.Run("active onboarding in progress", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID: "user-1",
			Status: types.OnboardingStatusPending,
		}))

		gate := NewGate(store)
		err := gate.CanStart(ctx, "user-1", now)
		assert.Equal(t, types.ErrorKindConflict, types.KindOf(err))
	})

	t.Run("permanently rejected", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID: "user-1",
			Status: types.OnboardingStatusPermanentlyRejected,
		}))

		gate := NewGate(store)
		err := gate.CanStart(ctx, "user-1", now)
		assert.Equal(t, types.ErrorKindConflict, types.KindOf(err))
	})

	t.Run("rejected within cooldown", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID:        "user-1",
			Status:        types.OnboardingStatusRejected,
			CanRetryAfter: utils.TimePtr(now.Add(24 * time.Hour)),
		}))

		gate := NewGate(store)
		err := gate.CanStart(ctx, "user-1", now)
		require.Error(t, err)
		assert.Equal(t, types.ErrorKindConflict, types.KindOf(err))
		assert.Contains(t, err.Error(), now.Add(24*time.Hour).Format(time.RFC3339))
	})

	t.Run("rejected past cooldown", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID:        "user-1",
			Status:        types.OnboardingStatusRejected,
			CanRetryAfter: utils.TimePtr(now.Add(-time.Hour)),
		}))

		gate := NewGate(store)
		require.NoError(t, gate.CanStart(ctx, "user-1", now))
	})

	t.Run("approved history does not block", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID: "user-1",
			Status: types.OnboardingStatusApproved,
		}))

		gate := NewGate(store)
		require.NoError(t, gate.CanStart(ctx, "user-1", now))
	})

	t.Run("other users do not interfere", func(t *testing.T) {
		store := newFakeOnboardingStore()
		require.NoError(t, store.CreateOnboarding(ctx, &types.Onboarding{
			UserID: "user-2",
			Status: types.OnboardingStatusPending,
		}))

		gate := NewGate(store)
		require.NoError(t, gate.CanStart(ctx, "user-1", now))
	})
}
