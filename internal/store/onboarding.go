package store

import (
	"context"
	"fmt"
	"time"

	"instructorhub/internal/utils"
	"instructorhub/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const onboardingTableName = "instructorhub.onboardings"

var onboardingColumns = utils.StructTagValues(types.Onboarding{})

type OnboardingRepository struct {
	pool *pgxpool.Pool
}

func NewOnboardingRepository(pool *pgxpool.Pool) *OnboardingRepository {
	return &OnboardingRepository{pool: pool}
}

func (r *OnboardingRepository) Onboarding(ctx context.Context, onboardingID string) (*types.Onboarding, error) {
	query, args, err := psql().
		Select(onboardingColumns...).
		From(onboardingTableName).
		Where(sq.Eq{"id": onboardingID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate onboarding query: %w", err)
	}

	var onboarding types.Onboarding
	err = pgxscan.Get(ctx, querier(ctx, r.pool), &onboarding, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrOnboardingNotFound
		}
		return nil, fmt.Errorf("failed to fetch onboarding: %w", err)
	}

	return &onboarding, nil
}

// LatestByUser returns the most recent onboarding for the user regardless of
// status.
func (r *OnboardingRepository) LatestByUser(ctx context.Context, userID string) (*types.Onboarding, error) {
	return r.latest(ctx, sq.Eq{"user_id": userID})
}

// LatestByUserInStatus returns the most recent onboarding for the user whose
// status is in the given set.
func (r *OnboardingRepository) LatestByUserInStatus(ctx context.Context, userID string, statuses []types.OnboardingStatus) (*types.Onboarding, error) {
	return r.latest(ctx, sq.Eq{"user_id": userID, "status": statuses})
}

func (r *OnboardingRepository) latest(ctx context.Context, where sq.Eq) (*types.Onboarding, error) {
	query, args, err := psql().
		Select(onboardingColumns...).
		From(onboardingTableName).
		Where(where).
		OrderBy("created_at desc").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate latest onboarding query: %w", err)
	}

	var onboarding types.Onboarding
	err = pgxscan.Get(ctx, querier(ctx, r.pool), &onboarding, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrOnboardingNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest onboarding: %w", err)
	}

	return &onboarding, nil
}

func (r *OnboardingRepository) OnboardingsByStatus(ctx context.Context, status types.OnboardingStatus) ([]*types.Onboarding, error) {
	return r.list(ctx, sq.Eq{"status": status})
}

func (r *OnboardingRepository) AllOnboardings(ctx context.Context) ([]*types.Onboarding, error) {
	return r.list(ctx, nil)
}

func (r *OnboardingRepository) list(ctx context.Context, where sq.Eq) ([]*types.Onboarding, error) {
	builder := psql().
		Select(onboardingColumns...).
		From(onboardingTableName).
		OrderBy("created_at desc")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate onboarding list query: %w", err)
	}

	var onboardings = make([]*types.Onboarding, 0)
	err = pgxscan.Select(ctx, querier(ctx, r.pool), &onboardings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list onboardings: %w", err)
	}

	return onboardings, nil
}

// InReviewSummaries returns the reviewer queue, newest submissions first.
func (r *OnboardingRepository) InReviewSummaries(ctx context.Context) ([]*types.OnboardingSummary, error) {
	query, args, err := psql().
		Select("o.id", "o.user_id", "o.full_name", "u.email", "o.status", "o.submitted_at", "o.created_at").
		From(onboardingTableName + " o").
		Join(userTableName + " u ON u.id = o.user_id").
		Where(sq.Eq{"o.status": types.OnboardingStatusInReview}).
		OrderBy("o.created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary query: %w", err)
	}

	var summaries = make([]*types.OnboardingSummary, 0)
	err = pgxscan.Select(ctx, querier(ctx, r.pool), &summaries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list onboarding summaries: %w", err)
	}

	return summaries, nil
}

func (r *OnboardingRepository) CreateOnboarding(ctx context.Context, onboarding *types.Onboarding) error {
	now := time.Now()
	onboarding.ID = utils.NanoID()
	onboarding.CreatedAt = now
	onboarding.UpdatedAt = now

	query, args, err := psql().
		Insert(onboardingTableName).
		SetMap(utils.StructToMap(onboarding)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert onboarding query: %w", err)
	}

	_, err = querier(ctx, r.pool).Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create onboarding")
}

func (r *OnboardingRepository) UpdateOnboarding(ctx context.Context, onboarding *types.Onboarding) error {
	onboarding.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(onboardingTableName).
		SetMap(utils.StructToMap(onboarding)).
		Where(sq.Eq{"id": onboarding.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update onboarding query: %w", err)
	}

	_, err = querier(ctx, r.pool).Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update onboarding")
}

// LockUser serializes onboarding creation per user for the life of the
// surrounding transaction. Without it two concurrent starts can both pass the
// eligibility check before either inserts.
func (r *OnboardingRepository) LockUser(ctx context.Context, userID string) error {
	_, err := querier(ctx, r.pool).Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", userID)
	return utils.ErrorWrapOrNil(err, "failed to take user onboarding lock")
}
