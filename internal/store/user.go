package store

import (
	"context"
	"fmt"

	"instructorhub/internal/utils"
	"instructorhub/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTableName = "instructorhub.users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) User(ctx context.Context, userID string) (*types.User, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.User
	err = pgxscan.Get(ctx, querier(ctx, r.pool), &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GrantRole appends role to the user's role set. Granting a role the user
// already holds is a no-op, so repeated approvals leave exactly one grant.
func (r *UserRepository) GrantRole(ctx context.Context, userID string, role types.Role) error {
	const query = `
		UPDATE instructorhub.users
		SET roles = array_append(roles, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(roles))`

	_, err := querier(ctx, r.pool).Exec(ctx, query, userID, string(role))
	return utils.ErrorWrapOrNil(err, "failed to grant role")
}
