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

const documentTableName = "instructorhub.onboarding_documents"

var documentColumns = utils.StructTagValues(types.Document{})

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Document(ctx context.Context, documentID string) (*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(sq.Eq{"id": documentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document query: %w", err)
	}

	var doc types.Document
	err = pgxscan.Get(ctx, querier(ctx, r.pool), &doc, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	return &doc, nil
}

func (r *DocumentRepository) DocumentsByOnboarding(ctx context.Context, onboardingID string) ([]*types.Document, error) {
	return r.list(ctx, sq.Eq{"onboarding_id": onboardingID})
}

func (r *DocumentRepository) DocumentsByOnboardingAndPurpose(ctx context.Context, onboardingID string, purpose types.DocumentPurpose) ([]*types.Document, error) {
	return r.list(ctx, sq.Eq{"onboarding_id": onboardingID, "purpose": purpose})
}

func (r *DocumentRepository) list(ctx context.Context, where sq.Eq) ([]*types.Document, error) {
	query, args, err := psql().
		Select(documentColumns...).
		From(documentTableName).
		Where(where).
		OrderBy("created_at asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document list query: %w", err)
	}

	var docs = make([]*types.Document, 0)
	err = pgxscan.Select(ctx, querier(ctx, r.pool), &docs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *types.Document) error {
	now := time.Now()
	doc.ID = utils.NanoID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query, args, err := psql().
		Insert(documentTableName).
		SetMap(utils.StructToMap(doc)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert document query: %w", err)
	}

	_, err = querier(ctx, r.pool).Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create document")
}

func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *types.Document) error {
	doc.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(documentTableName).
		SetMap(utils.StructToMap(doc)).
		Where(sq.Eq{"id": doc.ID, "onboarding_id": doc.OnboardingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update document query: %w", err)
	}

	_, err = querier(ctx, r.pool).Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update document")
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	query, args, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete document query: %w", err)
	}

	_, err = querier(ctx, r.pool).Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete document")
}
