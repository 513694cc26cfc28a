package labels

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/pkg/repository"
)

type postgresStore struct {
	infra *infrastructure.Infrastructure
}

// NewStore creates the PostgreSQL-backed label Store.
func NewStore(infra *infrastructure.Infrastructure) Store {
	return &postgresStore{infra: infra}
}

func (s *postgresStore) Record(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
	return repository.WithTx(ctx, s.infra.Database.Connection(), func(tx *sql.Tx) (*RecordResult, error) {
		// The assignment guard and the insert live in one transaction so a
		// submission can never complete against a reassigned item.
		guard := `
			UPDATE content_items SET updated_at = NOW()
			WHERE id = $1 AND status = 'in_progress' AND assigned_labeler_id = $2`

		affected, err := repository.ExecAffected(ctx, tx, guard, label.ContentItemID, label.LabelerID)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, fmt.Errorf("%w: content item %d", ErrNotAssigned, label.ContentItemID)
		}

		insert := `
			INSERT INTO labels (
				id, content_item_id, labeler_id, classification, confidence_score,
				ai_indicators, human_indicators, tags, time_spent_seconds
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, content_item_id, labeler_id, classification, confidence_score,
				ai_indicators, human_indicators, tags, time_spent_seconds, created_at`

		if label.ID == uuid.Nil {
			label.ID = uuid.New()
		}

		recorded, err := repository.QueryOne(ctx, tx, insert, []any{
			label.ID,
			label.ContentItemID,
			label.LabelerID,
			string(label.Classification),
			label.ConfidenceScore,
			marshalList(label.AIIndicators),
			marshalList(label.HumanIndicators),
			marshalList(label.Tags),
			label.TimeSpentSeconds,
		}, scanLabel)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrAlreadyLabeled)
		}

		var distinct int
		row := tx.QueryRowContext(ctx,
			`SELECT COUNT(DISTINCT labeler_id) FROM labels WHERE content_item_id = $1`,
			label.ContentItemID,
		)
		if err := row.Scan(&distinct); err != nil {
			return nil, err
		}

		completed := distinct >= threshold
		var transition string
		if completed {
			transition = `
				UPDATE content_items
				SET status = 'completed', assigned_labeler_id = NULL,
					completed_at = NOW(), updated_at = NOW()
				WHERE id = $1`
		} else {
			transition = `
				UPDATE content_items
				SET status = 'pending', assigned_labeler_id = NULL, updated_at = NOW()
				WHERE id = $1`
		}

		if err := repository.ExecExpectOne(ctx, tx, transition, label.ContentItemID); err != nil {
			return nil, err
		}

		return &RecordResult{
			Label:            recorded,
			DistinctLabelers: distinct,
			Completed:        completed,
		}, nil
	})
}

func (s *postgresStore) ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error) {
	query := `
		SELECT ` + labelColumns + `
		FROM labels l
		WHERE l.content_item_id = $1
		ORDER BY l.created_at`

	return repository.QueryMany(ctx, s.infra.Database.Connection(), query, []any{contentItemID}, scanLabel)
}

func (s *postgresStore) ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error) {
	query := `
		SELECT ` + labelColumns + `
		FROM labels l
		WHERE l.labeler_id = $1
		ORDER BY l.created_at DESC`

	return repository.QueryMany(ctx, s.infra.Database.Connection(), query, []any{labelerID}, scanLabel)
}

func (s *postgresStore) Find(ctx context.Context, id string) (*Label, error) {
	query := `
		SELECT ` + labelColumns + `
		FROM labels l
		WHERE l.id = $1`

	label, err := repository.QueryOne(ctx, s.infra.Database.Connection(), query, []any{id}, scanLabel)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyLabeled)
	}
	return &label, nil
}
