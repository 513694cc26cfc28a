package assignment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/pkg/repository"
)

const taskColumns = `ci.id, ci.url, ci.title, ci.description, ci.priority, ci.created_at`

type postgresStore struct {
	infra *infrastructure.Infrastructure
}

// NewStore creates the PostgreSQL-backed scheduling Store.
func NewStore(infra *infrastructure.Infrastructure) Store {
	return &postgresStore{infra: infra}
}

func (s *postgresStore) FindActiveTask(ctx context.Context, labelerID int64) (*Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM content_items ci
		WHERE ci.status = 'in_progress' AND ci.assigned_labeler_id = $1
		ORDER BY ci.id
		LIMIT 1`

	task, err := repository.QueryOne(ctx, s.infra.Database.Connection(), query, []any{labelerID}, scanTask)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (s *postgresStore) FindOldestEligiblePending(ctx context.Context, labelerID int64, threshold int) (*Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM content_items ci
		WHERE ci.status = 'pending'
			AND (ci.assigned_labeler_id IS NULL OR ci.assigned_labeler_id = $1)
			AND NOT EXISTS (
				SELECT 1 FROM labels l
				WHERE l.content_item_id = ci.id AND l.labeler_id = $1
			)
			AND (
				SELECT COUNT(DISTINCT l.labeler_id) FROM labels l
				WHERE l.content_item_id = ci.id
			) < $2
		ORDER BY ci.id
		LIMIT 1`

	task, err := repository.QueryOne(ctx, s.infra.Database.Connection(), query, []any{labelerID, threshold}, scanTask)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (s *postgresStore) AssignAndTransition(ctx context.Context, contentItemID, labelerID int64) (bool, error) {
	query := `
		UPDATE content_items
		SET status = 'in_progress', assigned_labeler_id = $2, updated_at = NOW()
		WHERE id = $1
			AND status = 'pending'
			AND (assigned_labeler_id IS NULL OR assigned_labeler_id = $2)`

	affected, err := repository.ExecAffected(ctx, s.infra.Database.Connection(), query, contentItemID, labelerID)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func scanTask(s repository.Scanner) (Task, error) {
	var (
		task        Task
		title       sql.NullString
		description sql.NullString
	)

	err := s.Scan(
		&task.ContentItemID,
		&task.URL,
		&title,
		&description,
		&task.Priority,
		&task.CreatedAt,
	)
	if err != nil {
		return task, err
	}

	task.Title = title.String
	task.Description = description.String
	return task, nil
}
