package assignment

import (
	"context"
	"log/slog"

	"github.com/verdict-labs/verdict/internal/labelers"
)

// claimAttempts bounds retries when a candidate is claimed concurrently.
const claimAttempts = 2

// System defines task scheduling operations.
type System interface {
	// RequestTask assigns the next eligible item to the labeler. Calling it
	// again while a task is open returns the same task. Returns ErrNoTask
	// when no eligible work exists.
	RequestTask(ctx context.Context, labelerID int64) (*Task, error)

	// ActiveTask returns the labeler's open task, or ErrNoTask.
	ActiveTask(ctx context.Context, labelerID int64) (*Task, error)
}

type scheduler struct {
	store     Store
	labelers  labelers.System
	threshold int
	logger    *slog.Logger
}

// New creates the task scheduler. threshold is the number of distinct
// labelers after which an item stops receiving assignments.
func New(store Store, labelerSystem labelers.System, threshold int, logger *slog.Logger) System {
	return &scheduler{
		store:     store,
		labelers:  labelerSystem,
		threshold: threshold,
		logger:    logger.With("system", "assignment"),
	}
}

func (s *scheduler) RequestTask(ctx context.Context, labelerID int64) (*Task, error) {
	if _, err := s.labelers.Authorize(ctx, labelerID, labelers.RoleAdmin, labelers.RoleLabeler); err != nil {
		return nil, err
	}

	// Re-entry: an open task is returned as-is rather than assigning more
	// work, so a labeler holds at most one item at a time.
	active, err := s.store.FindActiveTask(ctx, labelerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return active, nil
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		candidate, err := s.store.FindOldestEligiblePending(ctx, labelerID, s.threshold)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return nil, ErrNoTask
		}

		claimed, err := s.store.AssignAndTransition(ctx, candidate.ContentItemID, labelerID)
		if err != nil {
			return nil, err
		}
		if claimed {
			s.logger.Info("task assigned",
				"content_item_id", candidate.ContentItemID,
				"labeler_id", labelerID,
			)
			return candidate, nil
		}

		s.logger.Debug("claim lost, retrying",
			"content_item_id", candidate.ContentItemID,
			"labeler_id", labelerID,
		)
	}

	return nil, ErrNoTask
}

func (s *scheduler) ActiveTask(ctx context.Context, labelerID int64) (*Task, error) {
	if _, err := s.labelers.Authorize(ctx, labelerID, labelers.RoleAdmin, labelers.RoleLabeler); err != nil {
		return nil, err
	}

	task, err := s.store.FindActiveTask(ctx, labelerID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNoTask
	}
	return task, nil
}
