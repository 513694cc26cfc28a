package assignment

import "context"

// Store is the persistence surface the scheduler runs against.
type Store interface {
	// FindActiveTask returns the item currently assigned to the labeler and
	// still in progress, or nil when the labeler has no open task.
	FindActiveTask(ctx context.Context, labelerID int64) (*Task, error)

	// FindOldestEligiblePending returns the oldest pending item the labeler
	// may work on: not yet labeled by them, still short of the consensus
	// threshold, and either unassigned or already assigned to them.
	// Returns nil when no item qualifies.
	FindOldestEligiblePending(ctx context.Context, labelerID int64, threshold int) (*Task, error)

	// AssignAndTransition atomically moves a pending item to in_progress for
	// the labeler. Returns false when the item was claimed by someone else
	// in the meantime.
	AssignAndTransition(ctx context.Context, contentItemID, labelerID int64) (bool, error)
}
