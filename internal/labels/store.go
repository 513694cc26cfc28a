package labels

import "context"

// RecordResult reports what happened when a label was persisted.
type RecordResult struct {
	Label            Label
	DistinctLabelers int
	Completed        bool
}

// Store is the persistence surface for label submission and queries.
type Store interface {
	// Record persists a label atomically with the item's workflow
	// transition: the item must be in progress and assigned to the labeler
	// (ErrNotAssigned otherwise), the labeler must not have labeled it
	// before (ErrAlreadyLabeled), and afterward the item either completes
	// (threshold distinct labelers reached) or returns to pending for
	// another opinion.
	Record(ctx context.Context, label Label, threshold int) (*RecordResult, error)

	ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error)
	ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error)
	Find(ctx context.Context, id string) (*Label, error)
}
