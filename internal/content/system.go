package content

import (
	"context"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/pkg/pagination"
)

// System defines content queue operations. Operations taking an actorID
// are restricted to active admins.
type System interface {
	Create(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error)

	// CreateBatch queues multiple URLs, enriching missing titles and
	// descriptions from the live pages concurrently. Individual failures do
	// not abort the batch.
	CreateBatch(ctx context.Context, actorID int64, cmds []CreateContent) (*BatchResult, error)

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ContentItem], error)
	Find(ctx context.Context, id int64) (*ContentItem, error)

	// Reset returns an item to the pending state, clearing its assignment.
	// Existing labels are kept.
	Reset(ctx context.Context, actorID, id int64) (*ContentItem, error)

	Delete(ctx context.Context, actorID, id int64) error

	// Analyze runs AI pre-analysis on an item and backfills missing metadata
	// from the fetched page.
	Analyze(ctx context.Context, id int64) (*analysis.Result, error)
}
