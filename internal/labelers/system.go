package labelers

import (
	"context"

	"github.com/verdict-labs/verdict/pkg/pagination"
)

// System defines labeler registry operations.
type System interface {
	Create(ctx context.Context, cmd CreateLabeler) (*Labeler, error)
	Update(ctx context.Context, id int64, cmd UpdateLabeler) (*Labeler, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Labeler], error)
	Find(ctx context.Context, id int64) (*Labeler, error)
	FindByUsername(ctx context.Context, username string) (*Labeler, error)
	Deactivate(ctx context.Context, id int64) error

	// Authorize returns the labeler when it is active and holds one of the
	// given roles. An empty role list only checks that the labeler is active.
	Authorize(ctx context.Context, id int64, roles ...Role) (*Labeler, error)
}
