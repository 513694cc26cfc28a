package content

import (
	"database/sql"
	"net/url"
	"strconv"

	"github.com/verdict-labs/verdict/pkg/query"
	"github.com/verdict-labs/verdict/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "content_items", "ci").
		Project("id", "id").
		Project("url", "url").
		Project("title", "title").
		Project("description", "description").
		Project("status", "status").
		Project("priority", "priority").
		Project("assigned_labeler_id", "assigned_labeler_id").
		Project("created_at", "created_at").
		Project("updated_at", "updated_at").
		Project("completed_at", "completed_at")
}

// Filters narrows content listings.
type Filters struct {
	Status            *Status
	Priority          *int
	AssignedLabelerID *int64
}

// FiltersFromQuery parses listing filters from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("status"); v != "" {
		status := Status(v)
		f.Status = &status
	}
	if v := values.Get("priority"); v != "" {
		if priority, err := strconv.Atoi(v); err == nil {
			f.Priority = &priority
		}
	}
	if v := values.Get("assigned_labeler_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AssignedLabelerID = &id
		}
	}
	return f
}

func (f Filters) apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("status", string(*f.Status))
	}
	if f.Priority != nil {
		b.WhereEquals("priority", *f.Priority)
	}
	if f.AssignedLabelerID != nil {
		b.WhereEquals("assigned_labeler_id", *f.AssignedLabelerID)
	}
	return b
}

func scanContentItem(s repository.Scanner) (ContentItem, error) {
	var (
		item        ContentItem
		title       sql.NullString
		description sql.NullString
		assigned    sql.NullInt64
		completedAt sql.NullTime
	)

	err := s.Scan(
		&item.ID,
		&item.URL,
		&title,
		&description,
		&item.Status,
		&item.Priority,
		&assigned,
		&item.CreatedAt,
		&item.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return item, err
	}

	item.Title = title.String
	item.Description = description.String
	if assigned.Valid {
		item.AssignedLabelerID = &assigned.Int64
	}
	if completedAt.Valid {
		item.CompletedAt = &completedAt.Time
	}

	return item, nil
}
