package labelers

import (
	"net/url"
	"strconv"

	"github.com/verdict-labs/verdict/pkg/query"
	"github.com/verdict-labs/verdict/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "labelers", "lb").
		Project("id", "id").
		Project("username", "username").
		Project("full_name", "full_name").
		Project("role", "role").
		Project("active", "active").
		Project("created_at", "created_at").
		Project("updated_at", "updated_at")
}

// Filters narrows labeler listings.
type Filters struct {
	Role   *Role
	Active *bool
}

// FiltersFromQuery parses listing filters from URL query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("role"); v != "" {
		role := Role(v)
		f.Role = &role
	}
	if v := values.Get("active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			f.Active = &active
		}
	}
	return f
}

func (f Filters) apply(b *query.Builder) *query.Builder {
	if f.Role != nil {
		b.WhereEquals("role", string(*f.Role))
	}
	if f.Active != nil {
		b.WhereEquals("active", *f.Active)
	}
	return b
}

func scanLabeler(s repository.Scanner) (Labeler, error) {
	var l Labeler
	err := s.Scan(
		&l.ID,
		&l.Username,
		&l.FullName,
		&l.Role,
		&l.Active,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}
