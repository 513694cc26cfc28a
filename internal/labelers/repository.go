package labelers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/pkg/pagination"
	"github.com/verdict-labs/verdict/pkg/query"
	"github.com/verdict-labs/verdict/pkg/repository"
)

type labelerSystem struct {
	infra  *infrastructure.Infrastructure
	paging pagination.Config
	logger *slog.Logger
}

// New creates the labeler registry System backed by PostgreSQL.
func New(infra *infrastructure.Infrastructure, paging pagination.Config) System {
	return &labelerSystem{
		infra:  infra,
		paging: paging,
		logger: infra.Logger.With("system", "labelers"),
	}
}

func (s *labelerSystem) Create(ctx context.Context, cmd CreateLabeler) (*Labeler, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	if cmd.Username == "" {
		return nil, fmt.Errorf("username required")
	}
	if cmd.Role == "" {
		cmd.Role = RoleLabeler
	}
	if !ValidRole(cmd.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, cmd.Role)
	}

	sql := `
		INSERT INTO labelers (username, full_name, role)
		VALUES ($1, $2, $3)
		RETURNING id, username, full_name, role, active, created_at, updated_at`

	labeler, err := repository.QueryOne(
		ctx,
		s.infra.Database.Connection(),
		sql,
		[]any{cmd.Username, cmd.FullName, string(cmd.Role)},
		scanLabeler,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	s.logger.Info("labeler registered", "id", labeler.ID, "username", labeler.Username)
	return &labeler, nil
}

func (s *labelerSystem) Update(ctx context.Context, id int64, cmd UpdateLabeler) (*Labeler, error) {
	current, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.FullName != nil {
		current.FullName = *cmd.FullName
	}
	if cmd.Role != nil {
		if !ValidRole(*cmd.Role) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, *cmd.Role)
		}
		current.Role = *cmd.Role
	}
	if cmd.Active != nil {
		current.Active = *cmd.Active
	}

	sql := `
		UPDATE labelers
		SET full_name = $2, role = $3, active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, full_name, role, active, created_at, updated_at`

	updated, err := repository.QueryOne(
		ctx,
		s.infra.Database.Connection(),
		sql,
		[]any{id, current.FullName, string(current.Role), current.Active},
		scanLabeler,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	return &updated, nil
}

func (s *labelerSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Labeler], error) {
	page.Normalize(s.paging)

	builder := query.NewBuilder(projection(), query.SortField{Field: "username"})
	filters.apply(builder)
	builder.WhereSearch(page.Search, "username", "full_name")

	if len(page.Sort) > 0 {
		builder.OrderByFields(page.Sort)
	}

	countSQL, countArgs := builder.BuildCount()
	var total int
	row := s.infra.Database.Connection().QueryRowContext(ctx, countSQL, countArgs...)
	if err := row.Scan(&total); err != nil {
		return nil, err
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, s.infra.Database.Connection(), pageSQL, pageArgs, scanLabeler)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *labelerSystem) Find(ctx context.Context, id int64) (*Labeler, error) {
	sql, args := query.NewBuilder(projection()).BuildSingle("id", id)

	labeler, err := repository.QueryOne(ctx, s.infra.Database.Connection(), sql, args, scanLabeler)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}
	return &labeler, nil
}

func (s *labelerSystem) FindByUsername(ctx context.Context, username string) (*Labeler, error) {
	sql, args := query.NewBuilder(projection()).BuildSingle("username", username)

	labeler, err := repository.QueryOne(ctx, s.infra.Database.Connection(), sql, args, scanLabeler)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}
	return &labeler, nil
}

func (s *labelerSystem) Deactivate(ctx context.Context, id int64) error {
	sql := `UPDATE labelers SET active = FALSE, updated_at = NOW() WHERE id = $1`

	if err := repository.ExecExpectOne(ctx, s.infra.Database.Connection(), sql, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicateUsername)
	}

	s.logger.Info("labeler deactivated", "id", id)
	return nil
}

func (s *labelerSystem) Authorize(ctx context.Context, id int64, roles ...Role) (*Labeler, error) {
	labeler, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !labeler.Active {
		return nil, fmt.Errorf("%w: labeler %d is inactive", ErrForbidden, id)
	}

	if len(roles) == 0 {
		return labeler, nil
	}

	for _, role := range roles {
		if labeler.Role == role {
			return labeler, nil
		}
	}

	return nil, fmt.Errorf("%w: role %s", ErrForbidden, labeler.Role)
}
