package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/labelers"
	"github.com/verdict-labs/verdict/pkg/pagination"
	"github.com/verdict-labs/verdict/pkg/query"
	"github.com/verdict-labs/verdict/pkg/repository"
)

type contentSystem struct {
	infra       *infrastructure.Infrastructure
	labelers    labelers.System
	analysis    analysis.System
	paging      pagination.Config
	concurrency int
	logger      *slog.Logger
}

// New creates the content queue System backed by PostgreSQL.
func New(
	infra *infrastructure.Infrastructure,
	labelerSystem labelers.System,
	analysisSystem analysis.System,
	paging pagination.Config,
	batchConcurrency int,
) System {
	return &contentSystem{
		infra:       infra,
		labelers:    labelerSystem,
		analysis:    analysisSystem,
		paging:      paging,
		concurrency: batchConcurrency,
		logger:      infra.Logger.With("system", "content"),
	}
}

func (s *contentSystem) Create(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error) {
	if _, err := s.labelers.Authorize(ctx, actorID, labelers.RoleAdmin); err != nil {
		return nil, err
	}

	return s.insert(ctx, cmd)
}

func (s *contentSystem) CreateBatch(ctx context.Context, actorID int64, cmds []CreateContent) (*BatchResult, error) {
	if _, err := s.labelers.Authorize(ctx, actorID, labelers.RoleAdmin); err != nil {
		return nil, err
	}

	result := &BatchResult{
		Created: make([]ContentItem, 0, len(cmds)),
		Failed:  make([]BatchFailure, 0),
	}

	var mu sync.Mutex
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)

	for _, cmd := range cmds {
		group.Go(func() error {
			enriched := s.enrich(gctx, cmd)

			item, err := s.insert(gctx, enriched)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{URL: cmd.URL, Error: err.Error()})
				return nil
			}
			result.Created = append(result.Created, *item)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch intake finished",
		"requested", len(cmds),
		"created", len(result.Created),
		"failed", len(result.Failed),
	)

	return result, nil
}

func (s *contentSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ContentItem], error) {
	page.Normalize(s.paging)

	builder := query.NewBuilder(projection(), query.SortField{Field: "id"})
	filters.apply(builder)
	builder.WhereSearch(page.Search, "url", "title")

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
	items, err := repository.QueryMany(ctx, s.infra.Database.Connection(), pageSQL, pageArgs, scanContentItem)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *contentSystem) Find(ctx context.Context, id int64) (*ContentItem, error) {
	sql, args := query.NewBuilder(projection()).BuildSingle("id", id)

	item, err := repository.QueryOne(ctx, s.infra.Database.Connection(), sql, args, scanContentItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateURL)
	}
	return &item, nil
}

func (s *contentSystem) Reset(ctx context.Context, actorID, id int64) (*ContentItem, error) {
	if _, err := s.labelers.Authorize(ctx, actorID, labelers.RoleAdmin); err != nil {
		return nil, err
	}

	sql := `
		UPDATE content_items
		SET status = 'pending', assigned_labeler_id = NULL, completed_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING id, url, title, description, status, priority, assigned_labeler_id,
			created_at, updated_at, completed_at`

	item, err := repository.QueryOne(ctx, s.infra.Database.Connection(), sql, []any{id}, scanContentItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateURL)
	}

	s.logger.Info("content item reset", "id", id, "actor", actorID)
	return &item, nil
}

func (s *contentSystem) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.labelers.Authorize(ctx, actorID, labelers.RoleAdmin); err != nil {
		return err
	}

	sql := `DELETE FROM content_items WHERE id = $1`
	if err := repository.ExecExpectOne(ctx, s.infra.Database.Connection(), sql, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicateURL)
	}

	s.logger.Info("content item deleted", "id", id, "actor", actorID)
	return nil
}

func (s *contentSystem) Analyze(ctx context.Context, id int64) (*analysis.Result, error) {
	item, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	result, extraction := s.analysis.AnalyzeContent(ctx, item.URL)

	if extraction != nil && (item.Title == "" || item.Description == "") {
		if err := s.updateMetadata(ctx, item, extraction); err != nil {
			s.logger.Warn("metadata backfill failed", "id", id, "error", err)
		}
	}

	return &result, nil
}

func (s *contentSystem) insert(ctx context.Context, cmd CreateContent) (*ContentItem, error) {
	cmd.URL = strings.TrimSpace(cmd.URL)
	if err := validateURL(cmd.URL); err != nil {
		return nil, err
	}

	if cmd.Priority == 0 {
		cmd.Priority = DefaultPriority
	}
	if cmd.Priority < MinPriority || cmd.Priority > MaxPriority {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, cmd.Priority)
	}

	sql := `
		INSERT INTO content_items (url, title, description, priority)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		RETURNING id, url, title, description, status, priority, assigned_labeler_id,
			created_at, updated_at, completed_at`

	item, err := repository.QueryOne(
		ctx,
		s.infra.Database.Connection(),
		sql,
		[]any{cmd.URL, cmd.Title, cmd.Description, cmd.Priority},
		scanContentItem,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicateURL)
	}

	s.logger.Info("content item queued", "id", item.ID, "url", item.URL)
	return &item, nil
}

// enrich backfills a missing title or description from the live page.
// Extraction failures are tolerated; the item is queued with whatever
// metadata the request supplied.
func (s *contentSystem) enrich(ctx context.Context, cmd CreateContent) CreateContent {
	if cmd.Title != "" && cmd.Description != "" {
		return cmd
	}

	extraction, err := s.analysis.Extract(ctx, strings.TrimSpace(cmd.URL))
	if err != nil || extraction == nil {
		return cmd
	}

	if cmd.Title == "" {
		cmd.Title = extraction.Title
	}
	if cmd.Description == "" {
		cmd.Description = extraction.Description
	}
	return cmd
}

func (s *contentSystem) updateMetadata(ctx context.Context, item *ContentItem, extraction *analysis.Extraction) error {
	title := item.Title
	if title == "" {
		title = extraction.Title
	}
	description := item.Description
	if description == "" {
		description = extraction.Description
	}

	if title == item.Title && description == item.Description {
		return nil
	}

	sql := `
		UPDATE content_items
		SET title = NULLIF($2, ''), description = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1`

	return repository.ExecExpectOne(ctx, s.infra.Database.Connection(), sql, item.ID, title, description)
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return nil
}
