package content

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/labelers"
	"github.com/verdict-labs/verdict/pkg/pagination"
	"github.com/verdict-labs/verdict/pkg/routes"
)

type mockSystem struct {
	create      func(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error)
	createBatch func(ctx context.Context, actorID int64, cmds []CreateContent) (*BatchResult, error)
	list        func(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ContentItem], error)
	find        func(ctx context.Context, id int64) (*ContentItem, error)
	reset       func(ctx context.Context, actorID, id int64) (*ContentItem, error)
	delete      func(ctx context.Context, actorID, id int64) error
	analyze     func(ctx context.Context, id int64) (*analysis.Result, error)
}

func (m *mockSystem) Create(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error) {
	return m.create(ctx, actorID, cmd)
}

func (m *mockSystem) CreateBatch(ctx context.Context, actorID int64, cmds []CreateContent) (*BatchResult, error) {
	return m.createBatch(ctx, actorID, cmds)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ContentItem], error) {
	return m.list(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id int64) (*ContentItem, error) {
	return m.find(ctx, id)
}

func (m *mockSystem) Reset(ctx context.Context, actorID, id int64) (*ContentItem, error) {
	return m.reset(ctx, actorID, id)
}

func (m *mockSystem) Delete(ctx context.Context, actorID, id int64) error {
	return m.delete(ctx, actorID, id)
}

func (m *mockSystem) Analyze(ctx context.Context, id int64) (*analysis.Result, error) {
	return m.analyze(ctx, id)
}

func testMux(system System) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	mux := http.NewServeMux()
	routes.Register(mux, NewHandler(system, cfg, logger).Routes())
	return mux
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		system := &mockSystem{
			create: func(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error) {
				if actorID != 2 {
					t.Errorf("actor: got %d", actorID)
				}
				return &ContentItem{ID: 1, URL: cmd.URL, Status: StatusPending, Priority: DefaultPriority}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/content",
			strings.NewReader(`{"actor_id": 2, "url": "https://example.com/post"}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d", rec.Code)
		}
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		system := &mockSystem{
			create: func(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error) {
				return nil, labelers.ErrForbidden
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/content",
			strings.NewReader(`{"actor_id": 3, "url": "https://example.com/post"}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("duplicate url", func(t *testing.T) {
		system := &mockSystem{
			create: func(ctx context.Context, actorID int64, cmd CreateContent) (*ContentItem, error) {
				return nil, ErrDuplicateURL
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/content",
			strings.NewReader(`{"actor_id": 2, "url": "https://example.com/post"}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status: got %d", rec.Code)
		}
	})
}

func TestCreateBatchHandler(t *testing.T) {
	t.Run("partial failure reported", func(t *testing.T) {
		system := &mockSystem{
			createBatch: func(ctx context.Context, actorID int64, cmds []CreateContent) (*BatchResult, error) {
				return &BatchResult{
					Created: []ContentItem{{ID: 1, URL: cmds[0].URL}},
					Failed:  []BatchFailure{{URL: cmds[1].URL, Error: "url already queued"}},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/content/batch",
			strings.NewReader(`{"actor_id": 2, "items": [
				{"url": "https://example.com/a"},
				{"url": "https://example.com/b"}
			]}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d", rec.Code)
		}

		var body BatchResult
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if len(body.Created) != 1 || len(body.Failed) != 1 {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("empty items rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/content/batch",
			strings.NewReader(`{"actor_id": 2, "items": []}`))
		rec := httptest.NewRecorder()
		testMux(&mockSystem{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d", rec.Code)
		}
	})
}

func TestListHandlerFilters(t *testing.T) {
	system := &mockSystem{
		list: func(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[ContentItem], error) {
			if filters.Status == nil || *filters.Status != StatusPending {
				t.Errorf("status filter not parsed: %v", filters.Status)
			}
			if filters.Priority == nil || *filters.Priority != 2 {
				t.Errorf("priority filter not parsed: %v", filters.Priority)
			}
			result := pagination.NewPageResult([]ContentItem{}, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/content?status=pending&priority=2", nil)
	rec := httptest.NewRecorder()
	testMux(system).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestResetHandler(t *testing.T) {
	system := &mockSystem{
		reset: func(ctx context.Context, actorID, id int64) (*ContentItem, error) {
			if actorID != 2 || id != 8 {
				t.Errorf("args: actor %d id %d", actorID, id)
			}
			return &ContentItem{ID: id, Status: StatusPending}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/content/8/reset",
		strings.NewReader(`{"actor_id": 2}`))
	rec := httptest.NewRecorder()
	testMux(system).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestAnalyzeHandler(t *testing.T) {
	system := &mockSystem{
		analyze: func(ctx context.Context, id int64) (*analysis.Result, error) {
			if id != 5 {
				t.Errorf("id: got %d", id)
			}
			return &analysis.Result{
				URL:            "https://example.com/5",
				Classification: analysis.ClassificationUncertain,
				Source:         analysis.SourceHeuristic,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/content/5/analyze", nil)
	rec := httptest.NewRecorder()
	testMux(system).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var body analysis.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Classification != analysis.ClassificationUncertain {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestDeleteHandler(t *testing.T) {
	t.Run("missing actor_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/content/5", nil)
		rec := httptest.NewRecorder()
		testMux(&mockSystem{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		system := &mockSystem{
			delete: func(ctx context.Context, actorID, id int64) error {
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/content/5?actor_id=2", nil)
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status: got %d", rec.Code)
		}
	})
}
