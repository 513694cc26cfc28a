package labels

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
	"github.com/verdict-labs/verdict/pkg/routes"
)

type mockLabelSystem struct {
	submit            func(ctx context.Context, cmd SubmitLabel) (*Submission, error)
	listByContentItem func(ctx context.Context, contentItemID int64) ([]Label, error)
	listByLabeler     func(ctx context.Context, labelerID int64) ([]Label, error)
	find              func(ctx context.Context, id string) (*Label, error)
}

func (m *mockLabelSystem) Submit(ctx context.Context, cmd SubmitLabel) (*Submission, error) {
	return m.submit(ctx, cmd)
}

func (m *mockLabelSystem) ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error) {
	return m.listByContentItem(ctx, contentItemID)
}

func (m *mockLabelSystem) ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error) {
	return m.listByLabeler(ctx, labelerID)
}

func (m *mockLabelSystem) Find(ctx context.Context, id string) (*Label, error) {
	return m.find(ctx, id)
}

func testMux(system System) *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	routes.Register(mux, NewHandler(system, logger).Routes())
	return mux
}

func TestSubmitHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		system := &mockLabelSystem{
			submit: func(ctx context.Context, cmd SubmitLabel) (*Submission, error) {
				if cmd.Classification != analysis.ClassificationHuman {
					t.Errorf("classification: got %s", cmd.Classification)
				}
				if cmd.TaskStartTime != "2026-08-30T12:00:00Z" {
					t.Errorf("task_start_time not decoded: %q", cmd.TaskStartTime)
				}
				return &Submission{
					Label:            Label{ContentItemID: cmd.ContentItemID, LabelerID: cmd.LabelerID},
					DistinctLabelers: 1,
					RequiredLabelers: 3,
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/labels", strings.NewReader(`{
			"labeler_id": 1,
			"content_item_id": 10,
			"classification": "human_created",
			"confidence_score": 90,
			"task_start_time": "2026-08-30T12:00:00Z"
		}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d", rec.Code)
		}

		var body Submission
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.RequiredLabelers != 3 {
			t.Errorf("unexpected body: %+v", body)
		}
	})

	t.Run("not assigned", func(t *testing.T) {
		system := &mockLabelSystem{
			submit: func(ctx context.Context, cmd SubmitLabel) (*Submission, error) {
				return nil, ErrNotAssigned
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/labels",
			strings.NewReader(`{"labeler_id": 1, "content_item_id": 10, "classification": "uncertain"}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("already labeled", func(t *testing.T) {
		system := &mockLabelSystem{
			submit: func(ctx context.Context, cmd SubmitLabel) (*Submission, error) {
				return nil, ErrAlreadyLabeled
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/labels",
			strings.NewReader(`{"labeler_id": 1, "content_item_id": 10, "classification": "uncertain"}`))
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status: got %d", rec.Code)
		}
	})
}

func TestListLabelsHandler(t *testing.T) {
	t.Run("by content item", func(t *testing.T) {
		system := &mockLabelSystem{
			listByContentItem: func(ctx context.Context, contentItemID int64) ([]Label, error) {
				if contentItemID != 10 {
					t.Errorf("content item id: got %d", contentItemID)
				}
				return []Label{{ContentItemID: 10}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/labels?content_item_id=10", nil)
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("by labeler", func(t *testing.T) {
		system := &mockLabelSystem{
			listByLabeler: func(ctx context.Context, labelerID int64) ([]Label, error) {
				return []Label{}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/labels?labeler_id=3", nil)
		rec := httptest.NewRecorder()
		testMux(system).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("missing filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/labels", nil)
		rec := httptest.NewRecorder()
		testMux(&mockLabelSystem{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d", rec.Code)
		}
	})
}
