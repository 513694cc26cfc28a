package labels

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/labelers"
	"github.com/verdict-labs/verdict/internal/taxonomy"
	"github.com/verdict-labs/verdict/pkg/pagination"
)

type mockStore struct {
	record            func(ctx context.Context, label Label, threshold int) (*RecordResult, error)
	listByContentItem func(ctx context.Context, contentItemID int64) ([]Label, error)
	listByLabeler     func(ctx context.Context, labelerID int64) ([]Label, error)
	find              func(ctx context.Context, id string) (*Label, error)
}

func (m *mockStore) Record(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
	return m.record(ctx, label, threshold)
}

func (m *mockStore) ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error) {
	return m.listByContentItem(ctx, contentItemID)
}

func (m *mockStore) ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error) {
	return m.listByLabeler(ctx, labelerID)
}

func (m *mockStore) Find(ctx context.Context, id string) (*Label, error) {
	return m.find(ctx, id)
}

type mockLabelers struct {
	authorize func(ctx context.Context, id int64, roles ...labelers.Role) (*labelers.Labeler, error)
}

func (m *mockLabelers) Authorize(ctx context.Context, id int64, roles ...labelers.Role) (*labelers.Labeler, error) {
	return m.authorize(ctx, id, roles...)
}

func (m *mockLabelers) Create(ctx context.Context, cmd labelers.CreateLabeler) (*labelers.Labeler, error) {
	panic("not implemented")
}

func (m *mockLabelers) Update(ctx context.Context, id int64, cmd labelers.UpdateLabeler) (*labelers.Labeler, error) {
	panic("not implemented")
}

func (m *mockLabelers) List(ctx context.Context, page pagination.PageRequest, filters labelers.Filters) (*pagination.PageResult[labelers.Labeler], error) {
	panic("not implemented")
}

func (m *mockLabelers) Find(ctx context.Context, id int64) (*labelers.Labeler, error) {
	panic("not implemented")
}

func (m *mockLabelers) FindByUsername(ctx context.Context, username string) (*labelers.Labeler, error) {
	panic("not implemented")
}

func (m *mockLabelers) Deactivate(ctx context.Context, id int64) error {
	panic("not implemented")
}

func allowAll() *mockLabelers {
	return &mockLabelers{
		authorize: func(ctx context.Context, id int64, roles ...labelers.Role) (*labelers.Labeler, error) {
			return &labelers.Labeler{ID: id, Role: labelers.RoleLabeler, Active: true}, nil
		},
	}
}

func testInfra() *infrastructure.Infrastructure {
	return &infrastructure.Infrastructure{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Taxonomy: taxonomy.Taxonomy{
			AIIndicators: []taxonomy.Indicator{
				{ID: "repetitive_phrasing", Label: "Repetitive", Category: "language"},
			},
			HumanIndicators: []taxonomy.Indicator{
				{ID: "personal_anecdotes", Label: "Anecdotes", Category: "substance"},
			},
		},
	}
}

func validSubmit() SubmitLabel {
	return SubmitLabel{
		LabelerID:       1,
		ContentItemID:   10,
		Classification:  analysis.ClassificationAI,
		ConfidenceScore: 80,
		AIIndicators:    []string{"repetitive_phrasing", "bogus"},
		HumanIndicators: []string{"personal_anecdotes"},
		Tags:            []string{"tech"},
		TaskStartTime:   time.Now().UTC().Add(-42 * time.Second).Format(time.RFC3339),
	}
}

func TestSubmit(t *testing.T) {
	var recorded Label
	store := &mockStore{
		record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
			recorded = label
			return &RecordResult{Label: label, DistinctLabelers: 1, Completed: false}, nil
		},
	}

	system := New(store, allowAll(), testInfra(), 3)
	submission, err := system.Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if !reflect.DeepEqual(recorded.AIIndicators, []string{"repetitive_phrasing"}) {
		t.Errorf("unknown indicators not filtered: %v", recorded.AIIndicators)
	}
	if submission.ConsensusReached {
		t.Error("consensus reported prematurely")
	}
	if submission.RequiredLabelers != 3 || submission.DistinctLabelers != 1 {
		t.Errorf("unexpected submission counts: %+v", submission)
	}
}

func TestSubmitConsensusReached(t *testing.T) {
	store := &mockStore{
		record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
			return &RecordResult{Label: label, DistinctLabelers: threshold, Completed: true}, nil
		},
	}

	submission, err := New(store, allowAll(), testInfra(), 3).Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !submission.ConsensusReached {
		t.Error("consensus not reported")
	}
}

func TestSubmitTimeSpent(t *testing.T) {
	submit := func(t *testing.T, cmd SubmitLabel) Label {
		t.Helper()
		var recorded Label
		store := &mockStore{
			record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
				recorded = label
				return &RecordResult{Label: label}, nil
			},
		}
		if _, err := New(store, allowAll(), testInfra(), 3).Submit(context.Background(), cmd); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		return recorded
	}

	t.Run("computed from echoed task start", func(t *testing.T) {
		cmd := validSubmit()
		cmd.TaskStartTime = time.Now().UTC().Add(-2 * time.Minute).Format(time.RFC3339)

		recorded := submit(t, cmd)
		if recorded.TimeSpentSeconds < 119 || recorded.TimeSpentSeconds > 180 {
			t.Errorf("time spent: got %d", recorded.TimeSpentSeconds)
		}
	})

	t.Run("future start clamps to zero", func(t *testing.T) {
		cmd := validSubmit()
		cmd.TaskStartTime = time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

		if recorded := submit(t, cmd); recorded.TimeSpentSeconds != 0 {
			t.Errorf("skewed clock not clamped: %d", recorded.TimeSpentSeconds)
		}
	})

	t.Run("malformed timestamp records zero", func(t *testing.T) {
		cmd := validSubmit()
		cmd.TaskStartTime = "half past nine"

		if recorded := submit(t, cmd); recorded.TimeSpentSeconds != 0 {
			t.Errorf("malformed timestamp not zeroed: %d", recorded.TimeSpentSeconds)
		}
	})
}

func TestTimeSpentSince(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start string
		want  int
	}{
		{"two minutes", "2026-08-30T11:58:00Z", 120},
		{"sub-second truncated", "2026-08-30T11:59:59.400Z", 0},
		{"future start", "2026-08-30T13:00:00Z", 0},
		{"empty", "", 0},
		{"malformed", "yesterday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timeSpentSince(tt.start, now); got != tt.want {
				t.Errorf("timeSpentSince(%q): got %d, want %d", tt.start, got, tt.want)
			}
		})
	}
}

func TestSubmitValidation(t *testing.T) {
	store := &mockStore{
		record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
			t.Fatal("record called for invalid submission")
			return nil, nil
		},
	}
	system := New(store, allowAll(), testInfra(), 3)

	t.Run("invalid classification", func(t *testing.T) {
		cmd := validSubmit()
		cmd.Classification = "probably_ai"
		_, err := system.Submit(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidClassification) {
			t.Errorf("expected ErrInvalidClassification, got %v", err)
		}
	})

	t.Run("confidence too high", func(t *testing.T) {
		cmd := validSubmit()
		cmd.ConfidenceScore = 101
		_, err := system.Submit(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidConfidence) {
			t.Errorf("expected ErrInvalidConfidence, got %v", err)
		}
	})

	t.Run("confidence negative", func(t *testing.T) {
		cmd := validSubmit()
		cmd.ConfidenceScore = -1
		_, err := system.Submit(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidConfidence) {
			t.Errorf("expected ErrInvalidConfidence, got %v", err)
		}
	})
}

func TestSubmitStoreErrorsPropagate(t *testing.T) {
	for _, storeErr := range []error{ErrNotAssigned, ErrAlreadyLabeled} {
		store := &mockStore{
			record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
				return nil, storeErr
			},
		}

		_, err := New(store, allowAll(), testInfra(), 3).Submit(context.Background(), validSubmit())
		if !errors.Is(err, storeErr) {
			t.Errorf("expected %v, got %v", storeErr, err)
		}
	}
}

// fakeLabelStore mirrors the submit transaction in memory: assignment guard,
// unique (item, labeler) insert, distinct count, status transition. It lets
// the duplicate-submission race run under real concurrency.
type fakeLabelStore struct {
	mu        sync.Mutex
	status    string
	assigned  int64
	labeledBy map[int64]bool
}

func (s *fakeLabelStore) Record(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != "in_progress" || s.assigned != label.LabelerID {
		return nil, ErrNotAssigned
	}
	if s.labeledBy[label.LabelerID] {
		return nil, ErrAlreadyLabeled
	}

	s.labeledBy[label.LabelerID] = true
	completed := len(s.labeledBy) >= threshold
	if completed {
		s.status = "completed"
	} else {
		s.status = "pending"
	}
	s.assigned = 0

	return &RecordResult{
		Label:            label,
		DistinctLabelers: len(s.labeledBy),
		Completed:        completed,
	}, nil
}

func (s *fakeLabelStore) ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error) {
	return nil, nil
}

func (s *fakeLabelStore) ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error) {
	return nil, nil
}

func (s *fakeLabelStore) Find(ctx context.Context, id string) (*Label, error) {
	return nil, ErrNotFound
}

func TestSubmitDuplicateRace(t *testing.T) {
	store := &fakeLabelStore{status: "in_progress", assigned: 1, labeledBy: map[int64]bool{}}
	system := New(store, allowAll(), testInfra(), 3)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := system.Submit(context.Background(), validSubmit())
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrAlreadyLabeled) && !errors.Is(err, ErrNotAssigned) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("expected exactly one recorded label, got %d", succeeded)
	}
	if len(store.labeledBy) != 1 || !store.labeledBy[1] {
		t.Errorf("stored labels after race: %v", store.labeledBy)
	}
}

func TestSubmitForbidden(t *testing.T) {
	denied := &mockLabelers{
		authorize: func(ctx context.Context, id int64, roles ...labelers.Role) (*labelers.Labeler, error) {
			return nil, labelers.ErrForbidden
		},
	}
	store := &mockStore{
		record: func(ctx context.Context, label Label, threshold int) (*RecordResult, error) {
			t.Fatal("record called for forbidden labeler")
			return nil, nil
		},
	}

	_, err := New(store, denied, testInfra(), 3).Submit(context.Background(), validSubmit())
	if !errors.Is(err, labelers.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
