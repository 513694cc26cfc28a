package labels

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/verdict-labs/verdict/internal/analysis"
	"github.com/verdict-labs/verdict/internal/infrastructure"
	"github.com/verdict-labs/verdict/internal/labelers"
)

// System defines label submission and query operations.
type System interface {
	Submit(ctx context.Context, cmd SubmitLabel) (*Submission, error)
	ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error)
	ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error)
	Find(ctx context.Context, id string) (*Label, error)
}

type labelSystem struct {
	store     Store
	labelers  labelers.System
	infra     *infrastructure.Infrastructure
	threshold int
	logger    *slog.Logger
}

// New creates the label System. threshold is the number of distinct labelers
// required to complete an item.
func New(store Store, labelerSystem labelers.System, infra *infrastructure.Infrastructure, threshold int) System {
	return &labelSystem{
		store:     store,
		labelers:  labelerSystem,
		infra:     infra,
		threshold: threshold,
		logger:    infra.Logger.With("system", "labels"),
	}
}

func (s *labelSystem) Submit(ctx context.Context, cmd SubmitLabel) (*Submission, error) {
	if _, err := s.labelers.Authorize(ctx, cmd.LabelerID, labelers.RoleAdmin, labelers.RoleLabeler); err != nil {
		return nil, err
	}

	if !analysis.ValidClassification(cmd.Classification) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidClassification, cmd.Classification)
	}
	if cmd.ConfidenceScore < 0 || cmd.ConfidenceScore > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConfidence, cmd.ConfidenceScore)
	}

	label := Label{
		ContentItemID:    cmd.ContentItemID,
		LabelerID:        cmd.LabelerID,
		Classification:   cmd.Classification,
		ConfidenceScore:  cmd.ConfidenceScore,
		AIIndicators:     s.infra.Taxonomy.FilterAI(cmd.AIIndicators),
		HumanIndicators:  s.infra.Taxonomy.FilterHuman(cmd.HumanIndicators),
		Tags:             cmd.Tags,
		TimeSpentSeconds: timeSpentSince(cmd.TaskStartTime, time.Now().UTC()),
	}

	result, err := s.store.Record(ctx, label, s.threshold)
	if err != nil {
		return nil, err
	}

	s.logger.Info("label recorded",
		"label_id", result.Label.ID,
		"content_item_id", result.Label.ContentItemID,
		"labeler_id", result.Label.LabelerID,
		"classification", result.Label.Classification,
		"consensus_reached", result.Completed,
	)

	return &Submission{
		Label:            result.Label,
		ConsensusReached: result.Completed,
		DistinctLabelers: result.DistinctLabelers,
		RequiredLabelers: s.threshold,
	}, nil
}

// timeSpentSince derives whole elapsed seconds from the echoed task start
// time. Malformed timestamps and clock skew both record as zero; timing is
// advisory and never fails a submission.
func timeSpentSince(taskStart string, now time.Time) int {
	start, err := time.Parse(time.RFC3339, taskStart)
	if err != nil {
		return 0
	}

	seconds := int(now.Sub(start).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

func (s *labelSystem) ListByContentItem(ctx context.Context, contentItemID int64) ([]Label, error) {
	return s.store.ListByContentItem(ctx, contentItemID)
}

func (s *labelSystem) ListByLabeler(ctx context.Context, labelerID int64) ([]Label, error) {
	return s.store.ListByLabeler(ctx, labelerID)
}

func (s *labelSystem) Find(ctx context.Context, id string) (*Label, error) {
	return s.store.Find(ctx, id)
}
