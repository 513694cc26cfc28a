// Package labels records human authorship verdicts and drives consensus:
// once enough distinct labelers have weighed in on an item, it is marked
// complete; until then it returns to the queue for another opinion.
package labels

import (
	"time"

	"github.com/google/uuid"
	"github.com/verdict-labs/verdict/internal/analysis"
)

// Label is a single labeler's verdict on a content item.
type Label struct {
	ID               uuid.UUID               `json:"id"`
	ContentItemID    int64                   `json:"content_item_id"`
	LabelerID        int64                   `json:"labeler_id"`
	Classification   analysis.Classification `json:"classification"`
	ConfidenceScore  int                     `json:"confidence_score"`
	AIIndicators     []string                `json:"ai_indicators"`
	HumanIndicators  []string                `json:"human_indicators"`
	Tags             []string                `json:"tags"`
	TimeSpentSeconds int                     `json:"time_spent_seconds"`
	CreatedAt        time.Time               `json:"created_at"`
}

// SubmitLabel carries the fields for recording a verdict. TaskStartTime
// echoes the timestamp issued with the task; the server derives the time
// spent from it.
type SubmitLabel struct {
	LabelerID       int64                   `json:"labeler_id"`
	ContentItemID   int64                   `json:"content_item_id"`
	Classification  analysis.Classification `json:"classification"`
	ConfidenceScore int                     `json:"confidence_score"`
	AIIndicators    []string                `json:"ai_indicators"`
	HumanIndicators []string                `json:"human_indicators"`
	Tags            []string                `json:"tags"`
	TaskStartTime   string                  `json:"task_start_time"`
}

// Submission is the outcome of recording a label.
type Submission struct {
	Label            Label `json:"label"`
	ConsensusReached bool  `json:"consensus_reached"`
	DistinctLabelers int   `json:"distinct_labelers"`
	RequiredLabelers int   `json:"required_labelers"`
}
