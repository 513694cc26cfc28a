// Package content manages the queue of URLs awaiting labeling: intake,
// listing, administrative resets, and per-item AI pre-analysis.
package content

import "time"

// Status tracks a content item through the labeling workflow.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ValidStatus reports whether s is a recognized workflow status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Priority bounds. Priority is recorded for operator triage; the task
// scheduler itself assigns strictly by insertion order.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// ContentItem is a URL queued for labeling.
type ContentItem struct {
	ID                int64      `json:"id"`
	URL               string     `json:"url"`
	Title             string     `json:"title,omitempty"`
	Description       string     `json:"description,omitempty"`
	Status            Status     `json:"status"`
	Priority          int        `json:"priority"`
	AssignedLabelerID *int64     `json:"assigned_labeler_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// CreateContent carries the fields for queueing a content item.
type CreateContent struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// BatchFailure records a single URL that could not be queued.
type BatchFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// BatchResult summarizes a batch intake: items queued and items rejected.
type BatchResult struct {
	Created []ContentItem  `json:"created"`
	Failed  []BatchFailure `json:"failed"`
}
