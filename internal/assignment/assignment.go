// Package assignment schedules labeling tasks. Items are handed out in
// insertion order, one at a time per labeler, with a compare-and-set
// transition guarding against two labelers claiming the same item.
package assignment

import "time"

// Task is a content item assigned to a labeler for review.
type Task struct {
	ContentItemID int64     `json:"content_item_id"`
	URL           string    `json:"url"`
	Title         string    `json:"title,omitempty"`
	Description   string    `json:"description,omitempty"`
	Priority      int       `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
}
