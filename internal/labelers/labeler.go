// Package labelers manages the registry of people who label content:
// registration, role assignment, and activity status.
package labelers

import "time"

// Role determines what a labeler may do. Admins manage the queue and other
// labelers, labelers request tasks and submit labels, viewers only read.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleLabeler Role = "labeler"
	RoleViewer  Role = "viewer"
)

// ValidRole reports whether r is a recognized role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleLabeler, RoleViewer:
		return true
	}
	return false
}

// Labeler is a registered participant in the labeling workflow.
type Labeler struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLabeler carries the fields for registering a labeler.
type CreateLabeler struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// UpdateLabeler carries a partial update; nil fields are left unchanged.
type UpdateLabeler struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
