package activity

import "time"

// Type represents the kind of activity event
type Type string

const (
	TypeDashboardCreated Type = "dashboard_created"
	TypeDashboardDeleted Type = "dashboard_deleted"
	TypeOptionsUpdated   Type = "options_updated"
	TypeItemAdded        Type = "item_added"
	TypeItemsUpdated     Type = "items_updated"
	TypeItemRenamed      Type = "item_renamed"
	TypeItemRemoved      Type = "item_removed"
)

// Entry represents an event in the activity log
type Entry struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	DashboardID *int64    `json:"dashboard_id,omitempty"`
	Type        Type      `json:"type"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListOptions provides filtering options for listing activity
type ListOptions struct {
	DashboardID *int64
	Type        *Type
	Limit       int
	Offset      int
}
