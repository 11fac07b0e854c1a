package dashboard

import (
	"context"

	"dashkit/internal/domain/activity"
)

// Repository provides persistence for dashboards and their items.
type Repository interface {
	Create(ctx context.Context, projectID int64, name string, options map[string]any) (*Dashboard, error)
	Delete(ctx context.Context, projectID, dashboardID int64) error
	DeleteByName(ctx context.Context, projectID int64, name string) error
	Items(ctx context.Context, projectID int64, name string) ([]Item, error)
	List(ctx context.Context, projectID int64) ([]Dashboard, error)
	AddItem(ctx context.Context, projectID, dashboardID int64, name, directive string, data map[string]any) error
	UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []ItemUpdate) error
	UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error
	RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error
	RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error
}

// ActivityRepository records mutation events for auditing.
type ActivityRepository interface {
	Log(ctx context.Context, projectID int64, entry *activity.Entry) error
}
