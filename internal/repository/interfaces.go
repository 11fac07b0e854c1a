package repository

import (
	"context"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
)

// DashboardRepository manages dashboard and item persistence. Every operation
// is scoped to the caller's project; rows belonging to other projects are
// never visible or writable through this interface. Missing rows surface as
// storage.ErrNotFound and uniqueness violations as storage.ErrAlreadyExists.
type DashboardRepository interface {
	Create(ctx context.Context, projectID int64, name string, options map[string]any) (*dashboard.Dashboard, error)
	Delete(ctx context.Context, projectID, dashboardID int64) error
	DeleteByName(ctx context.Context, projectID int64, name string) error
	Items(ctx context.Context, projectID int64, name string) ([]dashboard.Item, error)
	List(ctx context.Context, projectID int64) ([]dashboard.Dashboard, error)
	AddItem(ctx context.Context, projectID, dashboardID int64, name, directive string, data map[string]any) error
	UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []dashboard.ItemUpdate) error
	UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error
	RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error
	RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, projectID int64, entry *activity.Entry) error
	List(ctx context.Context, projectID int64, opts activity.ListOptions) ([]activity.Entry, error)
}

// APIKeyRepository manages API key persistence. Tokens are stored hashed;
// the plaintext token is only ever returned once, from Create.
type APIKeyRepository interface {
	Create(ctx context.Context, projectID int64, description string) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}
